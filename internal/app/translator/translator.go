package translator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/booktrans/internal/config"
	"github.com/heartmarshall/booktrans/internal/domain"
)

// defaultMaxTokens is used when the prompt entry does not set a budget.
const defaultMaxTokens = 2048

// ChapterRepo reads chapters.
type ChapterRepo interface {
	GetByPosition(ctx context.Context, position int) (*domain.Chapter, error)
	List(ctx context.Context) ([]domain.Chapter, error)
}

// SectionRepo reads sections.
type SectionRepo interface {
	GetByChapterAndPosition(ctx context.Context, chapterID int64, position int) (*domain.Section, error)
	ListByChapter(ctx context.Context, chapterID int64) ([]domain.Section, error)
}

// ParagraphRepo reads paragraphs.
type ParagraphRepo interface {
	ListBySection(ctx context.Context, sectionID int64) ([]domain.Paragraph, error)
	ListByChapterDirect(ctx context.Context, chapterID int64) ([]domain.Paragraph, error)
}

// TranslationRepo persists translations.
type TranslationRepo interface {
	Create(ctx context.Context, tr domain.Translation) (*domain.Translation, error)
	TranslatedParagraphIDs(ctx context.Context, paragraphIDs []int64, promptName string) (map[int64]bool, error)
	DeleteByParagraphAndPrompt(ctx context.Context, paragraphID int64, promptName string) error
	CountByPrompt(ctx context.Context, promptName string) (int, error)
}

// Scope restricts a run to part of the book. Zero values mean "all".
type Scope struct {
	Chapter      int // chapter position; 0 = every chapter
	Section      int // section position within Chapter; requires Chapter
	StartChapter int // inclusive lower bound on whole-book runs
	EndChapter   int // inclusive upper bound on whole-book runs; 0 = open
}

// Options configures one translation run.
type Options struct {
	PromptName string
	Prompt     config.PromptConfig
	Scope      Scope
	Force      bool // drop and re-translate already-covered paragraphs
	DryRun     bool // report what would be translated; no calls, no writes
}

// Result holds run statistics. Covered is the number of translations
// stored under the prompt across the whole book after the run.
type Result struct {
	Total      int
	Translated int
	Skipped    int
	Failed     int
	Covered    int
}

// Translator drives per-paragraph completion calls over a scope.
type Translator struct {
	log          *slog.Logger
	completer    Completer
	chapters     ChapterRepo
	sections     SectionRepo
	paragraphs   ParagraphRepo
	translations TranslationRepo
	llm          config.LLMConfig
	retry        config.TranslatorConfig
}

// New creates a Translator.
func New(
	log *slog.Logger,
	completer Completer,
	chapters ChapterRepo,
	sections SectionRepo,
	paragraphs ParagraphRepo,
	translations TranslationRepo,
	llm config.LLMConfig,
	retry config.TranslatorConfig,
) *Translator {
	return &Translator{
		log:          log,
		completer:    completer,
		chapters:     chapters,
		sections:     sections,
		paragraphs:   paragraphs,
		translations: translations,
		llm:          llm,
		retry:        retry,
	}
}

// Run translates every in-scope paragraph that is not yet covered by the
// prompt. A paragraph failure is recorded and the run continues; only
// store errors and run cancellation abort.
func (t *Translator) Run(ctx context.Context, opts Options) (Result, error) {
	if opts.Scope.Section > 0 && opts.Scope.Chapter == 0 {
		return Result{}, fmt.Errorf("section scope requires a chapter")
	}

	runID := uuid.NewString()
	log := t.log.With(
		slog.String("run_id", runID),
		slog.String("prompt", opts.PromptName),
	)

	chapters, err := t.scopeChapters(ctx, opts.Scope)
	if err != nil {
		return Result{}, err
	}

	var result Result
	for _, ch := range chapters {
		if err := t.runChapter(ctx, log, opts, runID, ch, &result); err != nil {
			return result, err
		}
	}

	covered, err := t.translations.CountByPrompt(ctx, opts.PromptName)
	if err != nil {
		return result, fmt.Errorf("count prompt coverage: %w", err)
	}
	result.Covered = covered

	log.Info("translation run finished",
		slog.Int("total", result.Total),
		slog.Int("translated", result.Translated),
		slog.Int("skipped", result.Skipped),
		slog.Int("failed", result.Failed),
		slog.Int("covered", result.Covered),
		slog.Bool("dry_run", opts.DryRun),
	)

	return result, nil
}

func (t *Translator) scopeChapters(ctx context.Context, scope Scope) ([]domain.Chapter, error) {
	if scope.Chapter > 0 {
		ch, err := t.chapters.GetByPosition(ctx, scope.Chapter)
		if err != nil {
			return nil, fmt.Errorf("resolve chapter %d: %w", scope.Chapter, err)
		}
		return []domain.Chapter{*ch}, nil
	}

	all, err := t.chapters.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list chapters: %w", err)
	}

	var chapters []domain.Chapter
	for _, ch := range all {
		if scope.StartChapter > 0 && ch.Position < scope.StartChapter {
			continue
		}
		if scope.EndChapter > 0 && ch.Position > scope.EndChapter {
			continue
		}
		chapters = append(chapters, ch)
	}
	return chapters, nil
}

func (t *Translator) runChapter(ctx context.Context, log *slog.Logger, opts Options, runID string, ch domain.Chapter, result *Result) error {
	if opts.Scope.Section > 0 {
		sec, err := t.sections.GetByChapterAndPosition(ctx, ch.ID, opts.Scope.Section)
		if err != nil {
			return fmt.Errorf("resolve section %d of chapter %d: %w", opts.Scope.Section, ch.Position, err)
		}
		paragraphs, err := t.paragraphs.ListBySection(ctx, sec.ID)
		if err != nil {
			return fmt.Errorf("list paragraphs: %w", err)
		}
		return t.runBatch(ctx, log, opts, runID, ch.Position, sec.Position, paragraphs, result)
	}

	sections, err := t.sections.ListByChapter(ctx, ch.ID)
	if err != nil {
		return fmt.Errorf("list sections of chapter %d: %w", ch.Position, err)
	}

	if len(sections) == 0 {
		paragraphs, err := t.paragraphs.ListByChapterDirect(ctx, ch.ID)
		if err != nil {
			return fmt.Errorf("list paragraphs: %w", err)
		}
		return t.runBatch(ctx, log, opts, runID, ch.Position, 0, paragraphs, result)
	}

	for _, sec := range sections {
		paragraphs, err := t.paragraphs.ListBySection(ctx, sec.ID)
		if err != nil {
			return fmt.Errorf("list paragraphs: %w", err)
		}
		if err := t.runBatch(ctx, log, opts, runID, ch.Position, sec.Position, paragraphs, result); err != nil {
			return err
		}
	}
	return nil
}

// runBatch processes one container's paragraphs in ordinal order. The
// translated set is preloaded once so skipped pairs cost no API calls.
func (t *Translator) runBatch(ctx context.Context, log *slog.Logger, opts Options, runID string, chapterPos, sectionPos int, paragraphs []domain.Paragraph, result *Result) error {
	ids := make([]int64, len(paragraphs))
	for i, p := range paragraphs {
		ids[i] = p.ID
	}

	translated, err := t.translations.TranslatedParagraphIDs(ctx, ids, opts.PromptName)
	if err != nil {
		return fmt.Errorf("load translated set: %w", err)
	}

	for _, p := range paragraphs {
		result.Total++

		if translated[p.ID] && !opts.Force {
			result.Skipped++
			continue
		}

		if opts.DryRun {
			result.Translated++
			log.Info("would translate",
				slog.Int("chapter", chapterPos),
				slog.Int("section", sectionPos),
				slog.Int("paragraph", p.Position),
			)
			continue
		}

		if translated[p.ID] && opts.Force {
			if err := t.translations.DeleteByParagraphAndPrompt(ctx, p.ID, opts.PromptName); err != nil {
				return fmt.Errorf("drop translation for re-run: %w", err)
			}
		}

		text, err := t.translateParagraph(ctx, opts.Prompt, p.Text)
		if err != nil {
			result.Failed++
			log.Warn("paragraph translation failed",
				slog.Int("chapter", chapterPos),
				slog.Int("section", sectionPos),
				slog.Int("paragraph", p.Position),
				slog.String("error", describeErr(err)),
			)
			if ctx.Err() != nil {
				return ctx.Err()
			}
			continue
		}

		_, err = t.translations.Create(ctx, domain.Translation{
			ParagraphID: p.ID,
			PromptName:  opts.PromptName,
			Text:        text,
			Model:       t.model(opts.Prompt),
			RunID:       runID,
		})
		if err != nil {
			return fmt.Errorf("store translation: %w", err)
		}
		result.Translated++
	}

	return nil
}

// translateParagraph runs one completion with retries on transient errors.
func (t *Translator) translateParagraph(ctx context.Context, prompt config.PromptConfig, paragraphText string) (string, error) {
	req := CompletionRequest{
		System:      prompt.SystemPrompt,
		UserText:    RenderUserMessage(prompt.UserTemplate, paragraphText),
		Model:       t.model(prompt),
		Temperature: prompt.Temperature,
		MaxTokens:   t.maxTokens(prompt),
	}

	bo := newBackoff(t.retry.MaxAttempts, t.retry.InitialDelay, t.retry.MaxDelay)

	for {
		text, err := t.complete(ctx, req)
		if err == nil {
			if strings.TrimSpace(text) == "" {
				return "", fmt.Errorf("blank completion")
			}
			return text, nil
		}

		if !isTransient(err) {
			return "", err
		}

		delay, ok := bo.Next()
		if !ok {
			return "", fmt.Errorf("retries exhausted: %s", describeErr(err))
		}

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
}

// complete issues a single call under the per-request timeout.
func (t *Translator) complete(ctx context.Context, req CompletionRequest) (string, error) {
	if t.llm.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.llm.RequestTimeout)
		defer cancel()
	}
	return t.completer.Complete(ctx, req)
}

func (t *Translator) model(prompt config.PromptConfig) string {
	if prompt.Model != "" {
		return prompt.Model
	}
	return t.llm.DefaultModel
}

func (t *Translator) maxTokens(prompt config.PromptConfig) int64 {
	if prompt.MaxTokens > 0 {
		return int64(prompt.MaxTokens)
	}
	return defaultMaxTokens
}
