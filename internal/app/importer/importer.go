package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/heartmarshall/booktrans/internal/domain"
)

// ChapterRepo persists chapters.
type ChapterRepo interface {
	Create(ctx context.Context, ch domain.Chapter) (*domain.Chapter, error)
}

// SectionRepo persists sections.
type SectionRepo interface {
	Create(ctx context.Context, s domain.Section) (*domain.Section, error)
}

// ParagraphRepo persists paragraphs.
type ParagraphRepo interface {
	Create(ctx context.Context, p domain.Paragraph) (*domain.Paragraph, error)
}

// TxRunner executes a function within a store transaction.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Result holds import statistics.
type Result struct {
	Chapters       int
	Sections       int
	Paragraphs     int
	SkippedEmpty   int
	TitleFallbacks int
}

// Importer loads a parsed edition document into the store. Each chapter is
// written in its own transaction, so a failure mid-book leaves all previous
// chapters complete and the failed chapter absent.
type Importer struct {
	log        *slog.Logger
	tx         TxRunner
	chapters   ChapterRepo
	sections   SectionRepo
	paragraphs ParagraphRepo
}

// New creates an Importer.
func New(log *slog.Logger, tx TxRunner, chapters ChapterRepo, sections SectionRepo, paragraphs ParagraphRepo) *Importer {
	return &Importer{
		log:        log,
		tx:         tx,
		chapters:   chapters,
		sections:   sections,
		paragraphs: paragraphs,
	}
}

// Run parses the edition document from r and imports it.
func (i *Importer) Run(ctx context.Context, r io.Reader) (Result, error) {
	doc, err := Parse(r)
	if err != nil {
		return Result{}, err
	}

	titles := NewTitleIndex(doc.Schema)

	var result Result
	for chIdx, ch := range doc.Chapters {
		position := chIdx + 1

		err := i.tx.RunInTx(ctx, func(txCtx context.Context) error {
			return i.importChapter(txCtx, titles, ch, position, &result)
		})
		if err != nil {
			return result, fmt.Errorf("import chapter %d (%s): %w", position, ch.Key, err)
		}
		result.Chapters++
	}

	i.log.Info("import finished",
		slog.Int("chapters", result.Chapters),
		slog.Int("sections", result.Sections),
		slog.Int("paragraphs", result.Paragraphs),
		slog.Int("skipped_empty", result.SkippedEmpty),
		slog.Int("title_fallbacks", result.TitleFallbacks),
	)

	return result, nil
}

func (i *Importer) importChapter(ctx context.Context, titles *TitleIndex, ch Chapter, position int, result *Result) error {
	title, ok := titles.ChapterTitle(ch.Key)
	if !ok {
		title = ch.Key
		result.TitleFallbacks++
		i.log.Warn("chapter title missing from schema, using inline label",
			slog.String("chapter", ch.Key),
			slog.Int("position", position),
		)
	}

	created, err := i.chapters.Create(ctx, domain.Chapter{Title: title, Position: position})
	if err != nil {
		return fmt.Errorf("create chapter: %w", err)
	}

	if len(ch.Sections) == 0 {
		n, skipped, err := i.importParagraphs(ctx, created.ID, nil, ch.Paragraphs)
		if err != nil {
			return err
		}
		result.Paragraphs += n
		result.SkippedEmpty += skipped
		return nil
	}

	for secIdx, sec := range ch.Sections {
		secPosition := secIdx + 1

		secTitle, ok := titles.SectionTitle(ch.Key, sec.Key)
		if !ok {
			secTitle = sec.Key
			if secTitle == "" {
				secTitle = SectionPlaceholder(secPosition)
			}
			result.TitleFallbacks++
			i.log.Warn("section title missing from schema, using fallback",
				slog.String("chapter", ch.Key),
				slog.String("section", sec.Key),
				slog.String("title", secTitle),
			)
		}

		createdSec, err := i.sections.Create(ctx, domain.Section{
			ChapterID: created.ID,
			Title:     secTitle,
			Position:  secPosition,
		})
		if err != nil {
			return fmt.Errorf("create section %d: %w", secPosition, err)
		}
		result.Sections++

		n, skipped, err := i.importParagraphs(ctx, created.ID, &createdSec.ID, sec.Paragraphs)
		if err != nil {
			return fmt.Errorf("section %d: %w", secPosition, err)
		}
		result.Paragraphs += n
		result.SkippedEmpty += skipped
	}

	return nil
}

// importParagraphs cleans and stores a paragraph sequence. Paragraphs empty
// after cleaning are skipped; ordinals are assigned after skipping so the
// stored sequence stays contiguous.
func (i *Importer) importParagraphs(ctx context.Context, chapterID int64, sectionID *int64, raw []string) (created, skipped int, err error) {
	position := 0
	for _, text := range raw {
		cleaned := CleanText(text)
		if cleaned == "" {
			skipped++
			continue
		}
		position++

		_, err := i.paragraphs.Create(ctx, domain.Paragraph{
			ChapterID: chapterID,
			SectionID: sectionID,
			Position:  position,
			Text:      cleaned,
		})
		if err != nil {
			return created, skipped, fmt.Errorf("create paragraph %d: %w", position, err)
		}
		created++
	}

	return created, skipped, nil
}
