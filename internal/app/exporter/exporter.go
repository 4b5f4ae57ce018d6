package exporter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/booktrans/internal/domain"
)

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

// TranslationRepo reads translations.
type TranslationRepo interface {
	GetByParagraphAndPrompt(ctx context.Context, paragraphID int64, promptName string) (*domain.Translation, error)
}

// Scope restricts an export to part of the book. Zero values mean "all".
type Scope struct {
	Chapter int // chapter position; 0 = whole book
	Section int // section position within Chapter; requires Chapter
}

// Options configures one export.
type Options struct {
	PromptName   string
	Scope        Scope
	ShowOriginal bool
}

// Exporter assembles export documents from the store.
type Exporter struct {
	log          *slog.Logger
	chapters     ChapterRepo
	sections     SectionRepo
	paragraphs   ParagraphRepo
	translations TranslationRepo
}

// New creates an Exporter.
func New(log *slog.Logger, chapters ChapterRepo, sections SectionRepo, paragraphs ParagraphRepo, translations TranslationRepo) *Exporter {
	return &Exporter{
		log:          log,
		chapters:     chapters,
		sections:     sections,
		paragraphs:   paragraphs,
		translations: translations,
	}
}

// Build assembles the document model for a scope. Paragraphs without a
// translation under the prompt still get a row, marked Missing, so the
// export is complete even before a translation run.
func (e *Exporter) Build(ctx context.Context, opts Options) (*Document, error) {
	if opts.Scope.Section > 0 && opts.Scope.Chapter == 0 {
		return nil, fmt.Errorf("section scope requires a chapter")
	}

	chapters, err := e.scopeChapters(ctx, opts.Scope)
	if err != nil {
		return nil, err
	}

	doc := &Document{ShowOriginal: opts.ShowOriginal}
	if len(chapters) == 1 {
		doc.Title = chapters[0].Title
	}

	missing := 0
	for _, ch := range chapters {
		if err := e.buildChapter(ctx, opts, ch, doc, &missing); err != nil {
			return nil, err
		}
	}

	e.log.Info("export document assembled",
		slog.String("prompt", opts.PromptName),
		slog.Int("blocks", len(doc.Blocks)),
		slog.Int("missing_translations", missing),
	)

	return doc, nil
}

func (e *Exporter) scopeChapters(ctx context.Context, scope Scope) ([]domain.Chapter, error) {
	if scope.Chapter > 0 {
		ch, err := e.chapters.GetByPosition(ctx, scope.Chapter)
		if err != nil {
			return nil, fmt.Errorf("resolve chapter %d: %w", scope.Chapter, err)
		}
		return []domain.Chapter{*ch}, nil
	}

	chapters, err := e.chapters.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list chapters: %w", err)
	}
	return chapters, nil
}

func (e *Exporter) buildChapter(ctx context.Context, opts Options, ch domain.Chapter, doc *Document, missing *int) error {
	doc.Blocks = append(doc.Blocks, ChapterHeading{Title: ch.Title, Position: ch.Position})

	if opts.Scope.Section > 0 {
		sec, err := e.sections.GetByChapterAndPosition(ctx, ch.ID, opts.Scope.Section)
		if err != nil {
			return fmt.Errorf("resolve section %d of chapter %d: %w", opts.Scope.Section, ch.Position, err)
		}
		return e.buildSection(ctx, opts, *sec, doc, missing)
	}

	sections, err := e.sections.ListByChapter(ctx, ch.ID)
	if err != nil {
		return fmt.Errorf("list sections of chapter %d: %w", ch.Position, err)
	}

	if len(sections) == 0 {
		paragraphs, err := e.paragraphs.ListByChapterDirect(ctx, ch.ID)
		if err != nil {
			return fmt.Errorf("list paragraphs: %w", err)
		}
		table, err := e.buildTable(ctx, opts, paragraphs, missing)
		if err != nil {
			return err
		}
		doc.Blocks = append(doc.Blocks, table)
		return nil
	}

	for _, sec := range sections {
		if err := e.buildSection(ctx, opts, sec, doc, missing); err != nil {
			return err
		}
	}
	return nil
}

func (e *Exporter) buildSection(ctx context.Context, opts Options, sec domain.Section, doc *Document, missing *int) error {
	doc.Blocks = append(doc.Blocks, SectionHeading{Title: sec.Title, Position: sec.Position})

	paragraphs, err := e.paragraphs.ListBySection(ctx, sec.ID)
	if err != nil {
		return fmt.Errorf("list paragraphs of section %d: %w", sec.Position, err)
	}

	table, err := e.buildTable(ctx, opts, paragraphs, missing)
	if err != nil {
		return fmt.Errorf("section %d: %w", sec.Position, err)
	}
	doc.Blocks = append(doc.Blocks, table)
	return nil
}

func (e *Exporter) buildTable(ctx context.Context, opts Options, paragraphs []domain.Paragraph, missing *int) (Table, error) {
	table := Table{Rows: make([]Row, 0, len(paragraphs))}

	for _, p := range paragraphs {
		row := Row{Ordinal: p.Position, Original: p.Text}

		tr, err := e.translations.GetByParagraphAndPrompt(ctx, p.ID, opts.PromptName)
		switch {
		case err == nil:
			row.Translation = tr.Text
		case errors.Is(err, domain.ErrNotFound):
			row.Translation = MissingPlaceholder
			row.Missing = true
			*missing++
		default:
			return Table{}, fmt.Errorf("load translation for paragraph %d: %w", p.Position, err)
		}

		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// Filename generates the default output name for a scope:
// ch<N>[_sec<M>]_<prompt>_<with_original|only>.pdf, or book_... for
// whole-book exports.
func Filename(scope Scope, promptName string, showOriginal bool) string {
	suffix := "only"
	if showOriginal {
		suffix = "with_original"
	}

	if scope.Chapter == 0 {
		return fmt.Sprintf("book_%s_%s.pdf", promptName, suffix)
	}
	if scope.Section > 0 {
		return fmt.Sprintf("ch%d_sec%d_%s_%s.pdf", scope.Chapter, scope.Section, promptName, suffix)
	}
	return fmt.Sprintf("ch%d_%s_%s.pdf", scope.Chapter, promptName, suffix)
}
