package testhelper

import (
	"context"
	"database/sql"
	"testing"

	"github.com/heartmarshall/booktrans/internal/domain"
)

// SeedChapter inserts a chapter and returns it with its assigned ID.
func SeedChapter(t *testing.T, db *sql.DB, title string, position int) domain.Chapter {
	t.Helper()
	ctx := context.Background()

	res, err := db.ExecContext(ctx,
		`INSERT INTO chapters (title, position) VALUES (?, ?)`,
		title, position,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedChapter insert: %v", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("testhelper: SeedChapter insert id: %v", err)
	}

	return domain.Chapter{ID: id, Title: title, Position: position}
}

// SeedSection inserts a section into a chapter and returns it.
func SeedSection(t *testing.T, db *sql.DB, chapterID int64, title string, position int) domain.Section {
	t.Helper()
	ctx := context.Background()

	res, err := db.ExecContext(ctx,
		`INSERT INTO sections (chapter_id, title, position) VALUES (?, ?, ?)`,
		chapterID, title, position,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedSection insert: %v", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("testhelper: SeedSection insert id: %v", err)
	}

	return domain.Section{ID: id, ChapterID: chapterID, Title: title, Position: position}
}

// SeedParagraph inserts a paragraph. Pass a nil sectionID for a paragraph
// that hangs directly off a sectionless chapter.
func SeedParagraph(t *testing.T, db *sql.DB, chapterID int64, sectionID *int64, position int, text string) domain.Paragraph {
	t.Helper()
	ctx := context.Background()

	res, err := db.ExecContext(ctx,
		`INSERT INTO paragraphs (chapter_id, section_id, position, text) VALUES (?, ?, ?, ?)`,
		chapterID, sectionID, position, text,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedParagraph insert: %v", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("testhelper: SeedParagraph insert id: %v", err)
	}

	return domain.Paragraph{ID: id, ChapterID: chapterID, SectionID: sectionID, Position: position, Text: text}
}

// SeedTranslation inserts a translation for a paragraph under a prompt name.
func SeedTranslation(t *testing.T, db *sql.DB, paragraphID int64, promptName, text string) domain.Translation {
	t.Helper()
	ctx := context.Background()

	res, err := db.ExecContext(ctx,
		`INSERT INTO translations (paragraph_id, prompt_name, text) VALUES (?, ?, ?)`,
		paragraphID, promptName, text,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedTranslation insert: %v", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("testhelper: SeedTranslation insert id: %v", err)
	}

	return domain.Translation{ID: id, ParagraphID: paragraphID, PromptName: promptName, Text: text}
}
