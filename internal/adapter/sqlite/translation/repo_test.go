package translation_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/heartmarshall/booktrans/internal/adapter/sqlite/testhelper"
	"github.com/heartmarshall/booktrans/internal/adapter/sqlite/translation"
	"github.com/heartmarshall/booktrans/internal/domain"
)

func newRepo(t *testing.T) (*translation.Repo, *sql.DB) {
	t.Helper()
	db := testhelper.SetupTestDB(t)
	return translation.New(db), db
}

// seedParagraph creates the chapter/paragraph pair a translation hangs off.
func seedParagraph(t *testing.T, db *sql.DB, position int) domain.Paragraph {
	t.Helper()
	ch := testhelper.SeedChapter(t, db, "chapter", 1)
	return testhelper.SeedParagraph(t, db, ch.ID, nil, position, "מקור")
}

func TestRepo_Create_HappyPath(t *testing.T) {
	t.Parallel()
	repo, db := newRepo(t)
	ctx := context.Background()

	p := seedParagraph(t, db, 1)

	got, err := repo.Create(ctx, domain.Translation{
		ParagraphID: p.ID,
		PromptName:  "literal",
		Text:        "дословный перевод",
		Model:       "claude-sonnet-4-5",
		RunID:       "run-1",
	})
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}
	if got.ID == 0 {
		t.Error("ID should be assigned")
	}
	if got.PromptName != "literal" {
		t.Errorf("PromptName mismatch: got %q, want %q", got.PromptName, "literal")
	}
}

func TestRepo_Create_DuplicatePair(t *testing.T) {
	t.Parallel()
	repo, db := newRepo(t)
	ctx := context.Background()

	p := seedParagraph(t, db, 1)
	testhelper.SeedTranslation(t, db, p.ID, "literal", "first")

	_, err := repo.Create(ctx, domain.Translation{ParagraphID: p.ID, PromptName: "literal", Text: "second"})
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestRepo_Create_SameParagraphDifferentPrompt(t *testing.T) {
	t.Parallel()
	repo, db := newRepo(t)
	ctx := context.Background()

	p := seedParagraph(t, db, 1)
	testhelper.SeedTranslation(t, db, p.ID, "literal", "a")

	_, err := repo.Create(ctx, domain.Translation{ParagraphID: p.ID, PromptName: "modern", Text: "b"})
	if err != nil {
		t.Fatalf("Create under second prompt: unexpected error: %v", err)
	}
}

func TestRepo_GetByParagraphAndPrompt(t *testing.T) {
	t.Parallel()
	repo, db := newRepo(t)
	ctx := context.Background()

	p := seedParagraph(t, db, 1)
	seeded := testhelper.SeedTranslation(t, db, p.ID, "literal", "wanted")
	testhelper.SeedTranslation(t, db, p.ID, "modern", "decoy")

	got, err := repo.GetByParagraphAndPrompt(ctx, p.ID, "literal")
	if err != nil {
		t.Fatalf("GetByParagraphAndPrompt: unexpected error: %v", err)
	}
	if got.ID != seeded.ID {
		t.Errorf("ID mismatch: got %d, want %d", got.ID, seeded.ID)
	}
	if got.Text != "wanted" {
		t.Errorf("Text mismatch: got %q, want %q", got.Text, "wanted")
	}
}

func TestRepo_GetByParagraphAndPrompt_NotFound(t *testing.T) {
	t.Parallel()
	repo, db := newRepo(t)

	p := seedParagraph(t, db, 1)

	_, err := repo.GetByParagraphAndPrompt(context.Background(), p.ID, "literal")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRepo_TranslatedParagraphIDs(t *testing.T) {
	t.Parallel()
	repo, db := newRepo(t)
	ctx := context.Background()

	ch := testhelper.SeedChapter(t, db, "chapter", 1)
	p1 := testhelper.SeedParagraph(t, db, ch.ID, nil, 1, "a")
	p2 := testhelper.SeedParagraph(t, db, ch.ID, nil, 2, "b")
	p3 := testhelper.SeedParagraph(t, db, ch.ID, nil, 3, "c")

	testhelper.SeedTranslation(t, db, p1.ID, "literal", "done")
	testhelper.SeedTranslation(t, db, p2.ID, "modern", "other prompt")

	got, err := repo.TranslatedParagraphIDs(ctx, []int64{p1.ID, p2.ID, p3.ID}, "literal")
	if err != nil {
		t.Fatalf("TranslatedParagraphIDs: unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 translated ID, got %d", len(got))
	}
	if !got[p1.ID] {
		t.Errorf("expected paragraph %d to be marked translated", p1.ID)
	}
}

func TestRepo_TranslatedParagraphIDs_EmptyInput(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	got, err := repo.TranslatedParagraphIDs(context.Background(), nil, "literal")
	if err != nil {
		t.Fatalf("TranslatedParagraphIDs: unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty map, got %d entries", len(got))
	}
}

func TestRepo_CountByPrompt(t *testing.T) {
	t.Parallel()
	repo, db := newRepo(t)
	ctx := context.Background()

	ch := testhelper.SeedChapter(t, db, "chapter", 1)
	p1 := testhelper.SeedParagraph(t, db, ch.ID, nil, 1, "a")
	p2 := testhelper.SeedParagraph(t, db, ch.ID, nil, 2, "b")

	testhelper.SeedTranslation(t, db, p1.ID, "literal", "x")
	testhelper.SeedTranslation(t, db, p2.ID, "literal", "y")
	testhelper.SeedTranslation(t, db, p1.ID, "modern", "z")

	n, err := repo.CountByPrompt(ctx, "literal")
	if err != nil {
		t.Fatalf("CountByPrompt: unexpected error: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 translations, got %d", n)
	}
}

func TestRepo_DeleteByParagraphAndPrompt(t *testing.T) {
	t.Parallel()
	repo, db := newRepo(t)
	ctx := context.Background()

	p := seedParagraph(t, db, 1)
	testhelper.SeedTranslation(t, db, p.ID, "literal", "x")

	if err := repo.DeleteByParagraphAndPrompt(ctx, p.ID, "literal"); err != nil {
		t.Fatalf("DeleteByParagraphAndPrompt: unexpected error: %v", err)
	}

	_, err := repo.GetByParagraphAndPrompt(ctx, p.ID, "literal")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	// Deleting again is a no-op, not an error.
	if err := repo.DeleteByParagraphAndPrompt(ctx, p.ID, "literal"); err != nil {
		t.Fatalf("repeat delete: unexpected error: %v", err)
	}
}
