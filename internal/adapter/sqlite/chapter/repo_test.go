package chapter_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/heartmarshall/booktrans/internal/adapter/sqlite/chapter"
	"github.com/heartmarshall/booktrans/internal/adapter/sqlite/testhelper"
	"github.com/heartmarshall/booktrans/internal/domain"
)

// newRepo sets up a test DB and returns a ready Repo + db handle.
func newRepo(t *testing.T) (*chapter.Repo, *sql.DB) {
	t.Helper()
	db := testhelper.SetupTestDB(t)
	return chapter.New(db), db
}

func TestRepo_Create_HappyPath(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	got, err := repo.Create(ctx, domain.Chapter{Title: "בראשית", Position: 1})
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	if got.ID == 0 {
		t.Error("ID should be assigned")
	}
	if got.Title != "בראשית" {
		t.Errorf("Title mismatch: got %q, want %q", got.Title, "בראשית")
	}
	if got.Position != 1 {
		t.Errorf("Position mismatch: got %d, want 1", got.Position)
	}
}

func TestRepo_Create_DuplicatePosition(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	if _, err := repo.Create(ctx, domain.Chapter{Title: "a", Position: 1}); err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	_, err := repo.Create(ctx, domain.Chapter{Title: "b", Position: 1})
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestRepo_GetByPosition(t *testing.T) {
	t.Parallel()
	repo, db := newRepo(t)
	ctx := context.Background()

	seeded := testhelper.SeedChapter(t, db, "שמות", 2)

	got, err := repo.GetByPosition(ctx, 2)
	if err != nil {
		t.Fatalf("GetByPosition: unexpected error: %v", err)
	}
	if got.ID != seeded.ID {
		t.Errorf("ID mismatch: got %d, want %d", got.ID, seeded.ID)
	}
	if got.Title != "שמות" {
		t.Errorf("Title mismatch: got %q, want %q", got.Title, "שמות")
	}
}

func TestRepo_GetByPosition_NotFound(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	_, err := repo.GetByPosition(context.Background(), 42)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRepo_List_BookOrder(t *testing.T) {
	t.Parallel()
	repo, db := newRepo(t)
	ctx := context.Background()

	// Seed out of order; List must return book order.
	testhelper.SeedChapter(t, db, "third", 3)
	testhelper.SeedChapter(t, db, "first", 1)
	testhelper.SeedChapter(t, db, "second", 2)

	got, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 chapters, got %d", len(got))
	}
	for i, want := range []string{"first", "second", "third"} {
		if got[i].Title != want {
			t.Errorf("chapter[%d] title: got %q, want %q", i, got[i].Title, want)
		}
	}
}

func TestRepo_Count(t *testing.T) {
	t.Parallel()
	repo, db := newRepo(t)
	ctx := context.Background()

	n, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count: unexpected error: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected empty store, got %d", n)
	}

	testhelper.SeedChapter(t, db, "a", 1)
	testhelper.SeedChapter(t, db, "b", 2)

	n, err = repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count: unexpected error: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 chapters, got %d", n)
	}
}
