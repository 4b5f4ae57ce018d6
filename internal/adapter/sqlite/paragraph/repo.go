// Package paragraph implements the Paragraph repository on the SQLite store.
package paragraph

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/heartmarshall/booktrans/internal/adapter/sqlite"
	"github.com/heartmarshall/booktrans/internal/domain"
)

// Repo provides paragraph persistence backed by SQLite.
type Repo struct {
	db *sql.DB
}

// New creates a new paragraph repository.
func New(db *sql.DB) *Repo {
	return &Repo{db: db}
}

var columns = []string{"id", "chapter_id", "section_id", "position", "text", "created_at"}

// Create inserts a paragraph and returns it with its assigned ID.
func (r *Repo) Create(ctx context.Context, p domain.Paragraph) (*domain.Paragraph, error) {
	querier := sqlite.QuerierFromCtx(ctx, r.db)

	query, args, err := sq.Insert("paragraphs").
		Columns("chapter_id", "section_id", "position", "text").
		Values(p.ChapterID, p.SectionID, p.Position, p.Text).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert paragraph: %w", err)
	}

	res, err := querier.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, sqlite.MapError(err, "paragraph", p.Position)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("paragraph insert id: %w", err)
	}

	p.ID = id
	return &p, nil
}

// ListBySection returns the paragraphs of a section in ordinal order.
func (r *Repo) ListBySection(ctx context.Context, sectionID int64) ([]domain.Paragraph, error) {
	return r.list(ctx, sq.Eq{"section_id": sectionID})
}

// ListByChapterDirect returns the paragraphs attached directly to a
// sectionless chapter, in ordinal order.
func (r *Repo) ListByChapterDirect(ctx context.Context, chapterID int64) ([]domain.Paragraph, error) {
	return r.list(ctx, sq.Eq{"chapter_id": chapterID, "section_id": nil})
}

func (r *Repo) list(ctx context.Context, where sq.Eq) ([]domain.Paragraph, error) {
	querier := sqlite.QuerierFromCtx(ctx, r.db)

	query, args, err := sq.Select(columns...).
		From("paragraphs").
		Where(where).
		OrderBy("position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list paragraphs: %w", err)
	}

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list paragraphs: %w", err)
	}
	defer rows.Close()

	var paragraphs []domain.Paragraph
	for rows.Next() {
		var p domain.Paragraph
		var sectionID sql.NullInt64
		if err := rows.Scan(&p.ID, &p.ChapterID, &sectionID, &p.Position, &p.Text, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan paragraph: %w", err)
		}
		if sectionID.Valid {
			p.SectionID = &sectionID.Int64
		}
		paragraphs = append(paragraphs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list paragraphs: %w", err)
	}

	return paragraphs, nil
}

// Count returns the number of paragraphs in the store.
func (r *Repo) Count(ctx context.Context) (int, error) {
	querier := sqlite.QuerierFromCtx(ctx, r.db)

	var n int
	if err := querier.QueryRowContext(ctx, "SELECT COUNT(*) FROM paragraphs").Scan(&n); err != nil {
		return 0, fmt.Errorf("count paragraphs: %w", err)
	}
	return n, nil
}
