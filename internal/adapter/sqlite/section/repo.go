// Package section implements the Section repository on the SQLite store.
package section

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/heartmarshall/booktrans/internal/adapter/sqlite"
	"github.com/heartmarshall/booktrans/internal/domain"
)

// Repo provides section persistence backed by SQLite.
type Repo struct {
	db *sql.DB
}

// New creates a new section repository.
func New(db *sql.DB) *Repo {
	return &Repo{db: db}
}

var columns = []string{"id", "chapter_id", "title", "position", "created_at"}

// Create inserts a section and returns it with its assigned ID.
func (r *Repo) Create(ctx context.Context, s domain.Section) (*domain.Section, error) {
	querier := sqlite.QuerierFromCtx(ctx, r.db)

	query, args, err := sq.Insert("sections").
		Columns("chapter_id", "title", "position").
		Values(s.ChapterID, s.Title, s.Position).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert section: %w", err)
	}

	res, err := querier.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, sqlite.MapError(err, "section", s.Position)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("section insert id: %w", err)
	}

	s.ID = id
	return &s, nil
}

// GetByChapterAndPosition returns one section of a chapter by its
// 1-based position within the chapter.
func (r *Repo) GetByChapterAndPosition(ctx context.Context, chapterID int64, position int) (*domain.Section, error) {
	querier := sqlite.QuerierFromCtx(ctx, r.db)

	query, args, err := sq.Select(columns...).
		From("sections").
		Where(sq.Eq{"chapter_id": chapterID, "position": position}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get section: %w", err)
	}

	var s domain.Section
	row := querier.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&s.ID, &s.ChapterID, &s.Title, &s.Position, &s.CreatedAt); err != nil {
		return nil, sqlite.MapError(err, "section", position)
	}

	return &s, nil
}

// ListByChapter returns the sections of a chapter in order.
func (r *Repo) ListByChapter(ctx context.Context, chapterID int64) ([]domain.Section, error) {
	querier := sqlite.QuerierFromCtx(ctx, r.db)

	query, args, err := sq.Select(columns...).
		From("sections").
		Where(sq.Eq{"chapter_id": chapterID}).
		OrderBy("position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list sections: %w", err)
	}

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}
	defer rows.Close()

	var sections []domain.Section
	for rows.Next() {
		var s domain.Section
		if err := rows.Scan(&s.ID, &s.ChapterID, &s.Title, &s.Position, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan section: %w", err)
		}
		sections = append(sections, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}

	return sections, nil
}

// Count returns the number of sections in the store.
func (r *Repo) Count(ctx context.Context) (int, error) {
	querier := sqlite.QuerierFromCtx(ctx, r.db)

	var n int
	if err := querier.QueryRowContext(ctx, "SELECT COUNT(*) FROM sections").Scan(&n); err != nil {
		return 0, fmt.Errorf("count sections: %w", err)
	}
	return n, nil
}
