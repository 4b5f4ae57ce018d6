// Package chapter implements the Chapter repository on the SQLite store.
package chapter

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/heartmarshall/booktrans/internal/adapter/sqlite"
	"github.com/heartmarshall/booktrans/internal/domain"
)

// Repo provides chapter persistence backed by SQLite.
type Repo struct {
	db *sql.DB
}

// New creates a new chapter repository.
func New(db *sql.DB) *Repo {
	return &Repo{db: db}
}

var columns = []string{"id", "title", "position", "created_at"}

// Create inserts a chapter and returns it with its assigned ID.
func (r *Repo) Create(ctx context.Context, ch domain.Chapter) (*domain.Chapter, error) {
	querier := sqlite.QuerierFromCtx(ctx, r.db)

	query, args, err := sq.Insert("chapters").
		Columns("title", "position").
		Values(ch.Title, ch.Position).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert chapter: %w", err)
	}

	res, err := querier.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, sqlite.MapError(err, "chapter", ch.Position)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("chapter insert id: %w", err)
	}

	ch.ID = id
	return &ch, nil
}

// GetByPosition returns the chapter at the given 1-based book position.
func (r *Repo) GetByPosition(ctx context.Context, position int) (*domain.Chapter, error) {
	querier := sqlite.QuerierFromCtx(ctx, r.db)

	query, args, err := sq.Select(columns...).
		From("chapters").
		Where(sq.Eq{"position": position}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get chapter: %w", err)
	}

	var ch domain.Chapter
	row := querier.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&ch.ID, &ch.Title, &ch.Position, &ch.CreatedAt); err != nil {
		return nil, sqlite.MapError(err, "chapter", position)
	}

	return &ch, nil
}

// List returns all chapters in book order.
func (r *Repo) List(ctx context.Context) ([]domain.Chapter, error) {
	querier := sqlite.QuerierFromCtx(ctx, r.db)

	query, args, err := sq.Select(columns...).
		From("chapters").
		OrderBy("position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list chapters: %w", err)
	}

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list chapters: %w", err)
	}
	defer rows.Close()

	var chapters []domain.Chapter
	for rows.Next() {
		var ch domain.Chapter
		if err := rows.Scan(&ch.ID, &ch.Title, &ch.Position, &ch.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan chapter: %w", err)
		}
		chapters = append(chapters, ch)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list chapters: %w", err)
	}

	return chapters, nil
}

// Count returns the number of chapters in the store.
func (r *Repo) Count(ctx context.Context) (int, error) {
	querier := sqlite.QuerierFromCtx(ctx, r.db)

	var n int
	if err := querier.QueryRowContext(ctx, "SELECT COUNT(*) FROM chapters").Scan(&n); err != nil {
		return 0, fmt.Errorf("count chapters: %w", err)
	}
	return n, nil
}
