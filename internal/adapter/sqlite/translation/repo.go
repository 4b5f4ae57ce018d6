// Package translation implements the Translation repository on the SQLite
// store. The UNIQUE (paragraph_id, prompt_name) constraint is the backstop
// for translator idempotence: Create maps a violation to
// domain.ErrAlreadyExists instead of inserting a duplicate.
package translation

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/heartmarshall/booktrans/internal/adapter/sqlite"
	"github.com/heartmarshall/booktrans/internal/domain"
)

// Repo provides translation persistence backed by SQLite.
type Repo struct {
	db *sql.DB
}

// New creates a new translation repository.
func New(db *sql.DB) *Repo {
	return &Repo{db: db}
}

var columns = []string{"id", "paragraph_id", "prompt_name", "text", "model", "run_id", "created_at"}

// Create inserts a translation and returns it with its assigned ID.
// A second translation for the same (paragraph, prompt name) pair fails
// with domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, tr domain.Translation) (*domain.Translation, error) {
	querier := sqlite.QuerierFromCtx(ctx, r.db)

	query, args, err := sq.Insert("translations").
		Columns("paragraph_id", "prompt_name", "text", "model", "run_id").
		Values(tr.ParagraphID, tr.PromptName, tr.Text, tr.Model, tr.RunID).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert translation: %w", err)
	}

	res, err := querier.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, sqlite.MapError(err, "translation", tr.ParagraphID)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("translation insert id: %w", err)
	}

	tr.ID = id
	return &tr, nil
}

// GetByParagraphAndPrompt returns the translation of a paragraph under the
// given prompt name, or domain.ErrNotFound.
func (r *Repo) GetByParagraphAndPrompt(ctx context.Context, paragraphID int64, promptName string) (*domain.Translation, error) {
	querier := sqlite.QuerierFromCtx(ctx, r.db)

	query, args, err := sq.Select(columns...).
		From("translations").
		Where(sq.Eq{"paragraph_id": paragraphID, "prompt_name": promptName}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get translation: %w", err)
	}

	var tr domain.Translation
	row := querier.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&tr.ID, &tr.ParagraphID, &tr.PromptName, &tr.Text, &tr.Model, &tr.RunID, &tr.CreatedAt); err != nil {
		return nil, sqlite.MapError(err, "translation", paragraphID)
	}

	return &tr, nil
}

// TranslatedParagraphIDs returns, for the given paragraph IDs, the subset
// that already has a translation under the prompt name. Used by the
// translator to skip covered pairs without issuing API calls.
func (r *Repo) TranslatedParagraphIDs(ctx context.Context, paragraphIDs []int64, promptName string) (map[int64]bool, error) {
	translated := make(map[int64]bool, len(paragraphIDs))
	if len(paragraphIDs) == 0 {
		return translated, nil
	}

	querier := sqlite.QuerierFromCtx(ctx, r.db)

	query, args, err := sq.Select("paragraph_id").
		From("translations").
		Where(sq.Eq{"paragraph_id": paragraphIDs, "prompt_name": promptName}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build translated ids: %w", err)
	}

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("translated ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan translated id: %w", err)
		}
		translated[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("translated ids: %w", err)
	}

	return translated, nil
}

// CountByPrompt returns the number of translations stored under a prompt name.
func (r *Repo) CountByPrompt(ctx context.Context, promptName string) (int, error) {
	querier := sqlite.QuerierFromCtx(ctx, r.db)

	query, args, err := sq.Select("COUNT(*)").
		From("translations").
		Where(sq.Eq{"prompt_name": promptName}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count translations: %w", err)
	}

	var n int
	if err := querier.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count translations: %w", err)
	}
	return n, nil
}

// DeleteByParagraphAndPrompt removes the translation of a paragraph under
// the prompt name. Used by forced re-translation. Deleting a missing row
// is not an error.
func (r *Repo) DeleteByParagraphAndPrompt(ctx context.Context, paragraphID int64, promptName string) error {
	querier := sqlite.QuerierFromCtx(ctx, r.db)

	query, args, err := sq.Delete("translations").
		Where(sq.Eq{"paragraph_id": paragraphID, "prompt_name": promptName}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete translation: %w", err)
	}

	if _, err := querier.ExecContext(ctx, query, args...); err != nil {
		return sqlite.MapError(err, "translation", paragraphID)
	}
	return nil
}
