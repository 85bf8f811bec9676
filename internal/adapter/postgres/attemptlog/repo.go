// Package attemptlog implements the practice attempt journal using
// PostgreSQL. Queries are built with squirrel.
package attemptlog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/deutsch-vocab/internal/adapter/postgres"
	"github.com/heartmarshall/deutsch-vocab/internal/domain"
)

const table = "practice_attempts"

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

var columns = []string{
	"id", "level", "artikel", "deutsch", "english", "kind", "user_answer",
	"correct", "retry", "correction", "incorrect_count", "changes",
	"update_success", "created_at",
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repo provides attempt persistence backed by PostgreSQL.
type Repo struct {
	q postgres.Querier
}

// New creates a new attempt journal repository. q is usually a *pgxpool.Pool.
func New(q postgres.Querier) *Repo {
	return &Repo{q: q}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Record appends one attempt.
func (r *Repo) Record(ctx context.Context, a domain.Attempt) error {
	changes, err := marshalChanges(a.Changes)
	if err != nil {
		return fmt.Errorf("attempt %s marshal changes: %w", a.ID, err)
	}

	createdAt := a.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query, args, err := psql.Insert(table).
		Columns(columns...).
		Values(
			a.ID, a.Level, a.Word.Artikel, a.Word.Deutsch, a.Word.English, string(a.Kind), a.UserAnswer,
			a.Correct, a.Retry, a.Correction, a.IncorrectCount, changes,
			a.UpdateSuccess, createdAt.UTC(),
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert attempt: %w", err)
	}

	if _, err := r.q.Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "attempt", a.ID)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// ListRecent returns the newest attempts first. An empty level means every
// level; limit <= 0 means the default page size.
func (r *Repo) ListRecent(ctx context.Context, level string, limit int) ([]domain.Attempt, error) {
	switch {
	case limit <= 0:
		limit = defaultListLimit
	case limit > maxListLimit:
		limit = maxListLimit
	}

	sb := psql.Select(columns...).
		From(table).
		OrderBy("created_at DESC", "id").
		Limit(uint64(limit))
	if level != "" {
		sb = sb.Where(squirrel.Eq{"level": level})
	}

	query, args, err := sb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list attempts: %w", err)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	defer rows.Close()

	attempts := []domain.Attempt{}
	for rows.Next() {
		var (
			a       domain.Attempt
			id      uuid.UUID
			kind    string
			changes []byte
		)
		if err := rows.Scan(
			&id, &a.Level, &a.Word.Artikel, &a.Word.Deutsch, &a.Word.English, &kind, &a.UserAnswer,
			&a.Correct, &a.Retry, &a.Correction, &a.IncorrectCount, &changes,
			&a.UpdateSuccess, &a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		a.ID = id
		a.Kind = domain.EvaluationKind(kind)

		if a.Changes, err = unmarshalChanges(changes); err != nil {
			return nil, fmt.Errorf("attempt %s: %w", id, err)
		}
		attempts = append(attempts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attempts: %w", err)
	}

	return attempts, nil
}

// ---------------------------------------------------------------------------
// JSONB helpers for changes
// ---------------------------------------------------------------------------

// marshalChanges returns nil for no changes so the column stays NULL.
func marshalChanges(changes []domain.FieldChange) ([]byte, error) {
	if len(changes) == 0 {
		return nil, nil
	}
	return json.Marshal(changes)
}

func unmarshalChanges(data []byte) ([]domain.FieldChange, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var changes []domain.FieldChange
	if err := json.Unmarshal(data, &changes); err != nil {
		return nil, fmt.Errorf("unmarshal changes: %w", err)
	}
	return changes, nil
}
