package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// ListWords returns the stored word bank in insertion order.
func (q *Queries) ListWords(ctx context.Context) ([]string, error) {
	rows, _ := q.db.Query(ctx, "SELECT word FROM jukugo ORDER BY jukugo_id")
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

// SeedWords replaces the stored word bank with words.
func (q *Queries) SeedWords(ctx context.Context, words []string) (int64, error) {
	if _, err := q.db.Exec(ctx, "TRUNCATE jukugo RESTART IDENTITY"); err != nil {
		return 0, fmt.Errorf("unable to truncate jukugo: %w", err)
	}
	return q.db.CopyFrom(
		ctx,
		pgx.Identifier{"jukugo"},
		[]string{"word"},
		pgx.CopyFromSlice(len(words), func(i int) ([]any, error) {
			return []any{words[i]}, nil
		}),
	)
}
