package sequence

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// PostgresCounter keeps the next remito number in a single-row table so that
// several clerks behind one deployment share one sequence. Schema lives in
// migrations/.
type PostgresCounter struct {
	db *sqlx.DB
}

func NewPostgresCounter(db *sqlx.DB) *PostgresCounter {
	return &PostgresCounter{db: db}
}

func (c *PostgresCounter) Peek(ctx context.Context) (int, error) {
	var next int
	err := c.db.GetContext(ctx, &next, `SELECT next FROM remito_sequence WHERE id = 1`)
	if err != nil {
		return 0, fmt.Errorf("sequence: failed to read counter: %w", err)
	}
	return next, nil
}

// TakeNext increments and persists in one statement; two concurrent commits
// can never observe the same pre-increment value.
func (c *PostgresCounter) TakeNext(ctx context.Context) (int, error) {
	var taken int
	err := c.db.GetContext(ctx, &taken, `UPDATE remito_sequence SET next = next + 1 WHERE id = 1 RETURNING next - 1`)
	if err != nil {
		return 0, fmt.Errorf("sequence: failed to advance counter: %w", err)
	}
	return taken, nil
}
