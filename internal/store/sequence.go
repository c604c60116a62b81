package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
)

const sequenceSchema = `
CREATE TABLE IF NOT EXISTS global_sequence (
	id       INTEGER PRIMARY KEY CHECK (id = 1),
	next_val INTEGER NOT NULL DEFAULT 1
);
INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1);`

// sequenceCounter numbers every history row, across the answer, session
// and LLM tables, in one increasing order. Reset keeps the counter so
// numbers are never reused.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

func newSequenceCounter(db *sql.DB) (*sequenceCounter, error) {
	if _, err := db.Exec(sequenceSchema); err != nil {
		return nil, fmt.Errorf("init sequence: %w", err)
	}
	return &sequenceCounter{db: db}, nil
}

// Next returns the next number and advances the counter.
func (c *sequenceCounter) Next(ctx context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var n int64
	row := c.db.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`)
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return n, nil
}
