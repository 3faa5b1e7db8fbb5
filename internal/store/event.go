package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	entsql "entgo.io/ent/dialect/sql"
)

// sequenceCounter hands out the global monotonic sequence number stamped
// on every appended row (sessions, quizzes, submissions, LLM events).
// "Most recent" queries order by it rather than by timestamp, so two
// rows written in the same clock tick still have a defined order.
//
// The mutex serializes within the process; UPDATE ... RETURNING makes the
// increment atomic at the database level. Both SQLite and Postgres accept
// the statements below unchanged.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

// newSequenceCounter seeds the single counter row. The table itself is
// created by migrate.
func newSequenceCounter(ctx context.Context, db *sql.DB, dialectName string) (*sequenceCounter, error) {
	seed := entsql.Dialect(dialectName).Insert(globalSequenceTable.Name).
		Columns("id", "next_val").
		Values(1, 1).
		OnConflict(entsql.ConflictColumns("id"), entsql.DoNothing())
	query, args := seed.Query()
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}
	return &sequenceCounter{db: db}, nil
}

// Next atomically returns the next sequence number and increments the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	err := sc.db.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}
