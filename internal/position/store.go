package position

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// Store runs partition mutations as single transactions against the database.
// The database handle must open write transactions with the write lock held
// from BEGIN (SQLite: _txlock=immediate) so that counts and locations read in
// a transaction cannot go stale before its writes.
type Store struct {
	db        *sql.DB
	opTimeout time.Duration
	logger    *slog.Logger
}

// NewStore wraps db. A zero opTimeout leaves deadlines to the caller.
func NewStore(db *sql.DB, opTimeout time.Duration, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{db: db, opTimeout: opTimeout, logger: logger}
}

// withTimeout bounds ctx by the store's operation timeout.
func (s *Store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.opTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.opTimeout)
}

// WithTx executes fn inside one transaction. Any error from fn, from commit,
// or from a cancelled context rolls back every write fn made.
func (s *Store) WithTx(ctx context.Context, fn func(context.Context, *Tx) error) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return classify(ctx, fmt.Errorf("failed to begin transaction: %w", err))
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			s.logger.Error("failed to rollback transaction", "error", err)
		}
	}()

	if err := fn(ctx, &Tx{tx: tx}); err != nil {
		return classify(ctx, err)
	}

	if err := tx.Commit(); err != nil {
		return classify(ctx, fmt.Errorf("failed to commit transaction: %w", err))
	}
	return nil
}

// Tx is an open partition transaction. Callers get one inside WithTx and in
// engine write callbacks; it must not escape them.
type Tx struct {
	tx *sql.Tx
}

// ExecContext runs a statement in the transaction.
func (t *Tx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return t.tx.ExecContext(ctx, query, args...)
}

// QueryRowContext runs a single-row query in the transaction.
func (t *Tx) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return t.tx.QueryRowContext(ctx, query, args...)
}

// Count returns the number of members currently in the partition.
func (t *Tx) Count(ctx context.Context, s Scope, key PartitionKey) (int, error) {
	where, args := s.filter(key)
	var count int
	err := t.tx.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s`, s.Table, where),
		args...,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", s.Table, err)
	}
	return count, nil
}

// Locate returns where member id currently sits.
func (t *Tx) Locate(ctx context.Context, s Scope, id int64) (Member, error) {
	m := Member{ID: id}
	var key int64
	err := t.tx.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT %s, position FROM %s WHERE id = ?`, s.partitionExpr(), s.Table),
		id,
	).Scan(&key, &m.Position)
	if errors.Is(err, sql.ErrNoRows) {
		return Member{}, fmt.Errorf("%w: %s %d", ErrMemberNotFound, s.Table, id)
	}
	if err != nil {
		return Member{}, fmt.Errorf("failed to locate %s %d: %w", s.Table, id, err)
	}
	m.Partition = PartitionKey(key)
	return m, nil
}

// shiftFrom adds delta to every position >= from in the partition.
func (t *Tx) shiftFrom(ctx context.Context, s Scope, key PartitionKey, from, delta int) error {
	where, args := s.filter(key)
	args = append([]any{delta}, append(args, from)...)
	_, err := t.tx.ExecContext(ctx,
		fmt.Sprintf(`UPDATE %s SET position = -(position + ?) - 1 WHERE %s AND position >= ?`, s.Table, where),
		args...,
	)
	if err != nil {
		return fmt.Errorf("failed to shift %s from %d by %d: %w", s.Table, from, delta, err)
	}
	return t.settle(ctx, s, key)
}

// rewriteRange applies a reorder shift and places id at target in one
// conditional update over the affected range.
func (t *Tx) rewriteRange(ctx context.Context, s Scope, key PartitionKey, id int64, target int, shift Shift) error {
	where, args := s.filter(key)
	args = append([]any{id, target, shift.Delta}, append(args, shift.Lo, shift.Hi)...)
	_, err := t.tx.ExecContext(ctx,
		fmt.Sprintf(`UPDATE %s SET position = -(CASE
			WHEN id = ? THEN ?
			ELSE position + ?
		END) - 1
		WHERE %s AND position BETWEEN ? AND ?`, s.Table, where),
		args...,
	)
	if err != nil {
		return fmt.Errorf("failed to rewrite %s range [%d, %d]: %w", s.Table, shift.Lo, shift.Hi, err)
	}
	return t.settle(ctx, s, key)
}

// park moves id into partition key at the staged (negative) image of pos. The
// next settle of that partition lands it on pos.
func (t *Tx) park(ctx context.Context, s Scope, id int64, key PartitionKey, pos int) error {
	_, err := t.tx.ExecContext(ctx,
		fmt.Sprintf(`UPDATE %s SET %s = ?, position = ? WHERE id = ?`, s.Table, s.PartitionColumn),
		int64(key), -pos-1, id,
	)
	if err != nil {
		return fmt.Errorf("failed to park %s %d: %w", s.Table, id, err)
	}
	return nil
}

// settle flips staged positions back to their final values. Staging through
// the negative mirror keeps UNIQUE(partition, position) intact row by row.
func (t *Tx) settle(ctx context.Context, s Scope, key PartitionKey) error {
	where, args := s.filter(key)
	_, err := t.tx.ExecContext(ctx,
		fmt.Sprintf(`UPDATE %s SET position = -position - 1 WHERE %s AND position < 0`, s.Table, where),
		args...,
	)
	if err != nil {
		return fmt.Errorf("failed to settle %s positions: %w", s.Table, err)
	}
	return nil
}

// remove deletes the member row.
func (t *Tx) remove(ctx context.Context, s Scope, id int64) error {
	res, err := t.tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, s.Table), id)
	if err != nil {
		return fmt.Errorf("failed to delete %s %d: %w", s.Table, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s %d", ErrMemberNotFound, s.Table, id)
	}
	return nil
}

// touch stamps the scope's touch column on id.
func (t *Tx) touch(ctx context.Context, s Scope, id int64) error {
	if s.TouchColumn == "" {
		return nil
	}
	_, err := t.tx.ExecContext(ctx,
		fmt.Sprintf(`UPDATE %s SET %s = CURRENT_TIMESTAMP WHERE id = ?`, s.Table, s.TouchColumn),
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to touch %s %d: %w", s.Table, id, err)
	}
	return nil
}

// compact renumbers the partition densely, keeping the current relative order
// and breaking ties by id.
func (t *Tx) compact(ctx context.Context, s Scope, key PartitionKey) error {
	where, args := s.filter(key)
	_, err := t.tx.ExecContext(ctx,
		fmt.Sprintf(`UPDATE %[1]s SET position = -ranked.rn
		FROM (
			SELECT id, ROW_NUMBER() OVER (ORDER BY position, id) AS rn
			FROM %[1]s WHERE %[2]s
		) AS ranked
		WHERE %[1]s.id = ranked.id`, s.Table, where),
		args...,
	)
	if err != nil {
		return fmt.Errorf("failed to compact %s: %w", s.Table, err)
	}
	return t.settle(ctx, s, key)
}
