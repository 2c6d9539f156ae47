package position

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

// Operation names reported to observers.
const (
	OpInsert     = "insert"
	OpDelete     = "delete"
	OpReorder    = "reorder"
	OpMove       = "move"
	OpEdit       = "edit"
	OpGetOrdered = "get_ordered"
	OpCheck      = "check"
	OpCompact    = "compact"
)

// Observer receives the outcome of every engine operation.
type Observer interface {
	ObserveOperation(op string, elapsed time.Duration, err error)
}

// WriteFunc stores a new member at pos inside the insert transaction and
// returns its id.
type WriteFunc func(ctx context.Context, tx *Tx, pos int) (int64, error)

// EditFunc changes the non-position fields of a member inside an engine
// transaction.
type EditFunc func(ctx context.Context, tx *Tx) error

// Engine implements insert, delete, reorder and cross-partition move as
// atomic operations over dense partitions.
type Engine struct {
	db       *sql.DB
	store    *Store
	logger   *slog.Logger
	observer Observer
	timeout  time.Duration
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithObserver registers an observer for operation outcomes.
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		e.observer = o
	}
}

// WithOpTimeout bounds every operation, including lock waits.
func WithOpTimeout(d time.Duration) Option {
	return func(e *Engine) {
		e.timeout = d
	}
}

// NewEngine creates an engine over db.
func NewEngine(db *sql.DB, opts ...Option) *Engine {
	e := &Engine{
		db:      db,
		logger:  slog.Default(),
		timeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.store = NewStore(db, e.timeout, e.logger)
	return e
}

// Store exposes the transaction runner for read-modify-write work that is
// not a position change (e.g. renaming a member).
func (e *Engine) Store() *Store {
	return e.store
}

func (e *Engine) observe(op string, start time.Time, errp *error) {
	if e.observer != nil {
		e.observer.ObserveOperation(op, time.Since(start), *errp)
	}
}

// Insert places a new member at pos in partition key, shifting every member at
// or after pos up by one. pos may be AtEnd.
func (e *Engine) Insert(ctx context.Context, s Scope, key PartitionKey, pos int, write WriteFunc) (m Member, err error) {
	defer e.observe(OpInsert, time.Now(), &err)
	if err := s.validate(); err != nil {
		return Member{}, err
	}

	err = e.store.WithTx(ctx, func(ctx context.Context, tx *Tx) error {
		count, err := tx.Count(ctx, s, key)
		if err != nil {
			return err
		}
		pos = resolve(pos, count)
		if err := ValidateInsert(pos, count); err != nil {
			return err
		}
		if pos < count {
			if err := tx.shiftFrom(ctx, s, key, pos, 1); err != nil {
				return err
			}
		}
		id, err := write(ctx, tx, pos)
		if err != nil {
			return err
		}
		m = Member{ID: id, Partition: key, Position: pos}
		return nil
	})
	if err != nil {
		return Member{}, err
	}

	e.logger.Debug("inserted member", "table", s.Table, "id", m.ID, "partition", m.Partition, "position", m.Position)
	return m, nil
}

// Delete removes member id and closes the gap it leaves in its partition. The
// returned Member is the placement the row had before removal.
func (e *Engine) Delete(ctx context.Context, s Scope, id int64) (m Member, err error) {
	defer e.observe(OpDelete, time.Now(), &err)
	if err := s.validate(); err != nil {
		return Member{}, err
	}

	err = e.store.WithTx(ctx, func(ctx context.Context, tx *Tx) error {
		cur, err := tx.Locate(ctx, s, id)
		if err != nil {
			return err
		}
		if err := tx.remove(ctx, s, id); err != nil {
			return err
		}
		m = cur
		return tx.shiftFrom(ctx, s, cur.Partition, cur.Position+1, -1)
	})
	if err != nil {
		return Member{}, err
	}

	e.logger.Debug("deleted member", "table", s.Table, "id", id, "partition", m.Partition, "position", m.Position)
	return m, nil
}

// Reorder moves member id to newPos inside its current partition. Only the
// members strictly between the old and new slots move, in one range rewrite.
func (e *Engine) Reorder(ctx context.Context, s Scope, id int64, newPos int) (m Member, err error) {
	defer e.observe(OpReorder, time.Now(), &err)
	if err := s.validate(); err != nil {
		return Member{}, err
	}

	err = e.store.WithTx(ctx, func(ctx context.Context, tx *Tx) error {
		placed, err := e.reorderTx(ctx, tx, s, id, newPos)
		if err != nil {
			return err
		}
		m = placed
		return nil
	})
	if err != nil {
		return Member{}, err
	}
	return m, nil
}

func (e *Engine) reorderTx(ctx context.Context, tx *Tx, s Scope, id int64, newPos int) (Member, error) {
	cur, err := tx.Locate(ctx, s, id)
	if err != nil {
		return Member{}, err
	}
	count, err := tx.Count(ctx, s, cur.Partition)
	if err != nil {
		return Member{}, err
	}
	newPos = resolve(newPos, count-1)
	if err := ValidateReorder(newPos, count); err != nil {
		return Member{}, err
	}

	shift := PlanReorder(cur.Position, newPos)
	if shift.Empty() {
		return cur, nil
	}
	if err := tx.rewriteRange(ctx, s, cur.Partition, id, newPos, shift); err != nil {
		return Member{}, err
	}
	if err := tx.touch(ctx, s, id); err != nil {
		return Member{}, err
	}

	e.logger.Debug("reordered member", "table", s.Table, "id", id, "partition", cur.Partition, "from", cur.Position, "to", newPos)
	return Member{ID: id, Partition: cur.Partition, Position: newPos}, nil
}

// Move transfers member id into partition target at newPos. The source gap is
// closed and the destination makes room in the same transaction. A move within
// the member's own partition is a Reorder.
func (e *Engine) Move(ctx context.Context, s Scope, id int64, target PartitionKey, newPos int) (m Member, err error) {
	defer e.observe(OpMove, time.Now(), &err)
	if err := s.validate(); err != nil {
		return Member{}, err
	}
	if !s.Partitioned() && target != TopLevel {
		return Member{}, fmt.Errorf("%w: %s", ErrInvalidPartition, s.Table)
	}

	err = e.store.WithTx(ctx, func(ctx context.Context, tx *Tx) error {
		cur, err := tx.Locate(ctx, s, id)
		if err != nil {
			return err
		}
		if cur.Partition == target {
			placed, err := e.reorderTx(ctx, tx, s, id, newPos)
			if err != nil {
				return err
			}
			m = placed
			return nil
		}

		count, err := tx.Count(ctx, s, target)
		if err != nil {
			return err
		}
		newPos = resolve(newPos, count)
		if err := ValidateInsert(newPos, count); err != nil {
			return err
		}

		if err := tx.park(ctx, s, id, target, newPos); err != nil {
			return err
		}
		if err := tx.shiftFrom(ctx, s, cur.Partition, cur.Position+1, -1); err != nil {
			return err
		}
		// Settling the target also lands the parked member on newPos.
		if err := tx.shiftFrom(ctx, s, target, newPos, 1); err != nil {
			return err
		}
		if err := tx.touch(ctx, s, id); err != nil {
			return err
		}

		e.logger.Debug("moved member", "table", s.Table, "id", id,
			"from_partition", cur.Partition, "from", cur.Position,
			"to_partition", target, "to", newPos)
		m = Member{ID: id, Partition: target, Position: newPos}
		return nil
	})
	if err != nil {
		return Member{}, err
	}
	return m, nil
}

// Edit applies edit to member id and, when newPos is not nil, reorders it
// within its partition. Both happen in one transaction.
func (e *Engine) Edit(ctx context.Context, s Scope, id int64, newPos *int, edit EditFunc) (m Member, err error) {
	defer e.observe(OpEdit, time.Now(), &err)
	if err := s.validate(); err != nil {
		return Member{}, err
	}

	err = e.store.WithTx(ctx, func(ctx context.Context, tx *Tx) error {
		cur, err := tx.Locate(ctx, s, id)
		if err != nil {
			return err
		}
		if edit != nil {
			if err := edit(ctx, tx); err != nil {
				return err
			}
		}
		if newPos != nil {
			cur, err = e.reorderTx(ctx, tx, s, id, *newPos)
			if err != nil {
				return err
			}
		}
		m = cur
		return tx.touch(ctx, s, id)
	})
	if err != nil {
		return Member{}, err
	}
	return m, nil
}

// GetOrdered returns a snapshot of partition key ordered by position. It is a
// single statement, so it never observes a half-applied shift.
func (e *Engine) GetOrdered(ctx context.Context, s Scope, key PartitionKey) (members []Member, err error) {
	defer e.observe(OpGetOrdered, time.Now(), &err)
	if err := s.validate(); err != nil {
		return nil, err
	}
	ctx, cancel := e.store.withTimeout(ctx)
	defer cancel()

	where, args := s.filter(key)
	rows, err := e.db.QueryContext(ctx,
		fmt.Sprintf(`SELECT id, position FROM %s WHERE %s ORDER BY position`, s.Table, where),
		args...,
	)
	if err != nil {
		return nil, classify(ctx, fmt.Errorf("failed to query %s: %w", s.Table, err))
	}
	defer rows.Close()

	members = []Member{}
	for rows.Next() {
		m := Member{Partition: key}
		if err := rows.Scan(&m.ID, &m.Position); err != nil {
			return nil, classify(ctx, fmt.Errorf("failed to scan %s row: %w", s.Table, err))
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(ctx, fmt.Errorf("failed to iterate %s rows: %w", s.Table, err))
	}
	return members, nil
}
