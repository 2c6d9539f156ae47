package position

import (
	"context"
	"fmt"
	"time"
)

// Violation is a partition whose positions are not 0..n-1.
type Violation struct {
	Partition PartitionKey
	Positions []int
	Err       error
}

// Report is the result of checking every partition of a scope.
type Report struct {
	Table      string
	Partitions int
	Members    int
	Violations []Violation
}

// OK reports whether every partition is dense.
func (r Report) OK() bool {
	return len(r.Violations) == 0
}

// Check reads every partition of the scope in one statement and verifies the
// density invariant on each.
func (e *Engine) Check(ctx context.Context, s Scope) (r Report, err error) {
	defer e.observe(OpCheck, time.Now(), &err)
	if err := s.validate(); err != nil {
		return Report{}, err
	}
	ctx, cancel := e.store.withTimeout(ctx)
	defer cancel()

	rows, err := e.db.QueryContext(ctx,
		fmt.Sprintf(`SELECT %s, position FROM %s ORDER BY 1, position`, s.partitionExpr(), s.Table),
	)
	if err != nil {
		return Report{}, classify(ctx, fmt.Errorf("failed to scan %s: %w", s.Table, err))
	}
	defer rows.Close()

	byPartition := make(map[PartitionKey][]int)
	var order []PartitionKey
	for rows.Next() {
		var key int64
		var pos int
		if err := rows.Scan(&key, &pos); err != nil {
			return Report{}, classify(ctx, fmt.Errorf("failed to scan %s row: %w", s.Table, err))
		}
		k := PartitionKey(key)
		if _, seen := byPartition[k]; !seen {
			order = append(order, k)
		}
		byPartition[k] = append(byPartition[k], pos)
	}
	if err := rows.Err(); err != nil {
		return Report{}, classify(ctx, fmt.Errorf("failed to iterate %s rows: %w", s.Table, err))
	}

	r = Report{Table: s.Table, Partitions: len(order)}
	for _, k := range order {
		positions := byPartition[k]
		r.Members += len(positions)
		if err := CheckDense(positions); err != nil {
			r.Violations = append(r.Violations, Violation{Partition: k, Positions: positions, Err: err})
		}
	}
	return r, nil
}

// Compact renumbers partition key to 0..n-1, keeping the existing relative
// order. It repairs partitions written outside the engine.
func (e *Engine) Compact(ctx context.Context, s Scope, key PartitionKey) (err error) {
	defer e.observe(OpCompact, time.Now(), &err)
	if err := s.validate(); err != nil {
		return err
	}
	err = e.store.WithTx(ctx, func(ctx context.Context, tx *Tx) error {
		return tx.compact(ctx, s, key)
	})
	if err != nil {
		return err
	}
	e.logger.Info("compacted partition", "table", s.Table, "partition", key)
	return nil
}
