package position

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"
)

func TestInsertShiftsTail(t *testing.T) {
	db := setupTestDB(t)
	e := NewEngine(db)
	col := mustColumn(t, e, "Todo")

	mustTask(t, e, col, 0, "A")
	mustTask(t, e, col, 1, "B")
	mustTask(t, e, col, 2, "C")
	mustTask(t, e, col, 1, "X")

	assertTitles(t, db, col, "A", "X", "B", "C")
	assertDense(t, e, taskScope)
}

func TestInsertAtEnd(t *testing.T) {
	db := setupTestDB(t)
	e := NewEngine(db)
	col := mustColumn(t, e, "Todo")

	mustTask(t, e, col, AtEnd, "A")
	mustTask(t, e, col, AtEnd, "B")

	m, err := e.Insert(context.Background(), taskScope, PartitionKey(col), AtEnd, insertTask("C", col))
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if m.Position != 2 {
		t.Errorf("Expected appended position 2, got %d", m.Position)
	}
	assertTitles(t, db, col, "A", "B", "C")
}

func TestInsertIntoEmptyPartition(t *testing.T) {
	db := setupTestDB(t)
	e := NewEngine(db)
	col := mustColumn(t, e, "Todo")

	m, err := e.Insert(context.Background(), taskScope, PartitionKey(col), 0, insertTask("A", col))
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if m.Position != 0 || m.Partition != PartitionKey(col) {
		t.Errorf("Unexpected placement: %+v", m)
	}
}

func TestInsertInvalidPosition(t *testing.T) {
	db := setupTestDB(t)
	e := NewEngine(db)
	col := mustColumn(t, e, "Todo")
	mustTask(t, e, col, 0, "A")

	for _, pos := range []int{2, -5} {
		_, err := e.Insert(context.Background(), taskScope, PartitionKey(col), pos, insertTask("Z", col))
		if !errors.Is(err, ErrInvalidPosition) {
			t.Errorf("Insert at %d: expected ErrInvalidPosition, got %v", pos, err)
		}
	}
	assertTitles(t, db, col, "A")
}

func TestInsertWriteFailureRollsBackShift(t *testing.T) {
	db := setupTestDB(t)
	e := NewEngine(db)
	col := mustColumn(t, e, "Todo")
	mustTask(t, e, col, 0, "A")
	mustTask(t, e, col, 1, "B")

	boom := errors.New("boom")
	_, err := e.Insert(context.Background(), taskScope, PartitionKey(col), 0, func(ctx context.Context, tx *Tx, pos int) (int64, error) {
		return 0, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Expected write error, got %v", err)
	}

	members, err := e.GetOrdered(context.Background(), taskScope, PartitionKey(col))
	if err != nil {
		t.Fatalf("GetOrdered failed: %v", err)
	}
	for i, m := range members {
		if m.Position != i {
			t.Errorf("Position %d changed to %d after rollback", i, m.Position)
		}
	}
	assertTitles(t, db, col, "A", "B")
}

func TestDeleteClosesGap(t *testing.T) {
	db := setupTestDB(t)
	e := NewEngine(db)
	col := mustColumn(t, e, "Todo")
	mustTask(t, e, col, AtEnd, "A")
	b := mustTask(t, e, col, AtEnd, "B")
	mustTask(t, e, col, AtEnd, "C")
	mustTask(t, e, col, AtEnd, "D")

	m, err := e.Delete(context.Background(), taskScope, b)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if m.Position != 1 {
		t.Errorf("Expected deleted member to report position 1, got %d", m.Position)
	}

	assertTitles(t, db, col, "A", "C", "D")
	assertDense(t, e, taskScope)
}

func TestDeleteNotFound(t *testing.T) {
	db := setupTestDB(t)
	e := NewEngine(db)

	_, err := e.Delete(context.Background(), taskScope, 999)
	if !errors.Is(err, ErrMemberNotFound) {
		t.Errorf("Expected ErrMemberNotFound, got %v", err)
	}
}

func TestReorder(t *testing.T) {
	tests := []struct {
		name   string
		from   int
		to     int
		expect []string
	}{
		{"head to tail", 0, 3, []string{"B", "C", "D", "A"}},
		{"tail to head", 3, 0, []string{"D", "A", "B", "C"}},
		{"middle down", 1, 2, []string{"A", "C", "B", "D"}},
		{"middle up", 2, 1, []string{"A", "C", "B", "D"}},
		{"at end", 1, AtEnd, []string{"A", "C", "D", "B"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupTestDB(t)
			e := NewEngine(db)
			col := mustColumn(t, e, "Todo")
			var ids []int64
			for _, title := range []string{"A", "B", "C", "D"} {
				ids = append(ids, mustTask(t, e, col, AtEnd, title))
			}

			m, err := e.Reorder(context.Background(), taskScope, ids[tt.from], tt.to)
			if err != nil {
				t.Fatalf("Reorder failed: %v", err)
			}
			if tt.to != AtEnd && m.Position != tt.to {
				t.Errorf("Expected position %d, got %d", tt.to, m.Position)
			}
			assertTitles(t, db, col, tt.expect...)
			assertDense(t, e, taskScope)
		})
	}
}

func TestReorderIdempotent(t *testing.T) {
	db := setupTestDB(t)
	e := NewEngine(db)
	col := mustColumn(t, e, "Todo")
	mustTask(t, e, col, AtEnd, "A")
	b := mustTask(t, e, col, AtEnd, "B")
	mustTask(t, e, col, AtEnd, "C")

	for i := 0; i < 2; i++ {
		if _, err := e.Reorder(context.Background(), taskScope, b, 2); err != nil {
			t.Fatalf("Reorder #%d failed: %v", i+1, err)
		}
		assertTitles(t, db, col, "A", "C", "B")
	}

	// Same slot is a no-op.
	m, err := e.Reorder(context.Background(), taskScope, b, 2)
	if err != nil {
		t.Fatalf("Reorder to current slot failed: %v", err)
	}
	if m.Position != 2 {
		t.Errorf("Expected position 2, got %d", m.Position)
	}
}

func TestReorderRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	e := NewEngine(db)
	col := mustColumn(t, e, "Todo")
	var ids []int64
	for _, title := range []string{"A", "B", "C", "D", "E"} {
		ids = append(ids, mustTask(t, e, col, AtEnd, title))
	}

	if _, err := e.Reorder(context.Background(), taskScope, ids[1], 4); err != nil {
		t.Fatalf("Reorder failed: %v", err)
	}
	if _, err := e.Reorder(context.Background(), taskScope, ids[1], 1); err != nil {
		t.Fatalf("Reorder back failed: %v", err)
	}
	assertTitles(t, db, col, "A", "B", "C", "D", "E")
}

func TestReorderInvalidPosition(t *testing.T) {
	db := setupTestDB(t)
	e := NewEngine(db)
	col := mustColumn(t, e, "Todo")
	a := mustTask(t, e, col, AtEnd, "A")
	mustTask(t, e, col, AtEnd, "B")

	for _, pos := range []int{2, -3} {
		_, err := e.Reorder(context.Background(), taskScope, a, pos)
		if !errors.Is(err, ErrInvalidPosition) {
			t.Errorf("Reorder to %d: expected ErrInvalidPosition, got %v", pos, err)
		}
	}
	assertTitles(t, db, col, "A", "B")
}

func TestReorderNotFound(t *testing.T) {
	db := setupTestDB(t)
	e := NewEngine(db)

	_, err := e.Reorder(context.Background(), columnScope, 42, 0)
	if !errors.Is(err, ErrMemberNotFound) {
		t.Errorf("Expected ErrMemberNotFound, got %v", err)
	}
}

func TestReorderTouchesMovedMember(t *testing.T) {
	db := setupTestDB(t)
	e := NewEngine(db)
	col := mustColumn(t, e, "Todo")
	a := mustTask(t, e, col, AtEnd, "A")
	mustTask(t, e, col, AtEnd, "B")

	if _, err := db.Exec(`UPDATE tasks SET updated_at = '2000-01-01 00:00:00'`); err != nil {
		t.Fatalf("Failed to backdate tasks: %v", err)
	}
	if _, err := e.Reorder(context.Background(), taskScope, a, 1); err != nil {
		t.Fatalf("Reorder failed: %v", err)
	}

	var touched bool
	err := db.QueryRow(`SELECT updated_at <> '2000-01-01 00:00:00' FROM tasks WHERE id = ?`, a).Scan(&touched)
	if err != nil {
		t.Fatalf("Failed to read updated_at: %v", err)
	}
	if !touched {
		t.Error("Expected moved member to be touched")
	}
}

func TestColumnLifecycle(t *testing.T) {
	db := setupTestDB(t)
	e := NewEngine(db)
	ctx := context.Background()

	a := mustColumn(t, e, "A")
	mustColumn(t, e, "B")
	c := mustColumn(t, e, "C")

	if _, err := e.Reorder(ctx, columnScope, c, 0); err != nil {
		t.Fatalf("Reorder failed: %v", err)
	}
	expectColumns(t, e, db, "C", "A", "B")

	if _, err := e.Delete(ctx, columnScope, a); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	expectColumns(t, e, db, "C", "B")

	if _, err := e.Insert(ctx, columnScope, TopLevel, 1, insertColumn("D")); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	expectColumns(t, e, db, "C", "D", "B")
	assertDense(t, e, columnScope)
}

func expectColumns(t *testing.T, e *Engine, db *sql.DB, want ...string) {
	t.Helper()
	members, err := e.GetOrdered(context.Background(), columnScope, TopLevel)
	if err != nil {
		t.Fatalf("GetOrdered failed: %v", err)
	}
	if len(members) != len(want) {
		t.Fatalf("Expected %d columns, got %d", len(want), len(members))
	}
	for i, m := range members {
		var title string
		if err := db.QueryRow(`SELECT title FROM columns WHERE id = ?`, m.ID).Scan(&title); err != nil {
			t.Fatalf("Failed to read column %d: %v", m.ID, err)
		}
		if m.Position != i || title != want[i] {
			t.Fatalf("Slot %d: expected %q, got %q at position %d", i, want[i], title, m.Position)
		}
	}
}

func TestMoveAcrossPartitions(t *testing.T) {
	db := setupTestDB(t)
	e := NewEngine(db)
	p1 := mustColumn(t, e, "P1")
	p2 := mustColumn(t, e, "P2")
	mustTask(t, e, p1, AtEnd, "X")
	y := mustTask(t, e, p1, AtEnd, "Y")
	mustTask(t, e, p2, AtEnd, "Z")

	m, err := e.Move(context.Background(), taskScope, y, PartitionKey(p2), 0)
	if err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	if m.Partition != PartitionKey(p2) || m.Position != 0 {
		t.Errorf("Unexpected placement: %+v", m)
	}

	assertTitles(t, db, p1, "X")
	assertTitles(t, db, p2, "Y", "Z")
	assertDense(t, e, taskScope)
}

func TestMoveRoundTripAcrossPartitions(t *testing.T) {
	db := setupTestDB(t)
	e := NewEngine(db)
	p1 := mustColumn(t, e, "P1")
	p2 := mustColumn(t, e, "P2")
	mustTask(t, e, p1, AtEnd, "A")
	b := mustTask(t, e, p1, AtEnd, "B")
	mustTask(t, e, p1, AtEnd, "C")
	mustTask(t, e, p1, AtEnd, "D")
	mustTask(t, e, p2, AtEnd, "Z")

	if _, err := e.Move(context.Background(), taskScope, b, PartitionKey(p2), 1); err != nil {
		t.Fatalf("Move out failed: %v", err)
	}
	assertTitles(t, db, p1, "A", "C", "D")
	assertTitles(t, db, p2, "Z", "B")
	assertDense(t, e, taskScope)

	m, err := e.Move(context.Background(), taskScope, b, PartitionKey(p1), 1)
	if err != nil {
		t.Fatalf("Move back failed: %v", err)
	}
	if m.Partition != PartitionKey(p1) || m.Position != 1 {
		t.Errorf("Unexpected placement: %+v", m)
	}

	assertTitles(t, db, p1, "A", "B", "C", "D")
	assertTitles(t, db, p2, "Z")
	assertDense(t, e, taskScope)
}

func TestMoveConservesMembers(t *testing.T) {
	db := setupTestDB(t)
	e := NewEngine(db)
	p1 := mustColumn(t, e, "P1")
	p2 := mustColumn(t, e, "P2")
	var ids []int64
	for _, title := range []string{"A", "B", "C", "D"} {
		ids = append(ids, mustTask(t, e, p1, AtEnd, title))
	}
	mustTask(t, e, p2, AtEnd, "E")
	mustTask(t, e, p2, AtEnd, "F")

	moves := []struct {
		id     int64
		target int64
		pos    int
	}{
		{ids[0], p2, 1},
		{ids[2], p2, AtEnd},
		{ids[1], p2, 0},
		{ids[0], p1, 0},
	}
	for _, mv := range moves {
		if _, err := e.Move(context.Background(), taskScope, mv.id, PartitionKey(mv.target), mv.pos); err != nil {
			t.Fatalf("Move %d -> %d@%d failed: %v", mv.id, mv.target, mv.pos, err)
		}
		assertDense(t, e, taskScope)
	}

	assertTitles(t, db, p1, "A", "D")
	assertTitles(t, db, p2, "B", "E", "F", "C")
}

func TestMoveWithinPartitionIsReorder(t *testing.T) {
	db := setupTestDB(t)
	e := NewEngine(db)
	col := mustColumn(t, e, "Todo")
	a := mustTask(t, e, col, AtEnd, "A")
	mustTask(t, e, col, AtEnd, "B")
	mustTask(t, e, col, AtEnd, "C")

	if _, err := e.Move(context.Background(), taskScope, a, PartitionKey(col), 2); err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	assertTitles(t, db, col, "B", "C", "A")

	// Within the same partition the last slot is count-1.
	_, err := e.Move(context.Background(), taskScope, a, PartitionKey(col), 3)
	if !errors.Is(err, ErrInvalidPosition) {
		t.Errorf("Expected ErrInvalidPosition, got %v", err)
	}
}

func TestMoveInvalidTargetPosition(t *testing.T) {
	db := setupTestDB(t)
	e := NewEngine(db)
	p1 := mustColumn(t, e, "P1")
	p2 := mustColumn(t, e, "P2")
	x := mustTask(t, e, p1, AtEnd, "X")
	mustTask(t, e, p2, AtEnd, "Z")

	_, err := e.Move(context.Background(), taskScope, x, PartitionKey(p2), 2)
	if !errors.Is(err, ErrInvalidPosition) {
		t.Fatalf("Expected ErrInvalidPosition, got %v", err)
	}
	assertTitles(t, db, p1, "X")
	assertTitles(t, db, p2, "Z")
}

func TestMoveIntoMissingPartition(t *testing.T) {
	db := setupTestDB(t)
	e := NewEngine(db)
	p1 := mustColumn(t, e, "P1")
	x := mustTask(t, e, p1, AtEnd, "X")

	_, err := e.Move(context.Background(), taskScope, x, PartitionKey(999), 0)
	if err == nil {
		t.Fatal("Expected error moving into a partition with no parent row")
	}
	assertTitles(t, db, p1, "X")
}

func TestMoveUnpartitionedScope(t *testing.T) {
	db := setupTestDB(t)
	e := NewEngine(db)
	a := mustColumn(t, e, "A")

	_, err := e.Move(context.Background(), columnScope, a, PartitionKey(7), 0)
	if !errors.Is(err, ErrInvalidPartition) {
		t.Errorf("Expected ErrInvalidPartition, got %v", err)
	}
}

func TestGetOrderedEmpty(t *testing.T) {
	db := setupTestDB(t)
	e := NewEngine(db)
	col := mustColumn(t, e, "Todo")

	members, err := e.GetOrdered(context.Background(), taskScope, PartitionKey(col))
	if err != nil {
		t.Fatalf("GetOrdered failed: %v", err)
	}
	if members == nil || len(members) != 0 {
		t.Errorf("Expected empty non-nil slice, got %#v", members)
	}
}

func TestCancelledContextLeavesPartitionUnchanged(t *testing.T) {
	db := setupTestDB(t)
	e := NewEngine(db)
	col := mustColumn(t, e, "Todo")
	mustTask(t, e, col, AtEnd, "A")
	mustTask(t, e, col, AtEnd, "B")

	ctx, cancel := context.WithCancel(context.Background())
	_, err := e.Insert(ctx, taskScope, PartitionKey(col), 0, func(ctx context.Context, tx *Tx, pos int) (int64, error) {
		cancel()
		return insertTask("X", col)(ctx, tx, pos)
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}

	assertTitles(t, db, col, "A", "B")
	assertDense(t, e, taskScope)
}

func TestDeadlineIsContention(t *testing.T) {
	db := setupTestDB(t)
	e := NewEngine(db, WithOpTimeout(50*time.Millisecond))
	col := mustColumn(t, e, "Todo")

	_, err := e.Insert(context.Background(), taskScope, PartitionKey(col), 0, func(ctx context.Context, tx *Tx, pos int) (int64, error) {
		<-ctx.Done()
		return 0, ctx.Err()
	})
	if !errors.Is(err, ErrContention) {
		t.Fatalf("Expected ErrContention, got %v", err)
	}
	if !IsRetryable(err) {
		t.Error("Expected contention to be retryable")
	}
}

type recordingObserver struct {
	ops  []string
	errs []error
}

func (r *recordingObserver) ObserveOperation(op string, _ time.Duration, err error) {
	r.ops = append(r.ops, op)
	r.errs = append(r.errs, err)
}

func TestObserverSeesOutcome(t *testing.T) {
	db := setupTestDB(t)
	obs := &recordingObserver{}
	e := NewEngine(db, WithObserver(obs))

	mustColumn(t, e, "A")
	_, _ = e.Delete(context.Background(), columnScope, 999)

	if len(obs.ops) != 2 || obs.ops[0] != OpInsert || obs.ops[1] != OpDelete {
		t.Fatalf("Unexpected observed ops: %v", obs.ops)
	}
	if obs.errs[0] != nil {
		t.Errorf("Expected successful insert, got %v", obs.errs[0])
	}
	if !errors.Is(obs.errs[1], ErrMemberNotFound) {
		t.Errorf("Expected observed ErrMemberNotFound, got %v", obs.errs[1])
	}
}

func TestEditWithReorder(t *testing.T) {
	db := setupTestDB(t)
	e := NewEngine(db)
	col := mustColumn(t, e, "Todo")
	a := mustTask(t, e, col, AtEnd, "A")
	mustTask(t, e, col, AtEnd, "B")
	mustTask(t, e, col, AtEnd, "C")

	last := 2
	m, err := e.Edit(context.Background(), taskScope, a, &last, func(ctx context.Context, tx *Tx) error {
		_, err := tx.ExecContext(ctx, `UPDATE tasks SET title = ? WHERE id = ?`, "A2", a)
		return err
	})
	if err != nil {
		t.Fatalf("Edit failed: %v", err)
	}
	if m.Position != 2 {
		t.Errorf("Expected position 2, got %d", m.Position)
	}
	assertTitles(t, db, col, "B", "C", "A2")
}

func TestEditRollsBackOnInvalidPosition(t *testing.T) {
	db := setupTestDB(t)
	e := NewEngine(db)
	col := mustColumn(t, e, "Todo")
	a := mustTask(t, e, col, AtEnd, "A")

	bad := 5
	_, err := e.Edit(context.Background(), taskScope, a, &bad, func(ctx context.Context, tx *Tx) error {
		_, err := tx.ExecContext(ctx, `UPDATE tasks SET title = ? WHERE id = ?`, "renamed", a)
		return err
	})
	if !errors.Is(err, ErrInvalidPosition) {
		t.Fatalf("Expected ErrInvalidPosition, got %v", err)
	}
	assertTitles(t, db, col, "A")
}

func TestEditNotFound(t *testing.T) {
	db := setupTestDB(t)
	e := NewEngine(db)

	_, err := e.Edit(context.Background(), columnScope, 77, nil, nil)
	if !errors.Is(err, ErrMemberNotFound) {
		t.Errorf("Expected ErrMemberNotFound, got %v", err)
	}
}
