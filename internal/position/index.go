// Package position keeps ordered partitions dense. Every partition holds the
// positions 0..n-1 with exactly one member per slot, and every mutation moves
// the partition from one dense configuration to the next inside a single
// transaction.
package position

import (
	"fmt"
	"slices"
)

// AtEnd asks an operation to use the slot after the last member of the
// target partition.
const AtEnd = -1

// PartitionKey identifies one ordered partition inside a Scope.
type PartitionKey int64

// TopLevel is the key of the only partition of an unpartitioned scope.
const TopLevel PartitionKey = 0

// Member is the placement of one row: which partition it occupies and where.
type Member struct {
	ID        int64
	Partition PartitionKey
	Position  int
}

// Shift describes a contiguous range rewrite. Every member in [Lo, Hi] other
// than the moved one has Delta added to its position.
type Shift struct {
	Lo    int
	Hi    int
	Delta int
}

// Empty reports whether the shift touches nothing.
func (s Shift) Empty() bool {
	return s.Delta == 0
}

// ValidateInsert checks an insert slot against the current partition size.
// Appending (pos == count) is allowed.
func ValidateInsert(pos, count int) error {
	if pos < 0 || pos > count {
		return fmt.Errorf("%w: %d outside [0, %d]", ErrInvalidPosition, pos, count)
	}
	return nil
}

// ValidateReorder checks a target slot for a member that already lives in the
// partition.
func ValidateReorder(pos, count int) error {
	if pos < 0 || pos >= count {
		return fmt.Errorf("%w: %d outside [0, %d)", ErrInvalidPosition, pos, count)
	}
	return nil
}

// PlanReorder returns the sibling shift needed to move a member from oldPos to
// newPos within its partition.
func PlanReorder(oldPos, newPos int) Shift {
	switch {
	case newPos < oldPos:
		return Shift{Lo: newPos, Hi: oldPos, Delta: 1}
	case newPos > oldPos:
		return Shift{Lo: oldPos, Hi: newPos, Delta: -1}
	default:
		return Shift{Lo: oldPos, Hi: oldPos}
	}
}

// resolve maps AtEnd onto the last valid slot given the number of free slots.
func resolve(pos, slots int) int {
	if pos == AtEnd {
		return slots
	}
	return pos
}

// CheckDense verifies that positions, in any order, are exactly 0..n-1.
func CheckDense(positions []int) error {
	sorted := slices.Clone(positions)
	slices.Sort(sorted)
	for want, got := range sorted {
		if got != want {
			return fmt.Errorf("%w: expected position %d, found %d", ErrNotDense, want, got)
		}
	}
	return nil
}
