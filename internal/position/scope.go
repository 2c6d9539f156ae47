package position

import "fmt"

// Scope names the table that stores one kind of ordered member. Rows must have
// an integer id and an integer position column.
type Scope struct {
	// Table holding the members.
	Table string

	// PartitionColumn groups rows into partitions. Empty means the whole
	// table is a single partition keyed by TopLevel.
	PartitionColumn string

	// TouchColumn, when set, is stamped with CURRENT_TIMESTAMP on the member
	// that an operation moves.
	TouchColumn string
}

// Partitioned reports whether the scope has more than one partition.
func (s Scope) Partitioned() bool {
	return s.PartitionColumn != ""
}

// validate guards the identifiers that are interpolated into SQL.
func (s Scope) validate() error {
	for _, ident := range []string{s.Table, s.PartitionColumn, s.TouchColumn} {
		for _, r := range ident {
			if r != '_' && (r < 'a' || r > 'z') && (r < '0' || r > '9') {
				return fmt.Errorf("invalid identifier %q in scope", ident)
			}
		}
	}
	if s.Table == "" {
		return fmt.Errorf("scope has no table")
	}
	return nil
}

// partitionExpr is the SQL expression yielding a row's partition key.
func (s Scope) partitionExpr() string {
	if s.Partitioned() {
		return s.PartitionColumn
	}
	return "0"
}

// filter returns a WHERE fragment restricting rows to key, with its args.
func (s Scope) filter(key PartitionKey) (string, []any) {
	if s.Partitioned() {
		return s.PartitionColumn + " = ?", []any{int64(key)}
	}
	return "1 = 1", nil
}
