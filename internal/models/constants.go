package models

// ============================================================================
// FIELD LIMITS
// ============================================================================

// Field length limits shared by the services and the HTTP layer
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 2000
)

// ============================================================================
// POSITION CONSTANTS
// ============================================================================

// AppendPosition requests the slot after the last member of a column or board
const AppendPosition = -1

// ============================================================================
// DEFAULT BOARD
// ============================================================================

// DefaultColumns are seeded, in order, into a fresh database
var DefaultColumns = []string{"Todo", "In Progress", "Done"}
