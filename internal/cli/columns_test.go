package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/ordo/internal/app"
	"github.com/thenoetrevino/ordo/internal/models"
	"github.com/thenoetrevino/ordo/internal/testutil"
)

func sampleColumns() []*models.Column {
	return []*models.Column{
		{ID: 1, Title: "Todo", Position: 0},
		{ID: 2, Title: "In Progress", Position: 1},
		{ID: 3, Title: "Done", Position: 2},
	}
}

func TestFindColumnByName(t *testing.T) {
	columns := sampleColumns()

	col, err := FindColumnByName(columns, "in progress")
	require.NoError(t, err)
	assert.Equal(t, 2, col.ID)

	_, err = FindColumnByName(columns, "Review")
	assert.ErrorIs(t, err, models.ErrColumnNotFound)
}

func TestFormatAvailableColumns(t *testing.T) {
	assert.Equal(t, "Todo, In Progress, Done", FormatAvailableColumns(sampleColumns()))
	assert.Equal(t, "", FormatAvailableColumns(nil))
}

func TestGetCurrentColumnName(t *testing.T) {
	assert.Equal(t, "Done", GetCurrentColumnName(sampleColumns(), 3))
	assert.Equal(t, "Unknown", GetCurrentColumnName(sampleColumns(), 42))
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"  yes  \n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"y", true},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			var out bytes.Buffer
			got := Confirm(strings.NewReader(tt.input), &out, "Delete column 'Done'?")
			assert.Equal(t, tt.want, got)
			assert.Equal(t, "Delete column 'Done'? (y/N): ", out.String())
		})
	}
}

func TestResolveColumn(t *testing.T) {
	db := testutil.SetupTestDB(t)
	a := app.New(db)
	c := &CLI{App: a}
	ctx := context.Background()

	doing := testutil.ColumnIDByTitle(t, db, "In Progress")

	byTitle, err := c.ResolveColumn(ctx, "IN PROGRESS")
	require.NoError(t, err)
	assert.Equal(t, doing, byTitle.ID)

	byID, err := c.ResolveColumn(ctx, byTitle.Title)
	require.NoError(t, err)
	assert.Equal(t, doing, byID.ID)

	_, err = c.ResolveColumn(ctx, "999")
	assert.ErrorIs(t, err, models.ErrColumnNotFound)

	_, err = c.ResolveColumn(ctx, "Archive")
	assert.ErrorIs(t, err, models.ErrColumnNotFound)
}
