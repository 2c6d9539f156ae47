package task

import (
	"strconv"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ordocli "github.com/thenoetrevino/ordo/internal/cli"
	"github.com/thenoetrevino/ordo/internal/testutil"
	"github.com/thenoetrevino/ordo/internal/testutil/cli"
)

func TestCreateTask_Integration(t *testing.T) {
	db, app := cli.SetupCLITest(t)
	todo := testutil.ColumnIDByTitle(t, db, "Todo")

	t.Run("append by column title", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, app, CreateCmd(), []string{"--title", "First", "--column", "todo"})
		require.NoError(t, err)
		assert.Contains(t, output, "Task 'First' created successfully")
		assert.Contains(t, output, "Column: Todo, position 0")
	})

	t.Run("append by column ID in quiet mode", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, app, CreateCmd(), []string{"--title", "Second", "--column", strconv.Itoa(todo), "--quiet"})
		require.NoError(t, err)
		_, convErr := strconv.Atoi(strings.TrimSpace(output))
		assert.NoError(t, convErr, "quiet output should be the task ID")
	})

	t.Run("insert at head with JSON output", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, app, CreateCmd(), []string{
			"--title", "Head", "--column", "Todo", "--position", "0",
			"--description", "**urgent**", "--json",
		})
		require.NoError(t, err)

		result := testutil.ParseJSON(t, output)
		task := result["task"].(map[string]interface{})
		assert.Equal(t, "Head", task["title"])
		assert.Equal(t, "**urgent**", task["description"])
		assert.Equal(t, float64(0), task["position"])
		assert.Equal(t, float64(todo), task["column_id"])
	})

	assert.Equal(t, []string{"Head", "First", "Second"}, testutil.TaskTitles(t, db, todo))
}

func TestCreateTask_Negative(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode int
	}{
		{"unknown column title", []string{"--title", "x", "--column", "Nope"}, ordocli.ExitNotFound},
		{"unknown column id", []string{"--title", "x", "--column", "999"}, ordocli.ExitNotFound},
		{"empty title", []string{"--title", "", "--column", "Todo"}, ordocli.ExitValidation},
		{"description too long", []string{"--title", "x", "--column", "Todo", "--description", strings.Repeat("d", 2001)}, ordocli.ExitValidation},
		{"position past end", []string{"--title", "x", "--column", "Todo", "--position", "1"}, ordocli.ExitValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, app := cli.SetupCLITest(t)

			_, err := cli.ExecuteCLICommand(t, app, CreateCmd(), tt.args)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, ordocli.ExitCodeFor(err))
			assert.Empty(t, testutil.TaskTitles(t, db, testutil.ColumnIDByTitle(t, db, "Todo")))
		})
	}

	t.Run("unknown column suggests available columns", func(t *testing.T) {
		_, app := cli.SetupCLITest(t)

		output, err := cli.ExecuteCLICommand(t, app, CreateCmd(), []string{"--title", "x", "--column", "Nope", "--json"})
		require.Error(t, err)
		errData := testutil.ParseJSON(t, output)["error"].(map[string]interface{})
		assert.Equal(t, "COLUMN_NOT_FOUND", errData["code"])
		assert.Contains(t, errData["suggestion"], "Todo, In Progress, Done")
	})
}

func TestListTasks_Integration(t *testing.T) {
	db, app := cli.SetupCLITest(t)
	todo := testutil.ColumnIDByTitle(t, db, "Todo")
	doing := testutil.ColumnIDByTitle(t, db, "In Progress")
	a := cli.CreateTestTask(t, db, todo, "A")
	b := cli.CreateTestTask(t, db, todo, "B")
	x := cli.CreateTestTask(t, db, doing, "X")

	t.Run("whole board", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, app, ListCmd(), []string{})
		require.NoError(t, err)
		assert.Contains(t, output, "Todo:\n  0. A")
		assert.Contains(t, output, "  1. B")
		assert.Contains(t, output, "In Progress:\n  0. X")
		assert.Contains(t, output, "Done:\n  (no tasks)")
	})

	t.Run("quiet lists IDs in board order", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, app, ListCmd(), []string{"--quiet"})
		require.NoError(t, err)
		assert.Equal(t, []string{strconv.Itoa(a), strconv.Itoa(b), strconv.Itoa(x)}, strings.Fields(output))
	})

	t.Run("single column as JSON", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, app, ListCmd(), []string{"--column", "In Progress", "--json"})
		require.NoError(t, err)
		tasks := testutil.ParseJSON(t, output)["tasks"].([]interface{})
		require.Len(t, tasks, 1)
		assert.Equal(t, "X", tasks[0].(map[string]interface{})["title"])
	})

	t.Run("unknown column", func(t *testing.T) {
		_, err := cli.ExecuteCLICommand(t, app, ListCmd(), []string{"--column", "Nope"})
		require.Error(t, err)
		assert.Equal(t, ordocli.ExitNotFound, ordocli.ExitCodeFor(err))
	})
}

func TestShowTask_Integration(t *testing.T) {
	db, app := cli.SetupCLITest(t)
	doing := testutil.ColumnIDByTitle(t, db, "In Progress")
	id := cli.CreateTestTask(t, db, doing, "Inspect me")

	t.Run("positional id renders the card", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, app, ShowCmd(), []string{strconv.Itoa(id)})
		require.NoError(t, err)
		output = ansi.Strip(output)
		assert.Contains(t, output, "Inspect me")
		assert.Contains(t, output, "In Progress")
		assert.Contains(t, output, "No description")
	})

	t.Run("flag id with JSON", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, app, ShowCmd(), []string{"--id", strconv.Itoa(id), "--json"})
		require.NoError(t, err)
		task := testutil.ParseJSON(t, output)["task"].(map[string]interface{})
		assert.Equal(t, "In Progress", task["column_title"])
		assert.Equal(t, float64(0), task["position"])
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := cli.ExecuteCLICommand(t, app, ShowCmd(), []string{})
		require.Error(t, err)
		assert.Equal(t, ordocli.ExitUsage, ordocli.ExitCodeFor(err))
	})

	t.Run("non-numeric id", func(t *testing.T) {
		_, err := cli.ExecuteCLICommand(t, app, ShowCmd(), []string{"abc"})
		require.Error(t, err)
		assert.Equal(t, ordocli.ExitUsage, ordocli.ExitCodeFor(err))
	})

	t.Run("unknown task", func(t *testing.T) {
		_, err := cli.ExecuteCLICommand(t, app, ShowCmd(), []string{"999"})
		require.Error(t, err)
		assert.Equal(t, ordocli.ExitNotFound, ordocli.ExitCodeFor(err))
	})
}

func TestUpdateTask_Integration(t *testing.T) {
	db, app := cli.SetupCLITest(t)
	todo := testutil.ColumnIDByTitle(t, db, "Todo")
	cli.CreateTestTask(t, db, todo, "A")
	cli.CreateTestTask(t, db, todo, "B")
	c := cli.CreateTestTask(t, db, todo, "C")

	output, err := cli.ExecuteCLICommand(t, app, UpdateCmd(), []string{"--id", strconv.Itoa(c), "--title", "C2", "--position", "0"})
	require.NoError(t, err)
	assert.Contains(t, output, "'C2' at position 0")
	assert.Equal(t, []string{"C2", "A", "B"}, testutil.TaskTitles(t, db, todo))

	// A failed reorder rolls back the title change too
	_, err = cli.ExecuteCLICommand(t, app, UpdateCmd(), []string{"--id", strconv.Itoa(c), "--title", "C3", "--position", "3"})
	require.Error(t, err)
	assert.Equal(t, ordocli.ExitValidation, ordocli.ExitCodeFor(err))
	assert.Equal(t, []string{"C2", "A", "B"}, testutil.TaskTitles(t, db, todo))

	_, err = cli.ExecuteCLICommand(t, app, UpdateCmd(), []string{"--id", strconv.Itoa(c)})
	require.Error(t, err)
	assert.Equal(t, ordocli.ExitUsage, ordocli.ExitCodeFor(err))
}

func TestReorderTask_Integration(t *testing.T) {
	db, app := cli.SetupCLITest(t)
	todo := testutil.ColumnIDByTitle(t, db, "Todo")
	a := cli.CreateTestTask(t, db, todo, "A")
	cli.CreateTestTask(t, db, todo, "B")
	cli.CreateTestTask(t, db, todo, "C")
	cli.CreateTestTask(t, db, todo, "D")

	output, err := cli.ExecuteCLICommand(t, app, ReorderCmd(), []string{"--id", strconv.Itoa(a), "--position", "2", "--json"})
	require.NoError(t, err)
	task := testutil.ParseJSON(t, output)["task"].(map[string]interface{})
	assert.Equal(t, float64(2), task["position"])
	assert.Equal(t, []string{"B", "C", "A", "D"}, testutil.TaskTitles(t, db, todo))

	_, err = cli.ExecuteCLICommand(t, app, ReorderCmd(), []string{"--id", strconv.Itoa(a), "--position", "4"})
	require.Error(t, err)
	assert.Equal(t, ordocli.ExitValidation, ordocli.ExitCodeFor(err))
	assert.Equal(t, []string{"B", "C", "A", "D"}, testutil.TaskTitles(t, db, todo))
}

func TestMoveTask_Integration(t *testing.T) {
	db, app := cli.SetupCLITest(t)
	todo := testutil.ColumnIDByTitle(t, db, "Todo")
	doing := testutil.ColumnIDByTitle(t, db, "In Progress")
	done := testutil.ColumnIDByTitle(t, db, "Done")
	a := cli.CreateTestTask(t, db, todo, "A")
	cli.CreateTestTask(t, db, todo, "B")
	cli.CreateTestTask(t, db, doing, "X")

	t.Run("next appends to the following column", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, app, MoveCmd(), []string{"--id", strconv.Itoa(a), "next"})
		require.NoError(t, err)
		assert.Contains(t, output, "moved to 'In Progress' at position 1")
		assert.Equal(t, []string{"B"}, testutil.TaskTitles(t, db, todo))
		assert.Equal(t, []string{"X", "A"}, testutil.TaskTitles(t, db, doing))
	})

	t.Run("by title at a position", func(t *testing.T) {
		_, err := cli.ExecuteCLICommand(t, app, MoveCmd(), []string{"--id", strconv.Itoa(a), "todo", "--position", "0"})
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B"}, testutil.TaskTitles(t, db, todo))
		assert.Equal(t, []string{"X"}, testutil.TaskTitles(t, db, doing))
	})

	t.Run("same column without position is a no-op", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, app, MoveCmd(), []string{"--id", strconv.Itoa(a), "Todo"})
		require.NoError(t, err)
		assert.Contains(t, output, "already in 'Todo'")
		assert.Equal(t, []string{"A", "B"}, testutil.TaskTitles(t, db, todo))
	})

	t.Run("same column with position reorders", func(t *testing.T) {
		_, err := cli.ExecuteCLICommand(t, app, MoveCmd(), []string{"--id", strconv.Itoa(a), "Todo", "--position", "1"})
		require.NoError(t, err)
		assert.Equal(t, []string{"B", "A"}, testutil.TaskTitles(t, db, todo))
	})

	t.Run("prev from the first column", func(t *testing.T) {
		_, err := cli.ExecuteCLICommand(t, app, MoveCmd(), []string{"--id", strconv.Itoa(a), "prev"})
		require.Error(t, err)
		assert.Equal(t, ordocli.ExitValidation, ordocli.ExitCodeFor(err))
	})

	t.Run("by column id with JSON", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, app, MoveCmd(), []string{"--id", strconv.Itoa(a), strconv.Itoa(done), "--json"})
		require.NoError(t, err)
		task := testutil.ParseJSON(t, output)["task"].(map[string]interface{})
		assert.Equal(t, "Todo", task["from_column"])
		assert.Equal(t, "Done", task["to_column"])
		assert.Equal(t, float64(done), task["column_id"])
	})

	t.Run("next from the last column", func(t *testing.T) {
		_, err := cli.ExecuteCLICommand(t, app, MoveCmd(), []string{"--id", strconv.Itoa(a), "next"})
		require.Error(t, err)
		assert.Equal(t, ordocli.ExitValidation, ordocli.ExitCodeFor(err))
	})

	t.Run("position past the end of the target", func(t *testing.T) {
		_, err := cli.ExecuteCLICommand(t, app, MoveCmd(), []string{"--id", strconv.Itoa(a), "Todo", "--position", "5"})
		require.Error(t, err)
		assert.Equal(t, ordocli.ExitValidation, ordocli.ExitCodeFor(err))
		assert.Equal(t, []string{"A"}, testutil.TaskTitles(t, db, done))
	})

	t.Run("unknown target column", func(t *testing.T) {
		_, err := cli.ExecuteCLICommand(t, app, MoveCmd(), []string{"--id", strconv.Itoa(a), "Archive"})
		require.Error(t, err)
		assert.Equal(t, ordocli.ExitNotFound, ordocli.ExitCodeFor(err))
	})

	t.Run("unknown task", func(t *testing.T) {
		_, err := cli.ExecuteCLICommand(t, app, MoveCmd(), []string{"--id", "999", "next"})
		require.Error(t, err)
		assert.Equal(t, ordocli.ExitNotFound, ordocli.ExitCodeFor(err))
	})
}

func TestDeleteTask_Integration(t *testing.T) {
	db, app := cli.SetupCLITest(t)
	todo := testutil.ColumnIDByTitle(t, db, "Todo")
	a := cli.CreateTestTask(t, db, todo, "A")
	b := cli.CreateTestTask(t, db, todo, "B")
	cli.CreateTestTask(t, db, todo, "C")

	output, err := cli.ExecuteCLICommandWithInput(t, app, DeleteCmd(), []string{"--id", strconv.Itoa(b)}, "no\n")
	require.NoError(t, err)
	assert.Contains(t, output, "Cancelled")
	assert.Equal(t, []string{"A", "B", "C"}, testutil.TaskTitles(t, db, todo))

	_, err = cli.ExecuteCLICommandWithInput(t, app, DeleteCmd(), []string{"--id", strconv.Itoa(b)}, "y\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "C"}, testutil.TaskTitles(t, db, todo))

	output, err = cli.ExecuteCLICommand(t, app, DeleteCmd(), []string{"--id", strconv.Itoa(a), "--json"})
	require.NoError(t, err)
	assert.Equal(t, float64(a), testutil.ParseJSON(t, output)["task_id"])
	assert.Equal(t, []string{"C"}, testutil.TaskTitles(t, db, todo))

	_, err = cli.ExecuteCLICommand(t, app, DeleteCmd(), []string{"--id", strconv.Itoa(a), "--force"})
	require.Error(t, err)
	assert.Equal(t, ordocli.ExitNotFound, ordocli.ExitCodeFor(err))
}
