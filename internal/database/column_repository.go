package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/thenoetrevino/ordo/internal/models"
	"github.com/thenoetrevino/ordo/internal/position"
)

// ColumnRepo handles all column-related database operations.
type ColumnRepo struct {
	db     *sql.DB
	engine *position.Engine
}

// NewColumnRepo creates a column repository over db and engine.
func NewColumnRepo(db *sql.DB, engine *position.Engine) *ColumnRepo {
	return &ColumnRepo{db: db, engine: engine}
}

const columnColumns = `id, title, position, created_at`

func scanColumn(row interface{ Scan(...any) error }) (*models.Column, error) {
	col := &models.Column{}
	var createdAt sql.NullTime
	if err := row.Scan(&col.ID, &col.Title, &col.Position, &createdAt); err != nil {
		return nil, err
	}
	col.CreatedAt = NullTimeToTime(createdAt)
	return col, nil
}

// Create inserts a column at pos on the board, or appends it when pos is nil.
func (r *ColumnRepo) Create(ctx context.Context, title string, pos *int) (*models.Column, error) {
	var col *models.Column
	_, err := r.engine.Insert(ctx, ColumnScope, position.TopLevel, slot(pos),
		func(ctx context.Context, tx *position.Tx, p int) (int64, error) {
			res, err := tx.ExecContext(ctx,
				`INSERT INTO columns (title, position) VALUES (?, ?)`, title, p)
			if err != nil {
				return 0, fmt.Errorf("failed to insert column: %w", err)
			}
			id, err := res.LastInsertId()
			if err != nil {
				return 0, fmt.Errorf("failed to read column id: %w", err)
			}
			col, err = scanColumn(tx.QueryRowContext(ctx,
				`SELECT `+columnColumns+` FROM columns WHERE id = ?`, id))
			if err != nil {
				return 0, fmt.Errorf("failed to read column %d: %w", id, err)
			}
			return id, nil
		})
	if err != nil {
		return nil, err
	}
	return col, nil
}

// GetAll retrieves every column ordered by position
func (r *ColumnRepo) GetAll(ctx context.Context) ([]*models.Column, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+columnColumns+` FROM columns ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("querying columns: %w", err)
	}
	defer rows.Close()

	columns := []*models.Column{}
	for rows.Next() {
		col, err := scanColumn(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning column row: %w", err)
		}
		columns = append(columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating column rows: %w", err)
	}
	return columns, nil
}

// GetByID retrieves a column by its ID
func (r *ColumnRepo) GetByID(ctx context.Context, id int) (*models.Column, error) {
	col, err := scanColumn(r.db.QueryRowContext(ctx,
		`SELECT `+columnColumns+` FROM columns WHERE id = ?`, id))
	if err != nil {
		return nil, notFound(err, models.ErrColumnNotFound, id)
	}
	return col, nil
}

// Exists reports whether column id exists
func (r *ColumnRepo) Exists(ctx context.Context, id int) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM columns WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking column %d: %w", id, err)
	}
	return true, nil
}

// Update renames a column and, when pos is set, reorders it in one transaction
func (r *ColumnRepo) Update(ctx context.Context, id int, title *string, pos *int) (*models.Column, error) {
	var edit position.EditFunc
	if title != nil {
		edit = func(ctx context.Context, tx *position.Tx) error {
			_, err := tx.ExecContext(ctx, `UPDATE columns SET title = ? WHERE id = ?`, *title, id)
			return err
		}
	}
	if _, err := r.engine.Edit(ctx, ColumnScope, int64(id), pos, edit); err != nil {
		return nil, notFound(err, models.ErrColumnNotFound, id)
	}
	return r.GetByID(ctx, id)
}

// Reorder moves a column to pos on the board
func (r *ColumnRepo) Reorder(ctx context.Context, id, pos int) (*models.Column, error) {
	if _, err := r.engine.Reorder(ctx, ColumnScope, int64(id), pos); err != nil {
		return nil, notFound(err, models.ErrColumnNotFound, id)
	}
	return r.GetByID(ctx, id)
}

// Delete removes a column with its tasks and closes the gap on the board
func (r *ColumnRepo) Delete(ctx context.Context, id int) error {
	if _, err := r.engine.Delete(ctx, ColumnScope, int64(id)); err != nil {
		return notFound(err, models.ErrColumnNotFound, id)
	}
	return nil
}
