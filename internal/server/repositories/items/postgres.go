// Package items is the PostgreSQL-backed item store.
package items

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/cloudstack/internal/common"
	"github.com/dmitrijs2005/cloudstack/internal/dbx"
	"github.com/dmitrijs2005/cloudstack/internal/server/models"
)

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateTable(ctx context.Context) error {
	query :=
		`CREATE TABLE IF NOT EXISTS items (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT,
			owner_email TEXT NOT NULL
		 )`

	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Create inserts item and fills in the assigned ID.
func (r *PostgresRepository) Create(ctx context.Context, item *models.Item) (*models.Item, error) {
	query :=
		`INSERT INTO items (name, description, owner_email)
		 VALUES ($1, $2, $3)
		 RETURNING id`

	err := r.db.QueryRowContext(ctx, query, item.Name, item.Description, item.OwnerEmail).Scan(&item.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return item, nil
}

// ListByOwner returns the owner's items ordered by id.
func (r *PostgresRepository) ListByOwner(ctx context.Context, owner string) ([]*models.Item, error) {
	query :=
		`SELECT id, name, COALESCE(description, '') FROM items
		 WHERE owner_email = $1
		 ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Item, 0)
	for rows.Next() {
		item := &models.Item{OwnerEmail: owner}
		if err := rows.Scan(&item.ID, &item.Name, &item.Description); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

// Update overwrites name and description of the item identified by
// item.ID and item.OwnerEmail. No matching row yields common.ErrorNotFound.
func (r *PostgresRepository) Update(ctx context.Context, item *models.Item) error {
	query :=
		`UPDATE items SET name = $1, description = $2
		 WHERE id = $3 AND owner_email = $4`

	res, err := r.db.ExecContext(ctx, query, item.Name, item.Description, item.ID, item.OwnerEmail)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res.RowsAffected())
}

// Delete removes the owner's item. No matching row yields common.ErrorNotFound.
func (r *PostgresRepository) Delete(ctx context.Context, owner string, id int64) error {
	query := `DELETE FROM items WHERE id = $1 AND owner_email = $2`

	res, err := r.db.ExecContext(ctx, query, id, owner)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res.RowsAffected())
}

func expectOneRow(n int64, err error) error {
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}
