// Package users is the PostgreSQL-backed credential store.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/cloudstack/internal/common"
	"github.com/dmitrijs2005/cloudstack/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateTable(ctx context.Context) error {
	query :=
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			email TEXT UNIQUE NOT NULL,
			hashed_password TEXT NOT NULL,
			is_active BOOLEAN DEFAULT TRUE
		 )`

	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) InsertIfAbsent(ctx context.Context, email, hashedPassword string) (bool, error) {
	query :=
		`INSERT INTO users (email, hashed_password, is_active)
		 VALUES ($1, $2, true)
		 ON CONFLICT (email) DO NOTHING`

	res, err := r.db.ExecContext(ctx, query, email, hashedPassword)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected error: %w", err)
	}
	return n == 1, nil
}

func (r *PostgresRepository) FindActiveCredential(ctx context.Context, email string) (string, error) {
	query :=
		`SELECT hashed_password FROM users
		 WHERE email = $1 AND is_active = true`

	var hash string
	err := r.db.QueryRowContext(ctx, query, email).Scan(&hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", common.ErrorNotFound
		}
		return "", fmt.Errorf("db error: %w", err)
	}

	return hash, nil
}
