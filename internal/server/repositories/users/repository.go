package users

import (
	"context"
)

type Repository interface {
	// CreateTable creates the users table if it does not exist yet.
	CreateTable(ctx context.Context) error
	// InsertIfAbsent adds an active user unless the email is already taken.
	// It reports whether a row was inserted.
	InsertIfAbsent(ctx context.Context, email, hashedPassword string) (bool, error)
	// FindActiveCredential returns the password hash of an active user.
	// Unknown and inactive users both yield common.ErrorNotFound.
	FindActiveCredential(ctx context.Context, email string) (string, error)
}
