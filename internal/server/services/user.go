// Package services contains server-side business logic. This file implements
// UserService, which bootstraps the users table and exchanges credentials
// for access tokens.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/cloudstack/internal/common"
	"github.com/dmitrijs2005/cloudstack/internal/cryptox"
	"github.com/dmitrijs2005/cloudstack/internal/dbx"
	"github.com/dmitrijs2005/cloudstack/internal/server/repositories/repomanager"
)

// TokenIssuer mints an access token for a subject.
type TokenIssuer interface {
	Issue(subject string) (string, error)
}

// SeedAccount is the user guaranteed to exist after Bootstrap.
type SeedAccount struct {
	Email    string
	Password string
}

// UserService provides authentication-related operations:
// - Bootstrap: create the users table and the seed account
// - Login: verify credentials and mint an access token
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	tokens      TokenIssuer
	seed        SeedAccount
	params      cryptox.Params

	// dummyHash is verified against when the email is unknown so that
	// both failure paths cost one argon2 derivation.
	dummyHash string
}

// NewUserService constructs a UserService. params control the cost of
// hashes produced by Bootstrap.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, tokens TokenIssuer, seed SeedAccount, params cryptox.Params) (*UserService, error) {
	filler, err := common.MakeRandHexString(16)
	if err != nil {
		return nil, fmt.Errorf("error preparing password hasher: %w", err)
	}
	dummy, err := cryptox.HashPassword(filler, params)
	if err != nil {
		return nil, fmt.Errorf("error preparing password hasher: %w", err)
	}
	return &UserService{
		db:          db,
		repomanager: m,
		tokens:      tokens,
		seed:        seed,
		params:      params,
		dummyHash:   dummy,
	}, nil
}

// Bootstrap creates the users table if needed and inserts the seed account
// unless its email already exists. Running it again changes nothing.
func (s *UserService) Bootstrap(ctx context.Context) error {
	hash, err := cryptox.HashPassword(s.seed.Password, s.params)
	if err != nil {
		return fmt.Errorf("error hashing seed password: %w", err)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)
		if err := repo.CreateTable(ctx); err != nil {
			return fmt.Errorf("error creating users table: %w", err)
		}
		if _, err := repo.InsertIfAbsent(ctx, s.seed.Email, hash); err != nil {
			return fmt.Errorf("error inserting seed user: %w", err)
		}
		return nil
	})
}

// Login checks email and password and returns a signed access token.
// Unknown, inactive and wrong-password cases are indistinguishable to the
// caller: all return common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	repo := s.repomanager.Users(s.db)

	hash, err := repo.FindActiveCredential(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			cryptox.VerifyPassword(password, s.dummyHash)
			return "", common.ErrorUnauthorized
		}
		return "", fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	if !cryptox.VerifyPassword(password, hash) {
		return "", common.ErrorUnauthorized
	}

	token, err := s.tokens.Issue(email)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return token, nil
}
