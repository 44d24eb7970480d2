// Package auth issues and validates access tokens and resolves the caller's
// identity from an Authorization header.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/cloudstack/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// TokenConfig is the process-wide signing configuration.
type TokenConfig struct {
	SecretKey []byte
	TTL       time.Duration
	// Leeway tolerates clock skew when checking exp. Zero means none.
	Leeway time.Duration
}

// TokenService signs and checks HS256 JWTs carrying the user email in "sub".
type TokenService struct {
	cfg TokenConfig
	now func() time.Time
}

func NewTokenService(cfg TokenConfig) *TokenService {
	return &TokenService{cfg: cfg, now: time.Now}
}

// Issue returns a token for subject that expires TTL from now.
func (s *TokenService) Issue(subject string) (string, error) {
	return s.IssueWithTTL(subject, s.cfg.TTL)
}

// IssueWithTTL is Issue with an explicit lifetime.
func (s *TokenService) IssueWithTTL(subject string, ttl time.Duration) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})

	signed, err := token.SignedString(s.cfg.SecretKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate checks signature and expiry and returns the subject.
func (s *TokenService) Validate(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) {
			return s.cfg.SecretKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(s.cfg.Leeway),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if claims.Subject == "" {
		return "", common.ErrMissingSubject
	}

	return claims.Subject, nil
}
