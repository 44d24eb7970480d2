package auth

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/cloudstack/internal/common"
)

// TokenValidator is what Resolver needs from a token service.
type TokenValidator interface {
	Validate(token string) (string, error)
}

// Resolver turns an Authorization header value into the caller's email.
// It does no I/O beyond the signature check.
type Resolver struct {
	tokens TokenValidator
}

func NewResolver(tokens TokenValidator) *Resolver {
	return &Resolver{tokens: tokens}
}

// Resolve returns the identity carried by header. Every failure wraps
// common.ErrorUnauthorized; the cause is kept for logging only.
func (r *Resolver) Resolve(header string) (string, error) {
	token, err := BearerToken(header)
	if err != nil {
		return "", err
	}

	subject, err := r.tokens.Validate(token)
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrorUnauthorized, err)
	}

	return subject, nil
}

// BearerToken extracts the token from a "Bearer <token>" header value.
// The scheme is matched case-insensitively.
func BearerToken(header string) (string, error) {
	if header == "" {
		return "", fmt.Errorf("%w: missing authorization header", common.ErrorUnauthorized)
	}

	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, common.BearerScheme) {
		return "", fmt.Errorf("%w: invalid authorization header format", common.ErrorUnauthorized)
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", fmt.Errorf("%w: empty token", common.ErrorUnauthorized)
	}

	return token, nil
}
