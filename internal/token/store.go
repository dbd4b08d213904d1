package token

import (
	"context"
	"errors"

	"corebank/internal/domain/account"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is what a validated token resolves to. The core trusts these once
// the middleware has attached them; it never parses tokens itself.
type Claims struct {
	OwnerID string       `json:"owner_id"`
	Role    account.Role `json:"role"`
}

// Store issues and validates opaque bearer tokens with TTL eviction. It is
// injected as a dependency so handlers and tests can swap implementations.
type Store interface {
	Issue(ctx context.Context, c Claims) (string, error)
	Validate(ctx context.Context, tok string) (*Claims, error)
	Revoke(ctx context.Context, tok string) error
}
