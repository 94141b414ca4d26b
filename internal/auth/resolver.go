package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/social-api/internal/repository"
)

// IdentityResolver loads an account by username and projects it into a
// Principal. The account lookup is the only blocking dependency in the
// authentication path.
type IdentityResolver struct {
	accounts repository.AccountRepository
}

// NewIdentityResolver builds a resolver over the account store.
func NewIdentityResolver(accounts repository.AccountRepository) *IdentityResolver {
	return &IdentityResolver{accounts: accounts}
}

// Resolve returns the principal for the username, or ErrIdentityNotFound
// when no account matches. The not-found condition stays distinguishable
// from token failures so callers can pick the response class.
func (r *IdentityResolver) Resolve(ctx context.Context, username string) (*Principal, error) {
	account, err := r.accounts.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrIdentityNotFound
		}
		return nil, err
	}
	return NewPrincipal(account), nil
}
