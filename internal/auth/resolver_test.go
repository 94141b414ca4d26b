package auth

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/social-api/internal/domain"
)

type fakeAccounts struct {
	byUsername map[string]*domain.Account
}

func (f *fakeAccounts) Create(_ context.Context, account *domain.Account) error {
	f.byUsername[account.Username] = account
	return nil
}

func (f *fakeAccounts) Update(_ context.Context, account *domain.Account) error {
	f.byUsername[account.Username] = account
	return nil
}

func (f *fakeAccounts) GetByID(_ context.Context, id string) (*domain.Account, error) {
	for _, account := range f.byUsername {
		if account.ID == id {
			return account, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeAccounts) GetByUsername(_ context.Context, username string) (*domain.Account, error) {
	account, ok := f.byUsername[username]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return account, nil
}

func TestResolveProjectsAccount(t *testing.T) {
	accounts := &fakeAccounts{byUsername: map[string]*domain.Account{
		"alice": {
			ID:       "1",
			Username: "alice",
			FullName: "Alice Example",
			Role:     domain.RoleUser,
			Status:   domain.AccountStatusActive,
		},
	}}
	resolver := NewIdentityResolver(accounts)

	principal, err := resolver.Resolve(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", principal.Username)
	assert.Equal(t, "ROLE_USER", principal.Authority)
	assert.True(t, principal.IsEnabled())
}

func TestResolveUnknownUsername(t *testing.T) {
	resolver := NewIdentityResolver(&fakeAccounts{byUsername: map[string]*domain.Account{}})

	_, err := resolver.Resolve(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrIdentityNotFound)
}
