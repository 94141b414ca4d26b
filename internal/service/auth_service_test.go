package service

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/social-api/internal/auth"
	"github.com/spec-kit/social-api/internal/config"
	"github.com/spec-kit/social-api/internal/domain"
	"github.com/spec-kit/social-api/internal/events"
)

type memoryAccounts struct {
	accounts map[string]*domain.Account
	nextID   int
}

func newMemoryAccounts() *memoryAccounts {
	return &memoryAccounts{accounts: map[string]*domain.Account{}}
}

func (m *memoryAccounts) Create(_ context.Context, account *domain.Account) error {
	m.nextID++
	account.ID = strconv.Itoa(m.nextID)
	account.CreatedAt = time.Now()
	account.UpdatedAt = time.Now()
	m.accounts[account.Username] = account
	return nil
}

func (m *memoryAccounts) Update(_ context.Context, account *domain.Account) error {
	m.accounts[account.Username] = account
	return nil
}

func (m *memoryAccounts) GetByID(_ context.Context, id string) (*domain.Account, error) {
	for _, account := range m.accounts {
		if account.ID == id {
			return account, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memoryAccounts) GetByUsername(_ context.Context, username string) (*domain.Account, error) {
	account, ok := m.accounts[username]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return account, nil
}

func newTestService(t *testing.T) (*AuthService, *memoryAccounts, events.Dispatcher) {
	t.Helper()

	key, err := auth.NewSigningKey()
	require.NoError(t, err)
	codec := auth.NewTokenCodec(key, zap.NewNop())

	cfg := config.Config{Auth: config.AuthConfig{
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: time.Hour,
		BcryptCost:      bcrypt.MinCost,
	}}

	accounts := newMemoryAccounts()
	dispatcher := events.NewInMemoryDispatcher()
	return NewAuthService(cfg, codec, accounts, dispatcher), accounts, dispatcher
}

func captureEvents(dispatcher events.Dispatcher, types ...events.EventType) *[]events.Event {
	captured := &[]events.Event{}
	for _, eventType := range types {
		dispatcher.Subscribe(eventType, func(_ context.Context, event events.Event) error {
			*captured = append(*captured, event)
			return nil
		})
	}
	return captured
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _, dispatcher := newTestService(t)
	captured := captureEvents(dispatcher, events.EventAccountRegistered, events.EventLoginSucceeded)
	ctx := context.Background()

	account, token, exp, err := svc.Register(ctx, "alice", "Alice Example", "alice@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, account.Role)
	assert.Equal(t, domain.AccountStatusActive, account.Status)
	assert.NotEqual(t, "s3cret", account.PasswordHash)
	assert.True(t, exp.After(time.Now()))
	assert.True(t, svc.TokenCodec().Validate(token))

	subject, err := svc.TokenCodec().Subject(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)

	_, loginToken, _, err := svc.Login(ctx, "alice", "s3cret")
	require.NoError(t, err)
	assert.True(t, svc.TokenCodec().Validate(loginToken))

	require.Len(t, *captured, 2)
	assert.Equal(t, events.EventAccountRegistered, (*captured)[0].Type)
	assert.Equal(t, events.EventLoginSucceeded, (*captured)[1].Type)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, _, _, err := svc.Register(ctx, "alice", "Alice Example", "", "s3cret")
	require.NoError(t, err)

	_, _, _, err = svc.Register(ctx, "alice", "Other Alice", "", "s3cret")
	assert.Error(t, err)
}

func TestLoginFailures(t *testing.T) {
	svc, accounts, dispatcher := newTestService(t)
	captured := captureEvents(dispatcher, events.EventLoginFailed)
	ctx := context.Background()

	_, _, _, err := svc.Register(ctx, "alice", "Alice Example", "", "s3cret")
	require.NoError(t, err)

	_, _, _, err = svc.Login(ctx, "alice", "wrong")
	assert.Error(t, err)

	_, _, _, err = svc.Login(ctx, "ghost", "s3cret")
	assert.Error(t, err)

	accounts.accounts["alice"].Status = domain.AccountStatusSuspended
	_, _, _, err = svc.Login(ctx, "alice", "s3cret")
	assert.ErrorIs(t, err, auth.ErrAccountDisabled)

	require.Len(t, *captured, 3)
}

func TestRefreshFlow(t *testing.T) {
	svc, _, dispatcher := newTestService(t)
	captured := captureEvents(dispatcher, events.EventTokenRefreshed)
	ctx := context.Background()

	_, token, _, err := svc.Register(ctx, "alice", "Alice Example", "", "s3cret")
	require.NoError(t, err)

	refreshed, exp, err := svc.Refresh(ctx, token, "alice")
	require.NoError(t, err)
	assert.True(t, svc.TokenCodec().Validate(refreshed))
	assert.True(t, exp.After(time.Now().Add(30*time.Minute)))

	// Refresh must be denied for any subject other than the presenter.
	_, _, err = svc.Refresh(ctx, token, "bob")
	assert.Error(t, err)

	require.Len(t, *captured, 1)
}

func TestLogoutKeepsTokenValid(t *testing.T) {
	svc, _, dispatcher := newTestService(t)
	captured := captureEvents(dispatcher, events.EventLogout)
	ctx := context.Background()

	_, token, _, err := svc.Register(ctx, "alice", "Alice Example", "", "s3cret")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, "alice"))

	// No revocation: the outstanding token stays valid until expiry.
	assert.True(t, svc.TokenCodec().Validate(token))
	require.Len(t, *captured, 1)
}
