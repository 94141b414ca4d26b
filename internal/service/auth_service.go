package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/social-api/internal/auth"
	"github.com/spec-kit/social-api/internal/config"
	"github.com/spec-kit/social-api/internal/domain"
	"github.com/spec-kit/social-api/internal/events"
	"github.com/spec-kit/social-api/internal/repository"
)

// AuthService coordinates registration, login and token refresh flows.
type AuthService struct {
	accounts   repository.AccountRepository
	codec      *auth.TokenCodec
	dispatcher events.Dispatcher
	bcryptCost int
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, codec *auth.TokenCodec, accounts repository.AccountRepository, dispatcher events.Dispatcher) *AuthService {
	return &AuthService{
		accounts:   accounts,
		codec:      codec,
		dispatcher: dispatcher,
		bcryptCost: cfg.Auth.BcryptCost,
		accessTTL:  cfg.Auth.AccessTokenTTL,
		refreshTTL: cfg.Auth.RefreshTokenTTL,
	}
}

// Register creates a new active account and issues its first token.
func (s *AuthService) Register(ctx context.Context, username, fullName, email, password string) (*domain.Account, string, time.Time, error) {
	if _, err := s.accounts.GetByUsername(ctx, username); err == nil {
		return nil, "", time.Time{}, errors.New("username already taken")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", time.Time{}, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	account := &domain.Account{
		Username:     username,
		FullName:     fullName,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		Status:       domain.AccountStatusActive,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.codec.Generate(account.Username, time.Now(), s.accessTTL)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	s.publish(ctx, events.New(events.EventAccountRegistered, account.Username, nil))
	return account, token, exp, nil
}

// Login verifies credentials and issues an access token. The account
// status gate matches the one applied during token re-authentication.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.Account, string, time.Time, error) {
	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.publish(ctx, events.New(events.EventLoginFailed, username, events.LoginFailedPayload{Reason: "unknown_username"}))
			return nil, "", time.Time{}, errors.New("invalid credentials")
		}
		return nil, "", time.Time{}, err
	}

	if err := auth.ComparePassword(account.PasswordHash, password); err != nil {
		s.publish(ctx, events.New(events.EventLoginFailed, username, events.LoginFailedPayload{Reason: "bad_password"}))
		return nil, "", time.Time{}, errors.New("invalid credentials")
	}

	principal := auth.NewPrincipal(account)
	if !principal.IsEnabled() || !principal.IsNonLocked() {
		s.publish(ctx, events.New(events.EventLoginFailed, username, events.LoginFailedPayload{Reason: "account_disabled"}))
		return nil, "", time.Time{}, auth.ErrAccountDisabled
	}

	token, exp, err := s.codec.Generate(account.Username, time.Now(), s.accessTTL)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	s.publish(ctx, events.New(events.EventLoginSucceeded, username, nil))
	return account, token, exp, nil
}

// Refresh exchanges a still-valid token for a new one with extended
// expiry. expectedSubject must be the username of the presenting
// principal; any mismatch denies the refresh.
func (s *AuthService) Refresh(ctx context.Context, tokenStr, expectedSubject string) (string, time.Time, error) {
	token, exp, ok := s.codec.Refresh(tokenStr, expectedSubject, time.Now(), s.refreshTTL)
	if !ok {
		return "", time.Time{}, errors.New("refresh denied")
	}

	s.publish(ctx, events.New(events.EventTokenRefreshed, expectedSubject, events.TokenRefreshedPayload{ExpiresAt: exp}))
	return token, exp, nil
}

// Logout records the event only. Outstanding tokens stay valid until
// expiry; there is no server-side revocation.
func (s *AuthService) Logout(ctx context.Context, username string) error {
	s.publish(ctx, events.New(events.EventLogout, username, nil))
	return nil
}

// TokenCodec exposes the underlying codec for middleware wiring.
func (s *AuthService) TokenCodec() *auth.TokenCodec {
	return s.codec
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}
