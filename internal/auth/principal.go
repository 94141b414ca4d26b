package auth

import (
	"time"

	"github.com/spec-kit/social-api/internal/domain"
)

// Principal is the authenticated identity for the current request,
// projected from an account record. The password hash is opaque here; it
// is compared only during the initial login, never during token-based
// re-authentication. Authority is derived from the role and never
// persisted.
type Principal struct {
	ID           string
	Username     string
	FullName     string
	Email        string
	Phone        string
	Avatar       string
	Bio          string
	PasswordHash string
	Role         domain.Role
	Status       domain.AccountStatus
	Authority    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewPrincipal projects an account into a principal.
func NewPrincipal(account *domain.Account) *Principal {
	return &Principal{
		ID:           account.ID,
		Username:     account.Username,
		FullName:     account.FullName,
		Email:        account.Email,
		Phone:        account.Phone,
		Avatar:       account.Avatar,
		Bio:          account.Bio,
		PasswordHash: account.PasswordHash,
		Role:         account.Role,
		Status:       account.Status,
		Authority:    account.Role.Authority(),
		CreatedAt:    account.CreatedAt,
		UpdatedAt:    account.UpdatedAt,
	}
}

// IsEnabled reports whether the account may authenticate at all.
func (p *Principal) IsEnabled() bool {
	return p.Status == domain.AccountStatusActive
}

// IsNonLocked reports whether the account is free of a suspension lock.
func (p *Principal) IsNonLocked() bool {
	return p.Status != domain.AccountStatusSuspended
}

// IsCredentialsValid always holds; there is no local credential-expiry
// policy.
func (p *Principal) IsCredentialsValid() bool {
	return true
}

// HasAuthority reports whether the principal carries the given authority.
func (p *Principal) HasAuthority(authority string) bool {
	return p.Authority == authority
}
