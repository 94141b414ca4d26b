package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/social-api/internal/domain"
)

func TestPrincipalPredicates(t *testing.T) {
	tests := []struct {
		status    domain.AccountStatus
		enabled   bool
		nonLocked bool
	}{
		{domain.AccountStatusActive, true, true},
		{domain.AccountStatusSuspended, false, false},
		{domain.AccountStatusPending, false, true},
	}

	for _, tc := range tests {
		t.Run(string(tc.status), func(t *testing.T) {
			p := NewPrincipal(&domain.Account{
				Username: "alice",
				Role:     domain.RoleUser,
				Status:   tc.status,
			})
			assert.Equal(t, tc.enabled, p.IsEnabled())
			assert.Equal(t, tc.nonLocked, p.IsNonLocked())
			assert.True(t, p.IsCredentialsValid())
		})
	}
}

func TestNewPrincipalDerivesAuthority(t *testing.T) {
	p := NewPrincipal(&domain.Account{
		ID:       "1",
		Username: "alice",
		FullName: "Alice Example",
		Role:     domain.RoleModerator,
		Status:   domain.AccountStatusActive,
	})

	assert.Equal(t, "ROLE_MODERATOR", p.Authority)
	assert.True(t, p.HasAuthority("ROLE_MODERATOR"))
	assert.False(t, p.HasAuthority("ROLE_ADMIN"))
}
