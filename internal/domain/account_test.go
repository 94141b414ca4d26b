package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleAuthority(t *testing.T) {
	assert.Equal(t, "ROLE_USER", RoleUser.Authority())
	assert.Equal(t, "ROLE_MODERATOR", RoleModerator.Authority())
	assert.Equal(t, "ROLE_ADMIN", RoleAdmin.Authority())
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleUser.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("SUPERUSER").Valid())
	assert.False(t, Role("").Valid())
}
