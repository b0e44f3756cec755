package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserWorkplaceRole_Satisfies(t *testing.T) {
	assert.True(t, RoleAdmin.Satisfies(RoleReadOnly))
	assert.True(t, RoleMember.Satisfies(RoleReadOnly))
	assert.True(t, RoleReadOnly.Satisfies(RoleReadOnly))
	assert.False(t, RoleReadOnly.Satisfies(RoleMember))
	assert.False(t, RoleRemoved.Satisfies(RoleReadOnly))
	assert.False(t, UserWorkplaceRole("GUEST").Satisfies(RoleReadOnly))
}
