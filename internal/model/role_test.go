package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleIn(t *testing.T) {
	tests := []struct {
		name    string
		role    Role
		allowed []Role
		want    bool
	}{
		{"member of set", RoleSales, []Role{RoleSales, RoleAdmin}, true},
		{"not a member", RoleSales, []Role{RoleAdmin, RoleInventoryManager}, false},
		{"single match", RoleAdmin, []Role{RoleAdmin}, true},
		{"empty set denies", RoleAdmin, nil, false},
		{"unknown role", Role("Superuser"), []Role{RoleAdmin, RoleSales, RoleInventoryManager}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.role.In(tt.allowed...))
		})
	}
}

func TestRoleValid(t *testing.T) {
	for _, role := range []Role{RoleAdmin, RoleInventoryManager, RoleSales} {
		assert.True(t, role.Valid(), string(role))
	}
	assert.False(t, Role("").Valid())
	assert.False(t, Role("Superuser").Valid())
}

func TestRegistrableRolesExcludeAdmin(t *testing.T) {
	assert.False(t, RoleAdmin.In(RegistrableRoles...))
	assert.True(t, RoleSales.In(RegistrableRoles...))
	assert.True(t, RoleInventoryManager.In(RegistrableRoles...))
}
