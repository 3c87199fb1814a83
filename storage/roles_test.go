package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialnotes/models"
)

func TestRoleStoreCreateIdempotent(t *testing.T) {
	db := newTestDB(t)
	roles := NewRoleStore(db)

	first, err := roles.CreateRole("editor")
	require.NoError(t, err)
	second, err := roles.CreateRole("editor")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	p1, err := roles.CreatePermission("can_edit")
	require.NoError(t, err)
	p2, err := roles.CreatePermission("can_edit")
	require.NoError(t, err)
	assert.Equal(t, p1.ID, p2.ID)
}

func TestRoleStorePermissionAttachment(t *testing.T) {
	db := newTestDB(t)
	roles := NewRoleStore(db)

	role, err := roles.CreateRole("editor")
	require.NoError(t, err)
	perm, err := roles.CreatePermission("can_edit")
	require.NoError(t, err)

	has, err := roles.HasPermission(role.ID, perm.ID)
	require.NoError(t, err)
	assert.False(t, has)

	// Attaching twice is a no-op, not an error.
	require.NoError(t, roles.AddPermission(role.ID, perm.ID))
	require.NoError(t, roles.AddPermission(role.ID, perm.ID))

	has, err = roles.HasPermission(role.ID, perm.ID)
	require.NoError(t, err)
	assert.True(t, has)

	require.NoError(t, roles.RemovePermission(role.ID, perm.ID))
	require.NoError(t, roles.RemovePermission(role.ID, perm.ID))

	has, err = roles.HasPermission(role.ID, perm.ID)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestRoleStoreAssignRole(t *testing.T) {
	db := newTestDB(t)
	seedTestDB(t, db)
	users := NewUserStore(db)
	roles := NewRoleStore(db)

	user := createTestUser(t, users, "alice")
	admin, err := roles.FindRoleByName(models.RoleAdmin)
	require.NoError(t, err)

	require.NoError(t, roles.AssignRole(user.ID, admin.ID))
	require.NoError(t, roles.AssignRole(user.ID, admin.ID))

	has, err := users.HasPermission(user.ID, models.PermDeleteUsers)
	require.NoError(t, err)
	assert.True(t, has)

	require.NoError(t, roles.UnassignRole(user.ID, admin.ID))

	has, err = users.HasPermission(user.ID, models.PermDeleteUsers)
	require.NoError(t, err)
	assert.False(t, has)

	assert.ErrorIs(t, roles.AssignRole(999, admin.ID), ErrNotFound)
}

func TestRoleStoreFindMissing(t *testing.T) {
	db := newTestDB(t)
	roles := NewRoleStore(db)

	_, err := roles.FindRoleByName("nope")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = roles.FindPermissionByName("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}
