package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leoclub/points-tracker-api/internal/domain"
)

const strongPassword = "Abcdefghij1!"

func createUser(t *testing.T, svc *UserAdminService, email, username string, role domain.Role) domain.AppUser {
	t.Helper()

	user, err := svc.CreateUser(context.Background(), actingAdmin, email, strongPassword, domain.AppUser{
		Username:    username,
		Designation: "Member",
		Role:        role,
	})
	require.NoError(t, err)

	return user
}

func TestUserAdminService_CreateUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserAdminService(newUserRepo(t, db))

	t.Run("editor is denied", func(t *testing.T) {
		_, err := svc.CreateUser(context.Background(), actingEditor, "a@example.com", strongPassword, domain.AppUser{
			Username: "alice", Designation: "Member", Role: domain.RoleViewer,
		})
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("weak password rejected", func(t *testing.T) {
		_, err := svc.CreateUser(context.Background(), actingAdmin, "a@example.com", "abc", domain.AppUser{
			Username: "alice", Designation: "Member", Role: domain.RoleViewer,
		})
		assert.ErrorIs(t, err, ErrWeakPassword)
	})

	t.Run("super admin creates user", func(t *testing.T) {
		created := createUser(t, svc, "alice@example.com", "alice", domain.RoleEditor)

		assert.NotEmpty(t, created.ID)
		assert.Equal(t, domain.RoleEditor, created.Role)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		_, err := svc.CreateUser(context.Background(), actingAdmin, "alice@example.com", strongPassword, domain.AppUser{
			Username: "alice2", Designation: "Member", Role: domain.RoleViewer,
		})
		assert.ErrorIs(t, err, ErrAccountEmailExists)
	})
}

func TestUserAdminService_ListUsers_RequiresManageCapability(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserAdminService(newUserRepo(t, db))

	_, err := svc.ListUsers(context.Background(), actingViewer)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	users, err := svc.ListUsers(context.Background(), actingAdmin)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestUserAdminService_UpdateUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserAdminService(newUserRepo(t, db))

	created := createUser(t, svc, "alice@example.com", "alice", domain.RoleViewer)

	role := domain.RoleEditor
	updated, err := svc.UpdateUser(context.Background(), actingAdmin, created.ID, domain.AppUserUpdate{Role: &role})
	require.NoError(t, err)

	assert.Equal(t, domain.RoleEditor, updated.Role)
	assert.Equal(t, "alice", updated.Username)
}

func TestUserAdminService_DeleteUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserAdminService(newUserRepo(t, db))

	admin := createUser(t, svc, "admin@example.com", "admin", domain.RoleSuperAdmin)
	viewer := createUser(t, svc, "viewer@example.com", "viewer", domain.RoleViewer)

	t.Run("deleting the last super admin is refused", func(t *testing.T) {
		err := svc.DeleteUser(context.Background(), actingAdmin, admin.ID)
		assert.ErrorIs(t, err, ErrLastSuperAdmin)

		// Nothing changed.
		users, err := svc.ListUsers(context.Background(), actingAdmin)
		require.NoError(t, err)
		assert.Len(t, users, 2)
	})

	t.Run("other roles can be deleted", func(t *testing.T) {
		require.NoError(t, svc.DeleteUser(context.Background(), actingAdmin, viewer.ID))

		_, err := svc.GetUser(context.Background(), viewer.ID)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("a second super admin unblocks deletion", func(t *testing.T) {
		second := createUser(t, svc, "admin2@example.com", "admin2", domain.RoleSuperAdmin)

		require.NoError(t, svc.DeleteUser(context.Background(), actingAdmin, second.ID))
	})

	t.Run("unknown user", func(t *testing.T) {
		err := svc.DeleteUser(context.Background(), actingAdmin, "missing")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
