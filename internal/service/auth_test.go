package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leoclub/points-tracker-api/internal/domain"
)

func TestAuthService_Login(t *testing.T) {
	db := newTestDB(t)
	repo := newUserRepo(t, db)
	users := NewUserAdminService(repo)
	svc := NewAuthService(repo)

	created := createUser(t, users, "alice@example.com", "alice", domain.RoleEditor)

	t.Run("valid credentials", func(t *testing.T) {
		user, err := svc.Login(context.Background(), "alice@example.com", strongPassword)
		require.NoError(t, err)

		assert.Equal(t, created.ID, user.ID)
		assert.Equal(t, domain.RoleEditor, user.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "alice@example.com", "Wrongpass1!")
		assert.ErrorIs(t, err, ErrWrongPassword)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "nobody@example.com", strongPassword)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestAuthService_TriggerPasswordReset_NeverLeaksExistence(t *testing.T) {
	db := newTestDB(t)
	repo := newUserRepo(t, db)
	users := NewUserAdminService(repo)
	svc := NewAuthService(repo)

	createUser(t, users, "alice@example.com", "alice", domain.RoleViewer)

	assert.NoError(t, svc.TriggerPasswordReset(context.Background(), "alice@example.com"))
	assert.NoError(t, svc.TriggerPasswordReset(context.Background(), "nobody@example.com"))
}
