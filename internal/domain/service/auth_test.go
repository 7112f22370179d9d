package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/nedconnect/backend/internal/domain/common/errorz"
	"github.com/nedconnect/backend/internal/domain/entity"
)

func seedAccount(t *testing.T, accounts *memAccountStorage, username, email, password string, role entity.Role) *entity.Account {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	account, err := accounts.Create(context.Background(), &entity.Account{
		FullName:     "Test Account",
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
	})
	require.NoError(t, err)
	return account
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	accounts := newMemAccountStorage()
	sessions := newMemSessionStorage()
	auth := NewAuthService(accounts, sessions, time.Hour)

	account := seedAccount(t, accounts, "ayesha", "ayesha@cloud.neduet.edu.pk", "s3cret-pass", entity.RoleStudent)

	t.Run("by username", func(t *testing.T) {
		token, got, err := auth.Login(ctx, "ayesha", "s3cret-pass", entity.RoleStudent)
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, account.ID, got.ID)
	})

	t.Run("by email", func(t *testing.T) {
		token, got, err := auth.Login(ctx, "ayesha@cloud.neduet.edu.pk", "s3cret-pass", entity.RoleStudent)
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, account.ID, got.ID)
	})

	t.Run("without expected role", func(t *testing.T) {
		_, _, err := auth.Login(ctx, "ayesha", "s3cret-pass", "")
		require.NoError(t, err)
	})

	t.Run("unknown identifier", func(t *testing.T) {
		_, _, err := auth.Login(ctx, "nobody", "s3cret-pass", entity.RoleStudent)
		assert.ErrorIs(t, err, errorz.NotFound)
	})

	t.Run("role mismatch", func(t *testing.T) {
		_, _, err := auth.Login(ctx, "ayesha", "s3cret-pass", entity.RoleSociety)
		assert.ErrorIs(t, err, errorz.RoleMismatch)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := auth.Login(ctx, "ayesha", "wrong", entity.RoleStudent)
		assert.ErrorIs(t, err, errorz.InvalidCredentials)
	})
}

func TestResolve(t *testing.T) {
	ctx := context.Background()
	accounts := newMemAccountStorage()
	sessions := newMemSessionStorage()
	auth := NewAuthService(accounts, sessions, time.Hour)

	account := seedAccount(t, accounts, "drama-club", "dramatics@cloud.neduet.edu.pk", "s3cret-pass", entity.RoleSociety)

	token, _, err := auth.Login(ctx, "drama-club", "s3cret-pass", entity.RoleSociety)
	require.NoError(t, err)

	t.Run("valid token", func(t *testing.T) {
		access, err := auth.Resolve(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, account.ID, access.AccountID)
		assert.Equal(t, entity.RoleSociety, access.Role)
		assert.Nil(t, access.SocietyID)
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := auth.Resolve(ctx, "")
		assert.ErrorIs(t, err, errorz.Unauthenticated)
	})

	t.Run("unknown token", func(t *testing.T) {
		_, err := auth.Resolve(ctx, "deadbeef")
		assert.ErrorIs(t, err, errorz.Unauthenticated)
	})

	t.Run("after logout", func(t *testing.T) {
		require.NoError(t, auth.Logout(ctx, token))
		_, err := auth.Resolve(ctx, token)
		assert.ErrorIs(t, err, errorz.Unauthenticated)

		// Logging out twice is a no-op.
		require.NoError(t, auth.Logout(ctx, token))
	})
}

func TestAccessContext(t *testing.T) {
	societyID := "11111111-1111-1111-1111-111111111111"

	t.Run("require role", func(t *testing.T) {
		access := &AccessContext{Role: entity.RoleStudent}
		assert.NoError(t, access.RequireRole(entity.RoleStudent))
		assert.ErrorIs(t, access.RequireRole(entity.RoleAdmin), errorz.Forbidden)
	})

	t.Run("linked society", func(t *testing.T) {
		access := &AccessContext{Role: entity.RoleSociety, SocietyID: &societyID}
		got, err := access.RequireSociety()
		require.NoError(t, err)
		assert.Equal(t, societyID, got)
	})

	t.Run("unlinked society is not provisioned", func(t *testing.T) {
		access := &AccessContext{Role: entity.RoleSociety}
		_, err := access.RequireSociety()
		assert.ErrorIs(t, err, errorz.NotProvisioned)
	})

	t.Run("student cannot act as society", func(t *testing.T) {
		access := &AccessContext{Role: entity.RoleStudent}
		_, err := access.RequireSociety()
		assert.ErrorIs(t, err, errorz.Forbidden)
	})
}
