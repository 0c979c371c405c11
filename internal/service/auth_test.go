package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"worklens-backend/internal/domain"
	"worklens-backend/internal/security"
	"worklens-backend/internal/service"
)

func newAuthService() (service.AuthService, *MockUserRepo) {
	users := new(MockUserRepo)
	tokens := security.NewTokenManager("test-secret", 60, 10080)
	return service.NewAuthService(users, tokens), users
}

func TestAuthService_Signup(t *testing.T) {
	ctx := context.Background()

	t.Run("New seeker account", func(t *testing.T) {
		svc, users := newAuthService()
		users.On("GetByEmail", ctx, "sam@example.com").Return(nil, domain.ErrNotFound)
		users.On("Create", ctx, mock.AnythingOfType("*domain.User")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*domain.User).ID = 42
			}).
			Return(nil)

		user, access, refresh, err := svc.Signup(ctx, "Sam", "Sam@Example.com", "longenough", domain.UserRoleSeeker)
		assert.NoError(t, err)
		assert.Equal(t, "sam@example.com", user.Email)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)
		assert.NotEqual(t, "longenough", user.PasswordHash)
	})

	t.Run("Duplicate email", func(t *testing.T) {
		svc, users := newAuthService()
		users.On("GetByEmail", ctx, "sam@example.com").Return(seekerUser(42), nil)

		_, _, _, err := svc.Signup(ctx, "Sam", "sam@example.com", "longenough", domain.UserRoleSeeker)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("Admin role cannot self-register", func(t *testing.T) {
		svc, _ := newAuthService()
		_, _, _, err := svc.Signup(ctx, "Eve", "eve@example.com", "longenough", domain.UserRoleAdmin)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("Short password", func(t *testing.T) {
		svc, _ := newAuthService()
		_, _, _, err := svc.Signup(ctx, "Sam", "sam@example.com", "short", domain.UserRoleSeeker)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("longenough"), bcrypt.MinCost)

	t.Run("Valid credentials", func(t *testing.T) {
		svc, users := newAuthService()
		user := seekerUser(42)
		user.PasswordHash = string(hash)
		users.On("GetByEmail", ctx, "sam@example.com").Return(user, nil)

		got, access, refresh, err := svc.Login(ctx, "sam@example.com", "longenough")
		assert.NoError(t, err)
		assert.Equal(t, int32(42), got.ID)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)
	})

	t.Run("Wrong password", func(t *testing.T) {
		svc, users := newAuthService()
		user := seekerUser(42)
		user.PasswordHash = string(hash)
		users.On("GetByEmail", ctx, "sam@example.com").Return(user, nil)

		_, _, _, err := svc.Login(ctx, "sam@example.com", "wrongwrong")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("Banned account cannot log in", func(t *testing.T) {
		svc, users := newAuthService()
		user := seekerUser(42)
		user.PasswordHash = string(hash)
		user.IsBanned = true
		users.On("GetByEmail", ctx, "sam@example.com").Return(user, nil)

		_, _, _, err := svc.Login(ctx, "sam@example.com", "longenough")
		assert.ErrorIs(t, err, service.ErrAccountBanned)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctx := context.Background()

	t.Run("Access token is not accepted as refresh", func(t *testing.T) {
		users := new(MockUserRepo)
		tokens := security.NewTokenManager("test-secret", 60, 10080)
		svc := service.NewAuthService(users, tokens)

		access, err := tokens.GenerateAccessToken(42, "sam@example.com", string(domain.UserRoleSeeker))
		assert.NoError(t, err)

		_, _, err = svc.RefreshToken(ctx, access)
		assert.ErrorIs(t, err, security.ErrWrongTokenType)
	})

	t.Run("Valid refresh issues a new pair", func(t *testing.T) {
		users := new(MockUserRepo)
		tokens := security.NewTokenManager("test-secret", 60, 10080)
		svc := service.NewAuthService(users, tokens)

		refresh, err := tokens.GenerateRefreshToken(42, "sam@example.com")
		assert.NoError(t, err)
		users.On("GetByID", ctx, int32(42)).Return(seekerUser(42), nil)

		newAccess, newRefresh, err := svc.RefreshToken(ctx, refresh)
		assert.NoError(t, err)
		assert.NotEmpty(t, newAccess)
		assert.NotEmpty(t, newRefresh)
	})
}
