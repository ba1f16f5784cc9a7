package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobportal_backend/internal/auth"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/services"
	"jobportal_backend/internal/services/dto"
	"jobportal_backend/pkg/apperrors"
)

func TestRegisterAndLogin(t *testing.T) {
	auth.Init("test-secret", 60)
	f := newFixture(t)
	authService := services.NewAuthService(f.userRepo)

	user, err := authService.Register(&dto.RegisterRequest{
		Name:     "Alex",
		Email:    "alex@example.com",
		Password: "long enough password",
		Role:     models.UserRoleRecruiter,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "long enough password", user.PasswordHash)

	response, err := authService.Login(&dto.LoginRequest{
		Email:    "alex@example.com",
		Password: "long enough password",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, response.AccessToken)
	assert.Equal(t, user.ID, response.UserID)
	assert.Equal(t, models.UserRoleRecruiter, response.Role)

	claims, err := auth.ParseToken(response.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestRegisterRejectsWeakPasswordAndBadRole(t *testing.T) {
	f := newFixture(t)
	authService := services.NewAuthService(f.userRepo)

	_, err := authService.Register(&dto.RegisterRequest{
		Name: "Alex", Email: "a@example.com", Password: "short", Role: models.UserRoleSeeker,
	})
	assert.Error(t, err)

	// Admins are seeded, never self-registered.
	_, err = authService.Register(&dto.RegisterRequest{
		Name: "Alex", Email: "a@example.com", Password: "long enough password", Role: models.UserRoleAdmin,
	})
	assert.Error(t, err)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	authService := services.NewAuthService(f.userRepo)

	req := &dto.RegisterRequest{
		Name: "Alex", Email: "alex@example.com", Password: "long enough password", Role: models.UserRoleSeeker,
	}
	_, err := authService.Register(req)
	require.NoError(t, err)

	_, err = authService.Register(req)
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, 409, appErr.HTTPCode)
}

func TestLoginDoesNotLeakWhichFieldWasWrong(t *testing.T) {
	auth.Init("test-secret", 60)
	f := newFixture(t)
	authService := services.NewAuthService(f.userRepo)

	_, err := authService.Register(&dto.RegisterRequest{
		Name: "Alex", Email: "alex@example.com", Password: "long enough password", Role: models.UserRoleSeeker,
	})
	require.NoError(t, err)

	_, badPassword := authService.Login(&dto.LoginRequest{Email: "alex@example.com", Password: "wrong password"})
	_, badEmail := authService.Login(&dto.LoginRequest{Email: "nobody@example.com", Password: "long enough password"})

	require.Error(t, badPassword)
	require.Error(t, badEmail)
	assert.Equal(t, badPassword.Error(), badEmail.Error())
}
