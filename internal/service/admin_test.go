package service_test

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"library-loan-backend/internal/domain"
	"library-loan-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestAdminService_CreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("Provisions Staff Account", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := service.NewAdminService(userRepo)

		userRepo.On("GetByEmail", ctx, "carol@example.com").Return(nil, domain.ErrNotFound)
		userRepo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Email == "carol@example.com" && u.Role == domain.RoleStaff && u.IsActive
		})).Return(nil)

		user, err := svc.CreateUser(ctx, "Carol", "Carol@Example.com", "secret1", domain.RoleStaff)
		assert.NoError(t, err)
		assert.Equal(t, domain.RoleStaff, user.Role)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret1")))
	})

	t.Run("Provisions Admin Account", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := service.NewAdminService(userRepo)

		userRepo.On("GetByEmail", ctx, "root@example.com").Return(nil, domain.ErrNotFound)
		userRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

		user, err := svc.CreateUser(ctx, "Root", "root@example.com", "secret1", domain.RoleAdmin)
		assert.NoError(t, err)
		assert.Equal(t, domain.RoleAdmin, user.Role)
	})

	t.Run("Unknown Role Rejected", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := service.NewAdminService(userRepo)

		_, err := svc.CreateUser(ctx, "Eve", "eve@example.com", "secret1", domain.Role("superuser"))
		assert.ErrorIs(t, err, service.ErrValidation)
		userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Email Taken", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := service.NewAdminService(userRepo)

		userRepo.On("GetByEmail", ctx, "carol@example.com").Return(&domain.User{ID: 5}, nil)

		_, err := svc.CreateUser(ctx, "Carol", "carol@example.com", "secret1", domain.RoleStaff)
		assert.ErrorIs(t, err, service.ErrEmailTaken)
	})
}

func TestAdminService_SetUserActive(t *testing.T) {
	ctx := context.Background()

	userRepo := new(MockUserRepo)
	svc := service.NewAdminService(userRepo)

	userRepo.On("SetActive", ctx, int32(42), false).Return(nil)

	assert.NoError(t, svc.SetUserActive(ctx, 42, false))
	userRepo.AssertExpectations(t)
}
