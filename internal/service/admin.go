package service

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"library-loan-backend/internal/domain"
	"library-loan-backend/internal/logger"
	"library-loan-backend/internal/repository"
)

type adminService struct {
	userRepo repository.UserRepository
}

func NewAdminService(userRepo repository.UserRepository) AdminService {
	return &adminService{userRepo: userRepo}
}

func (s *adminService) CreateUser(ctx context.Context, fullName, email, password string, role domain.Role) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if fullName == "" || email == "" || len(password) < 6 {
		return nil, fmt.Errorf("%w: full name, email and a password of at least 6 characters are required", ErrValidation)
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if err != domain.ErrNotFound {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		FullName:     fullName,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info("User provisioned by admin", "user_id", user.ID, "role", user.Role)
	return user, nil
}

func (s *adminService) ListUsers(ctx context.Context, page, pageSize int32) ([]domain.User, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.userRepo.List(ctx, page, pageSize)
}

func (s *adminService) SetUserActive(ctx context.Context, userID int32, active bool) error {
	if err := s.userRepo.SetActive(ctx, userID, active); err != nil {
		return err
	}
	logger.Info("User active flag changed", "user_id", userID, "is_active", active)
	return nil
}
