package http

import (
	"context"

	"library-loan-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockAuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, fullName, email, password string, role domain.Role) (*domain.User, error) {
	args := m.Called(ctx, fullName, email, password, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, string, *domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(2) == nil {
		return args.String(0), args.String(1), nil, args.Error(3)
	}
	return args.String(0), args.String(1), args.Get(2).(*domain.User), args.Error(3)
}
func (m *MockAuthService) RefreshToken(ctx context.Context, refresh string) (string, string, error) {
	args := m.Called(ctx, refresh)
	return args.String(0), args.String(1), args.Error(2)
}

// MockLoanService
type MockLoanService struct {
	mock.Mock
}

func (m *MockLoanService) CreateRequest(ctx context.Context, userID int32, role domain.Role, bookID int32, durationDays int) (*domain.Loan, error) {
	args := m.Called(ctx, userID, role, bookID, durationDays)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}
func (m *MockLoanService) Approve(ctx context.Context, loanID int32) (*domain.Loan, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}
func (m *MockLoanService) Reject(ctx context.Context, loanID int32) (*domain.Loan, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}
func (m *MockLoanService) Return(ctx context.Context, loanID, actorID int32, actorRole domain.Role) (*domain.Loan, error) {
	args := m.Called(ctx, loanID, actorID, actorRole)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}
func (m *MockLoanService) ListForUser(ctx context.Context, userID int32) ([]domain.Loan, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Loan), args.Error(1)
}
func (m *MockLoanService) ListPendingRequests(ctx context.Context) ([]domain.Loan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Loan), args.Error(1)
}

// MockPenaltyService
type MockPenaltyService struct {
	mock.Mock
}

func (m *MockPenaltyService) ListForUser(ctx context.Context, userID int32) ([]domain.Penalty, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Penalty), args.Error(1)
}
func (m *MockPenaltyService) ListAll(ctx context.Context) ([]domain.Penalty, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Penalty), args.Error(1)
}
func (m *MockPenaltyService) Waive(ctx context.Context, penaltyID int32) (*domain.Penalty, error) {
	args := m.Called(ctx, penaltyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Penalty), args.Error(1)
}
func (m *MockPenaltyService) MarkPaid(ctx context.Context, penaltyID int32) error {
	args := m.Called(ctx, penaltyID)
	return args.Error(0)
}
