package service

import (
	"context"
	"errors"

	"library-loan-backend/internal/domain"
)

// ErrValidation wraps rejected input so the transport layer can answer with
// a client error instead of a storage failure.
var ErrValidation = errors.New("validation failed")

type AuthService interface {
	Register(ctx context.Context, fullName, email, password string, role domain.Role) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, string, *domain.User, error) // access, refresh
	RefreshToken(ctx context.Context, refresh string) (string, string, error)
}

type BookService interface {
	AddBook(ctx context.Context, book *domain.Book) error
	GetBook(ctx context.Context, id int32) (*domain.Book, error)
	UpdateBook(ctx context.Context, book *domain.Book) error
	DeleteBook(ctx context.Context, id int32) error
	ListBooks(ctx context.Context, search string, categoryID, page, pageSize int32) ([]domain.Book, int32, error)

	CreateAuthor(ctx context.Context, author *domain.Author) error
	UpdateAuthor(ctx context.Context, author *domain.Author) error
	DeleteAuthor(ctx context.Context, id int32) error
	ListAuthors(ctx context.Context) ([]domain.Author, error)

	CreateCategory(ctx context.Context, category *domain.Category) error
	UpdateCategory(ctx context.Context, category *domain.Category) error
	DeleteCategory(ctx context.Context, id int32) error
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

// LoanService drives the loan state machine. Every operation takes the
// resolved (user id, role) pair the transport layer extracted from the
// access token; the service trusts it and never re-authenticates.
type LoanService interface {
	CreateRequest(ctx context.Context, userID int32, role domain.Role, bookID int32, durationDays int) (*domain.Loan, error)
	Approve(ctx context.Context, loanID int32) (*domain.Loan, error)
	Reject(ctx context.Context, loanID int32) (*domain.Loan, error)
	Return(ctx context.Context, loanID, actorID int32, actorRole domain.Role) (*domain.Loan, error)
	ListForUser(ctx context.Context, userID int32) ([]domain.Loan, error)
	ListPendingRequests(ctx context.Context) ([]domain.Loan, error)
}

type PenaltyService interface {
	ListForUser(ctx context.Context, userID int32) ([]domain.Penalty, error)
	ListAll(ctx context.Context) ([]domain.Penalty, error)
	Waive(ctx context.Context, penaltyID int32) (*domain.Penalty, error)
	MarkPaid(ctx context.Context, penaltyID int32) error
}

type AdminService interface {
	// CreateUser provisions an account with any role, including staff and
	// admin; self-registration only ever creates students.
	CreateUser(ctx context.Context, fullName, email, password string, role domain.Role) (*domain.User, error)
	ListUsers(ctx context.Context, page, pageSize int32) ([]domain.User, int32, error)
	SetUserActive(ctx context.Context, userID int32, active bool) error
}
