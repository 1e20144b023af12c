package repository

import (
	"context"
	"time"

	"library-loan-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	List(ctx context.Context, page, pageSize int32) ([]domain.User, int32, error)
	SetActive(ctx context.Context, id int32, active bool) error
}

type AuthorRepository interface {
	Create(ctx context.Context, author *domain.Author) error
	GetByID(ctx context.Context, id int32) (*domain.Author, error)
	Update(ctx context.Context, author *domain.Author) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context) ([]domain.Author, error)
}

type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	GetByID(ctx context.Context, id int32) (*domain.Category, error)
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context) ([]domain.Category, error)
}

// BookRepository owns the availability counters. Reserve and Release are the
// only writers of books.available_copies anywhere in the system.
type BookRepository interface {
	Create(ctx context.Context, book *domain.Book) error
	GetByID(ctx context.Context, id int32) (*domain.Book, error)
	Update(ctx context.Context, book *domain.Book) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, query string, categoryID int32, page, pageSize int32) ([]domain.Book, int32, error)

	// Reserve atomically decrements available_copies if it is positive, and
	// returns domain.ErrNoCopiesAvailable when the count is already zero.
	Reserve(ctx context.Context, bookID int32) error
	// Release increments available_copies. Incrementing past total_copies is
	// a logic fault and is refused, not absorbed.
	Release(ctx context.Context, bookID int32) error
}

// LoanRepository persists loans and performs the guarded transitions that
// must commit together with an inventory change. The composite methods run
// in a single database transaction scoped to the affected book row, so two
// approvals of the last copy cannot both succeed.
type LoanRepository interface {
	Create(ctx context.Context, loan *domain.Loan) error
	GetByID(ctx context.Context, id int32) (*domain.Loan, error)
	ListByUser(ctx context.Context, userID int32) ([]domain.Loan, error)
	ListByStatus(ctx context.Context, status domain.LoanStatus) ([]domain.Loan, error)
	HasPending(ctx context.Context, userID, bookID int32) (bool, error)

	// CreateBorrowed inserts a loan already in borrowed status and reserves a
	// copy, as one atomic unit (the admin direct-borrow path).
	CreateBorrowed(ctx context.Context, loan *domain.Loan) error
	// Approve flips a requested loan to borrowed, resets loan_date, and
	// reserves a copy, first-committer-wins. Returns domain.ErrInvalidState
	// if the loan is no longer requested, domain.ErrNoCopiesAvailable if the
	// book ran out in the interim.
	Approve(ctx context.Context, loanID int32, loanDate time.Time) (*domain.Loan, error)
	// Reject flips a requested loan to rejected. No inventory effect.
	Reject(ctx context.Context, loanID int32) (*domain.Loan, error)
	// Return records return_date and the final status, releases the copy,
	// and (when the return is late) persists the penalty, all in one
	// transaction.
	Return(ctx context.Context, loan *domain.Loan, penalty *domain.Penalty) error
}

type PenaltyRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.Penalty, error)
	GetByLoan(ctx context.Context, loanID int32) (*domain.Penalty, error)
	ListByUser(ctx context.Context, userID int32) ([]domain.Penalty, error)
	ListAll(ctx context.Context) ([]domain.Penalty, error)
	SetEndDate(ctx context.Context, id int32, endDate time.Time) (*domain.Penalty, error)
	MarkPaid(ctx context.Context, id int32) error
}
