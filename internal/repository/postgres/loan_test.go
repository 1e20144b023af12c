package postgres_test

import (
	"context"
	"testing"
	"time"

	"library-loan-backend/internal/domain"
	"library-loan-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

var loanCols = []string{"id", "user_id", "book_id", "loan_date", "due_date", "return_date", "status", "created_at"}

func TestLoanRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewLoanRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		loan := &domain.Loan{
			UserID:   42,
			BookID:   7,
			LoanDate: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
			DueDate:  time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
			Status:   domain.LoanStatusRequested,
		}

		mock.ExpectQuery("INSERT INTO loans").
			WithArgs(loan.UserID, loan.BookID, "2024-01-01", "2024-01-15", loan.Status, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))

		err := repo.Create(ctx, loan)
		assert.NoError(t, err)
		assert.Equal(t, int32(10), loan.ID)
	})

	t.Run("Concurrent Duplicate Loses To Unique Index", func(t *testing.T) {
		loan := &domain.Loan{
			UserID:   42,
			BookID:   7,
			LoanDate: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
			DueDate:  time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
			Status:   domain.LoanStatusRequested,
		}

		mock.ExpectQuery("INSERT INTO loans").
			WithArgs(loan.UserID, loan.BookID, "2024-01-01", "2024-01-15", loan.Status, sqlmock.AnyArg()).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "loans_one_pending_per_user_book"})

		err := repo.Create(ctx, loan)
		assert.ErrorIs(t, err, domain.ErrDuplicatePendingRequest)
	})
}

func TestLoanRepository_CreateBorrowed(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewLoanRepository(db)
	ctx := context.Background()

	loan := func() *domain.Loan {
		return &domain.Loan{
			UserID:   1,
			BookID:   7,
			LoanDate: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
			DueDate:  time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
			Status:   domain.LoanStatusBorrowed,
		}
	}

	t.Run("Reserves Then Inserts In One Transaction", func(t *testing.T) {
		l := loan()

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE books SET available_copies = available_copies - 1").
			WithArgs(l.BookID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("INSERT INTO loans").
			WithArgs(l.UserID, l.BookID, "2024-01-01", "2024-01-15", l.Status, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
		mock.ExpectCommit()

		err := repo.CreateBorrowed(ctx, l)
		assert.NoError(t, err)
		assert.Equal(t, int32(10), l.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Rolls Back When No Copy Left", func(t *testing.T) {
		l := loan()

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE books SET available_copies = available_copies - 1").
			WithArgs(l.BookID).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(l.BookID).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectRollback()

		err := repo.CreateBorrowed(ctx, l)
		assert.ErrorIs(t, err, domain.ErrNoCopiesAvailable)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestLoanRepository_Approve(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewLoanRepository(db)
	ctx := context.Background()
	approvalDay := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)

	t.Run("Flips Status And Reserves", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("UPDATE loans SET status = \\$1, loan_date = \\$2 WHERE id = \\$3 AND status = \\$4").
			WithArgs(domain.LoanStatusBorrowed, "2024-03-05", int32(10), domain.LoanStatusRequested).
			WillReturnRows(sqlmock.NewRows(loanCols).
				AddRow(10, 42, 7, approvalDay, approvalDay.AddDate(0, 0, 14), nil, "borrowed", time.Now()))
		mock.ExpectExec("UPDATE books SET available_copies = available_copies - 1").
			WithArgs(int32(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		loan, err := repo.Approve(ctx, 10, approvalDay)
		assert.NoError(t, err)
		assert.Equal(t, domain.LoanStatusBorrowed, loan.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Already Decided", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("UPDATE loans SET status = \\$1, loan_date = \\$2 WHERE id = \\$3 AND status = \\$4").
			WithArgs(domain.LoanStatusBorrowed, "2024-03-05", int32(10), domain.LoanStatusRequested).
			WillReturnRows(sqlmock.NewRows(loanCols))
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(int32(10)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectRollback()

		_, err := repo.Approve(ctx, 10, approvalDay)
		assert.ErrorIs(t, err, domain.ErrInvalidState)
	})

	t.Run("Unknown Loan", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("UPDATE loans SET status = \\$1, loan_date = \\$2 WHERE id = \\$3 AND status = \\$4").
			WithArgs(domain.LoanStatusBorrowed, "2024-03-05", int32(99), domain.LoanStatusRequested).
			WillReturnRows(sqlmock.NewRows(loanCols))
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(int32(99)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectRollback()

		_, err := repo.Approve(ctx, 99, approvalDay)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Rolls Back Status Change When Book Ran Out", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("UPDATE loans SET status = \\$1, loan_date = \\$2 WHERE id = \\$3 AND status = \\$4").
			WithArgs(domain.LoanStatusBorrowed, "2024-03-05", int32(10), domain.LoanStatusRequested).
			WillReturnRows(sqlmock.NewRows(loanCols).
				AddRow(10, 42, 7, approvalDay, approvalDay.AddDate(0, 0, 14), nil, "borrowed", time.Now()))
		mock.ExpectExec("UPDATE books SET available_copies = available_copies - 1").
			WithArgs(int32(7)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(int32(7)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectRollback()

		_, err := repo.Approve(ctx, 10, approvalDay)
		assert.ErrorIs(t, err, domain.ErrNoCopiesAvailable)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestLoanRepository_Reject(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewLoanRepository(db)
	ctx := context.Background()

	t.Run("No Inventory Effect", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery("UPDATE loans SET status = \\$1 WHERE id = \\$2 AND status = \\$3").
			WithArgs(domain.LoanStatusRejected, int32(10), domain.LoanStatusRequested).
			WillReturnRows(sqlmock.NewRows(loanCols).
				AddRow(10, 42, 7, now, now.AddDate(0, 0, 14), nil, "rejected", now))

		loan, err := repo.Reject(ctx, 10)
		assert.NoError(t, err)
		assert.Equal(t, domain.LoanStatusRejected, loan.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Already Decided", func(t *testing.T) {
		mock.ExpectQuery("UPDATE loans SET status = \\$1 WHERE id = \\$2 AND status = \\$3").
			WithArgs(domain.LoanStatusRejected, int32(10), domain.LoanStatusRequested).
			WillReturnRows(sqlmock.NewRows(loanCols))
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(int32(10)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		_, err := repo.Reject(ctx, 10)
		assert.ErrorIs(t, err, domain.ErrInvalidState)
	})
}

func TestLoanRepository_Return(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewLoanRepository(db)
	ctx := context.Background()

	returnDate := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	loan := func(status domain.LoanStatus) *domain.Loan {
		return &domain.Loan{
			ID:         10,
			UserID:     42,
			BookID:     7,
			Status:     status,
			ReturnDate: &returnDate,
		}
	}

	t.Run("On Time Return Releases Copy", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE loans SET status = \\$1, return_date = \\$2 WHERE id = \\$3 AND return_date IS NULL").
			WithArgs(domain.LoanStatusReturned, "2024-01-15", int32(10)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE books SET available_copies = available_copies \\+ 1").
			WithArgs(int32(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.Return(ctx, loan(domain.LoanStatusReturned), nil)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Late Return Persists Penalty In Same Transaction", func(t *testing.T) {
		penalty := &domain.Penalty{
			LoanID:         10,
			UserID:         42,
			AmountCents:    2500,
			DaysLate:       5,
			PenaltyEndDate: time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC),
		}

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE loans SET status = \\$1, return_date = \\$2 WHERE id = \\$3 AND return_date IS NULL").
			WithArgs(domain.LoanStatusLate, "2024-01-15", int32(10)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE books SET available_copies = available_copies \\+ 1").
			WithArgs(int32(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("INSERT INTO penalties").
			WithArgs(penalty.LoanID, penalty.UserID, penalty.AmountCents, penalty.DaysLate, "2024-01-20", false, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
		mock.ExpectCommit()

		err := repo.Return(ctx, loan(domain.LoanStatusLate), penalty)
		assert.NoError(t, err)
		assert.Equal(t, int32(3), penalty.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Second Return Is Refused", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE loans SET status = \\$1, return_date = \\$2 WHERE id = \\$3 AND return_date IS NULL").
			WithArgs(domain.LoanStatusReturned, "2024-01-15", int32(10)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.Return(ctx, loan(domain.LoanStatusReturned), nil)
		assert.ErrorIs(t, err, domain.ErrAlreadyReturned)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestLoanRepository_HasPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewLoanRepository(db)
	ctx := context.Background()

	t.Run("Pending Exists", func(t *testing.T) {
		mock.ExpectQuery("SELECT count\\(\\*\\) FROM loans").
			WithArgs(int32(42), int32(7), domain.LoanStatusRequested).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		pending, err := repo.HasPending(ctx, 42, 7)
		assert.NoError(t, err)
		assert.True(t, pending)
	})

	t.Run("None Pending", func(t *testing.T) {
		mock.ExpectQuery("SELECT count\\(\\*\\) FROM loans").
			WithArgs(int32(42), int32(7), domain.LoanStatusRequested).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		pending, err := repo.HasPending(ctx, 42, 7)
		assert.NoError(t, err)
		assert.False(t, pending)
	})
}
