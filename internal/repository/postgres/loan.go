package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"library-loan-backend/internal/domain"
	"library-loan-backend/internal/repository"
)

type loanRepository struct {
	db *sql.DB
}

func NewLoanRepository(db *sql.DB) repository.LoanRepository {
	return &loanRepository{db: db}
}

const loanColumns = `id, user_id, book_id, loan_date, due_date, return_date, status, created_at`

func scanLoan(row *sql.Row) (*domain.Loan, error) {
	l := &domain.Loan{}
	err := row.Scan(&l.ID, &l.UserID, &l.BookID, &l.LoanDate, &l.DueDate, &l.ReturnDate, &l.Status, &l.CreatedAt)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return l, nil
}

// Create inserts a loan. The partial unique index on (user_id, book_id)
// WHERE status = 'requested' is the authoritative guard against duplicate
// pending requests; the service-level check only exists for a friendlier
// fast path, the index decides races.
func (r *loanRepository) Create(ctx context.Context, l *domain.Loan) error {
	query := `INSERT INTO loans (user_id, book_id, loan_date, due_date, status, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err := r.db.QueryRowContext(ctx, query,
		l.UserID, l.BookID, l.LoanDate.Format(dateLayout), l.DueDate.Format(dateLayout), l.Status, time.Now()).Scan(&l.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.ErrDuplicatePendingRequest
		}
		return err
	}
	return nil
}

func (r *loanRepository) GetByID(ctx context.Context, id int32) (*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE id = $1`
	return scanLoan(r.db.QueryRowContext(ctx, query, id))
}

func (r *loanRepository) ListByUser(ctx context.Context, userID int32) ([]domain.Loan, error) {
	query := `SELECT l.id, l.user_id, l.book_id, b.title, l.loan_date, l.due_date, l.return_date, l.status, l.created_at
	          FROM loans l JOIN books b ON b.id = l.book_id
	          WHERE l.user_id = $1 ORDER BY l.created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var loans []domain.Loan
	for rows.Next() {
		var l domain.Loan
		if err := rows.Scan(&l.ID, &l.UserID, &l.BookID, &l.BookTitle, &l.LoanDate, &l.DueDate, &l.ReturnDate, &l.Status, &l.CreatedAt); err != nil {
			return nil, err
		}
		loans = append(loans, l)
	}
	return loans, rows.Err()
}

func (r *loanRepository) ListByStatus(ctx context.Context, status domain.LoanStatus) ([]domain.Loan, error) {
	query := `SELECT l.id, l.user_id, l.book_id, b.title, l.loan_date, l.due_date, l.return_date, l.status, l.created_at
	          FROM loans l JOIN books b ON b.id = l.book_id
	          WHERE l.status = $1 ORDER BY l.created_at ASC`
	rows, err := r.db.QueryContext(ctx, query, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var loans []domain.Loan
	for rows.Next() {
		var l domain.Loan
		if err := rows.Scan(&l.ID, &l.UserID, &l.BookID, &l.BookTitle, &l.LoanDate, &l.DueDate, &l.ReturnDate, &l.Status, &l.CreatedAt); err != nil {
			return nil, err
		}
		loans = append(loans, l)
	}
	return loans, rows.Err()
}

func (r *loanRepository) HasPending(ctx context.Context, userID, bookID int32) (bool, error) {
	var count int32
	query := `SELECT count(*) FROM loans WHERE user_id = $1 AND book_id = $2 AND status = $3`
	if err := r.db.QueryRowContext(ctx, query, userID, bookID, domain.LoanStatusRequested).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateBorrowed reserves a copy and inserts the borrowed loan in one
// transaction. If the reservation loses the race the insert never happens.
func (r *loanRepository) CreateBorrowed(ctx context.Context, l *domain.Loan) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := reserveCopy(ctx, tx, l.BookID); err != nil {
		return err
	}

	query := `INSERT INTO loans (user_id, book_id, loan_date, due_date, status, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	if err := tx.QueryRowContext(ctx, query,
		l.UserID, l.BookID, l.LoanDate.Format(dateLayout), l.DueDate.Format(dateLayout), l.Status, time.Now()).Scan(&l.ID); err != nil {
		return err
	}

	return tx.Commit()
}

// Approve moves a requested loan to borrowed and reserves a copy as one
// atomic unit. The status guard sits in the UPDATE itself, so of two
// concurrent approvals only the first committer sees a row change; the
// second gets ErrInvalidState without ever touching the counter.
func (r *loanRepository) Approve(ctx context.Context, loanID int32, loanDate time.Time) (*domain.Loan, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := `UPDATE loans SET status = $1, loan_date = $2 WHERE id = $3 AND status = $4 RETURNING ` + loanColumns
	l, err := scanLoan(tx.QueryRowContext(ctx, query,
		domain.LoanStatusBorrowed, loanDate.Format(dateLayout), loanID, domain.LoanStatusRequested))
	if err != nil {
		if err == domain.ErrNotFound {
			// Distinguish a missing loan from a loan in the wrong state.
			var exists bool
			if qerr := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM loans WHERE id = $1)`, loanID).Scan(&exists); qerr != nil {
				return nil, qerr
			}
			if !exists {
				return nil, domain.ErrNotFound
			}
			return nil, domain.ErrInvalidState
		}
		return nil, err
	}

	if err := reserveCopy(ctx, tx, l.BookID); err != nil {
		// Rolls back the status change; the loan stays requested.
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return l, nil
}

func (r *loanRepository) Reject(ctx context.Context, loanID int32) (*domain.Loan, error) {
	query := `UPDATE loans SET status = $1 WHERE id = $2 AND status = $3 RETURNING ` + loanColumns
	l, err := scanLoan(r.db.QueryRowContext(ctx, query, domain.LoanStatusRejected, loanID, domain.LoanStatusRequested))
	if err != nil {
		if err == domain.ErrNotFound {
			var exists bool
			if qerr := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM loans WHERE id = $1)`, loanID).Scan(&exists); qerr != nil {
				return nil, qerr
			}
			if !exists {
				return nil, domain.ErrNotFound
			}
			return nil, domain.ErrInvalidState
		}
		return nil, err
	}
	return l, nil
}

// Return persists the return transition: return_date and final status on the
// loan, one copy back on the book, and the penalty row when the return was
// late. The return_date IS NULL guard keeps a concurrent duplicate return
// from releasing a second copy.
func (r *loanRepository) Return(ctx context.Context, l *domain.Loan, penalty *domain.Penalty) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `UPDATE loans SET status = $1, return_date = $2 WHERE id = $3 AND return_date IS NULL`
	res, err := tx.ExecContext(ctx, query, l.Status, l.ReturnDate.Format(dateLayout), l.ID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrAlreadyReturned
	}

	if err := releaseCopy(ctx, tx, l.BookID); err != nil {
		return err
	}

	if penalty != nil {
		insert := `INSERT INTO penalties (loan_id, user_id, amount_cents, days_late, penalty_end_date, is_paid, created_at)
		           VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
		if err := tx.QueryRowContext(ctx, insert,
			penalty.LoanID, penalty.UserID, penalty.AmountCents, penalty.DaysLate,
			penalty.PenaltyEndDate.Format(dateLayout), penalty.IsPaid, time.Now()).Scan(&penalty.ID); err != nil {
			return err
		}
	}

	return tx.Commit()
}
