package postgres

import (
	"context"
	"database/sql"
	"time"

	"library-loan-backend/internal/domain"
	"library-loan-backend/internal/repository"
)

type penaltyRepository struct {
	db *sql.DB
}

func NewPenaltyRepository(db *sql.DB) repository.PenaltyRepository {
	return &penaltyRepository{db: db}
}

const penaltyColumns = `id, loan_id, user_id, amount_cents, days_late, penalty_end_date, is_paid, created_at`

func scanPenalty(row *sql.Row) (*domain.Penalty, error) {
	p := &domain.Penalty{}
	err := row.Scan(&p.ID, &p.LoanID, &p.UserID, &p.AmountCents, &p.DaysLate, &p.PenaltyEndDate, &p.IsPaid, &p.CreatedAt)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return p, nil
}

func (r *penaltyRepository) GetByID(ctx context.Context, id int32) (*domain.Penalty, error) {
	query := `SELECT ` + penaltyColumns + ` FROM penalties WHERE id = $1`
	return scanPenalty(r.db.QueryRowContext(ctx, query, id))
}

func (r *penaltyRepository) GetByLoan(ctx context.Context, loanID int32) (*domain.Penalty, error) {
	query := `SELECT ` + penaltyColumns + ` FROM penalties WHERE loan_id = $1`
	return scanPenalty(r.db.QueryRowContext(ctx, query, loanID))
}

func (r *penaltyRepository) ListByUser(ctx context.Context, userID int32) ([]domain.Penalty, error) {
	query := `SELECT ` + penaltyColumns + ` FROM penalties WHERE user_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, userID)
}

func (r *penaltyRepository) ListAll(ctx context.Context) ([]domain.Penalty, error) {
	query := `SELECT ` + penaltyColumns + ` FROM penalties ORDER BY created_at DESC`
	return r.list(ctx, query)
}

func (r *penaltyRepository) list(ctx context.Context, query string, args ...interface{}) ([]domain.Penalty, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var penalties []domain.Penalty
	for rows.Next() {
		var p domain.Penalty
		if err := rows.Scan(&p.ID, &p.LoanID, &p.UserID, &p.AmountCents, &p.DaysLate, &p.PenaltyEndDate, &p.IsPaid, &p.CreatedAt); err != nil {
			return nil, err
		}
		penalties = append(penalties, p)
	}
	return penalties, rows.Err()
}

// SetEndDate rewrites penalty_end_date; amount_cents and days_late are never
// updated, the historical record stays intact.
func (r *penaltyRepository) SetEndDate(ctx context.Context, id int32, endDate time.Time) (*domain.Penalty, error) {
	query := `UPDATE penalties SET penalty_end_date = $1 WHERE id = $2 RETURNING ` + penaltyColumns
	return scanPenalty(r.db.QueryRowContext(ctx, query, endDate.Format(dateLayout), id))
}

func (r *penaltyRepository) MarkPaid(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `UPDATE penalties SET is_paid = true WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
