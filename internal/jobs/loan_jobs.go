package jobs

import (
	"context"
	"time"

	"library-loan-backend/internal/domain"
	"library-loan-backend/internal/logger"
)

// ReportOverdueLoans logs every borrowed loan whose due date has passed.
// It never mutates loan status: "late" is only ever derived at return time,
// so this job is purely an operator-facing report.
func (jr *JobRunner) ReportOverdueLoans() {
	jr.runWithRecovery("ReportOverdueLoans", func() {
		ctx := context.Background()

		query := `
			SELECT l.id, l.user_id, l.book_id, l.due_date
			FROM loans l
			WHERE l.status = $1
			  AND l.due_date < $2
			ORDER BY l.due_date ASC
		`

		rows, err := jr.db.QueryContext(ctx, query, domain.LoanStatusBorrowed, time.Now().Format("2006-01-02"))
		if err != nil {
			logger.Error("Failed to query overdue loans", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var (
				loanID, userID, bookID int32
				dueDate                time.Time
			)
			if err := rows.Scan(&loanID, &userID, &bookID, &dueDate); err != nil {
				logger.Error("Failed to scan overdue loan", "error", err)
				continue
			}
			count++
			logger.Debug("Loan overdue",
				"loan_id", loanID,
				"user_id", userID,
				"book_id", bookID,
				"due_date", dueDate.Format("2006-01-02"))
		}

		if err := rows.Err(); err != nil {
			logger.Error("Error iterating overdue loans", "error", err)
			return
		}

		logger.Info("Overdue loan report complete", "count", count)
	})
}
