package utils

import (
	"fmt"
	"time"

	"library-loan-backend/internal/domain"
)

// PenaltyBreakdown provides the derived figures for a late return.
type PenaltyBreakdown struct {
	DaysLate    int32
	AmountCents int32
}

// DateOf reduces an instant to its calendar date, anchored at midnight UTC.
// The date is taken from the instant's own zone, so "2024-01-10 20:00 -05:00"
// and "2024-01-10 00:00 UTC" both map to the same value and dates from
// different sources can be compared directly.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysLate returns how many whole calendar days after the due date the
// return happened, never negative. Zones and times of day do not matter;
// only the calendar dates count.
func DaysLate(dueDate, returnDate time.Time) int32 {
	days := int32(DateOf(returnDate).Sub(DateOf(dueDate)) / (24 * time.Hour))
	if days < 0 {
		return 0
	}
	return days
}

// CalculatePenalty derives the penalty for a late return. Money is integer
// cents throughout, so days * rate is exact and never needs rounding.
// Callers must not invoke it for on-time returns.
func CalculatePenalty(dueDate, returnDate time.Time, dailyRateCents int32) (PenaltyBreakdown, error) {
	if dailyRateCents < 0 {
		return PenaltyBreakdown{}, fmt.Errorf("daily rate must be non-negative, got %d", dailyRateCents)
	}

	days := DaysLate(dueDate, returnDate)
	if days == 0 {
		return PenaltyBreakdown{}, fmt.Errorf("return on %s is not late against due date %s",
			returnDate.Format("2006-01-02"), dueDate.Format("2006-01-02"))
	}

	return PenaltyBreakdown{
		DaysLate:    days,
		AmountCents: days * dailyRateCents,
	}, nil
}

// NewPenalty builds the penalty record for a late loan. The penalty stays
// active for as many days as the return was late, counted from the return
// date; an administrative waiver later pulls the end date back to the day
// of the waiver.
func NewPenalty(loan *domain.Loan, returnDate time.Time, dailyRateCents int32) (*domain.Penalty, error) {
	b, err := CalculatePenalty(loan.DueDate, returnDate, dailyRateCents)
	if err != nil {
		return nil, err
	}

	return &domain.Penalty{
		LoanID:         loan.ID,
		UserID:         loan.UserID,
		AmountCents:    b.AmountCents,
		DaysLate:       b.DaysLate,
		PenaltyEndDate: DateOf(returnDate).AddDate(0, 0, int(b.DaysLate)),
		IsPaid:         false,
	}, nil
}
