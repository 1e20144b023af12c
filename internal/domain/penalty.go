package domain

import "time"

type Penalty struct {
	ID             int32     `json:"id"`
	LoanID         int32     `json:"loan_id"`
	UserID         int32     `json:"user_id"`
	AmountCents    int32     `json:"amount_cents"`
	DaysLate       int32     `json:"days_late"`
	PenaltyEndDate time.Time `json:"penalty_end_date"`
	IsPaid         bool      `json:"is_paid"`
	CreatedAt      time.Time `json:"created_at"`
}

// ActiveOn reports whether the penalty is still in effect on the given day.
// A waived penalty has its end date pulled back to the waiver day, so it
// stops being active without losing its amount or days_late record.
func (p *Penalty) ActiveOn(day time.Time) bool {
	return p.PenaltyEndDate.After(day)
}
