package domain

import "time"

type LoanStatus string

const (
	LoanStatusRequested LoanStatus = "requested"
	LoanStatusApproved  LoanStatus = "approved"
	LoanStatusBorrowed  LoanStatus = "borrowed"
	LoanStatusReturned  LoanStatus = "returned"
	LoanStatusLate      LoanStatus = "late"
	LoanStatusRejected  LoanStatus = "rejected"
)

// loanTransitions is the closed set of allowed status transitions.
// "approved" stays in the enum for wire compatibility with older clients,
// but the engine moves requested loans straight to borrowed.
var loanTransitions = map[LoanStatus][]LoanStatus{
	LoanStatusRequested: {LoanStatusBorrowed, LoanStatusRejected},
	LoanStatusBorrowed:  {LoanStatusReturned, LoanStatusLate},
	LoanStatusReturned:  {},
	LoanStatusLate:      {},
	LoanStatusRejected:  {},
}

// CanTransition reports whether a loan in status from may move to status to.
func CanTransition(from, to LoanStatus) bool {
	for _, next := range loanTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no transition leaves the given status.
func (s LoanStatus) IsTerminal() bool {
	return len(loanTransitions[s]) == 0
}

type Loan struct {
	ID         int32      `json:"id"`
	UserID     int32      `json:"user_id"`
	BookID     int32      `json:"book_id"`
	BookTitle  string     `json:"book_title,omitempty"` // Populated on list queries
	LoanDate   time.Time  `json:"loan_date"`
	DueDate    time.Time  `json:"due_date"`
	ReturnDate *time.Time `json:"return_date,omitempty"`
	Status     LoanStatus `json:"status"`
	Penalty    *Penalty   `json:"penalty,omitempty"` // At most one per loan
	CreatedAt  time.Time  `json:"created_at"`
}

// Transition moves the loan to the requested status, rejecting moves the
// transition table does not allow.
func (l *Loan) Transition(to LoanStatus) error {
	if !CanTransition(l.Status, to) {
		return ErrInvalidState
	}
	l.Status = to
	return nil
}

// Returned reports whether the loan has already been returned.
func (l *Loan) Returned() bool {
	return l.ReturnDate != nil
}
