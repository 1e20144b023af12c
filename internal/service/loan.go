package service

import (
	"context"
	"time"

	"library-loan-backend/internal/domain"
	"library-loan-backend/internal/logger"
	"library-loan-backend/internal/repository"
	"library-loan-backend/internal/utils"
)

// Clock supplies "today" at date granularity so tests can pin time.
type Clock func() time.Time

type loanService struct {
	loanRepo       repository.LoanRepository
	bookRepo       repository.BookRepository
	penaltyRepo    repository.PenaltyRepository
	dailyRateCents int32
	now            Clock
}

func NewLoanService(
	loanRepo repository.LoanRepository,
	bookRepo repository.BookRepository,
	penaltyRepo repository.PenaltyRepository,
	penaltyDailyRateCents int32,
	now Clock,
) LoanService {
	if now == nil {
		now = time.Now
	}
	return &loanService{
		loanRepo:       loanRepo,
		bookRepo:       bookRepo,
		penaltyRepo:    penaltyRepo,
		dailyRateCents: penaltyDailyRateCents,
		now:            now,
	}
}

// CreateRequest opens a loan. Admin actors skip the approval step: a copy is
// reserved immediately and the loan starts borrowed. Everyone else gets a
// requested loan with no reservation; inventory is only committed when an
// admin approves.
func (s *loanService) CreateRequest(ctx context.Context, userID int32, role domain.Role, bookID int32, durationDays int) (*domain.Loan, error) {
	book, err := s.bookRepo.GetByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if book.AvailableCopies <= 0 {
		return nil, domain.ErrNoCopiesAvailable
	}

	pending, err := s.loanRepo.HasPending(ctx, userID, bookID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, domain.ErrDuplicatePendingRequest
	}

	today := s.today()
	loan := &domain.Loan{
		UserID:   userID,
		BookID:   bookID,
		LoanDate: today,
		DueDate:  today.AddDate(0, 0, durationDays),
	}

	if role == domain.RoleAdmin {
		loan.Status = domain.LoanStatusBorrowed
		// The availability check above is only advisory; the reservation
		// inside CreateBorrowed is what actually decides the race.
		if err := s.loanRepo.CreateBorrowed(ctx, loan); err != nil {
			return nil, err
		}
		logger.Info("Book lent directly", "loan_id", loan.ID, "book_id", bookID, "user_id", userID)
		return loan, nil
	}

	loan.Status = domain.LoanStatusRequested
	if err := s.loanRepo.Create(ctx, loan); err != nil {
		return nil, err
	}
	logger.Info("Loan requested", "loan_id", loan.ID, "book_id", bookID, "user_id", userID)
	return loan, nil
}

// Approve commits the two-phase reservation: the copy is reserved now, and
// loan_date is reset to the approval date. due_date keeps the value from the
// original request on purpose; see the transition notes in DESIGN.md.
func (s *loanService) Approve(ctx context.Context, loanID int32) (*domain.Loan, error) {
	loan, err := s.loanRepo.Approve(ctx, loanID, s.today())
	if err != nil {
		return nil, err
	}
	logger.Info("Loan request approved", "loan_id", loan.ID, "book_id", loan.BookID, "user_id", loan.UserID)
	return loan, nil
}

func (s *loanService) Reject(ctx context.Context, loanID int32) (*domain.Loan, error) {
	loan, err := s.loanRepo.Reject(ctx, loanID)
	if err != nil {
		return nil, err
	}
	// Nothing was ever reserved for a requested loan, so no inventory effect.
	logger.Info("Loan request rejected", "loan_id", loan.ID, "book_id", loan.BookID, "user_id", loan.UserID)
	return loan, nil
}

// Return closes a borrowed loan. A return always frees exactly one copy; a
// late return additionally creates the penalty in the same transaction.
func (s *loanService) Return(ctx context.Context, loanID, actorID int32, actorRole domain.Role) (*domain.Loan, error) {
	loan, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if loan.UserID != actorID && actorRole != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if loan.Returned() {
		return nil, domain.ErrAlreadyReturned
	}

	today := s.today()
	final := domain.LoanStatusReturned
	if today.After(utils.DateOf(loan.DueDate)) {
		final = domain.LoanStatusLate
	}
	if err := loan.Transition(final); err != nil {
		return nil, err
	}
	loan.ReturnDate = &today

	var penalty *domain.Penalty
	if final == domain.LoanStatusLate {
		penalty, err = utils.NewPenalty(loan, today, s.dailyRateCents)
		if err != nil {
			return nil, err
		}
	}

	if err := s.loanRepo.Return(ctx, loan, penalty); err != nil {
		return nil, err
	}

	if penalty != nil {
		loan.Penalty = penalty
		logger.Info("Late return, penalty created",
			"loan_id", loan.ID, "days_late", penalty.DaysLate, "amount_cents", penalty.AmountCents)
	} else {
		logger.Info("Book returned", "loan_id", loan.ID, "book_id", loan.BookID)
	}
	return loan, nil
}

func (s *loanService) ListForUser(ctx context.Context, userID int32) ([]domain.Loan, error) {
	loans, err := s.loanRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range loans {
		p, err := s.penaltyRepo.GetByLoan(ctx, loans[i].ID)
		if err != nil {
			if err == domain.ErrNotFound {
				continue
			}
			return nil, err
		}
		loans[i].Penalty = p
	}
	return loans, nil
}

func (s *loanService) ListPendingRequests(ctx context.Context) ([]domain.Loan, error) {
	return s.loanRepo.ListByStatus(ctx, domain.LoanStatusRequested)
}

func (s *loanService) today() time.Time {
	return utils.DateOf(s.now())
}
