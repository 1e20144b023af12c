package service

import (
	"context"
	"time"

	"library-loan-backend/internal/domain"
	"library-loan-backend/internal/logger"
	"library-loan-backend/internal/repository"
	"library-loan-backend/internal/utils"
)

type penaltyService struct {
	penaltyRepo repository.PenaltyRepository
	now         Clock
}

func NewPenaltyService(penaltyRepo repository.PenaltyRepository, now Clock) PenaltyService {
	if now == nil {
		now = time.Now
	}
	return &penaltyService{penaltyRepo: penaltyRepo, now: now}
}

func (s *penaltyService) ListForUser(ctx context.Context, userID int32) ([]domain.Penalty, error) {
	return s.penaltyRepo.ListByUser(ctx, userID)
}

func (s *penaltyService) ListAll(ctx context.Context) ([]domain.Penalty, error) {
	return s.penaltyRepo.ListAll(ctx)
}

// Waive pulls the penalty's end date back to today so it stops being active.
// The amount and days_late stay on record; a waiver is a logical removal,
// not a deletion.
func (s *penaltyService) Waive(ctx context.Context, penaltyID int32) (*domain.Penalty, error) {
	p, err := s.penaltyRepo.SetEndDate(ctx, penaltyID, utils.DateOf(s.now()))
	if err != nil {
		return nil, err
	}
	logger.Info("Penalty waived", "penalty_id", p.ID, "loan_id", p.LoanID, "user_id", p.UserID)
	return p, nil
}

func (s *penaltyService) MarkPaid(ctx context.Context, penaltyID int32) error {
	return s.penaltyRepo.MarkPaid(ctx, penaltyID)
}
