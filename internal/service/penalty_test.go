package service_test

import (
	"context"
	"testing"
	"time"

	"library-loan-backend/internal/domain"
	"library-loan-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestPenaltyService_Waive(t *testing.T) {
	ctx := context.Background()

	t.Run("Pulls End Date To Today", func(t *testing.T) {
		penaltyRepo := new(MockPenaltyRepo)
		svc := service.NewPenaltyService(penaltyRepo, fixedClock(2024, time.January, 17))

		today := time.Date(2024, time.January, 17, 0, 0, 0, 0, time.UTC)
		waived := &domain.Penalty{
			ID:             3,
			LoanID:         10,
			UserID:         42,
			AmountCents:    2500,
			DaysLate:       5,
			PenaltyEndDate: today,
		}
		penaltyRepo.On("SetEndDate", ctx, int32(3), today).Return(waived, nil)

		p, err := svc.Waive(ctx, 3)
		assert.NoError(t, err)

		// The waiver deactivates the penalty without erasing the record.
		assert.False(t, p.ActiveOn(today))
		assert.Equal(t, int32(2500), p.AmountCents)
		assert.Equal(t, int32(5), p.DaysLate)
		penaltyRepo.AssertExpectations(t)
	})

	t.Run("Unknown Penalty", func(t *testing.T) {
		penaltyRepo := new(MockPenaltyRepo)
		svc := service.NewPenaltyService(penaltyRepo, fixedClock(2024, time.January, 17))

		penaltyRepo.On("SetEndDate", ctx, int32(99), mock.Anything).Return(nil, domain.ErrNotFound)

		_, err := svc.Waive(ctx, 99)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestPenaltyService_MarkPaid(t *testing.T) {
	ctx := context.Background()

	penaltyRepo := new(MockPenaltyRepo)
	svc := service.NewPenaltyService(penaltyRepo, fixedClock(2024, time.January, 17))

	penaltyRepo.On("MarkPaid", ctx, int32(3)).Return(nil)

	assert.NoError(t, svc.MarkPaid(ctx, 3))
	penaltyRepo.AssertExpectations(t)
}
