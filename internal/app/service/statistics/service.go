package statistics

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/juegotea/backend/internal/models"
	"github.com/juegotea/backend/pkg/types"
)

type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewService(db *gorm.DB, log *zap.SugaredLogger) *Service {
	return &Service{db: db, log: log}
}

type statusCount struct {
	Status types.PaymentStatus `json:"status"`
	Count  int64               `json:"count"`
}

// PaymentTotals is the admin payment summary: row counts per status and the
// sum of approved amounts.
type PaymentTotals struct {
	ByStatus       map[types.PaymentStatus]int64 `json:"by_status"`
	ApprovedAmount float64                       `json:"approved_amount"`
}

func (s *Service) PaymentTotals(ctx context.Context) (*PaymentTotals, error) {
	var rows []statusCount
	err := s.db.WithContext(ctx).
		Model(&models.PendingPayment{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count payments by status: %w", err)
	}

	var approved float64
	err = s.db.WithContext(ctx).
		Model(&models.PendingPayment{}).
		Where("status = ?", types.PaymentStatusApproved).
		Select("coalesce(sum(amount), 0)").
		Scan(&approved).Error
	if err != nil {
		return nil, fmt.Errorf("failed to sum approved amounts: %w", err)
	}

	return &PaymentTotals{
		ByStatus: lo.SliceToMap(rows, func(r statusCount) (types.PaymentStatus, int64) {
			return r.Status, r.Count
		}),
		ApprovedAmount: approved,
	}, nil
}
