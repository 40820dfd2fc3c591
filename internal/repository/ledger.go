package repository

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/juegotea/backend/internal/models"
	"github.com/juegotea/backend/pkg/logctx"
	"github.com/juegotea/backend/pkg/types"
)

var ErrNotFound = errors.New("record not found")

// Ledger is the payment-side persistence: pending payments created at checkout
// and the webhook notification log.
type Ledger interface {
	CreatePending(ctx context.Context, p *models.PendingPayment) error
	GetPending(ctx context.Context, preferenceID string) (*models.PendingPayment, error)
	// FindOpenByUser returns the user's single status=pending row.
	FindOpenByUser(ctx context.Context, userID string) (*models.PendingPayment, error)
	// Resolve moves a pending row to a terminal status and stamps the payment id.
	Resolve(ctx context.Context, preferenceID string, status types.PaymentStatus, paymentID int64) error
	// PaymentProcessed reports whether a payment id was already applied to a row.
	PaymentProcessed(ctx context.Context, paymentID int64) (bool, error)

	LogWebhook(ctx context.Context, l *models.WebhookLog) error
	UpdateWebhookLog(ctx context.Context, id string, status models.WebhookLogStatus, errText string) error
}

type gormLedger struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewLedger(db *gorm.DB, log *zap.SugaredLogger) Ledger {
	return &gormLedger{db: db, log: log}
}

func (r *gormLedger) CreatePending(ctx context.Context, p *models.PendingPayment) error {
	if p.PreferenceID == "" {
		return fmt.Errorf("pending payment requires a preference id")
	}
	if p.Status == "" {
		p.Status = types.PaymentStatusPending
	}
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("failed to create pending payment: %w", err)
	}
	return nil
}

func (r *gormLedger) GetPending(ctx context.Context, preferenceID string) (*models.PendingPayment, error) {
	var p models.PendingPayment
	err := r.db.WithContext(ctx).Where("preference_id = ?", preferenceID).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get pending payment: %w", err)
	}
	return &p, nil
}

func (r *gormLedger) FindOpenByUser(ctx context.Context, userID string) (*models.PendingPayment, error) {
	var p models.PendingPayment
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, types.PaymentStatusPending).
		Order("created_at desc").
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find open pending payment: %w", err)
	}
	return &p, nil
}

func (r *gormLedger) Resolve(ctx context.Context, preferenceID string, status types.PaymentStatus, paymentID int64) error {
	res := r.db.WithContext(ctx).
		Model(&models.PendingPayment{}).
		Where("preference_id = ?", preferenceID).
		Updates(map[string]any{"status": status, "payment_id": paymentID})
	if res.Error != nil {
		return fmt.Errorf("failed to resolve pending payment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormLedger) PaymentProcessed(ctx context.Context, paymentID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.PendingPayment{}).
		Where("payment_id = ?", paymentID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check processed payment: %w", err)
	}
	return count > 0, nil
}

func (r *gormLedger) LogWebhook(ctx context.Context, l *models.WebhookLog) error {
	if l.Status == "" {
		l.Status = models.WebhookLogStatusReceived
	}
	if err := r.db.WithContext(ctx).Create(l).Error; err != nil {
		// The log must never block webhook handling.
		logctx.FromCtx(ctx, r.log).Errorw("webhook_log_create_failed", "error", err)
		return fmt.Errorf("failed to log webhook: %w", err)
	}
	return nil
}

func (r *gormLedger) UpdateWebhookLog(ctx context.Context, id string, status models.WebhookLogStatus, errText string) error {
	err := r.db.WithContext(ctx).
		Model(&models.WebhookLog{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "error": errText}).Error
	if err != nil {
		return fmt.Errorf("failed to update webhook log: %w", err)
	}
	return nil
}

var Module = fx.Options(
	fx.Provide(NewLedger),
)
