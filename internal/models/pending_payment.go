package models

import (
	"time"

	"github.com/juegotea/backend/pkg/types"
)

// PendingPayment tracks a checkout preference from creation until the provider
// reports a terminal outcome through the webhook.
type PendingPayment struct {
	// PreferenceID is the MercadoPago preference id returned at checkout creation.
	PreferenceID string              `gorm:"column:preference_id;type:varchar(128);primary_key" json:"preference_id"`
	UserID       string              `gorm:"column:user_id;type:varchar(128);not null;index:idx_pending_user_status,priority:1" json:"user_id"`
	Plan         string              `gorm:"column:plan;type:varchar(64);not null" json:"plan"`
	Status       types.PaymentStatus `gorm:"column:status;type:varchar(32);not null;index:idx_pending_user_status,priority:2" json:"status"`
	// PaymentID is the provider payment id, set when the webhook resolves the row.
	PaymentID *int64    `gorm:"column:payment_id;type:bigint;index" json:"payment_id"`
	Amount    float64   `gorm:"column:amount;not null" json:"amount"`
	Currency  string    `gorm:"column:currency;type:varchar(8);not null" json:"currency"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (PendingPayment) TableName() string {
	return "pending_payment"
}

func (p *PendingPayment) Resolved() bool {
	return p != nil && p.Status.Terminal()
}
