package models

import (
	"time"

	"gorm.io/datatypes"
)

type WebhookLogStatus string

const (
	WebhookLogStatusReceived     WebhookLogStatus = "received"
	WebhookLogStatusHandled      WebhookLogStatus = "handled"
	WebhookLogStatusHandleFailed WebhookLogStatus = "handle_failed"
)

// WebhookLog records every provider notification received, whatever its
// outcome. Failed rows are the replay source when processing breaks.
type WebhookLog struct {
	ID        string           `gorm:"column:id;type:uuid;primary_key" json:"id"`
	Type      string           `gorm:"column:type;type:varchar(64);not null" json:"type"`
	PaymentID *int64           `gorm:"column:payment_id;type:bigint;index" json:"payment_id"`
	UserID    *string          `gorm:"column:user_id;type:varchar(128)" json:"user_id"`
	TraceID   string           `gorm:"column:trace_id;type:varchar(128)" json:"trace_id"`
	Payload   datatypes.JSON   `gorm:"column:payload;type:jsonb" json:"payload"`
	Status    WebhookLogStatus `gorm:"column:status;type:varchar(32);not null" json:"status"`
	Error     string           `gorm:"column:error;type:text" json:"error"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

func (WebhookLog) TableName() string { return "webhook_log" }
