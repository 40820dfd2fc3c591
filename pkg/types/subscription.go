package types

import "time"

type SubscriptionStatus string

const (
	SubscriptionStatusFree      SubscriptionStatus = "free"
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusExpired   SubscriptionStatus = "expired"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
)

// PaymentStatus mirrors the status values MercadoPago reports for a payment.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusInProcess PaymentStatus = "in_process"
	PaymentStatusApproved  PaymentStatus = "approved"
	PaymentStatusRejected  PaymentStatus = "rejected"
	PaymentStatusCancelled PaymentStatus = "cancelled"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

func (s PaymentStatus) Terminal() bool {
	switch s {
	case PaymentStatusApproved, PaymentStatusRejected, PaymentStatusCancelled, PaymentStatusRefunded:
		return true
	}
	return false
}

// SubscriptionInfo is the subscription summary returned to clients.
type SubscriptionInfo struct {
	Status        SubscriptionStatus `json:"status"`
	Plan          string             `json:"plan,omitempty"`
	Expiry        *time.Time         `json:"expiry,omitempty"`
	IsActive      bool               `json:"isActive"`
	DaysRemaining int                `json:"daysRemaining"`
}
