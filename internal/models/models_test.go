package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/juegotea/backend/pkg/types"
)

func TestUserHasActiveSubscription(t *testing.T) {
	now := time.Now()
	future := now.Add(24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	tests := []struct {
		name string
		user *User
		want bool
	}{
		{"nil user", nil, false},
		{"free user", &User{SubscriptionStatus: types.SubscriptionStatusFree}, false},
		{"active with future expiry", &User{SubscriptionStatus: types.SubscriptionStatusActive, SubscriptionExpiry: &future}, true},
		{"active with past expiry", &User{SubscriptionStatus: types.SubscriptionStatusActive, SubscriptionExpiry: &past}, false},
		{"active without expiry", &User{SubscriptionStatus: types.SubscriptionStatusActive}, false},
		{"cancelled with future expiry", &User{SubscriptionStatus: types.SubscriptionStatusCancelled, SubscriptionExpiry: &future}, false},
		{"expired", &User{SubscriptionStatus: types.SubscriptionStatusExpired, SubscriptionExpiry: &future}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.user.HasActiveSubscription(now))
		})
	}
}

func TestPendingPaymentResolved(t *testing.T) {
	assert.False(t, (*PendingPayment)(nil).Resolved())
	assert.False(t, (&PendingPayment{Status: types.PaymentStatusPending}).Resolved())
	assert.False(t, (&PendingPayment{Status: types.PaymentStatusInProcess}).Resolved())
	assert.True(t, (&PendingPayment{Status: types.PaymentStatusApproved}).Resolved())
	assert.True(t, (&PendingPayment{Status: types.PaymentStatusRejected}).Resolved())
	assert.True(t, (&PendingPayment{Status: types.PaymentStatusRefunded}).Resolved())
}

func TestPaymentStatusTerminal(t *testing.T) {
	assert.False(t, types.PaymentStatusPending.Terminal())
	assert.False(t, types.PaymentStatusInProcess.Terminal())
	assert.True(t, types.PaymentStatusApproved.Terminal())
	assert.True(t, types.PaymentStatusCancelled.Terminal())
}
