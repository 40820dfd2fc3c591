package models

import (
	"time"

	"github.com/juegotea/backend/pkg/types"
)

// User is the Firestore document under users/{uid}. The document id is the
// Firebase Auth uid, so UID itself is not stored as a field.
type User struct {
	UID     string `firestore:"-" json:"uid"`
	Email   string `firestore:"email" json:"email"`
	Name    string `firestore:"name" json:"name"`
	Picture string `firestore:"picture,omitempty" json:"picture,omitempty"`

	SubscriptionStatus types.SubscriptionStatus `firestore:"subscriptionStatus" json:"subscription_status"`
	SubscriptionPlan   string                   `firestore:"subscriptionPlan,omitempty" json:"subscription_plan,omitempty"`
	// SubscriptionExpiry is meaningful only while SubscriptionStatus is active.
	SubscriptionExpiry      *time.Time `firestore:"subscriptionExpiry,omitempty" json:"subscription_expiry,omitempty"`
	SubscriptionActivatedAt *time.Time `firestore:"subscriptionActivatedAt,omitempty" json:"subscription_activated_at,omitempty"`
	SubscriptionCancelledAt *time.Time `firestore:"subscriptionCancelledAt,omitempty" json:"subscription_cancelled_at,omitempty"`

	Preferences  map[string]any            `firestore:"preferences,omitempty" json:"preferences,omitempty"`
	GameProgress map[string]map[string]any `firestore:"gameProgress,omitempty" json:"game_progress,omitempty"`

	CreatedAt time.Time `firestore:"createdAt,serverTimestamp" json:"created_at"`
	UpdatedAt time.Time `firestore:"updatedAt,serverTimestamp" json:"updated_at"`
}

// HasActiveSubscription reports whether the subscription window is open at now.
func (u *User) HasActiveSubscription(now time.Time) bool {
	return u != nil &&
		u.SubscriptionStatus == types.SubscriptionStatusActive &&
		u.SubscriptionExpiry != nil &&
		u.SubscriptionExpiry.After(now)
}
