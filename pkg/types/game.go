package types

type GameTier string

const (
	GameTierFree    GameTier = "free"
	GameTierPremium GameTier = "premium"
)

// AccessReason explains a denied access check.
type AccessReason string

const (
	AccessReasonAuthenticationRequired AccessReason = "authentication_required"
	AccessReasonUserNotFound           AccessReason = "user_not_found"
	AccessReasonSubscriptionRequired   AccessReason = "subscription_required"
)

// Game is a static catalog entry; the catalog lives in code.
type Game struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Tier        GameTier `json:"tier"`
}
