package types

// Plan is a purchasable subscription plan. The plan table is declared in
// config, not in the database.
type Plan struct {
	ID           string  `json:"id" mapstructure:"id"`
	Title        string  `json:"title" mapstructure:"title"`
	Description  string  `json:"description" mapstructure:"description"`
	Price        float64 `json:"price" mapstructure:"price"`
	Currency     string  `json:"currency" mapstructure:"currency"`
	DurationDays int     `json:"duration_days" mapstructure:"duration_days"`
}
