package types

// Identity is the caller identity extracted from a verified Firebase ID token.
type Identity struct {
	UID     string `json:"uid"`
	Email   string `json:"email,omitempty"`
	Name    string `json:"name,omitempty"`
	Picture string `json:"picture,omitempty"`
}
