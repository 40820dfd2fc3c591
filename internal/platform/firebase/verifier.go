package firebase

import (
	"context"
	"fmt"
	"strings"

	"firebase.google.com/go/v4/auth"

	mw "github.com/juegotea/backend/internal/app/api/middleware"
	"github.com/juegotea/backend/pkg/types"
)

type tokenVerifier struct {
	client *auth.Client
}

// NewTokenVerifier adapts the Firebase auth client to the middleware's
// verifier interface, mapping SDK errors onto the middleware sentinels.
func NewTokenVerifier(client *auth.Client) mw.TokenVerifier {
	return &tokenVerifier{client: client}
}

func (v *tokenVerifier) Verify(ctx context.Context, idToken string) (*types.Identity, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		switch {
		case auth.IsIDTokenExpired(err):
			return nil, fmt.Errorf("verify id token: %w", mw.ErrTokenExpired)
		case strings.Contains(err.Error(), "incorrect number of segments"),
			strings.Contains(err.Error(), "malformed"):
			return nil, fmt.Errorf("verify id token: %w", mw.ErrTokenMalformed)
		default:
			return nil, fmt.Errorf("verify id token: %w", err)
		}
	}

	id := &types.Identity{UID: token.UID}
	if email, ok := token.Claims["email"].(string); ok {
		id.Email = email
	}
	if name, ok := token.Claims["name"].(string); ok {
		id.Name = name
	}
	if picture, ok := token.Claims["picture"].(string); ok {
		id.Picture = picture
	}
	return id, nil
}
