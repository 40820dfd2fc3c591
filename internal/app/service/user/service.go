package user

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/juegotea/backend/internal/models"
	"github.com/juegotea/backend/internal/platform/firebase"
	"github.com/juegotea/backend/pkg/logctx"
	"github.com/juegotea/backend/pkg/types"
)

type Service struct {
	users firebase.UserStore
	log   *zap.SugaredLogger
}

func NewService(users firebase.UserStore, log *zap.SugaredLogger) *Service {
	return &Service{users: users, log: log}
}

// Ensure returns the user document for a verified identity, creating it on
// first verification.
func (s *Service) Ensure(ctx context.Context, id *types.Identity) (*models.User, error) {
	return s.users.Ensure(ctx, id)
}

func (s *Service) Get(ctx context.Context, uid string) (*models.User, error) {
	return s.users.Get(ctx, uid)
}

// ProfileUpdate carries the editable profile fields; at least one must be set.
type ProfileUpdate struct {
	Name        *string        `json:"name,omitempty"`
	Preferences map[string]any `json:"preferences,omitempty"`
}

func (u *ProfileUpdate) Empty() bool {
	return u == nil || (u.Name == nil && len(u.Preferences) == 0)
}

func (s *Service) UpdateProfile(ctx context.Context, uid string, update *ProfileUpdate) error {
	if update.Empty() {
		return fmt.Errorf("profile update requires name or preferences")
	}
	fields := map[string]any{}
	if update.Name != nil {
		fields["name"] = *update.Name
	}
	if len(update.Preferences) > 0 {
		fields["preferences"] = update.Preferences
	}
	if err := s.users.SetFields(ctx, uid, fields); err != nil {
		return err
	}
	logctx.FromCtx(ctx, s.log).Infow("profile_updated", "user_id", uid)
	return nil
}
