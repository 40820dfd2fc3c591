package games

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/juegotea/backend/internal/models"
	"github.com/juegotea/backend/internal/platform/firebase"
	"github.com/juegotea/backend/pkg/logctx"
	"github.com/juegotea/backend/pkg/types"
)

var ErrUnknownGame = errors.New("unknown game")

type Service struct {
	users firebase.UserStore
	log   *zap.SugaredLogger
}

func NewService(users firebase.UserStore, log *zap.SugaredLogger) *Service {
	return &Service{users: users, log: log}
}

// AccessDecision is the outcome of an access check.
type AccessDecision struct {
	HasAccess bool               `json:"hasAccess"`
	GameType  types.GameTier     `json:"gameType"`
	Reason    types.AccessReason `json:"reason,omitempty"`
}

// ListedGame is a catalog entry enriched with the caller's access flag.
type ListedGame struct {
	*types.Game
	HasAccess bool `json:"hasAccess"`
}

// CheckAccess decides admission for one game. It is a pure read: an expired
// subscription denies access here but is only persisted as expired on the
// status endpoint.
func (s *Service) CheckAccess(ctx context.Context, gameID string, id *types.Identity) (*AccessDecision, error) {
	game := GameByID(gameID)
	if game == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownGame, gameID)
	}
	if game.Tier == types.GameTierFree {
		return &AccessDecision{HasAccess: true, GameType: game.Tier}, nil
	}
	if id == nil {
		return &AccessDecision{GameType: game.Tier, Reason: types.AccessReasonAuthenticationRequired}, nil
	}

	user, err := s.users.Get(ctx, id.UID)
	if err != nil {
		if errors.Is(err, firebase.ErrUserNotFound) {
			return &AccessDecision{GameType: game.Tier, Reason: types.AccessReasonUserNotFound}, nil
		}
		return nil, err
	}
	if user.HasActiveSubscription(time.Now()) {
		return &AccessDecision{HasAccess: true, GameType: game.Tier}, nil
	}
	return &AccessDecision{GameType: game.Tier, Reason: types.AccessReasonSubscriptionRequired}, nil
}

// List enriches the catalog with per-entry access for the caller and returns
// the caller's subscription summary alongside (nil for anonymous callers).
func (s *Service) List(ctx context.Context, id *types.Identity) ([]*ListedGame, *types.SubscriptionInfo, error) {
	var user *models.User
	if id != nil {
		u, err := s.users.Get(ctx, id.UID)
		if err != nil && !errors.Is(err, firebase.ErrUserNotFound) {
			return nil, nil, err
		}
		user = u
	}

	now := time.Now()
	premiumOK := user.HasActiveSubscription(now)
	listed := lo.Map(Catalog(), func(g *types.Game, _ int) *ListedGame {
		return &ListedGame{Game: g, HasAccess: g.Tier == types.GameTierFree || premiumOK}
	})

	var info *types.SubscriptionInfo
	if user != nil {
		info = &types.SubscriptionInfo{
			Status:   user.SubscriptionStatus,
			Plan:     user.SubscriptionPlan,
			Expiry:   user.SubscriptionExpiry,
			IsActive: premiumOK,
		}
	}
	return listed, info, nil
}

// SaveProgress writes the game-scoped progress map into the user document.
// The payload is free-form but must be a non-empty object.
func (s *Service) SaveProgress(ctx context.Context, uid, gameID string, progress map[string]any) error {
	if GameByID(gameID) == nil {
		return fmt.Errorf("%w: %s", ErrUnknownGame, gameID)
	}
	if len(progress) == 0 {
		return fmt.Errorf("progress payload is empty")
	}
	if err := s.users.SaveProgress(ctx, uid, gameID, progress); err != nil {
		return err
	}
	logctx.FromCtx(ctx, s.log).Infow("progress_saved", "user_id", uid, "game_id", gameID)
	return nil
}

func (s *Service) GetProgress(ctx context.Context, uid, gameID string) (map[string]any, error) {
	if GameByID(gameID) == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownGame, gameID)
	}
	user, err := s.users.Get(ctx, uid)
	if err != nil {
		return nil, err
	}
	if progress, ok := user.GameProgress[gameID]; ok {
		return progress, nil
	}
	return map[string]any{}, nil
}
