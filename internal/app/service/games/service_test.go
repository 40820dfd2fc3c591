package games

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/juegotea/backend/internal/models"
	"github.com/juegotea/backend/internal/platform/firebase"
	"github.com/juegotea/backend/pkg/types"
)

type stubUserStore struct {
	users map[string]*models.User
}

func (s *stubUserStore) Get(ctx context.Context, uid string) (*models.User, error) {
	u, ok := s.users[uid]
	if !ok {
		return nil, firebase.ErrUserNotFound
	}
	return u, nil
}

func (s *stubUserStore) Ensure(ctx context.Context, id *types.Identity) (*models.User, error) {
	return s.Get(ctx, id.UID)
}

func (s *stubUserStore) SetFields(ctx context.Context, uid string, fields map[string]any) error {
	return nil
}

func (s *stubUserStore) SaveProgress(ctx context.Context, uid, gameID string, progress map[string]any) error {
	u, ok := s.users[uid]
	if !ok {
		return firebase.ErrUserNotFound
	}
	if u.GameProgress == nil {
		u.GameProgress = map[string]map[string]any{}
	}
	u.GameProgress[gameID] = progress
	return nil
}

func activeUser(uid string, until time.Duration) *models.User {
	expiry := time.Now().Add(until)
	return &models.User{
		UID:                uid,
		SubscriptionStatus: types.SubscriptionStatusActive,
		SubscriptionPlan:   "premium",
		SubscriptionExpiry: &expiry,
	}
}

func newGamesService(users map[string]*models.User) *Service {
	return NewService(&stubUserStore{users: users}, zap.NewNop().Sugar())
}

func TestCheckAccess(t *testing.T) {
	ctx := context.Background()
	freeGame := "lectura-basica"
	premiumGame := "memoria-visual"

	t.Run("free game needs no identity", func(t *testing.T) {
		svc := newGamesService(nil)
		d, err := svc.CheckAccess(ctx, freeGame, nil)
		require.NoError(t, err)
		assert.True(t, d.HasAccess)
		assert.Equal(t, types.GameTierFree, d.GameType)
		assert.Empty(t, d.Reason)
	})

	t.Run("premium game anonymous", func(t *testing.T) {
		svc := newGamesService(nil)
		d, err := svc.CheckAccess(ctx, premiumGame, nil)
		require.NoError(t, err)
		assert.False(t, d.HasAccess)
		assert.Equal(t, types.AccessReasonAuthenticationRequired, d.Reason)
	})

	t.Run("premium game identity without document", func(t *testing.T) {
		svc := newGamesService(nil)
		d, err := svc.CheckAccess(ctx, premiumGame, &types.Identity{UID: "ghost"})
		require.NoError(t, err)
		assert.False(t, d.HasAccess)
		assert.Equal(t, types.AccessReasonUserNotFound, d.Reason)
	})

	t.Run("premium game active subscriber", func(t *testing.T) {
		svc := newGamesService(map[string]*models.User{"uid-1": activeUser("uid-1", 5*24*time.Hour)})
		d, err := svc.CheckAccess(ctx, premiumGame, &types.Identity{UID: "uid-1"})
		require.NoError(t, err)
		assert.True(t, d.HasAccess)
		assert.Equal(t, types.GameTierPremium, d.GameType)
	})

	t.Run("premium game lapsed window", func(t *testing.T) {
		svc := newGamesService(map[string]*models.User{"uid-1": activeUser("uid-1", -time.Second)})
		d, err := svc.CheckAccess(ctx, premiumGame, &types.Identity{UID: "uid-1"})
		require.NoError(t, err)
		assert.False(t, d.HasAccess)
		assert.Equal(t, types.AccessReasonSubscriptionRequired, d.Reason)
	})

	t.Run("premium game free user", func(t *testing.T) {
		svc := newGamesService(map[string]*models.User{
			"uid-1": {UID: "uid-1", SubscriptionStatus: types.SubscriptionStatusFree},
		})
		d, err := svc.CheckAccess(ctx, premiumGame, &types.Identity{UID: "uid-1"})
		require.NoError(t, err)
		assert.False(t, d.HasAccess)
		assert.Equal(t, types.AccessReasonSubscriptionRequired, d.Reason)
	})

	t.Run("unknown game", func(t *testing.T) {
		svc := newGamesService(nil)
		_, err := svc.CheckAccess(ctx, "no-such-game", nil)
		require.ErrorIs(t, err, ErrUnknownGame)
	})
}

func TestList(t *testing.T) {
	ctx := context.Background()

	t.Run("anonymous sees only free games unlocked", func(t *testing.T) {
		svc := newGamesService(nil)
		listed, info, err := svc.List(ctx, nil)
		require.NoError(t, err)
		assert.Nil(t, info)
		require.Len(t, listed, len(Catalog()))
		for _, g := range listed {
			assert.Equal(t, g.Tier == types.GameTierFree, g.HasAccess, g.ID)
		}
	})

	t.Run("active subscriber sees everything unlocked", func(t *testing.T) {
		svc := newGamesService(map[string]*models.User{"uid-1": activeUser("uid-1", 24*time.Hour)})
		listed, info, err := svc.List(ctx, &types.Identity{UID: "uid-1"})
		require.NoError(t, err)
		require.NotNil(t, info)
		assert.True(t, info.IsActive)
		for _, g := range listed {
			assert.True(t, g.HasAccess, g.ID)
		}
	})

	t.Run("identity without document falls back to anonymous view", func(t *testing.T) {
		svc := newGamesService(nil)
		listed, info, err := svc.List(ctx, &types.Identity{UID: "ghost"})
		require.NoError(t, err)
		assert.Nil(t, info)
		for _, g := range listed {
			assert.Equal(t, g.Tier == types.GameTierFree, g.HasAccess, g.ID)
		}
	})
}

func TestSaveProgress(t *testing.T) {
	ctx := context.Background()
	store := &stubUserStore{users: map[string]*models.User{"uid-1": {UID: "uid-1"}}}
	svc := NewService(store, zap.NewNop().Sugar())

	require.NoError(t, svc.SaveProgress(ctx, "uid-1", "lectura-basica", map[string]any{"level": 3}))
	assert.Equal(t, map[string]any{"level": 3}, store.users["uid-1"].GameProgress["lectura-basica"])

	require.ErrorIs(t, svc.SaveProgress(ctx, "uid-1", "no-such-game", map[string]any{"level": 1}), ErrUnknownGame)
	require.Error(t, svc.SaveProgress(ctx, "uid-1", "lectura-basica", map[string]any{}))
}

func TestGetProgress(t *testing.T) {
	ctx := context.Background()
	svc := newGamesService(map[string]*models.User{
		"uid-1": {
			UID:          "uid-1",
			GameProgress: map[string]map[string]any{"lectura-basica": {"level": float64(2)}},
		},
	})

	p, err := svc.GetProgress(ctx, "uid-1", "lectura-basica")
	require.NoError(t, err)
	assert.Equal(t, float64(2), p["level"])

	p, err = svc.GetProgress(ctx, "uid-1", "colores-primarios")
	require.NoError(t, err)
	assert.Empty(t, p)

	_, err = svc.GetProgress(ctx, "ghost", "lectura-basica")
	require.ErrorIs(t, err, firebase.ErrUserNotFound)
}

func TestCatalogTiers(t *testing.T) {
	free := 0
	for _, g := range Catalog() {
		require.NotEmpty(t, g.ID)
		require.NotEmpty(t, g.Title)
		if g.Tier == types.GameTierFree {
			free++
		}
	}
	assert.Equal(t, 3, free)
	assert.NotNil(t, GameByID("lectura-basica"))
	assert.Nil(t, GameByID(""))
}
