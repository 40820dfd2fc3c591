package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/juegotea/backend/internal/models"
	"github.com/juegotea/backend/internal/platform/firebase"
	"github.com/juegotea/backend/pkg/types"
)

type recordingStore struct {
	fields map[string]any
}

func (s *recordingStore) Get(ctx context.Context, uid string) (*models.User, error) {
	return nil, firebase.ErrUserNotFound
}

func (s *recordingStore) Ensure(ctx context.Context, id *types.Identity) (*models.User, error) {
	return &models.User{UID: id.UID, Email: id.Email, SubscriptionStatus: types.SubscriptionStatusFree}, nil
}

func (s *recordingStore) SetFields(ctx context.Context, uid string, fields map[string]any) error {
	s.fields = fields
	return nil
}

func (s *recordingStore) SaveProgress(ctx context.Context, uid, gameID string, progress map[string]any) error {
	return nil
}

func TestProfileUpdateEmpty(t *testing.T) {
	name := "Ana"
	assert.True(t, (*ProfileUpdate)(nil).Empty())
	assert.True(t, (&ProfileUpdate{}).Empty())
	assert.False(t, (&ProfileUpdate{Name: &name}).Empty())
	assert.False(t, (&ProfileUpdate{Preferences: map[string]any{"sound": false}}).Empty())
}

func TestUpdateProfileWritesOnlyGivenFields(t *testing.T) {
	store := &recordingStore{}
	svc := NewService(store, zap.NewNop().Sugar())
	ctx := context.Background()

	name := "Ana"
	require.NoError(t, svc.UpdateProfile(ctx, "uid-1", &ProfileUpdate{Name: &name}))
	assert.Equal(t, map[string]any{"name": "Ana"}, store.fields)

	prefs := map[string]any{"sound": false}
	require.NoError(t, svc.UpdateProfile(ctx, "uid-1", &ProfileUpdate{Preferences: prefs}))
	assert.Equal(t, map[string]any{"preferences": prefs}, store.fields)

	require.Error(t, svc.UpdateProfile(ctx, "uid-1", &ProfileUpdate{}))
}

func TestEnsureBootstrapsUser(t *testing.T) {
	svc := NewService(&recordingStore{}, zap.NewNop().Sugar())
	u, err := svc.Ensure(context.Background(), &types.Identity{UID: "uid-1", Email: "parent@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "uid-1", u.UID)
	assert.Equal(t, types.SubscriptionStatusFree, u.SubscriptionStatus)
}
