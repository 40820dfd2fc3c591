package firebase

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/juegotea/backend/internal/models"
	"github.com/juegotea/backend/pkg/types"
)

const usersCollection = "users"

var ErrUserNotFound = errors.New("user not found")

// UserStore is the persistence seam for user documents. The Firestore
// implementation below is the only production one; tests supply fakes.
type UserStore interface {
	Get(ctx context.Context, uid string) (*models.User, error)
	// Ensure returns the user document, creating it on first sight of a
	// verified identity.
	Ensure(ctx context.Context, id *types.Identity) (*models.User, error)
	// SetFields merges the given top-level fields into the document.
	SetFields(ctx context.Context, uid string, fields map[string]any) error
	SaveProgress(ctx context.Context, uid, gameID string, progress map[string]any) error
}

type firestoreUserStore struct {
	client *firestore.Client
	log    *zap.SugaredLogger
}

func NewUserStore(client *firestore.Client, log *zap.SugaredLogger) UserStore {
	return &firestoreUserStore{client: client, log: log}
}

func (s *firestoreUserStore) Get(ctx context.Context, uid string) (*models.User, error) {
	if uid == "" {
		return nil, fmt.Errorf("uid is required")
	}
	snap, err := s.client.Collection(usersCollection).Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user %s: %w", uid, err)
	}
	var u models.User
	if err := snap.DataTo(&u); err != nil {
		return nil, fmt.Errorf("failed to decode user %s: %w", uid, err)
	}
	u.UID = snap.Ref.ID
	return &u, nil
}

func (s *firestoreUserStore) Ensure(ctx context.Context, id *types.Identity) (*models.User, error) {
	u, err := s.Get(ctx, id.UID)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	u = &models.User{
		UID:                id.UID,
		Email:              id.Email,
		Name:               id.Name,
		Picture:            id.Picture,
		SubscriptionStatus: types.SubscriptionStatusFree,
	}
	_, err = s.client.Collection(usersCollection).Doc(id.UID).Create(ctx, u)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			// lost the creation race; the existing doc wins
			return s.Get(ctx, id.UID)
		}
		return nil, fmt.Errorf("failed to create user %s: %w", id.UID, err)
	}
	s.log.Infow("user_created", "uid", id.UID)
	return u, nil
}

func (s *firestoreUserStore) SetFields(ctx context.Context, uid string, fields map[string]any) error {
	if len(fields) == 0 {
		return fmt.Errorf("no fields to set")
	}
	fields["updatedAt"] = firestore.ServerTimestamp
	// Set with MergeAll so concurrent writers only touch their own fields.
	_, err := s.client.Collection(usersCollection).Doc(uid).Set(ctx, fields, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to update user %s: %w", uid, err)
	}
	return nil
}

func (s *firestoreUserStore) SaveProgress(ctx context.Context, uid, gameID string, progress map[string]any) error {
	return s.SetFields(ctx, uid, map[string]any{
		"gameProgress": map[string]any{gameID: progress},
	})
}
