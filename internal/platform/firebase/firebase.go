package firebase

import (
	"context"
	"encoding/base64"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	cfgpkg "github.com/juegotea/backend/pkg/config"
)

// NewApp initializes the Firebase Admin SDK from config. Credentials are
// resolved in order: service-account file, base64-encoded JSON, ADC.
func NewApp(cfg *cfgpkg.Config, log *zap.SugaredLogger) (*firebase.App, error) {
	ctx := context.Background()

	var opts []option.ClientOption
	switch {
	case cfg.Firebase.CredentialsFile != "":
		log.Infow("initializing firebase with credentials file", "path", cfg.Firebase.CredentialsFile)
		opts = append(opts, option.WithCredentialsFile(cfg.Firebase.CredentialsFile))
	case cfg.Firebase.CredentialsJSONBase64 != "":
		decoded, err := base64.StdEncoding.DecodeString(cfg.Firebase.CredentialsJSONBase64)
		if err != nil {
			return nil, fmt.Errorf("failed to decode firebase credentials: %w", err)
		}
		log.Infow("initializing firebase with inline credentials")
		opts = append(opts, option.WithCredentialsJSON(decoded))
	default:
		log.Infow("initializing firebase with application default credentials")
	}

	var appCfg *firebase.Config
	if cfg.Firebase.ProjectID != "" {
		appCfg = &firebase.Config{ProjectID: cfg.Firebase.ProjectID}
	}

	app, err := firebase.NewApp(ctx, appCfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase.NewApp: %w", err)
	}
	return app, nil
}

func NewAuthClient(app *firebase.App) (*auth.Client, error) {
	client, err := app.Auth(context.Background())
	if err != nil {
		return nil, fmt.Errorf("firebase auth client: %w", err)
	}
	return client, nil
}

func NewFirestoreClient(lc fx.Lifecycle, log *zap.SugaredLogger, app *firebase.App) (*firestore.Client, error) {
	client, err := app.Firestore(context.Background())
	if err != nil {
		return nil, fmt.Errorf("firestore client: %w", err)
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			log.Infow("closing firestore client")
			return client.Close()
		},
	})
	return client, nil
}

var Module = fx.Options(
	fx.Provide(NewApp),
	fx.Provide(NewAuthClient),
	fx.Provide(NewFirestoreClient),
	fx.Provide(NewTokenVerifier),
	fx.Provide(NewUserStore),
)
