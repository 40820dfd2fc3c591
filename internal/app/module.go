package app

import (
	"time"

	"go.uber.org/fx"

	"github.com/juegotea/backend/internal/app/api/server"
	"github.com/juegotea/backend/internal/app/service/games"
	"github.com/juegotea/backend/internal/app/service/statistics"
	"github.com/juegotea/backend/internal/app/service/subscription"
	"github.com/juegotea/backend/internal/app/service/user"
	"github.com/juegotea/backend/internal/platform/db"
	"github.com/juegotea/backend/internal/platform/firebase"
	"github.com/juegotea/backend/internal/platform/mercadopago"
	"github.com/juegotea/backend/internal/repository"
	"github.com/juegotea/backend/pkg/config"
	"github.com/juegotea/backend/pkg/logger"
)

const (
	DefaultStartTimeout = 15 * time.Second
	DefaultStopTimeout  = 10 * time.Second
)

var Module = fx.Options(
	logger.Module,
	config.Module,
	db.Module,
	firebase.Module,
	mercadopago.Module,
	repository.Module,
	server.Module,
	user.Module,
	games.Module,
	subscription.Module,
	statistics.Module,
)
