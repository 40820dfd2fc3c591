package handlers

import (
	"fmt"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	gamesvc "github.com/juegotea/backend/internal/app/service/games"
	statssvc "github.com/juegotea/backend/internal/app/service/statistics"
	subsvc "github.com/juegotea/backend/internal/app/service/subscription"
	usersvc "github.com/juegotea/backend/internal/app/service/user"
	cfgpkg "github.com/juegotea/backend/pkg/config"
)

func TestRouteRegistration(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	log := zap.NewNop().Sugar()

	users := usersvc.NewService(nil, log)
	games := gamesvc.NewService(nil, log)
	subs := subsvc.NewService(&cfgpkg.Config{}, nil, nil, nil, log)
	stats := statssvc.NewService(nil, log)

	RegisterAuthRoutes(r.Group("/auth"), nil, users, log)
	RegisterGameRoutes(r.Group("/games"), nil, games)
	RegisterSubscriptionRoutes(r.Group("/subscription"), nil, subs)
	RegisterAdminRoutes(r.Group("/admin"), nil, stats)

	registered := map[string]bool{}
	for _, route := range r.Routes() {
		registered[fmt.Sprintf("%s %s", route.Method, route.Path)] = true
	}

	want := []string{
		"POST /auth/verify",
		"GET /auth/user",
		"PUT /auth/profile",
		"POST /auth/logout",
		"GET /games/list",
		"GET /games/:gameId/access",
		"POST /games/:gameId/progress",
		"GET /games/:gameId/progress",
		"POST /subscription/create",
		"POST /subscription/webhook",
		"GET /subscription/status",
		"POST /subscription/cancel",
		"GET /admin/stats/payments",
	}
	for _, key := range want {
		assert.True(t, registered[key], "route not registered: %s", key)
	}
}
