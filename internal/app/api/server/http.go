package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/juegotea/backend/docs"
	"github.com/juegotea/backend/internal/app/api/handlers"
	mw "github.com/juegotea/backend/internal/app/api/middleware"
	"github.com/juegotea/backend/internal/app/service/games"
	"github.com/juegotea/backend/internal/app/service/statistics"
	subsvc "github.com/juegotea/backend/internal/app/service/subscription"
	usersvc "github.com/juegotea/backend/internal/app/service/user"
	cfgpkg "github.com/juegotea/backend/pkg/config"
	"github.com/juegotea/backend/pkg/metrics"
)

func newEngine(cfg *cfgpkg.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(mw.TraceMiddleware())
	r.Use(mw.CORSMiddleware(cfg))
	return r
}

func registerRoutes(
	r *gin.Engine,
	log *zap.SugaredLogger,
	cfg *cfgpkg.Config,
	verifier mw.TokenVerifier,
	users *usersvc.Service,
	gamesSvc *games.Service,
	subs *subsvc.Service,
	stats *statistics.Service,
) {
	// Prometheus metrics on a dedicated listener
	if cfg != nil && cfg.MetricsAddr != "" {
		p := metrics.NewPrometheus(metrics.NewPrometheusOptions{
			ReqCntURLLabelMappingFn: func(c *gin.Context) string {
				if fp := c.FullPath(); fp != "" {
					return fp
				}
				return c.Request.URL.Path
			},
			Logger: log,
		})
		p.SetListenAddress(cfg.MetricsAddr)
		p.Use(r)

		log.Infow("metrics started", "addr", cfg.MetricsAddr)
	}

	pub := r.Group("/")
	pub.Use(mw.RequestLoggerMiddleware(log), mw.AccessLogMiddleware())
	handlers.RegisterHealthRoutes(pub)
	// Swagger UI
	docs.SwaggerInfo.BasePath = "/"
	pub.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	handlers.RegisterAuthRoutes(pub.Group("/auth"), verifier, users, log)
	handlers.RegisterGameRoutes(pub.Group("/games"), verifier, gamesSvc)
	handlers.RegisterSubscriptionRoutes(pub.Group("/subscription"), verifier, subs)
	handlers.RegisterAdminRoutes(pub.Group("/admin"), verifier, stats)
}

func runServer(lc fx.Lifecycle, log *zap.SugaredLogger, cfg *cfgpkg.Config, r *gin.Engine) {
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 5 * time.Second}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting HTTP server", "addr", addr)
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Errorf("server error: %v", err)
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Infow("stopping HTTP server")
			shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

var Module = fx.Options(
	fx.Provide(newEngine),
	fx.Invoke(registerRoutes),
	fx.Invoke(runServer),
)
