package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	api_utils "github.com/ethanbaker/api/pkg/utils"
	"github.com/ethanbaker/ephemeris/pkg/logging"
	"github.com/ethanbaker/ephemeris/pkg/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	ephemeris_module "github.com/ethanbaker/ephemeris/internal/api/modules/ephemeris"
	health_module "github.com/ethanbaker/ephemeris/internal/api/modules/health"
)

// NewEngine builds the gin engine with every module registered
func NewEngine(cfg *utils.Config, svc *ephemeris_module.Service) *gin.Engine {
	logger := logging.Named("API-MAIN")

	// Add app level settings/routes
	engine := gin.New()
	engine.Use(RequestID(), Logger(logger), gin.Recovery())
	engine.NoRoute(api_utils.NoRouteHandler)

	// Add trusted proxies
	engine.SetTrustedProxies(nil)

	// Add CORS using gin-contrib/cors (https://github.com/gin-contrib/cors for documentation)
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.GetWithDefault("CORS_ALLOWED_ORIGINS", "*"), ","),
		AllowMethods:     []string{"OPTIONS", "GET", "POST"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Base group '/api' for all API routes
	baseGroup := engine.Group("/api")

	// Adding custom modules
	health_module.RegisterRoutes(baseGroup)
	ephemeris_module.RegisterRoutes(baseGroup, svc)

	return engine
}

// Start serves the API until ctx is cancelled, then shuts down gracefully
func Start(ctx context.Context, cfg *utils.Config, svc *ephemeris_module.Service) error {
	logger := logging.Named("API-MAIN")

	// Initialized configuration settings
	port := cfg.GetWithDefault("API_PORT", "8080")

	server := &http.Server{
		Addr:              ":" + port,
		Handler:           NewEngine(cfg, svc),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("server stopped")
	return nil
}
