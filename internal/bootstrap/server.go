package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/Domenick1991/travelwise/api"
	"github.com/Domenick1991/travelwise/config"
	"github.com/Domenick1991/travelwise/internal/metrics"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const requestTimeout = 30 * time.Second

// Run starts the HTTP server and blocks until the context is canceled or the
// server fails.
func Run(ctx context.Context, cfg *config.Config, userHandler *api.UserHandler, bookingHandler *api.BookingHandler) error {
	router := newRouter(cfg, userHandler, bookingHandler)

	srv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func newRouter(cfg *config.Config, userHandler *api.UserHandler, bookingHandler *api.BookingHandler) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(api.CORS())
	router.Use(api.Logger())
	router.Use(api.Timeout(requestTimeout))

	if cfg.Metrics.Enabled {
		router.Use(metrics.New("travelwise").Middleware())
		router.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api")
	userHandler.Register(apiGroup.Group("/users"))
	bookingHandler.Register(apiGroup.Group("/bookings"))

	// The site itself is static: serve its assets and fall back to the index
	// for anything outside /api.
	if cfg.HTTP.StaticDir != "" {
		router.Static("/static", cfg.HTTP.StaticDir)
		index := filepath.Join(cfg.HTTP.StaticDir, "index.html")
		router.NoRoute(func(c *gin.Context) {
			if strings.HasPrefix(c.Request.URL.Path, "/api/") {
				c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
				return
			}
			c.File(index)
		})
	}

	return router
}
