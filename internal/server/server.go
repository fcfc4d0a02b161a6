// Package server exposes a site as a read-only JSON API for previews.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/gin-gonic/gin"

	"github.com/aretw0/folio/internal/logfields"
)

// NewServer creates the gin engine with all routes configured.
// metricsHandler may be nil, in which case /metrics is not registered.
func NewServer(handler *Handler, metricsHandler http.Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(requestLogger(handler.logger))
	r.Use(gin.Recovery())

	// Preview clients run on other origins during development.
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, If-None-Match")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	setupRoutes(r, handler, metricsHandler)
	return r
}

func setupRoutes(r *gin.Engine, h *Handler, metricsHandler http.Handler) {
	api := r.Group("/api")
	{
		blog := api.Group("/blog")
		blog.GET("", h.ListPosts)
		blog.GET("/categories", h.BlogCategories)
		blog.GET("/items/*slug", h.GetPost)
		blog.GET("/related/*slug", h.RelatedPosts)

		portfolio := api.Group("/portfolio")
		portfolio.GET("", h.ListProjects)
		portfolio.GET("/categories", h.PortfolioCategories)
		portfolio.GET("/items/*slug", h.GetProject)
		portfolio.GET("/related/:id", h.RelatedProjects)
	}

	r.GET("/healthz", h.Health)
	if metricsHandler != nil {
		r.GET("/metrics", gin.WrapH(metricsHandler))
	}
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("request",
			logfields.Method(c.Request.Method),
			logfields.Path(c.Request.URL.Path),
			logfields.Status(c.Writer.Status()),
			logfields.Duration(time.Since(start)),
		)
	}
}

// Run serves h on addr until ctx is done, then shuts down gracefully.
func Run(ctx context.Context, addr string, h http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	lifecycle.Go(ctx, func(context.Context) error {
		logger.Info("listening", logfields.Addr(addr))
		err := srv.ListenAndServe()
		errCh <- err
		return err
	}, lifecycle.WithErrorHandler(func(err error) {
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", logfields.Error(err))
		}
	}))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen on %s: %w", addr, err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}
