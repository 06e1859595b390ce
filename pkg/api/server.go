// Package api serves the scoring engines as a JSON endpoint for the admin dashboard.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jakechorley/parks-scoring/pkg/core/compatibility"
	"github.com/jakechorley/parks-scoring/pkg/core/viability"
	"github.com/jakechorley/parks-scoring/pkg/db"
)

const shutdownTimeout = 10 * time.Second

// Dependencies are the collaborators the handlers need
type Dependencies struct {
	Activities db.ActivityStore
	Volunteers db.VolunteerStore
	Estimator  *viability.Estimator
	Checker    *compatibility.Checker
	Logger     *zap.Logger

	// Location resolves explicit dates and "today" (UTC when nil)
	Location *time.Location
	// Now defaults to time.Now
	Now func() time.Time
}

// Server holds the gin engine and the handler dependencies
type Server struct {
	deps   Dependencies
	engine *gin.Engine
}

// NewServer builds the router. allowedOrigins enables CORS for the dashboard; empty allows all.
func NewServer(deps Dependencies, allowedOrigins []string) *Server {
	if deps.Location == nil {
		deps.Location = time.UTC
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(RequestID())
	engine.Use(AccessLog(deps.Logger))
	engine.Use(cors.New(corsConfig(allowedOrigins)))

	s := &Server{deps: deps, engine: engine}
	s.setupRoutes()
	return s
}

func corsConfig(allowedOrigins []string) cors.Config {
	cfg := cors.DefaultConfig()
	if len(allowedOrigins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = allowedOrigins
	}
	cfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", RequestIDHeader}
	cfg.ExposeHeaders = []string{RequestIDHeader}
	return cfg
}

func (s *Server) setupRoutes() {
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := s.engine.Group("/v1")
	{
		v1.POST("/viability", s.handleEstimate)
		v1.POST("/compatibility", s.handleCheck)
		v1.POST("/participation/check", s.handleCheckParticipation)

		v1.GET("/activities/pending/reviews", s.handlePendingReviews)
		v1.GET("/activities/:id/viability", s.handleActivityViability)
		v1.GET("/activities/:id/volunteers", s.handleFindVolunteers)
	}
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.deps.Logger.Info("Serving scoring API", zap.String("addr", addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("failed to serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.deps.Logger.Info("Shutting down scoring API")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}
