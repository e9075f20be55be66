package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	grouprouter "github.com/rosterd/rosterd/engine/group/router"
	groupuc "github.com/rosterd/rosterd/engine/group/uc"
	"github.com/rosterd/rosterd/engine/infra/cache"
	"github.com/rosterd/rosterd/engine/infra/postgres"
	userrouter "github.com/rosterd/rosterd/engine/user/router"
	useruc "github.com/rosterd/rosterd/engine/user/uc"
	"github.com/rosterd/rosterd/pkg/config"
	"github.com/rosterd/rosterd/pkg/logger"

	groupstore "github.com/rosterd/rosterd/engine/group/infra/postgres"
	userstore "github.com/rosterd/rosterd/engine/user/infra/postgres"
)

// APIBase is the path prefix all resource routes are mounted under.
const APIBase = "/api/v0"

// Server wires the HTTP layer on top of the storage and cache drivers.
type Server struct {
	config     *config.Config
	store      *postgres.Store
	cache      *cache.RedisCache
	httpServer *http.Server
}

// NewServer assembles the server from already-initialized collaborators.
func NewServer(cfg *config.Config, store *postgres.Store, redisCache *cache.RedisCache) *Server {
	return &Server{config: cfg, store: store, cache: redisCache}
}

// buildRouter constructs the gin engine with middleware and all routes.
func (s *Server) buildRouter(log logger.Logger) *gin.Engine {
	if s.config.Runtime.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware(log))
	r.Use(LoggerMiddleware())

	registerHealth(r, s.store, s.cache)

	userFactory := useruc.NewFactory(
		userstore.NewRepository(s.store.Pool()),
		s.cache,
		s.config.Cache.TTL,
	)
	groupFactory := groupuc.NewFactory(
		groupstore.NewRepository(s.store.Pool()),
		s.cache,
		s.config.Cache.TTL,
	)

	apiBase := r.Group(APIBase)
	userrouter.RegisterRoutes(apiBase, userFactory)
	grouprouter.RegisterRoutes(apiBase, groupFactory)
	return r
}

// Run starts the HTTP server and blocks until the context is canceled or a
// termination signal arrives, then drains in-flight requests within the
// configured shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log := logger.FromContext(ctx)
	addr := net.JoinHostPort(s.config.Server.Host, fmt.Sprintf("%d", s.config.Server.Port))
	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: s.buildRouter(log),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", "addr", addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info("Shutting down HTTP server", "timeout", s.config.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Info("HTTP server stopped")
	return nil
}
