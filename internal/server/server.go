package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/codetroops/pos-lebanon/internal/auth"
	"github.com/codetroops/pos-lebanon/internal/config"
	"github.com/codetroops/pos-lebanon/internal/server/middleware"
	"github.com/codetroops/pos-lebanon/internal/storage"
)

// HandlerSet contains all HTTP handlers
type HandlerSet struct {
	Health  gin.HandlerFunc
	Metrics gin.HandlerFunc
	Whoami  gin.HandlerFunc

	// POS login handlers
	AuthenticateUserRPC gin.HandlerFunc
	AuthenticateUser    gin.HandlerFunc

	// POS configuration handlers
	ListConfigs    gin.HandlerFunc
	GetConfig      gin.HandlerFunc
	GetPosData     gin.HandlerFunc
	UpdateCurrency gin.HandlerFunc
	Convert        gin.HandlerFunc
	ShareReceipt   gin.HandlerFunc

	// Admin handlers
	Provision gin.HandlerFunc
}

// Hooks are optional callbacks used by middleware to feed metrics
type Hooks struct {
	OnRequest     func()
	OnAuthFailure func()
	OnRateLimited func()
}

// Server represents the HTTP server
type Server struct {
	config        *config.Config
	logger        logrus.FieldLogger
	store         storage.Store
	authenticator auth.Authenticator
	httpServer    *http.Server
	handlers      HandlerSet
	hooks         Hooks
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, logger logrus.FieldLogger, store storage.Store, authenticator auth.Authenticator) *Server {
	return &Server{
		config:        cfg,
		logger:        logger,
		store:         store,
		authenticator: authenticator,
	}
}

// Start starts the HTTP server and blocks until a shutdown signal or server error
func (s *Server) Start() error {
	// Create router
	router := s.Handler()

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Log server start
	s.logger.WithFields(logrus.Fields{
		"host":      s.config.Server.Host,
		"port":      s.config.Server.Port,
		"auth_type": s.config.Auth.Type,
	}).Info("Starting server")

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Setup graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	// Wait for shutdown signal or server error
	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		s.logger.WithField("signal", sig.String()).Info("Shutdown signal received")
		return s.Shutdown()
	}
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown() error {
	s.logger.Info("Initiating graceful shutdown")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.WithError(err).Error("Server shutdown failed")
			return err
		}
	}

	// Close storage
	if err := s.store.Close(); err != nil {
		s.logger.WithError(err).Error("Storage close failed")
		return err
	}

	s.logger.Info("Server stopped gracefully")
	return nil
}

// Handler builds the gin engine with middleware and routes
func (s *Server) Handler() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	// Global middleware (applied to all routes)
	router.Use(middleware.Logging(s.logger, s.hooks.OnRequest))
	router.Use(middleware.NewRateLimiter(s.config.RateLimit.RequestsPerMinute, s.hooks.OnRateLimited))

	requireAuth := middleware.RequireAuth(s.authenticator, s.hooks.OnAuthFailure)
	requireAuthAlways := middleware.RequireAuthAlways(s.authenticator, s.hooks.OnAuthFailure)

	// JSON-RPC login route used by POS terminals
	if s.handlers.AuthenticateUserRPC != nil {
		rpc := router.Group("/pos", middleware.CORS())
		rpc.OPTIONS("/authenticate_user")
		rpc.POST("/authenticate_user", requireAuth, s.handlers.AuthenticateUserRPC)
	}

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Health and metrics endpoints (no auth required)
		if s.handlers.Health != nil {
			v1.GET("/health", s.handlers.Health)
		}
		if s.handlers.Metrics != nil {
			v1.GET("/metrics", s.handlers.Metrics)
		}

		// Whoami endpoint (auth checked by the handler)
		if s.handlers.Whoami != nil {
			v1.GET("/whoami", s.handlers.Whoami)
		}

		// POS configuration endpoints; writes require auth
		configs := v1.Group("/pos/configs", requireAuth)
		if s.handlers.ListConfigs != nil {
			configs.GET("", s.handlers.ListConfigs)
		}
		if s.handlers.GetConfig != nil {
			configs.GET("/:id", s.handlers.GetConfig)
		}
		if s.handlers.GetPosData != nil {
			configs.GET("/:id/data", s.handlers.GetPosData)
		}
		if s.handlers.Convert != nil {
			configs.GET("/:id/convert", s.handlers.Convert)
		}
		if s.handlers.UpdateCurrency != nil {
			configs.PUT("/:id/currency", s.handlers.UpdateCurrency)
		}
		if s.handlers.AuthenticateUser != nil {
			configs.POST("/:id/authenticate", s.handlers.AuthenticateUser)
		}
		if s.handlers.ShareReceipt != nil {
			configs.POST("/:id/receipt/whatsapp", s.handlers.ShareReceipt)
		}

		// Admin endpoints (auth required for every method)
		if s.handlers.Provision != nil {
			v1.POST("/admin/provision", requireAuthAlways, s.handlers.Provision)
		}
	}

	return router
}

// SetHandlers sets all handlers (called from the CLI to avoid import cycle)
func (s *Server) SetHandlers(handlers HandlerSet) {
	s.handlers = handlers
}

// SetHooks sets the middleware callbacks
func (s *Server) SetHooks(hooks Hooks) {
	s.hooks = hooks
}
