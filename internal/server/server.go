// Package server wires the HTTP surface to the store, the provider
// registry, and the peer service clients. When the database is managed it
// also owns the Postgres container lifecycle, starting it on server start
// and stopping it on shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/youssefhoussam/pitch-service/internal/api"
	"github.com/youssefhoussam/pitch-service/internal/config"
	"github.com/youssefhoussam/pitch-service/internal/pitch"
	"github.com/youssefhoussam/pitch-service/internal/providers"
	"github.com/youssefhoussam/pitch-service/internal/server/endpoints"
	"github.com/youssefhoussam/pitch-service/internal/store"
	"github.com/youssefhoussam/pitch-service/internal/svcctx"
	"github.com/youssefhoussam/pitch-service/internal/upstream"
)

// Server is the main pitch service HTTP server.
type Server struct {
	httpServer   *http.Server
	dbManager    *store.DockerManager
	store        store.Store
	pitchService *pitch.Service
	registry     *providers.Registry
	configMgr    *config.Manager
	logger       *slog.Logger

	// services holds all core services for context enrichment
	services *svcctx.Services

	// endpoints registry for HTTP routes
	endpointRegistry *api.Registry

	mu      sync.RWMutex
	running bool
}

// Config holds server configuration.
type Config struct {
	// Host is the address to bind to (default: 127.0.0.1)
	Host string
	// Port is the port to listen on (default: 8084)
	Port string
	// ConfigManager provides configuration with hot-reload support
	ConfigManager *config.Manager
	// Logger is the structured logger to use
	Logger *slog.Logger
	// SwaggerSpecPath is the path to swagger.json (optional)
	SwaggerSpecPath string
}

// New creates a new Server with the given configuration.
func New(cfg Config) (*Server, error) {
	if cfg.Host == "" {
		cfg.Host = "127.0.0.1"
	}
	if cfg.Port == "" {
		cfg.Port = "8084"
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.ConfigManager == nil {
		return nil, errors.New("config manager is required")
	}

	appCfg := cfg.ConfigManager.Get()

	var dbManager *store.DockerManager
	if appCfg.Database.Mode != "memory" && appCfg.Database.Managed {
		var err error
		dbManager, err = store.NewDockerManager(store.DockerConfig{
			ContainerName: appCfg.Database.ContainerName,
			Image:         appCfg.Database.Image,
			DataPath:      appCfg.Database.DataPath,
			HostPort:      appCfg.Database.Port,
			Database:      appCfg.Database.Name,
			User:          appCfg.Database.User,
			Password:      config.ResolveEnvVars(appCfg.Database.Password),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create database manager: %w", err)
		}
	}

	// Create provider registry with hot reload
	registry := providers.NewRegistry()
	registry.SetLogger(cfg.Logger)
	registry.Reload(appCfg.ToRegistryConfig())
	cfg.ConfigManager.OnChange(func(c *config.Config) {
		registry.Reload(c.ToRegistryConfig())
		cfg.Logger.Info("provider registry reloaded from config")
	})

	s := &Server{
		dbManager: dbManager,
		registry:  registry,
		configMgr: cfg.ConfigManager,
		logger:    cfg.Logger,
	}

	// Create endpoint registry and register all endpoints
	s.endpointRegistry = api.NewRegistry()
	for _, ep := range endpoints.All(endpoints.Config{
		DBManager:       dbManager,
		SwaggerSpecPath: cfg.SwaggerSpecPath,
	}) {
		s.endpointRegistry.Register(ep)
	}

	// Set up HTTP server
	mux := http.NewServeMux()
	s.endpointRegistry.RegisterRoutes(mux, s.requireInit)

	s.httpServer = &http.Server{
		Addr:         net.JoinHostPort(cfg.Host, cfg.Port),
		Handler:      s.withServices(mux),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return s, nil
}

// Start starts the server and, in managed mode, the Postgres container.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return errors.New("server already running")
	}
	s.running = true
	s.mu.Unlock()

	appCfg := s.configMgr.Get()

	if err := s.openStore(ctx, appCfg); err != nil {
		s.setNotRunning()
		return err
	}

	// Peer service clients
	timeout := time.Duration(appCfg.Services.TimeoutSeconds) * time.Second
	authClient := upstream.NewAuthClient(appCfg.Services.AuthURL, timeout)
	startupClient := upstream.NewStartupClient(appCfg.Services.StartupURL, timeout)

	s.pitchService = pitch.NewService(s.store, s.registry, authClient, startupClient, s.logger)

	// Create services struct for context enrichment
	s.services = &svcctx.Services{
		Store:         s.store,
		Registry:      s.registry,
		AuthClient:    authClient,
		StartupClient: startupClient,
		PitchService:  s.pitchService,
		ConfigManager: s.configMgr,
		Logger:        s.logger,
	}

	// Start HTTP server in goroutine
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for context cancellation or error
	select {
	case <-ctx.Done():
		s.logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			_ = s.shutdown()
			return fmt.Errorf("HTTP server error: %w", err)
		}
	}

	return s.shutdown()
}

// openStore connects the configured store backend, starting the managed
// container first when one is configured.
func (s *Server) openStore(ctx context.Context, appCfg *config.Config) error {
	if appCfg.Database.Mode == "memory" {
		s.logger.Warn("using in-memory store, data will not survive restarts")
		s.store = store.NewMemoryStore()
		return nil
	}

	if s.dbManager != nil {
		// Validate any existing container matches our config
		if err := s.dbManager.ValidateExisting(ctx); err != nil {
			return fmt.Errorf("existing postgres container incompatible: %w", err)
		}

		s.logger.Info("starting postgres")
		if err := s.dbManager.Start(ctx); err != nil {
			return fmt.Errorf("failed to start postgres: %w", err)
		}
	}

	dsn := appCfg.DatabaseDSN()
	if s.dbManager != nil {
		dsn = s.dbManager.DSN()
	}

	st, err := store.Open(ctx, store.GormConfig{
		DSN:    dsn,
		LogSQL: appCfg.Database.LogSQL,
	})
	if err != nil {
		if s.dbManager != nil {
			_ = s.dbManager.Stop(context.Background())
		}
		return fmt.Errorf("failed to open store: %w", err)
	}

	s.logger.Info("postgres store ready")
	s.store = st
	return nil
}

// shutdown performs graceful shutdown of the HTTP server, the store, and
// the managed container.
func (s *Server) shutdown() error {
	s.logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
	}

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Error("store close error", "error", err)
		}
	}

	if s.dbManager != nil {
		s.logger.Info("stopping postgres")
		if err := s.dbManager.Stop(shutdownCtx); err != nil {
			s.logger.Error("postgres stop error", "error", err)
		}
		if err := s.dbManager.Close(); err != nil {
			s.logger.Error("database manager close error", "error", err)
		}
	}

	s.setNotRunning()
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) setNotRunning() {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
}

// IsRunning returns whether the server is currently running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Store returns the pitch store. Returns nil before Start.
func (s *Server) Store() store.Store {
	return s.store
}

// Addr returns the server's listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Registry returns the provider registry.
func (s *Server) Registry() *providers.Registry {
	return s.registry
}

// withServices wraps a handler to enrich the request context with services.
func (s *Server) withServices(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if s.services != nil {
			ctx = svcctx.WithServices(ctx, s.services)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireInit is middleware that ensures the server is fully initialized.
// Returns 503 Service Unavailable until the store and pitch service are up.
func (s *Server) requireInit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.store == nil || s.pitchService == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"error":"server not fully initialized"}`))
			return
		}
		next(w, r)
	}
}
