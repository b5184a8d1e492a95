package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/vsinha/production/pkg/application/services/production"
	"github.com/vsinha/production/pkg/domain/services"
	"github.com/vsinha/production/pkg/infrastructure/config"
	"github.com/vsinha/production/pkg/infrastructure/events"
	"github.com/vsinha/production/pkg/infrastructure/logging"
	"github.com/vsinha/production/pkg/interfaces/api"
)

// ServeConfig holds configuration for the serve command
type ServeConfig struct {
	// ConfigDirs are searched for .env and config.yaml; empty uses ./configs and .
	ConfigDirs []string
	// ScenarioDir seeds the in-memory store when no database is configured
	ScenarioDir string
}

// ServeCommand runs the production HTTP API until its context is cancelled
type ServeCommand struct {
	config ServeConfig
}

// NewServeCommand creates a new serve command with the given configuration
func NewServeCommand(config ServeConfig) *ServeCommand {
	return &ServeCommand{config: config}
}

// Execute runs the serve command
func (c *ServeCommand) Execute(ctx context.Context) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	logger := logging.New(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: os.Stdout})
	logger.WithField("port", cfg.Server.Port).Info("starting production service")

	store, err := openBackend(ctx, cfg, c.config.ScenarioDir, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.WithError(err).Warn("failed to close storage")
		}
	}()

	if err := validateCatalog(ctx, store.boms, store.config, logger); err != nil {
		return err
	}

	locker, closeLocker, err := newLocker(ctx, cfg.Redis, logger)
	if err != nil {
		return err
	}
	defer closeLocker()

	eventStore := events.NewInMemoryEventStore(logger)
	if err := eventStore.Subscribe(events.ProductionEventTypes, events.NewLogHandler(logger)); err != nil {
		return fmt.Errorf("failed to subscribe event logger: %w", err)
	}

	engine := production.NewEngineWithConfig(
		services.NewStockMoveDeriver(),
		logger,
		production.EngineConfig{PriceDigits: cfg.Engine.PriceDigits},
	)
	svc := production.NewProductionService(store.productions, store.config, engine, locker, eventStore, logger)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(api.NewProductionHandler(svc), logger, cfg.Server.CORSAllowedOrigins)

	return serve(ctx, &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}, cfg.Server, logger)
}

func (c *ServeCommand) loadConfig() (*config.Config, error) {
	if len(c.config.ConfigDirs) == 0 {
		return config.Load()
	}
	return config.LoadFrom(c.config.ConfigDirs...)
}

// serve runs srv until ctx is done, then shuts it down gracefully
func serve(ctx context.Context, srv *http.Server, cfg config.ServerConfig, logger logrus.FieldLogger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.WithField("addr", srv.Addr).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	logger.Info("server exited")
	return nil
}
