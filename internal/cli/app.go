// Package cli wires configuration, logging and the layout use cases for the
// command line.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/bnema/tessellate/internal/application/port"
	"github.com/bnema/tessellate/internal/application/usecase"
	"github.com/bnema/tessellate/internal/cli/styles"
	"github.com/bnema/tessellate/internal/domain/build"
	"github.com/bnema/tessellate/internal/domain/entity"
	"github.com/bnema/tessellate/internal/infrastructure/cache"
	"github.com/bnema/tessellate/internal/infrastructure/config"
	"github.com/bnema/tessellate/internal/logging"
)

// App holds CLI dependencies.
type App struct {
	Config    *config.Config
	Manager   *config.Manager
	Theme     *styles.Theme
	BuildInfo build.Info

	// Context with logger
	ctx       context.Context
	logCloser io.Closer
}

// NewApp loads the configuration at configFile, or the XDG default when
// empty, and builds the logger it describes.
func NewApp(configFile string) (*App, error) {
	var (
		mgr *config.Manager
		err error
	)
	if configFile != "" {
		mgr, err = config.NewManagerAt(configFile)
	} else {
		mgr, err = config.NewManager()
	}
	if err != nil {
		return nil, err
	}
	if err := mgr.Load(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg := mgr.Get()

	logCfg, closer, err := cfg.LoggerConfig()
	if err != nil {
		return nil, err
	}
	logger := logging.New(logCfg)
	ctx := logging.WithContext(context.Background(), logger)
	logger.Debug().Str("config", mgr.GetConfigFile()).Msg("config loaded")

	return &App{
		Config:    cfg,
		Manager:   mgr,
		Theme:     styles.NewTheme(),
		ctx:       ctx,
		logCloser: closer,
	}, nil
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

// Close releases the log file, if any.
func (a *App) Close() error {
	if a.logCloser != nil {
		return a.logCloser.Close()
	}
	return nil
}

// NewProducer builds a producer over the configured strategy cycle.
func (a *App) NewProducer(notifier port.ForceNotifier) (*usecase.ProduceLayoutUseCase, error) {
	cycle, err := a.Config.BuildCycle()
	if err != nil {
		return nil, fmt.Errorf("build strategies: %w", err)
	}
	producer := usecase.NewProduceLayoutUseCase(cycle, a.Config.ResponseMode(), notifier)
	if size := a.Config.Layout.GeometryCacheSize; size > 0 {
		producer.SetGeometryCache(cache.NewLRU[usecase.GeometryKey, []entity.Rect](size))
	}
	return producer, nil
}

// NewConsumer builds a consumer with the configured timeout, malformed
// limit and fallback.
func (a *App) NewConsumer(requester port.LayoutRequester, applier port.GeometryApplier) (*usecase.ConsumeLayoutUseCase, error) {
	settings, err := a.Config.ConsumerSettings()
	if err != nil {
		return nil, err
	}
	return usecase.NewConsumeLayoutUseCase(requester, applier, settings), nil
}

// ReloadProducer applies cfg to a running producer.
func ReloadProducer(ctx context.Context, producer *usecase.ProduceLayoutUseCase, cfg *config.Config) error {
	strategies, err := cfg.BuildStrategies()
	if err != nil {
		return fmt.Errorf("build strategies: %w", err)
	}
	return producer.Reload(ctx, strategies, cfg.ResponseMode())
}
