package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/vk/genlogcfg/internal/ctxlog"
	"github.com/vk/genlogcfg/internal/settings"
)

// App encapsulates the application's dependencies, configuration, and
// streams.
type App struct {
	outW   io.Writer // generated logcfg when writing to stdout
	errW   io.Writer // logs and diagnostics
	inR    io.Reader // profile when reading from stdin
	logger *slog.Logger
	config *Config
	loader *settings.Loader
}

// NewApp is the constructor for the main application. A nil loader reads
// settings with the process environment.
func NewApp(outW, errW io.Writer, inR io.Reader, cfg *Config, loader *settings.Loader) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, errW)
	logger.Debug("Logger configured successfully.")

	if loader == nil {
		loader = settings.NewLoader()
	}

	return &App{
		outW:   outW,
		errW:   errW,
		inR:    inR,
		logger: logger,
		config: cfg,
		loader: loader,
	}
}

// context returns ctx carrying the app logger.
func (a *App) context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}
