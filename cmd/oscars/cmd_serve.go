package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/HerbHall/oscars/internal/config"
	"github.com/HerbHall/oscars/internal/films"
	"github.com/HerbHall/oscars/internal/server"
	"github.com/HerbHall/oscars/internal/version"
	"github.com/HerbHall/oscars/pkg/dataset"
)

func runServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "", "path to configuration file")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load configuration: %v\n", err)
		os.Exit(1)
	}
	settings, err := cfg.Settings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(settings.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("oscars server starting", zap.String("version", version.Short()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	source, closeSource, err := openSource(ctx, settings.Source)
	if err != nil {
		logger.Fatal("failed to open record source", zap.Error(err))
	}
	defer closeSource()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	filmsLogger := logger.Named("films")
	metrics := films.NewMetrics(reg)
	handler := films.NewHandler(films.NewService(source, filmsLogger, metrics), metrics, filmsLogger)

	addr := settings.Server.Addr()
	srv := server.New(addr, server.Options{
		ReadTimeout:  settings.Server.ReadTimeout,
		WriteTimeout: settings.Server.WriteTimeout,
		IdleTimeout:  settings.Server.IdleTimeout,
		Compress:     settings.Server.Compress,
		RateLimit:    settings.Server.RateLimit.RPS,
		RateBurst:    settings.Server.RateLimit.Burst,
	}, logger.Named("server"), reg, handler)

	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	logger.Info("oscars server ready",
		zap.String("addr", addr),
		zap.String("source", settings.Source.Driver),
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh

	logger.Info("received shutdown signal", zap.String("signal", sig.String()))

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}

	logger.Info("oscars server stopped")
}

// openSource returns the record source selected by the configured driver
// and a function that releases it.
func openSource(ctx context.Context, s config.SourceSettings) (films.Source, func(), error) {
	switch s.Driver {
	case config.DriverSQLite:
		repo, closeRepo, err := openRepository(ctx, s.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}
		return repo, closeRepo, nil
	default:
		return dataset.NewCatalog(), func() {}, nil
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log.level: %w", err)
	}
	zc := zap.NewProductionConfig()
	zc.Level = lvl
	return zc.Build()
}
