package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/snarg/ytgw/internal/api"
	"github.com/snarg/ytgw/internal/config"
	"github.com/snarg/ytgw/internal/youtube"
)

var version = "dev"

func main() {
	var (
		envFile  = flag.String("env", "", "path to .env file (default .env)")
		addr     = flag.String("addr", "", "HTTP listen address (overrides HTTP_ADDR)")
		logLevel = flag.String("log-level", "", "log level (overrides LOG_LEVEL)")
	)
	flag.Parse()

	// Config
	cfg, err := config.Load(config.Overrides{
		EnvFile:  *envFile,
		HTTPAddr: *addr,
		LogLevel: *logLevel,
	})
	if err != nil {
		early := zerolog.New(os.Stderr).With().Timestamp().Logger()
		early.Fatal().Err(err).Msg("failed to load config")
	}

	// Logger
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(os.Stdout).With().Timestamp().Logger().Level(level)
	log.Info().Str("version", version).Msg("ytgw starting")

	// Context for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// YouTube caption client
	provider := youtube.NewClient(youtube.Options{
		UserAgent: cfg.UpstreamUserAgent,
		Timeout:   cfg.UpstreamTimeout,
		Log:       log.With().Str("component", "youtube").Logger(),
	})

	// HTTP Server
	srv := api.NewServer(cfg, provider, log.With().Str("component", "http").Logger())

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	// Wait for shutdown signal or server error
	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("http server error")
		}
	}

	// Graceful shutdown with 10s timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown error")
	}

	log.Info().Msg("ytgw stopped")
}
