package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/zhouzirui/quote-chat/internal/config"
	"github.com/zhouzirui/quote-chat/internal/handler"
	"github.com/zhouzirui/quote-chat/internal/logging"
	"github.com/zhouzirui/quote-chat/internal/service/gateway"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialise logger")
	}
	if envErr != nil {
		logger.Warn().Err(envErr).Msg("continuing with system environment variables only")
	}

	gw := gateway.New(cfg.Backend.BaseURL,
		gateway.WithTimeout(cfg.Backend.Timeout),
		gateway.WithLogger(logger.With().Str("component", "gateway").Logger()),
	)
	logger.Info().
		Str("backend", gw.Endpoint()).
		Dur("timeout", cfg.Backend.Timeout).
		Strs("cors_origins", cfg.Server.CORSOrigins).
		Msg("chat gateway configured")

	router := handler.NewRouter(handler.RouterDependencies{
		Gateway:        gw,
		AllowedOrigins: cfg.Server.CORSOrigins,
		Logger:         logger,
	})

	startServer(ctx, logger, cfg.Server, router)
}

func startServer(ctx context.Context, logger zerolog.Logger, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	logger.Info().Str("addr", addr).Msg("quote chat gateway listening")
	if err := runServer(ctx, srv); err != nil {
		logger.Fatal().Err(err).Msg("server error")
	}
	logger.Info().Msg("server stopped")
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
