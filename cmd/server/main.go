package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/tbourn/nasa-image-explorer/internal/apod"
	"github.com/tbourn/nasa-image-explorer/internal/config"
	httpapi "github.com/tbourn/nasa-image-explorer/internal/http"
	"github.com/tbourn/nasa-image-explorer/internal/observability"
	"github.com/tbourn/nasa-image-explorer/internal/quiz"
	"github.com/tbourn/nasa-image-explorer/internal/repo"
	"github.com/tbourn/nasa-image-explorer/internal/sysutil"
)

// version is set at build time with -ldflags "-X main.version=...".
var version string

// @title           NASA Image Explorer API
// @version         1.0
// @description     APOD proxy, per-user favorites and astronomy quizzes.
// @BasePath        /api

func main() {
	dotenvFiles := config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		// The logger is not configured yet; the default one still prints JSON.
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	sysutil.SetupLogger(sysutil.LoggerOptions{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: cfg.OTEL.ServiceName,
	})
	ver := sysutil.FirstNonEmpty(version, os.Getenv("APP_VERSION"), "dev")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownOTel, err := observability.SetupOTel(ctx, cfg, ver)
	if err != nil {
		log.Fatal().Err(err).Msg("otel setup failed")
	}

	startCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	store, err := repo.OpenStore(startCtx, cfg.Database)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Database.Driver).Msg("store connection failed")
	}

	quizzes, err := quiz.Default()
	if err != nil {
		log.Fatal().Err(err).Msg("quiz catalog")
	}

	apodClient := apod.New(cfg.APOD)

	log.Info().
		Str("env", cfg.Env).
		Str("version", ver).
		Strs("dotenv", dotenvFiles).
		Str("db_driver", cfg.Database.Driver).
		Bool("db_configured", cfg.Database.MongoURI != "" || cfg.Database.Driver == config.DriverSQLite).
		Bool("nasa_key_configured", apodClient.Configured()).
		Bool("swagger", cfg.SwaggerEnabled).
		Msg("configuration loaded")
	if !apodClient.Configured() {
		log.Warn().Msg("NASA_API_KEY is not set; /nasa/apod will answer 500 until it is")
	}

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	httpapi.RegisterRoutes(r, httpapi.Deps{
		Store:   store,
		APOD:    apodClient,
		Quizzes: quizzes,
	}, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("base_path", cfg.APIBasePath).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("server failed")
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	if err := store.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("store close")
	}
	if err := shutdownOTel(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("otel shutdown")
	}
	log.Info().Msg("server stopped")
}
