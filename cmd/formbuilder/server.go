package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ehr/formbuilder/internal/config"
	"github.com/ehr/formbuilder/internal/domain/formbuilder"
	"github.com/ehr/formbuilder/internal/platform/fhirxml"
	"github.com/ehr/formbuilder/internal/platform/gdt"
	"github.com/ehr/formbuilder/internal/platform/jsoncodec"
	"github.com/ehr/formbuilder/internal/platform/middleware"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the form export API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func newLogger(cfg *config.Config, out io.Writer) zerolog.Logger {
	logger := zerolog.New(out).With().Timestamp().Logger()
	if cfg.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: out}).With().Timestamp().Logger()
	}
	if level, err := cfg.ZerologLevel(); err == nil {
		logger = logger.Level(level)
	}
	return logger
}

// newService builds the export service from configuration.
func newService(cfg *config.Config, logger zerolog.Logger) *formbuilder.Service {
	xml := fhirxml.New(fhirxml.WithMetadataExtensionURL(cfg.MetadataExtensionURL))
	return formbuilder.NewService(logger, xml, formbuilder.WithAnswerCodeSystem(cfg.AnswerCodeSystem))
}

// newServer wires middleware and routes. cfg must have been validated.
func newServer(cfg *config.Config, logger zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = jsoncodec.Serializer{}

	limit, _ := cfg.BodyLimitBytes()

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
	}))
	e.Use(middleware.BodyLimit(limit))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	apiV1 := e.Group("/api/v1")
	formbuilder.NewHandler(newService(cfg, logger)).RegisterRoutes(apiV1)
	gdt.NewHandler().RegisterRoutes(apiV1)

	return e
}

func runServer() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := newLogger(cfg, os.Stdout)
	if err := cfg.Validate(); err != nil {
		logger.Error().Err(err).Msg("invalid configuration")
		return err
	}

	e := newServer(cfg, logger)

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Int("gdt_codes", len(gdt.AllCodes())).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	logger.Info().Msg("server stopped")
	return nil
}
