package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/bhwcare/ncdtrack/internal/config"
	"github.com/bhwcare/ncdtrack/internal/domain/patient"
	"github.com/bhwcare/ncdtrack/internal/domain/user"
	"github.com/bhwcare/ncdtrack/internal/platform/db"
	"github.com/bhwcare/ncdtrack/internal/platform/middleware"
	"github.com/bhwcare/ncdtrack/internal/platform/session"
	"github.com/bhwcare/ncdtrack/web"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ncd-server",
		Short: "BHW NCD patient tracking server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(seedAdminCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the NCD tracking server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func seedAdminCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed-admin",
		Short: "Create the master admin account if it does not exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			client, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoConnectTimeout)
			if err != nil {
				return err
			}
			defer client.Disconnect(ctx)

			userSvc := user.NewService(user.NewRepo(client.Database(cfg.MongoDB)))
			created, err := userSvc.EnsureMasterAdmin(ctx, cfg.AdminPassword)
			if err != nil {
				return err
			}
			if created {
				fmt.Println("Master admin account created.")
			} else {
				fmt.Println("Master admin account already exists.")
			}
			return nil
		},
	}
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	// Database. A failed ping is logged but not fatal: the server still comes
	// up and requests fail individually until the cluster is reachable.
	ctx := context.Background()
	client, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoConnectTimeout)
	if err != nil {
		if client == nil {
			logger.Fatal().Err(err).Msg("invalid mongo configuration")
		}
		logger.Warn().Err(err).Msg("database connection failed")
	} else {
		logger.Info().Msg("connected to database")
	}
	defer client.Disconnect(ctx)

	database := client.Database(cfg.MongoDB)

	// Repositories and services
	patientSvc := patient.NewService(patient.NewPatientRepo(database), patient.NewVisitRepo(database))
	userSvc := user.NewService(user.NewRepo(database))

	// Seed the master admin. A store error here is logged and swallowed so a
	// cold database does not keep the server from starting.
	seedCtx, seedCancel := context.WithTimeout(ctx, cfg.MongoConnectTimeout)
	created, err := userSvc.EnsureMasterAdmin(seedCtx, cfg.AdminPassword)
	seedCancel()
	switch {
	case err != nil:
		logger.Warn().Err(err).Msg("could not seed master admin")
	case created:
		logger.Info().Msg("master admin account created")
	}

	sessions := session.NewManager(cfg.SessionSecret, cfg.SessionTTL)
	patientHandler := patient.NewHandler(patientSvc)
	userHandler := user.NewHandler(userSvc, sessions)

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = web.NewRenderer()

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.NoCache())
	e.Use(middleware.BodyLimit(cfg.BodyLimit))
	e.Use(middleware.RequestTimeout(cfg.RequestTimeout))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost},
		AllowHeaders:     []string{"Content-Type", "X-Request-ID"},
		AllowCredentials: true,
	}))

	// Health check
	e.GET("/health", db.HealthHandler(db.ClientPinger(client)))

	// Public routes. Login submissions are throttled per client IP.
	loginLimit := middleware.RateLimit(middleware.RateLimitConfig{
		RequestsPerSecond: cfg.LoginRateRPS,
		BurstSize:         cfg.LoginRateBurst,
	})
	userHandler.RegisterPublic(e, loginLimit)
	e.GET("/manifest.json", web.StaticHandler("manifest.json"))
	e.GET("/sw.js", web.StaticHandler("sw.js"))

	// App shell, session required
	home := func(c echo.Context) error {
		return c.Render(http.StatusOK, "index.html", nil)
	}
	e.GET("/", home, sessions.Middleware())
	e.GET("/mobile", home, sessions.Middleware())

	// JSON API, session required; user management additionally needs the
	// admin role.
	api := e.Group("/api", sessions.Middleware())
	patientHandler.RegisterRoutes(api)
	admin := api.Group("", session.RequireRole("admin"))
	userHandler.RegisterAPI(api, admin)

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
