// @title           Session API
// @version         1.0
// @description     Session broker for real-time collaborative classrooms.
// @description     Mints short-lived RTC and whiteboard credentials keyed by an ephemeral session id.

// @host      localhost:8189
// @BasePath  /

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"classroom-server/services/session-api/internal/config"
	"classroom-server/services/session-api/internal/domain/platform"
	"classroom-server/services/session-api/internal/domain/session"
	"classroom-server/services/session-api/internal/infrastructure/kvstore"
	"classroom-server/services/session-api/internal/infrastructure/logger"
	"classroom-server/services/session-api/internal/infrastructure/observability"
	"classroom-server/services/session-api/internal/infrastructure/redisstore"
	"classroom-server/services/session-api/internal/infrastructure/rtc"
	"classroom-server/services/session-api/internal/infrastructure/wechat"
	"classroom-server/services/session-api/internal/infrastructure/whiteboard"
	"classroom-server/services/session-api/internal/interfaces/httpserver"
)

// Application holds the main application components.
type Application struct {
	httpServer *httpserver.HTTPServer
	sweeper    *redisstore.Sweeper
	log        zerolog.Logger
}

// NewApplication creates a new application instance.
func NewApplication(httpServer *httpserver.HTTPServer, sweeper *redisstore.Sweeper, log zerolog.Logger) *Application {
	return &Application{
		httpServer: httpServer,
		sweeper:    sweeper,
		log:        log,
	}
}

// Start runs the application.
func (a *Application) Start(ctx context.Context) error {
	// Start the expiry sweeper
	a.sweeper.Start(ctx)

	// Run HTTP server (blocks until context cancelled)
	err := a.httpServer.Run(ctx)

	// Stop the sweeper
	a.sweeper.Stop()

	return err
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Setup observability
	shutdownTelemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("failed to shutdown telemetry")
		}
	}()

	// Initialize the KV store: Redis when configured, in-memory otherwise.
	// The in-memory store is for local development only - records do not
	// survive a restart.
	kv, err := ProvideKV(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize key-value store")
	}

	// Initialize registry and credential providers
	registry := session.NewRegistry(kv, cfg.SessionStoreGrace, log)
	tokenBuilder := rtc.NewTokenBuilder(cfg)
	whiteboardClient := whiteboard.NewClient(cfg)
	wechatClient := wechat.NewClient(cfg)

	// Initialize domain services
	sessionService := session.NewService(
		registry,
		tokenBuilder,
		whiteboardClient,
		session.Identity{
			AgoraAppID:           cfg.AgoraAppID,
			NetlessAppIdentifier: cfg.NetlessAppIdentifier,
			NetlessSDKToken:      cfg.NetlessSDKToken,
		},
		cfg.SessionTTL,
		log,
	)
	platformService := platform.NewService(wechatClient, cfg.WeChatAppID, log)

	// Initialize expiry sweeper
	sweeper := redisstore.NewSweeper(kv, registry, cfg.SessionSweepInterval, log)

	// Initialize HTTP server
	httpServer := httpserver.New(cfg, log, sessionService, platformService)

	app := NewApplication(httpServer, sweeper, log)

	log.Info().
		Str("service", cfg.ServiceName).
		Int("port", cfg.HTTPPort).
		Str("environment", cfg.Environment).
		Msg("starting application")

	if err := app.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	log.Info().Msg("application exited cleanly")
}

// ProvideKV selects the KV store backend from configuration.
func ProvideKV(ctx context.Context, cfg *config.Config, log zerolog.Logger) (session.KV, error) {
	if cfg.RedisURL != "" {
		return redisstore.New(ctx, cfg.RedisURL, log)
	}
	log.Warn().Msg("REDIS_URL not set, using in-memory store")
	return kvstore.NewMemory(), nil
}

func loadEnvFiles() {
	paths := []string{".env", "../.env", "../../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
