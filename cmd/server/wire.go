//go:build wireinject
// +build wireinject

package main

import (
	"context"

	"github.com/google/wire"
	"github.com/rs/zerolog"

	"classroom-server/services/session-api/internal/config"
	"classroom-server/services/session-api/internal/domain/platform"
	"classroom-server/services/session-api/internal/domain/session"
	"classroom-server/services/session-api/internal/infrastructure/redisstore"
	"classroom-server/services/session-api/internal/infrastructure/rtc"
	"classroom-server/services/session-api/internal/infrastructure/wechat"
	"classroom-server/services/session-api/internal/infrastructure/whiteboard"
	"classroom-server/services/session-api/internal/interfaces/httpserver"
)

// ProviderSet is the wire provider set for the application.
var ProviderSet = wire.NewSet(
	// Infrastructure providers
	ProvideKV,
	ProvideTokenBuilder,
	ProvideRoomProvisioner,
	ProvideTicketSource,
	ProvideRegistry,
	ProvideSweeper,

	// Domain providers
	ProvideSessionService,
	ProvidePlatformService,

	// Interface providers
	httpserver.New,

	// Application
	NewApplication,
)

// ProvideTokenBuilder provides an RTC token builder.
func ProvideTokenBuilder(cfg *config.Config) session.TokenBuilder {
	return rtc.NewTokenBuilder(cfg)
}

// ProvideRoomProvisioner provides a whiteboard room provisioner.
func ProvideRoomProvisioner(cfg *config.Config) session.RoomProvisioner {
	return whiteboard.NewClient(cfg)
}

// ProvideTicketSource provides a platform ticket source.
func ProvideTicketSource(cfg *config.Config) platform.TicketSource {
	return wechat.NewClient(cfg)
}

// ProvideRegistry provides a session registry over the configured KV store.
func ProvideRegistry(kv session.KV, cfg *config.Config, log zerolog.Logger) *session.Registry {
	return session.NewRegistry(kv, cfg.SessionStoreGrace, log)
}

// ProvideSweeper provides an expiry sweeper.
func ProvideSweeper(kv session.KV, registry *session.Registry, cfg *config.Config, log zerolog.Logger) *redisstore.Sweeper {
	return redisstore.NewSweeper(kv, registry, cfg.SessionSweepInterval, log)
}

// ProvideSessionService provides a session service.
func ProvideSessionService(
	registry *session.Registry,
	tokens session.TokenBuilder,
	rooms session.RoomProvisioner,
	cfg *config.Config,
	log zerolog.Logger,
) session.Service {
	return session.NewService(
		registry,
		tokens,
		rooms,
		session.Identity{
			AgoraAppID:           cfg.AgoraAppID,
			NetlessAppIdentifier: cfg.NetlessAppIdentifier,
			NetlessSDKToken:      cfg.NetlessSDKToken,
		},
		cfg.SessionTTL,
		log,
	)
}

// ProvidePlatformService provides a platform signature service.
func ProvidePlatformService(tickets platform.TicketSource, cfg *config.Config, log zerolog.Logger) platform.Service {
	return platform.NewService(tickets, cfg.WeChatAppID, log)
}

// CreateApplication creates the application with all dependencies wired.
func CreateApplication(
	ctx context.Context,
	cfg *config.Config,
	log zerolog.Logger,
) (*Application, error) {
	wire.Build(ProviderSet)
	return nil, nil
}
