package handlers

import (
	"github.com/google/wire"

	"classroom-server/services/session-api/internal/domain/platform"
	"classroom-server/services/session-api/internal/domain/session"
)

// Provider holds all HTTP handlers.
type Provider struct {
	Session  *SessionHandler
	Platform *PlatformHandler
}

// NewProvider creates a new handler provider.
func NewProvider(sessionService session.Service, platformService platform.Service) *Provider {
	return &Provider{
		Session:  NewSessionHandler(sessionService),
		Platform: NewPlatformHandler(platformService),
	}
}

// HandlerProvider provides all handlers for wire.
var HandlerProvider = wire.NewSet(
	NewSessionHandler,
	NewPlatformHandler,
	NewProvider,
)
