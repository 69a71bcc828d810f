package routes

import (
	"github.com/gin-gonic/gin"

	"classroom-server/services/session-api/internal/interfaces/httpserver/handlers"
)

// Provider holds the route configuration.
type Provider struct {
	handlers *handlers.Provider
}

// NewProvider creates a new route provider.
func NewProvider(handlerProvider *handlers.Provider) *Provider {
	return &Provider{handlers: handlerProvider}
}

// Register registers all routes on the engine. The session routes live at
// the root, not under a version group: the paths are part of the contract
// existing clients speak.
func (p *Provider) Register(engine *gin.Engine) {
	RegisterSessionRoutes(engine, p.handlers)
}
