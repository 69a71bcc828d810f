package handlers

import (
	"context"

	"classroom-server/services/session-api/internal/domain/platform"
)

// PlatformHandler handles JS-SDK signature requests.
type PlatformHandler struct {
	service platform.Service
}

// NewPlatformHandler creates a new platform handler.
func NewPlatformHandler(service platform.Service) *PlatformHandler {
	return &PlatformHandler{service: service}
}

// GetConfig signs the given page URL for the platform JS-SDK.
func (h *PlatformHandler) GetConfig(ctx context.Context, url string) (*platform.JSConfig, error) {
	return h.service.GetConfig(ctx, url)
}
