package handlers

import (
	"context"

	"classroom-server/services/session-api/internal/domain/session"
)

// SessionHandler handles session-related HTTP requests.
type SessionHandler struct {
	service session.Service
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(service session.Service) *SessionHandler {
	return &SessionHandler{service: service}
}

// CreateSession creates a new session and returns the creator's uid.
func (h *SessionHandler) CreateSession(ctx context.Context, username string) (int64, error) {
	return h.service.CreateSession(ctx, username)
}

// GetSession assembles the session DTO for a uid.
func (h *SessionHandler) GetSession(ctx context.Context, uid int64) (*session.SessionDTO, error) {
	return h.service.GetSession(ctx, uid)
}

// JoinSession registers a new participant in an existing session.
func (h *SessionHandler) JoinSession(ctx context.Context, sessionID, username string) (int64, error) {
	return h.service.JoinSession(ctx, sessionID, username)
}
