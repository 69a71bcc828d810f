// Package sessionres contains HTTP response DTOs for session endpoints.
package sessionres

import (
	domainsession "classroom-server/services/session-api/internal/domain/session"
)

// SessionResponse represents a session DTO in API responses.
type SessionResponse struct {
	ID        string           `json:"id"`
	UID       int64            `json:"uid"`
	Username  string           `json:"username"`
	ExpiredAt int64            `json:"expiredAt"`
	Agora     AgoraDetail      `json:"agora"`
	Netless   WhiteboardDetail `json:"netless"`
}

// AgoraDetail is the RTC channel view of a session response.
type AgoraDetail struct {
	AppID   string `json:"appId"`
	Channel string `json:"channel"`
	UID     int64  `json:"uid"`
	Token   string `json:"token"`
}

// WhiteboardDetail is the whiteboard room view of a session response.
type WhiteboardDetail struct {
	UUID          string `json:"uuid"`
	Token         string `json:"token"`
	AppIdentifier string `json:"appIdentifier"`
	Role          string `json:"role"`
	SDKToken      string `json:"sdkToken"`
}

// NewSessionResponse creates a SessionResponse from a domain SessionDTO.
func NewSessionResponse(dto *domainsession.SessionDTO) *SessionResponse {
	return &SessionResponse{
		ID:        dto.ID,
		UID:       dto.UID,
		Username:  dto.Username,
		ExpiredAt: dto.ExpiredAt,
		Agora: AgoraDetail{
			AppID:   dto.Agora.AppID,
			Channel: dto.Agora.Channel,
			UID:     dto.Agora.UID,
			Token:   dto.Agora.Token,
		},
		Netless: WhiteboardDetail{
			UUID:          dto.Netless.UUID,
			Token:         dto.Netless.Token,
			AppIdentifier: dto.Netless.AppIdentifier,
			Role:          string(dto.Netless.Role),
			SDKToken:      dto.Netless.SDKToken,
		},
	}
}
