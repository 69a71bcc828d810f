// Package whiteboard provisions shared-whiteboard rooms and mints room
// credentials against the Netless REST API.
package whiteboard

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/prometheus/client_golang/prometheus"

	"classroom-server/services/session-api/internal/config"
	"classroom-server/services/session-api/internal/domain/session"
	"classroom-server/services/session-api/internal/infrastructure/metrics"
)

// Client implements session.RoomProvisioner over the whiteboard REST API.
type Client struct {
	httpClient *resty.Client
}

// NewClient creates a resty-backed whiteboard client. The SDK token
// authenticates every request.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		httpClient: resty.New().
			SetBaseURL(cfg.NetlessAPIURL).
			SetHeader("Content-Type", "application/json").
			SetHeader("token", cfg.NetlessSDKToken).
			SetTimeout(15 * time.Second),
	}
}

type createRoomResponse struct {
	UUID string `json:"uuid"`
}

// CreateRoom provisions a new whiteboard room and returns its opaque id.
func (c *Client) CreateRoom(ctx context.Context) (string, error) {
	timer := prometheus.NewTimer(metrics.ProviderCallDuration.WithLabelValues("whiteboard", "create_room"))
	defer timer.ObserveDuration()

	var room createRoomResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&room).
		Post("/rooms")
	if err != nil {
		return "", fmt.Errorf("create whiteboard room: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("create whiteboard room: %s: %s", resp.Status(), resp.String())
	}
	if room.UUID == "" {
		return "", fmt.Errorf("create whiteboard room: empty room id in response")
	}
	return room.UUID, nil
}

type createTokenRequest struct {
	Lifespan int64  `json:"lifespan"` // milliseconds
	Role     string `json:"role"`
}

// CreateRoomToken mints a room credential scoped to (roomID, role) valid for
// lifespan. The upstream API expresses lifespan in milliseconds.
func (c *Client) CreateRoomToken(ctx context.Context, roomID string, lifespan time.Duration, role session.Role) (string, error) {
	timer := prometheus.NewTimer(metrics.ProviderCallDuration.WithLabelValues("whiteboard", "create_room_token"))
	defer timer.ObserveDuration()

	var token string
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(createTokenRequest{
			Lifespan: lifespan.Milliseconds(),
			Role:     string(role),
		}).
		SetResult(&token).
		Post(fmt.Sprintf("/tokens/rooms/%s", roomID))
	if err != nil {
		return "", fmt.Errorf("create whiteboard room token: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("create whiteboard room token: %s: %s", resp.Status(), resp.String())
	}
	if token == "" {
		return "", fmt.Errorf("create whiteboard room token: empty token in response")
	}
	return token, nil
}

var _ session.RoomProvisioner = (*Client)(nil)
