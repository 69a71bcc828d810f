// Package platform produces the signed payload that lets a web client use
// the social platform's in-app JS capabilities.
package platform

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"classroom-server/services/session-api/internal/infrastructure/metrics"
	"classroom-server/services/session-api/internal/utils/idgen"
	"classroom-server/services/session-api/internal/utils/platformerrors"
)

// TicketSource fetches the platform access token and exchanges it for a
// jsapi ticket. Both are external HTTP calls.
type TicketSource interface {
	FetchAccessToken(ctx context.Context) (string, error)
	FetchTicket(ctx context.Context, accessToken string) (string, error)
}

// JSConfig is the signed payload returned to web clients.
type JSConfig struct {
	AppID     string `json:"appId"`
	Timestamp int64  `json:"timestamp"`
	NonceStr  string `json:"nonceStr"`
	Signature string `json:"signature"`
}

// Service signs page URLs for the platform JS-SDK.
type Service interface {
	GetConfig(ctx context.Context, url string) (*JSConfig, error)
}

type service struct {
	tickets TicketSource
	appID   string
	now     func() time.Time
	log     zerolog.Logger
}

// NewService creates a platform signature service.
func NewService(tickets TicketSource, appID string, log zerolog.Logger) Service {
	return &service{
		tickets: tickets,
		appID:   appID,
		now:     time.Now,
		log:     log.With().Str("component", "platform-service").Logger(),
	}
}

// GetConfig fetches a jsapi ticket and signs the given URL with a fresh
// nonce and timestamp. No store interaction.
func (s *service) GetConfig(ctx context.Context, url string) (*JSConfig, error) {
	accessToken, err := s.tickets.FetchAccessToken(ctx)
	if err != nil {
		metrics.RecordProviderError("wechat")
		return nil, platformerrors.NewError(platformerrors.LayerDomain, platformerrors.ErrorTypeExternal, "fetch platform access token", err)
	}

	ticket, err := s.tickets.FetchTicket(ctx, accessToken)
	if err != nil {
		metrics.RecordProviderError("wechat")
		return nil, platformerrors.NewError(platformerrors.LayerDomain, platformerrors.ErrorTypeExternal, "fetch jsapi ticket", err)
	}

	nonce, err := idgen.GenerateNonce(15)
	if err != nil {
		return nil, platformerrors.NewError(platformerrors.LayerDomain, platformerrors.ErrorTypeInternal, "generate nonce", err)
	}

	timestamp := s.now().Unix()
	return &JSConfig{
		AppID:     s.appID,
		Timestamp: timestamp,
		NonceStr:  nonce,
		Signature: Sign(ticket, nonce, timestamp, url),
	}, nil
}

// Sign computes the hex SHA-1 signature over the canonical string
//
//	jsapi_ticket=<ticket>&noncestr=<nonce>&timestamp=<timestamp>&url=<url>
//
// Fields appear in exactly this order, joined with '&', with no URL-encoding.
// The platform verifies the same concatenation byte for byte.
func Sign(ticket, nonce string, timestamp int64, url string) string {
	original := fmt.Sprintf("jsapi_ticket=%s&noncestr=%s&timestamp=%d&url=%s", ticket, nonce, timestamp, url)
	sum := sha1.Sum([]byte(original))
	return hex.EncodeToString(sum[:])
}
