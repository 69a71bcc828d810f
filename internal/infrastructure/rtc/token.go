// Package rtc mints time-bounded credentials for the real-time audio/video
// channel. The token is an HMAC-signed JWT over the app certificate carrying
// the channel, the numeric participant uid and the publisher capability; the
// media edge validates it against the same certificate.
package rtc

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"classroom-server/services/session-api/internal/config"
)

// RolePublisher grants full publish rights in the channel. Every credential
// this service mints is a publisher credential.
const RolePublisher = "publisher"

// TokenBuilder builds RTC channel tokens.
type TokenBuilder struct {
	appID       string
	certificate []byte
}

// NewTokenBuilder creates a token builder from the service configuration.
func NewTokenBuilder(cfg *config.Config) *TokenBuilder {
	return &TokenBuilder{
		appID:       cfg.AgoraAppID,
		certificate: []byte(cfg.AgoraCertificate),
	}
}

// Claims are the signed contents of an RTC token.
type Claims struct {
	Channel string `json:"channel"`
	UID     int64  `json:"uid"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

// BuildToken mints a token scoped to (channel, uid) that expires at expireAt.
// Deterministic given its inputs apart from the issued-at timestamp.
func (b *TokenBuilder) BuildToken(channel string, uid int64, expireAt time.Time) (string, error) {
	claims := Claims{
		Channel: channel,
		UID:     uid,
		Role:    RolePublisher,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    b.appID,
			ExpiresAt: jwt.NewNumericDate(expireAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(b.certificate)
	if err != nil {
		return "", fmt.Errorf("sign rtc token: %w", err)
	}
	return signed, nil
}

// Parse validates a token against the app certificate and returns its claims.
// Used by tests and by operators debugging issued credentials.
func (b *TokenBuilder) Parse(raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return b.certificate, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse rtc token: %w", err)
	}
	return claims, nil
}
