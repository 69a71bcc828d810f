package platform_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"classroom-server/services/session-api/internal/domain/platform"
	"classroom-server/services/session-api/internal/utils/platformerrors"
)

type mockTicketSource struct {
	FetchAccessTokenFunc func(ctx context.Context) (string, error)
	FetchTicketFunc      func(ctx context.Context, accessToken string) (string, error)
}

func (m *mockTicketSource) FetchAccessToken(ctx context.Context) (string, error) {
	if m.FetchAccessTokenFunc != nil {
		return m.FetchAccessTokenFunc(ctx)
	}
	return "access-token", nil
}

func (m *mockTicketSource) FetchTicket(ctx context.Context, accessToken string) (string, error) {
	if m.FetchTicketFunc != nil {
		return m.FetchTicketFunc(ctx, accessToken)
	}
	return "jsapi-ticket", nil
}

func TestSign(t *testing.T) {
	const want = "3a3b0f91e00214c6ef7a70b1fea0a6c6c63a7b65"
	got := platform.Sign("abc", "def", 1000, "http://x")
	if got != want {
		t.Errorf("Sign() = %q, want %q", got, want)
	}
	if len(got) != 40 {
		t.Errorf("Sign() length = %d, want 40 hex chars", len(got))
	}
}

func TestSign_InputSensitivity(t *testing.T) {
	base := platform.Sign("abc", "def", 1000, "http://x")
	variants := map[string]string{
		"ticket":    platform.Sign("abd", "def", 1000, "http://x"),
		"nonce":     platform.Sign("abc", "deg", 1000, "http://x"),
		"timestamp": platform.Sign("abc", "def", 1001, "http://x"),
		"url":       platform.Sign("abc", "def", 1000, "http://x/"),
	}
	for field, sig := range variants {
		if sig == base {
			t.Errorf("Sign() unchanged when %s differs", field)
		}
	}
}

func TestService_GetConfig(t *testing.T) {
	ctx := context.Background()

	var ticketTokenSeen string
	tickets := &mockTicketSource{
		FetchTicketFunc: func(ctx context.Context, accessToken string) (string, error) {
			ticketTokenSeen = accessToken
			return "jsapi-ticket", nil
		},
	}
	svc := platform.NewService(tickets, "wx-app-id", zerolog.Nop())

	before := time.Now().Unix()
	cfg, err := svc.GetConfig(ctx, "https://example.com/room?id=7")
	if err != nil {
		t.Fatalf("GetConfig() error = %v", err)
	}

	if ticketTokenSeen != "access-token" {
		t.Errorf("FetchTicket received token %q, want %q", ticketTokenSeen, "access-token")
	}
	if cfg.AppID != "wx-app-id" {
		t.Errorf("GetConfig() AppID = %q, want %q", cfg.AppID, "wx-app-id")
	}
	if len(cfg.NonceStr) != 15 {
		t.Errorf("GetConfig() NonceStr length = %d, want 15", len(cfg.NonceStr))
	}
	if cfg.Timestamp < before || cfg.Timestamp > before+5 {
		t.Errorf("GetConfig() Timestamp = %d, want about %d", cfg.Timestamp, before)
	}

	want := platform.Sign("jsapi-ticket", cfg.NonceStr, cfg.Timestamp, "https://example.com/room?id=7")
	if cfg.Signature != want {
		t.Errorf("GetConfig() Signature = %q, want %q", cfg.Signature, want)
	}
}

func TestService_GetConfig_AccessTokenFailure(t *testing.T) {
	ctx := context.Background()
	tickets := &mockTicketSource{
		FetchAccessTokenFunc: func(ctx context.Context) (string, error) {
			return "", errors.New("upstream unavailable")
		},
	}
	svc := platform.NewService(tickets, "wx-app-id", zerolog.Nop())

	_, err := svc.GetConfig(ctx, "https://example.com")
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeExternal) {
		t.Errorf("GetConfig() error = %v, want external platform error", err)
	}
}

func TestService_GetConfig_TicketFailure(t *testing.T) {
	ctx := context.Background()
	tickets := &mockTicketSource{
		FetchTicketFunc: func(ctx context.Context, accessToken string) (string, error) {
			return "", errors.New("ticket endpoint down")
		},
	}
	svc := platform.NewService(tickets, "wx-app-id", zerolog.Nop())

	_, err := svc.GetConfig(ctx, "https://example.com")
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeExternal) {
		t.Errorf("GetConfig() error = %v, want external platform error", err)
	}
}
