// Package wechat fetches the platform access token and jsapi ticket used to
// sign JS-SDK payloads.
package wechat

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/prometheus/client_golang/prometheus"

	"classroom-server/services/session-api/internal/config"
	"classroom-server/services/session-api/internal/domain/platform"
	"classroom-server/services/session-api/internal/infrastructure/metrics"
)

// cacheMargin is subtracted from the upstream validity window so a cached
// value is never served right at its expiry edge.
const cacheMargin = 5 * time.Minute

// Client implements platform.TicketSource over the WeChat HTTP API.
// Access tokens and tickets are cached for their upstream validity window;
// the platform rate-limits token issuance, so refetching per request would
// exhaust the quota.
type Client struct {
	httpClient *resty.Client
	appID      string
	appSecret  string

	mu           sync.Mutex
	cachedToken  cachedValue
	cachedTicket cachedValue
	now          func() time.Time
}

type cachedValue struct {
	value     string
	expiresAt time.Time
}

func (v cachedValue) live(now time.Time) bool {
	return v.value != "" && now.Before(v.expiresAt)
}

// NewClient creates a resty-backed WeChat client.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		httpClient: resty.New().
			SetBaseURL(cfg.WeChatAPIURL).
			SetTimeout(15 * time.Second),
		appID:     cfg.WeChatAppID,
		appSecret: cfg.WeChatAppSecret,
		now:       time.Now,
	}
}

type accessTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	ErrCode     int    `json:"errcode"`
	ErrMsg      string `json:"errmsg"`
}

// FetchAccessToken returns a client-credential access token, cached until
// shortly before its upstream expiry.
func (c *Client) FetchAccessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cachedToken.live(c.now()) {
		return c.cachedToken.value, nil
	}

	timer := prometheus.NewTimer(metrics.ProviderCallDuration.WithLabelValues("wechat", "access_token"))
	defer timer.ObserveDuration()

	var result accessTokenResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"grant_type": "client_credential",
			"appid":      c.appID,
			"secret":     c.appSecret,
		}).
		SetResult(&result).
		Get("/token")
	if err != nil {
		return "", fmt.Errorf("fetch access token: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("fetch access token: %s", resp.Status())
	}
	if result.AccessToken == "" {
		return "", fmt.Errorf("fetch access token: errcode=%d errmsg=%q", result.ErrCode, result.ErrMsg)
	}

	c.cachedToken = c.cache(result.AccessToken, result.ExpiresIn)
	return result.AccessToken, nil
}

type ticketResponse struct {
	Ticket    string `json:"ticket"`
	ExpiresIn int64  `json:"expires_in"`
	ErrCode   int    `json:"errcode"`
	ErrMsg    string `json:"errmsg"`
}

// FetchTicket exchanges an access token for a jsapi ticket, cached the same
// way as the token.
func (c *Client) FetchTicket(ctx context.Context, accessToken string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cachedTicket.live(c.now()) {
		return c.cachedTicket.value, nil
	}

	timer := prometheus.NewTimer(metrics.ProviderCallDuration.WithLabelValues("wechat", "ticket"))
	defer timer.ObserveDuration()

	var result ticketResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"access_token": accessToken,
			"type":         "jsapi",
		}).
		SetResult(&result).
		Get("/ticket/getticket")
	if err != nil {
		return "", fmt.Errorf("fetch jsapi ticket: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("fetch jsapi ticket: %s", resp.Status())
	}
	if result.Ticket == "" {
		return "", fmt.Errorf("fetch jsapi ticket: errcode=%d errmsg=%q", result.ErrCode, result.ErrMsg)
	}

	c.cachedTicket = c.cache(result.Ticket, result.ExpiresIn)
	return result.Ticket, nil
}

func (c *Client) cache(value string, expiresIn int64) cachedValue {
	ttl := time.Duration(expiresIn)*time.Second - cacheMargin
	if ttl <= 0 {
		// Too short to cache safely; keep for one minute at most.
		ttl = time.Minute
	}
	return cachedValue{value: value, expiresAt: c.now().Add(ttl)}
}

var _ platform.TicketSource = (*Client)(nil)
