package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all configuration for the session-api service.
type Config struct {
	// Service settings
	ServiceName     string        `env:"SERVICE_NAME" envDefault:"session-api"`
	Environment     string        `env:"ENVIRONMENT" envDefault:"development"`
	HTTPPort        int           `env:"SESSION_API_PORT" envDefault:"8189"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// OpenTelemetry
	EnableTracing bool   `env:"OTEL_ENABLED" envDefault:"false"`
	OTLPEndpoint  string `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:""`

	// Redis (optional - falls back to in-memory KV when empty)
	RedisURL string `env:"REDIS_URL" envDefault:""`

	// RTC channel credentials
	AgoraAppID       string `env:"AGORA_APP_ID"`
	AgoraCertificate string `env:"AGORA_APP_CERTIFICATE"`

	// Whiteboard (Netless)
	NetlessAppIdentifier string `env:"NETLESS_APP_IDENTIFIER"`
	NetlessSDKToken      string `env:"NETLESS_SDK_TOKEN"`
	NetlessAPIURL        string `env:"NETLESS_API_URL" envDefault:"https://shunt-api.netless.link/v5"`

	// WeChat JS-SDK
	WeChatAppID     string `env:"WE_CHAT_APP_ID"`
	WeChatAppSecret string `env:"WE_CHAT_APP_SECRET"`
	WeChatAPIURL    string `env:"WE_CHAT_API_URL" envDefault:"https://api.weixin.qq.com/cgi-bin"`

	// Session management
	SessionTTL           time.Duration `env:"SESSION_TTL" envDefault:"1h"`
	SessionSweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL" envDefault:"1m"`
	SessionStoreGrace    time.Duration `env:"SESSION_STORE_GRACE" envDefault:"1h"` // extra TTL on stored keys past logical expiry
}

// Load parses environment variables into Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	// Validate RTC configuration
	if strings.TrimSpace(cfg.AgoraAppID) == "" {
		return nil, fmt.Errorf("AGORA_APP_ID is required")
	}
	if strings.TrimSpace(cfg.AgoraCertificate) == "" {
		return nil, fmt.Errorf("AGORA_APP_CERTIFICATE is required")
	}

	// Validate whiteboard configuration
	if strings.TrimSpace(cfg.NetlessAppIdentifier) == "" {
		return nil, fmt.Errorf("NETLESS_APP_IDENTIFIER is required")
	}
	if strings.TrimSpace(cfg.NetlessSDKToken) == "" {
		return nil, fmt.Errorf("NETLESS_SDK_TOKEN is required")
	}

	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be positive")
	}

	return cfg, nil
}

// Addr returns the HTTP server address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
