package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// 変更監視モード
const (
	WatchModePoll = "poll"
	WatchModePush = "push"
)

// Config はアプリケーション設定を保持する
type Config struct {
	// Valkey接続設定
	RedisHost string `envconfig:"REDIS_HOST" required:"true"`
	RedisPort string `envconfig:"REDIS_PORT" required:"true"`
	RedisPass string `envconfig:"REDIS_PASS" required:"true"`

	// 拡張機能ブリッジ設定
	BridgeURL       string `envconfig:"BRIDGE_URL" required:"true"`
	LegacyBridgeURL string `envconfig:"LEGACY_BRIDGE_URL"`

	// HTTPサーバー設定
	ListenAddr string `envconfig:"LISTEN_ADDR" default:":8090"`
	GinMode    string `envconfig:"GIN_MODE" default:"release"`

	// セッション設定
	DefaultNetwork string        `envconfig:"DEFAULT_NETWORK" default:"testnet"`
	WatchMode      string        `envconfig:"WATCH_MODE" default:"poll"`
	WatchInterval  time.Duration `envconfig:"WATCH_INTERVAL" default:"5s"`
	ProfileID      string        `envconfig:"PROFILE_ID" default:"default"`

	// ログ設定
	LogLevel        string `envconfig:"LOG_LEVEL" default:"INFO"`
	LogMaskIdentity bool   `envconfig:"LOG_MASK_IDENTITY" default:"true"`
}

// Load は環境変数から設定を読み込む
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// ValkeyAddr はValkey接続アドレスを "host:port" 形式で返す
func (c *Config) ValkeyAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

// HasLegacyBridge はフォールバック用ブリッジが設定されているかを返す
func (c *Config) HasLegacyBridge() bool {
	return c.LegacyBridgeURL != ""
}

// SlogLevel はLOG_LEVELをslog.Levelに変換する。未知の値はINFOとして扱う。
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// validate は設定値のバリデーションを行う
func (c *Config) validate() error {
	if !isHTTPURL(c.BridgeURL) {
		return fmt.Errorf("BRIDGE_URL must start with http:// or https://")
	}
	if c.LegacyBridgeURL != "" && !isHTTPURL(c.LegacyBridgeURL) {
		return fmt.Errorf("LEGACY_BRIDGE_URL must start with http:// or https://")
	}
	if strings.TrimSpace(c.DefaultNetwork) == "" {
		return fmt.Errorf("DEFAULT_NETWORK must not be empty")
	}
	if strings.TrimSpace(c.ProfileID) == "" {
		return fmt.Errorf("PROFILE_ID must not be empty")
	}
	switch c.WatchMode {
	case WatchModePoll, WatchModePush:
	default:
		return fmt.Errorf("WATCH_MODE must be %q or %q", WatchModePoll, WatchModePush)
	}
	if c.WatchInterval < MinWatchInterval {
		return fmt.Errorf("WATCH_INTERVAL must be at least %s", MinWatchInterval)
	}
	return nil
}

func isHTTPURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
