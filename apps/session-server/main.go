// Package main はWallet Session Serverのエントリーポイント。
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/cache"
	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/config"
	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/extension"
	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/handler"
	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/ledger"
	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/metrics"
	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/network"
	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/server"
	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/session"
	"github.com/oyaguma3/wallet-session-poc/pkg/logging"
	"github.com/oyaguma3/wallet-session-poc/pkg/valkey"
)

func main() {
	// 1. 設定読み込み
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// 2. ロガー初期化
	initLogger(cfg)

	slog.Info("starting session-server",
		"listen_addr", cfg.ListenAddr,
		"log_level", cfg.LogLevel,
		"default_network", cfg.DefaultNetwork,
		"watch_mode", cfg.WatchMode,
		"legacy_bridge", cfg.HasLegacyBridge(),
	)

	// 3. メトリクス
	metrics.Init()

	// 4. Valkeyクライアント・セッションキャッシュ
	redisClient, err := cache.NewValkeyClient(cfg)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	sessionCache := cache.NewValkeyCache(redisClient, cfg.ProfileID)

	// 5. ネットワークレジストリ
	registry, err := network.NewDefaultRegistry(network.Name(cfg.DefaultNetwork))
	if err != nil {
		slog.Error("failed to build network registry", "error", err)
		os.Exit(1)
	}

	// 6. 拡張機能アダプタ
	var legacy *extension.LegacyClient
	if cfg.HasLegacyBridge() {
		legacy = extension.NewLegacyClient(cfg.LegacyBridgeURL)
	}
	adapter := extension.NewComposite(extension.NewBridgeClient(cfg.BridgeURL), legacy)

	var publisher handler.ChangePublisher
	switch cfg.WatchMode {
	case config.WatchModePush:
		pw := extension.NewPushWatcher()
		adapter.UseWatcher(pw)
		publisher = pw
	default:
		adapter.UseWatcher(extension.NewPollWatcher(adapter, cfg.WatchInterval))
	}

	// 7. セッションストア
	fields := logging.NewCommonFields(logging.NewMasker(cfg.LogMaskIdentity))
	store := session.NewStore(adapter, sessionCache, registry, session.WithCommonFields(fields))

	initCtx, cancelInit := context.WithTimeout(context.Background(), config.BridgeRequestTimeout*2)
	if err := store.Initialize(initCtx); err != nil {
		cancelInit()
		slog.Error("failed to initialize session", "error", err)
		os.Exit(1)
	}
	cancelInit()

	// 8. ハンドラー
	h := handler.NewHandler(handler.Dependencies{
		Sessions:  store,
		Registry:  registry,
		Ledger:    ledger.NewClient(),
		Publisher: publisher,
		Health: func(ctx context.Context) error {
			return valkey.HealthCheck(ctx, redisClient, config.ValkeyCommandTimeout)
		},
		Fields: fields,
	})

	// 9. サーバー起動
	srv := server.New(cfg, h)

	// 10. Graceful Shutdown設定
	go func() {
		if err := srv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// 11. シグナル待機
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}
	store.Teardown()

	slog.Info("server stopped")
}

// initLogger はロガーを初期化する。
func initLogger(cfg *config.Config) {
	opts := &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}

	h := slog.NewJSONHandler(os.Stdout, opts)
	logger := slog.New(h).With("app", "session-server")
	slog.SetDefault(logger)
}
