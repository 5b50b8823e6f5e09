package config

import "time"

// Valkey接続設定
const (
	ValkeyConnectTimeout = 2 * time.Second
	ValkeyCommandTimeout = 1 * time.Second
	ValkeyPoolSize       = 4
)

// 拡張機能ブリッジ接続設定
// 読み取り系の呼び出しにのみ適用する。アクセス要求・署名などユーザーの承認待ちの呼び出しは
// ブリッジが応答するまで待つ。
const (
	BridgeRequestTimeout = 5 * time.Second
)

// Circuit Breaker設定
const (
	CBName             = "extension-bridge"
	CBLegacyName       = "legacy-bridge"
	CBMaxRequests      = 3
	CBInterval         = 10 * time.Second
	CBTimeout          = 30 * time.Second
	CBFailureThreshold = 5
)

// 台帳クエリ設定
const (
	LedgerRequestTimeout = 10 * time.Second
)

// セッションキャッシュ設定
const (
	CacheKeyPrefix    = "wallet:"
	CacheTTL          = 7 * 24 * time.Hour
	CacheWriteTimeout = 2 * time.Second
)

// 変更監視設定
const (
	MinWatchInterval = 3 * time.Second
	WatchQueueSize   = 16
)

// サーバーシャットダウン設定
const (
	ShutdownTimeout = 5 * time.Second
)
