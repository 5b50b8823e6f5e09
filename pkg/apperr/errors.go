// Package apperr は共通エラー定義を提供する。
package apperr

import "errors"

// セッション関連エラー
var (
	// ErrSessionNotConnected はウォレットセッションが未接続の場合のエラー
	ErrSessionNotConnected = errors.New("wallet session not connected")

	// ErrNetworkNotRegistered はネットワーク名がレジストリに存在しない場合のエラー
	ErrNetworkNotRegistered = errors.New("network not registered")
)

// インフラ関連エラー
var (
	// ErrValkeyConnection はValkey接続エラー
	ErrValkeyConnection = errors.New("valkey connection error")

	// ErrValkeyCommand はValkeyコマンド実行エラー
	ErrValkeyCommand = errors.New("valkey command error")

	// ErrBridgeAPI は拡張機能ブリッジAPIエラー
	ErrBridgeAPI = errors.New("extension bridge API error")

	// ErrLedgerAPI はレジャー照会APIエラー
	ErrLedgerAPI = errors.New("ledger API error")
)

// レジャー関連エラー
var (
	// ErrAccountNotFound はアカウントがレジャー上に存在しない場合のエラー
	ErrAccountNotFound = errors.New("account not found")

	// ErrFundingUnsupported はファンディング非対応ネットワークへの要求エラー
	ErrFundingUnsupported = errors.New("funding not supported on network")
)

// バリデーション関連エラー
var (
	// ErrInvalidRequest は不正なリクエストエラー
	ErrInvalidRequest = errors.New("invalid request")
)
