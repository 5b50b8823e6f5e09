package extension

import (
	"errors"
	"fmt"

	"github.com/oyaguma3/wallet-session-poc/pkg/apperr"
)

// センチネルエラー
var (
	// ErrNotInstalled は拡張機能が検出できない場合のエラー
	ErrNotInstalled = errors.New("wallet extension is not installed")

	// ErrNotAuthorized はアプリケーションが未許可で公開鍵が取得できない場合のエラー
	ErrNotAuthorized = errors.New("application is not authorized by the wallet")

	// ErrInvalidResponse は拡張機能ブリッジからのレスポンスが不正な場合のエラー
	ErrInvalidResponse = errors.New("invalid response from extension bridge")

	// ErrUnsupported はフォールバックAPIが対応していない操作のエラー
	ErrUnsupported = errors.New("operation not supported by fallback wallet API")
)

// BridgeError は拡張機能ブリッジが返したエラーを表す。
// レスポンスのerrorフィールド、またはHTTPエラーステータスから生成される。
type BridgeError struct {
	StatusCode int
	Code       int
	Message    string
}

func (e *BridgeError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("extension bridge error: code=%d %s", e.Code, e.Message)
	}
	return fmt.Sprintf("extension bridge error: %d %s", e.StatusCode, e.Message)
}

// BridgeCode は拡張機能のエラーコードを返す。
func (e *BridgeError) BridgeCode() int {
	return e.Code
}

// HTTPStatus はHTTPステータスコードを返す。
func (e *BridgeError) HTTPStatus() int {
	return e.StatusCode
}

// Unwrap はapperr.ErrBridgeAPIを返す。
func (e *BridgeError) Unwrap() error {
	return apperr.ErrBridgeAPI
}

// IsServerError はサーバーエラーかどうかを判定する
func (e *BridgeError) IsServerError() bool {
	return e.StatusCode >= 500
}

// ConnectionError は接続エラーを表す
type ConnectionError struct {
	Cause error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection error: %v", e.Cause)
}

func (e *ConnectionError) Unwrap() error {
	return e.Cause
}

// TransportFailure は通信レベルの失敗であることを示す。
func (e *ConnectionError) TransportFailure() bool {
	return true
}
