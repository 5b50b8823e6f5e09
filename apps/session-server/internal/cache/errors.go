package cache

import (
	"errors"
	"fmt"

	"github.com/oyaguma3/wallet-session-poc/pkg/apperr"
	"github.com/oyaguma3/wallet-session-poc/pkg/valkey"
)

var (
	// ErrEntryNotFound はキャッシュエントリが存在しない場合のエラー
	ErrEntryNotFound = errors.New("session cache entry not found")

	// ErrInvalidEntry は保存されたエントリが不完全な場合のエラー
	ErrInvalidEntry = errors.New("invalid session cache entry")
)

// wrapValkeyError はValkeyのエラーを操作名・キー付きのエラーに変換する。
func wrapValkeyError(op, key string, err error) error {
	sentinel := apperr.ErrValkeyCommand
	if valkey.IsConnectionError(err) {
		sentinel = apperr.ErrValkeyConnection
	}
	return apperr.NewValkeyError(op, key, fmt.Errorf("%w: %v", sentinel, err))
}
