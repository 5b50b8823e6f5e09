package session

import "errors"

var (
	// ErrInvalidTransition は遷移テーブルにない状態遷移の場合のエラー
	ErrInvalidTransition = errors.New("invalid session state transition")

	// ErrNotInitialized はInitialize前に操作が呼ばれた場合のエラー
	ErrNotInitialized = errors.New("session store not initialized")

	// ErrIdentityRequired は接続状態に公開鍵なしで遷移しようとした場合のエラー
	ErrIdentityRequired = errors.New("connected session requires an identity")
)
