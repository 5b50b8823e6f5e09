package cache

//go:generate mockgen -source=interfaces.go -destination=../mocks/mock_cache.go -package=mocks

import "context"

// Cache はセッションの永続キャッシュへのアクセスを定義する。
// キャッシュは表示のちらつきを避けるためのヒントであり、信頼できる情報源ではない。
type Cache interface {
	// Load はキャッシュエントリを取得する。存在しない場合はErrEntryNotFoundを返す。
	Load(ctx context.Context) (*Entry, error)
	// Save はキャッシュエントリを保存する。
	Save(ctx context.Context, entry Entry) error
	// Clear はキャッシュエントリを削除する。
	Clear(ctx context.Context) error
}
