package extension

//go:generate mockgen -source=interfaces.go -destination=../mocks/mock_extension.go -package=mocks

import (
	"context"

	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/network"
)

// Adapter はウォレット拡張機能との唯一の境界。
// 返却されるエラーはすべて*classify.ClassifiedErrorである。
type Adapter interface {
	// Probe は拡張機能の可用性を確認する。失敗時はAvailable=falseを返し、エラーは返さない。
	Probe(ctx context.Context) ProbeResult
	// RequestAccess はアクセスを要求し、公開鍵を返す。拡張機能側でユーザーに確認を求める場合がある。
	RequestAccess(ctx context.Context) (Identifier, error)
	// CheckAuthorized はアプリケーションが許可済みかを確認する。確認ダイアログは表示しない。
	CheckAuthorized(ctx context.Context) (bool, error)
	// GrantStanding はアプリケーションを許可済みとしてマークする。冪等。
	GrantStanding(ctx context.Context) error
	// ReadIdentity は現在の公開鍵を返す。未許可の場合はNotAuthorized。
	ReadIdentity(ctx context.Context) (Identifier, error)
	// ReadNetwork は拡張機能自身が設定しているネットワークの生ラベルを返す。
	ReadNetwork(ctx context.Context) (string, error)
	// AlignNetwork は拡張機能にネットワークの切り替えを依頼する。
	AlignNetwork(ctx context.Context, cfg network.Config) error
	// SignTransaction はトランザクションに署名する。
	SignTransaction(ctx context.Context, payload string, opts SignOptions) (SignedPayload, error)
	// SignMessage は任意メッセージに署名する。
	SignMessage(ctx context.Context, payload string, opts SignOptions) (SignedPayload, error)
	// SubscribeToChanges は拡張機能側の変化通知を購読する。返却関数は複数回呼んでも安全。
	SubscribeToChanges(cb func(Change)) (unsubscribe func())
}

// Watcher は変化通知の購読手段。ポーリング型とプッシュ型の実装がある。
type Watcher interface {
	Watch(cb func(Change)) (unsubscribe func())
}

// StateReader はポーリング型Watcherが観測に使う読み取り操作
type StateReader interface {
	Probe(ctx context.Context) ProbeResult
	ReadIdentity(ctx context.Context) (Identifier, error)
	ReadNetwork(ctx context.Context) (string, error)
}
