package extension

import (
	"context"
	"log/slog"
	"sync"

	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/classify"
	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/network"
)

// Composite は一次経路（拡張機能ブリッジ）とフォールバック経路（旧来の注入API）を束ねたAdapter。
// 優先順位は 拡張機能 > フォールバック。どちらを使うかは直近のProbe結果で決める。
type Composite struct {
	primary  *BridgeClient
	fallback *LegacyClient // 未設定の場合はnil

	mu      sync.RWMutex
	source  Source
	watcher Watcher
}

// NewComposite は新しいCompositeを生成する。fallbackはnilでもよい。
func NewComposite(primary *BridgeClient, fallback *LegacyClient) *Composite {
	return &Composite{
		primary:  primary,
		fallback: fallback,
	}
}

// UseWatcher は変化通知に使うWatcherを設定する。
func (c *Composite) UseWatcher(w Watcher) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.watcher = w
}

// Probe は一次経路、フォールバック経路の順に可用性を確認する。
func (c *Composite) Probe(ctx context.Context) ProbeResult {
	if r := c.primary.Probe(ctx); r.Available {
		c.setSource(SourcePrimary)
		return r
	}
	if c.fallback != nil {
		if r := c.fallback.Probe(ctx); r.Available {
			c.setSource(SourceFallback)
			return r
		}
	}
	c.setSource(SourceNone)
	return ProbeResult{Available: false}
}

// ActiveSource は直近のProbeで選択された経路を返す。
func (c *Composite) ActiveSource() Source {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.source
}

func (c *Composite) setSource(s Source) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.source != s {
		slog.Info("wallet adapter source changed",
			"event_id", "ADAPTER_SOURCE_CHANGED",
			"from", string(c.source),
			"to", string(s),
		)
	}
	c.source = s
}

// route は呼び出し先の経路を決める。未確定の場合はProbeを行う。
func (c *Composite) route(ctx context.Context) Source {
	if s := c.ActiveSource(); s != SourceNone {
		return s
	}
	return c.Probe(ctx).Source
}

func notInstalled(op classify.Op) error {
	return classify.ClassifyOp(op, ErrNotInstalled)
}

func unsupported(op classify.Op) error {
	return classify.ClassifyOp(op, ErrUnsupported)
}

// RequestAccess はアクセスを要求する。一次経路で成功した場合は許可状態も付与する（失敗は無視）。
func (c *Composite) RequestAccess(ctx context.Context) (Identifier, error) {
	switch c.route(ctx) {
	case SourcePrimary:
		id, err := c.primary.RequestAccess(ctx)
		if err != nil {
			return "", err
		}
		if err := c.primary.GrantStanding(ctx); err != nil {
			slog.Warn("grant standing failed",
				"event_id", "ADAPTER_GRANT_ERR",
				"error", err.Error(),
			)
		}
		return id, nil
	case SourceFallback:
		return c.fallback.Connect(ctx)
	default:
		return "", notInstalled(classify.OpAccess)
	}
}

// CheckAuthorized はアプリケーションが許可済みかを確認する。
func (c *Composite) CheckAuthorized(ctx context.Context) (bool, error) {
	switch c.route(ctx) {
	case SourcePrimary:
		return c.primary.CheckAuthorized(ctx)
	case SourceFallback:
		return c.fallback.IsAllowed(ctx)
	default:
		return false, notInstalled(classify.OpRead)
	}
}

// GrantStanding はアプリケーションを許可済みとしてマークする。
// フォールバックAPIはrequestAccessで許可が付与されるため何もしない。
func (c *Composite) GrantStanding(ctx context.Context) error {
	switch c.route(ctx) {
	case SourcePrimary:
		return c.primary.GrantStanding(ctx)
	case SourceFallback:
		return nil
	default:
		return notInstalled(classify.OpAccess)
	}
}

// ReadIdentity は現在の公開鍵を返す。
func (c *Composite) ReadIdentity(ctx context.Context) (Identifier, error) {
	switch c.route(ctx) {
	case SourcePrimary:
		return c.primary.ReadIdentity(ctx)
	case SourceFallback:
		return c.fallback.ReadIdentity(ctx)
	default:
		return "", notInstalled(classify.OpRead)
	}
}

// ReadNetwork は拡張機能のネットワークラベルを返す。
// フォールバックAPIはネットワークを報告しないため空文字を返す。
func (c *Composite) ReadNetwork(ctx context.Context) (string, error) {
	switch c.route(ctx) {
	case SourcePrimary:
		return c.primary.ReadNetwork(ctx)
	case SourceFallback:
		return "", nil
	default:
		return "", notInstalled(classify.OpRead)
	}
}

// AlignNetwork は拡張機能にネットワークの切り替えを依頼する。
func (c *Composite) AlignNetwork(ctx context.Context, cfg network.Config) error {
	switch c.route(ctx) {
	case SourcePrimary:
		return c.primary.AlignNetwork(ctx, cfg)
	case SourceFallback:
		return unsupported(classify.OpRead)
	default:
		return notInstalled(classify.OpRead)
	}
}

// SignTransaction はトランザクションに署名する。
func (c *Composite) SignTransaction(ctx context.Context, payload string, opts SignOptions) (SignedPayload, error) {
	switch c.route(ctx) {
	case SourcePrimary:
		return c.primary.SignTransaction(ctx, payload, opts)
	case SourceFallback:
		return c.fallback.SignTransaction(ctx, payload, opts)
	default:
		return SignedPayload{}, notInstalled(classify.OpSign)
	}
}

// SignMessage はメッセージに署名する。フォールバックAPIは未対応。
func (c *Composite) SignMessage(ctx context.Context, payload string, opts SignOptions) (SignedPayload, error) {
	switch c.route(ctx) {
	case SourcePrimary:
		return c.primary.SignMessage(ctx, payload, opts)
	case SourceFallback:
		return SignedPayload{}, unsupported(classify.OpSign)
	default:
		return SignedPayload{}, notInstalled(classify.OpSign)
	}
}

// SubscribeToChanges は設定済みWatcherで変化通知を購読する。
// Watcher未設定の場合は何もしない解除関数を返す。
func (c *Composite) SubscribeToChanges(cb func(Change)) func() {
	c.mu.RLock()
	w := c.watcher
	c.mu.RUnlock()
	if w == nil {
		return func() {}
	}
	return w.Watch(cb)
}
