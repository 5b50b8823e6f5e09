package extension

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/classify"
	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/config"
)

// LegacyClient は旧来の注入API（フォールバック経路）のクライアント。
// isAllowed / requestAccess / getPublicKey / signTransaction のみを提供する。
type LegacyClient struct {
	t *transport
}

// NewLegacyClient は新しいLegacyClientを生成する。
func NewLegacyClient(baseURL string) *LegacyClient {
	return &LegacyClient{t: newTransport(config.CBLegacyName, baseURL)}
}

// Probe はフォールバックAPIの可用性を確認する。isAllowedに応答できれば利用可能とみなす。
func (c *LegacyClient) Probe(ctx context.Context) ProbeResult {
	if _, err := c.IsAllowed(ctx); err != nil {
		slog.Debug("fallback wallet probe failed", "error", err.Error())
		return ProbeResult{Available: false}
	}
	return ProbeResult{Available: true, Source: SourceFallback}
}

// IsAllowed はアプリケーションが許可済みかを確認する。
func (c *LegacyClient) IsAllowed(ctx context.Context) (bool, error) {
	var resp allowedResponse
	err := c.t.call(ctx, callSpec{
		op:     opCheckAuthorized,
		class:  classify.OpRead,
		method: http.MethodGet,
		path:   PathLegacyAllowed,
	}, &resp)
	if err != nil {
		return false, err
	}
	return resp.IsAllowed, nil
}

// RequestAccess はアクセスを要求する。公開鍵は返さないため、続けてPublicKeyを呼ぶ。
func (c *LegacyClient) RequestAccess(ctx context.Context) error {
	var resp legacyPublicKeyResponse
	return c.t.call(ctx, callSpec{
		op:     opRequestAccess,
		class:  classify.OpAccess,
		method: http.MethodPost,
		path:   PathLegacyAccess,
		prompt: true,
	}, &resp)
}

// PublicKey は現在の公開鍵を返す。
func (c *LegacyClient) PublicKey(ctx context.Context) (Identifier, error) {
	var resp legacyPublicKeyResponse
	err := c.t.call(ctx, callSpec{
		op:     opReadIdentity,
		class:  classify.OpRead,
		method: http.MethodGet,
		path:   PathLegacyPublicKey,
	}, &resp)
	if err != nil {
		return "", err
	}
	if resp.PublicKey == "" {
		return "", classify.ClassifyOp(classify.OpRead, ErrNotAuthorized)
	}
	return Identifier(resp.PublicKey), nil
}

// ReadIdentity は許可済みの場合に限り公開鍵を返す。
// getPublicKeyは未許可でも値を返し得るため、先にisAllowedを確認する。
func (c *LegacyClient) ReadIdentity(ctx context.Context) (Identifier, error) {
	allowed, err := c.IsAllowed(ctx)
	if err != nil {
		return "", err
	}
	if !allowed {
		return "", classify.ClassifyOp(classify.OpRead, ErrNotAuthorized)
	}
	return c.PublicKey(ctx)
}

// Connect は isAllowed → requestAccess → getPublicKey の順でアクセスを確立する。
func (c *LegacyClient) Connect(ctx context.Context) (Identifier, error) {
	allowed, err := c.IsAllowed(ctx)
	if err != nil {
		return "", err
	}
	if !allowed {
		if err := c.RequestAccess(ctx); err != nil {
			return "", err
		}
	}
	return c.PublicKey(ctx)
}

// SignTransaction はトランザクションXDRに署名する。
func (c *LegacyClient) SignTransaction(ctx context.Context, payload string, opts SignOptions) (SignedPayload, error) {
	var resp legacySignResponse
	err := c.t.call(ctx, callSpec{
		op:     opSignTransaction,
		class:  classify.OpSign,
		method: http.MethodPost,
		path:   PathLegacySignTransaction,
		body: &legacySignRequest{
			XDR:               payload,
			NetworkPassphrase: opts.SigningDomain,
			AccountToSign:     string(opts.Identity),
		},
		prompt: true,
	}, &resp)
	if err != nil {
		return SignedPayload{}, err
	}
	return SignedPayload{Payload: resp.SignedTransaction, Signer: opts.Identity}, nil
}
