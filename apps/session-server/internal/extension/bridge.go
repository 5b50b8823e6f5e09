package extension

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/classify"
	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/config"
	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/network"
)

// BridgeClient は拡張機能ブリッジ（一次経路）のクライアント
type BridgeClient struct {
	t *transport
}

// NewBridgeClient は新しいBridgeClientを生成する。
func NewBridgeClient(baseURL string) *BridgeClient {
	return &BridgeClient{t: newTransport(config.CBName, baseURL)}
}

// Probe は拡張機能の可用性を確認する。いかなる失敗もAvailable=falseとして扱う。
func (c *BridgeClient) Probe(ctx context.Context) ProbeResult {
	var resp statusResponse
	err := c.t.call(ctx, callSpec{
		op:     opProbe,
		class:  classify.OpProbe,
		method: http.MethodGet,
		path:   PathStatus,
	}, &resp)
	if err != nil {
		slog.Debug("extension probe failed", "error", err.Error())
		return ProbeResult{Available: false}
	}
	if !resp.IsConnected {
		return ProbeResult{Available: false}
	}
	return ProbeResult{Available: true, Source: SourcePrimary}
}

// RequestAccess はアクセスを要求し、公開鍵を返す。
func (c *BridgeClient) RequestAccess(ctx context.Context) (Identifier, error) {
	var resp addressResponse
	err := c.t.call(ctx, callSpec{
		op:     opRequestAccess,
		class:  classify.OpAccess,
		method: http.MethodPost,
		path:   PathAccess,
		prompt: true,
	}, &resp)
	if err != nil {
		return "", err
	}
	if resp.Address == "" {
		return "", classify.ClassifyOp(classify.OpAccess, ErrInvalidResponse)
	}
	return Identifier(resp.Address), nil
}

// CheckAuthorized はアプリケーションが許可済みかを確認する。
func (c *BridgeClient) CheckAuthorized(ctx context.Context) (bool, error) {
	var resp allowedResponse
	err := c.t.call(ctx, callSpec{
		op:     opCheckAuthorized,
		class:  classify.OpRead,
		method: http.MethodGet,
		path:   PathAllowed,
	}, &resp)
	if err != nil {
		return false, err
	}
	return resp.IsAllowed, nil
}

// GrantStanding はアプリケーションを許可済みとしてマークする。
func (c *BridgeClient) GrantStanding(ctx context.Context) error {
	var resp allowedResponse
	return c.t.call(ctx, callSpec{
		op:     opGrantStanding,
		class:  classify.OpAccess,
		method: http.MethodPost,
		path:   PathAllowed,
		prompt: true,
	}, &resp)
}

// ReadIdentity は現在の公開鍵を返す。
// 拡張機能は未許可の場合に空のアドレスを返すため、NotAuthorizedとして扱う。
func (c *BridgeClient) ReadIdentity(ctx context.Context) (Identifier, error) {
	var resp addressResponse
	err := c.t.call(ctx, callSpec{
		op:     opReadIdentity,
		class:  classify.OpRead,
		method: http.MethodGet,
		path:   PathAddress,
	}, &resp)
	if err != nil {
		return "", err
	}
	if resp.Address == "" {
		return "", classify.ClassifyOp(classify.OpRead, ErrNotAuthorized)
	}
	return Identifier(resp.Address), nil
}

// ReadNetwork は拡張機能が設定しているネットワークのラベルを返す。
// ラベルが空の場合はネットワークパスフレーズを返す。
func (c *BridgeClient) ReadNetwork(ctx context.Context) (string, error) {
	var resp networkResponse
	err := c.t.call(ctx, callSpec{
		op:     opReadNetwork,
		class:  classify.OpRead,
		method: http.MethodGet,
		path:   PathNetwork,
	}, &resp)
	if err != nil {
		return "", err
	}
	if resp.Network != "" {
		return resp.Network, nil
	}
	return resp.NetworkPassphrase, nil
}

// AlignNetwork は拡張機能にネットワークの切り替えを依頼する。
func (c *BridgeClient) AlignNetwork(ctx context.Context, cfg network.Config) error {
	var resp networkResponse
	return c.t.call(ctx, callSpec{
		op:     opAlignNetwork,
		class:  classify.OpRead,
		method: http.MethodPut,
		path:   PathNetwork,
		body: &networkRequest{
			Network:           string(cfg.Name),
			NetworkPassphrase: cfg.SigningDomain,
		},
		prompt: true,
	}, &resp)
}

// SignTransaction はトランザクションXDRに署名する。
func (c *BridgeClient) SignTransaction(ctx context.Context, payload string, opts SignOptions) (SignedPayload, error) {
	var resp signTransactionResponse
	err := c.t.call(ctx, callSpec{
		op:     opSignTransaction,
		class:  classify.OpSign,
		method: http.MethodPost,
		path:   PathSignTransaction,
		body: &signTransactionRequest{
			XDR:               payload,
			NetworkPassphrase: opts.SigningDomain,
			Address:           string(opts.Identity),
		},
		prompt: true,
	}, &resp)
	if err != nil {
		return SignedPayload{}, err
	}
	return SignedPayload{Payload: resp.SignedTxXDR, Signer: Identifier(resp.SignerAddress)}, nil
}

// SignMessage は任意メッセージに署名する。
func (c *BridgeClient) SignMessage(ctx context.Context, payload string, opts SignOptions) (SignedPayload, error) {
	var resp signMessageResponse
	err := c.t.call(ctx, callSpec{
		op:     opSignMessage,
		class:  classify.OpSign,
		method: http.MethodPost,
		path:   PathSignMessage,
		body: &signMessageRequest{
			Message:           payload,
			NetworkPassphrase: opts.SigningDomain,
			Address:           string(opts.Identity),
		},
		prompt: true,
	}, &resp)
	if err != nil {
		return SignedPayload{}, err
	}
	return SignedPayload{Payload: resp.SignedMessage, Signer: Identifier(resp.SignerAddress)}, nil
}
