package extension

import (
	"time"

	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/network"
)

// Identifier は拡張機能が公開するアカウントの公開鍵
type Identifier string

// Source はどの経路で拡張機能に到達したかを表す
type Source string

// 到達経路の定数
const (
	SourceNone     Source = ""
	SourcePrimary  Source = "extension"
	SourceFallback Source = "fallback"
)

// ProbeResult は可用性確認の結果
type ProbeResult struct {
	Available bool   `json:"available"`
	Source    Source `json:"source,omitempty"`
}

// SignOptions は署名要求のパラメータ
type SignOptions struct {
	Network       network.Name
	SigningDomain string
	Identity      Identifier
}

// SignedPayload は署名結果。Networkは署名に使ったネットワークで、セッション層が設定する
type SignedPayload struct {
	Payload string       `json:"signed"`
	Signer  Identifier   `json:"signer,omitempty"`
	Network network.Name `json:"network,omitempty"`
}

// Change は拡張機能側で発生した接続状態の変化通知
type Change struct {
	Connected  bool       `json:"connected"`
	Identity   Identifier `json:"identity,omitempty"`
	Network    string     `json:"network,omitempty"` // 拡張機能が報告する生のラベル
	ObservedAt time.Time  `json:"observedAt"`
}

// wireError はブリッジのerrorフィールド
type wireError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// envelope はerrorフィールドを持つレスポンス
type envelope interface {
	bridgeError() *wireError
}

// bridgeResponse は全レスポンス共通のerrorフィールド
type bridgeResponse struct {
	Error *wireError `json:"error,omitempty"`
}

func (r *bridgeResponse) bridgeError() *wireError {
	return r.Error
}

type statusResponse struct {
	bridgeResponse
	IsConnected bool `json:"isConnected"`
}

type addressResponse struct {
	bridgeResponse
	Address string `json:"address"`
}

type allowedResponse struct {
	bridgeResponse
	IsAllowed bool `json:"isAllowed"`
}

type networkResponse struct {
	bridgeResponse
	Network           string `json:"network"`
	NetworkPassphrase string `json:"networkPassphrase"`
}

type networkRequest struct {
	Network           string `json:"network"`
	NetworkPassphrase string `json:"networkPassphrase"`
}

type signTransactionRequest struct {
	XDR               string `json:"xdr"`
	NetworkPassphrase string `json:"networkPassphrase"`
	Address           string `json:"address,omitempty"`
}

type signTransactionResponse struct {
	bridgeResponse
	SignedTxXDR   string `json:"signedTxXdr"`
	SignerAddress string `json:"signerAddress"`
}

type signMessageRequest struct {
	Message           string `json:"message"`
	NetworkPassphrase string `json:"networkPassphrase"`
	Address           string `json:"address,omitempty"`
}

type signMessageResponse struct {
	bridgeResponse
	SignedMessage string `json:"signedMessage"`
	SignerAddress string `json:"signerAddress"`
}

type legacyPublicKeyResponse struct {
	bridgeResponse
	PublicKey string `json:"publicKey"`
}

type legacySignRequest struct {
	XDR               string `json:"xdr"`
	NetworkPassphrase string `json:"networkPassphrase"`
	AccountToSign     string `json:"accountToSign,omitempty"`
}

type legacySignResponse struct {
	bridgeResponse
	SignedTransaction string `json:"signedTransaction"`
}
