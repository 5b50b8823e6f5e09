// Package ledger はネットワークの照会エンドポイント（残高）とテスト用資金供給エンドポイントを呼び出す。
package ledger

import "github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/network"

// backendID はBackendErrorに設定する識別子
const backendID = "ledger"

// AssetTypeNative はネイティブ資産のasset_type
const AssetTypeNative = "native"

// Balance はアカウントのネイティブ資産残高
type Balance struct {
	Address string       `json:"address"`
	Network network.Name `json:"network"`
	Native  string       `json:"native"`
}

// FundResult は資金供給の結果
type FundResult struct {
	Address string       `json:"address"`
	Network network.Name `json:"network"`
	TxHash  string       `json:"txHash,omitempty"`
}

// accountResponse は /accounts/{address} のレスポンス（必要なフィールドのみ）
type accountResponse struct {
	AccountID string           `json:"account_id"`
	Balances  []balanceLineDTO `json:"balances"`
}

type balanceLineDTO struct {
	AssetType string `json:"asset_type"`
	Balance   string `json:"balance"`
}

// fundResponse は資金供給エンドポイントのレスポンス（必要なフィールドのみ）
type fundResponse struct {
	Hash   string `json:"hash"`
	Detail string `json:"detail"`
}
