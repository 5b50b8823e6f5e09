package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/classify"
	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/config"
	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/network"
	"github.com/oyaguma3/wallet-session-poc/pkg/apperr"
	"github.com/oyaguma3/wallet-session-poc/pkg/logging"
)

// Client はレジャー照会クライアント。エンドポイントは呼び出しごとにnetwork.Configから決める。
type Client struct {
	httpClient *resty.Client
}

// NewClient は新しいClientを生成する。
func NewClient() *Client {
	return &Client{
		httpClient: resty.New().
			SetTimeout(config.LedgerRequestTimeout).
			SetHeader("Accept", "application/json"),
	}
}

// Balance はアカウントのネイティブ資産残高を返す。ネイティブ資産の行がない場合は"0"。
// アカウントが存在しない場合はapperr.ErrAccountNotFoundをラップしたエラーを返す。
func (c *Client) Balance(ctx context.Context, cfg network.Config, address string) (*Balance, error) {
	if address == "" {
		return nil, apperr.NewValidationError("address", "address is required")
	}

	endpoint := strings.TrimRight(cfg.QueryEndpoint, "/") + "/accounts/" + url.PathEscape(address)
	body, err := c.get(ctx, "balance", endpoint, nil)
	if err != nil {
		return nil, err
	}

	var acct accountResponse
	if err := json.Unmarshal(body, &acct); err != nil {
		return nil, apperr.NewBackendError(backendID, http.StatusOK, fmt.Errorf("%w: json unmarshal: %v", apperr.ErrLedgerAPI, err))
	}

	native := "0"
	for _, line := range acct.Balances {
		if line.AssetType == AssetTypeNative {
			native = line.Balance
			break
		}
	}
	return &Balance{Address: address, Network: cfg.Name, Native: native}, nil
}

// Fund はテスト用資金供給エンドポイントでアカウントに資金を供給する。
// 資金供給エンドポイントを持たないネットワークでは要求を送らず*classify.ConfigurationErrorを返す。
func (c *Client) Fund(ctx context.Context, cfg network.Config, address string) (*FundResult, error) {
	if !cfg.HasFunding() {
		return nil, &classify.ConfigurationError{
			Name:   string(cfg.Name),
			Reason: "funding endpoint not configured",
			Cause:  apperr.ErrFundingUnsupported,
		}
	}
	if address == "" {
		return nil, apperr.NewValidationError("address", "address is required")
	}

	body, err := c.get(ctx, "fund", cfg.FundingEndpoint, map[string]string{"addr": address})
	if err != nil {
		return nil, err
	}

	var resp fundResponse
	if len(body) > 0 {
		if err := json.Unmarshal(body, &resp); err != nil {
			slog.Debug("fund response is not json", logging.WithError(err))
		}
	}
	return &FundResult{Address: address, Network: cfg.Name, TxHash: resp.Hash}, nil
}

// get はGETリクエストを送り、2xxの場合にボディを返す。
func (c *Client) get(ctx context.Context, op, endpoint string, query map[string]string) ([]byte, error) {
	ctx, traceID := logging.EnsureTraceID(ctx)
	start := time.Now()

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(query).
		Get(endpoint)
	latencyMs := time.Since(start).Milliseconds()
	if err != nil {
		slog.Error("ledger request failed",
			logging.WithEventID("LEDGER_API_ERR"),
			slog.String("op", op),
			logging.WithError(err),
			logging.WithLatency(latencyMs),
			logging.WithTraceID(traceID),
		)
		return nil, classify.New(classify.KindNetworkFailure, err.Error())
	}

	status := resp.StatusCode()
	switch {
	case status == http.StatusNotFound && op == "balance":
		return nil, fmt.Errorf("%w: %s", apperr.ErrAccountNotFound, endpoint)
	case status < 200 || status >= 300:
		slog.Warn("ledger returned error status",
			logging.WithEventID("LEDGER_API_ERR"),
			slog.String("op", op),
			logging.WithHTTPStatus(status),
			logging.WithLatency(latencyMs),
			logging.WithTraceID(traceID),
		)
		return nil, apperr.NewBackendError(backendID, status, fmt.Errorf("%w: %s", apperr.ErrLedgerAPI, detailOf(resp.Body())))
	}

	slog.Debug("ledger request succeeded",
		slog.String("op", op),
		logging.WithLatency(latencyMs),
		logging.WithTraceID(traceID),
	)
	return resp.Body(), nil
}

// detailOf はエラーレスポンスから説明を取り出す。
func detailOf(body []byte) string {
	var resp fundResponse
	if err := json.Unmarshal(body, &resp); err == nil && resp.Detail != "" {
		return resp.Detail
	}
	return strings.TrimSpace(string(body))
}
