package extension

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/classify"
	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/config"
	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/metrics"
	"github.com/oyaguma3/wallet-session-poc/pkg/logging"
	"github.com/sony/gobreaker"
)

// transport は拡張機能ブリッジへのHTTP呼び出しを共通化する。
// 呼び出しはCircuit Breaker経由で行い、5xx/接続失敗のみを失敗としてカウントする。
type transport struct {
	httpClient     *resty.Client
	cb             *gobreaker.CircuitBreaker
	baseURL        string
	requestTimeout time.Duration // 読み取り系の呼び出しにのみ適用する
}

// callSpec は1回の呼び出しの内容
type callSpec struct {
	op     string      // メトリクス・ログ用の操作名
	class  classify.Op // エラー分類用の操作種別
	method string
	path   string
	body   any
	prompt bool // ユーザーの承認待ちでブロックする呼び出し。タイムアウトを設けない
}

func newTransport(cbName, baseURL string) *transport {
	// タイムアウトは呼び出しごとにcontextで制御する
	httpClient := resty.New().
		SetHeader(HeaderContentType, ContentTypeJSON)

	cbSettings := gobreaker.Settings{
		Name:        cbName,
		MaxRequests: config.CBMaxRequests,
		Interval:    config.CBInterval,
		Timeout:     config.CBTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(config.CBFailureThreshold)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			switch to {
			case gobreaker.StateOpen:
				slog.Warn("circuit breaker opened",
					"event_id", "CB_OPEN",
					"cb_name", name,
				)
			case gobreaker.StateHalfOpen:
				slog.Info("circuit breaker half-open",
					"event_id", "CB_HALF_OPEN",
					"cb_name", name,
				)
			case gobreaker.StateClosed:
				slog.Info("circuit breaker closed",
					"event_id", "CB_CLOSE",
					"cb_name", name,
				)
			}
		},
	}

	return &transport{
		httpClient: httpClient,
		cb:         gobreaker.NewCircuitBreaker(cbSettings),
		baseURL:    strings.TrimRight(baseURL, "/"),

		requestTimeout: config.BridgeRequestTimeout,
	}
}

// call はブリッジを呼び出し、レスポンスをoutにデコードする。
// 返却するエラーは常に*classify.ClassifiedError。
func (t *transport) call(ctx context.Context, cs callSpec, out envelope) error {
	start := time.Now()
	err := t.do(ctx, cs, out)
	metrics.RecordAdapterCall(cs.op, err, time.Since(start))
	if err != nil {
		return classify.ClassifyOp(cs.class, err)
	}
	return nil
}

func (t *transport) do(ctx context.Context, cs callSpec, out envelope) error {
	ctx, traceID := logging.EnsureTraceID(ctx)
	if !cs.prompt && t.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.requestTimeout)
		defer cancel()
	}

	start := time.Now()
	result, err := t.cb.Execute(func() (any, error) {
		req := t.httpClient.R().
			SetContext(ctx).
			SetHeader(HeaderTraceID, traceID)
		if cs.body != nil {
			req.SetBody(cs.body)
		}
		resp, err := req.Execute(cs.method, t.baseURL+cs.path)
		if err != nil {
			return nil, &ConnectionError{Cause: err}
		}

		latencyMs := time.Since(start).Milliseconds()
		statusCode := resp.StatusCode()

		// CB失敗判定対象: 5xx
		if statusCode >= 500 {
			bridgeErr := parseBridgeError(statusCode, resp.Body())
			slog.Error("extension bridge error",
				"event_id", "BRIDGE_API_ERR",
				"op", cs.op,
				"error", bridgeErr.Error(),
				"http_status", statusCode,
				"latency_ms", latencyMs,
				"trace_id", traceID,
			)
			return nil, bridgeErr
		}

		// CB失敗判定対象外: 4xx
		if statusCode < 200 || statusCode >= 300 {
			bridgeErr := parseBridgeError(statusCode, resp.Body())
			slog.Warn("extension bridge rejected request",
				"event_id", "BRIDGE_API_ERR",
				"op", cs.op,
				"error", bridgeErr.Error(),
				"http_status", statusCode,
				"latency_ms", latencyMs,
				"trace_id", traceID,
			)
			return bridgeErr, nil
		}

		slog.Debug("extension bridge call succeeded",
			"op", cs.op,
			"latency_ms", latencyMs,
			"trace_id", traceID,
		)
		return resp.Body(), nil
	})
	if err != nil {
		return err
	}

	// CB対象外のBridgeErrorの場合
	if bridgeErr, ok := result.(*BridgeError); ok {
		return bridgeErr
	}

	body, ok := result.([]byte)
	if !ok {
		return ErrInvalidResponse
	}
	if out == nil {
		return nil
	}
	if len(body) > 0 {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("%w: json unmarshal: %v", ErrInvalidResponse, err)
		}
	}

	// 拡張機能が返したerrorフィールド（ユーザー拒否等）
	if we := out.bridgeError(); we != nil {
		return &BridgeError{StatusCode: 200, Code: we.Code, Message: we.Message}
	}
	return nil
}

// parseBridgeError はHTTPエラーレスポンスをBridgeErrorに変換する。
func parseBridgeError(statusCode int, body []byte) *BridgeError {
	var resp bridgeResponse
	if err := json.Unmarshal(body, &resp); err == nil && resp.Error != nil {
		return &BridgeError{
			StatusCode: statusCode,
			Code:       resp.Error.Code,
			Message:    resp.Error.Message,
		}
	}
	return &BridgeError{
		StatusCode: statusCode,
		Message:    strings.TrimSpace(string(body)),
	}
}
