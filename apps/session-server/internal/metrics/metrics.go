// Package metrics はセッションサーバーのPrometheusメトリクスを提供する。
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// 呼び出し結果ラベル
const (
	ResultOK    = "ok"
	ResultError = "error"
)

var (
	// セッション状態遷移
	sessionTransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallet_session_transitions_total",
			Help: "Total number of wallet session state transitions",
		},
		[]string{"from", "to"},
	)

	sessionConnected = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "wallet_session_connected",
			Help: "1 when a wallet identity is connected, otherwise 0",
		},
	)

	// 拡張機能アダプタ呼び出し
	adapterCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallet_adapter_calls_total",
			Help: "Total number of extension adapter calls",
		},
		[]string{"op", "result"},
	)

	adapterCallDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wallet_adapter_call_duration_seconds",
			Help:    "Extension adapter call duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"op"},
	)

	// HTTP API
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallet_http_requests_total",
			Help: "Total number of consumer API requests",
		},
		[]string{"method", "path", "status"},
	)

	initOnce sync.Once
)

// Init はメトリクスをデフォルトレジストリに登録する。複数回呼んでも安全。
func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(
			sessionTransitionsTotal,
			sessionConnected,
			adapterCallsTotal,
			adapterCallDuration,
			httpRequestsTotal,
		)
	})
}

// Handler は/metrics用のHTTPハンドラを返す。
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordTransition はセッション状態遷移を記録する。
func RecordTransition(from, to string) {
	sessionTransitionsTotal.WithLabelValues(from, to).Inc()
}

// SetConnected は接続状態ゲージを更新する。
func SetConnected(connected bool) {
	if connected {
		sessionConnected.Set(1)
		return
	}
	sessionConnected.Set(0)
}

// RecordAdapterCall はアダプタ呼び出しの結果と所要時間を記録する。
func RecordAdapterCall(op string, err error, duration time.Duration) {
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	adapterCallsTotal.WithLabelValues(op, result).Inc()
	adapterCallDuration.WithLabelValues(op).Observe(duration.Seconds())
}

// RecordHTTPRequest はAPIリクエストを記録する。
func RecordHTTPRequest(method, path, status string) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
}
