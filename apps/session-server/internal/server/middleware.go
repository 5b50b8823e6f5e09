package server

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/handler"
	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/metrics"
	"github.com/oyaguma3/wallet-session-poc/pkg/httputil"
	"github.com/oyaguma3/wallet-session-poc/pkg/logging"
)

const traceIDHeader = "X-Trace-ID"

// unmatchedPath はルート未定義のリクエストに付けるメトリクスラベル
const unmatchedPath = "unmatched"

// TraceIDMiddleware はX-Trace-IDヘッダからトレースIDを取得する。ヘッダがない場合は生成する。
// トレースIDはgin.Contextとリクエストのcontextの両方に設定し、レスポンスヘッダにも返す。
func TraceIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if traceID := c.GetHeader(traceIDHeader); traceID != "" {
			ctx = logging.ContextWithTraceID(ctx, traceID)
		}
		ctx, traceID := logging.EnsureTraceID(ctx)

		c.Request = c.Request.WithContext(ctx)
		c.Set(handler.TraceIDKey, traceID)
		c.Header(traceIDHeader, traceID)
		c.Next()
	}
}

// LoggingMiddleware はリクエストログを出力し、リクエスト数を記録する。
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = unmatchedPath
		}
		metrics.RecordHTTPRequest(c.Request.Method, path, strconv.Itoa(status))

		slog.Info("request completed",
			logging.WithTraceID(c.GetString(handler.TraceIDKey)),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			logging.WithHTTPStatus(status),
			logging.WithLatency(latency.Milliseconds()),
		)
	}
}

// RecoveryMiddleware はパニックからの復旧を行う。
func RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				slog.Error("panic recovered",
					logging.WithTraceID(c.GetString(handler.TraceIDKey)),
					logging.WithEventID("PANIC"),
					slog.Any("error", err),
				)
				httputil.AbortWithError(c, httputil.InternalServerError("an unexpected error occurred"))
			}
		}()
		c.Next()
	}
}
