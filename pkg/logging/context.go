package logging

import (
	"context"

	"github.com/google/uuid"
)

// traceIDKey はコンテキストからTrace IDを取得するためのキー型
type traceIDKey struct{}

// ContextWithTraceID はコンテキストにTrace IDを設定する。
func ContextWithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, traceID)
}

// TraceIDFromContext はコンテキストのTrace IDを返す。未設定の場合は空文字。
func TraceIDFromContext(ctx context.Context) string {
	traceID, _ := ctx.Value(traceIDKey{}).(string)
	return traceID
}

// EnsureTraceID はTrace IDが未設定の場合に新しいUUIDを設定したコンテキストを返す。
func EnsureTraceID(ctx context.Context) (context.Context, string) {
	if traceID := TraceIDFromContext(ctx); traceID != "" {
		return ctx, traceID
	}
	traceID := uuid.NewString()
	return ContextWithTraceID(ctx, traceID), traceID
}
