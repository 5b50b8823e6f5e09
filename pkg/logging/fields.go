package logging

import "log/slog"

// ログフィールド名の定数
const (
	FieldTraceID    = "trace_id"
	FieldEventID    = "event_id"
	FieldError      = "error"
	FieldErrorKind  = "error_kind"
	FieldLatencyMs  = "latency_ms"
	FieldHTTPStatus = "http_status"
	FieldIdentity   = "identity"
	FieldNetwork    = "network"
	FieldState      = "state"
)

// WithTraceID はトレースIDのslog.Attrを返す。
func WithTraceID(traceID string) slog.Attr {
	return slog.String(FieldTraceID, traceID)
}

// WithEventID はイベントIDのslog.Attrを返す。
func WithEventID(eventID string) slog.Attr {
	return slog.String(FieldEventID, eventID)
}

// WithError はエラーのslog.Attrを返す。
func WithError(err error) slog.Attr {
	if err == nil {
		return slog.String(FieldError, "")
	}
	return slog.String(FieldError, err.Error())
}

// WithLatency はレイテンシ（ミリ秒）のslog.Attrを返す。
func WithLatency(ms int64) slog.Attr {
	return slog.Int64(FieldLatencyMs, ms)
}

// WithHTTPStatus はHTTPステータスコードのslog.Attrを返す。
func WithHTTPStatus(status int) slog.Attr {
	return slog.Int(FieldHTTPStatus, status)
}

// WithNetwork はネットワーク名のslog.Attrを返す。
func WithNetwork(network string) slog.Attr {
	return slog.String(FieldNetwork, network)
}

// CommonFields はマスキング設定を保持するログフィールド生成器。
type CommonFields struct {
	masker *Masker
}

// NewCommonFields は新しいCommonFieldsを生成する。
func NewCommonFields(masker *Masker) *CommonFields {
	if masker == nil {
		masker = NewMasker(false)
	}
	return &CommonFields{masker: masker}
}

// WithIdentity はマスキングされた公開鍵のslog.Attrを返す。
func (cf *CommonFields) WithIdentity(identity string) slog.Attr {
	return slog.String(FieldIdentity, cf.masker.Identity(identity))
}

// SessionLogFields はセッションログ用の共通フィールドを返す。
func (cf *CommonFields) SessionLogFields(eventID, identity, network string) []any {
	return []any{
		WithEventID(eventID),
		cf.WithIdentity(identity),
		WithNetwork(network),
	}
}
