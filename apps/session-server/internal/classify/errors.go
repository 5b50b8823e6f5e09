package classify

import (
	"fmt"

	"github.com/oyaguma3/wallet-session-poc/pkg/apperr"
)

// ClassifiedError は分類済みのエラーを表す。
// Adapterの境界を越えるエラーはすべてこの型に変換される。
type ClassifiedError struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

func (e *ClassifiedError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Detail)
	}
	return e.Message
}

// Is はKindが一致する場合にtrueを返す。
// errors.Is(err, classify.ErrSigningRejected) の形で種別判定に使う。
func (e *ClassifiedError) Is(target error) bool {
	t, ok := target.(*ClassifiedError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Guidance は利用者向けの対処案内を返す。
func (e *ClassifiedError) Guidance() string {
	return e.Kind.Guidance()
}

// New は指定されたKindのClassifiedErrorを生成する。
func New(kind Kind, detail string) *ClassifiedError {
	if !kind.IsValid() {
		kind = KindUnknown
	}
	return &ClassifiedError{
		Kind:    kind,
		Message: kind.Message(),
		Detail:  detail,
	}
}

// 種別判定用のセンチネル
var (
	ErrNotInstalled    = New(KindNotInstalled, "")
	ErrAccessDenied    = New(KindAccessDenied, "")
	ErrNotAuthorized   = New(KindNotAuthorized, "")
	ErrSigningRejected = New(KindSigningRejected, "")
	ErrNetworkFailure  = New(KindNetworkFailure, "")
	ErrUnknown         = New(KindUnknown, "")
)

// ConfigurationError は未登録のネットワーク名など、プログラム側の設定誤りを表す。
// 利用者起因のエラーではないため分類対象外。
type ConfigurationError struct {
	Name   string
	Reason string
	Cause  error
}

func (e *ConfigurationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("configuration error: %s: %s", e.Name, e.Reason)
	}
	return fmt.Sprintf("configuration error: network %q is not registered", e.Name)
}

// Unwrap は根本原因を返す。
func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}

// NewConfigurationError は未登録ネットワーク名のConfigurationErrorを生成する。
func NewConfigurationError(name string) *ConfigurationError {
	return &ConfigurationError{Name: name, Cause: apperr.ErrNetworkNotRegistered}
}
