package classify

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/sony/gobreaker"
)

// bridgeCoder は拡張機能ブリッジのエラーコードを持つエラー
type bridgeCoder interface {
	BridgeCode() int
}

// httpStatuser はHTTPステータスコードを持つエラー
type httpStatuser interface {
	HTTPStatus() int
}

// transportFailer は通信レベルの失敗を表すエラー
type transportFailer interface {
	TransportFailure() bool
}

// 判定用キーワード（小文字で比較）
var (
	notInstalledKeywords    = []string{"not installed", "not available", "not found", "no extension"}
	accessDeniedKeywords    = []string{"access denied", "connection rejected", "declined access"}
	notAuthorizedKeywords   = []string{"not authorized", "not allowed", "unauthorized"}
	signingRejectedKeywords = []string{"user rejected", "transaction rejected", "declined to sign"}
	networkFailureKeywords  = []string{"network error", "timeout", "connection refused", "fetch failed"}
	genericRejectKeywords   = []string{"rejected", "denied", "declined"}
)

// Classify は操作種別を問わずに失敗を分類する。
func Classify(raw error) *ClassifiedError {
	return ClassifyOp(OpUnknown, raw)
}

// ClassifyOp は失敗を6種別のいずれかに分類する。
// 判定は優先順位順に行い、最初に一致した規則を採用する。
// 既に分類済みの入力はそのまま返す。nilの場合はnilを返す。
func ClassifyOp(op Op, raw error) *ClassifiedError {
	if raw == nil {
		return nil
	}

	var classified *ClassifiedError
	if errors.As(raw, &classified) {
		return classified
	}

	detail := raw.Error()
	msg := strings.ToLower(detail)
	code, hasCode := bridgeCode(raw)

	switch {
	case isNotInstalled(msg, code, hasCode):
		return New(KindNotInstalled, detail)
	case isAccessDenied(op, msg, code, hasCode):
		return New(KindAccessDenied, detail)
	case isNotAuthorized(msg, code, hasCode):
		return New(KindNotAuthorized, detail)
	case isSigningRejected(op, msg, code, hasCode):
		return New(KindSigningRejected, detail)
	case isNetworkFailure(raw, msg, code, hasCode):
		return New(KindNetworkFailure, detail)
	default:
		return New(KindUnknown, detail)
	}
}

func isNotInstalled(msg string, code int, hasCode bool) bool {
	if hasCode && code == CodeUnavailable {
		return true
	}
	return containsAny(msg, notInstalledKeywords)
}

func isAccessDenied(op Op, msg string, code int, hasCode bool) bool {
	if containsAny(msg, accessDeniedKeywords) {
		return true
	}
	if op != OpAccess {
		return false
	}
	if hasCode && code == CodeUserDeclined {
		return true
	}
	return containsAny(msg, genericRejectKeywords)
}

func isNotAuthorized(msg string, code int, hasCode bool) bool {
	if hasCode && code == CodeNotAllowed {
		return true
	}
	return containsAny(msg, notAuthorizedKeywords)
}

func isSigningRejected(op Op, msg string, code int, hasCode bool) bool {
	if hasCode && code == CodeUserDeclined {
		return true
	}
	if containsAny(msg, signingRejectedKeywords) {
		return true
	}
	return op == OpSign && containsAny(msg, genericRejectKeywords)
}

func isNetworkFailure(raw error, msg string, code int, hasCode bool) bool {
	if hasCode && code == CodeExternalService {
		return true
	}

	var tf transportFailer
	if errors.As(raw, &tf) && tf.TransportFailure() {
		return true
	}
	if errors.Is(raw, gobreaker.ErrOpenState) || errors.Is(raw, gobreaker.ErrTooManyRequests) {
		return true
	}
	if errors.Is(raw, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(raw, &netErr) {
		return true
	}
	var hs httpStatuser
	if errors.As(raw, &hs) && hs.HTTPStatus() >= 500 {
		return true
	}

	return containsAny(msg, networkFailureKeywords)
}

func bridgeCode(err error) (int, bool) {
	var bc bridgeCoder
	if errors.As(err, &bc) {
		return bc.BridgeCode(), true
	}
	return 0, false
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
