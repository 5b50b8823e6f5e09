package handler

import (
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/classify"
	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/session"
	"github.com/oyaguma3/wallet-session-poc/pkg/apperr"
	"github.com/oyaguma3/wallet-session-poc/pkg/httputil"
	"github.com/oyaguma3/wallet-session-poc/pkg/logging"
)

// イベントID
const (
	EventIDAPIError      = "API_ERR"
	EventIDBadRequest    = "API_BAD_REQUEST"
	EventIDExtensionPush = "EXTENSION_PUSH"
)

// KindConfiguration は設定誤りを表すProblemDetailの種別
const KindConfiguration = "CONFIGURATION"

// problemFor はエラーをHTTPレスポンスに変換する。
func problemFor(err error) *httputil.ProblemDetail {
	var ce *classify.ClassifiedError
	if errors.As(err, &ce) {
		return classifiedProblem(ce)
	}

	var cfgErr *classify.ConfigurationError
	if errors.As(err, &cfgErr) {
		return httputil.BadRequest(cfgErr.Error()).WithKind(KindConfiguration)
	}

	var validationErr *apperr.ValidationError
	if errors.As(err, &validationErr) {
		return httputil.BadRequest(validationErr.Error())
	}

	if errors.Is(err, apperr.ErrAccountNotFound) {
		return httputil.NotFound("account not found on ledger")
	}

	var backendErr *apperr.BackendError
	if errors.As(err, &backendErr) {
		return httputil.BadGateway("failed to query ledger")
	}

	switch {
	case errors.Is(err, session.ErrNotInitialized):
		return httputil.ServiceUnavailable("session is not initialized")
	case errors.Is(err, session.ErrInvalidTransition):
		return httputil.Conflict("operation is not allowed in the current session state")
	}

	return httputil.InternalServerError("an unexpected error occurred")
}

// classifiedProblem は分類済みエラーのKindからステータスを決める。
func classifiedProblem(ce *classify.ClassifiedError) *httputil.ProblemDetail {
	detail := ce.Error()
	if g := ce.Guidance(); g != "" {
		detail += " (" + g + ")"
	}

	var p *httputil.ProblemDetail
	switch ce.Kind {
	case classify.KindNotInstalled:
		p = httputil.FailedDependency(detail)
	case classify.KindAccessDenied:
		p = httputil.Forbidden(detail)
	case classify.KindNotAuthorized:
		p = httputil.Unauthorized(detail)
	case classify.KindSigningRejected:
		p = httputil.Conflict(detail)
	case classify.KindNetworkFailure:
		p = httputil.BadGateway(detail)
	default:
		p = httputil.InternalServerError(detail)
	}
	return p.WithKind(string(ce.Kind))
}

// writeError はエラーをログに残してProblemDetailを返す。
func (h *Handler) writeError(c *gin.Context, msg string, err error) {
	problem := problemFor(err)
	level := slog.LevelWarn
	if problem.Status >= 500 {
		level = slog.LevelError
	}
	slog.Log(c.Request.Context(), level, msg,
		logging.WithTraceID(traceIDOf(c)),
		logging.WithEventID(EventIDAPIError),
		logging.WithHTTPStatus(problem.Status),
		slog.String(logging.FieldErrorKind, problem.Kind),
		logging.WithError(err),
	)
	httputil.WriteError(c, problem)
}

// writeBadRequest はリクエストボディの不備を400で返す。
func (h *Handler) writeBadRequest(c *gin.Context, detail string, err error) {
	slog.Warn("invalid request body",
		logging.WithTraceID(traceIDOf(c)),
		logging.WithEventID(EventIDBadRequest),
		logging.WithError(err),
	)
	httputil.WriteError(c, httputil.BadRequest(detail))
}
