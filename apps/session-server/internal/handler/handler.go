// Package handler はウォレットセッションAPIのHTTPリクエストハンドラーを提供する。
package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/classify"
	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/extension"
	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/ledger"
	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/network"
	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/session"
	"github.com/oyaguma3/wallet-session-poc/pkg/httputil"
	"github.com/oyaguma3/wallet-session-poc/pkg/logging"
)

// TraceIDKey はgin.ContextにTraceIDを格納するキー。
const TraceIDKey = httputil.TraceIDKey

// SessionService はハンドラーが使うセッション操作
type SessionService interface {
	Current() session.Session
	Connect(ctx context.Context) (extension.Identifier, error)
	Disconnect(ctx context.Context) error
	Refresh(ctx context.Context) error
	SwitchNetwork(ctx context.Context, name network.Name) (*classify.ClassifiedError, error)
	SignTransaction(ctx context.Context, payload string) (extension.SignedPayload, error)
	SignMessage(ctx context.Context, payload string) (extension.SignedPayload, error)
	Subscribe(listener func(session.Session)) (unsubscribe func())
}

// LedgerService はレジャー照会操作
type LedgerService interface {
	Balance(ctx context.Context, cfg network.Config, address string) (*ledger.Balance, error)
	Fund(ctx context.Context, cfg network.Config, address string) (*ledger.FundResult, error)
}

// ChangePublisher は拡張機能ブリッジから送られた変化通知の配信先
type ChangePublisher interface {
	Publish(change extension.Change) int
}

// HealthFunc は依存サービスの疎通確認
type HealthFunc func(ctx context.Context) error

// Dependencies はHandlerの依存関係
type Dependencies struct {
	Sessions  SessionService
	Registry  *network.Registry
	Ledger    LedgerService
	Publisher ChangePublisher // プッシュ型の変化通知を使わない場合はnil
	Health    HealthFunc      // nilの場合は常に正常
	Fields    *logging.CommonFields
}

// Handler はウォレットセッションAPIのハンドラー。
type Handler struct {
	sessions  SessionService
	registry  *network.Registry
	ledger    LedgerService
	publisher ChangePublisher
	health    HealthFunc
	fields    *logging.CommonFields
}

// NewHandler は新しいHandlerを生成する。
func NewHandler(deps Dependencies) *Handler {
	fields := deps.Fields
	if fields == nil {
		fields = logging.NewCommonFields(nil)
	}
	return &Handler{
		sessions:  deps.Sessions,
		registry:  deps.Registry,
		ledger:    deps.Ledger,
		publisher: deps.Publisher,
		health:    deps.Health,
		fields:    fields,
	}
}

// traceIDOf はミドルウェアが設定したTraceIDを返す。
func traceIDOf(c *gin.Context) string {
	return c.GetString(TraceIDKey)
}

// requestContext はTraceIDを引き継いだリクエストのcontextを返す。
func requestContext(c *gin.Context) context.Context {
	ctx := c.Request.Context()
	if logging.TraceIDFromContext(ctx) == "" {
		if traceID := traceIDOf(c); traceID != "" {
			ctx = logging.ContextWithTraceID(ctx, traceID)
		}
	}
	return ctx
}
