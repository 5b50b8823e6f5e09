package handler

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/extension"
	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/session"
	"github.com/oyaguma3/wallet-session-poc/pkg/apperr"
	"github.com/oyaguma3/wallet-session-poc/pkg/httputil"
	"github.com/oyaguma3/wallet-session-poc/pkg/logging"
)

// sseEventSession はSSEで送るイベント名
const sseEventSession = "session"

// sseBufferSize は購読者ごとの送信待ちスナップショット数
const sseBufferSize = 8

// HandleSessionEvents はGET /api/v1/session/events のハンドラー。
// 接続直後に現在のセッションを送り、以降は変化のたびにスナップショットを送る。
// 送信が追いつかない場合は古いスナップショットを捨て、最新のものを優先する。
func (h *Handler) HandleSessionEvents(c *gin.Context) {
	updates := make(chan session.Session, sseBufferSize)
	unsubscribe := h.sessions.Subscribe(func(s session.Session) {
		for {
			select {
			case updates <- s:
				return
			default:
			}
			select {
			case <-updates:
			default:
			}
		}
	})
	defer unsubscribe()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	c.SSEvent(sseEventSession, newSessionResponse(h.sessions.Current()))
	c.Writer.Flush()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case s := <-updates:
			c.SSEvent(sseEventSession, newSessionResponse(s))
			return true
		}
	})
}

// HandleExtensionEvent はPOST /api/v1/extension/events のハンドラー。
// 拡張機能ブリッジが接続状態の変化をプッシュするための受け口。
func (h *Handler) HandleExtensionEvent(c *gin.Context) {
	if h.publisher == nil {
		httputil.WriteError(c, httputil.NotFound("push notifications are not enabled"))
		return
	}

	var req extensionEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBadRequest(c, "invalid change notification", err)
		return
	}
	if req.Connected && req.Address == "" {
		h.writeError(c, "invalid change notification",
			apperr.NewValidationError("address", "must not be empty when connected"))
		return
	}

	delivered := h.publisher.Publish(extension.Change{
		Connected:  req.Connected,
		Identity:   extension.Identifier(req.Address),
		Network:    req.Network,
		ObservedAt: req.ObservedAt,
	})

	slog.Debug("extension change received",
		logging.WithTraceID(traceIDOf(c)),
		logging.WithEventID(EventIDExtensionPush),
		slog.Bool("connected", req.Connected),
		h.fields.WithIdentity(req.Address),
		slog.Int("delivered", delivered),
	)
	c.JSON(http.StatusAccepted, extensionEventResponse{Delivered: delivered})
}
