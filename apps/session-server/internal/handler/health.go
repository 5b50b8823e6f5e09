package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oyaguma3/wallet-session-poc/pkg/logging"
)

// HandleHealth はGET /health のハンドラー。
// Valkeyに到達できない場合も503は返さない。セッションはキャッシュなしで動作を継続できる。
func (h *Handler) HandleHealth(c *gin.Context) {
	resp := healthResponse{Status: "ok"}
	if h.health != nil {
		if err := h.health(c.Request.Context()); err != nil {
			slog.Warn("cache health check failed",
				logging.WithTraceID(traceIDOf(c)),
				logging.WithEventID(EventIDAPIError),
				logging.WithError(err),
			)
			resp.Status = "degraded"
			resp.Cache = "unreachable"
		} else {
			resp.Cache = "ok"
		}
	}
	c.JSON(http.StatusOK, resp)
}
