package server

import (
	"github.com/gin-gonic/gin"
	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/handler"
	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/metrics"
)

// SetupRouter はルーティングを設定する。
func SetupRouter(engine *gin.Engine, h *handler.Handler) {
	// ヘルスチェック・メトリクス
	engine.GET("/health", h.HandleHealth)
	engine.GET("/metrics", gin.WrapH(metrics.Handler()))

	// API v1
	v1 := engine.Group("/api/v1")
	{
		v1.GET("/networks", h.HandleNetworks)

		sess := v1.Group("/session")
		{
			sess.GET("", h.HandleGetSession)
			sess.GET("/events", h.HandleSessionEvents)
			sess.POST("/connect", h.HandleConnect)
			sess.POST("/disconnect", h.HandleDisconnect)
			sess.POST("/refresh", h.HandleRefresh)
			sess.PUT("/network", h.HandleSwitchNetwork)
			sess.POST("/sign/transaction", h.HandleSignTransaction)
			sess.POST("/sign/message", h.HandleSignMessage)
			sess.GET("/balance", h.HandleBalance)
			sess.POST("/fund", h.HandleFund)
		}

		v1.POST("/extension/events", h.HandleExtensionEvent)
	}
}
