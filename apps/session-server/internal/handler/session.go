package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/network"
)

// HandleNetworks はGET /api/v1/networks のハンドラー。
func (h *Handler) HandleNetworks(c *gin.Context) {
	c.JSON(http.StatusOK, networksResponse{
		Default:  h.registry.Default(),
		Networks: h.registry.Configs(),
	})
}

// HandleGetSession はGET /api/v1/session のハンドラー。
func (h *Handler) HandleGetSession(c *gin.Context) {
	c.JSON(http.StatusOK, newSessionResponse(h.sessions.Current()))
}

// HandleConnect はPOST /api/v1/session/connect のハンドラー。
// ユーザーの承認待ちの間ブロックする。
func (h *Handler) HandleConnect(c *gin.Context) {
	identity, err := h.sessions.Connect(requestContext(c))
	if err != nil {
		h.writeError(c, "connect failed", err)
		return
	}
	c.JSON(http.StatusOK, connectResponse{
		Identity: string(identity),
		Session:  newSessionResponse(h.sessions.Current()),
	})
}

// HandleDisconnect はPOST /api/v1/session/disconnect のハンドラー。
func (h *Handler) HandleDisconnect(c *gin.Context) {
	if err := h.sessions.Disconnect(requestContext(c)); err != nil {
		h.writeError(c, "disconnect failed", err)
		return
	}
	c.JSON(http.StatusOK, newSessionResponse(h.sessions.Current()))
}

// HandleRefresh はPOST /api/v1/session/refresh のハンドラー。
func (h *Handler) HandleRefresh(c *gin.Context) {
	if err := h.sessions.Refresh(requestContext(c)); err != nil {
		h.writeError(c, "refresh failed", err)
		return
	}
	c.JSON(http.StatusOK, newSessionResponse(h.sessions.Current()))
}

// HandleSwitchNetwork はPUT /api/v1/session/network のハンドラー。
// 拡張機能側の切替に失敗してもローカルの切替は成功として200を返し、warningに失敗内容を載せる。
func (h *Handler) HandleSwitchNetwork(c *gin.Context) {
	var req switchNetworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBadRequest(c, "network is required", err)
		return
	}

	warning, err := h.sessions.SwitchNetwork(requestContext(c), network.Name(req.Network))
	if err != nil {
		h.writeError(c, "switch network failed", err)
		return
	}
	c.JSON(http.StatusOK, switchNetworkResponse{
		Session: newSessionResponse(h.sessions.Current()),
		Warning: newErrorResponse(warning),
	})
}
