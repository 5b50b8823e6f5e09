package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/classify"
	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/network"
	"github.com/oyaguma3/wallet-session-poc/pkg/apperr"
)

// HandleBalance はGET /api/v1/session/balance のハンドラー。
// 接続中のidentityの残高を、セッションの現在のネットワークで照会する。
func (h *Handler) HandleBalance(c *gin.Context) {
	address, cfg, ok := h.connectedAccount(c)
	if !ok {
		return
	}
	balance, err := h.ledger.Balance(requestContext(c), cfg, address)
	if err != nil {
		h.writeError(c, "balance query failed", err)
		return
	}
	c.JSON(http.StatusOK, balance)
}

// HandleFund はPOST /api/v1/session/fund のハンドラー。
// 資金供給エンドポイントを持たないネットワークでは400を返す。
func (h *Handler) HandleFund(c *gin.Context) {
	address, cfg, ok := h.connectedAccount(c)
	if !ok {
		return
	}
	result, err := h.ledger.Fund(requestContext(c), cfg, address)
	if err != nil {
		h.writeError(c, "fund request failed", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// connectedAccount は接続中のidentityと現在のネットワーク設定を返す。
// 未接続の場合はエラーレスポンスを書き込みfalseを返す。
func (h *Handler) connectedAccount(c *gin.Context) (string, network.Config, bool) {
	current := h.sessions.Current()
	if !current.Connected() {
		h.writeError(c, "ledger query rejected",
			classify.New(classify.KindNotAuthorized, apperr.ErrSessionNotConnected.Error()))
		return "", network.Config{}, false
	}
	cfg, err := h.registry.Get(current.Network)
	if err != nil {
		h.writeError(c, "ledger query rejected", err)
		return "", network.Config{}, false
	}
	return string(current.Identity), cfg, true
}
