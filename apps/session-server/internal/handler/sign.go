package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/extension"
)

// HandleSignTransaction はPOST /api/v1/session/sign/transaction のハンドラー。
func (h *Handler) HandleSignTransaction(c *gin.Context) {
	var req signTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBadRequest(c, "xdr is required", err)
		return
	}
	h.sign(c, req.XDR, h.sessions.SignTransaction)
}

// HandleSignMessage はPOST /api/v1/session/sign/message のハンドラー。
func (h *Handler) HandleSignMessage(c *gin.Context) {
	var req signMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBadRequest(c, "message is required", err)
		return
	}
	h.sign(c, req.Message, h.sessions.SignMessage)
}

func (h *Handler) sign(c *gin.Context, payload string, fn func(context.Context, string) (extension.SignedPayload, error)) {
	signed, err := fn(requestContext(c), payload)
	if err != nil {
		h.writeError(c, "sign failed", err)
		return
	}
	c.JSON(http.StatusOK, signResponse{
		Signed:  signed.Payload,
		Signer:  string(signed.Signer),
		Network: signed.Network,
	})
}
