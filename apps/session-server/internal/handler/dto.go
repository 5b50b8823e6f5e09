package handler

import (
	"time"

	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/classify"
	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/network"
	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/session"
)

// healthResponse はヘルスチェックレスポンスを表す。
type healthResponse struct {
	Status string `json:"status"`
	Cache  string `json:"cache,omitempty"`
}

// errorResponse は分類済みエラーの表現
type errorResponse struct {
	Kind     classify.Kind `json:"kind"`
	Message  string        `json:"message"`
	Detail   string        `json:"detail,omitempty"`
	Guidance string        `json:"guidance,omitempty"`
}

func newErrorResponse(ce *classify.ClassifiedError) *errorResponse {
	if ce == nil {
		return nil
	}
	return &errorResponse{
		Kind:     ce.Kind,
		Message:  ce.Message,
		Detail:   ce.Detail,
		Guidance: ce.Guidance(),
	}
}

// sessionResponse はセッションのスナップショット
type sessionResponse struct {
	State          session.State  `json:"state"`
	Connected      bool           `json:"connected"`
	Identity       string         `json:"identity,omitempty"`
	Network        network.Name   `json:"network"`
	Availability   string         `json:"availability"`
	Source         string         `json:"source,omitempty"`
	CachedIdentity string         `json:"cachedIdentity,omitempty"`
	LastError      *errorResponse `json:"lastError,omitempty"`
}

func newSessionResponse(s session.Session) sessionResponse {
	return sessionResponse{
		State:          s.State,
		Connected:      s.Connected(),
		Identity:       string(s.Identity),
		Network:        s.Network,
		Availability:   string(s.Availability),
		Source:         string(s.Source),
		CachedIdentity: string(s.CachedIdentity),
		LastError:      newErrorResponse(s.LastError),
	}
}

// connectResponse はPOST /session/connect のレスポンス
type connectResponse struct {
	Identity string          `json:"identity"`
	Session  sessionResponse `json:"session"`
}

// switchNetworkRequest はPUT /session/network のリクエスト
type switchNetworkRequest struct {
	Network string `json:"network" binding:"required"`
}

// switchNetworkResponse はPUT /session/network のレスポンス
type switchNetworkResponse struct {
	Session sessionResponse `json:"session"`
	Warning *errorResponse  `json:"warning,omitempty"`
}

// signTransactionRequest はPOST /session/sign/transaction のリクエスト
type signTransactionRequest struct {
	XDR string `json:"xdr" binding:"required"`
}

// signMessageRequest はPOST /session/sign/message のリクエスト
type signMessageRequest struct {
	Message string `json:"message" binding:"required"`
}

// signResponse は署名結果
type signResponse struct {
	Signed  string       `json:"signed"`
	Signer  string       `json:"signer,omitempty"`
	Network network.Name `json:"network"`
}

// networksResponse はGET /networks のレスポンス
type networksResponse struct {
	Default  network.Name     `json:"default"`
	Networks []network.Config `json:"networks"`
}

// extensionEventRequest はPOST /extension/events のリクエスト
type extensionEventRequest struct {
	Connected  bool      `json:"connected"`
	Address    string    `json:"address"`
	Network    string    `json:"network"`
	ObservedAt time.Time `json:"observedAt"`
}

// extensionEventResponse はPOST /extension/events のレスポンス
type extensionEventResponse struct {
	Delivered int `json:"delivered"`
}
