// Package session はウォレットセッションの唯一の正となる状態を保持し、照合する。
package session

import (
	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/classify"
	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/extension"
	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/network"
)

// Availability は拡張機能の可用性（3値）
type Availability string

// 可用性の定数
const (
	AvailabilityUnknown     Availability = "unknown"
	AvailabilityAvailable   Availability = "available"
	AvailabilityUnavailable Availability = "unavailable"
)

func availabilityOf(available bool) Availability {
	if available {
		return AvailabilityAvailable
	}
	return AvailabilityUnavailable
}

// Session はセッション状態のスナップショット。値として受け渡す。
type Session struct {
	State        State
	Identity     extension.Identifier
	Network      network.Name
	Availability Availability
	Source       extension.Source

	// CachedIdentity は確認中（CHECKING）にのみ設定されるキャッシュ由来のヒント。
	// 検証前の値であり、接続済みを意味しない。
	CachedIdentity extension.Identifier

	// LastError は直近の操作が失敗した場合の分類済みエラー
	LastError *classify.ClassifiedError
}

// Connected は公開鍵が存在する場合にtrueを返す。
func (s Session) Connected() bool {
	return s.Identity != ""
}

// initialSession は起動直後の値を返す。
func initialSession(defaultNetwork network.Name) Session {
	return Session{
		State:        StateUninitialized,
		Network:      defaultNetwork,
		Availability: AvailabilityUnknown,
	}
}
