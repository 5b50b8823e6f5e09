// Package cache はウォレットセッションの永続キャッシュ（Valkey）を提供する。
package cache

import (
	"fmt"
	"strings"
)

// ハッシュのフィールド名
const (
	FieldConnected = "freighter_connected"
	FieldIdentity  = "freighter_public_key"
	FieldNetwork   = "freighter_network"
)

// valueTrue は接続済みフラグの値
const valueTrue = "true"

// Entry はキャッシュされたセッション情報
type Entry struct {
	Identity string
	Network  string
}

// toFields はEntryをハッシュのフィールドに変換する。
func (e Entry) toFields() map[string]any {
	return map[string]any{
		FieldConnected: valueTrue,
		FieldIdentity:  e.Identity,
		FieldNetwork:   e.Network,
	}
}

// entryFromFields はハッシュのフィールドからEntryを復元する。
// 接続済みフラグがない、または公開鍵が空の場合はErrInvalidEntryを返す。
func entryFromFields(m map[string]string) (*Entry, error) {
	if m[FieldConnected] != valueTrue {
		return nil, fmt.Errorf("%w: %s is not set", ErrInvalidEntry, FieldConnected)
	}
	identity := strings.TrimSpace(m[FieldIdentity])
	if identity == "" {
		return nil, fmt.Errorf("%w: %s is empty", ErrInvalidEntry, FieldIdentity)
	}
	return &Entry{
		Identity: identity,
		Network:  strings.TrimSpace(m[FieldNetwork]),
	}, nil
}

// Key はプロファイルIDに対応するキャッシュキーを返す。
func Key(prefix, profileID string) string {
	return prefix + profileID
}
