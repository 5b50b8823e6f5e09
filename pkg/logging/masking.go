// Package logging はログ関連のユーティリティを提供する。
package logging

// MaskIdentity はウォレットの公開鍵（Identifier）をマスキングする。
// 先頭6文字 + マスク + 末尾4文字
// 例: GAAZI4TCR3TY5OJHCTJC2A4QSY6CJWJH5IAJTGKIN2ER7LBNVKOCCWN7 → GAAZI4**********************************************CWN7
// enabled=false の場合はマスキングせずにそのまま返す。
func MaskIdentity(identity string, enabled bool) string {
	if !enabled {
		return identity
	}
	return MaskPartial(identity, 6, 4, '*')
}

// MaskPartial は文字列の一部をマスキングする。
// keepPrefix: 先頭から保持する文字数
// keepSuffix: 末尾から保持する文字数
// maskChar: マスキングに使用する文字
func MaskPartial(s string, keepPrefix, keepSuffix int, maskChar rune) string {
	runes := []rune(s)
	length := len(runes)

	// 文字列が短すぎる場合はそのまま返す
	if length <= keepPrefix+keepSuffix {
		return s
	}

	result := make([]rune, length)
	copy(result[:keepPrefix], runes[:keepPrefix])
	for i := keepPrefix; i < length-keepSuffix; i++ {
		result[i] = maskChar
	}
	copy(result[length-keepSuffix:], runes[length-keepSuffix:])

	return string(result)
}

// Masker はマスキング設定を保持する構造体。
type Masker struct {
	enabled bool
}

// NewMasker は新しいMaskerを生成する。
func NewMasker(enabled bool) *Masker {
	return &Masker{enabled: enabled}
}

// Identity は公開鍵をマスキングする。
func (m *Masker) Identity(identity string) string {
	return MaskIdentity(identity, m.enabled)
}

// IsEnabled はマスキングが有効かどうかを返す。
func (m *Masker) IsEnabled() bool {
	return m.enabled
}
