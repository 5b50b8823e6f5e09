// Package classify はウォレット拡張機能由来の失敗を閉じたエラー分類に変換する。
package classify

// Kind はエラー分類を表す型
type Kind string

// エラー分類の定数（6種別）
const (
	KindNotInstalled    Kind = "NOT_INSTALLED"    // 拡張機能が存在しない・検出失敗
	KindAccessDenied    Kind = "ACCESS_DENIED"    // アクセス要求をユーザーが拒否
	KindNotAuthorized   Kind = "NOT_AUTHORIZED"   // アプリケーションが未許可
	KindSigningRejected Kind = "SIGNING_REJECTED" // 署名要求をユーザーが拒否
	KindNetworkFailure  Kind = "NETWORK_FAILURE"  // 拡張機能またはバックエンドへの通信失敗
	KindUnknown         Kind = "UNKNOWN"          // 上記以外
)

// validKinds は有効なKindの集合
var validKinds = map[Kind]bool{
	KindNotInstalled:    true,
	KindAccessDenied:    true,
	KindNotAuthorized:   true,
	KindSigningRejected: true,
	KindNetworkFailure:  true,
	KindUnknown:         true,
}

// IsValid はKindが定義済みの値かどうかを返す。
func (k Kind) IsValid() bool {
	return validKinds[k]
}

// Op は失敗が発生した操作の種類を表す。
// 「rejected」「denied」のような汎用的な文言を、操作に応じてAccessDenied/SigningRejectedに振り分けるために使う。
type Op int

// 操作種別の定数
const (
	OpUnknown Op = iota
	OpProbe
	OpAccess
	OpRead
	OpSign
)

func (o Op) String() string {
	switch o {
	case OpProbe:
		return "probe"
	case OpAccess:
		return "access"
	case OpRead:
		return "read"
	case OpSign:
		return "sign"
	default:
		return "unknown"
	}
}

// 拡張機能ブリッジのエラーコード
const (
	CodeInternal        = -1 // 拡張機能内部エラー
	CodeExternalService = -2 // 外部サービスエラー
	CodeUnavailable     = -3 // 拡張機能が利用不可
	CodeUserDeclined    = -4 // ユーザーが拒否
	CodeNotAllowed      = -5 // アプリケーション未許可
)

// InstallURL は拡張機能のインストール案内先
const InstallURL = "https://www.freighter.app/"

type kindText struct {
	message  string
	guidance string
}

// kindTexts はKindごとの利用者向けメッセージと対処案内
var kindTexts = map[Kind]kindText{
	KindNotInstalled: {
		message:  "wallet extension not found",
		guidance: "Install the wallet extension from " + InstallURL + " and reload.",
	},
	KindAccessDenied: {
		message:  "connection request rejected",
		guidance: "Approve the connection request in the wallet extension.",
	},
	KindNotAuthorized: {
		message:  "wallet access not authorized",
		guidance: "Connect the wallet to authorize this application.",
	},
	KindSigningRejected: {
		message:  "signing request rejected",
		guidance: "The request was declined in the wallet extension.",
	},
	KindNetworkFailure: {
		message:  "wallet network failure",
		guidance: "Check the connection and retry.",
	},
	KindUnknown: {
		message:  "unexpected wallet error",
		guidance: "",
	},
}

// Message はKindの既定メッセージを返す。
func (k Kind) Message() string {
	return kindTexts[k].message
}

// Guidance はKindに応じた利用者向けの対処案内を返す。
func (k Kind) Guidance() string {
	return kindTexts[k].guidance
}
