package extension

// HTTPヘッダ名
const (
	HeaderTraceID     = "X-Trace-ID"
	HeaderContentType = "Content-Type"
)

// Content-Type
const (
	ContentTypeJSON = "application/json"
)

// 拡張機能ブリッジのパス
const (
	PathStatus          = "/api/v1/extension/status"
	PathAccess          = "/api/v1/extension/access"
	PathAllowed         = "/api/v1/extension/allowed"
	PathAddress         = "/api/v1/extension/address"
	PathNetwork         = "/api/v1/extension/network"
	PathSignTransaction = "/api/v1/extension/sign/transaction"
	PathSignMessage     = "/api/v1/extension/sign/message"
)

// フォールバック（旧来の注入API）のパス
const (
	PathLegacyAllowed         = "/api/v1/legacy/allowed"
	PathLegacyAccess          = "/api/v1/legacy/access"
	PathLegacyPublicKey       = "/api/v1/legacy/public-key"
	PathLegacySignTransaction = "/api/v1/legacy/sign/transaction"
)

// メトリクス・ログ用の操作名
const (
	opProbe           = "probe"
	opRequestAccess   = "request_access"
	opCheckAuthorized = "check_authorized"
	opGrantStanding   = "grant_standing"
	opReadIdentity    = "read_identity"
	opReadNetwork     = "read_network"
	opAlignNetwork    = "align_network"
	opSignTransaction = "sign_transaction"
	opSignMessage     = "sign_message"
)
