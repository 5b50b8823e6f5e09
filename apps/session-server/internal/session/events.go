package session

// ログのevent_id
const (
	EventIDChecking          = "SESSION_CHECKING"
	EventIDConnected         = "SESSION_CONNECTED"
	EventIDConnectFailed     = "SESSION_CONNECT_FAILED"
	EventIDDisconnected      = "SESSION_DISCONNECTED"
	EventIDIdentityChanged   = "SESSION_IDENTITY_CHANGED"
	EventIDNetworkSwitched   = "SESSION_NETWORK_SWITCHED"
	EventIDNetworkMisaligned = "SESSION_NETWORK_MISALIGNED"
	EventIDNetworkUnresolved = "SESSION_NETWORK_UNRESOLVED"
	EventIDReconcileErr      = "SESSION_RECONCILE_ERR"
	EventIDSignFailed        = "SESSION_SIGN_FAILED"
	EventIDCacheReadErr      = "CACHE_READ_ERR"
	EventIDCacheWriteErr     = "CACHE_WRITE_ERR"
)
