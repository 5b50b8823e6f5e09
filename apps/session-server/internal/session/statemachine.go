package session

// State はセッションの状態を表す型
type State string

// セッション状態の定数（4状態）
const (
	StateUninitialized State = "UNINITIALIZED" // 起動直後
	StateChecking      State = "CHECKING"      // キャッシュ読み取り・可用性確認中
	StateDisconnected  State = "DISCONNECTED"  // 未接続（定常状態）
	StateConnected     State = "CONNECTED"     // 接続済み（定常状態）
)

// Event はセッションの状態遷移イベントを表す型
type Event string

// セッションイベントの定数（9イベント）
const (
	EventInitialize         Event = "INITIALIZE"          // 起動時の確認開始
	EventProbeConnected     Event = "PROBE_CONNECTED"     // 照合の結果、接続済み・許可済み
	EventProbeDisconnected  Event = "PROBE_DISCONNECTED"  // 照合の結果、未接続
	EventConnectOK          Event = "CONNECT_OK"          // connect()成功
	EventConnectFailed      Event = "CONNECT_FAILED"      // connect()失敗
	EventDisconnect         Event = "DISCONNECT"          // disconnect()
	EventSwitchNetwork      Event = "SWITCH_NETWORK"      // switchNetwork()
	EventExternalIdentity   Event = "EXTERNAL_IDENTITY"   // 拡張機能側でアカウント/ネットワークが変更された
	EventExternalDisconnect Event = "EXTERNAL_DISCONNECT" // 拡張機能側で接続が失われた
)

// transitionTable はセッション状態遷移テーブル。終了状態はない。
var transitionTable = map[State]map[Event]State{
	StateUninitialized: {
		EventInitialize: StateChecking,
	},
	StateChecking: {
		EventProbeConnected:    StateConnected,
		EventProbeDisconnected: StateDisconnected,
	},
	StateDisconnected: {
		EventConnectOK:         StateConnected,
		EventConnectFailed:     StateDisconnected,
		EventDisconnect:        StateDisconnected,
		EventSwitchNetwork:     StateDisconnected,
		EventProbeConnected:    StateConnected,
		EventProbeDisconnected: StateDisconnected,
	},
	StateConnected: {
		EventDisconnect:         StateDisconnected,
		EventSwitchNetwork:      StateConnected,
		EventExternalIdentity:   StateConnected,
		EventExternalDisconnect: StateDisconnected,
		EventProbeConnected:     StateConnected,
		EventProbeDisconnected:  StateDisconnected,
	},
}

// ValidateTransition は現在の状態とイベントから次の状態を返す。
// 無効な遷移の場合はErrInvalidTransitionを返す。
func ValidateTransition(current State, event Event) (State, error) {
	events, ok := transitionTable[current]
	if !ok {
		return "", ErrInvalidTransition
	}

	next, ok := events[event]
	if !ok {
		return "", ErrInvalidTransition
	}

	return next, nil
}

// IsSteady は指定された状態が定常状態（DISCONNECTED/CONNECTED）かどうかを判定する。
func IsSteady(state State) bool {
	return state == StateDisconnected || state == StateConnected
}

// validStates は有効なState一覧
var validStates = map[State]struct{}{
	StateUninitialized: {},
	StateChecking:      {},
	StateDisconnected:  {},
	StateConnected:     {},
}

// IsValidState は文字列が有効なStateかどうかを判定する。
func IsValidState(s string) bool {
	_, ok := validStates[State(s)]
	return ok
}
