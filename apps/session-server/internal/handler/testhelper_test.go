package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/classify"
	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/extension"
	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/ledger"
	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/network"
	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testIdentity = "GABCAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAXYZ"

// fakeSessions はテスト用のSessionService。
type fakeSessions struct {
	mu        sync.Mutex
	current   session.Session
	listeners map[int]func(session.Session)
	nextID    int

	connectErr error
	switchWarn *classify.ClassifiedError
	switchErr  error
	signErr    error
	signed     extension.SignedPayload
	// signNetwork が設定されている場合、署名の直前にセッションのネットワークを切り替える
	signNetwork network.Name

	lastPayload string
	lastNetwork network.Name
}

func newFakeSessions(s session.Session) *fakeSessions {
	return &fakeSessions{current: s, listeners: make(map[int]func(session.Session))}
}

func connectedSession() session.Session {
	return session.Session{
		State:        session.StateConnected,
		Identity:     testIdentity,
		Network:      network.Testnet,
		Availability: session.AvailabilityAvailable,
		Source:       extension.SourcePrimary,
	}
}

func disconnectedSession() session.Session {
	return session.Session{
		State:        session.StateDisconnected,
		Network:      network.Testnet,
		Availability: session.AvailabilityAvailable,
		Source:       extension.SourcePrimary,
	}
}

func (f *fakeSessions) Current() session.Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current
}

func (f *fakeSessions) set(s session.Session) {
	f.mu.Lock()
	f.current = s
	listeners := make([]func(session.Session), 0, len(f.listeners))
	for _, l := range f.listeners {
		listeners = append(listeners, l)
	}
	f.mu.Unlock()
	for _, l := range listeners {
		l(s)
	}
}

func (f *fakeSessions) listenerCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.listeners)
}

func (f *fakeSessions) Connect(ctx context.Context) (extension.Identifier, error) {
	if f.connectErr != nil {
		return "", f.connectErr
	}
	f.set(connectedSession())
	return testIdentity, nil
}

func (f *fakeSessions) Disconnect(ctx context.Context) error {
	f.set(disconnectedSession())
	return nil
}

func (f *fakeSessions) Refresh(ctx context.Context) error {
	return nil
}

func (f *fakeSessions) SwitchNetwork(ctx context.Context, name network.Name) (*classify.ClassifiedError, error) {
	if f.switchErr != nil {
		return nil, f.switchErr
	}
	s := f.Current()
	s.Network = name
	f.set(s)
	return f.switchWarn, nil
}

func (f *fakeSessions) SignTransaction(ctx context.Context, payload string) (extension.SignedPayload, error) {
	return f.sign(payload)
}

func (f *fakeSessions) SignMessage(ctx context.Context, payload string) (extension.SignedPayload, error) {
	return f.sign(payload)
}

func (f *fakeSessions) sign(payload string) (extension.SignedPayload, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastPayload = payload
	if f.signNetwork != "" {
		f.current.Network = f.signNetwork
	}
	f.lastNetwork = f.current.Network
	if f.signErr != nil {
		return extension.SignedPayload{}, f.signErr
	}
	signed := f.signed
	signed.Network = f.current.Network
	return signed, nil
}

func (f *fakeSessions) Subscribe(listener func(session.Session)) func() {
	f.mu.Lock()
	id := f.nextID
	f.nextID++
	f.listeners[id] = listener
	f.mu.Unlock()
	return func() {
		f.mu.Lock()
		delete(f.listeners, id)
		f.mu.Unlock()
	}
}

// fakeLedger はテスト用のLedgerService。
type fakeLedger struct {
	balance *ledger.Balance
	fund    *ledger.FundResult
	err     error

	lastNetwork network.Name
	lastAddress string
}

func (f *fakeLedger) Balance(ctx context.Context, cfg network.Config, address string) (*ledger.Balance, error) {
	f.lastNetwork = cfg.Name
	f.lastAddress = address
	if f.err != nil {
		return nil, f.err
	}
	return f.balance, nil
}

func (f *fakeLedger) Fund(ctx context.Context, cfg network.Config, address string) (*ledger.FundResult, error) {
	f.lastNetwork = cfg.Name
	f.lastAddress = address
	if f.err != nil {
		return nil, f.err
	}
	return f.fund, nil
}

// fakePublisher はテスト用のChangePublisher。
type fakePublisher struct {
	changes []extension.Change
}

func (f *fakePublisher) Publish(change extension.Change) int {
	f.changes = append(f.changes, change)
	return 1
}

func newTestRegistry(t *testing.T) *network.Registry {
	t.Helper()
	reg, err := network.NewDefaultRegistry(network.Testnet)
	if err != nil {
		t.Fatalf("NewDefaultRegistry() error = %v", err)
	}
	return reg
}

// setupRouter はテスト用のルーターを生成する。
func setupRouter(t *testing.T, deps Dependencies) *gin.Engine {
	t.Helper()
	if deps.Registry == nil {
		deps.Registry = newTestRegistry(t)
	}
	h := NewHandler(deps)

	r := gin.New()
	r.GET("/health", h.HandleHealth)
	api := r.Group("/api/v1")
	api.GET("/networks", h.HandleNetworks)
	api.GET("/session", h.HandleGetSession)
	api.POST("/session/connect", h.HandleConnect)
	api.POST("/session/disconnect", h.HandleDisconnect)
	api.POST("/session/refresh", h.HandleRefresh)
	api.PUT("/session/network", h.HandleSwitchNetwork)
	api.POST("/session/sign/transaction", h.HandleSignTransaction)
	api.POST("/session/sign/message", h.HandleSignMessage)
	api.GET("/session/balance", h.HandleBalance)
	api.POST("/session/fund", h.HandleFund)
	api.POST("/extension/events", h.HandleExtensionEvent)
	return r
}

func doRequest(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			_ = json.NewEncoder(&buf).Encode(body)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("json.Unmarshal() error = %v, body = %s", err, w.Body.String())
	}
	return v
}
