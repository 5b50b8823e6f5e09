package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/cache"
	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/classify"
	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/extension"
	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/mocks"
	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/network"
	"github.com/redis/go-redis/v9"
	"go.uber.org/mock/gomock"
)

const (
	identityX extension.Identifier = "GABCAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAXYZ"
	identityY extension.Identifier = "GBYYQQQQQQQQQQQQQQQQQQQQQQQQQQQQQQQQQQQQQQQQQQQQQQQQCWN7"
)

var (
	availablePrimary = extension.ProbeResult{Available: true, Source: extension.SourcePrimary}
	unavailable      = extension.ProbeResult{Available: false}

	errNotAuthorized = classify.New(classify.KindNotAuthorized, "application is not authorized by the wallet")
)

type testEnv struct {
	store     *Store
	adapter   *mocks.MockAdapter
	cacheMock *mocks.MockCache

	mu       sync.Mutex
	callback func(extension.Change)
}

func newTestRegistry(t *testing.T) *network.Registry {
	t.Helper()
	reg, err := network.NewDefaultRegistry(network.Testnet)
	if err != nil {
		t.Fatalf("NewDefaultRegistry() error = %v", err)
	}
	return reg
}

// newTestEnv はモックのAdapterとCacheでStoreを生成する。
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctrl := gomock.NewController(t)
	env := &testEnv{
		adapter:   mocks.NewMockAdapter(ctrl),
		cacheMock: mocks.NewMockCache(ctrl),
	}
	env.store = NewStore(env.adapter, env.cacheMock, newTestRegistry(t))
	t.Cleanup(env.store.Teardown)
	return env
}

// newValkeyEnv はモックのAdapterとminiredis上のCacheでStoreを生成する。
func newValkeyEnv(t *testing.T) (*testEnv, *miniredis.Miniredis, string) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	env := &testEnv{adapter: mocks.NewMockAdapter(ctrl)}
	env.store = NewStore(env.adapter, cache.NewValkeyCache(client, "default"), newTestRegistry(t))
	t.Cleanup(env.store.Teardown)
	return env, mr, "wallet:default"
}

// expectSubscribe は変化通知の購読を許可し、コールバックを保持する。
func (e *testEnv) expectSubscribe() {
	e.adapter.EXPECT().SubscribeToChanges(gomock.Any()).DoAndReturn(func(cb func(extension.Change)) func() {
		e.mu.Lock()
		e.callback = cb
		e.mu.Unlock()
		return func() {}
	}).AnyTimes()
}

// emit は保持しているコールバックで変化通知を送る。
func (e *testEnv) emit(t *testing.T, change extension.Change) {
	t.Helper()
	e.mu.Lock()
	cb := e.callback
	e.mu.Unlock()
	if cb == nil {
		t.Fatal("変化通知が購読されていない")
	}
	cb(change)
}

// allowCacheWrites はモックCacheへの書き込みを回数を問わず許可する。
func (e *testEnv) allowCacheWrites() {
	e.cacheMock.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	e.cacheMock.EXPECT().Clear(gomock.Any()).Return(nil).AnyTimes()
}

// initDisconnected はキャッシュなし・拡張機能は利用可能だが未許可の状態で初期化する。
func (e *testEnv) initDisconnected(t *testing.T) {
	t.Helper()
	if e.cacheMock != nil {
		e.cacheMock.EXPECT().Load(gomock.Any()).Return(nil, cache.ErrEntryNotFound)
	}
	e.adapter.EXPECT().Probe(gomock.Any()).Return(availablePrimary)
	e.adapter.EXPECT().ReadIdentity(gomock.Any()).Return(extension.Identifier(""), errNotAuthorized)

	if err := e.store.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if got := e.store.Current().State; got != StateDisconnected {
		t.Fatalf("初期化後の状態 = %q, want %q", got, StateDisconnected)
	}
}

// initConnected は拡張機能が許可済み（identity, testnet）の状態で初期化する。
func (e *testEnv) initConnected(t *testing.T, identity extension.Identifier) {
	t.Helper()
	if e.cacheMock != nil {
		e.cacheMock.EXPECT().Load(gomock.Any()).Return(nil, cache.ErrEntryNotFound)
	}
	e.adapter.EXPECT().Probe(gomock.Any()).Return(availablePrimary)
	e.adapter.EXPECT().ReadIdentity(gomock.Any()).Return(identity, nil)
	e.adapter.EXPECT().ReadNetwork(gomock.Any()).Return("TESTNET", nil)
	e.expectSubscribe()

	if err := e.store.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	got := e.store.Current()
	if got.State != StateConnected || got.Identity != identity {
		t.Fatalf("初期化後のセッション = %+v, want Connected(%s)", got, identity)
	}
}

// waitFor は条件を満たすセッションになるまで待つ。
func waitFor(t *testing.T, s *Store, cond func(Session) bool) Session {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if sess := s.Current(); cond(sess) {
			return sess
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("条件を満たすセッションにならない: %+v", s.Current())
	return Session{}
}
