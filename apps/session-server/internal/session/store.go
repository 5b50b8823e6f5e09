package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/cache"
	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/classify"
	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/config"
	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/extension"
	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/metrics"
	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/network"
	"github.com/oyaguma3/wallet-session-poc/pkg/apperr"
	"github.com/oyaguma3/wallet-session-poc/pkg/logging"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// queuedChange は購読世代とネットワーク世代付きの変化通知
type queuedChange struct {
	gen    uint64
	netGen uint64 // キューに積んだ時点のネットワーク世代
	change extension.Change
}

// Store はウォレットセッションの唯一の状態を保持する。
//
// 書き込み操作（Initialize/Connect/Disconnect/SwitchNetwork/Refresh と拡張機能からの変化通知）は
// opMuで直列化される。変化通知はキューに積まれ、単一のゴルーチンが実行中の操作の完了後に適用する。
type Store struct {
	adapter  extension.Adapter
	registry *network.Registry
	writer   *cacheWriter
	cache    cache.Cache
	fields   *logging.CommonFields

	opMu sync.Mutex

	mu   sync.RWMutex
	sess Session

	// 以下はopMuで保護する
	extNetwork       network.Name // 拡張機能側で最後に観測したネットワーク
	userDisconnected bool
	unsubscribe      func()
	watchGen         uint64
	lifeCtx          context.Context
	lifeCancel       context.CancelFunc
	events           chan queuedChange
	alignedAt        time.Time // 拡張機能のネットワークを最後にローカルから揃えた時刻

	// netGen はローカルからネットワークを揃えるたびに進める。
	// これより古い世代の通知に含まれるネットワークは採用しない。
	netGen atomic.Uint64

	wg      sync.WaitGroup
	connect singleflight.Group

	listenerMu sync.Mutex
	listeners  map[uint64]func(Session)
	nextID     uint64
}

// Option はStoreの生成オプション
type Option func(*Store)

// WithCommonFields はログ出力に使うフィールド生成器を設定する。
func WithCommonFields(cf *logging.CommonFields) Option {
	return func(s *Store) {
		if cf != nil {
			s.fields = cf
		}
	}
}

// WithCacheWriteTimeout はキャッシュ書き込み1回あたりのタイムアウトを設定する。
func WithCacheWriteTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.writer.timeout = d
		}
	}
}

// NewStore は新しいStoreを生成する。Initializeを呼ぶまで操作は受け付けない。
func NewStore(adapter extension.Adapter, c cache.Cache, registry *network.Registry, opts ...Option) *Store {
	s := &Store{
		adapter:   adapter,
		registry:  registry,
		cache:     c,
		writer:    newCacheWriter(c, config.CacheWriteTimeout),
		fields:    logging.NewCommonFields(nil),
		sess:      initialSession(registry.Default()),
		listeners: make(map[uint64]func(Session)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Current は最新のセッションのスナップショットを返す。
func (s *Store) Current() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sess
}

// Subscribe はセッション変更の通知先を登録する。
// listenerは状態変更のたびに同期的に呼ばれるため、ブロックしたりStoreの書き込み操作を呼んではならない。
// 返却関数で登録を解除する（冪等）。
func (s *Store) Subscribe(listener func(Session)) func() {
	s.listenerMu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = listener
	s.listenerMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.listenerMu.Lock()
			delete(s.listeners, id)
			s.listenerMu.Unlock()
		})
	}
}

func (s *Store) notify(sess Session) {
	s.listenerMu.Lock()
	listeners := make([]func(Session), 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.listenerMu.Unlock()

	for _, l := range listeners {
		l(sess)
	}
}

// Initialize はキャッシュ読み取りと可用性確認を並行に行い、セッションを確定させる。
// 初期化済みの場合は何もしない。
func (s *Store) Initialize(ctx context.Context) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if s.lifeCancel != nil {
		return nil
	}
	s.start()

	defaultNetwork := s.registry.Default()
	if err := s.apply(EventInitialize, func(sess *Session) {
		sess.Network = defaultNetwork
		sess.Availability = AvailabilityUnknown
	}); err != nil {
		return err
	}
	s.logSession(ctx, slog.LevelDebug, "session checking", EventIDChecking, s.Current())

	var (
		cached *cache.Entry
		probe  extension.ProbeResult
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		entry, err := s.cache.Load(gctx)
		if err != nil {
			if !errors.Is(err, cache.ErrEntryNotFound) {
				slog.Warn("cache read failed",
					logging.WithEventID(EventIDCacheReadErr),
					logging.WithError(err),
				)
			}
			return nil
		}
		cached = entry
		s.patch(func(sess *Session) {
			if sess.State == StateChecking {
				sess.CachedIdentity = extension.Identifier(entry.Identity)
			}
		})
		return nil
	})
	g.Go(func() error {
		probe = s.adapter.Probe(gctx)
		return nil
	})
	_ = g.Wait()

	return s.reconcile(ctx, probe, cached, true)
}

// start はライフサイクルに紐づくゴルーチンを起動する。opMuを保持して呼ぶこと。
func (s *Store) start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.lifeCtx = ctx
	s.lifeCancel = cancel
	s.events = make(chan queuedChange, config.WatchQueueSize)
	s.userDisconnected = false
	s.extNetwork = ""

	s.wg.Add(2)
	go func() {
		defer s.wg.Done()
		s.runReconciler(ctx, s.events)
	}()
	go func() {
		defer s.wg.Done()
		s.writer.run(ctx)
	}()
}

// Teardown は購読とゴルーチンを停止し、未処理のキャッシュ書き込みを書き出して初期状態に戻す。
func (s *Store) Teardown() {
	s.opMu.Lock()
	cancel := s.lifeCancel
	s.lifeCancel = nil
	s.unwatch()
	s.opMu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	s.wg.Wait()

	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.writer.flush()
	prev := s.Current()
	reset := initialSession(s.registry.Default())
	s.mu.Lock()
	s.sess = reset
	s.mu.Unlock()

	if prev.State != reset.State {
		metrics.RecordTransition(string(prev.State), string(reset.State))
	}
	metrics.SetConnected(false)
	s.notify(reset)
}

// Connect は拡張機能にアクセスを要求し、公開鍵を返す。
// 接続済みの場合は現在の公開鍵を返す。同時に呼ばれた場合、アクセス要求は1回だけ行う。
// 呼び出し側のキャンセルでアクセス要求は中断しない（拡張機能側の確認待ちは取り消せない）。
func (s *Store) Connect(ctx context.Context) (extension.Identifier, error) {
	cur := s.Current()
	if cur.State == StateUninitialized {
		return "", ErrNotInitialized
	}
	if cur.Connected() {
		return cur.Identity, nil
	}

	v, err, _ := s.connect.Do("connect", func() (any, error) {
		return s.doConnect(context.WithoutCancel(ctx))
	})
	if err != nil {
		return "", err
	}
	return v.(extension.Identifier), nil
}

func (s *Store) doConnect(ctx context.Context) (extension.Identifier, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	cur := s.Current()
	if cur.State == StateUninitialized {
		return "", ErrNotInitialized
	}
	if cur.Connected() {
		return cur.Identity, nil
	}

	probe := s.adapter.Probe(ctx)
	if !probe.Available {
		ce := classify.New(classify.KindNotInstalled, extension.ErrNotInstalled.Error())
		s.failConnect(ctx, probe, ce)
		return "", ce
	}

	identity, err := s.adapter.RequestAccess(ctx)
	if err != nil {
		ce := classify.ClassifyOp(classify.OpAccess, err)
		s.failConnect(ctx, probe, ce)
		return "", ce
	}

	next := cur.Network
	if name, ok := s.observeNetwork(ctx); ok {
		next = name
	}

	if err := s.apply(EventConnectOK, func(sess *Session) {
		sess.Identity = identity
		sess.Network = next
		sess.Availability = AvailabilityAvailable
		sess.Source = probe.Source
		sess.LastError = nil
	}); err != nil {
		return "", err
	}
	s.userDisconnected = false
	s.writer.save(cache.Entry{Identity: string(identity), Network: string(next)})
	s.watch()

	s.logSession(ctx, slog.LevelInfo, "wallet connected", EventIDConnected, s.Current(),
		slog.String("source", string(probe.Source)))
	return identity, nil
}

func (s *Store) failConnect(ctx context.Context, probe extension.ProbeResult, ce *classify.ClassifiedError) {
	if err := s.apply(EventConnectFailed, func(sess *Session) {
		sess.Availability = availabilityOf(probe.Available)
		sess.Source = probe.Source
		sess.LastError = ce
	}); err != nil {
		slog.Error("connect failure transition rejected", logging.WithError(err))
	}
	s.logSession(ctx, slog.LevelWarn, "wallet connect failed", EventIDConnectFailed, s.Current(),
		slog.String(logging.FieldErrorKind, string(ce.Kind)),
		logging.WithError(ce),
	)
}

// Disconnect は公開鍵を破棄し、キャッシュを削除し、変化通知の購読を解除してネットワークを既定に戻す。
func (s *Store) Disconnect(ctx context.Context) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	cur := s.Current()
	if cur.State == StateUninitialized {
		return ErrNotInitialized
	}

	s.unwatch()
	s.extNetwork = ""
	defaultNetwork := s.registry.Default()
	if err := s.apply(EventDisconnect, func(sess *Session) {
		sess.Identity = ""
		sess.Network = defaultNetwork
		sess.LastError = nil
	}); err != nil {
		return err
	}
	s.userDisconnected = true
	s.writer.clear()

	s.logSession(ctx, slog.LevelInfo, "wallet disconnected", EventIDDisconnected, cur,
		slog.String("reason", "user"))
	return nil
}

// Refresh は拡張機能の状態を再確認してセッションを照合する。
// NetworkFailureからの手動再試行にも使う。利用者が切断した後は拡張機能側の許可を採用しない。
func (s *Store) Refresh(ctx context.Context) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if s.Current().State == StateUninitialized {
		return ErrNotInitialized
	}
	probe := s.adapter.Probe(ctx)
	return s.reconcile(ctx, probe, nil, !s.userDisconnected)
}

// SwitchNetwork はセッションのネットワークを切り替える。
// 未登録の名前の場合は*classify.ConfigurationErrorを返し、状態は変更しない。
// 接続中は拡張機能にも切り替えを依頼し、拒否された場合はNetworkFailureの警告を返す（ローカルの値は切り替える）。
func (s *Store) SwitchNetwork(ctx context.Context, name network.Name) (*classify.ClassifiedError, error) {
	cfg, err := s.registry.Get(name)
	if err != nil {
		return nil, err
	}

	s.opMu.Lock()
	defer s.opMu.Unlock()

	cur := s.Current()
	if cur.State == StateUninitialized {
		return nil, ErrNotInitialized
	}

	if err := s.apply(EventSwitchNetwork, func(sess *Session) {
		sess.Network = name
		sess.LastError = nil
	}); err != nil {
		return nil, err
	}
	if !cur.Connected() {
		return nil, nil
	}

	var warning *classify.ClassifiedError
	if err := s.adapter.AlignNetwork(ctx, cfg); err != nil {
		cause := classify.Classify(err)
		warning = classify.New(classify.KindNetworkFailure, cause.Error())
		s.patch(func(sess *Session) {
			sess.LastError = warning
		})
		s.logSession(ctx, slog.LevelWarn, "extension did not align network", EventIDNetworkMisaligned, s.Current(),
			slog.String(logging.FieldErrorKind, string(cause.Kind)),
			logging.WithError(cause),
		)
	} else {
		s.extNetwork = name
		s.alignedAt = time.Now()
		s.netGen.Add(1)
	}
	s.writer.save(cache.Entry{Identity: string(cur.Identity), Network: string(name)})

	s.logSession(ctx, slog.LevelInfo, "network switched", EventIDNetworkSwitched, s.Current(),
		slog.String("from", string(cur.Network)))
	return warning, nil
}

// SignTransaction は現在のネットワークの署名ドメインでトランザクションに署名する。
func (s *Store) SignTransaction(ctx context.Context, payload string) (extension.SignedPayload, error) {
	return s.sign(ctx, "transaction", s.adapter.SignTransaction, payload)
}

// SignMessage は現在のネットワークの署名ドメインでメッセージに署名する。
func (s *Store) SignMessage(ctx context.Context, payload string) (extension.SignedPayload, error) {
	return s.sign(ctx, "message", s.adapter.SignMessage, payload)
}

type signFunc func(ctx context.Context, payload string, opts extension.SignOptions) (extension.SignedPayload, error)

// sign は呼び出し時点のネットワークで署名する。失敗してもセッションは変更しない。
func (s *Store) sign(ctx context.Context, kind string, fn signFunc, payload string) (extension.SignedPayload, error) {
	cur := s.Current()
	if !cur.Connected() {
		return extension.SignedPayload{}, classify.New(classify.KindNotAuthorized, apperr.ErrSessionNotConnected.Error())
	}

	cfg, err := s.registry.Get(cur.Network)
	if err != nil {
		return extension.SignedPayload{}, err
	}

	signed, err := fn(ctx, payload, extension.SignOptions{
		Network:       cfg.Name,
		SigningDomain: cfg.SigningDomain,
		Identity:      cur.Identity,
	})
	if err != nil {
		ce := classify.ClassifyOp(classify.OpSign, err)
		s.logSession(ctx, slog.LevelWarn, "sign failed", EventIDSignFailed, cur,
			slog.String("payload_type", kind),
			slog.String(logging.FieldErrorKind, string(ce.Kind)),
			logging.WithError(ce),
		)
		return extension.SignedPayload{}, ce
	}
	signed.Network = cfg.Name
	return signed, nil
}

// apply は遷移テーブルに従ってセッションを更新し、購読者に通知する。
// 接続状態でない場合は公開鍵を破棄し、接続状態で公開鍵がない更新は拒否する。
func (s *Store) apply(event Event, mutate func(*Session)) error {
	s.mu.Lock()
	prev := s.sess
	next, err := ValidateTransition(prev.State, event)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s on %s", err, event, prev.State)
	}

	updated := prev
	updated.State = next
	if mutate != nil {
		mutate(&updated)
	}
	if updated.State != StateConnected {
		updated.Identity = ""
	}
	if updated.State != StateChecking {
		updated.CachedIdentity = ""
	}
	if updated.State == StateConnected && updated.Identity == "" {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s on %s", ErrIdentityRequired, event, prev.State)
	}
	s.sess = updated
	s.mu.Unlock()

	if prev.State != updated.State {
		metrics.RecordTransition(string(prev.State), string(updated.State))
	}
	metrics.SetConnected(updated.Connected())
	s.notify(updated)
	return nil
}

// patch は状態遷移を伴わない属性（可用性、直近エラー、キャッシュのヒント）を更新する。
func (s *Store) patch(mutate func(*Session)) {
	s.mu.Lock()
	updated := s.sess
	mutate(&updated)
	updated.State = s.sess.State
	updated.Identity = s.sess.Identity
	s.sess = updated
	s.mu.Unlock()

	s.notify(updated)
}

// watch は拡張機能の変化通知を購読する。opMuを保持して呼ぶこと。
func (s *Store) watch() {
	if s.unsubscribe != nil {
		return
	}
	s.watchGen++
	gen := s.watchGen
	ctx := s.lifeCtx
	events := s.events

	s.unsubscribe = s.adapter.SubscribeToChanges(func(c extension.Change) {
		select {
		case events <- queuedChange{gen: gen, netGen: s.netGen.Load(), change: c}:
		case <-ctx.Done():
		}
	})
}

// unwatch は購読を解除し、キュー内の古い通知を無効にする。opMuを保持して呼ぶこと。
func (s *Store) unwatch() {
	s.watchGen++
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}

func (s *Store) logSession(ctx context.Context, level slog.Level, msg, eventID string, sess Session, args ...any) {
	fields := s.fields.SessionLogFields(eventID, string(sess.Identity), string(sess.Network))
	if traceID := logging.TraceIDFromContext(ctx); traceID != "" {
		fields = append(fields, logging.WithTraceID(traceID))
	}
	slog.Log(ctx, level, msg, append(fields, args...)...)
}
