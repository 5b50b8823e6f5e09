package session

import (
	"context"
	"errors"
	"log/slog"

	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/cache"
	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/classify"
	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/extension"
	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/network"
	"github.com/oyaguma3/wallet-session-poc/pkg/logging"
)

// reconcile は拡張機能（Probeで選ばれた主経路またはフォールバック）とキャッシュからセッションを確定させる。
// 優先順位は 拡張機能 > フォールバック > キャッシュ。キャッシュはネットワークのヒントとしてのみ使う。
// opMuを保持して呼ぶこと。
func (s *Store) reconcile(ctx context.Context, probe extension.ProbeResult, cached *cache.Entry, allowAdopt bool) error {
	cur := s.Current()
	avail := availabilityOf(probe.Available)

	if !probe.Available {
		return s.dropSession(ctx, probe, "extension unavailable")
	}
	if !allowAdopt {
		return s.dropSession(ctx, probe, "disconnected by user")
	}

	identity, err := s.adapter.ReadIdentity(ctx)
	if err != nil {
		ce := classify.ClassifyOp(classify.OpRead, err)
		if errors.Is(ce, classify.ErrNotAuthorized) {
			return s.dropSession(ctx, probe, "not authorized")
		}
		if cur.State == StateConnected {
			// 判定できない失敗では接続を維持する
			s.patch(func(sess *Session) {
				sess.Availability = avail
				sess.LastError = ce
			})
			s.logSession(ctx, slog.LevelWarn, "reconciliation inconclusive", EventIDReconcileErr, cur,
				slog.String(logging.FieldErrorKind, string(ce.Kind)),
				logging.WithError(ce),
			)
			return nil
		}
		return s.apply(EventProbeDisconnected, func(sess *Session) {
			sess.Availability = avail
			sess.Source = probe.Source
			sess.LastError = ce
		})
	}

	prevExt := s.extNetwork
	next := cur.Network
	extName, extOK := s.observeNetwork(ctx)
	switch {
	case extOK && (cur.State != StateConnected || extName != prevExt):
		next = extName
	case !extOK && cur.State == StateChecking && cached != nil &&
		cached.Identity == string(identity) && s.registry.Contains(network.Name(cached.Network)):
		next = network.Name(cached.Network)
	}

	if err := s.apply(EventProbeConnected, func(sess *Session) {
		sess.Identity = identity
		sess.Network = next
		sess.Availability = avail
		sess.Source = probe.Source
		sess.LastError = nil
	}); err != nil {
		return err
	}
	s.writer.save(cache.Entry{Identity: string(identity), Network: string(next)})
	s.watch()

	updated := s.Current()
	switch {
	case cur.State != StateConnected:
		s.logSession(ctx, slog.LevelInfo, "wallet connected", EventIDConnected, updated,
			slog.String("source", string(probe.Source)))
	case cur.Identity != identity:
		s.logSession(ctx, slog.LevelInfo, "wallet identity changed", EventIDIdentityChanged, updated)
	case cur.Network != next:
		s.logSession(ctx, slog.LevelInfo, "network switched", EventIDNetworkSwitched, updated,
			slog.String("from", string(cur.Network)))
	}
	return nil
}

// dropSession は未接続に確定させ、キャッシュを削除する。
// 接続中だった場合は購読を解除しネットワークを既定に戻す。
func (s *Store) dropSession(ctx context.Context, probe extension.ProbeResult, reason string) error {
	cur := s.Current()
	s.unwatch()
	s.extNetwork = ""

	defaultNetwork := s.registry.Default()
	if err := s.apply(EventProbeDisconnected, func(sess *Session) {
		if cur.Connected() {
			sess.Network = defaultNetwork
		}
		sess.Availability = availabilityOf(probe.Available)
		sess.Source = probe.Source
		sess.LastError = nil
	}); err != nil {
		return err
	}
	s.writer.clear()

	if cur.Connected() {
		s.logSession(ctx, slog.LevelInfo, "wallet disconnected", EventIDDisconnected, cur,
			slog.String("reason", reason))
	}
	return nil
}

// observeNetwork は拡張機能のネットワークを読み取り、レジストリの名前に解決する。
// 解決できた場合は観測値として記録する。opMuを保持して呼ぶこと。
func (s *Store) observeNetwork(ctx context.Context) (network.Name, bool) {
	raw, err := s.adapter.ReadNetwork(ctx)
	if err != nil {
		slog.Debug("read network failed", logging.WithError(err))
		return "", false
	}
	name, ok := s.resolveNetwork(raw)
	if ok {
		s.extNetwork = name
	}
	return name, ok
}

// resolveNetwork は拡張機能が報告するラベルを解決する。解決できないラベルは警告のみ。
func (s *Store) resolveNetwork(raw string) (network.Name, bool) {
	if raw == "" {
		return "", false
	}
	name, ok := s.registry.Resolve(raw)
	if !ok {
		slog.Warn("extension reported unknown network",
			logging.WithEventID(EventIDNetworkUnresolved),
			slog.String("label", raw),
		)
	}
	return name, ok
}

// runReconciler は変化通知を1件ずつ適用する。
func (s *Store) runReconciler(ctx context.Context, events <-chan queuedChange) {
	for {
		select {
		case <-ctx.Done():
			return
		case q := <-events:
			s.applyChange(ctx, q)
		}
	}
}

// applyChange は拡張機能側の変化を反映する。実行中の書き込み操作の完了を待ってから適用する。
func (s *Store) applyChange(ctx context.Context, q queuedChange) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if ctx.Err() != nil || q.gen != s.watchGen {
		return
	}
	cur := s.Current()
	if cur.State != StateConnected {
		return
	}

	change := q.change
	if !change.Connected || change.Identity == "" {
		s.unwatch()
		s.extNetwork = ""
		defaultNetwork := s.registry.Default()
		if err := s.apply(EventExternalDisconnect, func(sess *Session) {
			sess.Network = defaultNetwork
			sess.LastError = nil
		}); err != nil {
			slog.Error("external disconnect rejected", logging.WithError(err))
			return
		}
		s.writer.clear()
		s.logSession(ctx, slog.LevelInfo, "wallet disconnected", EventIDDisconnected, cur,
			slog.String("reason", "extension"))
		return
	}

	next := cur.Network
	if s.freshNetwork(q) {
		if name, ok := s.resolveNetwork(change.Network); ok && name != s.extNetwork {
			next = name
			s.extNetwork = name
		}
	}
	if change.Identity == cur.Identity && next == cur.Network {
		return
	}

	if err := s.apply(EventExternalIdentity, func(sess *Session) {
		sess.Identity = change.Identity
		sess.Network = next
	}); err != nil {
		slog.Error("external change rejected", logging.WithError(err))
		return
	}
	s.writer.save(cache.Entry{Identity: string(change.Identity), Network: string(next)})

	updated := s.Current()
	if change.Identity != cur.Identity {
		s.logSession(ctx, slog.LevelInfo, "wallet identity changed", EventIDIdentityChanged, updated)
	}
	if next != cur.Network {
		s.logSession(ctx, slog.LevelInfo, "network switched", EventIDNetworkSwitched, updated,
			slog.String("from", string(cur.Network)))
	}
}

// freshNetwork は通知のネットワークが直近のローカルの切り替えより後に観測されたものかを返す。
// 切り替え中にキューに積まれた通知は切り替え前の状態を報告しているため採用しない。opMuを保持して呼ぶこと。
func (s *Store) freshNetwork(q queuedChange) bool {
	if q.netGen != s.netGen.Load() {
		return false
	}
	observed := q.change.ObservedAt
	return observed.IsZero() || !observed.Before(s.alignedAt)
}
