package extension

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/classify"
	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/config"
	"golang.org/x/time/rate"
)

// PollWatcher は一定間隔で拡張機能の状態を読み取り、変化があった場合のみ通知する。
type PollWatcher struct {
	reader   StateReader
	interval time.Duration
}

// NewPollWatcher は新しいPollWatcherを生成する。
// intervalはconfig.MinWatchInterval未満にはならない。
func NewPollWatcher(reader StateReader, interval time.Duration) *PollWatcher {
	if interval < config.MinWatchInterval {
		interval = config.MinWatchInterval
	}
	return newPollWatcher(reader, interval)
}

func newPollWatcher(reader StateReader, interval time.Duration) *PollWatcher {
	return &PollWatcher{reader: reader, interval: interval}
}

// Interval はポーリング間隔を返す。
func (w *PollWatcher) Interval() time.Duration {
	return w.interval
}

// Watch はポーリングを開始する。返却関数でポーリングを停止する（冪等）。
// 停止関数はポーリングの終了を待たない。
func (w *PollWatcher) Watch(cb func(Change)) func() {
	ctx, cancel := context.WithCancel(context.Background())
	go w.run(ctx, cb)

	var once sync.Once
	return func() {
		once.Do(cancel)
	}
}

func (w *PollWatcher) run(ctx context.Context, cb func(Change)) {
	limiter := rate.NewLimiter(rate.Every(w.interval), 1)
	var last *Change

	for {
		if err := limiter.Wait(ctx); err != nil {
			return
		}
		change, ok := w.observe(ctx)
		if !ok {
			continue
		}
		if last != nil && last.sameState(change) {
			continue
		}
		if ctx.Err() != nil {
			return
		}
		last = &change
		cb(change)
	}
}

// observe は拡張機能の現在の状態を1回読み取る。
// 通信失敗など判定できない場合はfalseを返し、通知しない。
func (w *PollWatcher) observe(ctx context.Context) (Change, bool) {
	now := time.Now()
	if !w.reader.Probe(ctx).Available {
		return Change{Connected: false, ObservedAt: now}, true
	}

	id, err := w.reader.ReadIdentity(ctx)
	if err != nil {
		if errors.Is(err, classify.ErrNotAuthorized) {
			return Change{Connected: false, ObservedAt: now}, true
		}
		slog.Debug("poll watcher: read identity failed", "error", err.Error())
		return Change{}, false
	}

	label, err := w.reader.ReadNetwork(ctx)
	if err != nil {
		slog.Debug("poll watcher: read network failed", "error", err.Error())
		label = ""
	}

	return Change{Connected: true, Identity: id, Network: label, ObservedAt: now}, true
}

// sameState は観測時刻を除いて同じ状態かを返す。
func (c Change) sameState(other Change) bool {
	return c.Connected == other.Connected &&
		c.Identity == other.Identity &&
		c.Network == other.Network
}

// PushWatcher は外部（拡張機能ブリッジ）から送られた変化通知を購読者に配信する。
type PushWatcher struct {
	mu   sync.RWMutex
	subs map[string]func(Change)
}

// NewPushWatcher は新しいPushWatcherを生成する。
func NewPushWatcher() *PushWatcher {
	return &PushWatcher{subs: make(map[string]func(Change))}
}

// Watch は購読者を登録する。返却関数で登録を解除する（冪等）。
func (w *PushWatcher) Watch(cb func(Change)) func() {
	id := uuid.NewString()
	w.mu.Lock()
	w.subs[id] = cb
	w.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			w.mu.Lock()
			delete(w.subs, id)
			w.mu.Unlock()
		})
	}
}

// Publish は変化通知を全購読者に配信し、配信数を返す。
func (w *PushWatcher) Publish(change Change) int {
	if change.ObservedAt.IsZero() {
		change.ObservedAt = time.Now()
	}

	w.mu.RLock()
	cbs := make([]func(Change), 0, len(w.subs))
	for _, cb := range w.subs {
		cbs = append(cbs, cb)
	}
	w.mu.RUnlock()

	for _, cb := range cbs {
		cb(change)
	}
	return len(cbs)
}

// Subscribers は現在の購読者数を返す。
func (w *PushWatcher) Subscribers() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.subs)
}
