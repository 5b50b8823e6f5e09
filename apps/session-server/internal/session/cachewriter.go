package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/cache"
	"github.com/oyaguma3/wallet-session-poc/pkg/logging"
)

// cacheOp はキャッシュへの書き込み要求。entryがnilの場合は削除。
type cacheOp struct {
	entry *cache.Entry
}

// cacheWriter はキャッシュ書き込みを状態遷移から切り離して非同期に実行する。
// 未処理の要求は最新の1件だけを保持する（キャッシュは最終状態だけが意味を持つ）。
type cacheWriter struct {
	cache   cache.Cache
	timeout time.Duration

	mu      sync.Mutex
	pending *cacheOp

	writeMu sync.Mutex
	signal  chan struct{}
}

func newCacheWriter(c cache.Cache, timeout time.Duration) *cacheWriter {
	return &cacheWriter{
		cache:   c,
		timeout: timeout,
		signal:  make(chan struct{}, 1),
	}
}

// save は保存要求を登録する。呼び出し側をブロックしない。
func (w *cacheWriter) save(entry cache.Entry) {
	w.submit(cacheOp{entry: &entry})
}

// clear は削除要求を登録する。呼び出し側をブロックしない。
func (w *cacheWriter) clear() {
	w.submit(cacheOp{})
}

func (w *cacheWriter) submit(op cacheOp) {
	w.mu.Lock()
	w.pending = &op
	w.mu.Unlock()

	select {
	case w.signal <- struct{}{}:
	default:
	}
}

// run はctxが終了するまで書き込み要求を処理する。終了時に未処理の要求を書き出す。
func (w *cacheWriter) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.flush()
			return
		case <-w.signal:
			w.flush()
		}
	}
}

// flush は未処理の要求をすべて書き出し、実行中の書き込みの完了を待つ。
func (w *cacheWriter) flush() {
	w.writeMu.Lock()
	defer w.writeMu.Unlock()

	for {
		w.mu.Lock()
		op := w.pending
		w.pending = nil
		w.mu.Unlock()

		if op == nil {
			return
		}
		w.write(op)
	}
}

func (w *cacheWriter) write(op *cacheOp) {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	var err error
	action := "clear"
	if op.entry != nil {
		action = "save"
		err = w.cache.Save(ctx, *op.entry)
	} else {
		err = w.cache.Clear(ctx)
	}
	if err != nil {
		slog.Warn("cache write failed",
			logging.WithEventID(EventIDCacheWriteErr),
			slog.String("action", action),
			logging.WithError(err),
		)
	}
}
