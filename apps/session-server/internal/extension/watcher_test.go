package extension

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/classify"
	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/config"
)

// fakeReader はテスト用のStateReader
type fakeReader struct {
	mu        sync.Mutex
	available bool
	identity  Identifier
	idErr     error
	network   string
	reads     int
}

func (f *fakeReader) Probe(ctx context.Context) ProbeResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	return ProbeResult{Available: f.available}
}

func (f *fakeReader) ReadIdentity(ctx context.Context) (Identifier, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	return f.identity, f.idErr
}

func (f *fakeReader) ReadNetwork(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.network, nil
}

func (f *fakeReader) set(fn func(f *fakeReader)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

func waitChange(t *testing.T, ch <-chan Change) Change {
	t.Helper()
	select {
	case c := <-ch:
		return c
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change")
		return Change{}
	}
}

func TestNewPollWatcherEnforcesMinimumInterval(t *testing.T) {
	w := NewPollWatcher(&fakeReader{}, 100*time.Millisecond)
	if w.Interval() != config.MinWatchInterval {
		t.Errorf("Interval() = %v, want %v", w.Interval(), config.MinWatchInterval)
	}
	w = NewPollWatcher(&fakeReader{}, 10*time.Second)
	if w.Interval() != 10*time.Second {
		t.Errorf("Interval() = %v, want %v", w.Interval(), 10*time.Second)
	}
}

func TestPollWatcherEmitsOnlyOnChange(t *testing.T) {
	reader := &fakeReader{available: true, identity: "GAAA", network: "TESTNET"}
	w := newPollWatcher(reader, 20*time.Millisecond)

	changes := make(chan Change, 16)
	unsubscribe := w.Watch(func(c Change) { changes <- c })
	defer unsubscribe()

	first := waitChange(t, changes)
	if !first.Connected || first.Identity != "GAAA" || first.Network != "TESTNET" {
		t.Errorf("first change = %+v", first)
	}

	// 状態が変わらない間は通知しない
	time.Sleep(100 * time.Millisecond)
	select {
	case c := <-changes:
		t.Fatalf("unexpected change %+v", c)
	default:
	}

	reader.set(func(f *fakeReader) { f.identity = "GBBB" })
	if c := waitChange(t, changes); c.Identity != "GBBB" {
		t.Errorf("identity change = %+v, want GBBB", c)
	}

	reader.set(func(f *fakeReader) { f.available = false })
	if c := waitChange(t, changes); c.Connected {
		t.Errorf("disconnect change = %+v, want Connected=false", c)
	}
}

func TestPollWatcherNotAuthorizedMeansDisconnected(t *testing.T) {
	reader := &fakeReader{available: true, idErr: classify.New(classify.KindNotAuthorized, "")}
	w := newPollWatcher(reader, 20*time.Millisecond)

	changes := make(chan Change, 4)
	unsubscribe := w.Watch(func(c Change) { changes <- c })
	defer unsubscribe()

	if c := waitChange(t, changes); c.Connected {
		t.Errorf("change = %+v, want Connected=false", c)
	}
}

func TestPollWatcherSkipsTransientFailures(t *testing.T) {
	reader := &fakeReader{available: true, idErr: classify.New(classify.KindNetworkFailure, "timeout")}
	w := newPollWatcher(reader, 20*time.Millisecond)

	changes := make(chan Change, 4)
	unsubscribe := w.Watch(func(c Change) { changes <- c })
	defer unsubscribe()

	time.Sleep(100 * time.Millisecond)
	select {
	case c := <-changes:
		t.Fatalf("unexpected change %+v", c)
	default:
	}
}

func TestPollWatcherUnsubscribeIsIdempotent(t *testing.T) {
	reader := &fakeReader{available: true, identity: "GAAA"}
	w := newPollWatcher(reader, 20*time.Millisecond)

	changes := make(chan Change, 16)
	unsubscribe := w.Watch(func(c Change) { changes <- c })
	waitChange(t, changes)

	unsubscribe()
	unsubscribe()

	time.Sleep(50 * time.Millisecond)
	reader.set(func(f *fakeReader) { f.reads = 0 })
	time.Sleep(100 * time.Millisecond)
	reader.mu.Lock()
	reads := reader.reads
	reader.mu.Unlock()
	if reads != 0 {
		t.Errorf("reader polled %d times after unsubscribe", reads)
	}
}

func TestPushWatcher(t *testing.T) {
	w := NewPushWatcher()

	var mu sync.Mutex
	var got []Change
	unsubA := w.Watch(func(c Change) {
		mu.Lock()
		got = append(got, c)
		mu.Unlock()
	})
	unsubB := w.Watch(func(Change) {})

	if w.Subscribers() != 2 {
		t.Fatalf("Subscribers() = %d, want 2", w.Subscribers())
	}
	if n := w.Publish(Change{Connected: true, Identity: "GAAA"}); n != 2 {
		t.Errorf("Publish() delivered to %d, want 2", n)
	}

	unsubA()
	unsubA()
	if w.Subscribers() != 1 {
		t.Errorf("Subscribers() after unsubscribe = %d, want 1", w.Subscribers())
	}
	w.Publish(Change{Connected: false})
	unsubB()

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 1 {
		t.Fatalf("received %d changes, want 1", len(got))
	}
	if got[0].ObservedAt.IsZero() {
		t.Error("ObservedAt should be set by Publish")
	}
}
