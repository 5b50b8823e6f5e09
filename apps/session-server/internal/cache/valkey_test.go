package cache

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/config"
	"github.com/oyaguma3/wallet-session-poc/pkg/apperr"
	"github.com/redis/go-redis/v9"
)

const testIdentity = "GAAZI4TCR3TY5OJHCTJC2A4QSY6CJWJH5IAJTGKIN2ER7LBNVKOCCWN7"

func newTestCache(t *testing.T) (*miniredis.Miniredis, Cache) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, NewValkeyCache(client, "default")
}

func TestNewValkeyClient(t *testing.T) {
	mr := miniredis.RunT(t)
	mr.RequireAuth("secret")

	host, port, _ := net.SplitHostPort(mr.Addr())
	cfg := &config.Config{RedisHost: host, RedisPort: port, RedisPass: "secret"}
	client, err := NewValkeyClient(cfg)
	if err != nil {
		t.Fatalf("NewValkeyClient() error = %v", err)
	}
	defer client.Close()

	cfg.RedisPass = "wrong"
	if _, err := NewValkeyClient(cfg); err == nil {
		t.Error("NewValkeyClient() with wrong password should fail")
	}
}

func TestSaveAndLoad(t *testing.T) {
	mr, c := newTestCache(t)
	ctx := context.Background()

	if err := c.Save(ctx, Entry{Identity: testIdentity, Network: "testnet"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// 既知のフィールド名で保存される
	if got := mr.HGet("wallet:default", FieldConnected); got != "true" {
		t.Errorf("%s = %q, want %q", FieldConnected, got, "true")
	}
	if got := mr.HGet("wallet:default", FieldIdentity); got != testIdentity {
		t.Errorf("%s = %q, want %q", FieldIdentity, got, testIdentity)
	}
	if got := mr.HGet("wallet:default", FieldNetwork); got != "testnet" {
		t.Errorf("%s = %q, want %q", FieldNetwork, got, "testnet")
	}
	if ttl := mr.TTL("wallet:default"); ttl != config.CacheTTL {
		t.Errorf("TTL = %v, want %v", ttl, config.CacheTTL)
	}

	entry, err := c.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if entry.Identity != testIdentity || entry.Network != "testnet" {
		t.Errorf("Load() = %+v", entry)
	}
}

func TestSaveOverwrites(t *testing.T) {
	_, c := newTestCache(t)
	ctx := context.Background()

	_ = c.Save(ctx, Entry{Identity: "GAAA", Network: "testnet"})
	if err := c.Save(ctx, Entry{Identity: "GBBB", Network: "futurenet"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	entry, err := c.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if entry.Identity != "GBBB" || entry.Network != "futurenet" {
		t.Errorf("Load() = %+v, want GBBB/futurenet", entry)
	}
}

func TestSaveRejectsEmptyIdentity(t *testing.T) {
	_, c := newTestCache(t)
	err := c.Save(context.Background(), Entry{Network: "testnet"})
	if !errors.Is(err, ErrInvalidEntry) {
		t.Errorf("Save() error = %v, want ErrInvalidEntry", err)
	}
}

func TestLoadNotFound(t *testing.T) {
	_, c := newTestCache(t)
	_, err := c.Load(context.Background())
	if !errors.Is(err, ErrEntryNotFound) {
		t.Errorf("Load() error = %v, want ErrEntryNotFound", err)
	}
}

func TestLoadInvalidEntry(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]string
	}{
		{"connected flag missing", map[string]string{FieldIdentity: testIdentity}},
		{"identity missing", map[string]string{FieldConnected: "true", FieldNetwork: "testnet"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mr, c := newTestCache(t)
			for k, v := range tt.fields {
				mr.HSet("wallet:default", k, v)
			}
			_, err := c.Load(context.Background())
			if !errors.Is(err, ErrInvalidEntry) {
				t.Errorf("Load() error = %v, want ErrInvalidEntry", err)
			}
		})
	}
}

func TestClear(t *testing.T) {
	mr, c := newTestCache(t)
	ctx := context.Background()

	_ = c.Save(ctx, Entry{Identity: testIdentity, Network: "testnet"})
	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if mr.Exists("wallet:default") {
		t.Error("key still exists after Clear()")
	}
	// 存在しない場合もエラーにならない
	if err := c.Clear(ctx); err != nil {
		t.Errorf("Clear() on missing key error = %v", err)
	}
}

func TestValkeyUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{
		Addr:        mr.Addr(),
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()
	c := NewValkeyCache(client, "default")
	mr.Close()

	_, err := c.Load(context.Background())
	var ve *apperr.ValkeyError
	if !errors.As(err, &ve) {
		t.Fatalf("Load() error = %v, want ValkeyError", err)
	}
	if ve.Operation != "HGETALL" || ve.Key != "wallet:default" {
		t.Errorf("ValkeyError = %+v", ve)
	}
	if !errors.Is(err, apperr.ErrValkeyConnection) && !errors.Is(err, apperr.ErrValkeyCommand) {
		t.Errorf("Load() error = %v, want Valkey sentinel", err)
	}

	if err := c.Save(context.Background(), Entry{Identity: testIdentity}); err == nil {
		t.Error("Save() expected error when Valkey is down")
	}
}

func TestKey(t *testing.T) {
	if got := Key(config.CacheKeyPrefix, "alice"); got != "wallet:alice" {
		t.Errorf("Key() = %q, want %q", got, "wallet:alice")
	}
}
