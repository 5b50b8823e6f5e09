package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/config"
	"github.com/oyaguma3/wallet-session-poc/pkg/valkey"
	"github.com/redis/go-redis/v9"
)

// NewValkeyClient は設定からValkeyクライアントを生成する。
func NewValkeyClient(cfg *config.Config) (*redis.Client, error) {
	opts := valkey.SessionCacheOptions().
		WithAddr(cfg.ValkeyAddr()).
		WithPassword(cfg.RedisPass).
		WithTimeouts(config.ValkeyConnectTimeout, config.ValkeyCommandTimeout, config.ValkeyCommandTimeout).
		WithPool(config.ValkeyPoolSize, 1)

	client, err := valkey.NewClient(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Valkey: %w", err)
	}
	return client, nil
}

// valkeyCache はCacheインターフェースのValkey実装。
// 1プロファイルにつき1つのハッシュを使用する。
type valkeyCache struct {
	client redis.UniversalClient
	key    string
	ttl    time.Duration
}

// NewValkeyCache は新しいCacheを生成する。
func NewValkeyCache(client redis.UniversalClient, profileID string) Cache {
	return &valkeyCache{
		client: client,
		key:    Key(config.CacheKeyPrefix, profileID),
		ttl:    config.CacheTTL,
	}
}

// Load はキャッシュエントリを取得する。
func (c *valkeyCache) Load(ctx context.Context) (*Entry, error) {
	m, err := c.client.HGetAll(ctx, c.key).Result()
	if err != nil {
		return nil, wrapValkeyError("HGETALL", c.key, err)
	}
	if len(m) == 0 {
		return nil, ErrEntryNotFound
	}
	return entryFromFields(m)
}

// Save はキャッシュエントリを保存する。古いフィールドを残さないよう削除してから書き込む。
func (c *valkeyCache) Save(ctx context.Context, entry Entry) error {
	if entry.Identity == "" {
		return fmt.Errorf("%w: identity is empty", ErrInvalidEntry)
	}
	pipe := c.client.TxPipeline()
	pipe.Del(ctx, c.key)
	pipe.HSet(ctx, c.key, entry.toFields())
	pipe.Expire(ctx, c.key, c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return wrapValkeyError("HSET", c.key, err)
	}
	return nil
}

// Clear はキャッシュエントリを削除する。
func (c *valkeyCache) Clear(ctx context.Context) error {
	if err := c.client.Del(ctx, c.key).Err(); err != nil {
		return wrapValkeyError("DEL", c.key, err)
	}
	return nil
}
