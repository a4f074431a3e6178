package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"coin-server/internal/domain/wallet"
	"coin-server/internal/infrastructure/config"
)

const leaderboardKeyPrefix = "leaderboard:top:"

// LeaderboardCache リーダーボードのリードスルーキャッシュ
// キャッシュ障害は呼び出し側でフォールバックするため、Get/Setの失敗は致命的ではない
type LeaderboardCache struct {
	client *redis.Client
	ttl    time.Duration
	tracer trace.Tracer
}

// NewLeaderboardCache 新しいLeaderboardCacheを作成
func NewLeaderboardCache(cfg *config.RedisConfig) (*LeaderboardCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &LeaderboardCache{
		client: client,
		ttl:    cfg.CacheTTL,
		tracer: otel.Tracer("leaderboard-cache"),
	}, nil
}

// Close Redis接続を閉じる
func (c *LeaderboardCache) Close() error {
	return c.client.Close()
}

// Get キャッシュされたリーダーボードを取得
// キャッシュミスの場合は (nil, false, nil) を返す
func (c *LeaderboardCache) Get(ctx context.Context, limit int) ([]*wallet.LeaderboardEntry, bool, error) {
	ctx, span := c.tracer.Start(ctx, "LeaderboardCache.Get")
	defer span.End()

	key := cacheKey(limit)
	span.SetAttributes(attribute.String("cache.key", key))

	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		span.SetAttributes(attribute.Bool("cache.hit", false))
		span.SetStatus(otelcodes.Ok, "cache miss")
		return nil, false, nil
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, false, fmt.Errorf("failed to get leaderboard cache: %w", err)
	}

	var entries []*wallet.LeaderboardEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, false, fmt.Errorf("failed to unmarshal leaderboard cache: %w", err)
	}

	span.SetAttributes(attribute.Bool("cache.hit", true))
	span.SetStatus(otelcodes.Ok, "cache hit")
	return entries, true, nil
}

// Set リーダーボードをキャッシュに保存
func (c *LeaderboardCache) Set(ctx context.Context, limit int, entries []*wallet.LeaderboardEntry) error {
	ctx, span := c.tracer.Start(ctx, "LeaderboardCache.Set")
	defer span.End()

	key := cacheKey(limit)
	span.SetAttributes(attribute.String("cache.key", key))

	data, err := json.Marshal(entries)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return fmt.Errorf("failed to marshal leaderboard cache: %w", err)
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return fmt.Errorf("failed to set leaderboard cache: %w", err)
	}

	span.SetStatus(otelcodes.Ok, "cache set")
	return nil
}

func cacheKey(limit int) string {
	return fmt.Sprintf("%s%d", leaderboardKeyPrefix, limit)
}
