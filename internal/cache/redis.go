package cache

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache keys
const (
	DashboardKey    = "dashboard:summary"
	StockKeyFmt     = "stock:season:%d"
	SeasonReportFmt = "reports:season:%d"
	ActiveSeasonKey = "seasons:active"
)

var client *redis.Client

// Init initializes the Redis connection. The app degrades gracefully
// when Redis is unreachable: every helper no-ops on a nil client.
func Init() error {
	host := os.Getenv("REDIS_SERVICE_HOST")
	if host == "" {
		host = "redis" // fallback to service name
	}
	port := os.Getenv("REDIS_SERVICE_PORT")
	if port == "" {
		port = "6379"
	}

	client = redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		client = nil
		return err
	}
	return nil
}

// GetClient returns the Redis client
func GetClient() *redis.Client {
	return client
}

// StockKey builds the per-season stock cache key
func StockKey(seasonID int) string {
	return fmt.Sprintf(StockKeyFmt, seasonID)
}

// SeasonReportKey builds the per-season report cache key
func SeasonReportKey(seasonID int) string {
	return fmt.Sprintf(SeasonReportFmt, seasonID)
}

// GetCached returns cached data for a key
func GetCached(ctx context.Context, key string) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// SetCached stores data with a TTL
func SetCached(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if client == nil {
		return
	}
	client.Set(ctx, key, data, ttl)
}

// InvalidatePattern removes all keys matching a glob pattern
func InvalidatePattern(ctx context.Context, pattern string) {
	if client == nil {
		return
	}
	keys, err := client.Keys(ctx, pattern).Result()
	if err == nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

// InvalidateKeys removes specific cache keys
func InvalidateKeys(ctx context.Context, keys ...string) {
	if client == nil || len(keys) == 0 {
		return
	}
	client.Del(ctx, keys...)
}

// InvalidateTradeCaches clears everything derived from purchases, sales
// and payments: stock, dashboard rollups and season reports.
// Called when: RecordPurchase/Sale/Payment and their edits and deletes
func InvalidateTradeCaches(ctx context.Context) {
	InvalidatePattern(ctx, "stock:*")
	InvalidatePattern(ctx, "reports:*")
	InvalidateKeys(ctx, DashboardKey)
}

// InvalidateSeasonCaches clears caches keyed on the active season
// Called when: StartSeason, ActivateSeason, UpdateSeason, DeleteSeason
func InvalidateSeasonCaches(ctx context.Context) {
	InvalidateKeys(ctx, ActiveSeasonKey, DashboardKey)
	InvalidatePattern(ctx, "reports:*")
}

// InvalidateSettingCaches clears all setting-related caches
// Called when: UpdateSetting, ChangePIN
func InvalidateSettingCaches(ctx context.Context) {
	InvalidatePattern(ctx, "settings:*")
}

// IsHealthy returns true if Redis connection is working
func IsHealthy() bool {
	if client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return client.Ping(ctx).Err() == nil
}
