package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const informationKeyFmt = "information:%s"

var client *redis.Client

// Init connects to Redis. On failure the client stays nil and every
// cache call degrades to a no-op: the app works without Redis, just
// slower.
func Init(addr, password string, db int) error {
	if addr == "" {
		addr = "localhost:6379"
	}

	client = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
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

// IsHealthy reports whether the Redis connection is alive.
func IsHealthy() bool {
	if client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return client.Ping(ctx).Err() == nil
}

func hashCredentials(email, password string) string {
	h := sha256.New()
	h.Write([]byte(email + ":" + password))
	return "auth:" + hex.EncodeToString(h.Sum(nil))[:32]
}

// GetCachedAuth checks if credentials are cached and valid.
func GetCachedAuth(ctx context.Context, email, password string) (int64, bool) {
	if client == nil {
		return 0, false
	}
	userID, err := client.Get(ctx, hashCredentials(email, password)).Int64()
	if err != nil {
		return 0, false
	}
	return userID, true
}

// CacheAuth caches valid credentials for 15 minutes.
func CacheAuth(ctx context.Context, email, password string, userID int64) {
	if client == nil {
		return
	}
	client.Set(ctx, hashCredentials(email, password), userID, 15*time.Minute)
}

// GetInformation loads a cached category list into dest. Returns false
// on a miss or when degraded.
func GetInformation(ctx context.Context, category string, dest any) bool {
	if client == nil {
		return false
	}
	data, err := client.Get(ctx, fmt.Sprintf(informationKeyFmt, category)).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(data, dest) == nil
}

// SetInformation caches a category list for 10 minutes. The reference
// data changes rarely outside of explicit edits, and those invalidate.
func SetInformation(ctx context.Context, category string, records any) {
	if client == nil {
		return
	}
	data, err := json.Marshal(records)
	if err != nil {
		return
	}
	client.Set(ctx, fmt.Sprintf(informationKeyFmt, category), data, 10*time.Minute)
}

// InvalidateInformation drops the cached list for one category. Called
// on every information write and after a merge.
func InvalidateInformation(ctx context.Context, category string) {
	if client == nil {
		return
	}
	client.Del(ctx, fmt.Sprintf(informationKeyFmt, category))
}
