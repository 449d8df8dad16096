// Package cache optionally caches fetched playlist bodies in Redis.
// It is only wired up when REDIS_URL is configured.
package cache

import (
	"context"
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis wraps a go-redis client with playlist-cache helpers.
type Redis struct {
	client *redis.Client
}

// New parses a Redis URL (e.g. "redis://host:6379/0") and returns a
// client. Call Ping to verify the connection.
func New(rawURL string) (*Redis, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return &Redis{client: redis.NewClient(opts)}, nil
}

// Ping checks the connection to Redis.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close shuts down the Redis client.
func (r *Redis) Close() error {
	return r.client.Close()
}

// Playlist returns the cached body for url, or ok=false on a miss.
// Cache failures count as misses so the caller falls through to a fetch.
func (r *Redis) Playlist(ctx context.Context, url string) (body string, ok bool) {
	raw, err := r.client.Get(ctx, playlistKey(url)).Result()
	if err != nil {
		return "", false
	}
	return raw, true
}

// StorePlaylist caches the playlist body for url with the given TTL.
func (r *Redis) StorePlaylist(ctx context.Context, url, body string, ttl time.Duration) error {
	if err := r.client.Set(ctx, playlistKey(url), body, ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// playlistKey hashes the URL so arbitrary playlist URLs make safe keys.
func playlistKey(url string) string {
	return fmt.Sprintf("tvlens:playlist:%x", sha256.Sum256([]byte(url)))
}
