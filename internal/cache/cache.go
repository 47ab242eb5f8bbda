// Package cache keeps recently served chunk records in Redis, in front of
// the durable store. It is strictly best-effort: misses and Redis failures
// fall through to regeneration and never fail a request.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/cdanek/hexgrid/hex"
	"github.com/cdanek/hexgrid/internal/worldgen"
)

// Cache is a Redis-backed chunk record cache.
type Cache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// New creates a cache over an existing Redis client. Keys are namespaced
// with prefix and expire after ttl.
func New(client *redis.Client, prefix string, ttl time.Duration) *Cache {
	return &Cache{client: client, prefix: prefix, ttl: ttl}
}

func (c *Cache) key(chunk hex.Coord) string {
	return fmt.Sprintf("%schunk:%d:%d", c.prefix, chunk.X, chunk.Y)
}

// Get returns the cached record for a chunk, if present and decodable.
func (c *Cache) Get(ctx context.Context, chunk hex.Coord) (worldgen.ChunkInfo, bool) {
	data, err := c.client.Get(ctx, c.key(chunk)).Bytes()
	if err == redis.Nil {
		return worldgen.ChunkInfo{}, false
	}
	if err != nil {
		log.Printf("Warning: chunk cache read failed for %v: %v", chunk, err)
		return worldgen.ChunkInfo{}, false
	}

	var info worldgen.ChunkInfo
	if err := json.Unmarshal(data, &info); err != nil {
		log.Printf("Warning: dropping undecodable cache entry for %v: %v", chunk, err)
		return worldgen.ChunkInfo{}, false
	}
	return info, true
}

// Put stores a chunk record with the configured TTL.
func (c *Cache) Put(ctx context.Context, info worldgen.ChunkInfo) {
	data, err := json.Marshal(info)
	if err != nil {
		log.Printf("Warning: failed to encode chunk %v for cache: %v", info.Chunk, err)
		return
	}
	if err := c.client.Set(ctx, c.key(info.Chunk), data, c.ttl).Err(); err != nil {
		log.Printf("Warning: chunk cache write failed for %v: %v", info.Chunk, err)
	}
}
