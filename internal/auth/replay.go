package auth

import (
	"context"
	"sync"
	"time"

	"jobboard/chat/internal/config"

	"github.com/redis/go-redis/v9"
)

// ReplayGuard remembers redeemed token ids until they would have expired anyway.
type ReplayGuard interface {
	// Consume reports true the first time jti is seen within ttl.
	Consume(ctx context.Context, jti string, ttl time.Duration) (bool, error)
}

// RedisReplayGuard shares redeemed ids across gateway instances.
type RedisReplayGuard struct {
	rdb *redis.Client
}

func NewRedisReplayGuard(rdb *redis.Client) *RedisReplayGuard {
	return &RedisReplayGuard{rdb: rdb}
}

func (g *RedisReplayGuard) Consume(ctx context.Context, jti string, ttl time.Duration) (bool, error) {
	return g.rdb.SetNX(ctx, config.UsedTokenKeyPrefix+jti, 1, ttl).Result()
}

// MemoryReplayGuard is the single-instance guard.
type MemoryReplayGuard struct {
	mu   sync.Mutex
	seen map[string]time.Time
	now  func() time.Time
}

func NewMemoryReplayGuard() *MemoryReplayGuard {
	return &MemoryReplayGuard{seen: make(map[string]time.Time), now: time.Now}
}

func (g *MemoryReplayGuard) Consume(_ context.Context, jti string, ttl time.Duration) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	for id, until := range g.seen {
		if now.After(until) {
			delete(g.seen, id)
		}
	}
	if _, used := g.seen[jti]; used {
		return false, nil
	}
	g.seen[jti] = now.Add(ttl)
	return true, nil
}
