package order

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// KeyNextOrderID is the redis counter behind RedisIDs.
const KeyNextOrderID = "orders:next_id"

type IDSource interface {
	Next(ctx context.Context) (int, error)
}

// RandomIDs draws from 1..2^31-1. Collisions are possible but unlikely.
type RandomIDs struct {
	mu sync.Mutex
	r  *rand.Rand
}

func NewRandomIDs(seed int64) *RandomIDs {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RandomIDs{r: rand.New(rand.NewSource(seed))}
}

func (g *RandomIDs) Next(context.Context) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return int(g.r.Int31n(math.MaxInt32)) + 1, nil
}

// RedisIDs hands out increasing ids from a shared counter so several
// orchestrators never reuse one.
type RedisIDs struct {
	rdb *redis.Client
	key string
}

func NewRedisClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
}

func NewRedisIDs(rdb *redis.Client) *RedisIDs {
	return &RedisIDs{rdb: rdb, key: KeyNextOrderID}
}

func (g *RedisIDs) Next(ctx context.Context) (int, error) {
	n, err := g.rdb.Incr(ctx, g.key).Result()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
