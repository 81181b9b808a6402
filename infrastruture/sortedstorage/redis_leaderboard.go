package sortedstorage

import (
	"context"
	"time"

	dmn "github.com/dpersh/robot/domain"
	"github.com/dpersh/robot/service/i"
	"github.com/redis/go-redis/v9"
)

var _ i.Leaderboard = &RedisLeaderboard{}

// RedisLeaderboard keeps scored boards as Redis sorted sets with TTL support.
type RedisLeaderboard struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisLeaderboard initializes a RedisLeaderboard with the provided Redis client and TTL.
func NewRedisLeaderboard(client *redis.Client, ttlSeconds int) *RedisLeaderboard {
	return &RedisLeaderboard{
		client: client,
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}
}

// Add sets the member's score on the board and sets expiration if necessary.
func (rl *RedisLeaderboard) Add(ctx context.Context, board string, score float64, member string) error {
	_, err := rl.client.ZAdd(ctx, board, redis.Z{Score: score, Member: member}).Result()
	if err != nil {
		return err
	}

	// Set expiration only if it's not already set
	ttl, err := rl.client.TTL(ctx, board).Result()
	if err == nil && ttl == -1 && rl.ttl > 0 {
		_ = rl.client.Expire(ctx, board, rl.ttl).Err()
	}

	return nil
}

// Top retrieves up to `amount` members with the highest scores.
func (rl *RedisLeaderboard) Top(ctx context.Context, board string, amount int64) ([]dmn.Ranked, error) {
	if amount <= 0 {
		return nil, nil
	}

	entries, err := rl.client.ZRevRangeWithScores(ctx, board, 0, amount-1).Result()
	if err != nil {
		return nil, err
	}

	ranked := make([]dmn.Ranked, 0, len(entries))
	for _, e := range entries {
		member, ok := e.Member.(string)
		if !ok {
			continue
		}
		ranked = append(ranked, dmn.Ranked{Member: member, Score: e.Score})
	}

	return ranked, nil
}

// Count returns the number of members on the board.
func (rl *RedisLeaderboard) Count(ctx context.Context, board string) int64 {
	return rl.client.ZCard(ctx, board).Val()
}
