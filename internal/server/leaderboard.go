package server

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const leaderboardKey = "globetrotter:leaderboard"

// Leaderboard keeps the top-players ranking in a Redis sorted set so
// reads don't hit SQLite. It is a cache: SQLite remains the source of
// truth and handlers fall back to it when Redis is unavailable.
type Leaderboard struct {
	rdb *redis.Client
}

func NewLeaderboard(rdb *redis.Client) *Leaderboard {
	return &Leaderboard{rdb: rdb}
}

// Record sets the member's score. ZADD with an absolute value keeps the
// set consistent even if an update was missed earlier.
func (l *Leaderboard) Record(ctx context.Context, username string, score int) error {
	if username == "" {
		return nil
	}
	return l.rdb.ZAdd(ctx, leaderboardKey, redis.Z{
		Score:  float64(score),
		Member: username,
	}).Err()
}

// Remove drops a member, used when a player renames.
func (l *Leaderboard) Remove(ctx context.Context, username string) error {
	if username == "" {
		return nil
	}
	return l.rdb.ZRem(ctx, leaderboardKey, username).Err()
}

// Top returns the n highest-scoring members, best first.
func (l *Leaderboard) Top(ctx context.Context, n int) ([]LeaderboardEntry, error) {
	zs, err := l.rdb.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("reading leaderboard: %w", err)
	}

	entries := make([]LeaderboardEntry, 0, len(zs))
	for _, z := range zs {
		username, _ := z.Member.(string)
		entries = append(entries, LeaderboardEntry{
			Username: username,
			Score:    int(z.Score),
		})
	}
	return entries, nil
}
