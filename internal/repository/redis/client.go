package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const ScoreboardKey = "connect4:scoreboard"

// InitRedis connects to Redis. A failed ping is not fatal: the caller gets
// a nil client and the scoreboard falls back to PostgreSQL.
func InitRedis(ctx context.Context, addr, password string, log *zap.SugaredLogger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		log.Warnw("could not connect to Redis, falling back to PostgreSQL only", "addr", addr, "error", err)
		client.Close()
		return nil
	}

	log.Infow("connected to Redis", "addr", addr)
	return client
}

// Scoreboard keeps win/loss/draw counters in a single Redis hash.
type Scoreboard struct {
	client *redis.Client
}

func NewScoreboard(client *redis.Client) *Scoreboard {
	return &Scoreboard{client: client}
}

// Record increments the counter for outcome ("human", "computer" or "draw").
func (s *Scoreboard) Record(ctx context.Context, outcome string) error {
	if err := s.client.HIncrBy(ctx, ScoreboardKey, outcome, 1).Err(); err != nil {
		return fmt.Errorf("failed to record %s result: %w", outcome, err)
	}
	return nil
}

// Tally returns every counter recorded so far.
func (s *Scoreboard) Tally(ctx context.Context) (map[string]int64, error) {
	raw, err := s.client.HGetAll(ctx, ScoreboardKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read scoreboard: %w", err)
	}

	tally := make(map[string]int64, len(raw))
	for outcome, value := range raw {
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("corrupt scoreboard counter %s=%q: %w", outcome, value, err)
		}
		tally[outcome] = n
	}
	return tally, nil
}
