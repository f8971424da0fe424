package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/mr1hm/go-sachet-alerts/internal/config"
	"github.com/mr1hm/go-sachet-alerts/internal/models"
)

// Redis stores the latest batch as a JSON snapshot and announces it on a
// pub/sub channel with the record count as payload.
type Redis struct {
	client *redis.Client
	cfg    config.RedisConfig
}

func NewRedis(client *redis.Client, cfg config.RedisConfig) *Redis {
	return &Redis{client: client, cfg: cfg}
}

// NewRedisFromURL parses a redis:// URL and connects lazily.
func NewRedisFromURL(cfg config.RedisConfig) (*Redis, error) {
	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("error parsing redis url: %w", err)
	}
	return NewRedis(redis.NewClient(opt), cfg), nil
}

func (r *Redis) Name() string {
	return "redis"
}

func (r *Redis) Deliver(ctx context.Context, batch []models.Disaster) error {
	if batch == nil {
		batch = []models.Disaster{}
	}
	data, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("serialize snapshot: %w", err)
	}

	if err := r.client.Set(ctx, r.cfg.SnapshotKey, data, r.cfg.TTL).Err(); err != nil {
		return fmt.Errorf("error writing snapshot: %w", err)
	}
	if err := r.client.Publish(ctx, r.cfg.Channel, strconv.Itoa(len(batch))).Err(); err != nil {
		return fmt.Errorf("error publishing update: %w", err)
	}
	return nil
}

// Latest returns the last stored snapshot, or nil when none exists or it
// has expired.
func (r *Redis) Latest(ctx context.Context) ([]models.Disaster, error) {
	data, err := r.client.Get(ctx, r.cfg.SnapshotKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading snapshot: %w", err)
	}

	var batch []models.Disaster
	if err := json.Unmarshal(data, &batch); err != nil {
		return nil, fmt.Errorf("error decoding snapshot: %w", err)
	}
	return batch, nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
