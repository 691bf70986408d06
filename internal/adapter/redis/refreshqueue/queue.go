// Package refreshqueue is the set of entities whose search documents need
// rebuilding after a merge. Entities are stored once per key, so repeated
// merges of the same building collapse into one refresh.
package refreshqueue

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/streletskiy/archimap-sub000/internal/domain"
)

// Queue is a Redis set of entity keys.
type Queue struct {
	client *redis.Client
	key    string
}

// New connects to redisURL and verifies the connection.
func New(redisURL, key string) (*Queue, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return NewWithClient(client, key), nil
}

// NewWithClient creates a queue from an existing client.
func NewWithClient(client *redis.Client, key string) *Queue {
	return &Queue{client: client, key: key}
}

// Enqueue marks entities for refresh.
func (q *Queue) Enqueue(ctx context.Context, entities ...domain.EntityID) error {
	if len(entities) == 0 {
		return nil
	}
	members := make([]any, len(entities))
	for i, e := range entities {
		members[i] = e.String()
	}
	if err := q.client.SAdd(ctx, q.key, members...).Err(); err != nil {
		return fmt.Errorf("enqueue refresh: %w", err)
	}
	return nil
}

// Pop removes and returns up to n entities. Members that do not parse as
// entity keys are dropped.
func (q *Queue) Pop(ctx context.Context, n int) ([]domain.EntityID, error) {
	if n <= 0 {
		return nil, nil
	}
	members, err := q.client.SPopN(ctx, q.key, int64(n)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("pop refresh batch: %w", err)
	}

	out := make([]domain.EntityID, 0, len(members))
	for _, m := range members {
		e, err := domain.ParseEntityID(m)
		if err != nil {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// Len returns the number of queued entities.
func (q *Queue) Len(ctx context.Context) (int64, error) {
	n, err := q.client.SCard(ctx, q.key).Result()
	if err != nil {
		return 0, fmt.Errorf("refresh queue length: %w", err)
	}
	return n, nil
}

// Ping checks if Redis is reachable.
func (q *Queue) Ping(ctx context.Context) error {
	return q.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (q *Queue) Close() error {
	return q.client.Close()
}

// Noop discards refresh requests. Used when no Redis URL is configured.
type Noop struct{}

func (Noop) Enqueue(context.Context, ...domain.EntityID) error { return nil }
