package report

import (
	"context"
	"time"

	"github.com/go-redis/redis/v9"
	"github.com/pkg/errors"
)

// LatestKey is the redis key of the latest report of the homework.
func LatestKey(homework string) string {
	return "hwgrade:latest:" + homework
}

// RedisSink keeps the latest report of each homework in redis.
type RedisSink struct {
	Client redis.Cmdable
	// Expiration of the stored report, zero keeps it forever.
	Expiration time.Duration
}

func (s *RedisSink) Name() string { return "redis" }

func (s *RedisSink) Save(ctx context.Context, r *Report) error {
	data, err := r.YAML()
	if err != nil {
		return err
	}
	return errors.Wrap(s.Client.Set(ctx, LatestKey(r.Homework), data, s.Expiration).Err(), "redis set")
}

func loadLatest(ctx context.Context, client redis.Cmdable, homework string) (*Report, error) {
	data, err := client.Get(ctx, LatestKey(homework)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "redis get")
	}
	return Parse(data)
}
