package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "reservation:session:"

// Redis stores sessions in redis so the booking API can run behind a load
// balancer. Entries expire with the session TTL.
type Redis struct {
	client *redis.Client
}

// NewRedis connects to redis and pings it so misconfiguration fails at
// startup, not on the first booking.
func NewRedis(addr, password string, db int) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return &Redis{client: client}, nil
}

func (r *Redis) Set(ctx context.Context, id string, s *State, ttl time.Duration) error {
	buf, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, redisKeyPrefix+id, buf, ttl).Err()
}

func (r *Redis) Get(ctx context.Context, id string) (*State, error) {
	raw, err := r.client.Get(ctx, redisKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var s State
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *Redis) Clear(ctx context.Context, id string) error {
	return r.client.Del(ctx, redisKeyPrefix+id).Err()
}
