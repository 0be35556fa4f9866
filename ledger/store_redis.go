package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps snapshots as JSON strings under prefix+profile.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "roadtrip:ledger:"
	}
	return &RedisStore{client: client, prefix: prefix}
}

// DialRedis connects to addr and checks the server answers.
func DialRedis(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ledger: redis ping %s: %w", addr, err)
	}
	return client, nil
}

func (r *RedisStore) key(profile string) string {
	return r.prefix + profile
}

func (r *RedisStore) Load(ctx context.Context, profile string) (*Snapshot, error) {
	data, err := r.client.Get(ctx, r.key(profile)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoSave
	}
	if err != nil {
		return nil, fmt.Errorf("ledger: redis get %s: %w", profile, err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("ledger: decode snapshot: %w", err)
	}
	return &snap, nil
}

func (r *RedisStore) Save(ctx context.Context, profile string, snap *Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("ledger: encode snapshot: %w", err)
	}
	if err := r.client.Set(ctx, r.key(profile), data, 0).Err(); err != nil {
		return fmt.Errorf("ledger: redis set %s: %w", profile, err)
	}
	return nil
}
