package rivals

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the rival set as a Redis set.
type RedisStore struct {
	client redis.Cmdable
	key    string
}

// NewRedisStore stores under Key when key is empty.
func NewRedisStore(client redis.Cmdable, key string) *RedisStore {
	if key == "" {
		key = Key
	}
	return &RedisStore{client: client, key: key}
}

// Load reads the set members.
func (r *RedisStore) Load(ctx context.Context) ([]string, error) {
	members, err := r.client.SMembers(ctx, r.key).Result()
	if err != nil {
		return nil, fmt.Errorf("redis smembers %s: %w", r.key, err)
	}
	return Normalize(members), nil
}

// Save replaces the set atomically.
func (r *RedisStore) Save(ctx context.Context, rivals []string) error {
	rivals = Normalize(rivals)
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, r.key)
		if len(rivals) > 0 {
			members := make([]any, len(rivals))
			for i, abbrev := range rivals {
				members[i] = abbrev
			}
			pipe.SAdd(ctx, r.key, members...)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis replace %s: %w", r.key, err)
	}
	return nil
}
