package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gonum.org/v1/gonum/mat"
)

// RedisStore caches tables in a redis instance so repeated runs against
// the same model can warm start without sharing a filesystem.
type RedisStore struct {
	client *redis.Client
}

var _ Store = &RedisStore{}

func NewRedisStore(addr string) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{
			Addr:        addr,
			DialTimeout: 5 * time.Second,
		}),
	}
}

func redisKey(name string) string {
	return "svplan:table:" + name
}

func (r *RedisStore) Save(name string, q *mat.Dense) error {
	data, err := encode(q)
	if err != nil {
		return err
	}
	return r.client.Set(context.Background(), redisKey(name), data, 0).Err()
}

func (r *RedisStore) Load(name string, rows, cols int) (*mat.Dense, error) {
	data, err := r.client.Get(context.Background(), redisKey(name)).Bytes()
	if err == redis.Nil {
		return nil, fmt.Errorf("no cached table %q", name)
	}
	if err != nil {
		return nil, err
	}
	return decode(name, data, rows, cols)
}
