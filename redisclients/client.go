package redisclients

import (
	"context"

	"github.com/pkg/errors"
)

// ErrNotFound is returned when a key does not exist
var ErrNotFound = errors.New("redis key not found")

type RedisClient interface {
	// Get returns a byte slice stored under the provided key
	Get(ctx context.Context, key string) ([]byte, error)
	// HGetAll returns all fields of a hash, ErrNotFound if there are none
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	// CheckBits returns true if all bits at the specified offsets are set to 1
	CheckBits(ctx context.Context, key string, offsets ...uint64) (bool, error)
	Pipeliner(ctx context.Context) Pipeliner
}

// Pipeliner queues commands until Exec is called
type Pipeliner interface {
	Set(key string, data []byte) Pipeliner
	HSet(key string, values map[string]interface{}) Pipeliner
	// SetBits sets bits at the specified offsets to 1
	SetBits(key string, offsets ...uint64) Pipeliner
	Del(keys ...string) Pipeliner
	Exec() error
}
