package redisclients

import (
	"context"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
)

type goRedisClient struct {
	client redis.UniversalClient
}

func NewGoRedisClient(client redis.UniversalClient) RedisClient {
	return &goRedisClient{client: client}
}

func (g *goRedisClient) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := g.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, errors.Wrapf(ErrNotFound, "key %q", key)
	}
	return data, err
}

func (g *goRedisClient) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	fields, err := g.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errors.Wrapf(ErrNotFound, "hash %q", key)
	}
	return fields, nil
}

func (g *goRedisClient) CheckBits(ctx context.Context, key string, offsets ...uint64) (bool, error) {
	bitFieldArgs := make([]interface{}, 0, len(offsets)*3)
	for _, offset := range offsets {
		bitFieldArgs = append(bitFieldArgs, "GET", "u1", offset)
	}
	res, err := g.client.BitField(ctx, key, bitFieldArgs...).Result()
	if err != nil {
		return false, err
	}
	for _, s := range res {
		if s == 0 {
			return false, nil
		}
	}
	return true, nil
}

func (g *goRedisClient) Pipeliner(ctx context.Context) Pipeliner {
	return &goRedisPipeliner{
		ctx:       ctx,
		pipeliner: g.client.TxPipeline(),
	}
}

type goRedisPipeliner struct {
	ctx       context.Context
	pipeliner redis.Pipeliner
}

func (g *goRedisPipeliner) Set(key string, data []byte) Pipeliner {
	g.pipeliner.Set(g.ctx, key, data, 0)
	return g
}

func (g *goRedisPipeliner) HSet(key string, values map[string]interface{}) Pipeliner {
	g.pipeliner.HSet(g.ctx, key, values)
	return g
}

func (g *goRedisPipeliner) SetBits(key string, offsets ...uint64) Pipeliner {
	bitFieldArgs := make([]interface{}, 0, len(offsets)*4)
	for _, offset := range offsets {
		bitFieldArgs = append(bitFieldArgs, "SET", "u1", offset, 1)
	}
	g.pipeliner.BitField(g.ctx, key, bitFieldArgs...)
	return g
}

func (g *goRedisPipeliner) Del(keys ...string) Pipeliner {
	g.pipeliner.Del(g.ctx, keys...)
	return g
}

func (g *goRedisPipeliner) Exec() error {
	_, err := g.pipeliner.Exec(g.ctx)
	return err
}

var _ RedisClient = &goRedisClient{}
