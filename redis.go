package bloom

import (
	"context"
	"strconv"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/vkuptcov/spellbloom/redisclients"
)

const (
	redisParamsHashRounds = "hash_round_count"
	redisParamsBits       = "bit_count"
)

// RedisStore keeps the payload as a Redis string under "<key>|bits" and the
// params as a hash under "<key>|params".
type RedisStore struct {
	client redisclients.RedisClient
	key    string
}

func NewRedisStore(client redisclients.RedisClient, key string) *RedisStore {
	return &RedisStore{client: client, key: key}
}

func (s *RedisStore) Save(ctx context.Context, filter *Filter) error {
	params := filter.Params()
	err := s.client.Pipeliner(ctx).
		Set(s.bitsKey(), filter.Bytes()).
		HSet(s.paramsKey(), map[string]interface{}{
			redisParamsHashRounds: params.HashRounds,
			redisParamsBits:       params.Bits,
		}).
		Exec()
	return errors.Wrapf(err, "redis filter %q save failed", s.key)
}

func (s *RedisStore) Load(ctx context.Context) (*Filter, error) {
	var batchErr *multierror.Error
	params, paramsErr := s.Params(ctx)
	if paramsErr != nil {
		batchErr = multierror.Append(batchErr, paramsErr)
	}
	payload, getErr := s.client.Get(ctx, s.bitsKey())
	if getErr != nil {
		batchErr = multierror.Append(batchErr, resourceErr(getErr, s.bitsKey()))
	}
	if err := batchErr.ErrorOrNil(); err != nil {
		return nil, err
	}
	filter, err := NewFromBytes(params.HashRounds, params.Bits, payload)
	return filter, errors.Wrapf(err, "redis key %q", s.bitsKey())
}

// Params reads the params hash.
func (s *RedisStore) Params(ctx context.Context) (Params, error) {
	fields, err := s.client.HGetAll(ctx, s.paramsKey())
	if err != nil {
		return Params{}, resourceErr(err, s.paramsKey())
	}
	hashRounds, hashRoundsErr := strconv.ParseUint(fields[redisParamsHashRounds], 10, 0)
	bits, bitsErr := strconv.ParseUint(fields[redisParamsBits], 10, 0)
	if hashRoundsErr != nil || bitsErr != nil {
		return Params{}, errors.Wrapf(
			ErrMissingResource,
			"redis hash %q is malformed: %v",
			s.paramsKey(),
			multierror.Append(hashRoundsErr, bitsErr),
		)
	}
	p := Params{HashRounds: uint(hashRounds), Bits: uint(bits)}
	return p, errors.Wrapf(p.Validate(), "redis hash %q", s.paramsKey())
}

// Remote returns a filter operating on the stored payload in place.
// The filter has to be saved first.
func (s *RedisStore) Remote(ctx context.Context) (*RemoteFilter, error) {
	params, err := s.Params(ctx)
	if err != nil {
		return nil, err
	}
	return &RemoteFilter{client: s.client, key: s.bitsKey(), params: params}, nil
}

// Drop removes both keys.
func (s *RedisStore) Drop(ctx context.Context) error {
	return errors.Wrapf(
		s.client.Pipeliner(ctx).Del(s.bitsKey(), s.paramsKey()).Exec(),
		"redis filter %q drop failed",
		s.key,
	)
}

func (s *RedisStore) String() string {
	return "redis key " + s.key
}

func (s *RedisStore) bitsKey() string {
	return s.key + "|bits"
}

func (s *RedisStore) paramsKey() string {
	return s.key + "|params"
}

func resourceErr(err error, key string) error {
	if errors.Is(err, redisclients.ErrNotFound) {
		return errors.Wrapf(ErrMissingResource, "redis key %q", key)
	}
	return errors.Wrapf(err, "redis key %q read failed", key)
}

// RemoteFilter sets and checks bits of a payload stored in Redis without
// downloading it. It answers exactly as a Filter restored from the same payload.
type RemoteFilter struct {
	client redisclients.RedisClient
	key    string
	params Params
}

func (r *RemoteFilter) Params() Params {
	return r.params
}

func (r *RemoteFilter) Add(ctx context.Context, item string) error {
	err := r.client.Pipeliner(ctx).SetBits(r.key, r.params.offsets(item)...).Exec()
	return errors.Wrapf(err, "redis key %q bits set failed", r.key)
}

func (r *RemoteFilter) Contains(ctx context.Context, item string) (bool, error) {
	isSet, err := r.client.CheckBits(ctx, r.key, r.params.offsets(item)...)
	return isSet, errors.Wrapf(err, "redis key %q bits check failed", r.key)
}

var _ Store = &RedisStore{}
