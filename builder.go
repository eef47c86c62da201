package bloom

import (
	"context"

	"github.com/pkg/errors"
)

const DefaultFalsePositiveRate = 0.01

type BuildOptions struct {
	// FalsePositiveRate must be within (0, 1), see DefaultFalsePositiveRate
	FalsePositiveRate float64
	// ExpectedElements is taken from the source when zero, see Counter
	ExpectedElements uint64
}

// Builder sizes, fills, saves and restores filters, reporting every stage to its hooks.
type Builder struct {
	logger Logger
	hooks  *Hooks
}

type BuilderOption func(b *Builder)

func WithLogger(logger Logger) BuilderOption {
	return func(b *Builder) {
		b.logger = logger
	}
}

func WithHooks(hooks *Hooks) BuilderOption {
	return func(b *Builder) {
		b.hooks = hooks
	}
}

func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{
		logger: StdLogger(nil),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build creates a filter holding every word of src.
func (b *Builder) Build(ctx context.Context, src WordSource, opts BuildOptions) (*Filter, error) {
	b.hooks.Before(Sizing, opts)
	params, sizingErr := b.size(ctx, src, opts)
	b.hooks.After(Sizing, sizingErr, params)
	if sizingErr != nil {
		return nil, sizingErr
	}

	filter, newErr := New(params.HashRounds, params.Bits)
	if newErr != nil {
		return nil, newErr
	}

	b.hooks.Before(LoadWords, params)
	var added uint64
	loadErr := src.Each(ctx, func(word string) error {
		filter.Add(word)
		added++
		return nil
	})
	b.hooks.After(LoadWords, loadErr, added)
	if loadErr != nil {
		return nil, errors.Wrap(loadErr, "words loading failed")
	}
	b.logger("bloom filter built with", params.Bits, "bits and", params.HashRounds, "hash functions from", added, "words")
	return filter, nil
}

func (b *Builder) size(ctx context.Context, src WordSource, opts BuildOptions) (Params, error) {
	expected := opts.ExpectedElements
	if expected == 0 {
		counter, ok := src.(Counter)
		if !ok {
			return Params{}, errors.Wrap(ErrInvalidParameter, "expected elements count is required for this source")
		}
		var countErr error
		if expected, countErr = counter.Count(ctx); countErr != nil {
			return Params{}, errors.Wrap(countErr, "words counting failed")
		}
		b.logger("estimated", expected, "elements from the source")
	}
	return OptimalParameters(expected, opts.FalsePositiveRate)
}

// Save persists filter into store.
func (b *Builder) Save(ctx context.Context, store Store, filter *Filter) error {
	b.hooks.Before(Persist, filter.Params())
	err := store.Save(ctx, filter)
	b.hooks.After(Persist, err, filter.Params())
	if err != nil {
		return errors.Wrap(err, "bloom filter saving failed")
	}
	b.logger("bloom filter saved to", store)
	return nil
}

// Load restores a filter from store.
func (b *Builder) Load(ctx context.Context, store Store) (*Filter, error) {
	b.hooks.Before(Restore)
	filter, err := store.Load(ctx)
	b.hooks.After(Restore, err, filter)
	if err != nil {
		return nil, errors.Wrap(err, "bloom filter loading failed")
	}
	return filter, nil
}
