package bloom

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// Store persists a filter payload together with its parameters.
type Store interface {
	Save(ctx context.Context, filter *Filter) error
	Load(ctx context.Context) (*Filter, error)
}

const (
	DefaultFilterPath = "words.dat"
	DefaultParamsPath = "config.json"
)

// FileStore keeps the raw payload and the params sidecar in two files.
type FileStore struct {
	FilterPath string
	ParamsPath string
}

func NewFileStore(filterPath, paramsPath string) *FileStore {
	if filterPath == "" {
		filterPath = DefaultFilterPath
	}
	if paramsPath == "" {
		paramsPath = DefaultParamsPath
	}
	return &FileStore{FilterPath: filterPath, ParamsPath: paramsPath}
}

func (s *FileStore) Save(_ context.Context, filter *Filter) error {
	var batchErr *multierror.Error
	if writeErr := os.WriteFile(s.FilterPath, filter.Bytes(), 0o644); writeErr != nil {
		batchErr = multierror.Append(batchErr, errors.Wrapf(writeErr, "filter file %q write failed", s.FilterPath))
	}
	if writeErr := WriteParams(s.ParamsPath, filter.Params()); writeErr != nil {
		batchErr = multierror.Append(batchErr, writeErr)
	}
	return batchErr.ErrorOrNil()
}

func (s *FileStore) Load(_ context.Context) (*Filter, error) {
	var batchErr *multierror.Error
	params, paramsErr := ReadParams(s.ParamsPath)
	if paramsErr != nil {
		batchErr = multierror.Append(batchErr, paramsErr)
	}
	payload, readErr := os.ReadFile(s.FilterPath)
	if readErr != nil {
		batchErr = multierror.Append(batchErr, errors.Wrapf(ErrMissingResource, "filter file %q: %v", s.FilterPath, readErr))
	}
	if err := batchErr.ErrorOrNil(); err != nil {
		return nil, err
	}
	filter, err := NewFromBytes(params.HashRounds, params.Bits, payload)
	return filter, errors.Wrapf(err, "filter file %q", s.FilterPath)
}

func (s *FileStore) String() string {
	return fmt.Sprintf("%s (params in %s)", s.FilterPath, s.ParamsPath)
}

var _ Store = &FileStore{}
