package bloom

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type FileStoreSuite struct {
	store *FileStore
	suite.Suite
}

func (st *FileStoreSuite) SetupTest() {
	dir := st.T().TempDir()
	st.store = NewFileStore(filepath.Join(dir, "words.dat"), filepath.Join(dir, "config.json"))
}

func (st *FileStoreSuite) TestDefaults() {
	store := NewFileStore("", "")
	st.Equal(DefaultFilterPath, store.FilterPath)
	st.Equal(DefaultParamsPath, store.ParamsPath)
}

func (st *FileStoreSuite) TestSaveAndLoad() {
	filter, err := New(3, 1001)
	st.Require().NoError(err)
	for _, w := range members(50) {
		filter.Add(w)
	}
	st.Require().NoError(st.store.Save(context.Background(), filter))

	payload, err := os.ReadFile(st.store.FilterPath)
	st.Require().NoError(err)
	st.Len(payload, 126, "payload holds ceil(1001/8) bytes and nothing else")

	restored, err := st.store.Load(context.Background())
	st.Require().NoError(err)
	st.Equal(filter.Params(), restored.Params())
	st.Equal(filter.Bytes(), restored.Bytes())
	for _, w := range members(50) {
		st.True(restored.Contains(w), "value %q expected in restored filter", w)
	}
}

func (st *FileStoreSuite) TestLoadMissingResources() {
	_, err := st.store.Load(context.Background())
	st.Require().Error(err)
	st.True(errors.Is(err, ErrMissingResource), "unexpected error %v", err)
	st.Contains(err.Error(), st.store.FilterPath)
	st.Contains(err.Error(), st.store.ParamsPath)
}

func (st *FileStoreSuite) TestLoadMissingPayload() {
	st.Require().NoError(WriteParams(st.store.ParamsPath, Params{HashRounds: 1, Bits: 8}))
	_, err := st.store.Load(context.Background())
	st.True(errors.Is(err, ErrMissingResource), "unexpected error %v", err)
}

func (st *FileStoreSuite) TestLoadTruncatedPayload() {
	st.Require().NoError(WriteParams(st.store.ParamsPath, Params{HashRounds: 5, Bits: 1000}))
	st.Require().NoError(os.WriteFile(st.store.FilterPath, make([]byte, 10), 0o644))
	_, err := st.store.Load(context.Background())
	st.True(errors.Is(err, ErrTruncatedData), "unexpected error %v", err)
}

func TestFileStoreSuite(t *testing.T) {
	suite.Run(t, &FileStoreSuite{})
}
