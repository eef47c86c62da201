package bloom

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	requireLib "github.com/stretchr/testify/require"
)

func TestParamsSidecar(t *testing.T) {
	dir := t.TempDir()
	params := Params{HashRounds: 13, Bits: 8943818}

	for _, name := range []string{"config.json", "config.yaml", "config.YML", "params"} {
		name := name
		t.Run(name, func(t *testing.T) {
			require := requireLib.New(t)
			path := filepath.Join(dir, name)
			require.NoError(WriteParams(path, params))

			restored, err := ReadParams(path)
			require.NoError(err)
			require.Equal(params, restored)
		})
	}
}

func TestParamsSidecarFieldNames(t *testing.T) {
	require := requireLib.New(t)
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "config.json")
	require.NoError(WriteParams(jsonPath, Params{HashRounds: 3, Bits: 32}))
	content, err := os.ReadFile(jsonPath)
	require.NoError(err)
	require.JSONEq(`{"hash_round_count": 3, "bit_count": 32}`, string(content))

	yamlPath := filepath.Join(dir, "config.yaml")
	require.NoError(os.WriteFile(yamlPath, []byte("hash_round_count: 4\nbit_count: 64\n"), 0o644))
	params, err := ReadParams(yamlPath)
	require.NoError(err)
	require.Equal(Params{HashRounds: 4, Bits: 64}, params)
}

func TestReadParamsFailures(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		requireLib.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	_, err := ReadParams(filepath.Join(dir, "absent.json"))
	requireLib.True(t, errors.Is(err, ErrMissingResource), "unexpected error %v", err)

	_, err = ReadParams(write("broken.json", "{"))
	requireLib.True(t, errors.Is(err, ErrMissingResource), "unexpected error %v", err)

	_, err = ReadParams(write("partial.json", `{"hash_round_count": 3}`))
	requireLib.True(t, errors.Is(err, ErrInvalidParameter), "unexpected error %v", err)

	_, err = ReadParams(write("unknown.yaml", "hash_round_count: 3\nbit_count: 8\nextra: 1\n"))
	requireLib.True(t, errors.Is(err, ErrMissingResource), "unexpected error %v", err)
}
