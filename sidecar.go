package bloom

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// ReadParams loads a sidecar file. Files ending with .yaml or .yml are parsed
// as YAML, anything else as JSON.
func ReadParams(path string) (Params, error) {
	var p Params
	content, readErr := os.ReadFile(path)
	if readErr != nil {
		return p, errors.Wrapf(ErrMissingResource, "params file %q: %v", path, readErr)
	}
	var decodeErr error
	if isYAML(path) {
		decodeErr = yaml.UnmarshalStrict(content, &p)
	} else {
		decodeErr = json.Unmarshal(content, &p)
	}
	if decodeErr != nil {
		return p, errors.Wrapf(ErrMissingResource, "params file %q is malformed: %v", path, decodeErr)
	}
	return p, errors.Wrapf(p.Validate(), "params file %q", path)
}

// WriteParams stores p next to a payload.
func WriteParams(path string, p Params) error {
	var (
		content   []byte
		encodeErr error
	)
	if isYAML(path) {
		content, encodeErr = yaml.Marshal(p)
	} else {
		content, encodeErr = json.MarshalIndent(p, "", "  ")
	}
	if encodeErr != nil {
		return errors.Wrap(encodeErr, "params encoding failed")
	}
	return errors.Wrapf(os.WriteFile(path, content, 0o644), "params file %q write failed", path)
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
