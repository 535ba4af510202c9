// Package encoding provides the encoders for CLI output and data files.
package encoding

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	jsonenc "github.com/effective-security/flownodes/encoding/json"
	tomlenc "github.com/effective-security/flownodes/encoding/toml"
	yamlenc "github.com/effective-security/flownodes/encoding/yaml"
)

// Encoder marshals and unmarshals values in one format.
// Field names follow the json tags of the values in every format.
type Encoder interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, ret any) error
}

// Mode is the name of the format.
type Mode = string

// Formats
const (
	ModeJSON Mode = "json"
	ModeYAML Mode = "yaml"
	ModeTOML Mode = "toml"
)

// Modes lists the supported formats.
var Modes = []Mode{ModeJSON, ModeYAML, ModeTOML}

// New returns the encoder for the format.
func New(mode Mode) (Encoder, error) {
	switch strings.ToLower(mode) {
	case ModeJSON:
		return jsonenc.NewEncoder(), nil
	case ModeYAML, "yml":
		return yamlenc.NewEncoder(), nil
	case ModeTOML:
		return tomlenc.NewEncoder(), nil
	default:
		return nil, errors.Newf("unsupported format: %s", mode)
	}
}

// ForFile returns the encoder by the extension of the file name.
func ForFile(name string) (Encoder, error) {
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	if ext == "" {
		return nil, errors.Newf("unsupported file: %s", name)
	}
	return New(ext)
}

// DecodeFile reads the file in the format of its extension.
func DecodeFile(name string, ret any) error {
	enc, err := ForFile(name)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return errors.WithStack(err)
	}
	if err = enc.Unmarshal(data, ret); err != nil {
		return errors.Wrapf(err, "failed to decode %s", name)
	}
	return nil
}

var (
	_ Encoder = (*jsonenc.Encoder)(nil)
	_ Encoder = (*tomlenc.Encoder)(nil)
	_ Encoder = (*yamlenc.Encoder)(nil)
)
