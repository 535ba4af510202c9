package memhost

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/x/configloader"
	"github.com/go-playground/validator/v10"
	"github.com/tidwall/sjson"
)

// Config describes a node instance and the items it runs for.
type Config struct {
	// Node is the node type name, e.g. bedrockChatIAM
	Node string `json:"node" yaml:"node" validate:"required"`
	// Name is the instance name, the display name of the node type by default
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	// Version of the node type, the latest by default
	Version float64 `json:"version,omitempty" yaml:"version,omitempty" validate:"gte=0"`
	// Parameters are the values of the node form.
	// String values starting with = are expressions.
	Parameters map[string]any `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	// Items are the input items, available in expressions as .json
	Items []map[string]any `json:"items,omitempty" yaml:"items,omitempty" validate:"omitempty,dive,required"`
}

// LoadConfig loads the configuration from a YAML or JSON file,
// environment variables in values are expanded.
func LoadConfig(file string) (*Config, error) {
	if file == "" {
		return nil, errors.New("parameters file is required")
	}
	cfg := new(Config)
	if err := configloader.UnmarshalAndExpand(file, cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to load parameters from %s", file)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate returns an error if the configuration is invalid.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(err, "invalid parameters file")
	}
	return nil
}

// Set sets the parameter by dotted path, e.g. options.temperature.
// The value is parsed as JSON when valid, otherwise it is a string.
func (c *Config) Set(path, value string) error {
	if path == "" {
		return errors.New("parameter path is required")
	}
	js := []byte("{}")
	if len(c.Parameters) > 0 {
		var err error
		if js, err = json.Marshal(c.Parameters); err != nil {
			return errors.Wrap(err, "failed to encode parameters")
		}
	}

	var err error
	if json.Valid([]byte(value)) {
		js, err = sjson.SetRawBytes(js, path, []byte(value))
	} else {
		js, err = sjson.SetBytes(js, path, value)
	}
	if err != nil {
		return errors.Wrapf(err, "failed to set parameter %q", path)
	}

	params := map[string]any{}
	if err = json.Unmarshal(js, &params); err != nil {
		return errors.Wrapf(err, "failed to set parameter %q", path)
	}
	c.Parameters = params
	return nil
}
