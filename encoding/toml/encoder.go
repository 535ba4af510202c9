package toml

import (
	"bytes"
	"encoding/json"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"github.com/effective-security/flownodes/encoding/internal/textutil"
)

// Encoder is the TOML encoder.
// Values are converted through JSON, so field names follow the json tags.
type Encoder struct{}

// NewEncoder returns the TOML encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

func (e *Encoder) Marshal(v any) ([]byte, error) {
	js, err := json.Marshal(v)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	var m map[string]any
	dec := json.NewDecoder(bytes.NewReader(js))
	dec.UseNumber()
	if err = dec.Decode(&m); err != nil {
		return nil, errors.Wrap(err, "TOML document must be a table")
	}

	var buf bytes.Buffer
	if err = toml.NewEncoder(&buf).Encode(numbers(m)); err != nil {
		return nil, errors.WithStack(err)
	}
	return buf.Bytes(), nil
}

func (e *Encoder) Unmarshal(bs []byte, ret any) error {
	var m map[string]any
	if err := toml.Unmarshal(textutil.TrimBackticks(bs), &m); err != nil {
		return errors.WithStack(err)
	}
	js, err := json.Marshal(m)
	if err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(json.Unmarshal(js, ret))
}

// numbers replaces JSON numbers with integers where possible
func numbers(v any) any {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		f, _ := val.Float64()
		return f
	case map[string]any:
		for k, nested := range val {
			val[k] = numbers(nested)
		}
		return val
	case []any:
		for i, nested := range val {
			val[i] = numbers(nested)
		}
		return val
	default:
		return v
	}
}
