package json

import (
	"encoding/json"

	"github.com/bububa/ljson"
	"github.com/effective-security/flownodes/encoding/internal/textutil"
)

// Encoder is the JSON encoder.
// Unmarshal is lenient, and ignores the text around the JSON value,
// so model replies like `Here you go: {...}` can be decoded.
type Encoder struct{}

// NewEncoder returns the JSON encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Marshal returns indented JSON.
func (e *Encoder) Marshal(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// Unmarshal decodes JSON.
func (e *Encoder) Unmarshal(bs []byte, ret any) error {
	data := textutil.CleanJSON(textutil.TrimBackticks(bs))
	return ljson.Unmarshal(data, ret)
}
