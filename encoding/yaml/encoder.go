package yaml

import (
	"github.com/effective-security/flownodes/encoding/internal/textutil"
	"sigs.k8s.io/yaml"
)

// Encoder is the YAML encoder, field names follow the json tags.
type Encoder struct{}

// NewEncoder returns the YAML encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

func (e *Encoder) Marshal(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

func (e *Encoder) Unmarshal(bs []byte, ret any) error {
	return yaml.Unmarshal(textutil.TrimBackticks(bs), ret)
}
