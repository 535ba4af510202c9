package workflow

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cast"
)

// Collection is the value of a collection parameter.
// Options the user did not add are absent.
type Collection map[string]any

// StringParameter returns the parameter as string.
// Errors from the host are returned as is.
func StringParameter(fn SupplyDataFunctions, name string, itemIndex int) (string, error) {
	v, err := fn.GetNodeParameter(name, itemIndex, nil)
	if err != nil {
		return "", err
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", errors.Wrapf(err, "parameter %q", name)
	}
	return s, nil
}

// OptionalStringParameter returns the parameter as string,
// or fallback when the parameter is not set.
func OptionalStringParameter(fn SupplyDataFunctions, name string, itemIndex int, fallback string) (string, error) {
	v, err := fn.GetNodeParameter(name, itemIndex, fallback)
	if err != nil {
		return "", err
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", errors.Wrapf(err, "parameter %q", name)
	}
	return s, nil
}

// CollectionParameter returns the collection parameter,
// an empty collection is used as fallback.
func CollectionParameter(fn SupplyDataFunctions, name string, itemIndex int) (Collection, error) {
	v, err := fn.GetNodeParameter(name, itemIndex, map[string]any{})
	if err != nil {
		return nil, err
	}
	if v == nil {
		return Collection{}, nil
	}
	m, err := cast.ToStringMapE(v)
	if err != nil {
		return nil, errors.Wrapf(err, "parameter %q", name)
	}
	return Collection(m), nil
}

// Has returns true if the option is set.
func (c Collection) Has(name string) bool {
	_, ok := c[name]
	return ok
}

// Float returns the option as float64, or def if not set.
func (c Collection) Float(name string, def float64) (float64, error) {
	v, ok := c[name]
	if !ok || v == nil {
		return def, nil
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, errors.Wrapf(err, "option %q", name)
	}
	return f, nil
}

// Int returns the option as int, or def if not set.
func (c Collection) Int(name string, def int) (int, error) {
	v, ok := c[name]
	if !ok || v == nil {
		return def, nil
	}
	i, err := cast.ToIntE(v)
	if err != nil {
		return 0, errors.Wrapf(err, "option %q", name)
	}
	return i, nil
}

// String returns the option as string, or def if not set or empty.
func (c Collection) String(name string, def string) (string, error) {
	v, ok := c[name]
	if !ok || v == nil {
		return def, nil
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", errors.Wrapf(err, "option %q", name)
	}
	if s == "" {
		return def, nil
	}
	return s, nil
}
