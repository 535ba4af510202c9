package memhost

import (
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/cockroachdb/errors"
)

// ExpressionPrefix marks a string parameter as expression.
const ExpressionPrefix = "="

// IsExpression returns true for values that are expressions.
func IsExpression(v any) bool {
	s, ok := v.(string)
	return ok && strings.HasPrefix(s, ExpressionPrefix)
}

// Evaluate renders the expression as a template with sprig functions.
// The data is available as .json, and the item index as .itemIndex.
func Evaluate(expr string, item map[string]any, itemIndex int) (string, error) {
	text := strings.TrimPrefix(expr, ExpressionPrefix)
	tmpl, err := template.New("expression").
		Funcs(sprig.TxtFuncMap()).
		Option("missingkey=error").
		Parse(text)
	if err != nil {
		return "", errors.Wrapf(err, "invalid expression %q", text)
	}

	if item == nil {
		item = map[string]any{}
	}
	var sb strings.Builder
	err = tmpl.Execute(&sb, map[string]any{
		"json":      item,
		"itemIndex": itemIndex,
	})
	if err != nil {
		return "", errors.Wrapf(err, "failed to evaluate expression %q", text)
	}
	return strings.TrimSpace(sb.String()), nil
}

// resolve evaluates expressions in the value, including nested collections.
func resolve(v any, item map[string]any, itemIndex int) (any, error) {
	switch val := v.(type) {
	case string:
		if !IsExpression(val) {
			return val, nil
		}
		return Evaluate(val, item, itemIndex)
	case map[string]any:
		res := make(map[string]any, len(val))
		for k, nested := range val {
			r, err := resolve(nested, item, itemIndex)
			if err != nil {
				return nil, errors.WithMessagef(err, "option %q", k)
			}
			res[k] = r
		}
		return res, nil
	case []any:
		res := make([]any, len(val))
		for i, nested := range val {
			r, err := resolve(nested, item, itemIndex)
			if err != nil {
				return nil, err
			}
			res[i] = r
		}
		return res, nil
	default:
		return v, nil
	}
}
