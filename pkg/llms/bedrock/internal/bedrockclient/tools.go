package bedrockclient

import (
	"encoding/json"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/document"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/cockroachdb/errors"
	"github.com/effective-security/flownodes/pkg/llms"
)

// getToolConfig converts tool definitions and choice.
// Supported choices: nil, "auto", "none", "any", "required",
// a tool name, or llms.ToolChoice.
func getToolConfig(tools []llms.Tool, choice any) (*types.ToolConfiguration, error) {
	if len(tools) == 0 {
		return nil, nil
	}

	cfg := &types.ToolConfiguration{
		Tools: make([]types.Tool, 0, len(tools)),
	}
	for _, tool := range tools {
		if tool.Function == nil {
			return nil, errors.Newf("tool of type %q: missing function", tool.Type)
		}
		schema, err := getInputSchema(tool.Function)
		if err != nil {
			return nil, err
		}
		cfg.Tools = append(cfg.Tools, &types.ToolMemberToolSpec{
			Value: types.ToolSpecification{
				Name:        aws.String(tool.Function.Name),
				Description: aws.String(tool.Function.Description),
				InputSchema: &types.ToolInputSchemaMemberJson{
					Value: document.NewLazyDocument(schema),
				},
			},
		})
	}

	switch c := choice.(type) {
	case nil:
	case string:
		switch c {
		case "", "auto", "none":
			// Converse has no "none", the model decides
		case "any", "required":
			cfg.ToolChoice = &types.ToolChoiceMemberAny{Value: types.AnyToolChoice{}}
		default:
			cfg.ToolChoice = &types.ToolChoiceMemberTool{Value: types.SpecificToolChoice{Name: aws.String(c)}}
		}
	case llms.ToolChoice:
		if c.Function == nil {
			return nil, errors.New("tool choice: missing function")
		}
		cfg.ToolChoice = &types.ToolChoiceMemberTool{Value: types.SpecificToolChoice{Name: aws.String(c.Function.Name)}}
	case *llms.ToolChoice:
		if c == nil || c.Function == nil {
			return nil, errors.New("tool choice: missing function")
		}
		cfg.ToolChoice = &types.ToolChoiceMemberTool{Value: types.SpecificToolChoice{Name: aws.String(c.Function.Name)}}
	default:
		return nil, errors.Newf("unsupported tool choice: %T", choice)
	}
	return cfg, nil
}

// getInputSchema returns the JSON schema of the function parameters as map,
// an empty object schema is used when parameters are not defined.
func getInputSchema(fn *llms.FunctionDefinition) (map[string]any, error) {
	schema := map[string]any{
		"type":       "object",
		"properties": map[string]any{},
	}
	if fn.Parameters == nil {
		return schema, nil
	}
	js, err := json.Marshal(fn.Parameters)
	if err != nil {
		return nil, errors.Wrapf(err, "tool %s: failed to marshal parameters", fn.Name)
	}
	if err = json.Unmarshal(js, &schema); err != nil {
		return nil, errors.Wrapf(err, "tool %s: invalid parameters", fn.Name)
	}
	return schema, nil
}
