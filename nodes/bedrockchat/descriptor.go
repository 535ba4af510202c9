package bedrockchat

import (
	"github.com/effective-security/flownodes/nodes/shared"
	"github.com/effective-security/flownodes/pkg/llms/bedrock"
	"github.com/effective-security/flownodes/pkg/workflow"
)

// NodeName is the node type name.
const NodeName = "bedrockChatIAM"

// Option defaults
const (
	DefaultMaxTokens   = 2000
	DefaultTemperature = 0.7
	DefaultTopP        = 0.9
	DefaultRegion      = bedrock.DefaultRegion
)

func float(v float64) *float64 { return &v }
func integer(v int) *int       { return &v }

// Description is the static descriptor of the node.
var Description = workflow.NodeTypeDescription{
	DisplayName: "AWS Bedrock Chat Model (IAM)",
	Name:        NodeName,
	Icon:        "file:bedrock.svg",
	Group:       []string{"transform"},
	Version:     []float64{1, 1.1},
	Description: "Language Model AWS Bedrock using IAM auth (on machine)",
	Defaults: workflow.NodeDefaults{
		Name: "AWS Bedrock Chat Model (IAM)",
	},
	Codex: &workflow.Codex{
		Categories: []string{"AI"},
		Subcategories: map[string][]string{
			"AI":              {"Language Models", "Root Nodes"},
			"Language Models": {"Chat Models (Recommended)"},
		},
		Resources: &workflow.CodexResources{
			PrimaryDocumentation: []workflow.DocumentationResource{
				{URL: "https://docs.n8n.io/integrations/builtin/cluster-nodes/sub-nodes/n8n-nodes-langchain.lmchatawsbedrock/"},
			},
		},
	},
	Inputs:      []workflow.ConnectionType{},
	Outputs:     []workflow.ConnectionType{workflow.ConnectionAILanguageModel},
	OutputNames: []string{"Model"},
	Properties: []*workflow.NodeProperty{
		shared.ConnectionHintNotice(workflow.ConnectionAIChain, workflow.ConnectionAIChain),
		{
			DisplayName:      "Model ID",
			Name:             "modelId",
			Type:             workflow.PropertyString,
			Default:          "",
			Placeholder:      "anthropic.claude-3-7-sonnet-2025019",
			Description:      "Enter or map a model ID from a previous node (supports expressions).",
			RequiresDataPath: "single",
		},
		{
			DisplayName: "Options",
			Name:        "options",
			Placeholder: "Add Option",
			Description: "Additional options to add",
			Type:        workflow.PropertyCollection,
			Default:     map[string]any{},
			Options: []*workflow.NodeProperty{
				{
					DisplayName: "Maximum Number of Tokens",
					Name:        "maxTokensToSample",
					Default:     DefaultMaxTokens,
					Description: "The maximum number of tokens to generate in the completion",
					Type:        workflow.PropertyNumber,
				},
				{
					DisplayName: "Sampling Temperature",
					Name:        "temperature",
					Default:     DefaultTemperature,
					TypeOptions: &workflow.TypeOptions{
						MaxValue:        float(1),
						MinValue:        float(0),
						NumberPrecision: integer(1),
					},
					Description: "Controls randomness: Lowering results in less random completions. As the temperature approaches zero, the model will become deterministic and repetitive.",
					Type:        workflow.PropertyNumber,
				},
				{
					DisplayName: "Top P",
					Name:        "topP",
					Type:        workflow.PropertyNumber,
					TypeOptions: &workflow.TypeOptions{
						MinValue: float(0),
						MaxValue: float(1),
					},
					Default:     DefaultTopP,
					Description: "Nucleus sampling (0-1). Leave default for typical behavior.",
				},
				{
					DisplayName: "Region",
					Name:        "region",
					Type:        workflow.PropertyString,
					Default:     DefaultRegion,
					Description: "AWS region for Bedrock",
				},
			},
		},
	},
}
