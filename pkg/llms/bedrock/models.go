package bedrock

// Model IDs of commonly used Converse models.
const (
	ModelAnthropicClaude37Sonnet = "anthropic.claude-3-7-sonnet-20250219-v1:0"
	ModelAnthropicClaude35Sonnet = "anthropic.claude-3-5-sonnet-20240620-v1:0"
	ModelAnthropicClaude3Haiku   = "anthropic.claude-3-haiku-20240307-v1:0"
	ModelAmazonNovaPro           = "amazon.nova-pro-v1:0"
	ModelAmazonNovaLite          = "amazon.nova-lite-v1:0"
	ModelMetaLlama3170B          = "meta.llama3-1-70b-instruct-v1:0"
	ModelMistralLarge            = "mistral.mistral-large-2407-v1:0"
)

const (
	// DefaultModel is used when no model ID is configured.
	DefaultModel = ModelAnthropicClaude3Haiku
	// DefaultRegion is used when no region is configured.
	DefaultRegion = "us-east-1"
)
