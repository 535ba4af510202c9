package llms

import (
	"context"
)

// ProviderType identifies the backend of a model.
type ProviderType string

// ProviderBedrock is AWS Bedrock.
const ProviderBedrock ProviderType = "BEDROCK"

// Model is a chat model.
type Model interface {
	// GetName returns the model ID used for calls.
	GetName() string
	// GetProviderType returns the backend of the model.
	GetProviderType() ProviderType
	// GenerateContent sends the conversation to the model and returns its reply.
	GenerateContent(ctx context.Context, messages []Message, options ...CallOption) (*ContentResponse, error)
}
