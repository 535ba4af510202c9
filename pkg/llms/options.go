package llms

import (
	"context"

	"github.com/invopop/jsonschema"
)

// CallOption configures a single model call.
type CallOption func(*CallOptions)

// StreamingFunc receives the text deltas of a streaming response,
// an error stops the stream.
type StreamingFunc func(ctx context.Context, chunk []byte) error

// CallOptions overrides the model configuration for one call.
// Zero values keep the configured value.
type CallOptions struct {
	Model       string
	MaxTokens   int
	Temperature float64
	TopP        float64
	StopWords   []string

	// StreamingFunc switches the call to the streaming API.
	StreamingFunc StreamingFunc

	Tools []Tool
	// ToolChoice is "none", "auto", "any", a tool name, or a ToolChoice.
	ToolChoice any

	// Callbacks are called after the callbacks of the model.
	Callbacks Callbacks
}

// Tool is a function the model may call.
type Tool struct {
	Type     string              `json:"type"`
	Function *FunctionDefinition `json:"function,omitempty"`
}

// FunctionDefinition describes a callable function.
type FunctionDefinition struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Parameters  *jsonschema.Schema `json:"parameters,omitempty"`
}

// ToolChoice forces a specific function.
type ToolChoice struct {
	Type     string             `json:"type"`
	Function *FunctionReference `json:"function,omitempty"`
}

// FunctionReference names a function.
type FunctionReference struct {
	Name string `json:"name"`
}

// WithModel overrides the model ID.
func WithModel(model string) CallOption {
	return func(o *CallOptions) {
		o.Model = model
	}
}

// WithMaxTokens overrides the maximum number of generated tokens.
func WithMaxTokens(maxTokens int) CallOption {
	return func(o *CallOptions) {
		o.MaxTokens = maxTokens
	}
}

// WithTemperature overrides the sampling temperature.
func WithTemperature(temperature float64) CallOption {
	return func(o *CallOptions) {
		o.Temperature = temperature
	}
}

// WithTopP overrides the nucleus sampling probability.
func WithTopP(topP float64) CallOption {
	return func(o *CallOptions) {
		o.TopP = topP
	}
}

// WithStopWords overrides the stop sequences.
func WithStopWords(stopWords []string) CallOption {
	return func(o *CallOptions) {
		o.StopWords = stopWords
	}
}

// WithStreamingFunc streams the response to fn.
func WithStreamingFunc(fn StreamingFunc) CallOption {
	return func(o *CallOptions) {
		o.StreamingFunc = fn
	}
}

// WithTools sets the tools available to the model.
func WithTools(tools []Tool) CallOption {
	return func(o *CallOptions) {
		o.Tools = tools
	}
}

// WithToolChoice sets the tool choice, see CallOptions.ToolChoice.
func WithToolChoice(choice any) CallOption {
	return func(o *CallOptions) {
		o.ToolChoice = choice
	}
}

// WithCallbacks adds callbacks for the call.
func WithCallbacks(callbacks ...Callback) CallOption {
	return func(o *CallOptions) {
		o.Callbacks = append(o.Callbacks, callbacks...)
	}
}
