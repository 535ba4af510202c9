package llms

import (
	"context"
)

// Callback receives the lifecycle events of a single model call.
// RunID is unique per GenerateContent call and ties the events together.
type Callback interface {
	HandleLLMStart(ctx context.Context, runID string, model Model, messages []Message, opts CallOptions)
	HandleLLMEnd(ctx context.Context, runID string, model Model, resp *ContentResponse)
	HandleLLMError(ctx context.Context, runID string, model Model, err error)
}

// FailedAttempt describes one failed request to the provider.
type FailedAttempt struct {
	// Err is the error returned by the attempt.
	Err error
	// Attempt is the 1-based attempt number.
	Attempt int
	// RetriesLeft is the number of retries the SDK may still make.
	RetriesLeft int
}

// FailedAttemptHandler is called after every failed attempt.
// A nil return lets the SDK decide whether to retry,
// a non-nil return stops retries and is returned to the caller.
type FailedAttemptHandler func(ctx context.Context, fa FailedAttempt) error

// Callbacks fans out events to multiple callbacks.
type Callbacks []Callback

// HandleLLMStart implements Callback.
func (c Callbacks) HandleLLMStart(ctx context.Context, runID string, model Model, messages []Message, opts CallOptions) {
	for _, cb := range c {
		cb.HandleLLMStart(ctx, runID, model, messages, opts)
	}
}

// HandleLLMEnd implements Callback.
func (c Callbacks) HandleLLMEnd(ctx context.Context, runID string, model Model, resp *ContentResponse) {
	for _, cb := range c {
		cb.HandleLLMEnd(ctx, runID, model, resp)
	}
}

// HandleLLMError implements Callback.
func (c Callbacks) HandleLLMError(ctx context.Context, runID string, model Model, err error) {
	for _, cb := range c {
		cb.HandleLLMError(ctx, runID, model, err)
	}
}

var _ Callback = Callbacks(nil)
