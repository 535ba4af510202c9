package bedrock

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/effective-security/flownodes/pkg/llms"
)

// attemptRetryer reports every failed attempt of a single call to the handler.
// The handler error, if any, stops retries and is kept for the caller.
type attemptRetryer struct {
	aws.Retryer

	ctx     context.Context
	handler llms.FailedAttemptHandler

	lock     sync.Mutex
	attempts int
	err      error
}

func newAttemptRetryer(ctx context.Context, base aws.Retryer, handler llms.FailedAttemptHandler) *attemptRetryer {
	if base == nil {
		base = aws.NopRetryer{}
	}
	return &attemptRetryer{
		Retryer: base,
		ctx:     ctx,
		handler: handler,
	}
}

// IsErrorRetryable is called by the SDK once per failed attempt.
func (r *attemptRetryer) IsErrorRetryable(err error) bool {
	r.lock.Lock()
	r.attempts++
	fa := llms.FailedAttempt{
		Err:         err,
		Attempt:     r.attempts,
		RetriesLeft: max(r.Retryer.MaxAttempts()-r.attempts, 0),
	}
	r.lock.Unlock()

	if herr := r.handler(r.ctx, fa); herr != nil {
		r.lock.Lock()
		r.err = herr
		r.lock.Unlock()
		return false
	}
	return r.Retryer.IsErrorRetryable(err)
}

// Err returns the error of the handler that stopped retries.
func (r *attemptRetryer) Err() error {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.err
}

// Attempts returns the number of failed attempts.
func (r *attemptRetryer) Attempts() int {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.attempts
}

var _ aws.Retryer = (*attemptRetryer)(nil)
