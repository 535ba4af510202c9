// Package failedattempt provides the handler of failed model calls shared by
// the AI sub-nodes. It decides which errors must not be retried and reports
// the final failure to the host as a node API error.
package failedattempt

import (
	"context"
	"net/http"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/flownodes/pkg/llms"
	"github.com/effective-security/flownodes/pkg/metricskey"
	"github.com/effective-security/flownodes/pkg/workflow"
	"github.com/effective-security/xlog"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/flownodes/pkg", "failedattempt")

// NonRetryableStatusCodes are HTTP statuses that fail the call immediately.
var NonRetryableStatusCodes = []int{
	http.StatusBadRequest,
	http.StatusUnauthorized,
	http.StatusPaymentRequired,
	http.StatusForbidden,
	http.StatusNotFound,
	http.StatusMethodNotAllowed,
	http.StatusNotAcceptable,
	http.StatusProxyAuthRequired,
	http.StatusConflict,
}

// ErrAborted is returned for cancelled or aborted calls.
var ErrAborted = errors.New("aborted")

// Default returns an error for failures that must not be retried:
// cancellation, aborted connections and client errors.
// It returns nil when the attempt may be retried.
func Default(_ context.Context, fa llms.FailedAttempt) error {
	err := fa.Err
	if err == nil {
		return nil
	}

	msg := err.Error()
	if errors.Is(err, context.Canceled) ||
		strings.HasPrefix(msg, "Cancel") ||
		strings.HasPrefix(msg, "AbortError") ||
		strings.Contains(msg, "ECONNABORTED") {
		return errors.Mark(err, ErrAborted)
	}

	if code, ok := StatusCode(err); ok && slices.Contains(NonRetryableStatusCodes, code) {
		return err
	}
	return nil
}

// StatusCode returns the HTTP status of the error, if it has one.
func StatusCode(err error) (int, bool) {
	var sc interface{ HTTPStatusCode() int }
	if errors.As(err, &sc) {
		return sc.HTTPStatusCode(), true
	}
	return 0, false
}

// New returns the handler that reports failures of the node.
// The custom handler runs first, then Default. An error from either stops
// retrying. When no retries are left, the attempt error is returned.
// All returned errors are NodeAPIError of the configuration node.
func New(host workflow.SupplyDataFunctions, custom llms.FailedAttemptHandler) llms.FailedAttemptHandler {
	return func(ctx context.Context, fa llms.FailedAttempt) error {
		if fa.Err == nil {
			return nil
		}
		node := host.GetNode()
		nodeName := ""
		if node != nil {
			nodeName = node.Name
		}

		if custom != nil {
			if err := custom(ctx, fa); err != nil {
				logger.ContextKV(ctx, xlog.DEBUG,
					"reason", "custom",
					"node", nodeName,
					"attempt", fa.Attempt,
					"err", err.Error(),
				)
				return workflow.NewNodeAPIError(node, err, workflow.FunctionalityConfigurationNode)
			}
		}

		if err := Default(ctx, fa); err != nil {
			logger.ContextKV(ctx, xlog.DEBUG,
				"reason", "not_retryable",
				"node", nodeName,
				"attempt", fa.Attempt,
				"err", err.Error(),
			)
			return workflow.NewNodeAPIError(node, err, workflow.FunctionalityConfigurationNode)
		}

		if fa.RetriesLeft > 0 {
			metricskey.StatsLLMCallsRetried.IncrCounter(1, nodeName)
			logger.ContextKV(ctx, xlog.DEBUG,
				"status", "retry",
				"node", nodeName,
				"attempt", fa.Attempt,
				"retries_left", fa.RetriesLeft,
				"err", fa.Err.Error(),
			)
			return nil
		}

		logger.ContextKV(ctx, xlog.ERROR,
			"reason", "retries_exhausted",
			"node", nodeName,
			"attempt", fa.Attempt,
			"err", fa.Err.Error(),
		)
		return workflow.NewNodeAPIError(node, fa.Err, workflow.FunctionalityConfigurationNode)
	}
}
