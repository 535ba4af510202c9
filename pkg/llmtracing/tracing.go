// Package llmtracing reports model calls made by AI sub-nodes to the workflow
// host, so they are visible in the execution log of the node.
package llmtracing

import (
	"context"
	"sync"

	"github.com/effective-security/flownodes/pkg/llms"
	"github.com/effective-security/flownodes/pkg/llmutils"
	"github.com/effective-security/flownodes/pkg/metricskey"
	"github.com/effective-security/flownodes/pkg/workflow"
	"github.com/effective-security/xlog"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/flownodes/pkg", "llmtracing")

// Tracer is a llms.Callback that records model calls as the
// input and output data of the node.
type Tracer struct {
	host     workflow.SupplyDataFunctions
	conn     workflow.ConnectionType
	counter  TokenCounter
	lock     sync.Mutex
	runs     map[string]*run
	runCount int
}

type run struct {
	index        int
	promptTokens int
	messages     []string
	options      map[string]any
}

// Option configures the Tracer.
type Option func(*Tracer)

// WithConnectionType sets the connection the data is recorded on,
// by default ai_languageModel.
func WithConnectionType(conn workflow.ConnectionType) Option {
	return func(t *Tracer) {
		t.conn = conn
	}
}

// WithTokenCounter sets the counter used to estimate tokens
// when the provider does not report usage.
func WithTokenCounter(counter TokenCounter) Option {
	return func(t *Tracer) {
		t.counter = counter
	}
}

// New returns a tracer reporting to the host.
func New(host workflow.SupplyDataFunctions, opts ...Option) *Tracer {
	t := &Tracer{
		host:    host,
		conn:    workflow.ConnectionAILanguageModel,
		counter: DefaultTokenCounter,
		runs:    map[string]*run{},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Tracer) nodeName() string {
	if node := t.host.GetNode(); node != nil {
		return node.Name
	}
	return ""
}

// HandleLLMStart records the prompt as input data.
func (t *Tracer) HandleLLMStart(ctx context.Context, runID string, model llms.Model, messages []llms.Message, opts llms.CallOptions) {
	texts := llmutils.MessagesText(messages)
	estimated := t.counter.CountMessages(texts)
	options := map[string]any{
		"model":       opts.Model,
		"maxTokens":   opts.MaxTokens,
		"temperature": opts.Temperature,
		"topP":        opts.TopP,
	}

	idx := t.host.AddInputData(t.conn, [][]workflow.ExecutionData{{
		{
			"messages":        texts,
			"options":         options,
			"estimatedTokens": estimated,
		},
	}})

	t.lock.Lock()
	t.runs[runID] = &run{
		index:        idx,
		promptTokens: estimated,
		messages:     texts,
		options:      options,
	}
	t.runCount++
	t.lock.Unlock()

	logger.ContextKV(ctx, xlog.DEBUG,
		"status", "llm_start",
		"node", t.nodeName(),
		"run_id", runID,
		"index", idx,
		"estimated_tokens", estimated,
	)
}

// HandleLLMEnd records the generations and token usage as output data.
func (t *Tracer) HandleLLMEnd(ctx context.Context, runID string, model llms.Model, resp *llms.ContentResponse) {
	r := t.popRun(runID)

	in, out, total := llmutils.CountTokens(resp)
	usageKey := "tokenUsage"
	if total == 0 {
		usageKey = "tokenUsageEstimate"
		in = int64(r.promptTokens)
		out = int64(t.counter.CountMessages(llmutils.ResponseText(resp)))
		total = in + out
		metricskey.StatsLLMEstimatedTokens.IncrCounter(float64(total), t.nodeName(), model.GetName())
	} else {
		metricskey.StatsLLMInputTokens.IncrCounter(float64(in), t.nodeName(), model.GetName())
		metricskey.StatsLLMOutputTokens.IncrCounter(float64(out), t.nodeName(), model.GetName())
		metricskey.StatsLLMTotalTokens.IncrCounter(float64(total), t.nodeName(), model.GetName())
	}

	usage := map[string]any{
		"promptTokens":     in,
		"completionTokens": out,
		"totalTokens":      total,
	}
	response := map[string]any{
		"generations": generations(resp),
	}

	t.host.AddOutputData(t.conn, r.index, [][]workflow.ExecutionData{{
		{
			"response": response,
			usageKey:   usage,
		},
	}}, nil)

	t.host.LogAIEvent(workflow.AIEventLLMGeneratedOutput, map[string]any{
		"messages": r.messages,
		"options":  r.options,
		"response": response,
	})

	logger.ContextKV(ctx, xlog.DEBUG,
		"status", "llm_end",
		"node", t.nodeName(),
		"run_id", runID,
		"index", r.index,
		usageKey, total,
	)
}

// HandleLLMError records the error as output data of the run.
func (t *Tracer) HandleLLMError(ctx context.Context, runID string, model llms.Model, err error) {
	r := t.popRun(runID)

	apiErr := workflow.NewNodeAPIError(t.host.GetNode(), err, "")
	t.host.AddOutputData(t.conn, r.index, nil, apiErr)
	t.host.LogAIEvent(workflow.AIEventLLMErrored, map[string]any{
		"error": err.Error(),
		"runId": runID,
	})

	logger.ContextKV(ctx, xlog.ERROR,
		"status", "llm_error",
		"node", t.nodeName(),
		"run_id", runID,
		"index", r.index,
		"err", err.Error(),
	)
}

// popRun returns the tracked run and stops tracking it.
// For unknown run ID the index is the number of runs started so far.
func (t *Tracer) popRun(runID string) *run {
	t.lock.Lock()
	defer t.lock.Unlock()
	r, ok := t.runs[runID]
	if !ok {
		return &run{index: t.runCount}
	}
	delete(t.runs, runID)
	return r
}

func generations(resp *llms.ContentResponse) []map[string]any {
	if resp == nil {
		return nil
	}
	res := make([]map[string]any, 0, len(resp.Choices))
	for _, choice := range resp.Choices {
		g := map[string]any{
			"text":       choice.Content,
			"stopReason": choice.StopReason,
		}
		if len(choice.ToolCalls) > 0 {
			g["toolCalls"] = choice.ToolCalls
		}
		res = append(res, g)
	}
	return res
}

var _ llms.Callback = (*Tracer)(nil)
