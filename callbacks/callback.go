package callbacks

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/effective-security/flownodes/pkg/llms"
	"github.com/effective-security/flownodes/pkg/llmutils"
	"github.com/effective-security/xlog"
)

// ensure that the callbacks implement the correct interfaces
var (
	_ llms.Callback = (*Noop)(nil)
	_ llms.Callback = (*Printer)(nil)
	_ llms.Callback = (*PackageLogger)(nil)
)

// Mode defines the mode for callback printing
type Mode int

const (
	// ModeDefault is the default mode for callback printing
	ModeDefault Mode = iota
	// ModeVerbose is the verbose mode for callback printing
	ModeVerbose
)

// Noop does nothing.
type Noop struct{}

func NewNoop() *Noop {
	return &Noop{}
}

func (l *Noop) HandleLLMStart(ctx context.Context, runID string, model llms.Model, messages []llms.Message, opts llms.CallOptions) {
}
func (l *Noop) HandleLLMEnd(ctx context.Context, runID string, model llms.Model, resp *llms.ContentResponse) {
}
func (l *Noop) HandleLLMError(ctx context.Context, runID string, model llms.Model, err error) {}

// Printer is a callback handler that prints to the Writer.
type Printer struct {
	Out  io.Writer
	Mode Mode

	lock sync.Mutex
}

func NewPrinter(out io.Writer, mode Mode) *Printer {
	return &Printer{Out: out, Mode: mode}
}

func (l *Printer) HandleLLMStart(ctx context.Context, runID string, model llms.Model, messages []llms.Message, opts llms.CallOptions) {
	l.lock.Lock()
	defer l.lock.Unlock()
	fmt.Fprintf(l.Out, "LLM Call: %s: %s model, %d messages\n", runID, model.GetName(), len(messages))
	if l.Mode == ModeVerbose {
		llmutils.PrintMessages(l.Out, messages)
	}
}

func (l *Printer) HandleLLMEnd(ctx context.Context, runID string, model llms.Model, resp *llms.ContentResponse) {
	l.lock.Lock()
	defer l.lock.Unlock()
	fmt.Fprintf(l.Out, "LLM Call End: %s: %s model, %d choices\n", runID, model.GetName(), len(resp.Choices))
	if l.Mode == ModeVerbose {
		for _, choice := range resp.Choices {
			if choice.Content != "" {
				fmt.Fprintln(l.Out, choice.Content)
			}
			for _, tc := range choice.ToolCalls {
				fmt.Fprintln(l.Out, tc.String())
			}
		}
	}
}

func (l *Printer) HandleLLMError(ctx context.Context, runID string, model llms.Model, err error) {
	l.lock.Lock()
	defer l.lock.Unlock()
	fmt.Fprintf(l.Out, "LLM Call Error: %s: %s model: %s\n", runID, model.GetName(), err.Error())
}

// PackageLogger is a callback handler that prints to the logger.
type PackageLogger struct {
	logger *xlog.PackageLogger
}

func NewPackageLogger(logger *xlog.PackageLogger) *PackageLogger {
	return &PackageLogger{logger: logger}
}

func (l *PackageLogger) HandleLLMStart(ctx context.Context, runID string, model llms.Model, messages []llms.Message, opts llms.CallOptions) {
	l.logger.ContextKV(ctx, xlog.DEBUG,
		"event", "llm_start",
		"run_id", runID,
		"model", model.GetName(),
		"messages", len(messages),
		"size", llmutils.CountMessagesContentSize(messages),
	)
}

func (l *PackageLogger) HandleLLMEnd(ctx context.Context, runID string, model llms.Model, resp *llms.ContentResponse) {
	tokensIn, tokensOut, tokensTotal := llmutils.CountTokens(resp)
	l.logger.ContextKV(ctx, xlog.DEBUG,
		"event", "llm_end",
		"run_id", runID,
		"model", model.GetName(),
		"tokens_in", tokensIn,
		"tokens_out", tokensOut,
		"tokens_total", tokensTotal,
	)
}

func (l *PackageLogger) HandleLLMError(ctx context.Context, runID string, model llms.Model, err error) {
	l.logger.ContextKV(ctx, xlog.ERROR,
		"event", "llm_error",
		"run_id", runID,
		"model", model.GetName(),
		"err", err.Error(),
	)
}
