package bedrock

import (
	"context"
	"slices"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/cockroachdb/errors"
	"github.com/effective-security/flownodes/pkg/llms"
	"github.com/effective-security/flownodes/pkg/llms/bedrock/internal/bedrockclient"
	"github.com/effective-security/flownodes/pkg/metricskey"
	"github.com/effective-security/x/values"
	"github.com/effective-security/xlog"
	"github.com/google/uuid"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/flownodes/pkg/llms", "bedrock")

// Config is the effective configuration of the model.
type Config struct {
	Name        string   `json:"name,omitempty" yaml:"name,omitempty"`
	Model       string   `json:"model" yaml:"model"`
	Provider    string   `json:"provider" yaml:"provider"`
	Region      string   `json:"region" yaml:"region"`
	Temperature *float64 `json:"temperature,omitempty" yaml:"temperature,omitempty"`
	MaxTokens   int      `json:"max_tokens,omitempty" yaml:"max_tokens,omitempty"`
	TopP        *float64 `json:"top_p,omitempty" yaml:"top_p,omitempty"`
	StopWords   []string `json:"stop_words,omitempty" yaml:"stop_words,omitempty"`
	MaxAttempts int      `json:"max_attempts,omitempty" yaml:"max_attempts,omitempty"`
}

// LLM is a Bedrock chat model using the Converse API.
type LLM struct {
	cfg       Config
	client    *bedrockclient.Client
	callbacks llms.Callbacks
	onFailed  llms.FailedAttemptHandler
}

// New creates a new Bedrock chat model.
// Unless a client is provided with WithClient, the AWS configuration is
// loaded with the default credential chain.
func New(ctx context.Context, opts ...Option) (*LLM, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	o.cfg.Model = values.StringsCoalesce(o.cfg.Model, DefaultModel)
	o.cfg.Region = values.StringsCoalesce(o.cfg.Region, DefaultRegion)
	o.cfg.Name = values.StringsCoalesce(o.cfg.Name, "bedrock")
	o.cfg.Provider = bedrockclient.GetProvider(o.cfg.Model)

	if o.client == nil {
		api, err := newRuntimeClient(ctx, o)
		if err != nil {
			return nil, err
		}
		o.client = api
	}

	downloader := o.downloader
	if downloader == nil && o.httpClient != nil {
		downloader = o.httpClient
	}

	logger.ContextKV(ctx, xlog.DEBUG,
		"status", "created",
		"name", o.cfg.Name,
		"model", o.cfg.Model,
		"provider", o.cfg.Provider,
		"region", o.cfg.Region,
	)

	return &LLM{
		cfg:       o.cfg,
		client:    bedrockclient.NewClient(o.client, downloader),
		callbacks: o.callbacks,
		onFailed:  o.onFailed,
	}, nil
}

func newRuntimeClient(ctx context.Context, o *options) (*bedrockruntime.Client, error) {
	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(o.cfg.Region),
	}
	if o.httpClient != nil {
		loadOpts = append(loadOpts, config.WithHTTPClient(o.httpClient))
	}
	if o.credentials != nil {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(o.credentials))
	}
	if o.cfg.MaxAttempts > 0 {
		loadOpts = append(loadOpts, config.WithRetryMaxAttempts(o.cfg.MaxAttempts))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load AWS config")
	}
	return bedrockruntime.NewFromConfig(cfg), nil
}

// Options returns the effective configuration.
func (l *LLM) Options() Config {
	cfg := l.cfg
	cfg.StopWords = append([]string(nil), l.cfg.StopWords...)
	return cfg
}

// GetName implements the Model interface.
func (l *LLM) GetName() string {
	return l.cfg.Model
}

// GetProviderType implements the Model interface.
func (l *LLM) GetProviderType() llms.ProviderType {
	return llms.ProviderBedrock
}

// GenerateContent implements llms.Model.
func (l *LLM) GenerateContent(ctx context.Context, messages []llms.Message, options ...llms.CallOption) (*llms.ContentResponse, error) {
	opts := llms.CallOptions{
		Model: l.cfg.Model,
	}
	for _, opt := range options {
		opt(&opts)
	}
	inference := l.inference(opts)

	runID := uuid.NewString()
	started := time.Now()
	defer metricskey.PerfLLMCall.MeasureSince(started, opts.Model)
	metricskey.StatsLLMCallsStarted.IncrCounter(1, l.cfg.Name, opts.Model)

	callbacks := slices.Concat(l.callbacks, opts.Callbacks)
	callbacks.HandleLLMStart(ctx, runID, l, messages, opts)

	var retryer *attemptRetryer
	var optFns []func(*bedrockruntime.Options)
	if l.onFailed != nil {
		optFns = append(optFns, func(o *bedrockruntime.Options) {
			retryer = newAttemptRetryer(ctx, o.Retryer, l.onFailed)
			o.Retryer = retryer
		})
	}

	resp, err := l.client.CreateCompletion(ctx, opts.Model, messages, inference, opts, optFns...)
	if err != nil {
		if retryer != nil && retryer.Err() != nil {
			err = retryer.Err()
		}
		metricskey.StatsLLMCallsFailed.IncrCounter(1, l.cfg.Name, opts.Model)
		logger.ContextKV(ctx, xlog.DEBUG,
			"status", "failed",
			"run_id", runID,
			"model", opts.Model,
			"err", err.Error(),
		)
		callbacks.HandleLLMError(ctx, runID, l, err)
		return nil, err
	}

	callbacks.HandleLLMEnd(ctx, runID, l, resp)
	return resp, nil
}

// inference merges the call options over the model configuration
func (l *LLM) inference(opts llms.CallOptions) bedrockclient.Inference {
	inf := bedrockclient.Inference{
		MaxTokens:   values.NumbersCoalesce(opts.MaxTokens, l.cfg.MaxTokens),
		Temperature: l.cfg.Temperature,
		TopP:        l.cfg.TopP,
		StopWords:   l.cfg.StopWords,
	}
	if opts.Temperature != 0 {
		inf.Temperature = &opts.Temperature
	}
	if opts.TopP != 0 {
		inf.TopP = &opts.TopP
	}
	if len(opts.StopWords) > 0 {
		inf.StopWords = opts.StopWords
	}
	return inf
}

var _ llms.Model = (*LLM)(nil)
