package bedrock

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/effective-security/flownodes/pkg/llms"
	"github.com/effective-security/flownodes/pkg/llms/bedrock/internal/bedrockclient"
	"github.com/effective-security/flownodes/pkg/llmutils"
)

// ConverseAPI is the subset of bedrockruntime.Client used by the model.
type ConverseAPI = bedrockclient.API

// Option is an option for the Bedrock chat model.
type Option func(*options)

type options struct {
	cfg         Config
	client      ConverseAPI
	httpClient  aws.HTTPClient
	downloader  llmutils.HTTPClient
	credentials aws.CredentialsProvider
	callbacks   llms.Callbacks
	onFailed    llms.FailedAttemptHandler
}

// WithModel sets the model ID or inference profile.
func WithModel(modelID string) Option {
	return func(o *options) {
		o.cfg.Model = modelID
	}
}

// WithRegion sets the AWS region.
func WithRegion(region string) Option {
	return func(o *options) {
		o.cfg.Region = region
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(temperature float64) Option {
	return func(o *options) {
		o.cfg.Temperature = &temperature
	}
}

// WithMaxTokens sets the maximum number of tokens to generate.
func WithMaxTokens(maxTokens int) Option {
	return func(o *options) {
		o.cfg.MaxTokens = maxTokens
	}
}

// WithTopP sets the cumulative probability for top-p sampling.
func WithTopP(topP float64) Option {
	return func(o *options) {
		o.cfg.TopP = &topP
	}
}

// WithStopWords sets the stop sequences.
func WithStopWords(stopWords []string) Option {
	return func(o *options) {
		o.cfg.StopWords = stopWords
	}
}

// WithMaxAttempts sets the maximum number of attempts of the SDK retryer.
func WithMaxAttempts(n int) Option {
	return func(o *options) {
		o.cfg.MaxAttempts = n
	}
}

// WithName sets the name used to tag metrics, usually the node name.
func WithName(name string) Option {
	return func(o *options) {
		o.cfg.Name = name
	}
}

// WithHTTPClient sets the HTTP client for the AWS SDK.
// It also downloads image URLs, unless WithDownloader is set.
// The config loader adds a CA bundle from AWS_CA_BUNDLE only to an
// *awshttp.BuildableClient, e.g. httpproxy.NewHTTPClient, other clients fail to load.
func WithHTTPClient(client aws.HTTPClient) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithDownloader sets the HTTP client used to download image URLs.
func WithDownloader(client llmutils.HTTPClient) Option {
	return func(o *options) {
		o.downloader = client
	}
}

// WithStaticCredentials sets static AWS credentials,
// by default the SDK credential chain is used.
func WithStaticCredentials(accessKeyID, secretAccessKey, sessionToken string) Option {
	return func(o *options) {
		o.credentials = credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, sessionToken)
	}
}

// WithClient sets the Converse client, the AWS config is not loaded.
func WithClient(client ConverseAPI) Option {
	return func(o *options) {
		o.client = client
	}
}

// WithCallbacks adds callbacks for every call.
func WithCallbacks(callbacks ...llms.Callback) Option {
	return func(o *options) {
		o.callbacks = append(o.callbacks, callbacks...)
	}
}

// WithFailedAttemptHandler sets the handler called after every failed attempt.
func WithFailedAttemptHandler(handler llms.FailedAttemptHandler) Option {
	return func(o *options) {
		o.onFailed = handler
	}
}
