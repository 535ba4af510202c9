package bedrockclient

import (
	"context"
	"math"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/cockroachdb/errors"
	"github.com/effective-security/flownodes/pkg/llms"
	"github.com/effective-security/flownodes/pkg/llmutils"
)

// API is the subset of bedrockruntime.Client used by the Client.
type API interface {
	Converse(ctx context.Context, params *bedrockruntime.ConverseInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error)
	ConverseStream(ctx context.Context, params *bedrockruntime.ConverseStreamInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseStreamOutput, error)
}

// Client is a Bedrock Converse client.
type Client struct {
	api API
	// downloader fetches image URLs, Converse accepts only image bytes
	downloader llmutils.HTTPClient
}

// Inference is the sampling configuration of a call.
// Nil values are left to the model defaults.
type Inference struct {
	MaxTokens   int
	Temperature *float64
	TopP        *float64
	StopWords   []string
}

// inferenceProfiles are the geographic prefixes of cross-region inference profiles
var inferenceProfiles = map[string]bool{
	"us": true, "us-gov": true, "eu": true, "apac": true,
	"ca": true, "jp": true, "au": true, "global": true,
}

// GetProvider returns the vendor of the model ID, e.g. anthropic for
// anthropic.claude-3-haiku-20240307-v1:0 or us.anthropic.claude-3-5-sonnet-20241022-v2:0.
func GetProvider(modelID string) string {
	prefix, rest, ok := strings.Cut(modelID, ".")
	if ok && inferenceProfiles[prefix] {
		prefix, _, _ = strings.Cut(rest, ".")
	}
	return prefix
}

// NewClient creates a new Bedrock client.
func NewClient(api API, downloader llmutils.HTTPClient) *Client {
	return &Client{
		api:        api,
		downloader: downloader,
	}
}

// CreateCompletion sends the messages to the model with the Converse API,
// or ConverseStream when options.StreamingFunc is set.
func (c *Client) CreateCompletion(ctx context.Context,
	modelID string,
	messages []llms.Message,
	inference Inference,
	options llms.CallOptions,
	optFns ...func(*bedrockruntime.Options),
) (*llms.ContentResponse, error) {
	msgs, system, err := c.processMessages(ctx, messages)
	if err != nil {
		return nil, err
	}
	toolConfig, err := getToolConfig(options.Tools, options.ToolChoice)
	if err != nil {
		return nil, err
	}
	inferenceConfig := getInferenceConfig(inference)

	if options.StreamingFunc != nil {
		out, err := c.api.ConverseStream(ctx, &bedrockruntime.ConverseStreamInput{
			ModelId:         aws.String(modelID),
			Messages:        msgs,
			System:          system,
			InferenceConfig: inferenceConfig,
			ToolConfig:      toolConfig,
		}, optFns...)
		if err != nil {
			return nil, err
		}
		stream := out.GetStream()
		if stream == nil {
			return nil, errors.New("no stream")
		}
		defer func() {
			_ = stream.Close()
		}()
		return parseStream(ctx, stream, options.StreamingFunc)
	}

	out, err := c.api.Converse(ctx, &bedrockruntime.ConverseInput{
		ModelId:         aws.String(modelID),
		Messages:        msgs,
		System:          system,
		InferenceConfig: inferenceConfig,
		ToolConfig:      toolConfig,
	}, optFns...)
	if err != nil {
		return nil, err
	}
	return parseOutput(out)
}

func getInferenceConfig(inference Inference) *types.InferenceConfiguration {
	cfg := &types.InferenceConfiguration{
		StopSequences: inference.StopWords,
	}
	if inference.MaxTokens > 0 {
		// values above the int32 range are clamped
		cfg.MaxTokens = aws.Int32(int32(min(inference.MaxTokens, math.MaxInt32)))
	}
	if inference.Temperature != nil {
		cfg.Temperature = aws.Float32(float32(*inference.Temperature))
	}
	if inference.TopP != nil {
		cfg.TopP = aws.Float32(float32(*inference.TopP))
	}
	return cfg
}

// Finish reason for the completion of the generation.
var completedStopReasons = []types.StopReason{
	types.StopReasonEndTurn,
	types.StopReasonStopSequence,
	types.StopReasonToolUse,
}

func checkStopReason(reason types.StopReason) error {
	for _, r := range completedStopReasons {
		if r == reason {
			return nil
		}
	}
	if reason == types.StopReasonMaxTokens {
		return errors.Newf("completed due to %s. Maybe try increasing max tokens", reason)
	}
	return errors.Newf("completed due to %s", reason)
}

func generationInfo(usage *types.TokenUsage) map[string]any {
	info := map[string]any{}
	if usage == nil {
		return info
	}
	info[llms.GenerationInfoInputTokens] = int(aws.ToInt32(usage.InputTokens))
	info[llms.GenerationInfoOutputTokens] = int(aws.ToInt32(usage.OutputTokens))
	info[llms.GenerationInfoTotalTokens] = int(aws.ToInt32(usage.TotalTokens))
	return info
}
