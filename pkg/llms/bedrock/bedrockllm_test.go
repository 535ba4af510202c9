package bedrock

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/ratelimit"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/cockroachdb/errors"
	"github.com/effective-security/flownodes/mocks/mockworkflow"
	"github.com/effective-security/flownodes/pkg/failedattempt"
	"github.com/effective-security/flownodes/pkg/httpproxy"
	"github.com/effective-security/flownodes/pkg/llms"
	"github.com/effective-security/flownodes/pkg/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// fakeConverse simulates the SDK retry loop over the configured errors
type fakeConverse struct {
	errs   []error
	input  *bedrockruntime.ConverseInput
	called int
}

func (f *fakeConverse) Converse(_ context.Context, params *bedrockruntime.ConverseInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error) {
	f.input = params
	o := bedrockruntime.Options{
		Retryer: retry.NewStandard(func(so *retry.StandardOptions) {
			so.MaxAttempts = 3
		}),
	}
	for _, fn := range optFns {
		fn(&o)
	}

	for attempt := 1; ; attempt++ {
		f.called++
		if attempt > len(f.errs) {
			break
		}
		err := f.errs[attempt-1]
		if !o.Retryer.IsErrorRetryable(err) || attempt >= o.Retryer.MaxAttempts() {
			return nil, err
		}
	}

	return &bedrockruntime.ConverseOutput{
		Output: &types.ConverseOutputMemberMessage{
			Value: types.Message{
				Role:    types.ConversationRoleAssistant,
				Content: []types.ContentBlock{&types.ContentBlockMemberText{Value: "pong"}},
			},
		},
		StopReason: types.StopReasonEndTurn,
		Usage: &types.TokenUsage{
			InputTokens:  aws.Int32(2),
			OutputTokens: aws.Int32(1),
			TotalTokens:  aws.Int32(3),
		},
	}, nil
}

func (f *fakeConverse) ConverseStream(context.Context, *bedrockruntime.ConverseStreamInput, ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseStreamOutput, error) {
	return nil, errors.New("not implemented")
}

type recorder struct {
	lock   sync.Mutex
	events []string
	runIDs []string
}

func (r *recorder) add(event, runID string) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.events = append(r.events, event)
	r.runIDs = append(r.runIDs, runID)
}

func (r *recorder) HandleLLMStart(_ context.Context, runID string, _ llms.Model, _ []llms.Message, _ llms.CallOptions) {
	r.add("start", runID)
}

func (r *recorder) HandleLLMEnd(_ context.Context, runID string, _ llms.Model, _ *llms.ContentResponse) {
	r.add("end", runID)
}

func (r *recorder) HandleLLMError(_ context.Context, runID string, _ llms.Model, _ error) {
	r.add("error", runID)
}

// throttled is a retryable SDK error
type throttled struct{}

func (throttled) Error() string       { return "throttled" }
func (throttled) ErrorCode() string   { return "ThrottlingException" }
func (throttled) HTTPStatusCode() int { return http.StatusTooManyRequests }

func TestNewDefaults(t *testing.T) {
	llm, err := New(context.Background(), WithClient(&fakeConverse{}))
	require.NoError(t, err)

	cfg := llm.Options()
	assert.Equal(t, DefaultModel, cfg.Model)
	assert.Equal(t, DefaultRegion, cfg.Region)
	assert.Equal(t, "anthropic", cfg.Provider)
	assert.Equal(t, "bedrock", cfg.Name)
	assert.Nil(t, cfg.Temperature)
	assert.Nil(t, cfg.TopP)
	assert.Equal(t, DefaultModel, llm.GetName())
	assert.Equal(t, llms.ProviderBedrock, llm.GetProviderType())
}

func TestNewOptions(t *testing.T) {
	llm, err := New(context.Background(),
		WithClient(&fakeConverse{}),
		WithName("Bedrock Chat"),
		WithModel("us.amazon.nova-pro-v1:0"),
		WithRegion("eu-west-1"),
		WithTemperature(0.5),
		WithMaxTokens(100),
		WithTopP(0.8),
		WithStopWords([]string{"END"}),
		WithMaxAttempts(4),
	)
	require.NoError(t, err)

	cfg := llm.Options()
	assert.Equal(t, "Bedrock Chat", cfg.Name)
	assert.Equal(t, "us.amazon.nova-pro-v1:0", cfg.Model)
	assert.Equal(t, "amazon", cfg.Provider)
	assert.Equal(t, "eu-west-1", cfg.Region)
	assert.Equal(t, 0.5, *cfg.Temperature)
	assert.Equal(t, 100, cfg.MaxTokens)
	assert.Equal(t, 0.8, *cfg.TopP)
	assert.Equal(t, []string{"END"}, cfg.StopWords)
	assert.Equal(t, 4, cfg.MaxAttempts)
}

func TestNewLoadsConfig(t *testing.T) {
	t.Setenv("AWS_CONFIG_FILE", t.TempDir()+"/config")
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", t.TempDir()+"/credentials")
	t.Setenv("AWS_PROFILE", "")
	t.Setenv("AWS_CA_BUNDLE", "")

	llm, err := New(context.Background(),
		WithRegion("us-west-2"),
		WithStaticCredentials("AKID", "SECRET", ""),
		WithHTTPClient(httpproxy.NewHTTPClient()),
		WithMaxAttempts(2),
	)
	require.NoError(t, err)
	assert.Equal(t, "us-west-2", llm.Options().Region)
}

func TestGenerateContent(t *testing.T) {
	api := &fakeConverse{}
	rec := &recorder{}
	llm, err := New(context.Background(),
		WithClient(api),
		WithModel(ModelAnthropicClaude37Sonnet),
		WithTemperature(0.7),
		WithMaxTokens(2000),
		WithTopP(0.9),
		WithCallbacks(rec),
	)
	require.NoError(t, err)

	resp, err := llm.GenerateContent(context.Background(), []llms.Message{
		llms.MessageFromTextParts(llms.RoleHuman, "ping"),
	})
	require.NoError(t, err)
	assert.Equal(t, "pong", resp.Text())

	assert.Equal(t, ModelAnthropicClaude37Sonnet, aws.ToString(api.input.ModelId))
	assert.Equal(t, int32(2000), aws.ToInt32(api.input.InferenceConfig.MaxTokens))
	assert.InDelta(t, 0.7, aws.ToFloat32(api.input.InferenceConfig.Temperature), 0.0001)
	assert.InDelta(t, 0.9, aws.ToFloat32(api.input.InferenceConfig.TopP), 0.0001)

	// call options take precedence
	_, err = llm.GenerateContent(context.Background(), []llms.Message{
		llms.MessageFromTextParts(llms.RoleHuman, "ping"),
	}, llms.WithModel(ModelAmazonNovaLite), llms.WithMaxTokens(10), llms.WithTemperature(0.2))
	require.NoError(t, err)
	assert.Equal(t, ModelAmazonNovaLite, aws.ToString(api.input.ModelId))
	assert.Equal(t, int32(10), aws.ToInt32(api.input.InferenceConfig.MaxTokens))
	assert.InDelta(t, 0.2, aws.ToFloat32(api.input.InferenceConfig.Temperature), 0.0001)

	require.Equal(t, []string{"start", "end", "start", "end"}, rec.events)
	assert.Equal(t, rec.runIDs[0], rec.runIDs[1])
	assert.NotEqual(t, rec.runIDs[0], rec.runIDs[2])
}

func TestGenerateContentCallOptionCallbacks(t *testing.T) {
	model := &recorder{}
	call := &recorder{}
	llm, err := New(context.Background(),
		WithClient(&fakeConverse{}),
		WithCallbacks(model),
	)
	require.NoError(t, err)

	_, err = llm.GenerateContent(context.Background(), []llms.Message{
		llms.MessageFromTextParts(llms.RoleHuman, "ping"),
	}, llms.WithCallbacks(call))
	require.NoError(t, err)
	assert.Equal(t, []string{"start", "end"}, model.events)
	assert.Equal(t, []string{"start", "end"}, call.events)

	// call callbacks are not kept by the model
	_, err = llm.GenerateContent(context.Background(), []llms.Message{
		llms.MessageFromTextParts(llms.RoleHuman, "ping"),
	})
	require.NoError(t, err)
	assert.Len(t, model.events, 4)
	assert.Len(t, call.events, 2)
}

func TestGenerateContentFailedAttempts(t *testing.T) {
	t.Run("retried", func(t *testing.T) {
		api := &fakeConverse{errs: []error{throttled{}, throttled{}}}
		var attempts []llms.FailedAttempt
		llm, err := New(context.Background(),
			WithClient(api),
			WithFailedAttemptHandler(func(_ context.Context, fa llms.FailedAttempt) error {
				attempts = append(attempts, fa)
				return nil
			}),
		)
		require.NoError(t, err)

		resp, err := llm.GenerateContent(context.Background(), []llms.Message{
			llms.MessageFromTextParts(llms.RoleHuman, "ping"),
		})
		require.NoError(t, err)
		assert.Equal(t, "pong", resp.Text())
		assert.Equal(t, 3, api.called)
		require.Len(t, attempts, 2)
		assert.Equal(t, 1, attempts[0].Attempt)
		assert.Equal(t, 2, attempts[0].RetriesLeft)
		assert.Equal(t, 2, attempts[1].Attempt)
		assert.Equal(t, 1, attempts[1].RetriesLeft)
	})

	t.Run("stopped", func(t *testing.T) {
		api := &fakeConverse{errs: []error{throttled{}, throttled{}}}
		rec := &recorder{}
		stop := errors.New("do not retry")
		llm, err := New(context.Background(),
			WithClient(api),
			WithCallbacks(rec),
			WithFailedAttemptHandler(func(_ context.Context, fa llms.FailedAttempt) error {
				return stop
			}),
		)
		require.NoError(t, err)

		_, err = llm.GenerateContent(context.Background(), []llms.Message{
			llms.MessageFromTextParts(llms.RoleHuman, "ping"),
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, stop))
		assert.Equal(t, 1, api.called)
		assert.Equal(t, []string{"start", "error"}, rec.events)
	})

	t.Run("exhausted", func(t *testing.T) {
		api := &fakeConverse{errs: []error{throttled{}, throttled{}, throttled{}}}
		var last llms.FailedAttempt
		llm, err := New(context.Background(),
			WithClient(api),
			WithFailedAttemptHandler(func(_ context.Context, fa llms.FailedAttempt) error {
				last = fa
				return nil
			}),
		)
		require.NoError(t, err)

		_, err = llm.GenerateContent(context.Background(), []llms.Message{
			llms.MessageFromTextParts(llms.RoleHuman, "ping"),
		})
		assert.EqualError(t, err, "throttled")
		assert.Equal(t, 3, last.Attempt)
		assert.Equal(t, 0, last.RetriesLeft)
	})
}

// runtimeClient returns a bedrockruntime client for the server,
// with the standard retryer and no backoff
func runtimeClient(srv *httptest.Server) *bedrockruntime.Client {
	return bedrockruntime.New(bedrockruntime.Options{
		Region:       "us-east-1",
		BaseEndpoint: aws.String(srv.URL),
		Credentials:  credentials.NewStaticCredentialsProvider("AKID", "SECRET", ""),
		HTTPClient:   srv.Client(),
		Retryer: retry.NewStandard(func(so *retry.StandardOptions) {
			so.MaxAttempts = 3
			so.RateLimiter = ratelimit.None
			so.Backoff = retry.BackoffDelayerFunc(func(int, error) (time.Duration, error) {
				return 0, nil
			})
		}),
	})
}

func TestGenerateContentRuntimeRetries(t *testing.T) {
	node := &workflow.Node{Name: "Bedrock", Type: "bedrockChatIAM", TypeVersion: 1.1}

	tcs := []struct {
		name        string
		status      string
		code        int
		requests    int32
		retriesLeft []int
	}{
		{name: "server error", status: "InternalServerException", code: http.StatusInternalServerError, requests: 3, retriesLeft: []int{2, 1, 0}},
		{name: "validation", status: "ValidationException", code: http.StatusBadRequest, requests: 1, retriesLeft: []int{2}},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			var requests atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				requests.Add(1)
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("X-Amzn-Errortype", tc.status)
				w.WriteHeader(tc.code)
				_, _ = w.Write([]byte(`{"message":"failed"}`))
			}))
			defer srv.Close()

			ctrl := gomock.NewController(t)
			host := mockworkflow.NewMockSupplyDataFunctions(ctrl)
			host.EXPECT().GetNode().Return(node).AnyTimes()

			var retriesLeft []int
			handler := failedattempt.New(host, func(_ context.Context, fa llms.FailedAttempt) error {
				retriesLeft = append(retriesLeft, fa.RetriesLeft)
				return nil
			})

			llm, err := New(context.Background(),
				WithClient(runtimeClient(srv)),
				WithFailedAttemptHandler(handler),
			)
			require.NoError(t, err)

			_, err = llm.GenerateContent(context.Background(), []llms.Message{
				llms.MessageFromTextParts(llms.RoleHuman, "ping"),
			})
			require.Error(t, err)

			var apiErr *workflow.NodeAPIError
			require.True(t, errors.As(err, &apiErr), "%T: %v", err, err)
			assert.Same(t, node, apiErr.Node)
			assert.Equal(t, tc.requests, requests.Load())
			assert.Equal(t, tc.retriesLeft, retriesLeft)
		})
	}
}

func TestAttemptRetryer(t *testing.T) {
	var got []llms.FailedAttempt
	r := newAttemptRetryer(context.Background(), nil, func(_ context.Context, fa llms.FailedAttempt) error {
		got = append(got, fa)
		return nil
	})

	// NopRetryer allows a single attempt
	assert.False(t, r.IsErrorRetryable(throttled{}))
	assert.Equal(t, 1, r.Attempts())
	assert.NoError(t, r.Err())
	require.Len(t, got, 1)
	assert.Equal(t, 0, got[0].RetriesLeft)
	assert.Equal(t, "throttled", got[0].Err.Error())
}
