package llmutils_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/effective-security/flownodes/pkg/llms"
	"github.com/effective-security/flownodes/pkg/llmutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMessages() []llms.Message {
	return []llms.Message{
		llms.MessageFromTextParts(llms.RoleSystem, "Please be polite."),
		llms.MessageFromTextParts(llms.RoleHuman, "Hello, how are you?"),
		llms.MessageFromTextParts(llms.RoleAI, "I'm doing great!"),
		llms.MessageFromToolCalls(llms.RoleAI, llms.ToolCall{ID: "1", Type: "function", FunctionCall: &llms.FunctionCall{Name: "tool1", Arguments: "arg1"}}),
		llms.MessageFromToolResponse(llms.RoleTool, llms.ToolCallResponse{ToolCallID: "1", Name: "tool1", Content: "tool1 result"}),
		llms.MessageFromParts(llms.RoleHuman, llms.BinaryPart("image/png", []byte{1, 2, 3})),
	}
}

func Test_MessagesText(t *testing.T) {
	assert.Empty(t, llmutils.MessagesText(nil))
	assert.Equal(t, []string{
		"Please be polite.",
		"Hello, how are you?",
		"I'm doing great!",
		"arg1",
		"tool1 result",
	}, llmutils.MessagesText(testMessages()))
}

func Test_ResponseText(t *testing.T) {
	assert.Nil(t, llmutils.ResponseText(nil))
	resp := &llms.ContentResponse{
		Choices: []*llms.ContentChoice{
			{Content: "Hello"},
			{ToolCalls: []llms.ToolCall{{ID: "1", FunctionCall: &llms.FunctionCall{Name: "f", Arguments: `{"a":1}`}}}},
		},
	}
	assert.Equal(t, []string{"Hello", "", `{"a":1}`}, llmutils.ResponseText(resp))
}

func Test_CountMessagesContentSize(t *testing.T) {
	msgs := []llms.Message{
		llms.MessageFromTextParts(llms.RoleHuman, "Hello"),
		llms.MessageFromTextParts(llms.RoleAI, "Hi there"),
	}
	// roles: "human" + "ai", text: "Hello" + "Hi there"
	assert.Equal(t, uint64(5+2+5+8), llmutils.CountMessagesContentSize(msgs))
}

func Test_CountResponseContentSize(t *testing.T) {
	resp := &llms.ContentResponse{
		Choices: []*llms.ContentChoice{
			{
				Content: "Hello world",
			},
		},
	}
	assert.Equal(t, uint64(11), llmutils.CountResponseContentSize(resp))
}

func Test_CountTokens(t *testing.T) {
	resp := &llms.ContentResponse{
		Choices: []*llms.ContentChoice{
			{
				GenerationInfo: map[string]any{
					llms.GenerationInfoInputTokens:  10,
					llms.GenerationInfoOutputTokens: 5,
					llms.GenerationInfoTotalTokens:  15,
				},
			},
			{},
		},
	}
	in, out, total := llmutils.CountTokens(resp)
	assert.Equal(t, int64(10), in)
	assert.Equal(t, int64(5), out)
	assert.Equal(t, int64(15), total)
}

func TestPrintMessages(t *testing.T) {
	var buf strings.Builder
	llmutils.PrintMessages(&buf, testMessages())
	exp := `SYSTEM: Please be polite.
HUMAN: Hello, how are you?
AI: I'm doing great!
AI: ToolCall ID=1, Type=function, Func=tool1(arg1)
TOOL: ToolCallResponse ID=1, Name=tool1, Content=tool1 result
HUMAN: BinaryContent MIME="image/png", size=3
`
	assert.Equal(t, exp, buf.String())
}

func Test_DownloadImageData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/image.png":
			w.Header().Set("Content-Type", "image/png; charset=binary")
			_, _ = w.Write([]byte{0x89, 0x50, 0x4e, 0x47})
		case "/missing":
			http.NotFound(w, r)
		case "/large":
			w.Header().Set("Content-Type", "image/jpeg")
			_, _ = w.Write(make([]byte, llmutils.MaxImageSize+1))
		default:
			w.Header().Set("Content-Type", "text")
			_, _ = w.Write([]byte("not an image"))
		}
	}))
	defer srv.Close()

	ctx := context.Background()
	typ, data, err := llmutils.DownloadImageData(ctx, srv.Client(), srv.URL+"/image.png")
	require.NoError(t, err)
	assert.Equal(t, "png", typ)
	assert.Equal(t, []byte{0x89, 0x50, 0x4e, 0x47}, data)

	_, _, err = llmutils.DownloadImageData(ctx, nil, srv.URL+"/text")
	assert.EqualError(t, err, `unsupported mime type "text"`)

	_, _, err = llmutils.DownloadImageData(ctx, srv.Client(), srv.URL+"/missing")
	assert.EqualError(t, err, "failed to fetch image: 404 Not Found")

	_, _, err = llmutils.DownloadImageData(ctx, srv.Client(), srv.URL+"/large")
	assert.EqualError(t, err, "image exceeds 3750000 bytes")
}
