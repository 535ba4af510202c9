package llms

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrUnexpectedRole is returned for a message role the provider can not map.
var ErrUnexpectedRole = errors.New("unexpected role")

// Role is the author of a message.
type Role string

// Message roles
const (
	RoleAI      Role = "ai"
	RoleHuman   Role = "human"
	RoleSystem  Role = "system"
	RoleGeneric Role = "generic"
	RoleTool    Role = "tool"
)

// Message is one turn of a conversation.
type Message struct {
	Role  Role          `json:"role"`
	Parts []ContentPart `json:"parts"`
}

// ContentPart is one of TextContent, ImageURLContent, BinaryContent,
// ToolCall or ToolCallResponse.
type ContentPart interface {
	isPart()
}

// TextContent is a text part.
type TextContent struct {
	Text string `json:"text"`
}

func (tc TextContent) String() string {
	return tc.Text
}

func (TextContent) isPart() {}

// ImageURLContent is an image referenced by URL.
type ImageURLContent struct {
	URL string `json:"url"`
	// Detail is a resolution hint, low or high
	Detail string `json:"detail,omitempty"`
}

func (iuc ImageURLContent) String() string {
	return iuc.URL
}

func (ImageURLContent) isPart() {}

// BinaryContent is inline data with a MIME type.
type BinaryContent struct {
	MIMEType string `json:"mime_type"`
	Data     []byte `json:"data"`
}

// String returns the content as data URL.
func (bc BinaryContent) String() string {
	return fmt.Sprintf("data:%s;base64,%s", bc.MIMEType, base64.StdEncoding.EncodeToString(bc.Data))
}

func (BinaryContent) isPart() {}

// FunctionCall is a function requested by the model.
type FunctionCall struct {
	Name string `json:"name"`
	// Arguments is a JSON object
	Arguments string `json:"arguments"`
}

// ToolCall is a tool invocation requested by the model.
type ToolCall struct {
	ID           string        `json:"id"`
	Type         string        `json:"type"`
	FunctionCall *FunctionCall `json:"function,omitempty"`
}

func (tc ToolCall) String() string {
	if tc.FunctionCall == nil {
		return fmt.Sprintf("ToolCall: %s", tc.ID)
	}
	return fmt.Sprintf("ToolCall: %s (%s), input: %s", tc.ID, tc.FunctionCall.Name, tc.FunctionCall.Arguments)
}

func (ToolCall) isPart() {}

// ToolCallResponse is the result of a ToolCall.
type ToolCallResponse struct {
	ToolCallID string `json:"tool_call_id"`
	Name       string `json:"name"`
	Content    string `json:"content"`
}

func (tc ToolCallResponse) String() string {
	return fmt.Sprintf("ToolCallResponse: %s (%s), response size: %d", tc.ToolCallID, tc.Name, len(tc.Content))
}

func (ToolCallResponse) isPart() {}

// TextPart returns a text part.
func TextPart(s string) TextContent {
	return TextContent{Text: s}
}

// BinaryPart returns an inline data part, e.g. for image/png.
func BinaryPart(mime string, data []byte) BinaryContent {
	return BinaryContent{MIMEType: mime, Data: data}
}

// ImageURLPart returns an image URL part.
func ImageURLPart(url string) ImageURLContent {
	return ImageURLContent{URL: url}
}

// MessageFromParts returns a message with the parts.
func MessageFromParts(role Role, parts ...ContentPart) Message {
	return Message{Role: role, Parts: parts}
}

// MessageFromTextParts returns a message with a text part per string.
func MessageFromTextParts(role Role, texts ...string) Message {
	parts := make([]ContentPart, 0, len(texts))
	for _, text := range texts {
		parts = append(parts, TextPart(text))
	}
	return Message{Role: role, Parts: parts}
}

// MessageFromToolCalls returns a message with copies of the tool calls.
func MessageFromToolCalls(role Role, toolCalls ...ToolCall) Message {
	parts := make([]ContentPart, 0, len(toolCalls))
	for _, tc := range toolCalls {
		if tc.FunctionCall != nil {
			fc := *tc.FunctionCall
			tc.FunctionCall = &fc
		}
		parts = append(parts, tc)
	}
	return Message{Role: role, Parts: parts}
}

// MessageFromToolResponse returns a message with the tool response.
func MessageFromToolResponse(role Role, resp ToolCallResponse) Message {
	return MessageFromParts(role, resp)
}

// GetContent returns the parts as text, one part per line.
// Tool calls and responses are written as JSON.
func (m Message) GetContent() string {
	var sb strings.Builder
	for _, p := range m.Parts {
		if sb.Len() > 0 && !strings.HasSuffix(sb.String(), "\n") {
			sb.WriteByte('\n')
		}
		switch typ := p.(type) {
		case TextContent:
			sb.WriteString(typ.Text)
		case ImageURLContent:
			sb.WriteString("URL: " + typ.URL)
		case BinaryContent:
			sb.WriteString("Binary: " + typ.MIMEType + "\n")
			sb.WriteString(base64.StdEncoding.EncodeToString(typ.Data))
		case ToolCall:
			js, _ := json.Marshal(typ)
			sb.WriteString("Tool Call: " + string(js) + "\n")
		case ToolCallResponse:
			js, _ := json.Marshal(typ)
			sb.WriteString("Response: " + string(js) + "\n")
		}
	}
	if sb.Len() > 0 && !strings.HasSuffix(sb.String(), "\n") {
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ContentResponse is the reply of GenerateContent.
type ContentResponse struct {
	Choices []*ContentChoice
}

// ContentChoice is one reply candidate.
type ContentChoice struct {
	Content    string `json:"content"`
	StopReason string `json:"stop_reason"`
	// GenerationInfo holds provider data, see the GenerationInfo keys
	GenerationInfo map[string]any `json:"generation_info"`
	ToolCalls      []ToolCall     `json:"tool_calls"`
}

// GenerationInfo keys for token usage
const (
	GenerationInfoInputTokens  = "InputTokens"
	GenerationInfoOutputTokens = "OutputTokens"
	GenerationInfoTotalTokens  = "TotalTokens"
)

// Text returns the concatenated content of all choices.
func (r *ContentResponse) Text() string {
	if r == nil {
		return ""
	}
	var sb strings.Builder
	for _, c := range r.Choices {
		sb.WriteString(c.Content)
	}
	return sb.String()
}
