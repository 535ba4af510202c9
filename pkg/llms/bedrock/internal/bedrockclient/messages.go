package bedrockclient

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/document"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/cockroachdb/errors"
	"github.com/effective-security/flownodes/pkg/llms"
	"github.com/effective-security/flownodes/pkg/llmutils"
)

// processMessages converts the messages to Converse messages and system prompt.
// Consecutive messages with the same Converse role are merged,
// as Converse requires alternating user and assistant turns.
func (c *Client) processMessages(ctx context.Context, messages []llms.Message) ([]types.Message, []types.SystemContentBlock, error) {
	var system []types.SystemContentBlock
	msgs := make([]types.Message, 0, len(messages))

	for _, m := range messages {
		if m.Role == llms.RoleSystem {
			for _, part := range m.Parts {
				text, ok := part.(llms.TextContent)
				if !ok {
					return nil, nil, errors.New("system prompt must be text")
				}
				system = append(system, &types.SystemContentBlockMemberText{Value: text.Text})
			}
			continue
		}

		role, err := getConverseRole(m.Role)
		if err != nil {
			return nil, nil, err
		}

		blocks := make([]types.ContentBlock, 0, len(m.Parts))
		for _, part := range m.Parts {
			block, err := c.getContentBlock(ctx, part)
			if err != nil {
				return nil, nil, err
			}
			blocks = append(blocks, block)
		}
		if len(blocks) == 0 {
			continue
		}

		if last := len(msgs) - 1; last >= 0 && msgs[last].Role == role {
			msgs[last].Content = append(msgs[last].Content, blocks...)
			continue
		}
		msgs = append(msgs, types.Message{
			Role:    role,
			Content: blocks,
		})
	}
	return msgs, system, nil
}

func getConverseRole(role llms.Role) (types.ConversationRole, error) {
	switch role {
	case llms.RoleAI:
		return types.ConversationRoleAssistant, nil
	case llms.RoleHuman, llms.RoleGeneric, llms.RoleTool:
		// tool results are sent in the user turn
		return types.ConversationRoleUser, nil
	default:
		return "", errors.Wrapf(llms.ErrUnexpectedRole, "role %q", role)
	}
}

func (c *Client) getContentBlock(ctx context.Context, part llms.ContentPart) (types.ContentBlock, error) {
	switch p := part.(type) {
	case llms.TextContent:
		return &types.ContentBlockMemberText{Value: p.Text}, nil
	case llms.BinaryContent:
		format, err := getImageFormat(p.MIMEType)
		if err != nil {
			return nil, err
		}
		return &types.ContentBlockMemberImage{
			Value: types.ImageBlock{
				Format: format,
				Source: &types.ImageSourceMemberBytes{Value: p.Data},
			},
		}, nil
	case llms.ImageURLContent:
		if c.downloader == nil {
			return nil, errors.New("image URLs are not supported without HTTP client")
		}
		typ, data, err := llmutils.DownloadImageData(ctx, c.downloader, p.URL)
		if err != nil {
			return nil, err
		}
		format, err := getImageFormat("image/" + typ)
		if err != nil {
			return nil, err
		}
		return &types.ContentBlockMemberImage{
			Value: types.ImageBlock{
				Format: format,
				Source: &types.ImageSourceMemberBytes{Value: data},
			},
		}, nil
	case llms.ToolCall:
		if p.FunctionCall == nil {
			return nil, errors.Newf("tool call %s: missing function", p.ID)
		}
		var input any = map[string]any{}
		if p.FunctionCall.Arguments != "" {
			if err := json.Unmarshal([]byte(p.FunctionCall.Arguments), &input); err != nil {
				return nil, errors.Wrapf(err, "tool call %s: invalid arguments", p.ID)
			}
		}
		return &types.ContentBlockMemberToolUse{
			Value: types.ToolUseBlock{
				ToolUseId: aws.String(p.ID),
				Name:      aws.String(p.FunctionCall.Name),
				Input:     document.NewLazyDocument(input),
			},
		}, nil
	case llms.ToolCallResponse:
		return &types.ContentBlockMemberToolResult{
			Value: types.ToolResultBlock{
				ToolUseId: aws.String(p.ToolCallID),
				Content: []types.ToolResultContentBlock{
					&types.ToolResultContentBlockMemberText{Value: p.Content},
				},
			},
		}, nil
	default:
		return nil, errors.Newf("unsupported content part: %T", part)
	}
}

func getImageFormat(mimeType string) (types.ImageFormat, error) {
	switch strings.ToLower(mimeType) {
	case "image/png":
		return types.ImageFormatPng, nil
	case "image/jpeg", "image/jpg":
		return types.ImageFormatJpeg, nil
	case "image/gif":
		return types.ImageFormatGif, nil
	case "image/webp":
		return types.ImageFormatWebp, nil
	default:
		return "", errors.Newf("unsupported image MIME type: %s", mimeType)
	}
}
