package bedrockclient

import (
	"context"
	"slices"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/cockroachdb/errors"
	"github.com/effective-security/flownodes/pkg/llms"
)

func parseOutput(out *bedrockruntime.ConverseOutput) (*llms.ContentResponse, error) {
	msg, ok := out.Output.(*types.ConverseOutputMemberMessage)
	if !ok {
		return nil, errors.New("no results")
	}
	if err := checkStopReason(out.StopReason); err != nil {
		return nil, err
	}

	choice := &llms.ContentChoice{
		StopReason:     string(out.StopReason),
		GenerationInfo: generationInfo(out.Usage),
	}

	var sb strings.Builder
	for _, block := range msg.Value.Content {
		switch b := block.(type) {
		case *types.ContentBlockMemberText:
			sb.WriteString(b.Value)
		case *types.ContentBlockMemberToolUse:
			args := "{}"
			if b.Value.Input != nil {
				js, err := b.Value.Input.MarshalSmithyDocument()
				if err != nil {
					return nil, errors.Wrap(err, "failed to marshal tool arguments")
				}
				args = string(js)
			}
			choice.ToolCalls = append(choice.ToolCalls, llms.ToolCall{
				ID:   aws.ToString(b.Value.ToolUseId),
				Type: "function",
				FunctionCall: &llms.FunctionCall{
					Name:      aws.ToString(b.Value.Name),
					Arguments: args,
				},
			})
		}
	}
	choice.Content = sb.String()

	if choice.Content == "" && len(choice.ToolCalls) == 0 {
		return nil, errors.New("no results")
	}

	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{choice},
	}, nil
}

// StreamReader is implemented by bedrockruntime.ConverseStreamEventStream.
type StreamReader interface {
	Events() <-chan types.ConverseStreamOutput
	Close() error
	Err() error
}

type streamingToolCall struct {
	id   string
	name string
	args strings.Builder
}

func parseStream(ctx context.Context, stream StreamReader, fn func(ctx context.Context, chunk []byte) error) (*llms.ContentResponse, error) {
	choice := &llms.ContentChoice{
		GenerationInfo: map[string]any{},
	}
	var sb strings.Builder
	tools := map[int32]*streamingToolCall{}
	var order []int32

	for e := range stream.Events() {
		switch v := e.(type) {
		case *types.ConverseStreamOutputMemberContentBlockStart:
			if start, ok := v.Value.Start.(*types.ContentBlockStartMemberToolUse); ok {
				idx := aws.ToInt32(v.Value.ContentBlockIndex)
				tools[idx] = &streamingToolCall{
					id:   aws.ToString(start.Value.ToolUseId),
					name: aws.ToString(start.Value.Name),
				}
				order = append(order, idx)
			}
		case *types.ConverseStreamOutputMemberContentBlockDelta:
			switch d := v.Value.Delta.(type) {
			case *types.ContentBlockDeltaMemberText:
				if err := fn(ctx, []byte(d.Value)); err != nil {
					return nil, err
				}
				sb.WriteString(d.Value)
			case *types.ContentBlockDeltaMemberToolUse:
				if tc, ok := tools[aws.ToInt32(v.Value.ContentBlockIndex)]; ok {
					tc.args.WriteString(aws.ToString(d.Value.Input))
				}
			}
		case *types.ConverseStreamOutputMemberMessageStop:
			choice.StopReason = string(v.Value.StopReason)
		case *types.ConverseStreamOutputMemberMetadata:
			for k, val := range generationInfo(v.Value.Usage) {
				choice.GenerationInfo[k] = val
			}
		}
	}
	if err := stream.Err(); err != nil {
		return nil, err
	}

	choice.Content = sb.String()
	slices.Sort(order)
	for _, idx := range order {
		tc := tools[idx]
		args := tc.args.String()
		if args == "" {
			args = "{}"
		}
		choice.ToolCalls = append(choice.ToolCalls, llms.ToolCall{
			ID:   tc.id,
			Type: "function",
			FunctionCall: &llms.FunctionCall{
				Name:      tc.name,
				Arguments: args,
			},
		})
	}

	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{choice},
	}, nil
}
