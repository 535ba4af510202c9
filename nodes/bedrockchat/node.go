// Package bedrockchat provides the AWS Bedrock chat model sub-node,
// authenticated with the IAM credentials of the machine.
package bedrockchat

import (
	"context"

	"github.com/effective-security/flownodes/pkg/failedattempt"
	"github.com/effective-security/flownodes/pkg/httpproxy"
	"github.com/effective-security/flownodes/pkg/llms/bedrock"
	"github.com/effective-security/flownodes/pkg/llmtracing"
	"github.com/effective-security/flownodes/pkg/metricskey"
	"github.com/effective-security/flownodes/pkg/workflow"
	"github.com/effective-security/x/values"
	"github.com/effective-security/xlog"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/flownodes/nodes", "bedrockchat")

// NewChatModel creates the chat model, it is a variable so tests can override it.
var NewChatModel = bedrock.New

// Node is the AWS Bedrock chat model node.
type Node struct{}

// New returns the node type.
func New() *Node {
	return &Node{}
}

// Description implements workflow.NodeType.
func (n *Node) Description() *workflow.NodeTypeDescription {
	return &Description
}

// SupplyData implements workflow.NodeType.
// It returns the chat model configured from the parameters of the item.
func (n *Node) SupplyData(ctx context.Context, fn workflow.SupplyDataFunctions, itemIndex int) (*workflow.SupplyData, error) {
	modelID, err := workflow.StringParameter(fn, "modelId", itemIndex)
	if err != nil {
		return nil, err
	}
	// region is declared in options, a top level value takes precedence
	region, err := workflow.OptionalStringParameter(fn, "region", itemIndex, "")
	if err != nil {
		return nil, err
	}
	options, err := workflow.CollectionParameter(fn, "options", itemIndex)
	if err != nil {
		return nil, err
	}

	optionsRegion, err := options.String("region", DefaultRegion)
	if err != nil {
		return nil, err
	}
	temperature, err := options.Float("temperature", DefaultTemperature)
	if err != nil {
		return nil, err
	}
	maxTokens, err := options.Int("maxTokensToSample", DefaultMaxTokens)
	if err != nil {
		return nil, err
	}
	topP, err := options.Float("topP", DefaultTopP)
	if err != nil {
		return nil, err
	}
	region = values.StringsCoalesce(region, optionsRegion)

	nodeName := ""
	if node := fn.GetNode(); node != nil {
		nodeName = node.Name
	}

	model, err := NewChatModel(ctx,
		bedrock.WithName(nodeName),
		bedrock.WithRegion(region),
		bedrock.WithModel(modelID),
		bedrock.WithTemperature(temperature),
		bedrock.WithMaxTokens(maxTokens),
		bedrock.WithTopP(topP),
		bedrock.WithHTTPClient(httpproxy.NewHTTPClient()),
		bedrock.WithCallbacks(llmtracing.New(fn)),
		bedrock.WithFailedAttemptHandler(failedattempt.New(fn, nil)),
	)
	if err != nil {
		return nil, err
	}

	metricskey.StatsNodeSupplyData.IncrCounter(1, nodeName)
	logger.ContextKV(ctx, xlog.DEBUG,
		"status", "supplied",
		"node", nodeName,
		"item", itemIndex,
		"model", modelID,
		"region", region,
	)

	return &workflow.SupplyData{
		Response: model,
	}, nil
}

var _ workflow.NodeType = (*Node)(nil)
