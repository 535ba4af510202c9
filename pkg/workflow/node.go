package workflow

//go:generate mockgen -source=node.go -destination=../../mocks/mockworkflow/workflow_mock.gen.go -package mockworkflow

import (
	"context"
)

// AIEvent is the name of an event reported by AI nodes.
type AIEvent string

// AI events
const (
	AIEventLLMGeneratedOutput AIEvent = "ai-llm-generated-output"
	AIEventLLMErrored         AIEvent = "ai-llm-errored"
)

// Node is an instance of a node type in a workflow.
type Node struct {
	Name        string  `json:"name" yaml:"name"`
	Type        string  `json:"type" yaml:"type"`
	TypeVersion float64 `json:"typeVersion" yaml:"typeVersion"`
}

// ExecutionData is the JSON payload of one item.
type ExecutionData map[string]any

// SupplyData is returned by sub-nodes to their parent node.
type SupplyData struct {
	// Response is the supplied object, e.g. llms.Model.
	Response any
	// Close is an optional function called when the parent is done.
	Close func() error
}

// NodeType is implemented by every node the host can load.
type NodeType interface {
	// Description returns the static descriptor.
	Description() *NodeTypeDescription
	// SupplyData returns the object the node supplies for the item.
	SupplyData(ctx context.Context, fn SupplyDataFunctions, itemIndex int) (*SupplyData, error)
}

// SupplyDataFunctions is the host API available to SupplyData.
type SupplyDataFunctions interface {
	// GetNode returns the executing node.
	GetNode() *Node
	// GetNodeParameter resolves the parameter for the item.
	// The fallback is returned when the parameter is not set, nil means no fallback.
	GetNodeParameter(name string, itemIndex int, fallback any) (any, error)
	// AddInputData records the input of a sub-node run and returns the run index.
	AddInputData(conn ConnectionType, data [][]ExecutionData) int
	// AddOutputData records the output, or the error, of a sub-node run.
	AddOutputData(conn ConnectionType, index int, data [][]ExecutionData, err error)
	// LogAIEvent reports an AI event to the host.
	LogAIEvent(event AIEvent, payload any)
}
