package workflow

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// FunctionalityConfigurationNode marks errors raised by sub-nodes
// that configure their parent, e.g. a chat model.
const FunctionalityConfigurationNode = "configuration-node"

// NodeAPIError is an error returned by an external API called by a node.
type NodeAPIError struct {
	Node          *Node
	Functionality string
	// HTTPCode is the HTTP status of the failed call, if known
	HTTPCode int

	cause error
}

// NewNodeAPIError wraps cause as an API error of the node.
// A cause that already is a NodeAPIError is returned as is.
func NewNodeAPIError(node *Node, cause error, functionality string) *NodeAPIError {
	var existing *NodeAPIError
	if errors.As(cause, &existing) {
		return existing
	}
	e := &NodeAPIError{
		Node:          node,
		Functionality: functionality,
		cause:         cause,
	}
	var sc interface{ HTTPStatusCode() int }
	if errors.As(cause, &sc) {
		e.HTTPCode = sc.HTTPStatusCode()
	}
	return e
}

func (e *NodeAPIError) Error() string {
	if e.Node == nil || e.Node.Name == "" {
		return e.cause.Error()
	}
	return fmt.Sprintf("%s: %s", e.Node.Name, e.cause.Error())
}

// Unwrap returns the cause
func (e *NodeAPIError) Unwrap() error {
	return e.cause
}

// NodeOperationError is an error raised by the node itself.
type NodeOperationError struct {
	Node *Node

	cause error
}

// NewNodeOperationError wraps cause as an operation error of the node.
func NewNodeOperationError(node *Node, cause error) *NodeOperationError {
	return &NodeOperationError{
		Node:  node,
		cause: cause,
	}
}

func (e *NodeOperationError) Error() string {
	if e.Node == nil || e.Node.Name == "" {
		return e.cause.Error()
	}
	return fmt.Sprintf("%s: %s", e.Node.Name, e.cause.Error())
}

// Unwrap returns the cause
func (e *NodeOperationError) Unwrap() error {
	return e.cause
}
