// Package nodes registers the node types of this module.
package nodes

import (
	"github.com/effective-security/flownodes/nodes/bedrockchat"
	"github.com/effective-security/flownodes/pkg/workflow"
)

// Register adds all node types to the registry.
func Register(reg *workflow.Registry) error {
	for _, nt := range []workflow.NodeType{
		bedrockchat.New(),
	} {
		if err := reg.Register(nt); err != nil {
			return err
		}
	}
	return nil
}

// NewRegistry returns a registry with all node types.
func NewRegistry() (*workflow.Registry, error) {
	reg := workflow.NewRegistry()
	if err := Register(reg); err != nil {
		return nil, err
	}
	return reg, nil
}
