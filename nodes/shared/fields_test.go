package shared_test

import (
	"testing"

	"github.com/effective-security/flownodes/nodes/shared"
	"github.com/effective-security/flownodes/pkg/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectionHintNotice(t *testing.T) {
	p := shared.ConnectionHintNotice(workflow.ConnectionAIChain, workflow.ConnectionAIChain)
	assert.Equal(t, "notice", p.Name)
	assert.Equal(t, workflow.PropertyNotice, p.Type)
	assert.Equal(t, "", p.Default)
	require.NotNil(t, p.TypeOptions)
	assert.Equal(t, shared.ConnectionHintContainerClass, p.TypeOptions.ContainerClass)
	assert.Equal(t,
		"This node must be connected to an AI chain. <a data-action='openSelectiveNodeCreator' data-action-parameter-connectiontype='ai_chain'>Insert one</a>",
		p.DisplayName)

	p = shared.ConnectionHintNotice(workflow.ConnectionAIChain, workflow.ConnectionAIAgent)
	assert.Contains(t, p.DisplayName, "This node needs to be connected to an AI chain or AI agent.")

	p = shared.ConnectionHintNotice()
	assert.Equal(t, "This node must be connected to another node.", p.DisplayName)
}
