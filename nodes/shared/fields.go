// Package shared provides the parameter fields common to AI sub-nodes.
package shared

import (
	"fmt"
	"slices"
	"strings"

	"github.com/effective-security/flownodes/pkg/workflow"
)

// ConnectionHintContainerClass is the form class of the hint notice.
const ConnectionHintContainerClass = "ndv-connection-hint-notice"

var connectionNames = map[workflow.ConnectionType]string{
	workflow.ConnectionAIAgent:         "AI agent",
	workflow.ConnectionAIChain:         "AI chain",
	workflow.ConnectionAILanguageModel: "AI language model",
	workflow.ConnectionMain:            "node",
}

func connectionName(conn workflow.ConnectionType) string {
	if name, ok := connectionNames[conn]; ok {
		return name
	}
	return string(conn)
}

// ConnectionHintNotice returns the notice telling the user
// which node types the output of the node must be connected to.
// Duplicate connection types are ignored.
func ConnectionHintNotice(conns ...workflow.ConnectionType) *workflow.NodeProperty {
	var unique []workflow.ConnectionType
	for _, c := range conns {
		if !slices.Contains(unique, c) {
			unique = append(unique, c)
		}
	}

	var text string
	switch len(unique) {
	case 0:
		text = "This node must be connected to another node."
	case 1:
		text = fmt.Sprintf(
			"This node must be connected to an %s. <a data-action='openSelectiveNodeCreator' data-action-parameter-connectiontype='%s'>Insert one</a>",
			connectionName(unique[0]), unique[0])
	default:
		names := make([]string, 0, len(unique))
		for _, c := range unique {
			names = append(names, connectionName(c))
		}
		text = fmt.Sprintf(
			"This node needs to be connected to an %s. <a data-action='openSelectiveNodeCreator' data-action-parameter-creatorview='AI'>Insert one</a>",
			strings.Join(names, " or "))
	}

	return &workflow.NodeProperty{
		DisplayName: text,
		Name:        "notice",
		Type:        workflow.PropertyNotice,
		Default:     "",
		TypeOptions: &workflow.TypeOptions{
			ContainerClass: ConnectionHintContainerClass,
		},
	}
}
