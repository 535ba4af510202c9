package workflow

import (
	"slices"
	"strings"
)

// ConnectionType identifies the kind of connection between two nodes.
type ConnectionType string

// Connection types
const (
	ConnectionMain            ConnectionType = "main"
	ConnectionAIAgent         ConnectionType = "ai_agent"
	ConnectionAIChain         ConnectionType = "ai_chain"
	ConnectionAILanguageModel ConnectionType = "ai_languageModel"
)

// PropertyType is the form control type of a node parameter.
type PropertyType string

// Property types
const (
	PropertyString     PropertyType = "string"
	PropertyNumber     PropertyType = "number"
	PropertyBoolean    PropertyType = "boolean"
	PropertyOptions    PropertyType = "options"
	PropertyCollection PropertyType = "collection"
	PropertyNotice     PropertyType = "notice"
)

// TypeOptions are bounds and hints enforced by the host form layer.
type TypeOptions struct {
	MinValue        *float64 `json:"minValue,omitempty"`
	MaxValue        *float64 `json:"maxValue,omitempty"`
	NumberPrecision *int     `json:"numberPrecision,omitempty"`
	ContainerClass  string   `json:"containerClass,omitempty"`
}

// DisplayOptions controls when a property is shown,
// keyed by the name of another parameter.
type DisplayOptions struct {
	Show map[string][]any `json:"show,omitempty"`
	Hide map[string][]any `json:"hide,omitempty"`
}

// NodeProperty is one entry of a node parameter schema.
// For collection properties, Options lists the nested properties.
type NodeProperty struct {
	DisplayName      string          `json:"displayName"`
	Name             string          `json:"name"`
	Type             PropertyType    `json:"type"`
	Default          any             `json:"default"`
	Placeholder      string          `json:"placeholder,omitempty"`
	Description      string          `json:"description,omitempty"`
	Options          []*NodeProperty `json:"options,omitempty"`
	TypeOptions      *TypeOptions    `json:"typeOptions,omitempty"`
	RequiresDataPath string          `json:"requiresDataPath,omitempty"`
	DisplayOptions   *DisplayOptions `json:"displayOptions,omitempty"`
}

// Option returns the nested collection option by name, or nil.
func (p *NodeProperty) Option(name string) *NodeProperty {
	for _, o := range p.Options {
		if o.Name == name {
			return o
		}
	}
	return nil
}

// DocumentationResource is a link shown in the node panel.
type DocumentationResource struct {
	URL string `json:"url"`
}

// CodexResources groups documentation links.
type CodexResources struct {
	PrimaryDocumentation []DocumentationResource `json:"primaryDocumentation,omitempty"`
}

// Codex places the node in the host's node picker.
type Codex struct {
	Categories    []string            `json:"categories,omitempty"`
	Subcategories map[string][]string `json:"subcategories,omitempty"`
	Resources     *CodexResources     `json:"resources,omitempty"`
}

// NodeDefaults are the values a new node instance starts with.
type NodeDefaults struct {
	Name string `json:"name"`
}

// NodeTypeDescription is the static descriptor of a node type.
type NodeTypeDescription struct {
	DisplayName string           `json:"displayName"`
	Name        string           `json:"name"`
	Icon        string           `json:"icon,omitempty"`
	Group       []string         `json:"group"`
	Version     []float64        `json:"version"`
	Description string           `json:"description"`
	Defaults    NodeDefaults     `json:"defaults"`
	Codex       *Codex           `json:"codex,omitempty"`
	Inputs      []ConnectionType `json:"inputs"`
	Outputs     []ConnectionType `json:"outputs"`
	OutputNames []string         `json:"outputNames,omitempty"`
	Properties  []*NodeProperty  `json:"properties"`
}

// Property returns the top level property by name, or nil.
func (d *NodeTypeDescription) Property(name string) *NodeProperty {
	for _, p := range d.Properties {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// Default returns the declared default of a top level property,
// or of a collection option when no top level property has the name.
// Options can be addressed as collection.option as well.
func (d *NodeTypeDescription) Default(name string) (any, bool) {
	if parent, option, ok := strings.Cut(name, "."); ok {
		if p := d.Property(parent); p != nil {
			if o := p.Option(option); o != nil {
				return o.Default, true
			}
		}
		return nil, false
	}
	if p := d.Property(name); p != nil {
		return p.Default, true
	}
	for _, p := range d.Properties {
		if p.Type != PropertyCollection {
			continue
		}
		if o := p.Option(name); o != nil {
			return o.Default, true
		}
	}
	return nil, false
}

// HasVersion returns true if the node type supports the version.
func (d *NodeTypeDescription) HasVersion(v float64) bool {
	return slices.Contains(d.Version, v)
}

// LatestVersion returns the highest declared version.
func (d *NodeTypeDescription) LatestVersion() float64 {
	if len(d.Version) == 0 {
		return 0
	}
	return slices.Max(d.Version)
}
