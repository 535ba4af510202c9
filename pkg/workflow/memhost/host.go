// Package memhost provides an in-memory workflow host to run sub-nodes
// outside of the workflow engine, e.g. from the CLI or tests.
package memhost

import (
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/flownodes/pkg/workflow"
	"github.com/effective-security/x/values"
	"github.com/effective-security/xlog"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/flownodes/pkg/workflow", "memhost")

// Run is the recorded input and output of one sub-node run.
type Run struct {
	Connection workflow.ConnectionType    `json:"connection" yaml:"connection"`
	Index      int                        `json:"index" yaml:"index"`
	Input      [][]workflow.ExecutionData `json:"input,omitempty" yaml:"input,omitempty"`
	Output     [][]workflow.ExecutionData `json:"output,omitempty" yaml:"output,omitempty"`
	Err        error                      `json:"-" yaml:"-"`
}

// Event is a recorded AI event.
type Event struct {
	Name    workflow.AIEvent `json:"name" yaml:"name"`
	Payload any              `json:"payload,omitempty" yaml:"payload,omitempty"`
}

// Host implements workflow.SupplyDataFunctions in memory.
type Host struct {
	node   *workflow.Node
	desc   *workflow.NodeTypeDescription
	params map[string]any
	items  []map[string]any

	lock   sync.Mutex
	runs   []*Run
	events []Event
}

// New returns a host for the node with the given parameters and input items.
func New(node *workflow.Node, desc *workflow.NodeTypeDescription, params map[string]any, items []map[string]any) *Host {
	if params == nil {
		params = map[string]any{}
	}
	return &Host{
		node:   node,
		desc:   desc,
		params: params,
		items:  items,
	}
}

// Load returns the host and the node type described by the configuration.
func Load(reg *workflow.Registry, cfg *Config) (*Host, workflow.NodeType, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	nt, err := reg.Get(cfg.Node, cfg.Version)
	if err != nil {
		return nil, nil, err
	}
	desc := nt.Description()
	ver := cfg.Version
	if ver == 0 {
		ver = desc.LatestVersion()
	}
	node := &workflow.Node{
		Name:        values.StringsCoalesce(cfg.Name, desc.DisplayName, desc.Name),
		Type:        desc.Name,
		TypeVersion: ver,
	}
	return New(node, desc, cfg.Parameters, cfg.Items), nt, nil
}

// GetNode implements workflow.SupplyDataFunctions.
func (h *Host) GetNode() *workflow.Node {
	return h.node
}

// GetNodeParameter implements workflow.SupplyDataFunctions.
// Nested options are addressed with dot notation, e.g. options.temperature.
// A missing parameter resolves to the fallback, then to the declared default.
func (h *Host) GetNodeParameter(name string, itemIndex int, fallback any) (any, error) {
	if itemIndex < 0 || (itemIndex > 0 && itemIndex >= len(h.items)) {
		return nil, errors.Newf("item index %d out of range", itemIndex)
	}

	v, ok := lookup(h.params, name)
	if !ok {
		if fallback != nil {
			return fallback, nil
		}
		if h.desc != nil {
			if def, ok := h.desc.Default(name); ok {
				return def, nil
			}
		}
		return nil, errors.Newf("could not get parameter: %s", name)
	}

	res, err := resolve(v, h.item(itemIndex), itemIndex)
	if err != nil {
		return nil, errors.WithMessagef(err, "parameter %q", name)
	}
	return res, nil
}

func (h *Host) item(itemIndex int) map[string]any {
	if itemIndex < len(h.items) {
		return h.items[itemIndex]
	}
	return nil
}

func lookup(params map[string]any, name string) (any, bool) {
	var cur any = params
	for _, key := range strings.Split(name, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		if cur, ok = m[key]; !ok {
			return nil, false
		}
	}
	return cur, true
}

// AddInputData implements workflow.SupplyDataFunctions.
// The returned index counts the runs of the connection.
func (h *Host) AddInputData(conn workflow.ConnectionType, data [][]workflow.ExecutionData) int {
	h.lock.Lock()
	defer h.lock.Unlock()

	idx := 0
	for _, r := range h.runs {
		if r.Connection == conn {
			idx++
		}
	}
	h.runs = append(h.runs, &Run{
		Connection: conn,
		Index:      idx,
		Input:      data,
	})

	logger.KV(xlog.DEBUG,
		"status", "input",
		"node", h.node.Name,
		"connection", conn,
		"index", idx,
	)
	return idx
}

// AddOutputData implements workflow.SupplyDataFunctions.
func (h *Host) AddOutputData(conn workflow.ConnectionType, index int, data [][]workflow.ExecutionData, err error) {
	h.lock.Lock()
	defer h.lock.Unlock()

	var run *Run
	for _, r := range h.runs {
		if r.Connection == conn && r.Index == index {
			run = r
			break
		}
	}
	if run == nil {
		run = &Run{Connection: conn, Index: index}
		h.runs = append(h.runs, run)
	}
	run.Output = data
	run.Err = err

	if err != nil {
		logger.KV(xlog.ERROR,
			"status", "output",
			"node", h.node.Name,
			"connection", conn,
			"index", index,
			"err", err.Error(),
		)
		return
	}
	logger.KV(xlog.DEBUG,
		"status", "output",
		"node", h.node.Name,
		"connection", conn,
		"index", index,
	)
}

// LogAIEvent implements workflow.SupplyDataFunctions.
func (h *Host) LogAIEvent(event workflow.AIEvent, payload any) {
	h.lock.Lock()
	h.events = append(h.events, Event{Name: event, Payload: payload})
	h.lock.Unlock()

	logger.KV(xlog.DEBUG,
		"status", "ai_event",
		"node", h.node.Name,
		"event", event,
	)
}

// Runs returns the recorded runs.
func (h *Host) Runs() []Run {
	h.lock.Lock()
	defer h.lock.Unlock()
	res := make([]Run, 0, len(h.runs))
	for _, r := range h.runs {
		res = append(res, *r)
	}
	return res
}

// Events returns the recorded AI events.
func (h *Host) Events() []Event {
	h.lock.Lock()
	defer h.lock.Unlock()
	return append([]Event(nil), h.events...)
}

var _ workflow.SupplyDataFunctions = (*Host)(nil)
