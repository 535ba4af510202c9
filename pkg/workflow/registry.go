package workflow

import (
	"slices"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/flownodes", "workflow")

// Registry holds the node types known to the host.
type Registry struct {
	byName map[string]NodeType
	lock   sync.RWMutex
}

// NewRegistry returns an empty registry
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]NodeType),
	}
}

// Register adds the node type under its name, for every declared version.
func (r *Registry) Register(nt NodeType) error {
	desc := nt.Description()
	if desc == nil || desc.Name == "" {
		return errors.New("node type must have a name")
	}
	if len(desc.Version) == 0 {
		return errors.Newf("node type %s: no versions declared", desc.Name)
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.byName[desc.Name]; ok {
		return errors.Newf("node type %s: already registered", desc.Name)
	}
	r.byName[desc.Name] = nt

	logger.KV(xlog.DEBUG,
		"status", "registered",
		"node", desc.Name,
		"versions", desc.Version,
	)
	return nil
}

// Get returns the node type by name and version.
// Version 0 selects any version.
func (r *Registry) Get(name string, version float64) (NodeType, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	nt, ok := r.byName[name]
	if !ok {
		return nil, errors.Newf("node type not found: %s", name)
	}
	if version != 0 && !nt.Description().HasVersion(version) {
		return nil, errors.Newf("node type %s: version %v not supported", name, version)
	}
	return nt, nil
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	r.lock.RLock()
	defer r.lock.RUnlock()

	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
