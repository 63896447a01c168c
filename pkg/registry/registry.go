// Package registry is the static capability table a hosting runtime
// queries to advertise tools: bundle name to instructions plus an
// ordered component list. It has no runtime behavior beyond
// construction-time validation and read access.
package registry

import (
	"fmt"
	"sort"

	"github.com/agentscope-ai/bricks-go/pkg/component"
)

// Bundle is one named group of operations advertised together. The
// component slice order is the advertised operation order and is
// preserved as given.
type Bundle struct {
	Instructions string
	Components   []component.Component
}

// ExportedBundle is the enumerable form consumed by a tool-discovery
// host.
type ExportedBundle struct {
	Instructions string           `json:"instructions"`
	Components   []component.Spec `json:"components"`
}

// Registry is a read-only lookup table from bundle name to Bundle.
type Registry struct {
	bundles map[string]Bundle
}

// New builds a registry and validates it: a component name appearing
// twice anywhere in the table is a configuration bug and fails
// construction.
func New(bundles map[string]Bundle) (*Registry, error) {
	seen := make(map[string]string)
	for _, name := range sortedKeys(bundles) {
		for _, c := range bundles[name].Components {
			spec := c.Spec()
			if spec.Name == "" {
				return nil, fmt.Errorf("bundle %s contains a component with an empty name", name)
			}
			if prev, ok := seen[spec.Name]; ok {
				return nil, fmt.Errorf("duplicate component name %s in bundles %s and %s", spec.Name, prev, name)
			}
			seen[spec.Name] = name
		}
	}
	return &Registry{bundles: bundles}, nil
}

// Get returns a bundle by name.
func (r *Registry) Get(name string) (Bundle, bool) {
	b, ok := r.bundles[name]
	return b, ok
}

// Names returns the bundle names in sorted order.
func (r *Registry) Names() []string {
	return sortedKeys(r.bundles)
}

// Export returns the full table in its enumerable form, component order
// preserved per bundle.
func (r *Registry) Export() map[string]ExportedBundle {
	out := make(map[string]ExportedBundle, len(r.bundles))
	for name, b := range r.bundles {
		specs := make([]component.Spec, 0, len(b.Components))
		for _, c := range b.Components {
			specs = append(specs, c.Spec())
		}
		out[name] = ExportedBundle{Instructions: b.Instructions, Components: specs}
	}
	return out
}

func sortedKeys(bundles map[string]Bundle) []string {
	keys := make([]string, 0, len(bundles))
	for k := range bundles {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
