// Package component defines the contract a capability exposes to the
// registry: a name, a description and JSON-schema shapes for its input
// and output. Execution stays on the concrete component types, which
// each expose a typed Run entry point performing one provider round
// trip.
package component

// Spec describes one component for discovery purposes. Specs are
// immutable and defined at process start; Name must be unique across
// the whole registry.
type Spec struct {
	Name         string                 `json:"name"`
	Description  string                 `json:"description"`
	InputSchema  map[string]interface{} `json:"input_schema"`
	OutputSchema map[string]interface{} `json:"output_schema"`
}

// Component is anything that can advertise itself to the registry.
type Component interface {
	Spec() Spec
}
