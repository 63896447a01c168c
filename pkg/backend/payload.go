package backend

// Payload is the uniform provider request body:
// {model, input: {...}, parameters: {...}}.
type Payload struct {
	Model      string                 `json:"model"`
	Input      map[string]interface{} `json:"input"`
	Parameters map[string]interface{} `json:"parameters,omitempty"`
}

// Section selects which part of the payload a mapped field lands in.
type Section int

const (
	SectionInput Section = iota
	SectionParameters
)

// FieldMapping maps one uniform request field onto a provider payload
// field. Provider defaults to the uniform name; Transform, when set, is
// applied to the value before it is written.
type FieldMapping struct {
	Uniform   string
	Provider  string
	Section   Section
	Transform func(interface{}) interface{}
}

// FieldMap is a declarative payload-construction table. New capabilities
// add table entries instead of hand-assembling their provider payload.
type FieldMap []FieldMapping

// BuildPayload assembles a provider payload from uniform arguments.
// Absent, nil and empty-string arguments are skipped, so optional tuning
// fields only appear when the caller set them.
func (m FieldMap) BuildPayload(model string, args map[string]interface{}) Payload {
	p := Payload{
		Model:      model,
		Input:      make(map[string]interface{}),
		Parameters: make(map[string]interface{}),
	}
	for _, fm := range m {
		v, ok := args[fm.Uniform]
		if !ok || v == nil {
			continue
		}
		if s, isStr := v.(string); isStr && s == "" {
			continue
		}
		if fm.Transform != nil {
			v = fm.Transform(v)
		}
		name := fm.Provider
		if name == "" {
			name = fm.Uniform
		}
		if fm.Section == SectionParameters {
			p.Parameters[name] = v
		} else {
			p.Input[name] = v
		}
	}
	return p
}
