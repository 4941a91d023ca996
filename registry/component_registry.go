package registry

import "sync"

// TransformerTag marks components that participate in transformer
// dispatch. The startup scan collects every component carrying this tag.
const TransformerTag = "transflow.transformer"

// ComponentRegistry is the external component collaborator: an explicit
// registration table queried by tag. Behavior factories and the
// transformer registry's startup scan both resolve components through it.
type ComponentRegistry interface {
	// ComponentsByTag returns all components registered under tag, in
	// registration order.
	ComponentsByTag(tag string) []any
}

// StaticComponentRegistry is a ComponentRegistry backed by an in-memory
// table. Components are registered explicitly, typically during
// application wiring, and read thereafter.
type StaticComponentRegistry struct {
	mu         sync.RWMutex
	components map[string][]any
}

// NewComponentRegistry creates an empty component registry.
func NewComponentRegistry() *StaticComponentRegistry {
	return &StaticComponentRegistry{components: make(map[string][]any)}
}

// Add registers components under tag and returns the registry for
// chaining.
func (r *StaticComponentRegistry) Add(tag string, components ...any) *StaticComponentRegistry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.components[tag] = append(r.components[tag], components...)
	return r
}

// AddTransformer registers transformers under TransformerTag.
func (r *StaticComponentRegistry) AddTransformer(transformers ...Transformer) *StaticComponentRegistry {
	for _, t := range transformers {
		r.Add(TransformerTag, t)
	}
	return r
}

// ComponentsByTag implements ComponentRegistry.
func (r *StaticComponentRegistry) ComponentsByTag(tag string) []any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	components := make([]any, len(r.components[tag]))
	copy(components, r.components[tag])
	return components
}
