package registry

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/transflow/transflow-go/contracts"
)

// TransformerRegistry indexes transformers by identifier key and resolves
// the best candidate for a dispatch attempt. Registration runs once,
// typically triggered by an application-ready signal; the index is
// read-only afterwards.
type TransformerRegistry struct {
	mu          sync.RWMutex
	initialized bool
	entries     map[string][]registration
	logger      *slog.Logger

	strict    bool
	overrides map[string]int
}

type registration struct {
	transformer Transformer
	precedence  int
	order       int
}

// RegistryOption configures a TransformerRegistry.
type RegistryOption func(*TransformerRegistry)

// WithRegistryLogger sets the logger.
func WithRegistryLogger(logger *slog.Logger) RegistryOption {
	return func(r *TransformerRegistry) {
		r.logger = logger
	}
}

// WithStrictRegistration controls whether a scanned component that is not
// a Transformer fails registration. Strict is the default; non-strict
// registration skips such components with a warning.
func WithStrictRegistration(strict bool) RegistryOption {
	return func(r *TransformerRegistry) {
		r.strict = strict
	}
}

// WithPrecedenceOverrides overrides declared precedence values by
// transformer name.
func WithPrecedenceOverrides(overrides map[string]int) RegistryOption {
	return func(r *TransformerRegistry) {
		r.overrides = overrides
	}
}

// NewTransformerRegistry creates an empty transformer registry.
func NewTransformerRegistry(options ...RegistryOption) *TransformerRegistry {
	r := &TransformerRegistry{
		entries: make(map[string][]registration),
		logger:  slog.Default(),
		strict:  true,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

func (r *TransformerRegistry) precedenceOf(t Transformer) int {
	if p, ok := r.overrides[t.Name()]; ok {
		return p
	}
	return t.Precedence()
}

// Initialize scans the component registry for transformer-tagged
// components and builds the index. It is idempotent and mutually
// exclusive: concurrent triggers serialize behind one lock and only the
// first performs registration. A tagged component that is not a
// Transformer is a fatal registration error under strict registration.
//
// Scan order is made deterministic before indexing: components are sorted
// by effective precedence, then by name. The order candidates end up
// registered in is therefore stable across runs, which keeps the
// first-failure dispatch diagnostic stable too.
func (r *TransformerRegistry) Initialize(components ComponentRegistry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.initialized {
		r.logger.Debug("transformer registry already initialized")
		return nil
	}

	tagged := components.ComponentsByTag(TransformerTag)
	transformers := make([]Transformer, 0, len(tagged))
	for _, component := range tagged {
		t, ok := component.(Transformer)
		if !ok {
			if r.strict {
				return fmt.Errorf("component %T is tagged %s but does not implement Transformer", component, TransformerTag)
			}
			r.logger.Warn("skipping tagged component that is not a transformer",
				"component", fmt.Sprintf("%T", component),
			)
			continue
		}
		transformers = append(transformers, t)
	}

	sort.SliceStable(transformers, func(i, j int) bool {
		pi, pj := r.precedenceOf(transformers[i]), r.precedenceOf(transformers[j])
		if pi != pj {
			return pi < pj
		}
		return transformers[i].Name() < transformers[j].Name()
	})

	for _, t := range transformers {
		if err := r.register(t); err != nil {
			return err
		}
	}

	r.initialized = true
	r.logger.Info("transformer registry initialized",
		"transformers", len(transformers),
		"identifiers", len(r.entries),
	)
	return nil
}

// Register adds a single transformer to the index. Initialize uses it for
// scanned components; embedders without a component registry may call it
// directly during wiring.
func (r *TransformerRegistry) Register(t Transformer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.register(t)
}

func (r *TransformerRegistry) register(t Transformer) error {
	if t == nil {
		return fmt.Errorf("transformer cannot be nil")
	}
	id := t.Identifier()
	if id == nil {
		return fmt.Errorf("transformer %s declares no identifier", t.Name())
	}

	key := id.Key()
	entry := registration{
		transformer: t,
		precedence:  r.precedenceOf(t),
		order:       len(r.entries[key]),
	}
	r.entries[key] = append(r.entries[key], entry)

	r.logger.Debug("registered transformer",
		"transformer", t.Name(),
		"identifier", key,
		"precedence", entry.precedence,
	)
	return nil
}

// Initialized reports whether the registration pass has completed.
func (r *TransformerRegistry) Initialized() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.initialized
}

// Len returns the number of indexed identifiers.
func (r *TransformerRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Candidates returns the transformers registered for the identifier, in
// registration order.
func (r *TransformerRegistry) Candidates(id *TransformerIdentifier) []Transformer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entries := r.entries[id.Key()]
	candidates := make([]Transformer, len(entries))
	for i, e := range entries {
		candidates[i] = e.transformer
	}
	return candidates
}

// Resolve selects the transformer handling the identifier. Every
// candidate's capability check is probed; if none succeeds, the first
// registered candidate's own failure is returned as the representative
// diagnostic. Succeeding candidates are ordered by precedence, lowest
// value first, ties broken by registration order, and the first wins.
//
// A missing or empty candidate list is a fatal dispatch error: it marks a
// configuration gap, not a soft failure.
func (r *TransformerRegistry) Resolve(ctx context.Context, id *TransformerIdentifier) (Transformer, error) {
	r.mu.RLock()
	entries := make([]registration, len(r.entries[id.Key()]))
	copy(entries, r.entries[id.Key()])
	r.mu.RUnlock()

	if len(entries) == 0 {
		return nil, &contracts.DispatchError{
			Kind:       contracts.DispatchNoTransformer,
			Identifier: id.Key(),
		}
	}

	results := make([]SupportResult, 0, len(entries))
	supported := make([]registration, 0, len(entries))
	for _, entry := range entries {
		result := probe(ctx, entry.transformer, id)
		results = append(results, result)
		if result.IsSupported() {
			supported = append(supported, entry)
		} else {
			r.logger.Debug("transformer cannot handle request",
				"transformer", entry.transformer.Name(),
				"identifier", id.Key(),
				"reason", result.Reason(),
			)
		}
	}

	if len(supported) == 0 {
		return nil, &contracts.DispatchError{
			Kind:       contracts.DispatchUnsupportedRequest,
			Identifier: id.Key(),
			Cause:      results[0].Reason(),
		}
	}

	sort.SliceStable(supported, func(i, j int) bool {
		if supported[i].precedence != supported[j].precedence {
			return supported[i].precedence < supported[j].precedence
		}
		return supported[i].order < supported[j].order
	})

	selected := supported[0].transformer
	r.logger.Debug("selected transformer",
		"transformer", selected.Name(),
		"identifier", id.Key(),
		"candidates", len(entries),
		"supported", len(supported),
	)
	return selected, nil
}
