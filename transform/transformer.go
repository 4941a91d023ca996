package transform

import (
	"context"
	"fmt"

	"github.com/transflow/transflow-go/contracts"
	"github.com/transflow/transflow-go/metrics"
	"github.com/transflow/transflow-go/registry"
)

// ConfigureFunc is the caller-supplied configuration hook: given the
// request, it builds the state-machine configuration the pipeline runs
// with.
type ConfigureFunc func(ctx context.Context, req contracts.Request) (*Configuration, error)

// CanHandleFunc is a capability check. It must return a descriptive error
// when the transformer cannot handle the request attached to the
// identifier.
type CanHandleFunc func(ctx context.Context, id *registry.TransformerIdentifier) error

// PipelineTransformer adapts a configuration hook into a registrable
// transformer: on each request it builds the configuration, assembles a
// pipeline, and runs it. It is the standard way to implement
// registry.Transformer.
type PipelineTransformer struct {
	name       string
	identifier *registry.TransformerIdentifier
	precedence int
	configure  ConfigureFunc
	canHandle  CanHandleFunc
	collector  metrics.Collector
}

// TransformerOption configures a PipelineTransformer.
type TransformerOption func(*PipelineTransformer)

// WithPrecedence sets the transformer's precedence; a lower value wins
// selection among competing candidates.
func WithPrecedence(precedence int) TransformerOption {
	return func(t *PipelineTransformer) {
		t.precedence = precedence
	}
}

// WithCanHandle sets the capability check. The default accepts any request
// whose type matches the identifier's request type.
func WithCanHandle(fn CanHandleFunc) TransformerOption {
	return func(t *PipelineTransformer) {
		t.canHandle = fn
	}
}

// WithTransformerCollector sets the metrics collector passed to pipelines.
func WithTransformerCollector(c metrics.Collector) TransformerOption {
	return func(t *PipelineTransformer) {
		t.collector = c
	}
}

// NewPipelineTransformer creates a transformer bound to the identifier.
func NewPipelineTransformer(name string, id *registry.TransformerIdentifier, configure ConfigureFunc, options ...TransformerOption) (*PipelineTransformer, error) {
	if name == "" {
		return nil, fmt.Errorf("transformer name cannot be empty")
	}
	if id == nil {
		return nil, fmt.Errorf("transformer identifier cannot be nil")
	}
	if configure == nil {
		return nil, fmt.Errorf("configure hook cannot be nil")
	}
	t := &PipelineTransformer{
		name:       name,
		identifier: id,
		configure:  configure,
		collector:  metrics.NoOpCollector{},
	}
	for _, opt := range options {
		opt(t)
	}
	return t, nil
}

// Name implements registry.Transformer.
func (t *PipelineTransformer) Name() string {
	return t.name
}

// Identifier implements registry.Transformer.
func (t *PipelineTransformer) Identifier() *registry.TransformerIdentifier {
	return t.identifier
}

// Precedence implements registry.Transformer.
func (t *PipelineTransformer) Precedence() int {
	return t.precedence
}

// CanHandle implements registry.Transformer. Without a configured check it
// accepts requests whose type matches the declared identifier and rejects
// everything else with a descriptive error.
func (t *PipelineTransformer) CanHandle(ctx context.Context, id *registry.TransformerIdentifier) error {
	if t.canHandle != nil {
		return t.canHandle(ctx, id)
	}
	req := id.Request()
	if req == nil {
		return fmt.Errorf("transformer %s: no request attached to identifier %s", t.name, id.Key())
	}
	if req.RequestType() != t.identifier.RequestType() {
		return fmt.Errorf("transformer %s: unsupported request type %s, handles %s",
			t.name, req.RequestType(), t.identifier.RequestType())
	}
	return nil
}

// Transform implements registry.Transformer: it builds the configuration
// through the hook, assembles the pipeline, and runs it.
func (t *PipelineTransformer) Transform(ctx context.Context, req contracts.Request) (any, error) {
	cfg, err := t.configure(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("transformer %s failed to build configuration: %w", t.name, err)
	}
	return NewPipeline(cfg, WithCollector(t.collector)).Transform(ctx, req)
}
