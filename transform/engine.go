package transform

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/transflow/transflow-go/config"
	"github.com/transflow/transflow-go/contracts"
	"github.com/transflow/transflow-go/metrics"
	"github.com/transflow/transflow-go/registry"
)

// Engine is the entry point embedders talk to: it owns the transformer
// registry and resolves each request to a transformer by identifier before
// delegating.
type Engine struct {
	registry         *registry.TransformerRegistry
	collector        metrics.Collector
	logger           *slog.Logger
	defaultErrorCode string
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	logger           *slog.Logger
	logLevel         *slog.Level
	collector        metrics.Collector
	defaultErrorCode string
	registryOptions  []registry.RegistryOption
}

// WithEngineLogger sets the logger. An explicit logger wins over the log
// level of WithEngineConfig.
func WithEngineLogger(logger *slog.Logger) EngineOption {
	return func(o *engineOptions) {
		o.logger = logger
	}
}

// WithEngineCollector sets the metrics collector.
func WithEngineCollector(c metrics.Collector) EngineOption {
	return func(o *engineOptions) {
		o.collector = c
	}
}

// WithEngineConfig applies a declarative engine configuration: strictness
// and precedence overrides feed the transformer registry, the default error
// code replaces the built-in code on codeless guard denials, and the log
// level shapes the engine's logger unless WithEngineLogger supplies one.
func WithEngineConfig(cfg config.EngineConfig) EngineOption {
	return func(o *engineOptions) {
		o.defaultErrorCode = cfg.DefaultErrorCode
		if level, err := cfg.SlogLevel(); err == nil {
			o.logLevel = &level
		}
		o.registryOptions = append(o.registryOptions,
			registry.WithStrictRegistration(cfg.StrictRegistration),
			registry.WithPrecedenceOverrides(cfg.PrecedenceOverrides),
		)
	}
}

// NewEngine creates an engine with an empty transformer registry.
func NewEngine(options ...EngineOption) *Engine {
	opts := engineOptions{
		collector: metrics.NoOpCollector{},
	}
	for _, opt := range options {
		opt(&opts)
	}
	if opts.logger == nil {
		if opts.logLevel != nil {
			opts.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: *opts.logLevel}))
		} else {
			opts.logger = slog.Default()
		}
	}
	registryOptions := append([]registry.RegistryOption{registry.WithRegistryLogger(opts.logger)}, opts.registryOptions...)
	return &Engine{
		registry:         registry.NewTransformerRegistry(registryOptions...),
		collector:        opts.collector,
		logger:           opts.logger,
		defaultErrorCode: opts.defaultErrorCode,
	}
}

// Registry returns the engine's transformer registry.
func (e *Engine) Registry() *registry.TransformerRegistry {
	return e.registry
}

// Initialize scans the component registry and indexes every
// transformer-tagged component. Safe to trigger more than once; only the
// first call registers.
func (e *Engine) Initialize(components registry.ComponentRegistry) error {
	return e.registry.Initialize(components)
}

// Transform resolves a transformer for the identifier and runs it against
// the request. The identifier gains the originating request and a fresh
// attempt id as metadata before capability checks run.
func (e *Engine) Transform(ctx context.Context, req contracts.Request, id *registry.TransformerIdentifier) (any, error) {
	ctx = contracts.WithDefaultDenialCode(ctx, e.defaultErrorCode)
	attempt := id.
		WithMetadata(registry.MetadataRequest, req).
		WithMetadata(registry.MetadataAttemptID, uuid.New().String())

	transformer, err := e.registry.Resolve(ctx, attempt)
	e.collector.RecordDispatch(id.Key(), len(e.registry.Candidates(id)), err == nil)
	if err != nil {
		e.logger.Error("transformer dispatch failed",
			"identifier", id.Key(),
			"requestType", req.RequestType(),
			"error", err,
		)
		return nil, err
	}

	start := time.Now()
	response, err := transformer.Transform(ctx, req)
	if err != nil {
		e.logger.Error("transformer failed",
			"transformer", transformer.Name(),
			"identifier", id.Key(),
			"duration", time.Since(start),
			"error", err,
		)
		return nil, err
	}
	e.logger.Debug("transformer completed",
		"transformer", transformer.Name(),
		"identifier", id.Key(),
		"duration", time.Since(start),
	)
	return response, nil
}
