package transform

import (
	"context"
	"errors"
	"time"

	"github.com/transflow/transflow-go/contracts"
	"github.com/transflow/transflow-go/metrics"
	"github.com/transflow/transflow-go/phases"
)

// Pipeline runs one state transition end to end: configuration validation,
// container provisioning, the Before, During, and After phases, and
// response provisioning. Any failure at any stage routes once through the
// configured error handler, whose result becomes the pipeline's result.
type Pipeline struct {
	cfg       *Configuration
	before    *phases.Before
	during    *phases.During
	after     *phases.After
	collector metrics.Collector
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithCollector sets the metrics collector.
func WithCollector(c metrics.Collector) PipelineOption {
	return func(p *Pipeline) {
		p.collector = c
	}
}

// NewPipeline builds the three phases from the configuration.
func NewPipeline(cfg *Configuration, options ...PipelineOption) *Pipeline {
	p := &Pipeline{
		cfg:       cfg,
		before:    phases.NewBefore(cfg.beforeGuard, cfg.beforeAction, cfg.logger),
		during:    phases.NewDuring(cfg.duringAction),
		after:     phases.NewAfter(cfg.afterAction, cfg.afterGuard, cfg.postCommit, cfg.transactions, cfg.logger),
		collector: metrics.NoOpCollector{},
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// Transform runs the pipeline for the request.
func (p *Pipeline) Transform(ctx context.Context, req contracts.Request) (any, error) {
	start := time.Now()

	response, err := p.run(ctx, req)
	if err != nil {
		p.cfg.logger.Debug("transformation failed, routing to error handler",
			"requestType", req.RequestType(),
			"error", err,
		)
		response, err = p.cfg.errorHandler.OnError(ctx, req, err)
	}

	p.collector.RecordTransformation(req.RequestType(), time.Since(start), err == nil, errorKind(err))
	if err != nil {
		p.cfg.logger.Error("transformation failed",
			"requestType", req.RequestType(),
			"duration", time.Since(start),
			"error", err,
		)
		return nil, err
	}
	p.cfg.logger.Debug("transformation completed",
		"requestType", req.RequestType(),
		"duration", time.Since(start),
	)
	return response, nil
}

func (p *Pipeline) run(ctx context.Context, req contracts.Request) (any, error) {
	if err := p.cfg.Validate(); err != nil {
		return nil, err
	}

	c, err := p.cfg.containerProvider.ProvideContainer(ctx, req, p.cfg.source, p.cfg.target)
	if errors.Is(err, contracts.ErrNoResult) {
		err = contracts.NewConfigurationError("no provider produced a container for request %s", req.RequestType())
	}
	if err != nil {
		return nil, err
	}

	if c, err = p.before.Transform(ctx, c); err != nil {
		return nil, err
	}
	if c, err = p.during.Transform(ctx, c); err != nil {
		return nil, err
	}
	if c, err = p.after.Transform(ctx, c); err != nil {
		return nil, err
	}

	response, err := p.cfg.responseProvider.ProvideResponse(ctx, req, c)
	if errors.Is(err, contracts.ErrNoResult) {
		// An absent response is a valid no-op outcome.
		return nil, nil
	}
	return response, err
}

func errorKind(err error) string {
	if err == nil {
		return ""
	}
	var cfgErr *contracts.ConfigurationError
	var guardErr *contracts.GuardValidationError
	var dispatchErr *contracts.DispatchError
	switch {
	case errors.As(err, &cfgErr):
		return "configuration"
	case errors.As(err, &guardErr):
		return "guard_validation"
	case errors.As(err, &dispatchErr):
		return string(dispatchErr.Kind)
	default:
		return "behavior"
	}
}
