package transform

import (
	"log/slog"

	"github.com/transflow/transflow-go/behaviors"
	"github.com/transflow/transflow-go/contracts"
	"github.com/transflow/transflow-go/phases"
)

// Configuration bundles everything one state transition needs: the source
// and target states, container and response providers, the per-phase
// guards and actions, the post-commit action, and the error handler.
// Unconfigured behaviors fall back to their defaults; only the container
// provider default is an error, since a transformation with no container
// can never proceed.
type Configuration struct {
	source *contracts.State
	target *contracts.State

	containerProvider behaviors.ContainerProvider
	responseProvider  behaviors.ResponseProvider

	beforeGuard  behaviors.Guard
	beforeAction behaviors.Action
	duringAction behaviors.Action
	afterAction  behaviors.Action
	afterGuard   behaviors.Guard
	postCommit   behaviors.Action

	errorHandler behaviors.ErrorHandler
	transactions phases.TransactionAware
	logger       *slog.Logger
}

// ConfigurationOption configures a Configuration.
type ConfigurationOption func(*Configuration)

// WithContainerProvider sets the container provider.
func WithContainerProvider(p behaviors.ContainerProvider) ConfigurationOption {
	return func(c *Configuration) {
		c.containerProvider = p
	}
}

// WithResponseProvider sets the response provider.
func WithResponseProvider(p behaviors.ResponseProvider) ConfigurationOption {
	return func(c *Configuration) {
		c.responseProvider = p
	}
}

// WithBeforeGuard sets the guard validated before the before action runs.
func WithBeforeGuard(g behaviors.Guard) ConfigurationOption {
	return func(c *Configuration) {
		c.beforeGuard = g
	}
}

// WithBeforeAction sets the before-phase action.
func WithBeforeAction(a behaviors.Action) ConfigurationOption {
	return func(c *Configuration) {
		c.beforeAction = a
	}
}

// WithDuringAction sets the during-phase action.
func WithDuringAction(a behaviors.Action) ConfigurationOption {
	return func(c *Configuration) {
		c.duringAction = a
	}
}

// WithAfterAction sets the after-phase action.
func WithAfterAction(a behaviors.Action) ConfigurationOption {
	return func(c *Configuration) {
		c.afterAction = a
	}
}

// WithAfterGuard sets the guard validated against the after action's
// output.
func WithAfterGuard(g behaviors.Guard) ConfigurationOption {
	return func(c *Configuration) {
		c.afterGuard = g
	}
}

// WithPostCommitAction sets the action registered to run after the
// surrounding transaction commits.
func WithPostCommitAction(a behaviors.Action) ConfigurationOption {
	return func(c *Configuration) {
		c.postCommit = a
	}
}

// WithErrorHandler sets the error handler every pipeline failure routes
// through.
func WithErrorHandler(h behaviors.ErrorHandler) ConfigurationOption {
	return func(c *Configuration) {
		c.errorHandler = h
	}
}

// WithTransactions sets the transaction collaborator consulted for
// post-commit hook registration.
func WithTransactions(tx phases.TransactionAware) ConfigurationOption {
	return func(c *Configuration) {
		c.transactions = tx
	}
}

// WithConfigurationLogger sets the logger.
func WithConfigurationLogger(logger *slog.Logger) ConfigurationOption {
	return func(c *Configuration) {
		c.logger = logger
	}
}

// NewConfiguration creates a configuration for a transition from source to
// target, filling unset behaviors with their defaults.
func NewConfiguration(source, target *contracts.State, options ...ConfigurationOption) *Configuration {
	c := &Configuration{
		source:            source,
		target:            target,
		containerProvider: behaviors.UnconfiguredContainerProvider{},
		responseProvider:  behaviors.EmptyResponseProvider{},
		beforeGuard:       behaviors.AllowGuard{},
		beforeAction:      behaviors.NoOpAction{},
		duringAction:      behaviors.NoOpAction{},
		afterAction:       behaviors.NoOpAction{},
		afterGuard:        behaviors.AllowGuard{},
		postCommit:        behaviors.NoOpAction{},
		errorHandler:      behaviors.PropagateErrorHandler{},
		logger:            slog.Default(),
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// Source returns the configured source state.
func (c *Configuration) Source() *contracts.State {
	return c.source
}

// Target returns the configured target state.
func (c *Configuration) Target() *contracts.State {
	return c.target
}

// Validate checks the configuration before any phase executes. Equal
// source and target states are an invalid configuration.
func (c *Configuration) Validate() error {
	if contracts.StateEqual(c.source, c.target) {
		return contracts.NewConfigurationError("source and target states are equal: %s", stateLabel(c.source))
	}
	return nil
}

func stateLabel(s *contracts.State) string {
	if s == nil {
		return "<nil>"
	}
	return s.String()
}
