package behaviors

import (
	"context"

	"github.com/transflow/transflow-go/contracts"
)

// NoOpAction passes the container through unchanged.
type NoOpAction struct{}

// Execute implements Action.
func (NoOpAction) Execute(ctx context.Context, c contracts.Container) (contracts.Container, error) {
	return c, nil
}

// AllowGuard always allows.
type AllowGuard struct{}

// ExecuteDecision implements Guard.
func (AllowGuard) ExecuteDecision(ctx context.Context, c contracts.Container) (contracts.GuardDecision, error) {
	return contracts.Allow(), nil
}

// Name implements Guard.
func (AllowGuard) Name() string {
	return "AllowGuard"
}

// PropagateErrorHandler re-signals the given error unchanged.
type PropagateErrorHandler struct{}

// OnError implements ErrorHandler.
func (PropagateErrorHandler) OnError(ctx context.Context, req contracts.Request, err error) (any, error) {
	return nil, err
}

// TrueChoice always chooses.
type TrueChoice struct{}

// IsChosen implements Choice.
func (TrueChoice) IsChosen(ctx context.Context, c contracts.Container) (bool, error) {
	return true, nil
}

// EmptyResponseProvider yields no response. An absent response is a valid
// no-op outcome, unlike an absent container.
type EmptyResponseProvider struct{}

// ProvideResponse implements ResponseProvider.
func (EmptyResponseProvider) ProvideResponse(ctx context.Context, req contracts.Request, c contracts.Container) (any, error) {
	return nil, contracts.ErrNoResult
}

// UnconfiguredContainerProvider always fails. A transformation with no way
// to obtain a container can never meaningfully proceed, so the default for
// a missing container provider is an error rather than an empty result.
type UnconfiguredContainerProvider struct{}

// ProvideContainer implements ContainerProvider.
func (UnconfiguredContainerProvider) ProvideContainer(ctx context.Context, req contracts.Request, source, target *contracts.State) (contracts.Container, error) {
	return nil, contracts.NewConfigurationError("no container provider configured")
}
