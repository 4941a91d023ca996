package behaviors

import (
	"context"

	"github.com/transflow/transflow-go/contracts"
)

// Action is a side-effecting transformation step mapping a container to a
// (possibly new) container. Actions must not assume prior pipeline state;
// a returned error aborts the chain.
type Action interface {
	Execute(ctx context.Context, c contracts.Container) (contracts.Container, error)
}

// ActionFunc is a function adapter for Action.
type ActionFunc func(ctx context.Context, c contracts.Container) (contracts.Container, error)

// Execute implements Action.
func (f ActionFunc) Execute(ctx context.Context, c contracts.Container) (contracts.Container, error) {
	return f(ctx, c)
}

// Guard gates a transformation with a structured decision. Guard instances
// may be shared across concurrent transformations and must not store
// decision-time data on themselves.
type Guard interface {
	// ExecuteDecision evaluates the guard against the container.
	ExecuteDecision(ctx context.Context, c contracts.Container) (contracts.GuardDecision, error)

	// Name identifies the guard in validation errors and logs.
	Name() string
}

// GuardFunc is a named function-based Guard.
type GuardFunc struct {
	name string
	fn   func(ctx context.Context, c contracts.Container) (contracts.GuardDecision, error)
}

// NewGuardFunc creates a function-based guard.
func NewGuardFunc(name string, fn func(ctx context.Context, c contracts.Container) (contracts.GuardDecision, error)) *GuardFunc {
	return &GuardFunc{name: name, fn: fn}
}

// ExecuteDecision implements Guard.
func (g *GuardFunc) ExecuteDecision(ctx context.Context, c contracts.Container) (contracts.GuardDecision, error) {
	return g.fn(ctx, c)
}

// Name implements Guard.
func (g *GuardFunc) Name() string {
	return g.name
}

// GuardFromPredicate adapts a legacy boolean predicate into a decision
// guard: true maps to Allow, false to Deny with the given error code.
//
// Deprecated for new code: implement Guard directly so denials can carry a
// per-decision code and cause.
func GuardFromPredicate(name string, errorCode string, predicate func(ctx context.Context, c contracts.Container) (bool, error)) Guard {
	return NewGuardFunc(name, func(ctx context.Context, c contracts.Container) (contracts.GuardDecision, error) {
		allowed, err := predicate(ctx, c)
		if err != nil {
			return contracts.GuardDecision{}, err
		}
		return contracts.DecisionFromBool(allowed, errorCode, nil), nil
	})
}

// GuardValidator is implemented by guards that define their own validation
// law, such as composites that validate each member in order.
type GuardValidator interface {
	Validate(ctx context.Context, c contracts.Container) error
}

// Validate runs the guard and turns Allow into success and Deny into a
// GuardValidationError carrying the guard's name, the denial code, the
// container's source and target states, and the optional cause. Denials
// without an explicit code take the code configured on the context via
// contracts.WithDefaultDenialCode. Guards implementing GuardValidator
// validate through their own law instead.
func Validate(ctx context.Context, g Guard, c contracts.Container) error {
	if v, ok := g.(GuardValidator); ok {
		return v.Validate(ctx, c)
	}
	decision, err := g.ExecuteDecision(ctx, c)
	if err != nil {
		return err
	}
	if decision.Allowed() {
		return nil
	}
	errorCode := decision.ErrorCode()
	if errorCode == contracts.DefaultGuardErrorCode {
		errorCode = contracts.DefaultDenialCode(ctx)
	}
	return &contracts.GuardValidationError{
		Guard:     g.Name(),
		ErrorCode: errorCode,
		Source:    c.Source(),
		Target:    c.Target(),
		Cause:     decision.Cause(),
	}
}

// ErrorHandler recovers from a pipeline error with a fallback response, or
// re-signals the same or another error.
type ErrorHandler interface {
	OnError(ctx context.Context, req contracts.Request, err error) (any, error)
}

// ErrorHandlerFunc is a function adapter for ErrorHandler.
type ErrorHandlerFunc func(ctx context.Context, req contracts.Request, err error) (any, error)

// OnError implements ErrorHandler.
func (f ErrorHandlerFunc) OnError(ctx context.Context, req contracts.Request, err error) (any, error) {
	return f(ctx, req, err)
}

// Choice is a pure predicate over a container. It may be evaluated many
// times per transformation and must not mutate the container.
type Choice interface {
	IsChosen(ctx context.Context, c contracts.Container) (bool, error)
}

// ChoiceFunc is a function adapter for Choice.
type ChoiceFunc func(ctx context.Context, c contracts.Container) (bool, error)

// IsChosen implements Choice.
func (f ChoiceFunc) IsChosen(ctx context.Context, c contracts.Container) (bool, error) {
	return f(ctx, c)
}

// ContainerProvider creates the container a transformation works on.
// Returning contracts.ErrNoResult signals "try the next provider" in a
// composite; any other error aborts the transformation.
type ContainerProvider interface {
	ProvideContainer(ctx context.Context, req contracts.Request, source, target *contracts.State) (contracts.Container, error)
}

// ContainerProviderFunc is a function adapter for ContainerProvider.
type ContainerProviderFunc func(ctx context.Context, req contracts.Request, source, target *contracts.State) (contracts.Container, error)

// ProvideContainer implements ContainerProvider.
func (f ContainerProviderFunc) ProvideContainer(ctx context.Context, req contracts.Request, source, target *contracts.State) (contracts.Container, error) {
	return f(ctx, req, source, target)
}

// ResponseProvider derives the pipeline response from the final container.
// Returning contracts.ErrNoResult signals an empty response, which is a
// valid no-op outcome.
type ResponseProvider interface {
	ProvideResponse(ctx context.Context, req contracts.Request, c contracts.Container) (any, error)
}

// ResponseProviderFunc is a function adapter for ResponseProvider.
type ResponseProviderFunc func(ctx context.Context, req contracts.Request, c contracts.Container) (any, error)

// ProvideResponse implements ResponseProvider.
func (f ResponseProviderFunc) ProvideResponse(ctx context.Context, req contracts.Request, c contracts.Container) (any, error) {
	return f(ctx, req, c)
}
