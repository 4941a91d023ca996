package behaviors

import (
	"context"

	"github.com/transflow/transflow-go/contracts"
)

// ActionChoicePoint wraps a base action with a conditional branch: the base
// runs first, the choice is evaluated against the base's output container,
// and the chosen or otherwise action runs on that same output. Unset fields
// default to identity equivalents.
//
// The builder methods return new values; previously returned choice points
// are never mutated.
type ActionChoicePoint struct {
	base      Action
	choice    Choice
	chosen    Action
	otherwise Action
}

// NewActionChoicePoint creates a choice point around base. A nil base
// defaults to the identity action.
func NewActionChoicePoint(base Action) ActionChoicePoint {
	if base == nil {
		base = NoOpAction{}
	}
	return ActionChoicePoint{
		base:      base,
		choice:    TrueChoice{},
		chosen:    NoOpAction{},
		otherwise: NoOpAction{},
	}
}

// WithChoice returns a copy with the branching condition set.
func (p ActionChoicePoint) WithChoice(choice Choice) ActionChoicePoint {
	p.choice = choice
	return p
}

// WithChosen returns a copy with the action taken when the choice holds.
func (p ActionChoicePoint) WithChosen(chosen Action) ActionChoicePoint {
	p.chosen = chosen
	return p
}

// Otherwise returns a copy with the action taken when the choice does not
// hold.
func (p ActionChoicePoint) Otherwise(otherwise Action) ActionChoicePoint {
	p.otherwise = otherwise
	return p
}

// Execute implements Action.
func (p ActionChoicePoint) Execute(ctx context.Context, c contracts.Container) (contracts.Container, error) {
	out, err := p.base.Execute(ctx, c)
	if err != nil {
		return nil, err
	}
	chosen, err := p.choice.IsChosen(ctx, out)
	if err != nil {
		return nil, err
	}
	if chosen {
		return p.chosen.Execute(ctx, out)
	}
	return p.otherwise.Execute(ctx, out)
}

// GuardChoicePoint wraps a base guard with a conditional branch. The base
// decision runs first and a denial short-circuits; otherwise the choice is
// evaluated against the original container (guards do not transform it) and
// the chosen or otherwise guard decides. When the base allows but the
// selected branch is unset, the choice point denies by default.
type GuardChoicePoint struct {
	base      Guard
	choice    Choice
	chosen    Guard
	otherwise Guard
}

// NewGuardChoicePoint creates a choice point around base. A nil base
// defaults to the always-allowing guard.
func NewGuardChoicePoint(base Guard) GuardChoicePoint {
	if base == nil {
		base = AllowGuard{}
	}
	return GuardChoicePoint{
		base:   base,
		choice: TrueChoice{},
	}
}

// WithChoice returns a copy with the branching condition set.
func (p GuardChoicePoint) WithChoice(choice Choice) GuardChoicePoint {
	p.choice = choice
	return p
}

// WithChosen returns a copy with the guard consulted when the choice holds.
func (p GuardChoicePoint) WithChosen(chosen Guard) GuardChoicePoint {
	p.chosen = chosen
	return p
}

// Otherwise returns a copy with the guard consulted when the choice does
// not hold.
func (p GuardChoicePoint) Otherwise(otherwise Guard) GuardChoicePoint {
	p.otherwise = otherwise
	return p
}

func (p GuardChoicePoint) branch(ctx context.Context, c contracts.Container) (Guard, error) {
	chosen, err := p.choice.IsChosen(ctx, c)
	if err != nil {
		return nil, err
	}
	if chosen {
		return p.chosen, nil
	}
	return p.otherwise, nil
}

// ExecuteDecision implements Guard.
func (p GuardChoicePoint) ExecuteDecision(ctx context.Context, c contracts.Container) (contracts.GuardDecision, error) {
	decision, err := p.base.ExecuteDecision(ctx, c)
	if err != nil {
		return contracts.GuardDecision{}, err
	}
	if !decision.Allowed() {
		return decision, nil
	}
	branch, err := p.branch(ctx, c)
	if err != nil {
		return contracts.GuardDecision{}, err
	}
	if branch == nil {
		return contracts.Deny(contracts.DefaultGuardErrorCode, nil), nil
	}
	return branch.ExecuteDecision(ctx, c)
}

// Validate chains the base guard's validation with the selected branch's
// validation. Unlike ExecuteDecision there is no deny-by-default: an unset
// branch validates successfully, and whichever failure occurs propagates.
func (p GuardChoicePoint) Validate(ctx context.Context, c contracts.Container) error {
	if err := Validate(ctx, p.base, c); err != nil {
		return err
	}
	branch, err := p.branch(ctx, c)
	if err != nil {
		return err
	}
	if branch == nil {
		return nil
	}
	return Validate(ctx, branch, c)
}

// Name implements Guard.
func (p GuardChoicePoint) Name() string {
	return "GuardChoicePoint(" + p.base.Name() + ")"
}
