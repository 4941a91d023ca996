package behaviors

import (
	"context"
	"sync"

	"github.com/transflow/transflow-go/contracts"
)

// CompositeAction executes actions as a sequential fold: the container flows
// through the list in order, each action receiving the previous action's
// output. The first error aborts the chain.
//
// Appending is safe while a fold is in flight; each execution iterates over
// a snapshot of the list taken when it starts.
type CompositeAction struct {
	mu      sync.RWMutex
	actions []Action
}

// NewCompositeAction creates a composite seeded with the given actions.
func NewCompositeAction(actions ...Action) *CompositeAction {
	c := &CompositeAction{}
	c.actions = append(c.actions, actions...)
	return c
}

// AddAction appends an action to the composite.
func (a *CompositeAction) AddAction(action Action) *CompositeAction {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.actions = append(a.actions, action)
	return a
}

// Len returns the number of aggregated actions.
func (a *CompositeAction) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.actions)
}

func (a *CompositeAction) snapshot() []Action {
	a.mu.RLock()
	defer a.mu.RUnlock()
	actions := make([]Action, len(a.actions))
	copy(actions, a.actions)
	return actions
}

// Execute implements Action. An empty composite is an identity passthrough.
func (a *CompositeAction) Execute(ctx context.Context, c contracts.Container) (contracts.Container, error) {
	for _, action := range a.snapshot() {
		next, err := action.Execute(ctx, c)
		if err != nil {
			return nil, err
		}
		c = next
	}
	return c, nil
}

// AndThenAction composes two actions into sequential execution order. If a
// is already a CompositeAction, b is appended to it and the same composite
// is returned; otherwise a new composite seeded with [a, b] is created. The
// operator is associative in effective ordering.
func AndThenAction(a, b Action) Action {
	if composite, ok := a.(*CompositeAction); ok {
		return composite.AddAction(b)
	}
	return NewCompositeAction(a, b)
}
