package behaviors

import (
	"context"
	"sync"

	"github.com/transflow/transflow-go/contracts"
)

// CompositeGuard evaluates guards as a short-circuiting AND: guards run in
// list order and the first denial is returned without evaluating the guards
// after it. An empty composite allows (vacuous truth).
type CompositeGuard struct {
	mu     sync.RWMutex
	guards []Guard
}

// NewCompositeGuard creates a composite seeded with the given guards.
func NewCompositeGuard(guards ...Guard) *CompositeGuard {
	c := &CompositeGuard{}
	c.guards = append(c.guards, guards...)
	return c
}

// AddGuard appends a guard to the composite.
func (g *CompositeGuard) AddGuard(guard Guard) *CompositeGuard {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.guards = append(g.guards, guard)
	return g
}

// Len returns the number of aggregated guards.
func (g *CompositeGuard) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.guards)
}

func (g *CompositeGuard) snapshot() []Guard {
	g.mu.RLock()
	defer g.mu.RUnlock()
	guards := make([]Guard, len(g.guards))
	copy(guards, g.guards)
	return guards
}

// ExecuteDecision implements Guard.
func (g *CompositeGuard) ExecuteDecision(ctx context.Context, c contracts.Container) (contracts.GuardDecision, error) {
	for _, guard := range g.snapshot() {
		decision, err := guard.ExecuteDecision(ctx, c)
		if err != nil {
			return contracts.GuardDecision{}, err
		}
		if !decision.Allowed() {
			return decision, nil
		}
	}
	return contracts.Allow(), nil
}

// Validate runs each guard's validation in order; the first failure aborts
// with that guard's own validation error.
func (g *CompositeGuard) Validate(ctx context.Context, c contracts.Container) error {
	for _, guard := range g.snapshot() {
		if err := Validate(ctx, guard, c); err != nil {
			return err
		}
	}
	return nil
}

// Name implements Guard.
func (g *CompositeGuard) Name() string {
	return "CompositeGuard"
}

// AndThenGuard composes two guards under the short-circuiting AND law. If a
// is already a CompositeGuard, b is appended to it and the same composite is
// returned; otherwise a new composite seeded with [a, b] is created.
func AndThenGuard(a, b Guard) Guard {
	if composite, ok := a.(*CompositeGuard); ok {
		return composite.AddGuard(b)
	}
	return NewCompositeGuard(a, b)
}
