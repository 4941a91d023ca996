package behaviors

import (
	"context"
	"sync"

	"github.com/transflow/transflow-go/contracts"
)

// CompositeChoice evaluates choices as a short-circuiting AND. An empty
// composite evaluates to true (vacuous truth).
type CompositeChoice struct {
	mu      sync.RWMutex
	choices []Choice
}

// NewCompositeChoice creates a composite seeded with the given choices.
func NewCompositeChoice(choices ...Choice) *CompositeChoice {
	c := &CompositeChoice{}
	c.choices = append(c.choices, choices...)
	return c
}

// AddChoice appends a choice to the composite.
func (c *CompositeChoice) AddChoice(choice Choice) *CompositeChoice {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.choices = append(c.choices, choice)
	return c
}

// Len returns the number of aggregated choices.
func (c *CompositeChoice) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.choices)
}

func (c *CompositeChoice) snapshot() []Choice {
	c.mu.RLock()
	defer c.mu.RUnlock()
	choices := make([]Choice, len(c.choices))
	copy(choices, c.choices)
	return choices
}

// IsChosen implements Choice.
func (c *CompositeChoice) IsChosen(ctx context.Context, container contracts.Container) (bool, error) {
	for _, choice := range c.snapshot() {
		chosen, err := choice.IsChosen(ctx, container)
		if err != nil {
			return false, err
		}
		if !chosen {
			return false, nil
		}
	}
	return true, nil
}

// AndThenChoice composes two choices under the short-circuiting AND law.
func AndThenChoice(a, b Choice) Choice {
	if composite, ok := a.(*CompositeChoice); ok {
		return composite.AddChoice(b)
	}
	return NewCompositeChoice(a, b)
}
