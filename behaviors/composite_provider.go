package behaviors

import (
	"context"
	"errors"
	"sync"

	"github.com/transflow/transflow-go/contracts"
)

// CompositeContainerProvider attempts providers in order, first success
// wins: a contracts.ErrNoResult from one provider falls through to the
// next; any other result, value or error, stops the chain. An empty
// composite fails with a configuration error, because a transformation
// with no way to obtain a container can never proceed.
type CompositeContainerProvider struct {
	mu        sync.RWMutex
	providers []ContainerProvider
}

// NewCompositeContainerProvider creates a composite seeded with the given
// providers.
func NewCompositeContainerProvider(providers ...ContainerProvider) *CompositeContainerProvider {
	c := &CompositeContainerProvider{}
	c.providers = append(c.providers, providers...)
	return c
}

// AddContainerProvider appends a provider to the composite.
func (p *CompositeContainerProvider) AddContainerProvider(provider ContainerProvider) *CompositeContainerProvider {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.providers = append(p.providers, provider)
	return p
}

// Len returns the number of aggregated providers.
func (p *CompositeContainerProvider) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.providers)
}

func (p *CompositeContainerProvider) snapshot() []ContainerProvider {
	p.mu.RLock()
	defer p.mu.RUnlock()
	providers := make([]ContainerProvider, len(p.providers))
	copy(providers, p.providers)
	return providers
}

// ProvideContainer implements ContainerProvider.
func (p *CompositeContainerProvider) ProvideContainer(ctx context.Context, req contracts.Request, source, target *contracts.State) (contracts.Container, error) {
	providers := p.snapshot()
	if len(providers) == 0 {
		return nil, contracts.NewConfigurationError("no container provider configured")
	}
	for _, provider := range providers {
		c, err := provider.ProvideContainer(ctx, req, source, target)
		if errors.Is(err, contracts.ErrNoResult) {
			continue
		}
		return c, err
	}
	return nil, contracts.ErrNoResult
}

// AndThenContainerProvider composes two providers into a
// first-success-wins chain.
func AndThenContainerProvider(a, b ContainerProvider) ContainerProvider {
	if composite, ok := a.(*CompositeContainerProvider); ok {
		return composite.AddContainerProvider(b)
	}
	return NewCompositeContainerProvider(a, b)
}

// CompositeResponseProvider attempts providers in order, first success
// wins, with the same fallthrough-on-empty law. An empty composite yields
// contracts.ErrNoResult; an absent response is a valid outcome.
type CompositeResponseProvider struct {
	mu        sync.RWMutex
	providers []ResponseProvider
}

// NewCompositeResponseProvider creates a composite seeded with the given
// providers.
func NewCompositeResponseProvider(providers ...ResponseProvider) *CompositeResponseProvider {
	c := &CompositeResponseProvider{}
	c.providers = append(c.providers, providers...)
	return c
}

// AddResponseProvider appends a provider to the composite.
func (p *CompositeResponseProvider) AddResponseProvider(provider ResponseProvider) *CompositeResponseProvider {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.providers = append(p.providers, provider)
	return p
}

// Len returns the number of aggregated providers.
func (p *CompositeResponseProvider) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.providers)
}

func (p *CompositeResponseProvider) snapshot() []ResponseProvider {
	p.mu.RLock()
	defer p.mu.RUnlock()
	providers := make([]ResponseProvider, len(p.providers))
	copy(providers, p.providers)
	return providers
}

// ProvideResponse implements ResponseProvider.
func (p *CompositeResponseProvider) ProvideResponse(ctx context.Context, req contracts.Request, c contracts.Container) (any, error) {
	for _, provider := range p.snapshot() {
		response, err := provider.ProvideResponse(ctx, req, c)
		if errors.Is(err, contracts.ErrNoResult) {
			continue
		}
		return response, err
	}
	return nil, contracts.ErrNoResult
}

// AndThenResponseProvider composes two providers into a first-success-wins
// chain.
func AndThenResponseProvider(a, b ResponseProvider) ResponseProvider {
	if composite, ok := a.(*CompositeResponseProvider); ok {
		return composite.AddResponseProvider(b)
	}
	return NewCompositeResponseProvider(a, b)
}
