package transform

import (
	"github.com/transflow/transflow-go/behaviors"
	"github.com/transflow/transflow-go/registry"
)

// Behavior factories resolve tagged components from the external component
// registry into composites. A tag with no matching components yields an
// empty composite, which degenerates to that behavior kind's identity:
// passthrough for actions, vacuous allow for guards and choices, pure
// propagation for error handlers, and an empty result for response
// providers.

// ActionsByTag aggregates all tagged actions into a sequential composite.
func ActionsByTag(components registry.ComponentRegistry, tag string) *behaviors.CompositeAction {
	composite := behaviors.NewCompositeAction()
	for _, component := range components.ComponentsByTag(tag) {
		if action, ok := component.(behaviors.Action); ok {
			composite.AddAction(action)
		}
	}
	return composite
}

// GuardsByTag aggregates all tagged guards into a short-circuiting
// composite.
func GuardsByTag(components registry.ComponentRegistry, tag string) *behaviors.CompositeGuard {
	composite := behaviors.NewCompositeGuard()
	for _, component := range components.ComponentsByTag(tag) {
		if guard, ok := component.(behaviors.Guard); ok {
			composite.AddGuard(guard)
		}
	}
	return composite
}

// ChoicesByTag aggregates all tagged choices into a short-circuiting
// composite.
func ChoicesByTag(components registry.ComponentRegistry, tag string) *behaviors.CompositeChoice {
	composite := behaviors.NewCompositeChoice()
	for _, component := range components.ComponentsByTag(tag) {
		if choice, ok := component.(behaviors.Choice); ok {
			composite.AddChoice(choice)
		}
	}
	return composite
}

// ErrorHandlersByTag aggregates all tagged error handlers into a fallback
// chain.
func ErrorHandlersByTag(components registry.ComponentRegistry, tag string) *behaviors.CompositeErrorHandler {
	composite := behaviors.NewCompositeErrorHandler()
	for _, component := range components.ComponentsByTag(tag) {
		if handler, ok := component.(behaviors.ErrorHandler); ok {
			composite.AddErrorHandler(handler)
		}
	}
	return composite
}

// ContainerProvidersByTag aggregates all tagged container providers into a
// first-success-wins chain.
func ContainerProvidersByTag(components registry.ComponentRegistry, tag string) *behaviors.CompositeContainerProvider {
	composite := behaviors.NewCompositeContainerProvider()
	for _, component := range components.ComponentsByTag(tag) {
		if provider, ok := component.(behaviors.ContainerProvider); ok {
			composite.AddContainerProvider(provider)
		}
	}
	return composite
}

// ResponseProvidersByTag aggregates all tagged response providers into a
// first-success-wins chain.
func ResponseProvidersByTag(components registry.ComponentRegistry, tag string) *behaviors.CompositeResponseProvider {
	composite := behaviors.NewCompositeResponseProvider()
	for _, component := range components.ComponentsByTag(tag) {
		if provider, ok := component.(behaviors.ResponseProvider); ok {
			composite.AddResponseProvider(provider)
		}
	}
	return composite
}
