package behaviors

import (
	"context"
	"sync"

	"github.com/transflow/transflow-go/contracts"
)

// CompositeErrorHandler attempts handlers as a fallback chain: the first
// handler gets the original error; if it signals an error, the next handler
// gets that error, and so on. The last handler's result, success or error,
// is the composite's final result. An empty composite propagates the error
// unchanged.
type CompositeErrorHandler struct {
	mu       sync.RWMutex
	handlers []ErrorHandler
}

// NewCompositeErrorHandler creates a composite seeded with the given handlers.
func NewCompositeErrorHandler(handlers ...ErrorHandler) *CompositeErrorHandler {
	c := &CompositeErrorHandler{}
	c.handlers = append(c.handlers, handlers...)
	return c
}

// AddErrorHandler appends a handler to the composite.
func (h *CompositeErrorHandler) AddErrorHandler(handler ErrorHandler) *CompositeErrorHandler {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handlers = append(h.handlers, handler)
	return h
}

// Len returns the number of aggregated handlers.
func (h *CompositeErrorHandler) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.handlers)
}

func (h *CompositeErrorHandler) snapshot() []ErrorHandler {
	h.mu.RLock()
	defer h.mu.RUnlock()
	handlers := make([]ErrorHandler, len(h.handlers))
	copy(handlers, h.handlers)
	return handlers
}

// OnError implements ErrorHandler.
func (h *CompositeErrorHandler) OnError(ctx context.Context, req contracts.Request, err error) (any, error) {
	var response any
	for _, handler := range h.snapshot() {
		response, err = handler.OnError(ctx, req, err)
		if err == nil {
			return response, nil
		}
	}
	return nil, err
}

// AndThenErrorHandler composes two handlers into a fallback chain.
func AndThenErrorHandler(a, b ErrorHandler) ErrorHandler {
	if composite, ok := a.(*CompositeErrorHandler); ok {
		return composite.AddErrorHandler(b)
	}
	return NewCompositeErrorHandler(a, b)
}
