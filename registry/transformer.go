package registry

import (
	"context"
	"fmt"

	"github.com/transflow/transflow-go/contracts"
)

// Transformer is a complete pipeline implementation bound to one state and
// one request/response type pairing.
type Transformer interface {
	// Name identifies the transformer for precedence overrides, logs,
	// and diagnostics. Names should be unique within a registry.
	Name() string

	// Identifier returns the transformer's declared binding, used to
	// index it during registration.
	Identifier() *TransformerIdentifier

	// Precedence orders competing transformers; a lower value wins.
	Precedence() int

	// CanHandle reports whether the transformer can handle the request
	// attached to the identifier. When inapplicable it must return a
	// descriptive error explaining the mismatch, not a bare failure;
	// dispatch diagnostics surface this error verbatim.
	CanHandle(ctx context.Context, id *TransformerIdentifier) error

	// Transform runs the transformer's pipeline for the request.
	Transform(ctx context.Context, req contracts.Request) (any, error)
}

// SupportResult is the outcome of probing one candidate's capability
// check: supported, or unsupported with the candidate's own descriptive
// reason. Probing returns values instead of unwinding so every candidate
// can be evaluated before the request is declared unsupported.
type SupportResult struct {
	transformer Transformer
	reason      error
}

// Supported marks a candidate as able to handle the request.
func Supported(t Transformer) SupportResult {
	return SupportResult{transformer: t}
}

// Unsupported marks a candidate as unable to handle the request, carrying
// its reason.
func Unsupported(t Transformer, reason error) SupportResult {
	if reason == nil {
		reason = fmt.Errorf("transformer %s cannot handle request", t.Name())
	}
	return SupportResult{transformer: t, reason: reason}
}

// IsSupported reports whether the candidate passed its capability check.
func (r SupportResult) IsSupported() bool {
	return r.reason == nil
}

// Reason returns the capability failure, or nil when supported.
func (r SupportResult) Reason() error {
	return r.reason
}

// Transformer returns the probed candidate.
func (r SupportResult) Transformer() Transformer {
	return r.transformer
}

// probe runs a candidate's capability check, converting any error or panic
// into an Unsupported result.
func probe(ctx context.Context, t Transformer, id *TransformerIdentifier) (result SupportResult) {
	defer func() {
		if r := recover(); r != nil {
			result = Unsupported(t, fmt.Errorf("capability check panicked: %v", r))
		}
	}()
	if err := t.CanHandle(ctx, id); err != nil {
		return Unsupported(t, err)
	}
	return Supported(t)
}
