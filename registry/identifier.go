package registry

import (
	"strings"

	"github.com/transflow/transflow-go/contracts"
)

// Metadata keys attached to identifiers during dispatch.
const (
	// MetadataRequest carries the originating request instance so
	// capability checks can inspect it.
	MetadataRequest = "transflow.request"

	// MetadataAttemptID carries a unique id for one dispatch attempt.
	MetadataAttemptID = "transflow.attemptId"
)

// TransformerIdentifier is the composite dispatch key: state, request type,
// and response type with its generic parameters. Identity, equality, and
// the lookup key are defined over those typed fields only; the metadata map
// is a satellite payload scoped to one dispatch attempt and never
// participates in identity.
type TransformerIdentifier struct {
	state              contracts.State
	requestType        string
	responseType       string
	responseTypeParams []string
	metadata           map[string]any
}

// NewTransformerIdentifier creates an identifier. responseTypeParams name
// the response type's generic parameters, in declaration order.
func NewTransformerIdentifier(state contracts.State, requestType, responseType string, responseTypeParams ...string) *TransformerIdentifier {
	return &TransformerIdentifier{
		state:              state,
		requestType:        requestType,
		responseType:       responseType,
		responseTypeParams: append([]string(nil), responseTypeParams...),
	}
}

// State returns the identifier's state.
func (id *TransformerIdentifier) State() contracts.State {
	return id.state
}

// RequestType returns the identifier's request type name.
func (id *TransformerIdentifier) RequestType() string {
	return id.requestType
}

// ResponseType returns the identifier's response type name.
func (id *TransformerIdentifier) ResponseType() string {
	return id.responseType
}

// ResponseTypeParams returns the response type's generic parameter names.
func (id *TransformerIdentifier) ResponseTypeParams() []string {
	return append([]string(nil), id.responseTypeParams...)
}

// Key returns the registry lookup key derived from the identity fields.
func (id *TransformerIdentifier) Key() string {
	parts := []string{id.state.String(), id.requestType, id.responseType}
	parts = append(parts, id.responseTypeParams...)
	return strings.Join(parts, "|")
}

// Equal reports whether the identity fields match. Metadata is excluded.
func (id *TransformerIdentifier) Equal(other *TransformerIdentifier) bool {
	if other == nil {
		return false
	}
	return id.Key() == other.Key()
}

// WithMetadata returns a copy of the identifier carrying the extra metadata
// entry. The receiver is not mutated.
func (id *TransformerIdentifier) WithMetadata(key string, value any) *TransformerIdentifier {
	clone := &TransformerIdentifier{
		state:              id.state,
		requestType:        id.requestType,
		responseType:       id.responseType,
		responseTypeParams: id.responseTypeParams,
		metadata:           make(map[string]any, len(id.metadata)+1),
	}
	for k, v := range id.metadata {
		clone.metadata[k] = v
	}
	clone.metadata[key] = value
	return clone
}

// Metadata returns the metadata value for key.
func (id *TransformerIdentifier) Metadata(key string) (any, bool) {
	v, ok := id.metadata[key]
	return v, ok
}

// Request returns the originating request attached during dispatch, or nil.
func (id *TransformerIdentifier) Request() contracts.Request {
	v, ok := id.metadata[MetadataRequest]
	if !ok {
		return nil
	}
	req, _ := v.(contracts.Request)
	return req
}

// String returns the lookup key.
func (id *TransformerIdentifier) String() string {
	return id.Key()
}
