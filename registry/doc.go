// Package registry indexes transformers by a composite identifier of
// state, request type, and response type, and selects among competing
// candidates by capability check and precedence.
package registry
