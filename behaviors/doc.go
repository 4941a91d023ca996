// Package behaviors defines the composable behavior algebra of the
// transformation pipeline: actions, guards, error handlers, choices, and
// providers, together with their list-backed composites, the AndThen
// composition operators, and choice-point decorators.
//
// Every behavior is a single-method contract taking a context as its first
// argument; the context is the asynchronous boundary between behavior
// invocations, and cancellation and timeouts compose through it.
package behaviors
