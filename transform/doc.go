// Package transform wires the transformation pipeline end to end: a
// state-machine configuration bundles providers, guards, actions, and an
// error handler; a pipeline runs the Before, During, and After phases over
// a provided container; and an engine resolves transformers by identifier
// and delegates requests to them.
package transform
