// Package contracts defines the core transformation contracts: requests,
// containers, states, guard decisions, and the error taxonomy shared by
// every other package.
//
// Everything in this package is a plain value or a small interface. Behavior
// lives in the behaviors, phases, registry, and transform packages.
package contracts
