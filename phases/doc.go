// Package phases implements the three ordered transformation phases.
// Before validates and acts, During acts, and After acts, validates, and
// registers an after-commit hook with the surrounding transaction when one
// is active. Phases share no mutable state beyond the container they pass
// along.
package phases
