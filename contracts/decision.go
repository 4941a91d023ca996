package contracts

// DefaultGuardErrorCode is attached to denials that carry no explicit code,
// including denials adapted from legacy boolean guards.
const DefaultGuardErrorCode = "GUARD_DENIED"

// GuardDecision is the outcome of a guard evaluation: Allow, or Deny with a
// structured error code and optional cause. Decisions are self-contained
// values so a shared, stateless guard instance never needs per-call mutable
// fields to carry denial context between invocations.
type GuardDecision struct {
	allowed   bool
	errorCode string
	cause     error
}

// Allow returns an allowing decision.
func Allow() GuardDecision {
	return GuardDecision{allowed: true}
}

// Deny returns a denying decision. An empty errorCode is replaced with
// DefaultGuardErrorCode; cause may be nil.
func Deny(errorCode string, cause error) GuardDecision {
	if errorCode == "" {
		errorCode = DefaultGuardErrorCode
	}
	return GuardDecision{errorCode: errorCode, cause: cause}
}

// DecisionFromBool adapts a legacy boolean guard result into a decision,
// mapping true to Allow and false to Deny with the given code.
func DecisionFromBool(allowed bool, errorCode string, cause error) GuardDecision {
	if allowed {
		return Allow()
	}
	return Deny(errorCode, cause)
}

// Allowed reports whether the guard allowed the transformation to proceed.
func (d GuardDecision) Allowed() bool {
	return d.allowed
}

// ErrorCode returns the structured denial code, or "" when allowed.
func (d GuardDecision) ErrorCode() string {
	return d.errorCode
}

// Cause returns the optional underlying cause of a denial.
func (d GuardDecision) Cause() error {
	return d.cause
}
