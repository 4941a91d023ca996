package contracts

// State is a value from a closed, domain-defined state enumeration.
// Domains declare their states as typed constants:
//
//	const (
//		OrderCreated  contracts.State = "Created"
//		OrderReserved contracts.State = "Reserved"
//	)
type State string

// String returns the state value.
func (s State) String() string {
	return string(s)
}

// StateRef returns a pointer to s, for configuration fields where a nil
// state means "unset".
func StateRef(s State) *State {
	return &s
}

// StateEqual compares two nullable states. Two nil states are equal.
func StateEqual(a, b *State) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
