package contracts

import (
	"time"

	"github.com/google/uuid"
)

// Request is the base interface for all transformation requests. Concrete
// shapes are domain-defined; implementations must be immutable once handed
// to a pipeline.
type Request interface {
	RequestType() string
}

// Container carries transformation working state through all phases. It is
// created once per transformation by a ContainerProvider and flows through
// every behavior; implementations may be mutable or return fresh copies.
type Container interface {
	// ContainerID identifies this container instance.
	ContainerID() string

	// Source returns the state the transformation starts from, or nil.
	Source() *State

	// Target returns the state the transformation moves to, or nil.
	Target() *State
}

// BaseContainer provides a default Container implementation for embedding:
//
//	type orderContainer struct {
//		contracts.BaseContainer
//		Order *Order
//	}
type BaseContainer struct {
	ID          string
	SourceState *State
	TargetState *State
	CreatedAt   time.Time
}

// NewBaseContainer creates a container tagged with source and target states.
func NewBaseContainer(source, target *State) BaseContainer {
	return BaseContainer{
		ID:          uuid.New().String(),
		SourceState: source,
		TargetState: target,
		CreatedAt:   time.Now().UTC(),
	}
}

// ContainerID implements Container.
func (c BaseContainer) ContainerID() string {
	return c.ID
}

// Source implements Container.
func (c BaseContainer) Source() *State {
	return c.SourceState
}

// Target implements Container.
func (c BaseContainer) Target() *State {
	return c.TargetState
}
