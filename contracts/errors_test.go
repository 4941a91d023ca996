package contracts

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors(t *testing.T) {
	t.Run("ConfigurationError formats reason", func(t *testing.T) {
		err := NewConfigurationError("source and target states are equal: %s", "Created")

		assert.Contains(t, err.Error(), "invalid transformation configuration")
		assert.Contains(t, err.Error(), "source and target states are equal: Created")
	})

	t.Run("GuardValidationError carries guard context", func(t *testing.T) {
		cause := errors.New("order already shipped")
		err := &GuardValidationError{
			Guard:     "shippableGuard",
			ErrorCode: "ALREADY_SHIPPED",
			Source:    StateRef("Created"),
			Target:    StateRef("Shipped"),
			Cause:     cause,
		}

		assert.Contains(t, err.Error(), "shippableGuard")
		assert.Contains(t, err.Error(), "ALREADY_SHIPPED")
		assert.Contains(t, err.Error(), "Created")
		assert.Contains(t, err.Error(), "Shipped")
		assert.ErrorIs(t, err, cause)
	})

	t.Run("GuardValidationError tolerates nil states", func(t *testing.T) {
		err := &GuardValidationError{Guard: "g", ErrorCode: "X"}

		assert.Contains(t, err.Error(), "<nil>")
	})

	t.Run("DispatchError reports missing transformer", func(t *testing.T) {
		err := &DispatchError{Kind: DispatchNoTransformer, Identifier: "Created|OrderRequest|OrderResponse"}

		assert.Contains(t, err.Error(), "no transformer registered")
		assert.Contains(t, err.Error(), "Created|OrderRequest|OrderResponse")
	})

	t.Run("DispatchError unwraps capability failure", func(t *testing.T) {
		cause := fmt.Errorf("unsupported request subtype")
		err := &DispatchError{Kind: DispatchUnsupportedRequest, Identifier: "k", Cause: cause}

		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "unsupported request subtype")
	})

	t.Run("ErrNoResult matches with errors.Is through wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("provider: %w", ErrNoResult)

		assert.ErrorIs(t, wrapped, ErrNoResult)
	})
}

func TestStates(t *testing.T) {
	t.Run("StateEqual compares values", func(t *testing.T) {
		assert.True(t, StateEqual(StateRef("Created"), StateRef("Created")))
		assert.False(t, StateEqual(StateRef("Created"), StateRef("Reserved")))
	})

	t.Run("StateEqual treats two nils as equal", func(t *testing.T) {
		assert.True(t, StateEqual(nil, nil))
		assert.False(t, StateEqual(nil, StateRef("Created")))
	})
}

func TestBaseContainer(t *testing.T) {
	t.Run("NewBaseContainer tags states and assigns id", func(t *testing.T) {
		source, target := StateRef("Created"), StateRef("Reserved")
		c := NewBaseContainer(source, target)

		assert.NotEmpty(t, c.ContainerID())
		assert.Equal(t, source, c.Source())
		assert.Equal(t, target, c.Target())
		assert.False(t, c.CreatedAt.IsZero())
	})
}
