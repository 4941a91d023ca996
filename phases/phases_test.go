package phases

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transflow/transflow-go/behaviors"
	"github.com/transflow/transflow-go/contracts"
)

func testContainer() contracts.Container {
	return contracts.NewBaseContainer(contracts.StateRef("Created"), contracts.StateRef("Reserved"))
}

func denyingGuard(code string) behaviors.Guard {
	return behaviors.NewGuardFunc("denying", func(ctx context.Context, c contracts.Container) (contracts.GuardDecision, error) {
		return contracts.Deny(code, nil), nil
	})
}

func recordingAction(calls *[]string, name string) behaviors.Action {
	return behaviors.ActionFunc(func(ctx context.Context, c contracts.Container) (contracts.Container, error) {
		*calls = append(*calls, name)
		return c, nil
	})
}

func TestBefore(t *testing.T) {
	t.Run("guard denial aborts before the action runs", func(t *testing.T) {
		var calls []string
		phase := NewBefore(denyingGuard("NOT_READY"), recordingAction(&calls, "action"), nil)

		_, err := phase.Transform(context.Background(), testContainer())

		var guardErr *contracts.GuardValidationError
		require.ErrorAs(t, err, &guardErr)
		assert.Equal(t, "NOT_READY", guardErr.ErrorCode)
		assert.Empty(t, calls)
	})

	t.Run("allowing guard runs the action", func(t *testing.T) {
		var calls []string
		phase := NewBefore(behaviors.AllowGuard{}, recordingAction(&calls, "action"), nil)

		_, err := phase.Transform(context.Background(), testContainer())

		require.NoError(t, err)
		assert.Equal(t, []string{"action"}, calls)
	})

	t.Run("nil guard and action default to allow and identity", func(t *testing.T) {
		phase := NewBefore(nil, nil, nil)
		in := testContainer()

		out, err := phase.Transform(context.Background(), in)

		require.NoError(t, err)
		assert.Equal(t, in, out)
	})
}

func TestDuring(t *testing.T) {
	t.Run("runs the action without any guard stage", func(t *testing.T) {
		var calls []string
		phase := NewDuring(recordingAction(&calls, "during"))

		_, err := phase.Transform(context.Background(), testContainer())

		require.NoError(t, err)
		assert.Equal(t, []string{"during"}, calls)
	})
}

func TestAfter(t *testing.T) {
	t.Run("validates the guard against the action's output", func(t *testing.T) {
		marker := contracts.StateRef("Marked")
		action := behaviors.ActionFunc(func(ctx context.Context, c contracts.Container) (contracts.Container, error) {
			return contracts.NewBaseContainer(marker, c.Target()), nil
		})
		var seen *contracts.State
		guard := behaviors.NewGuardFunc("inspecting", func(ctx context.Context, c contracts.Container) (contracts.GuardDecision, error) {
			seen = c.Source()
			return contracts.Allow(), nil
		})
		phase := NewAfter(action, guard, nil, nil, nil)

		_, err := phase.Transform(context.Background(), testContainer())

		require.NoError(t, err)
		assert.Equal(t, marker, seen)
	})

	t.Run("guard denial aborts before hook registration", func(t *testing.T) {
		tx := NewLocalTransaction()
		var hookRuns []string
		phase := NewAfter(nil, denyingGuard("INVALID"), recordingAction(&hookRuns, "hook"), StaticTransactionAware{Tx: tx}, nil)

		_, err := phase.Transform(context.Background(), testContainer())

		var guardErr *contracts.GuardValidationError
		require.ErrorAs(t, err, &guardErr)
		require.NoError(t, tx.Commit(context.Background()))
		assert.Empty(t, hookRuns, "hook must not be registered after guard denial")
	})

	t.Run("no transaction skips hook registration silently", func(t *testing.T) {
		var hookRuns []string
		phase := NewAfter(nil, nil, recordingAction(&hookRuns, "hook"), StaticTransactionAware{}, nil)

		_, err := phase.Transform(context.Background(), testContainer())

		require.NoError(t, err)
		assert.Empty(t, hookRuns)
	})

	t.Run("nil transaction collaborator skips hook registration", func(t *testing.T) {
		var hookRuns []string
		phase := NewAfter(nil, nil, recordingAction(&hookRuns, "hook"), nil, nil)

		_, err := phase.Transform(context.Background(), testContainer())

		require.NoError(t, err)
		assert.Empty(t, hookRuns)
	})

	t.Run("hook runs once and only after commit", func(t *testing.T) {
		tx := NewLocalTransaction()
		var hookRuns []string
		phase := NewAfter(nil, nil, recordingAction(&hookRuns, "hook"), StaticTransactionAware{Tx: tx}, nil)

		_, err := phase.Transform(context.Background(), testContainer())
		require.NoError(t, err)
		assert.Empty(t, hookRuns, "hook must not run before commit")

		require.NoError(t, tx.Commit(context.Background()))

		assert.Equal(t, []string{"hook"}, hookRuns)
	})

	t.Run("hook never runs on rollback", func(t *testing.T) {
		tx := NewLocalTransaction()
		var hookRuns []string
		phase := NewAfter(nil, nil, recordingAction(&hookRuns, "hook"), StaticTransactionAware{Tx: tx}, nil)

		_, err := phase.Transform(context.Background(), testContainer())
		require.NoError(t, err)

		require.NoError(t, tx.Rollback())

		assert.Empty(t, hookRuns)
	})

	t.Run("inactive transaction skips registration", func(t *testing.T) {
		tx := NewLocalTransaction()
		require.NoError(t, tx.Rollback())
		var hookRuns []string
		phase := NewAfter(nil, nil, recordingAction(&hookRuns, "hook"), StaticTransactionAware{Tx: tx}, nil)

		_, err := phase.Transform(context.Background(), testContainer())

		require.NoError(t, err)
		assert.Empty(t, hookRuns)
	})

	t.Run("transaction query failure other than no-context propagates", func(t *testing.T) {
		boom := errors.New("tx manager unreachable")
		aware := TransactionAwareFunc(func(ctx context.Context) (Transaction, error) {
			return nil, boom
		})
		phase := NewAfter(nil, nil, nil, aware, nil)

		_, err := phase.Transform(context.Background(), testContainer())

		assert.ErrorIs(t, err, boom)
	})

	t.Run("action error aborts the phase", func(t *testing.T) {
		boom := errors.New("boom")
		action := behaviors.ActionFunc(func(ctx context.Context, c contracts.Container) (contracts.Container, error) {
			return nil, boom
		})
		phase := NewAfter(action, nil, nil, nil, nil)

		_, err := phase.Transform(context.Background(), testContainer())

		assert.ErrorIs(t, err, boom)
	})
}
