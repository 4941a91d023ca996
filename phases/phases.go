package phases

import (
	"context"
	"errors"
	"log/slog"

	"github.com/transflow/transflow-go/behaviors"
	"github.com/transflow/transflow-go/contracts"
)

// Before validates the before guard and then runs the before action. A
// guard denial aborts before the action executes.
type Before struct {
	guard  behaviors.Guard
	action behaviors.Action
	logger *slog.Logger
}

// NewBefore creates the Before phase. Nil guard and action default to
// always-allow and identity.
func NewBefore(guard behaviors.Guard, action behaviors.Action, logger *slog.Logger) *Before {
	if guard == nil {
		guard = behaviors.AllowGuard{}
	}
	if action == nil {
		action = behaviors.NoOpAction{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Before{guard: guard, action: action, logger: logger}
}

// Transform runs the phase against the container.
func (p *Before) Transform(ctx context.Context, c contracts.Container) (contracts.Container, error) {
	if err := behaviors.Validate(ctx, p.guard, c); err != nil {
		p.logger.Debug("before guard denied transformation",
			"containerId", c.ContainerID(),
			"error", err,
		)
		return nil, err
	}
	return p.action.Execute(ctx, c)
}

// During runs the during action. This phase has no guard stage; it is
// reserved for core domain mutation.
type During struct {
	action behaviors.Action
}

// NewDuring creates the During phase. A nil action defaults to identity.
func NewDuring(action behaviors.Action) *During {
	if action == nil {
		action = behaviors.NoOpAction{}
	}
	return &During{action: action}
}

// Transform runs the phase against the container.
func (p *During) Transform(ctx context.Context, c contracts.Container) (contracts.Container, error) {
	return p.action.Execute(ctx, c)
}

// After runs the after action, validates the after guard against the
// action's output, and registers the post-commit action with the current
// transaction. A container only reaches hook registration after surviving
// the after guard. When no transaction is active the registration step is
// skipped silently and the post-commit action never runs in this
// invocation.
type After struct {
	action     behaviors.Action
	guard      behaviors.Guard
	postCommit behaviors.Action
	tx         TransactionAware
	logger     *slog.Logger
}

// NewAfter creates the After phase. Nil guard and actions default to
// always-allow and identity; a nil TransactionAware means hook registration
// is always skipped.
func NewAfter(action behaviors.Action, guard behaviors.Guard, postCommit behaviors.Action, tx TransactionAware, logger *slog.Logger) *After {
	if action == nil {
		action = behaviors.NoOpAction{}
	}
	if guard == nil {
		guard = behaviors.AllowGuard{}
	}
	if postCommit == nil {
		postCommit = behaviors.NoOpAction{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &After{action: action, guard: guard, postCommit: postCommit, tx: tx, logger: logger}
}

// Transform runs the phase against the container.
func (p *After) Transform(ctx context.Context, c contracts.Container) (contracts.Container, error) {
	out, err := p.action.Execute(ctx, c)
	if err != nil {
		return nil, err
	}
	if err := behaviors.Validate(ctx, p.guard, out); err != nil {
		return nil, err
	}
	if err := p.registerPostCommit(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *After) registerPostCommit(ctx context.Context, c contracts.Container) error {
	if p.tx == nil {
		return nil
	}
	tx, err := p.tx.CurrentTransaction(ctx)
	if err != nil {
		// A missing transactional context is equivalent to no active
		// transaction.
		if errors.Is(err, ErrNoTransaction) {
			p.logger.Debug("no transactional context, skipping post-commit hook",
				"containerId", c.ContainerID(),
			)
			return nil
		}
		return err
	}
	if tx == nil || !tx.Active() {
		p.logger.Debug("no active transaction, skipping post-commit hook",
			"containerId", c.ContainerID(),
		)
		return nil
	}
	return tx.RegisterPostCommit(func(hookCtx context.Context) error {
		_, err := p.postCommit.Execute(hookCtx, c)
		return err
	})
}
