package phases

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrNoTransaction signals that no transactional context exists. A
// TransactionAware returning this from CurrentTransaction is treated as
// "no transaction active", never as a pipeline error.
var ErrNoTransaction = errors.New("no active transaction")

// Transaction is the queryable view of the surrounding transaction exposed
// by an external transaction manager.
type Transaction interface {
	// Active reports whether the transaction is actually active.
	Active() bool

	// RegisterPostCommit registers a hook to run strictly after a
	// successful commit. Hooks never run on rollback.
	RegisterPostCommit(hook func(ctx context.Context) error) error
}

// TransactionAware resolves the current transaction for a transformation.
// Implementations typically delegate to the application's transaction
// manager.
type TransactionAware interface {
	CurrentTransaction(ctx context.Context) (Transaction, error)
}

// TransactionAwareFunc is a function adapter for TransactionAware.
type TransactionAwareFunc func(ctx context.Context) (Transaction, error)

// CurrentTransaction implements TransactionAware.
func (f TransactionAwareFunc) CurrentTransaction(ctx context.Context) (Transaction, error) {
	return f(ctx)
}

// LocalTransaction is an in-process Transaction for embedders without an
// external transaction manager, and for tests. It collects post-commit
// hooks and runs them exactly once when Commit is called; Rollback discards
// them. Commit and rollback are latched, a second call of either fails.
type LocalTransaction struct {
	mu         sync.Mutex
	hooks      []func(ctx context.Context) error
	committed  bool
	rolledBack bool
}

// NewLocalTransaction creates an active local transaction.
func NewLocalTransaction() *LocalTransaction {
	return &LocalTransaction{}
}

// Active implements Transaction. A local transaction is active until it is
// committed or rolled back.
func (t *LocalTransaction) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return !t.committed && !t.rolledBack
}

// RegisterPostCommit implements Transaction.
func (t *LocalTransaction) RegisterPostCommit(hook func(ctx context.Context) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.committed {
		return fmt.Errorf("transaction already committed")
	}
	if t.rolledBack {
		return fmt.Errorf("transaction already rolled back")
	}
	t.hooks = append(t.hooks, hook)
	return nil
}

// Commit commits the transaction and runs the registered post-commit hooks
// in registration order. The first hook failure is returned; the commit
// itself still stands.
func (t *LocalTransaction) Commit(ctx context.Context) error {
	t.mu.Lock()
	if t.committed {
		t.mu.Unlock()
		return fmt.Errorf("transaction already committed")
	}
	if t.rolledBack {
		t.mu.Unlock()
		return fmt.Errorf("transaction already rolled back")
	}
	t.committed = true
	hooks := t.hooks
	t.hooks = nil
	t.mu.Unlock()

	for _, hook := range hooks {
		if err := hook(ctx); err != nil {
			return fmt.Errorf("post-commit hook failed: %w", err)
		}
	}
	return nil
}

// Rollback rolls back the transaction, discarding all registered hooks.
func (t *LocalTransaction) Rollback() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.committed {
		return fmt.Errorf("transaction already committed")
	}
	if t.rolledBack {
		return nil
	}
	t.rolledBack = true
	t.hooks = nil
	return nil
}

// StaticTransactionAware always resolves the same transaction. A nil Tx
// resolves to ErrNoTransaction.
type StaticTransactionAware struct {
	Tx Transaction
}

// CurrentTransaction implements TransactionAware.
func (s StaticTransactionAware) CurrentTransaction(ctx context.Context) (Transaction, error) {
	if s.Tx == nil {
		return nil, ErrNoTransaction
	}
	return s.Tx, nil
}
