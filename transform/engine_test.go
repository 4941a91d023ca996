package transform

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transflow/transflow-go/behaviors"
	"github.com/transflow/transflow-go/config"
	"github.com/transflow/transflow-go/contracts"
	"github.com/transflow/transflow-go/phases"
	"github.com/transflow/transflow-go/registry"
)

func TestEngine(t *testing.T) {
	req := testRequest{kind: "OrderRequest"}

	t.Run("initializes from a component registry and transforms", func(t *testing.T) {
		transformer, err := NewPipelineTransformer("orders", orderIdentifier(), orderConfiguration("reserved"))
		require.NoError(t, err)
		engine := NewEngine()
		components := registry.NewComponentRegistry().AddTransformer(transformer)

		require.NoError(t, engine.Initialize(components))
		response, err := engine.Transform(context.Background(), req, orderIdentifier())

		require.NoError(t, err)
		assert.Equal(t, "reserved", response)
	})

	t.Run("dispatch failure surfaces", func(t *testing.T) {
		engine := NewEngine()
		require.NoError(t, engine.Initialize(registry.NewComponentRegistry()))

		_, err := engine.Transform(context.Background(), req, orderIdentifier())

		var dispatchErr *contracts.DispatchError
		require.ErrorAs(t, err, &dispatchErr)
		assert.Equal(t, contracts.DispatchNoTransformer, dispatchErr.Kind)
	})

	t.Run("attaches request and attempt id before capability checks", func(t *testing.T) {
		var probed *registry.TransformerIdentifier
		transformer, err := NewPipelineTransformer("orders", orderIdentifier(), orderConfiguration(nil),
			WithCanHandle(func(ctx context.Context, id *registry.TransformerIdentifier) error {
				probed = id
				return nil
			}))
		require.NoError(t, err)
		engine := NewEngine()
		require.NoError(t, engine.Registry().Register(transformer))

		_, err = engine.Transform(context.Background(), req, orderIdentifier())
		require.NoError(t, err)

		require.NotNil(t, probed)
		assert.Equal(t, req, probed.Request())
		attempt, ok := probed.Metadata(registry.MetadataAttemptID)
		require.True(t, ok)
		assert.NotEmpty(t, attempt)
	})

	t.Run("engine config overrides precedence", func(t *testing.T) {
		low, err := NewPipelineTransformer("low", orderIdentifier(), orderConfiguration("low"), WithPrecedence(1))
		require.NoError(t, err)
		high, err := NewPipelineTransformer("high", orderIdentifier(), orderConfiguration("high"), WithPrecedence(9))
		require.NoError(t, err)

		cfg := config.DefaultConfig()
		cfg.PrecedenceOverrides = map[string]int{"high": 0}
		engine := NewEngine(WithEngineConfig(cfg))
		components := registry.NewComponentRegistry().AddTransformer(low, high)
		require.NoError(t, engine.Initialize(components))

		response, err := engine.Transform(context.Background(), req, orderIdentifier())

		require.NoError(t, err)
		assert.Equal(t, "high", response)
	})

	t.Run("engine config supplies the code for codeless guard denials", func(t *testing.T) {
		cfg, err := config.ParseConfig([]byte("defaultErrorCode: ORDER_REJECTED"))
		require.NoError(t, err)
		configure := func(ctx context.Context, request contracts.Request) (*Configuration, error) {
			return NewConfiguration(created, reserved,
				WithContainerProvider(staticContainerProvider()),
				WithBeforeGuard(behaviors.NewGuardFunc("inventory", func(ctx context.Context, c contracts.Container) (contracts.GuardDecision, error) {
					return contracts.Deny("", nil), nil
				})),
			), nil
		}
		transformer, err := NewPipelineTransformer("orders", orderIdentifier(), configure)
		require.NoError(t, err)
		engine := NewEngine(WithEngineConfig(cfg))
		require.NoError(t, engine.Registry().Register(transformer))

		_, err = engine.Transform(context.Background(), req, orderIdentifier())

		var guardErr *contracts.GuardValidationError
		require.ErrorAs(t, err, &guardErr)
		assert.Equal(t, "ORDER_REJECTED", guardErr.ErrorCode)
	})

	t.Run("explicit denial codes win over the configured default", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.DefaultErrorCode = "ORDER_REJECTED"
		configure := func(ctx context.Context, request contracts.Request) (*Configuration, error) {
			return NewConfiguration(created, reserved,
				WithContainerProvider(staticContainerProvider()),
				WithBeforeGuard(behaviors.NewGuardFunc("inventory", func(ctx context.Context, c contracts.Container) (contracts.GuardDecision, error) {
					return contracts.Deny("OUT_OF_STOCK", nil), nil
				})),
			), nil
		}
		transformer, err := NewPipelineTransformer("orders", orderIdentifier(), configure)
		require.NoError(t, err)
		engine := NewEngine(WithEngineConfig(cfg))
		require.NoError(t, engine.Registry().Register(transformer))

		_, err = engine.Transform(context.Background(), req, orderIdentifier())

		var guardErr *contracts.GuardValidationError
		require.ErrorAs(t, err, &guardErr)
		assert.Equal(t, "OUT_OF_STOCK", guardErr.ErrorCode)
	})

	t.Run("engine config log level shapes the default logger", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.LogLevel = "debug"

		engine := NewEngine(WithEngineConfig(cfg))
		assert.True(t, engine.logger.Enabled(context.Background(), slog.LevelDebug))

		cfg.LogLevel = "error"
		engine = NewEngine(WithEngineConfig(cfg))
		assert.False(t, engine.logger.Enabled(context.Background(), slog.LevelInfo))
	})

	t.Run("explicit logger wins over the configured log level", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.LogLevel = "debug"
		custom := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

		engine := NewEngine(WithEngineConfig(cfg), WithEngineLogger(custom))

		assert.Same(t, custom, engine.logger)
	})

	t.Run("end to end with transaction hook", func(t *testing.T) {
		tx := phases.NewLocalTransaction()
		var hookRuns int
		configure := func(ctx context.Context, request contracts.Request) (*Configuration, error) {
			return NewConfiguration(created, reserved,
				WithContainerProvider(staticContainerProvider()),
				WithPostCommitAction(behaviors.ActionFunc(func(ctx context.Context, c contracts.Container) (contracts.Container, error) {
					hookRuns++
					return c, nil
				})),
				WithTransactions(phases.StaticTransactionAware{Tx: tx}),
				WithResponseProvider(behaviors.ResponseProviderFunc(func(ctx context.Context, req contracts.Request, c contracts.Container) (any, error) {
					return "reserved", nil
				})),
			), nil
		}
		transformer, err := NewPipelineTransformer("orders", orderIdentifier(), configure)
		require.NoError(t, err)
		engine := NewEngine()
		require.NoError(t, engine.Registry().Register(transformer))

		response, err := engine.Transform(context.Background(), req, orderIdentifier())
		require.NoError(t, err)
		assert.Equal(t, "reserved", response)
		assert.Equal(t, 0, hookRuns)

		require.NoError(t, tx.Commit(context.Background()))

		assert.Equal(t, 1, hookRuns)
	})
}

func TestBehaviorFactories(t *testing.T) {
	t.Run("aggregates tagged behaviors into composites", func(t *testing.T) {
		components := registry.NewComponentRegistry().
			Add("orders.actions", behaviors.NoOpAction{}, behaviors.NoOpAction{}).
			Add("orders.guards", behaviors.AllowGuard{})

		actions := ActionsByTag(components, "orders.actions")
		guards := GuardsByTag(components, "orders.guards")

		assert.Equal(t, 2, actions.Len())
		assert.Equal(t, 1, guards.Len())
	})

	t.Run("unmatched tags degenerate to identity composites", func(t *testing.T) {
		components := registry.NewComponentRegistry()
		container := contracts.NewBaseContainer(created, reserved)

		actions := ActionsByTag(components, "missing")
		out, err := actions.Execute(context.Background(), container)
		require.NoError(t, err)
		assert.Equal(t, container, out)

		guards := GuardsByTag(components, "missing")
		decision, err := guards.ExecuteDecision(context.Background(), container)
		require.NoError(t, err)
		assert.True(t, decision.Allowed())

		choices := ChoicesByTag(components, "missing")
		chosen, err := choices.IsChosen(context.Background(), container)
		require.NoError(t, err)
		assert.True(t, chosen)

		_, err = ResponseProvidersByTag(components, "missing").ProvideResponse(context.Background(), testRequest{kind: "r"}, container)
		assert.ErrorIs(t, err, contracts.ErrNoResult)
	})

	t.Run("components of other kinds are filtered out", func(t *testing.T) {
		components := registry.NewComponentRegistry().
			Add("mixed", behaviors.NoOpAction{}, behaviors.AllowGuard{}, "neither")

		assert.Equal(t, 1, ActionsByTag(components, "mixed").Len())
		assert.Equal(t, 1, GuardsByTag(components, "mixed").Len())
	})
}
