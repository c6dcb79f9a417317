package plugin_test

import (
	"bytes"
	"context"
	stderrors "errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emerbrito/XrmUtils-PluginExtensions/application/config"
	"github.com/emerbrito/XrmUtils-PluginExtensions/application/plugin"
	"github.com/emerbrito/XrmUtils-PluginExtensions/domain/entities"
	"github.com/emerbrito/XrmUtils-PluginExtensions/domain/errors"
	"github.com/emerbrito/XrmUtils-PluginExtensions/internal/testutil"
	sdklog "github.com/emerbrito/XrmUtils-PluginExtensions/log"
	"github.com/emerbrito/XrmUtils-PluginExtensions/xrmtest"
)

func accountUpdate() *entities.ExecutionContext {
	id := uuid.New()
	return xrmtest.NewContext().
		Message("Update").
		Entity("account", id).
		Stage(entities.PreOperation).
		Target(entities.NewEntity("account", id)).
		Build()
}

func TestRun_Success(t *testing.T) {
	sp := xrmtest.NewServiceProvider(accountUpdate())
	p := &testPlugin{
		reg: entities.Registration{
			Messages: []string{"Update"},
			Entities: []string{"account"},
			Stages:   []entities.PipelineStage{entities.PreOperation},
		},
		execute: func(_ context.Context, local *plugin.LocalPluginContext) error {
			target := local.TargetEntity()
			target.Set("description", "touched")
			local.Trace("updated %s", target)
			return nil
		},
	}

	require.NoError(t, plugin.Run(context.Background(), sp, p))

	assert.Equal(t, 1, p.executeCalls)
	assert.Equal(t, "touched", sp.Execution.InputParameters["Target"].(*entities.Entity).Attributes["description"])
	testutil.AssertTracedInOrder(t, sp.Tracer.Lines(),
		"Correlation Id:",
		"Instantiating local context.",
		"Entering Context",
		"Calling execute method from derived class.",
		"updated account(",
		"Execute() took",
		"Done with derived class.",
	)
}

func TestRun_RegistrationMismatch(t *testing.T) {
	sp := xrmtest.NewServiceProvider(accountUpdate())
	p := &testPlugin{reg: entities.Registration{Stages: []entities.PipelineStage{entities.PostOperation}}}

	err := plugin.Run(context.Background(), sp, p)

	unsupported := testutil.AssertInvalidExecution[*errors.UnsupportedError](t, err)
	assert.Equal(t, errors.DimensionStage, unsupported.Dimension)
	assert.Equal(t, 0, p.executeCalls)
	testutil.AssertTracedInOrder(t, sp.Tracer.Lines(),
		"Registration validation failed",
		"Error detail: validation: pipeline stage 'PreOperation' is not supported. Supported values: PostOperation [pipeline stage]",
	)
}

func TestRun_WithoutRegistrationValidation(t *testing.T) {
	sp := xrmtest.NewServiceProvider(accountUpdate())
	p := &testPlugin{reg: entities.Registration{Stages: []entities.PipelineStage{entities.PostOperation}}}

	require.NoError(t, plugin.Run(context.Background(), sp, p, plugin.WithoutRegistrationValidation()))
	assert.Equal(t, 1, p.executeCalls)
}

func TestRun_ExecuteError(t *testing.T) {
	sp := xrmtest.NewServiceProvider(accountUpdate())
	cause := stderrors.New("credit limit exceeded")
	p := &testPlugin{execute: func(context.Context, *plugin.LocalPluginContext) error { return cause }}

	err := plugin.Run(context.Background(), sp, p)

	require.ErrorIs(t, err, errors.ErrInvalidPluginExecution)
	require.ErrorIs(t, err, cause)
	testutil.AssertTracedInOrder(t, sp.Tracer.Lines(), "failed: credit limit exceeded", "Error detail: credit limit exceeded")
	for _, l := range sp.Tracer.Lines() {
		assert.NotEqual(t, "Done with derived class.", l)
	}
}

func TestRun_RecoversPanic(t *testing.T) {
	sp := xrmtest.NewServiceProvider(accountUpdate())
	p := &testPlugin{execute: func(context.Context, *plugin.LocalPluginContext) error { panic("boom") }}

	err := plugin.Run(context.Background(), sp, p)

	panicErr := testutil.AssertInvalidExecution[*errors.PanicError](t, err)
	assert.Equal(t, "boom", panicErr.Value)
	assert.NotEmpty(t, panicErr.Stack)
}

type panickingRegistrationPlugin struct {
	testPlugin
}

func (*panickingRegistrationPlugin) Registration() entities.Registration {
	panic("registration unavailable")
}

type valuePlugin struct{}

func (valuePlugin) Registration() entities.Registration {
	return entities.Registration{Messages: []string{"Update"}}
}

func (valuePlugin) Execute(context.Context, *plugin.LocalPluginContext) error {
	return nil
}

func TestRun_RecoversRegistrationPanic(t *testing.T) {
	t.Run("registration panics", func(t *testing.T) {
		sp := xrmtest.NewServiceProvider(accountUpdate())
		p := &panickingRegistrationPlugin{}

		var err error
		require.NotPanics(t, func() { err = plugin.Run(context.Background(), sp, p) })

		panicErr := testutil.AssertInvalidExecution[*errors.PanicError](t, err)
		assert.Equal(t, "registration unavailable", panicErr.Value)
		assert.Equal(t, 0, p.executeCalls)
		testutil.AssertTracedInOrder(t, sp.Tracer.Lines(), "Registration validation failed", "Error detail: panic:")
	})

	t.Run("nil pointer with value receiver", func(t *testing.T) {
		sp := xrmtest.NewServiceProvider(accountUpdate())
		var p *valuePlugin

		var err error
		require.NotPanics(t, func() { err = plugin.Run(context.Background(), sp, p) })

		testutil.AssertInvalidExecution[*errors.PanicError](t, err)
	})

	t.Run("recovery disabled", func(t *testing.T) {
		opts := config.DefaultOptions()
		opts.RecoverPanics = false

		assert.Panics(t, func() {
			_ = plugin.Run(context.Background(), xrmtest.NewServiceProvider(accountUpdate()), &panickingRegistrationPlugin{}, plugin.WithOptions(opts))
		})
	})
}

func TestRun_PanicsWhenRecoveryDisabled(t *testing.T) {
	sp := xrmtest.NewServiceProvider(accountUpdate())
	p := &testPlugin{execute: func(context.Context, *plugin.LocalPluginContext) error { panic("boom") }}

	opts := config.DefaultOptions()
	opts.RecoverPanics = false

	assert.Panics(t, func() {
		_ = plugin.Run(context.Background(), sp, p, plugin.WithOptions(opts))
	})
}

func TestRun_HostContract(t *testing.T) {
	sp := xrmtest.NewServiceProvider(accountUpdate())
	sp.Execution = nil

	err := plugin.Run(context.Background(), sp, &testPlugin{})

	hostErr := testutil.AssertInvalidExecution[*errors.HostContractError](t, err)
	assert.Equal(t, "execution context", hostErr.Service)
}

func TestRun_NilPlugin(t *testing.T) {
	err := plugin.Run(context.Background(), xrmtest.NewServiceProvider(accountUpdate()), nil)

	argErr := testutil.AssertInvalidExecution[*errors.ArgumentError](t, err)
	assert.Equal(t, "plugin", argErr.Argument)
}

func TestRun_InvalidOptions(t *testing.T) {
	opts := config.DefaultOptions()
	opts.UserFlagPrefix = strings.Repeat("x", 65)

	err := plugin.Run(context.Background(), xrmtest.NewServiceProvider(accountUpdate()), &testPlugin{}, plugin.WithOptions(opts))

	require.ErrorIs(t, err, errors.ErrInvalidPluginExecution)
	assert.Contains(t, err.Error(), "UserFlagPrefix")
}

func TestRun_UserFlagPrefix(t *testing.T) {
	user := uuid.New()
	exec := xrmtest.NewContext().User(user).Build()
	sp := xrmtest.NewServiceProvider(exec)
	sp.Store().Seed(xrmtest.SystemUser(user, plugin.AccessModeReadWrite, false))

	opts := config.DefaultOptions()
	opts.UserFlagPrefix = "xrm:"
	p := &testPlugin{execute: func(ctx context.Context, local *plugin.LocalPluginContext) error {
		_, err := local.IsSystemOrNonInteractiveUser(ctx)
		return err
	}}

	require.NoError(t, plugin.Run(context.Background(), sp, p, plugin.WithOptions(opts)))
	assert.Equal(t, false, exec.SharedVariables["xrm:"+user.String()])
}

func TestRun_SlogDecorator(t *testing.T) {
	sp := xrmtest.NewServiceProvider(accountUpdate())
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	p := &testPlugin{execute: func(_ context.Context, local *plugin.LocalPluginContext) error {
		local.Logger().Info("handled", "entity", local.PrimaryEntityName())
		return nil
	}}

	require.NoError(t, plugin.Run(context.Background(), sp, p, plugin.WithTracerDecorator(sdklog.Decorator(logger))))

	testutil.AssertTraced(t, sp.Tracer.Lines(), "INFO handled entity=account")
	assert.Contains(t, buf.String(), "Done with derived class.")
	assert.Contains(t, buf.String(), "source=trace")
}

func TestRunActivity(t *testing.T) {
	wf := xrmtest.NewContext().Message("Create").Entity("lead", uuid.New()).BuildWorkflow("Qualify")
	ac := xrmtest.NewActivityContext(wf)
	a := &testActivity{execute: func(_ context.Context, local *plugin.LocalWorkflowContext) error {
		plugin.SetSharedVariable(local, "stage", local.StageName())
		return nil
	}}

	require.NoError(t, plugin.RunActivity(context.Background(), ac, a))

	assert.Equal(t, 1, a.calls)
	assert.Equal(t, "Qualify", wf.SharedVariables["stage"])
	testutil.AssertTracedInOrder(t, ac.Tracer.Lines(),
		"Entered *plugin_test.testActivity.Execute()",
		"Instantiating local context.",
		"Calling Execute() method from derived class.",
		"Done with derived class.",
	)
}

func TestRunActivity_Errors(t *testing.T) {
	err := plugin.RunActivity(context.Background(), xrmtest.NewActivityContext(xrmtest.NewContext().BuildWorkflow("s")), nil)
	argErr := testutil.AssertInvalidExecution[*errors.ArgumentError](t, err)
	assert.Equal(t, "activity", argErr.Argument)

	ac := xrmtest.NewActivityContext(nil)
	err = plugin.RunActivity(context.Background(), ac, &testActivity{})
	hostErr := testutil.AssertInvalidExecution[*errors.HostContractError](t, err)
	assert.Equal(t, "workflow context", hostErr.Service)

	ac = xrmtest.NewActivityContext(xrmtest.NewContext().BuildWorkflow("s"))
	err = plugin.RunActivity(context.Background(), ac, &testActivity{execute: func(context.Context, *plugin.LocalWorkflowContext) error {
		panic(stderrors.New("nil map"))
	}})
	testutil.AssertInvalidExecution[*errors.PanicError](t, err)
}
