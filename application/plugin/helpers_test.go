package plugin_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/emerbrito/XrmUtils-PluginExtensions/application/plugin"
	"github.com/emerbrito/XrmUtils-PluginExtensions/domain/entities"
	"github.com/emerbrito/XrmUtils-PluginExtensions/xrmtest"
)

type testPlugin struct {
	reg     entities.Registration
	execute func(ctx context.Context, local *plugin.LocalPluginContext) error

	registrationCalls int
	executeCalls      int
}

func (p *testPlugin) Registration() entities.Registration {
	p.registrationCalls++
	return p.reg
}

func (p *testPlugin) Execute(ctx context.Context, local *plugin.LocalPluginContext) error {
	p.executeCalls++
	if p.execute == nil {
		return nil
	}
	return p.execute(ctx, local)
}

type testActivity struct {
	execute func(ctx context.Context, local *plugin.LocalWorkflowContext) error
	calls   int
}

func (a *testActivity) Execute(ctx context.Context, local *plugin.LocalWorkflowContext) error {
	a.calls++
	if a.execute == nil {
		return nil
	}
	return a.execute(ctx, local)
}

// newLocal builds a plugin context over an in-memory host.
func newLocal(t *testing.T, exec *entities.ExecutionContext, reg entities.Registration) (*plugin.LocalPluginContext, *xrmtest.ServiceProvider) {
	t.Helper()

	sp := xrmtest.NewServiceProvider(exec)
	internals, err := plugin.NewPluginInternals(sp, &testPlugin{reg: reg}, nil)
	require.NoError(t, err)

	local, err := plugin.NewLocalPluginContext(internals)
	require.NoError(t, err)
	return local, sp
}
