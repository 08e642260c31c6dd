package locator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/junioryono/locator"
	"github.com/junioryono/locator/internal/testutil"
)

func TestNewModule(t *testing.T) {
	t.Run("registers everything", func(t *testing.T) {
		c := testutil.NewContainer(t)
		a := testutil.NewA()

		module := locator.NewModule("test-module",
			locator.Instance(locator.TypeNameOf[*testutil.A](), a, locator.Global),
			locator.Type(testutil.NewB),
			locator.Type(testutil.NewC, locator.WithDefault(1, 9)),
			locator.Singleton("greeter", func() any { return &testutil.Greeter{} }),
			locator.RequestProducer("request", func() any { return testutil.NewA() }),
			locator.Provide("alias", locator.TypeNameOf[*testutil.C](), locator.Prototype),
			locator.ConfigValue("app.name", "demo", locator.Global),
		)

		require.NoError(t, c.Install(module))

		cc, err := locator.Get[*testutil.C](c, "alias")
		require.NoError(t, err)
		assert.Same(t, a, cc.B.A)
		assert.Equal(t, 9, cc.Limit)

		first := locator.MustGet[*testutil.Greeter](c, "greeter")
		assert.Same(t, first, locator.MustGet[*testutil.Greeter](c, "greeter"))

		assert.True(t, c.Has("request"))
		c.ResetRequestScope()
		assert.False(t, c.Has("request"))

		assert.Equal(t, "demo", c.GetConfig("app.name", nil))
	})

	t.Run("empty module", func(t *testing.T) {
		c := testutil.NewContainer(t)

		require.NoError(t, c.Install(locator.NewModule("empty-module")))
		assert.Empty(t, c.DefinedTypes())
	})

	t.Run("module with nil builders", func(t *testing.T) {
		c := testutil.NewContainer(t)

		module := locator.NewModule("module-with-nils",
			locator.Type(testutil.NewA),
			nil, // Should be skipped
			locator.Type(testutil.NewB),
		)

		require.NoError(t, c.Install(module, nil))
		assert.Len(t, c.DefinedTypes(), 2)
	})
}

func TestModule_Composition(t *testing.T) {
	c := testutil.NewContainer(t)

	data := locator.NewModule("data", locator.Type(testutil.NewA), locator.Type(testutil.NewB))
	services := locator.NewModule("services", locator.Type(testutil.NewC, locator.WithDefault(1, 1)))
	app := locator.NewModule("app", data, services)

	require.NoError(t, c.Install(app))
	testutil.AssertResolvable[*testutil.C](t, c)
}

func TestModule_Errors(t *testing.T) {
	t.Run("wraps failure with module name", func(t *testing.T) {
		c := testutil.NewContainer(t)

		module := locator.NewModule("broken",
			locator.Type(testutil.NewA),
			locator.Provide("bad", 42, locator.Global),
			locator.Type(testutil.NewB),
		)

		err := c.Install(module)

		var me locator.ModuleError
		require.ErrorAs(t, err, &me)
		assert.Equal(t, "broken", me.Module)

		var ipe locator.InvalidProducerError
		assert.ErrorAs(t, err, &ipe)
		assert.Contains(t, err.Error(), `module "broken"`)

		assert.True(t, c.IsDefined(locator.TypeNameOf[*testutil.A]()), "earlier registrations are kept")
		assert.False(t, c.IsDefined(locator.TypeNameOf[*testutil.B]()))
	})

	t.Run("nested module names", func(t *testing.T) {
		c := testutil.NewContainer(t)
		require.NoError(t, c.RegisterConfig("app", "flat", locator.Global))

		inner := locator.NewModule("inner", locator.ConfigValue("app.name", "x", locator.Global))
		err := c.Install(locator.NewModule("outer", inner))

		var me locator.ModuleError
		require.ErrorAs(t, err, &me)
		assert.Equal(t, "outer", me.Module)
		assert.Contains(t, err.Error(), `module "inner"`)

		var kee locator.ConfigKeyExistsError
		assert.ErrorAs(t, err, &kee)
	})

	t.Run("invalid type", func(t *testing.T) {
		c := testutil.NewContainer(t)

		err := c.Install(locator.NewModule("types", locator.Type(42)))

		var tde locator.TypeDefinitionError
		assert.ErrorAs(t, err, &tde)
	})
}
