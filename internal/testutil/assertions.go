package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/junioryono/locator"
)

// NewContainer returns a fresh container for a test.
func NewContainer(t *testing.T, opts ...locator.Option) *locator.Container {
	t.Helper()
	c := locator.New(opts...)
	require.NotNil(t, c)
	return c
}

// DefineAll defines every fixture type with the constructors above. C gets a
// default of 123 for its scalar parameter.
func DefineAll(t *testing.T, c *locator.Container) {
	t.Helper()
	require.NoError(t, c.DefineType(NewA))
	require.NoError(t, c.DefineType(NewB))
	require.NoError(t, c.DefineType(NewC, locator.WithDefault(1, 123)))
	require.NoError(t, c.DefineType(NewD))
	require.NoError(t, locator.Define[AA](c))
	require.NoError(t, locator.Define[*AAI](c))
}

// AssertResolvable resolves T by type name and checks the result is non-nil.
func AssertResolvable[T any](t *testing.T, c *locator.Container) T {
	t.Helper()
	v, err := locator.Resolve[T](c)
	require.NoError(t, err, "failed to resolve %s", locator.TypeNameOf[T]())
	require.NotNil(t, v)
	return v
}

// AssertSame checks that both values are the same pointer.
func AssertSame(t *testing.T, expected, actual any) {
	t.Helper()
	assert.Same(t, expected, actual)
}

// AssertContainerError checks that err is a ContainerError.
func AssertContainerError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, locator.IsContainerError(err), "expected container error, got: %v", err)
}
