package plugin_test

import (
	"errors"
	"testing"

	"github.com/bethropolis/med/internal/plugin"
	"github.com/bethropolis/med/internal/plugin/plugintest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	name    string
	initErr error
	log     *[]string
}

func (r *recorder) Name() string { return r.name }

func (r *recorder) Initialize(api plugin.EditorAPI) error {
	*r.log = append(*r.log, "init "+r.name)
	return r.initErr
}

func (r *recorder) Shutdown() error {
	*r.log = append(*r.log, "stop "+r.name)
	return nil
}

func TestManagerLifecycle(t *testing.T) {
	var log []string
	m := plugin.NewManager()
	require.NoError(t, m.Register(&recorder{name: "a", log: &log}))
	require.NoError(t, m.Register(&recorder{name: "broken", initErr: errors.New("boom"), log: &log}))
	require.NoError(t, m.Register(&recorder{name: "b", log: &log}))

	assert.Error(t, m.Register(&recorder{name: "a", log: &log}), "duplicate names")
	assert.Error(t, m.Register(&recorder{name: "", log: &log}), "empty name")
	assert.Equal(t, []string{"a", "broken", "b"}, m.Names())

	err := m.InitializePlugins(plugintest.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")

	m.ShutdownPlugins()
	assert.Equal(t, []string{"init a", "init broken", "init b", "stop b", "stop a"}, log)

	p, ok := m.GetPlugin("b")
	require.True(t, ok)
	assert.Equal(t, "b", p.Name())
}

func TestCommands(t *testing.T) {
	c := plugin.NewCommands()
	var got []string
	require.NoError(t, c.Register("echo", func(args []string) error {
		got = args
		return nil
	}))

	assert.Error(t, c.Register("echo", func([]string) error { return nil }))
	assert.Error(t, c.Register("two words", func([]string) error { return nil }))
	assert.Error(t, c.Register("nil", nil))

	require.NoError(t, c.Execute("  echo  a   b "))
	assert.Equal(t, []string{"a", "b"}, got)

	assert.ErrorIs(t, c.Execute("nope"), plugin.ErrUnknownCommand)
	assert.Error(t, c.Execute("   "))

	assert.True(t, c.Has("echo"))
	assert.Equal(t, []string{"echo"}, c.Names())
}
