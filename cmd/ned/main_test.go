package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bethropolis/med/plugins/ned"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeysMarkdown(t *testing.T) {
	md := keysMarkdown(ned.DefaultKeymap(), map[string]string{"Ctrl+T": "tally"})

	assert.True(t, strings.HasPrefix(md, "# ned key bindings\n"))
	assert.Contains(t, md, "| `u` | undo |")
	assert.Contains(t, md, "| `Ctrl+R` | redo |")
	assert.Contains(t, md, "| `i` | insert mode")
	assert.Contains(t, md, "| `Ctrl+T` | run command `tally` |")
}

func TestKeysCommandPlain(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[keys]\nincrement = \"w\"\n\n[commands]\nt = \"tally\"\n"), 0o644))

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"keys", "--config", cfgPath})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "| `w` | increment |")
	assert.NotContains(t, out.String(), "| `k` | increment |")
	assert.Contains(t, out.String(), "| `Ctrl+T` | run command `tally` |")
}

func TestKeysCommandRejectsBadConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[keys]\nundo = \"i\"\n"), 0o644))

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"keys", "--config", cfgPath})
	assert.Error(t, cmd.Execute())
}

func TestVersionCommand(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "ned (med) version dev\n", out.String())
}

func TestRenderMarkdown(t *testing.T) {
	rendered, err := renderMarkdown("# Title\n\nsome text\n", 40)
	require.NoError(t, err)
	assert.Contains(t, rendered, "Title")
}

func TestOpenLog(t *testing.T) {
	w, closeLog, err := openLog("-")
	require.NoError(t, err)
	assert.Equal(t, os.Stderr, w)
	closeLog()

	path := filepath.Join(t.TempDir(), "ned.log")
	w, closeLog, err = openLog(path)
	require.NoError(t, err)
	_, err = w.Write([]byte("hello\n"))
	require.NoError(t, err)
	closeLog()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(data))

	_, _, err = openLog(filepath.Join(t.TempDir(), "missing", "dir", "x.log"))
	assert.Error(t, err)
}
