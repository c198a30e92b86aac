package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"err":     slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for name, want := range cases {
		assert.Equal(t, want, ParseLevel(name), name)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{LogLevel: "warn"}, &buf)

	Infof("quiet %d", 1)
	Warnf("loud %d", 2)

	out := buf.String()
	assert.NotContains(t, out, "quiet 1")
	assert.Contains(t, out, "loud 2")
}

func TestTagFiltering(t *testing.T) {
	t.Run("disabled tag is dropped", func(t *testing.T) {
		var buf bytes.Buffer
		Init(Config{LogLevel: "debug", DisabledTags: []string{"History"}}, &buf)

		DebugTagf("history", "recorded node %d", 3)
		DebugTagf("editor", "processed token %q", 'x')

		out := buf.String()
		assert.NotContains(t, out, "recorded node")
		assert.Contains(t, out, "processed token")
		assert.Contains(t, out, "tag=editor")
	})

	t.Run("enabled tags drop untagged records", func(t *testing.T) {
		var buf bytes.Buffer
		Init(Config{LogLevel: "debug", EnabledTags: []string{"editor"}}, &buf)

		Debugf("untagged")
		DebugTagf("editor", "tagged")

		out := buf.String()
		assert.NotContains(t, out, "untagged")
		assert.Contains(t, out, "tagged")
	})
}

func TestPackageAndFileFiltering(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{LogLevel: "debug", DisabledPackages: []string{"logger"}}, &buf)
	Infof("from the logger package")
	assert.NotContains(t, buf.String(), "from the logger package")

	buf.Reset()
	Init(Config{LogLevel: "debug", EnabledFiles: []string{"logger_test.go"}}, &buf)
	Infof("from this file")
	assert.Contains(t, buf.String(), "from this file")
	assert.Contains(t, buf.String(), "logger_test.go")
}

func TestWithAttachesAttributes(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{LogLevel: "info"}, &buf)
	With("session", "abc123")

	Infof("hello")
	assert.Contains(t, buf.String(), "session=abc123")
}
