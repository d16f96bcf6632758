// ABOUTME: Tests for the zap-backed logger wrapper.
// ABOUTME: Covers level parsing, file output and field helpers.
package logger

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harperreed/pyramid/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInvalidLevel(t *testing.T) {
	_, err := New(config.LoggerConfig{Level: "chatty", Format: "json"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestNewFormats(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		t.Run(format, func(t *testing.T) {
			l, err := New(config.LoggerConfig{Level: "warn", Format: format, Output: "stdout"})
			require.NoError(t, err)
			require.NotNil(t, l.SugaredLogger)
			assert.False(t, l.Desugar().Core().Enabled(-1), "debug should be disabled at warn level")
		})
	}
}

func TestFileOutputWithFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pyramid.log")

	l, err := New(config.LoggerConfig{Level: "info", Format: "json", Output: "file", Filename: path})
	require.NoError(t, err)

	l.WithComponent("store").WithError(errors.New("boom")).Infow("seeded catalog", "items", 8)
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	line := string(data)
	for _, want := range []string{`"component":"store"`, `"error":"boom"`, `"items":8`, "seeded catalog"} {
		assert.True(t, strings.Contains(line, want), "log line %q missing %s", line, want)
	}
}

func TestNewNop(t *testing.T) {
	l := NewNop()
	l.WithFields("k", "v").Errorw("ignored")
	assert.NoError(t, l.Close())
}
