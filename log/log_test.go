package log

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/lander/parameter"
)

func TestParseLevel(t *testing.T) {
	for _, name := range []string{"", "debug", "info", "warn", "error"} {
		_, err := ParseLevel(name)
		assert.NoError(t, err, name)
	}
	_, err := ParseLevel("verbose")
	assert.Error(t, err)
}

func TestNew_WritesFile(t *testing.T) {
	dir := t.TempDir()
	var tee bytes.Buffer

	l, err := New(Options{Level: "debug", Dir: dir, Tee: &tee})
	require.NoError(t, err)

	l.Debug("generation advanced", "generation", 3)
	require.NoError(t, l.Close())

	assert.Equal(t, filepath.Join(dir, parameter.LogFileName), l.LogFile)

	data, err := os.ReadFile(l.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "generation advanced")
	assert.Equal(t, string(data), tee.String())
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(Options{Level: "loud", Dir: t.TempDir()})
	assert.Error(t, err)
}

func TestNewWriter_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewWriter(&buf, "warn")
	require.NoError(t, err)

	l.Info("hidden")
	l.Warn("shown", "route", 7)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "shown", rec["msg"])
	assert.Equal(t, float64(7), rec["route"])
}

func TestWith_CarriesAttributes(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewWriter(&buf, "info")
	require.NoError(t, err)

	l.With("run", "abc").Info("reset")
	assert.Contains(t, buf.String(), `"run":"abc"`)
}

func TestNilLogger(t *testing.T) {
	var l *Logger
	assert.NotPanics(t, func() {
		l.Debug("dropped")
		l.Info("dropped")
		assert.Nil(t, l.With("k", "v"))
		assert.NoError(t, l.Close())
	})
}
