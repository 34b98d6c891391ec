package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"", zapcore.InfoLevel},
		{"debug", zapcore.DebugLevel},
		{" WARN ", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseLevel("loud")
	require.Error(t, err)
}

func TestNew_ConsoleRespectsLevel(t *testing.T) {
	var buf bytes.Buffer

	l, err := New(Options{Level: "warn", Output: &buf})
	require.NoError(t, err)

	l.Infow("hidden")
	l.Warnw("shown", "batch", "dbo.Proc")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "dbo.Proc")
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer

	l, err := New(Options{Level: "info", JSON: true, Output: &buf})
	require.NoError(t, err)

	l.Infow("rendered", "format", "cobertura")

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry))
	assert.Equal(t, "rendered", entry["msg"])
	assert.Equal(t, "cobertura", entry["format"])
}

func TestInitialize_InvalidLevelKeepsLogger(t *testing.T) {
	before := Logger

	require.Error(t, Initialize(Options{Level: "nope"}))
	assert.Same(t, before, Logger)
}
