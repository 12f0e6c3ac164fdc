package observability_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"content-analytics-service/internal/observability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogFormat(t *testing.T) {
	for in, want := range map[string]observability.LogFormat{
		"":        observability.LogFormatAuto,
		"auto":    observability.LogFormatAuto,
		"Console": observability.LogFormatConsole,
		"json":    observability.LogFormatJSON,
	} {
		got, err := observability.ParseLogFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := observability.ParseLogFormat("xml")
	assert.Error(t, err)
}

func TestParseLogLevel(t *testing.T) {
	lvl, err := observability.ParseLogLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)

	lvl, err = observability.ParseLogLevel("warning")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, lvl)

	_, err = observability.ParseLogLevel("verbose")
	assert.Error(t, err)
}

func TestNewLogger_AutoFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := observability.NewLogger(slog.LevelInfo, &buf, observability.LogFormatAuto)

	logger.Debug("hidden")
	logger.Info("visible", slog.String("entity", "tag"))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line), buf.String())
	assert.Equal(t, "visible", line["msg"])
	assert.Equal(t, "tag", line["entity"])
}

func TestNewLogger_Console(t *testing.T) {
	var buf bytes.Buffer
	logger := observability.NewLogger(slog.LevelInfo, &buf, observability.LogFormatConsole)

	logger.Info("hello", slog.String("entity", "tag"))

	assert.Contains(t, buf.String(), "hello")
	assert.Contains(t, buf.String(), "tag")
}
