package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONLoggerWritesServiceField(t *testing.T) {
	var buf bytes.Buffer
	InitializeWriter(&buf, "info", "json")

	WithService("borrow").Info("transition committed", "event", "approve", "borrow_id", 12)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "borrow", entry["service"])
	assert.Equal(t, "approve", entry["event"])
	assert.Equal(t, "transition committed", entry["msg"])
}

func TestLevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	InitializeWriter(&buf, "warn", "text")

	Info("hidden")
	Debug("hidden too")
	assert.Empty(t, buf.String())

	Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}
