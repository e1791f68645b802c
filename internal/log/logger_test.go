package log

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"kassa/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasicLogging(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf))

	l.Info("info message")
	assert.Contains(t, buf.String(), "level=info")
	assert.Contains(t, buf.String(), "info message")
	buf.Reset()

	l.Warn("warn message")
	assert.Contains(t, buf.String(), "level=warning")
	buf.Reset()

	l.Error("error message")
	assert.Contains(t, buf.String(), "level=error")
	buf.Reset()

	l.Infof("formatted %s", "message")
	assert.Contains(t, buf.String(), "formatted message")
}

func TestDebugLogging(t *testing.T) {
	var buf bytes.Buffer
	original := logger
	Configure(WithOutput(&buf))
	defer func() { logger = original }()

	SetDebug(false)
	Debug("debug message")
	assert.Empty(t, buf.String())

	SetDebug(true)
	Debug("debug message")
	assert.Contains(t, buf.String(), "level=debug")
	assert.Contains(t, buf.String(), "debug message")
	buf.Reset()

	Debugf("formatted %s", "debug")
	assert.Contains(t, buf.String(), "formatted debug")
}

func TestLevelOption(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf), WithLevel("warn"))

	l.Info("hidden")
	assert.Empty(t, buf.String())
	l.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestStructuredLogging(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf))

	l.With(F("mode", "item_find"), F("epoch", 3)).Info("entered")
	output := buf.String()
	assert.Contains(t, output, "entered")
	assert.Contains(t, output, "mode=item_find")
	assert.Contains(t, output, "epoch=3")
	buf.Reset()

	l.With(F("key1", "value1")).WithField("key2", 123).Info("chained fields")
	output = buf.String()
	assert.Contains(t, output, "key1=value1")
	assert.Contains(t, output, "key2=123")
}

func TestJSONLogging(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf), WithJSON())

	l.With(F("key1", "value1"), F("key2", 123)).Info("json message")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "json message", entry["message"])
	assert.Contains(t, entry, "timestamp")
	assert.Equal(t, "value1", entry["key1"])
	assert.Equal(t, float64(123), entry["key2"])
}

func TestErrorLogging(t *testing.T) {
	var buf bytes.Buffer
	original := logger
	Configure(WithOutput(&buf))
	defer func() { logger = original }()

	LogWithFields(F("error", fmt.Errorf("standard error").Error())).Error("error occurred")
	assert.Contains(t, buf.String(), "standard error")
	buf.Reset()

	LogWithError(errors.New("application error")).Error("app error occurred")
	output := buf.String()
	assert.Contains(t, output, "application error")
	assert.Contains(t, output, "error_kind=0")
	buf.Reset()

	reqErr := errors.NewRequestError("item/edit", 409, "conflict", nil)
	LogWithError(reqErr).Error("save failed")
	output = buf.String()
	assert.Contains(t, output, "status=409")
	assert.Contains(t, output, "op=item/edit")
	assert.Contains(t, output, fmt.Sprintf("error_kind=%d", errors.RequestFailed))
	buf.Reset()

	hookErr := errors.NewLifecycleError("vendor_report", "enter", fmt.Errorf("boom"))
	LogWithError(hookErr).Error("switch failed")
	output = buf.String()
	assert.Contains(t, output, "mode=vendor_report")
	assert.Contains(t, output, "hook=enter")
	buf.Reset()

	cfgErr := errors.NewConfigError("config error", "server.url", errors.InvalidConfig, nil)
	LogWithError(cfgErr).Error("bad config")
	assert.Contains(t, buf.String(), "param=server.url")
}
