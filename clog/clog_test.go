package clog

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger(t *testing.T, cfg *Config, opts ...Option) (Logger, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	logger, err := New(cfg, append(opts, WithWriter(buf))...)
	require.NoError(t, err)
	return logger, buf
}

func TestNew(t *testing.T) {
	t.Run("nil config uses defaults", func(t *testing.T) {
		logger, err := New(nil, WithWriter(&bytes.Buffer{}))
		require.NoError(t, err)
		assert.NotNil(t, logger)
	})

	t.Run("invalid level rejected", func(t *testing.T) {
		_, err := New(&Config{Level: "verbose"})
		assert.Error(t, err)
	})

	t.Run("invalid format rejected", func(t *testing.T) {
		_, err := New(&Config{Format: "xml"})
		assert.Error(t, err)
	})
}

func TestLoggerOutput(t *testing.T) {
	t.Run("json format emits fields", func(t *testing.T) {
		logger, buf := newBufferLogger(t, &Config{Level: "info", Format: "json"})
		logger.Info("id generated", Int64("machine_id", 7), String("mode", "snowflake"))

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "id generated", entry["msg"])
		assert.Equal(t, "INFO", entry["level"])
		assert.Equal(t, float64(7), entry["machine_id"])
		assert.Equal(t, "snowflake", entry["mode"])
	})

	t.Run("level filtering", func(t *testing.T) {
		logger, buf := newBufferLogger(t, &Config{Level: "warn", Format: "console"})
		logger.Info("should not appear")
		logger.Warn("should appear")

		out := buf.String()
		assert.NotContains(t, out, "should not appear")
		assert.Contains(t, out, "should appear")
	})

	t.Run("with fields are inherited", func(t *testing.T) {
		logger, buf := newBufferLogger(t, &Config{Level: "info", Format: "json"})
		child := logger.With(String("component", "idgen"))
		child.Info("created")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "idgen", entry["component"])
	})

	t.Run("namespace joins with dot", func(t *testing.T) {
		logger, buf := newBufferLogger(t, &Config{Level: "info", Format: "json"},
			WithNamespace("snowid"))
		logger.WithNamespace("idgen").Info("hello")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "snowid.idgen", entry[NamespaceKey])
	})
}

func TestSetLevel(t *testing.T) {
	logger, buf := newBufferLogger(t, &Config{Level: "info", Format: "console"})

	logger.Debug("before")
	require.NoError(t, logger.SetLevel(DebugLevel))
	logger.Debug("after")

	out := buf.String()
	assert.NotContains(t, out, "before")
	assert.Contains(t, out, "after")
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug": DebugLevel,
		"INFO":  InfoLevel,
		"Warn":  WarnLevel,
		"error": ErrorLevel,
		"fatal": FatalLevel,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("trace")
	assert.Error(t, err)
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	// 所有调用都不应 panic
	logger.Debug("a")
	logger.Info("b")
	logger.Warn("c")
	logger.Error("d", Error(nil))
	assert.Equal(t, logger, logger.With(String("k", "v")))
	assert.NoError(t, logger.SetLevel(ErrorLevel))
}

func TestErrorField(t *testing.T) {
	logger, buf := newBufferLogger(t, &Config{Level: "info", Format: "console"})
	logger.Error("failed", Error(assert.AnError))
	assert.True(t, strings.Contains(buf.String(), "err_msg"))
}
