package config

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_Level(t *testing.T) {
	tests := []struct {
		level    string
		expected zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"bogus", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger := newLogger(LoggerConfig{Level: tt.level, Format: "json"}, &bytes.Buffer{})
			assert.Equal(t, tt.expected, logger.GetLevel())
		})
	}
}

func TestNewLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(LoggerConfig{Level: "info", Format: "json"}, &buf)

	logger.Info().Str("key", "value").Msg("hello")
	logger.Debug().Msg("filtered out")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["message"])
	assert.Equal(t, "value", entry["key"])
	assert.Equal(t, "storefront", entry["app"])
	assert.Contains(t, entry, "time")
}

func TestNewLogger_ConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(LoggerConfig{Level: "info", Format: "console"}, &buf)

	logger.Info().Msg("hello console")

	assert.Contains(t, buf.String(), "hello console")
	assert.False(t, json.Valid(buf.Bytes()))
}
