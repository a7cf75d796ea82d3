package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name  string
		level zapcore.LevelEnabler
	}{
		{name: "debug level", level: zapcore.DebugLevel},
		{name: "info level", level: zapcore.InfoLevel},
		{name: "error level", level: zapcore.ErrorLevel},
		{name: "nil level", level: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, New(tt.level))
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected zapcore.Level
		valid    bool
	}{
		{name: "debug", input: "debug", expected: zapcore.DebugLevel, valid: true},
		{name: "info", input: "info", expected: zapcore.InfoLevel, valid: true},
		{name: "warn", input: "warn", expected: zapcore.WarnLevel, valid: true},
		{name: "error", input: "error", expected: zapcore.ErrorLevel, valid: true},
		{name: "uppercase", input: "DEBUG", expected: zapcore.DebugLevel, valid: true},
		{name: "with spaces", input: " debug ", expected: zapcore.DebugLevel, valid: true},
		{name: "invalid", input: "bogus", expected: zapcore.InfoLevel, valid: false},
		{name: "empty", input: "", expected: zapcore.InfoLevel, valid: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lvl, ok := ParseLogLevel(tt.input)
			assert.Equal(t, tt.expected, lvl)
			assert.Equal(t, tt.valid, ok)
		})
	}
}

func TestSetLevelRebuildsLogger(t *testing.T) {
	original := Logger()
	defer SetLogger(original)

	SetLevel(zapcore.DebugLevel)
	rebuilt := Logger()
	assert.NotNil(t, rebuilt)
	assert.NotSame(t, original, rebuilt)
	assert.True(t, rebuilt.Core().Enabled(zapcore.DebugLevel))

	SetLevel(zapcore.ErrorLevel)
	assert.False(t, Logger().Core().Enabled(zapcore.WarnLevel))
}

func TestSetLoggerSwapsGlobal(t *testing.T) {
	original := Logger()
	defer SetLogger(original)

	replacement := New(zapcore.ErrorLevel)
	SetLogger(replacement)
	assert.Same(t, replacement, Logger())
}
