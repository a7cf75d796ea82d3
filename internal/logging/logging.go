// Package logging provides the structured logger shared by every
// component: a console-encoded zap logger constructor, level parsing,
// and a swappable global the CLI adapter configures once at startup.
package logging

import (
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.RWMutex
	global *zap.Logger
)

func init() {
	global = New(zapcore.InfoLevel)
}

// New builds a console-encoded logger at the given level. A nil
// LevelEnabler defaults to info.
func New(lvl zapcore.LevelEnabler) *zap.Logger {
	if lvl == nil {
		lvl = zapcore.InfoLevel
	}

	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.Lock(zapcore.AddSync(os.Stderr)),
		lvl,
	)
	return zap.New(core)
}

// ParseLogLevel parses a case-insensitive, whitespace-tolerant level
// name. It returns (zapcore.InfoLevel, false) on an unrecognised input.
func ParseLogLevel(s string) (zapcore.Level, bool) {
	name := strings.TrimSpace(strings.ToLower(s))
	if name == "" {
		return zapcore.InfoLevel, false
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(name)); err != nil {
		return zapcore.InfoLevel, false
	}
	return lvl, true
}

// Logger returns the current global logger.
func Logger() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

// SetLogger replaces the global logger.
func SetLogger(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	global = l
}

// SetLevel rebuilds the global logger at the given level.
func SetLevel(lvl zapcore.Level) {
	SetLogger(New(lvl))
}
