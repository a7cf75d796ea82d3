package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestBindEnvPopulatesFromAlias(t *testing.T) {
	t.Setenv("AO_DIR", "/library/source")
	t.Setenv("BOOKORGANIZER_LOG_LEVEL", "debug")

	v := viper.New()
	BindEnv(v)

	cfg := FromViper(v)
	assert.Equal(t, "/library/source", cfg.SourceDir)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestNormalizeLayoutDefaultsWhenUnknown(t *testing.T) {
	v := viper.New()
	v.Set("layout", "nonsense")
	cfg := FromViper(v)
	assert.Equal(t, "author-series-title", cfg.Layout)
}

func TestNormalizeLayoutPassesThroughKnownValues(t *testing.T) {
	v := viper.New()
	v.Set("layout", "Author-Only")
	cfg := FromViper(v)
	assert.Equal(t, "author-only", cfg.Layout)
}

func TestFromViperDefaultsEmptyLayout(t *testing.T) {
	v := viper.New()
	cfg := FromViper(v)
	assert.Equal(t, "author-series-title", cfg.Layout)
	assert.False(t, cfg.DryRun)
}

func TestNormalizeOperationDefaultsWhenUnknown(t *testing.T) {
	v := viper.New()
	v.Set("operation", "teleport")
	cfg := FromViper(v)
	assert.Equal(t, "copy", cfg.Operation)
}

func TestNormalizeOperationPassesThroughKnownValues(t *testing.T) {
	v := viper.New()
	v.Set("operation", "Hard_Link")
	cfg := FromViper(v)
	assert.Equal(t, "hard_link", cfg.Operation)
}
