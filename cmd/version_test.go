package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormattedBuildTime(t *testing.T) {
	orig := buildTime
	defer func() { buildTime = orig }()

	buildTime = "unknown"
	assert.Equal(t, "unknown", formattedBuildTime())

	buildTime = "2026-03-01T12:30:00Z"
	assert.Equal(t, "2026-03-01 12:30:00 UTC", formattedBuildTime())

	buildTime = "not-a-timestamp"
	assert.Equal(t, "not-a-timestamp", formattedBuildTime())
}
