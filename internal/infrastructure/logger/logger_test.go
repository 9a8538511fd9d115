package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/igi-pe/report-api/internal/config"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, parseLevel(""))
	assert.Equal(t, zerolog.DebugLevel, parseLevel("DEBUG"))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("loud"))
}

func TestNewUsesConfiguredLevel(t *testing.T) {
	log := New(&config.Config{ServiceName: "report-api", LogLevel: "warn", LogFormat: "json"})
	assert.Equal(t, zerolog.WarnLevel, log.GetLevel())
}
