package logger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"seogen/internal/config"
	"seogen/internal/logger"
)

func TestNew(t *testing.T) {
	log, err := logger.New(&config.LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zap.DebugLevel))
	assert.True(t, log.Core().Enabled(zap.InfoLevel))

	log, err = logger.New(&config.LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zap.DebugLevel))
}

func TestNew_Invalid(t *testing.T) {
	_, err := logger.New(&config.LogConfig{Level: "loud", Format: "json"})
	assert.Error(t, err)

	_, err = logger.New(&config.LogConfig{Level: "info", Format: "xml"})
	assert.Error(t, err)
}
