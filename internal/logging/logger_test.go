package logging

import (
	"testing"

	"github.com/go-playground/assert/v2"
	"github.com/mikey/news-agent/internal/config"
	"go.uber.org/zap/zapcore"
)

func TestInitLoggerHonoursLevel(t *testing.T) {
	cfg := config.NewFromViper(config.NewEmptyViper())
	cfg.Set("logging.level", "warn")

	logger, err := InitLogger(cfg)

	assert.Equal(t, nil, err)
	assert.Equal(t, false, logger.Core().Enabled(zapcore.InfoLevel))
	assert.Equal(t, true, logger.Core().Enabled(zapcore.WarnLevel))
}

func TestInitLoggerJSONDebug(t *testing.T) {
	cfg := config.NewFromViper(config.NewEmptyViper())
	cfg.Set("logging.level", "debug")
	cfg.Set("logging.format", "json")

	logger, err := InitLogger(cfg)

	assert.Equal(t, nil, err)
	assert.Equal(t, true, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestParseLevelFallsBackToInfo(t *testing.T) {
	assert.Equal(t, zapcore.InfoLevel, parseLevel("loud"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
}
