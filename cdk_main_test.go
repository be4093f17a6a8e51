package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger_Levels(t *testing.T) {
	for _, tc := range []struct {
		level string
		want  zapcore.Level
	}{
		{"DEBUG", zap.DebugLevel},
		{"warn", zap.WarnLevel},
		{"ERROR", zap.ErrorLevel},
		// empty or unknown falls back to INFO
		{"", zap.InfoLevel},
		{"verbose", zap.InfoLevel},
	} {
		logger := newLogger(tc.level)
		assert.Equal(t, tc.want, logger.Level(), "Input: %q", tc.level)
		assert.Equal(t, tc.want == zap.DebugLevel, logger.Core().Enabled(zap.DebugLevel), "Input: %q", tc.level)
	}
}
