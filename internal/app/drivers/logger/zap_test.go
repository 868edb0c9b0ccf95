package logger

import (
	"testing"

	"doctor-appointment-service/internal/app/config"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNewZapLogger_Level(t *testing.T) {
	internalConfig := &config.InternalConfig{App: config.App{Env: "development", Version: "v1"}}

	tests := []struct {
		level       string
		debug, info bool
	}{
		{level: "debug", debug: true, info: true},
		{level: "warn", debug: false, info: false},
		{level: "not-a-level", debug: false, info: true},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			driverConfig := &config.DriverConfig{Logger: config.Logger{Level: tt.level}}
			log := NewZapLogger(driverConfig, internalConfig)
			assert.Equal(t, tt.debug, log.Core().Enabled(zap.DebugLevel))
			assert.Equal(t, tt.info, log.Core().Enabled(zap.InfoLevel))
		})
	}
}
