package theworld

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name    string
		cfg     LoggingConfig
		debugOn bool
		infoOn  bool
	}{
		{"console debug", LoggingConfig{Level: "debug", Format: "console"}, true, true},
		{"json info", LoggingConfig{Level: "info", Format: "json"}, false, true},
		{"warn", LoggingConfig{Level: "warn"}, false, false},
		{"unknown level", LoggingConfig{Level: "loud"}, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := NewLogger(tt.cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.debugOn, l.Core().Enabled(zapcore.DebugLevel))
			assert.Equal(t, tt.infoOn, l.Core().Enabled(zapcore.InfoLevel))
		})
	}
}
