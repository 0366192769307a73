package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		production bool
		verbose    bool
		wantDebug  bool
	}{
		{name: "development", production: false, verbose: false, wantDebug: false},
		{name: "development verbose", production: false, verbose: true, wantDebug: true},
		{name: "production", production: true, verbose: false, wantDebug: false},
		{name: "production verbose", production: true, verbose: true, wantDebug: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			log, err := New(tt.production, tt.verbose)
			require.NoError(t, err)
			assert.Equal(t, tt.wantDebug, log.Core().Enabled(zapcore.DebugLevel))
			assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
		})
	}
}

func TestShortID(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", ShortID(""))
	assert.Equal(t, "abc", ShortID("abc"))
	assert.Equal(t, "12345678", ShortID("12345678"))
	assert.Equal(t, "0b6f2c1e…", ShortID("0b6f2c1e-4d2a-4f7e-9c55-8a1f1f0b7a10"))
}
