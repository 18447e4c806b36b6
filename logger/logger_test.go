package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLoggerIsUsable(t *testing.T) {
	require.NotNil(t, Logger)
	assert.NotPanics(t, func() {
		ComponentLogger("test").Infow("before initialize", FieldCount, 1)
	})
}

func TestInitialize(t *testing.T) {
	defer func() { _ = Initialize(false, false) }()

	require.NoError(t, Initialize(true, false))
	assert.True(t, JSONOutput)
	assert.False(t, Logger.Desugar().Core().Enabled(-1))

	require.NoError(t, Initialize(false, true))
	assert.False(t, JSONOutput)
	assert.True(t, Logger.Desugar().Core().Enabled(-1))
}
