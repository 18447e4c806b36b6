package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapKeepsSentinel(t *testing.T) {
	err := Wrapf(ErrInvalidConfig, "top count %d", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "top count 0")
	assert.Contains(t, err.Error(), "invalid configuration")
	assert.True(t, IsInvalidConfig(err))
	assert.False(t, IsNoData(err))
}

func TestHints(t *testing.T) {
	err := WithHint(Wrap(ErrNoData, "select"), "check the training set")
	assert.True(t, IsNoData(err))
	assert.Contains(t, GetAllHints(err), "check the training set")
}

func TestNilChecks(t *testing.T) {
	assert.False(t, IsNoData(nil))
	assert.False(t, IsInvalidConfig(nil))
}

func TestCombineErrors(t *testing.T) {
	assert.Nil(t, CombineErrors(nil, nil))

	first := Wrap(ErrNoData, "first")
	assert.Equal(t, first, CombineErrors(nil, first))

	combined := CombineErrors(first, Wrap(ErrCorruptData, "second"))
	assert.True(t, Is(combined, ErrNoData))
}
