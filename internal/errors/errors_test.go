package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	err := New(ErrConfig, "Config file not found", "Run 'thermwatch init' first")

	assert.Equal(t, ErrConfig, err.Code)
	assert.Equal(t, "Config file not found", err.Message)
	assert.Equal(t, "Run 'thermwatch init' first", err.Suggestion)
	assert.Nil(t, err.Cause)
}

func TestError_Format(t *testing.T) {
	err := WrapWithCode(fmt.Errorf("connection refused"), ErrAPI,
		"Dashboard fetch failed",
		"Check that the server URL is reachable")

	out := err.Error()
	assert.Contains(t, out, "✗ Dashboard fetch failed")
	assert.Contains(t, out, "connection refused")
	assert.Contains(t, out, "Check that the server URL is reachable")
}

func TestError_NoSuggestion(t *testing.T) {
	err := Wrap(fmt.Errorf("boom"), "Something broke")

	out := err.Error()
	assert.Contains(t, out, "✗ Something broke")
	assert.Contains(t, out, "boom")
	assert.NotContains(t, out, "How to fix")
}

func TestError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := Wrap(cause, "wrapped")

	assert.Equal(t, cause, err.Unwrap())
}

func TestIsCode(t *testing.T) {
	err := New(ErrAPI, "api failure", "")

	assert.True(t, IsCode(err, ErrAPI))
	assert.False(t, IsCode(err, ErrConfig))
	assert.False(t, IsCode(nil, ErrAPI))
	assert.False(t, IsCode(fmt.Errorf("plain"), ErrAPI))
}

func TestIsCode_WrappedChain(t *testing.T) {
	inner := New(ErrConfig, "bad yaml", "")
	outer := fmt.Errorf("loading prefs: %w", inner)

	assert.True(t, IsCode(outer, ErrConfig))
}
