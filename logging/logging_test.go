package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetOutputLevels(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, false)
	Debugf("hidden %d", 1)
	Infof("shown %d", 2)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown 2")
	assert.False(t, IsDebugMode())

	buf.Reset()
	SetOutput(&buf, true)
	Debug("now visible")
	assert.Contains(t, buf.String(), "now visible")
	assert.True(t, IsDebugMode())
}

func TestSetupLoggingToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	cleanup, err := SetupLogging(path, false)
	require.NoError(t, err)

	Warnf("range rejected %s", "2024-01-11")
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "range rejected 2024-01-11")
}

func TestSetupLoggingDisabled(t *testing.T) {
	cleanup, err := SetupLogging("", false)
	require.NoError(t, err)
	defer cleanup()
	Errorf("goes nowhere")
}
