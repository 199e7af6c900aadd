package clipboard

import (
	"errors"
	"os"
	"testing"

	sysclip "github.com/atotto/clipboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyUsesSystemClipboard(t *testing.T) {
	if sysclip.Unsupported {
		t.Skip("no system clipboard on this host")
	}
	var got string
	orig := systemWrite
	systemWrite = func(s string) error { got = s; return nil }
	defer func() { systemWrite = orig }()

	assert.NoError(t, Copy("RLP\t40"))
	assert.Equal(t, "RLP\t40", got)
}

func TestCopyFallsBackWhenNotATerminal(t *testing.T) {
	orig := systemWrite
	systemWrite = func(string) error { return errors.New("no xclip") }
	defer func() { systemWrite = orig }()

	t.Setenv("TERM", "dumb")
	err := Copy("x")
	assert.Error(t, err)
}

func TestOSC52NeedsTerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()

	assert.False(t, osc52Supported("", f.Fd()))
	assert.False(t, osc52Supported("dumb", f.Fd()))
	assert.False(t, osc52Supported("xterm-256color", f.Fd()), "regular file is not a tty")
}
