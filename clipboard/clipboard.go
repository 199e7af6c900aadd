package clipboard

import (
	"fmt"
	"os"

	sysclip "github.com/atotto/clipboard"

	"github.com/andareed/siftly-rangeview/logging"
)

// systemWrite is swapped in tests.
var systemWrite = sysclip.WriteAll

// Copy puts text on the system clipboard, falling back to an OSC52 escape
// sequence when no clipboard tool is available (ssh sessions, bare ttys).
func Copy(text string) error {
	if !sysclip.Unsupported {
		err := systemWrite(text)
		if err == nil {
			logging.Infof("Clipboard: copied %d bytes", len(text))
			return nil
		}
		logging.Warnf("Clipboard: system clipboard failed: %v", err)
	}
	if err := copyOSC52(os.Stdout, text); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}
