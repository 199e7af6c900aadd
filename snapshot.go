package main

import (
	"fmt"
	"strings"

	"github.com/andareed/siftly-rangeview/rangeview"
)

// snapshotText renders the snapshot as tab separated lines with a header,
// the form that is put on the clipboard.
func snapshotText(title string, snap rangeview.Snapshot) string {
	var b strings.Builder
	if title != "" {
		fmt.Fprintf(&b, "%s\n", title)
	}
	fmt.Fprintf(&b, "Date\t%s\n", snap.Date.Format(dateLayout))
	b.WriteString("Key\tValue\tShare\tAllied\n")

	total := snap.Total()
	for _, sl := range snap.Slices {
		value, share := "", ""
		if sl.OK {
			value = formatValue(sl.Value)
			if total > 0 {
				share = fmt.Sprintf("%.1f%%", sl.Value/total*100)
			}
		}
		allied := ""
		if sl.Allied {
			allied = "yes"
		}
		fmt.Fprintf(&b, "%s\t%s\t%s\t%s\n", sl.Key, value, share, allied)
	}
	return b.String()
}
