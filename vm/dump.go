package vm

import (
	"fmt"
	"io"
	"slices"
)

const dumpWidth = 8 // Words per line.

// Dump writes the RAM content as hex, dumpWidth words per line.
// Runs of zero lines are collapsed into a single '*'.
// The word at highlight is shown in reverse video.
func Dump(w io.Writer, ram Ram, highlight int) {
	zz := make([]uint16, dumpWidth)
	values := ram.Values(0, len(ram))
	zeroRow := func(i int) bool {
		end := min(i+dumpWidth, len(values))
		return (highlight < i || highlight >= end) && slices.Equal(values[i:end], zz[:end-i])
	}
	for i := 0; i < len(values); {
		if i%dumpWidth == 0 {
			if zeroRow(i) {
				_, _ = fmt.Fprintf(w, "\n*")
				for ; i < len(values) && zeroRow(i); i += dumpWidth {
				}
				continue
			}
			_, _ = fmt.Fprintf(w, "\n0x%04X:", i)
		}
		if i == highlight {
			_, _ = fmt.Fprintf(w, "\033[7m")
		}
		_, _ = fmt.Fprintf(w, " %04x", values[i])
		if i == highlight {
			_, _ = fmt.Fprintf(w, "\033[27m")
		}
		i++
	}
	_, _ = fmt.Fprintf(w, "\n")
}
