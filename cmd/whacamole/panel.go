package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/darragh0/emb-whacamole/internal/hal"
)

// renderPanel redraws the indicator row on stderr, keeping stdout clean
// for the JSONL wire.
func renderPanel(pattern byte) {
	var b strings.Builder
	b.WriteString("\r[")
	for i := 0; i < 8; i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		if hal.LEDLit(pattern, i) {
			b.WriteString("●")
		} else {
			b.WriteString("·")
		}
	}
	b.WriteString("]")
	fmt.Fprint(os.Stderr, b.String())
}
