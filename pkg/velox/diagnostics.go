package velox

import (
	"fmt"
	"strings"
)

// Renders d as a header line followed by the offending source line and a
// caret under the column:
//
//	parse error in main.vx at 2:9: expected ';', found '}'
//
//	   1 | var x = 1;
//	   2 | print(x)
//	     |         ^
//
// Line and column are clamped to the source, so any Diagnostic renders.
func FormatDiagnostic(src, name string, d *Diagnostic) string {
	var b strings.Builder
	if name != "" {
		fmt.Fprintf(&b, "%s in %s at %d:%d: %s\n", d.Phase, name, d.Line, d.Column, d.Message)
	} else {
		fmt.Fprintf(&b, "%s at %d:%d: %s\n", d.Phase, d.Line, d.Column, d.Message)
	}
	if d.Line < 1 || src == "" {
		return b.String()
	}

	lines := strings.Split(src, "\n")
	line := min(d.Line, len(lines))
	col := max(d.Column, 1)
	b.WriteString("\n")
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lines[line-1])
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", col-1))
	return b.String()
}
