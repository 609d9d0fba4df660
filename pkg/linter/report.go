package linter

import (
	"fmt"
	"strings"
)

// FormatReport renders findings as the plain-text body returned to the
// client.
//
// Zero findings produce the single success line. Otherwise each finding
// becomes a "Lint at line L character C: reason" line; when showCode is set
// the trimmed evidence follows on the next line, then a blank line.
// Zero-valued finding slots are skipped.
func FormatReport(findings []Finding, filename string, showCode bool) string {
	if len(findings) == 0 {
		return fmt.Sprintf("js: No problems found in %s\n", filename)
	}

	var b strings.Builder
	for _, f := range findings {
		if f == (Finding{}) {
			continue
		}
		fmt.Fprintf(&b, "Lint at line %d character %d: %s\n", f.Line, f.Character, f.Reason)
		if showCode {
			b.WriteString(strings.TrimSpace(f.Evidence))
			b.WriteString("\n\n")
		}
	}
	return b.String()
}
