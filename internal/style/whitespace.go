package style

import "strings"

// CollapseWhiteSpace normalizes text per the white-space keyword (spec
// §4.B, component B): "normal"/"nowrap" collapse runs of space/tab/
// newline to a single space and trim leading/trailing space at a block
// boundary; "pre"/"pre-wrap" preserve runs verbatim; "pre-line"
// preserves newlines but collapses intra-line runs. Grounded on the
// teacher's normalizeWhitespace (internal/layout/engine.go), generalized
// from its single hardcoded "collapse always" behavior to the four FO
// white-space modes.
func CollapseWhiteSpace(text, mode string, trimLeading, trimTrailing bool) string {
	switch mode {
	case "pre":
		return text
	case "pre-wrap":
		return text
	case "pre-line":
		lines := strings.Split(text, "\n")
		for i, ln := range lines {
			lines[i] = collapseRun(ln)
		}
		return strings.Join(lines, "\n")
	default: // "normal", "nowrap"
		out := collapseRun(strings.ReplaceAll(strings.ReplaceAll(text, "\n", " "), "\t", " "))
		if trimLeading {
			out = strings.TrimLeft(out, " ")
		}
		if trimTrailing {
			out = strings.TrimRight(out, " ")
		}
		return out
	}
}

func collapseRun(s string) string {
	var b strings.Builder
	lastSpace := false
	for _, r := range s {
		isSpace := r == ' ' || r == '\t'
		if isSpace {
			if !lastSpace {
				b.WriteByte(' ')
			}
			lastSpace = true
			continue
		}
		lastSpace = false
		b.WriteRune(r)
	}
	return b.String()
}
