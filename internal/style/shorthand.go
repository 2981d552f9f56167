package style

import "strings"

// expandBoxShorthand parses a CSS-like box shorthand ("10pt",
// "10pt 20pt", "10pt 15pt 8pt", "10pt 12pt 8pt 6pt") into its four
// per-side longhand strings (top, right, bottom, left), grounded on the
// teacher's internal/layout/block.go parseBoxShorthand.
func expandBoxShorthand(value string) (top, right, bottom, left string) {
	parts := strings.Fields(strings.TrimSpace(value))
	switch len(parts) {
	case 1:
		return parts[0], parts[0], parts[0], parts[0]
	case 2:
		return parts[0], parts[1], parts[0], parts[1]
	case 3:
		return parts[0], parts[1], parts[2], parts[1]
	case 4:
		return parts[0], parts[1], parts[2], parts[3]
	default:
		return "", "", "", ""
	}
}
