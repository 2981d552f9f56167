// Package table implements component E (table layout, spec §4.E):
// column-width resolution, row-height computation with rowspan
// deficit distribution, border-collapse winning-border rules, and
// repeated table-header/footer across page breaks. Grounded on the
// teacher's internal/layout/engine.go computeTableColumnWidths/
// layoutTableRow, generalized from HTML's per-cell width/colspan
// attributes to XSL-FO's fo:table-column/column-width proportional-
// measure grammar ("<k>*", literal length, percentage, or auto/proportional
// dry-run measurement), which the teacher's HTML-table code has no
// concept of at all.
package table

import (
	"strconv"
	"strings"
)

// ColumnSpec is one fo:table-column's declared width (spec §4.E): a
// fixed length, a percentage of the table's available width, a
// proportional-measure share ("2*"), or auto (resolved from content).
type ColumnSpec struct {
	Kind       ColumnWidthKind
	Length     float64 // points, when Kind == ColumnFixed
	Percent    float64 // when Kind == ColumnPercent
	Proportion float64 // the <k> in "<k>*", when Kind == ColumnProportional
	Span       int     // number-columns-spanned on the table-column itself
}

type ColumnWidthKind int

const (
	ColumnFixed ColumnWidthKind = iota
	ColumnPercent
	ColumnProportional
	ColumnAuto
)

// ParseColumnWidth parses a column-width attribute value per spec §4.E.
func ParseColumnWidth(raw string, resolveLength func(string) (float64, bool)) ColumnSpec {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "auto" {
		return ColumnSpec{Kind: ColumnAuto}
	}
	if strings.HasSuffix(raw, "%") {
		pct, err := strconv.ParseFloat(strings.TrimSuffix(raw, "%"), 64)
		if err == nil {
			return ColumnSpec{Kind: ColumnPercent, Percent: pct}
		}
	}
	if strings.HasSuffix(raw, "*") {
		factorStr := strings.TrimSuffix(raw, "*")
		factor := 1.0
		if factorStr != "" {
			if f, err := strconv.ParseFloat(factorStr, 64); err == nil {
				factor = f
			}
		}
		return ColumnSpec{Kind: ColumnProportional, Proportion: factor}
	}
	if v, ok := resolveLength(raw); ok {
		return ColumnSpec{Kind: ColumnFixed, Length: v}
	}
	return ColumnSpec{Kind: ColumnAuto}
}

// ResolveColumnWidths implements spec §4.E's column-width algorithm:
// fixed and percentage columns are resolved first; auto columns then
// take their measured content width from autoWidths (a dry-run
// measurement per column, spec §4.E "auto" resolution), in column
// order and capped by the width still left; proportional columns
// finally divide whatever remains by their relative share. Auto
// columns are not widened to fill leftover space, and a missing
// autoWidths entry counts as 0.
func ResolveColumnWidths(cols []ColumnSpec, availableWidth float64, autoWidths []float64) []float64 {
	n := len(cols)
	out := make([]float64, n)
	used := 0.0
	totalProportion := 0.0
	var autoIdx []int

	for i, c := range cols {
		switch c.Kind {
		case ColumnFixed:
			out[i] = c.Length
			used += c.Length
		case ColumnPercent:
			w := availableWidth * c.Percent / 100
			out[i] = w
			used += w
		case ColumnProportional:
			totalProportion += c.Proportion
		case ColumnAuto:
			autoIdx = append(autoIdx, i)
		}
	}

	remaining := availableWidth - used
	if remaining < 0 {
		remaining = 0
	}

	// Auto columns get their measured content width first, capped by
	// what's left, before proportional columns divide the rest.
	autoUsed := 0.0
	for _, i := range autoIdx {
		w := 0.0
		if i < len(autoWidths) {
			w = autoWidths[i]
		}
		if w > remaining-autoUsed {
			w = remaining - autoUsed
		}
		if w < 0 {
			w = 0
		}
		out[i] = w
		autoUsed += w
	}
	remaining -= autoUsed

	if totalProportion > 0 && remaining > 0 {
		for i, c := range cols {
			if c.Kind == ColumnProportional {
				out[i] = remaining * c.Proportion / totalProportion
			}
		}
	}

	return out
}
