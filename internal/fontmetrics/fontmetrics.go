// Package fontmetrics implements the FontMetrics external collaborator
// named in spec §6: text-width measurement for the paragraph formatter
// and table column-width resolver. Grounded directly on the teacher's
// package-level measureTextWidth/resolveFontFromStyle
// (internal/layout/engine.go), but re-scoped to metrics only (no
// content-stream writing) and converted from a sync.Once-guarded
// package singleton into a constructor-returned instance, since spec §5
// forbids process-wide mutable state for document-parallel hosts.
package fontmetrics

import (
	"strings"
	"sync"

	"codeberg.org/go-pdf/fpdf"
)

// Metrics is the FontMetrics collaborator: width measurement for a run
// of text under a resolved font family/size/weight/style.
type Metrics interface {
	MeasureWidth(text string, fontFamily string, fontSize float64, bold, italic bool) float64
}

// fpdfMetrics wraps an fpdf.Fpdf instance purely for its font-metrics
// tables (Core 14 AFM widths); it never calls any content-emitting
// method. One instance is safe for a single document's formatting run;
// callers that format documents concurrently must each construct their
// own (no shared singleton, unlike the teacher's measurePDF).
type fpdfMetrics struct {
	mu  sync.Mutex
	pdf *fpdf.Fpdf
}

// New returns a FontMetrics backed by the Core 14 PDF font metrics.
func New() Metrics {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetFont("Helvetica", "", 12)
	return &fpdfMetrics{pdf: pdf}
}

func (m *fpdfMetrics) MeasureWidth(text string, fontFamily string, fontSize float64, bold, italic bool) float64 {
	if text == "" || fontSize <= 0 {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	family, style := resolveCoreFont(fontFamily, bold, italic)
	m.pdf.SetFont(family, style, fontSize)
	return m.pdf.GetStringWidth(text)
}

// resolveCoreFont maps an arbitrary font-family value onto one of the
// PDF Core 14 families, mirroring the teacher's resolveFontFromStyle
// but taking already-resolved bold/italic booleans (spec §3.2 resolves
// font-weight/font-style to computed values well before this point)
// instead of re-parsing CSS-style shorthand strings.
func resolveCoreFont(fontFamily string, bold, italic bool) (string, string) {
	family := "Helvetica"
	if fontFamily != "" {
		first := strings.Split(fontFamily, ",")[0]
		first = strings.TrimSpace(strings.Trim(first, "'\""))
		switch strings.ToLower(first) {
		case "arial", "helvetica", "sans-serif":
			family = "Helvetica"
		case "times", "times new roman", "serif":
			family = "Times"
		case "courier", "courier new", "monospace":
			family = "Courier"
		case "symbol":
			family = "Symbol"
		case "zapfdingbats":
			family = "ZapfDingbats"
		}
	}
	style := ""
	if bold {
		style += "B"
	}
	if italic {
		style += "I"
	}
	return family, style
}
