// Package api is the top-level entry point for the layout/pagination
// core (spec §1): an XSL-FO document in, an AreaTree out. Grounded on
// the teacher's pkg/api.Converter, which wires parse → style → layout →
// paginate → render as one linear pipeline; this generalizes that
// wiring to foxml → style.Resolve → fo.Refine → pagination.Formatter,
// and stops at the area tree instead of continuing on to PDF rendering
// (spec §1 Non-goals).
package api

import (
	"io"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xsllayout/xsl-layout/internal/area"
	"github.com/xsllayout/xsl-layout/internal/diag"
	"github.com/xsllayout/xsl-layout/internal/fo"
	"github.com/xsllayout/xsl-layout/internal/fontmetrics"
	"github.com/xsllayout/xsl-layout/internal/foxml"
	"github.com/xsllayout/xsl-layout/internal/pagination"
	"github.com/xsllayout/xsl-layout/internal/style"
)

// Converter is the main entry point: Convert an XSL-FO document into an
// AreaTree, plus whatever recoverable diagnostics were recorded along
// the way (spec §7).
type Converter struct {
	options Options
	logger  *zap.Logger
}

// New creates a converter with default options.
func New() *Converter {
	return NewWithOptions(DefaultOptions())
}

// NewWithOptions creates a converter with the specified options.
func NewWithOptions(options Options) *Converter {
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Converter{options: options, logger: logger}
}

// Result is the outcome of one successful Convert call.
type Result struct {
	Tree        *area.AreaTree
	Diagnostics []diag.Entry
}

// Convert parses r as XSL-FO XML and runs the full pipeline (spec
// §2 System Overview): foxml adapter → property resolver →
// refinement → page formatter. A malformed or structurally invalid
// document returns a *diag.Failure; anything recoverable is returned
// alongside the Result instead of aborting the run.
func (c *Converter) Convert(r io.Reader) (*Result, error) {
	runID := uuid.NewString()
	logger := c.logger.With(zap.String("run_id", runID))
	sink := diag.NewSink(logger)

	root, err := foxml.Parse(r, sink)
	if err != nil {
		return nil, err
	}

	style.Resolve(root, sink)
	fo.Refine(root, sink)

	masters := pagination.ParsePageMasters(root, sink)
	metrics := fontmetrics.New()
	limits := c.options.Limits
	formatter := pagination.New(masters, metrics, sink, limits, pagination.FormatterOptions{
		LineBreaking: c.options.LineBreaking,
		Hyphenation:  c.options.Hyphenation,
	})

	tree, err := formatter.Format(root)
	if err != nil {
		return nil, err
	}

	return &Result{Tree: tree, Diagnostics: sink.Entries()}, nil
}

// ConvertString is a convenience wrapper for in-memory documents (tests,
// the CLI's inline path).
func (c *Converter) ConvertString(content string) (*Result, error) {
	return c.Convert(strings.NewReader(content))
}
