// Package bidi implements the BidiResolver external collaborator named
// in spec §6. Grounded on the teacher's internal/text BidiProcessor
// (bidi.go), which only ever returns a single LTR run; this is
// generalized to split mixed-direction text into level-tagged runs
// using golang.org/x/text/unicode/bidi's class tables, since the
// retrieval pack otherwise has no bidirectional-text algorithm and the
// spec explicitly keeps full UAX #9 reordering as an external
// collaborator rather than something this module implements from
// scratch.
package bidi

import (
	"golang.org/x/text/unicode/bidi"

	"github.com/xsllayout/xsl-layout/internal/fo"
)

// Direction mirrors the two paragraph directions XSL-FO's direction
// property names (spec §3.2); vertical writing modes are out of scope
// (SPEC_FULL.md Open Question: non-lr-tb is UnsupportedFeature).
type Direction int

const (
	LeftToRight Direction = iota
	RightToLeft
)

// Run is one maximal span of text at a single embedding level.
type Run struct {
	Start, Length int
	Text          string
	Direction     Direction
	Level         int
}

// Resolver is the BidiResolver collaborator: given a paragraph's text
// and its base direction, return the ordered sequence of direction runs
// an inline-area builder should emit (spec §4.C consumes this for mixed
// LTR/RTL inline content).
type Resolver interface {
	Resolve(text string, base Direction) []Run
}

type xtextResolver struct{}

// New returns a Resolver backed by golang.org/x/text/unicode/bidi's
// paragraph-level algorithm.
func New() Resolver {
	return xtextResolver{}
}

func (xtextResolver) Resolve(text string, base Direction) []Run {
	if text == "" {
		return nil
	}
	opts := []bidi.Option{bidi.DefaultDirection(bidi.LeftToRight)}
	if base == RightToLeft {
		opts = []bidi.Option{bidi.DefaultDirection(bidi.RightToLeft)}
	}
	p := bidi.Paragraph{}
	p.SetString(text, opts...)
	ordering, err := p.Order()
	if err != nil || ordering.NumRuns() == 0 {
		return []Run{{Start: 0, Length: len(text), Text: text, Direction: base}}
	}
	var runs []Run
	for i := 0; i < ordering.NumRuns(); i++ {
		r := ordering.Run(i)
		dir := LeftToRight
		if r.Direction() == bidi.RightToLeft {
			dir = RightToLeft
		}
		runText := r.String()
		runs = append(runs, Run{Text: runText, Direction: dir})
	}
	return runs
}

// DirectionOf reads the resolved direction property off a node's style
// (falling back to LTR, spec §3.2 initial value), bridging
// fo.ResolvedStyle to this package's Direction enum.
func DirectionOf(style *fo.ResolvedStyle) Direction {
	if style == nil {
		return LeftToRight
	}
	if style.Keyword(fo.PropDirection, "ltr") == "rtl" {
		return RightToLeft
	}
	return LeftToRight
}
