package linebreak

import (
	"strings"

	"github.com/xsllayout/xsl-layout/internal/text/hyphen"
)

// WordMetrics measures a word (or hyphenated fragment) for the current
// font, mirroring the FontMetrics external collaborator named in spec
// §6: width in points for the given text under the current font
// properties.
type WordMetrics interface {
	MeasureWidth(text string, fontFamily string, fontSize float64, bold, italic bool) float64
}

// Options configures paragraph-level parameters that affect the item
// stream: inter-word glue (normal/nowrap), space-stretch/shrink as
// fractions of the normal interword space, and whether hyphenation is
// enabled.
type Options struct {
	FontFamily     string
	FontSize       float64
	Bold, Italic   bool
	Hyphenate      bool
	Hyphenator     hyphen.Engine
	SpaceStretchPt float64 // additive stretch beyond the space glue itself
	SpaceShrinkPt  float64
}

// Build tokenizes text (already whitespace-collapsed by component B)
// into a Knuth-Plass item stream: each word becomes one or more boxes
// (split at hyphenation points, separated by a flagged discretionary
// penalty carrying the hyphen's own width), and each run of spaces
// becomes inter-word glue. A forced-break penalty terminates the
// stream so the final line is always flushed (spec §4.C item-stream
// construction).
func Build(text string, m WordMetrics, opt Options) []Item {
	var items []Item
	words := strings.Split(text, " ")
	spaceWidth := m.MeasureWidth(" ", opt.FontFamily, opt.FontSize, opt.Bold, opt.Italic)
	hyphenWidth := m.MeasureWidth("-", opt.FontFamily, opt.FontSize, opt.Bold, opt.Italic)

	for i, w := range words {
		if w == "" {
			continue
		}
		if i > 0 {
			items = append(items, NewGlue(spaceWidth, spaceWidth/2+opt.SpaceStretchPt, spaceWidth/3+opt.SpaceShrinkPt))
		}
		items = append(items, wordItems(w, m, opt, hyphenWidth)...)
	}
	items = append(items, NewGlue(0, 1e4, 0))
	items = append(items, NewPenalty(0, PenaltyForced, false))
	return items
}

func wordItems(word string, m WordMetrics, opt Options, hyphenWidth float64) []Item {
	if !opt.Hyphenate || opt.Hyphenator == nil {
		return []Item{NewBox(m.MeasureWidth(word, opt.FontFamily, opt.FontSize, opt.Bold, opt.Italic), word, 0)}
	}
	breaks := opt.Hyphenator.Hyphenate(word)
	if len(breaks) == 0 {
		return []Item{NewBox(m.MeasureWidth(word, opt.FontFamily, opt.FontSize, opt.Bold, opt.Italic), word, 0)}
	}
	var out []Item
	prev := 0
	for _, b := range breaks {
		frag := word[prev:b]
		out = append(out, NewBox(m.MeasureWidth(frag, opt.FontFamily, opt.FontSize, opt.Bold, opt.Italic), frag, prev))
		out = append(out, NewPenalty(hyphenWidth, 50, true))
		prev = b
	}
	frag := word[prev:]
	out = append(out, NewBox(m.MeasureWidth(frag, opt.FontFamily, opt.FontSize, opt.Bold, opt.Italic), frag, prev))
	return out
}
