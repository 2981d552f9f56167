package pagination

import (
	"strings"

	"github.com/xsllayout/xsl-layout/internal/area"
	"github.com/xsllayout/xsl-layout/internal/text/linebreak"
)

// renderLine turns one measuredLine into a LineArea with a per-word
// InlineArea child, stamping x/y/width/text and the word-spacing
// increment that distributes the line's adjustment across its
// interword glue for justified text (spec §4.C.5, §3.3). The last item
// of a Knuth-Plass/greedy line is the breakpoint itself (trailing glue
// or a discretionary-hyphen penalty) and is never rendered as content,
// per standard line-breaking practice; a flagged penalty instead marks
// the preceding word's InlineArea as Hyphenated and appends the hyphen
// glyph to its text.
func renderLine(f *Formatter, ml measuredLine, x, y float64, item *flowItem, isLastLine bool) *area.LineArea {
	items := ml.line.Items
	hyphenated := false
	if n := len(items); n > 0 {
		last := items[n-1]
		switch {
		case last.Kind == linebreak.Penalty && last.Flagged:
			hyphenated = true
			items = items[:n-1]
		case last.Kind == linebreak.Penalty || last.Kind == linebreak.Glue:
			items = items[:n-1]
		}
	}

	var naturalWidth float64
	gapCount := 0
	for _, it := range items {
		naturalWidth += it.Width
		if it.Kind == linebreak.Glue {
			gapCount++
		}
	}

	align := item.textAlign
	if isLastLine && item.textAlignLast != "" && item.textAlignLast != "relative" {
		align = item.textAlignLast
	}
	justify := align == "justify" && !isLastLine

	var wordSpacing float64
	if justify && gapCount > 0 {
		wordSpacing = (item.lineWidth - naturalWidth) / float64(gapCount)
	}

	offsetX := 0.0
	switch align {
	case "center":
		offsetX = (item.lineWidth - naturalWidth) / 2
	case "end", "right":
		offsetX = item.lineWidth - naturalWidth
	}
	if offsetX < 0 {
		offsetX = 0
	}

	var children []area.Area
	cursorX := x + offsetX
	var textBuf strings.Builder
	runStartX := cursorX

	flush := func() {
		if textBuf.Len() == 0 {
			return
		}
		text := textBuf.String()
		w := f.metrics.MeasureWidth(text, item.fontFamily, item.fontSize, false, false)
		ia := area.NewInlineArea(f.genID("inline"), area.Rect{X: runStartX, Y: y, Width: w, Height: item.fontSize * 1.2}, text)
		ia.FontFamily = item.fontFamily
		ia.FontSize = item.fontSize
		children = append(children, ia)
		textBuf.Reset()
	}

	for _, it := range items {
		switch it.Kind {
		case linebreak.Box:
			if textBuf.Len() == 0 {
				runStartX = cursorX
			}
			textBuf.WriteString(it.Text)
			cursorX += it.Width
		case linebreak.Glue:
			flush()
			cursorX += it.Width + wordSpacing
		}
	}
	flush()

	if hyphenated && len(children) > 0 {
		last := children[len(children)-1].(*area.InlineArea)
		last.Text += "-"
		last.Hyphenated = true
		last.Rect.Width = f.metrics.MeasureWidth(last.Text, last.FontFamily, last.FontSize, false, false)
	}
	if justify {
		for i, c := range children {
			if i == len(children)-1 {
				continue
			}
			c.(*area.InlineArea).WordSpacing = wordSpacing
		}
	}

	la := area.NewLineArea(f.genID("line"), area.Rect{X: x, Y: y, Width: item.lineWidth, Height: ml.height}, ml.line.Ratio)
	la.Children = children
	return la
}
