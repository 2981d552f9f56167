package linebreak

// Line is one assembled output line: the item slice it covers and the
// adjustment ratio chosen for justification (0 for ragged settings).
type Line struct {
	Items      []Item
	Ratio      float64
	StartIndex int
	EndIndex   int // exclusive
}

// Greedy implements first-fit line breaking (spec §4.C "greedy"): scan
// forward accumulating items until the line would overflow lineWidth,
// then break at the most recent legal breakpoint. Grounded directly on
// the teacher's layoutParagraphInline (internal/layout/engine.go),
// which accumulates words by measured width and wraps as soon as the
// next word would overflow.
func Greedy(items []Item, lineWidth func(lineIndex int) float64) []Line {
	var lines []Line
	start := 0
	width := 0.0
	lastBreak := -1
	lineIndex := 0

	flush := func(end int) {
		if end <= start {
			end = start + 1
		}
		lines = append(lines, Line{Items: items[start:end], StartIndex: start, EndIndex: end})
		lineIndex++
		start = end
		width = 0
		lastBreak = -1
	}

	for i, it := range items {
		switch it.Kind {
		case Box:
			width += it.Width
		case Glue:
			if width > 0 && lineWidth(lineIndex) > 0 && width > lineWidth(lineIndex) {
				brk := lastBreak
				if brk < start {
					brk = i
				}
				flush(brk)
				width = sumWidth(items[start:i])
			}
			lastBreak = i
			width += it.Width
		case Penalty:
			if it.IsForcedBreak() {
				flush(i + 1)
				continue
			}
			if it.IsLegalBreak() && width > lineWidth(lineIndex) {
				flush(i)
				width = 0
				lastBreak = -1
				continue
			}
			if it.IsLegalBreak() {
				lastBreak = i
			}
		}
	}
	if start < len(items) {
		flush(len(items))
	}
	return lines
}

func sumWidth(items []Item) float64 {
	var w float64
	for _, it := range items {
		w += it.Width
	}
	return w
}
