package table

// CellSpec is one table-cell's span declaration and its own content's
// natural (unconstrained) height, supplied by the block formatter after
// laying out the cell's content against its resolved column width(s).
type CellSpec struct {
	ColumnSpan   int
	RowSpan      int
	ContentHeight float64
}

// rowspanTracker carries, per column, the number of remaining rows a
// previously started rowspan still occupies and the per-row height
// share still owed to it — spec §4.E "row height with rowspan deficit
// distribution": a cell spanning N rows contributes 1/N of its content
// height as a lower bound to each of the N rows, and if the sum of a
// row's own single-row cells is smaller than what the spanning cell
// still needs, the row's height is raised to cover the deficit.
type rowspanTracker struct {
	remaining []int
	perRow    []float64
}

func newRowspanTracker(cols int) *rowspanTracker {
	return &rowspanTracker{remaining: make([]int, cols), perRow: make([]float64, cols)}
}

// ResolveRowHeights computes the height of each row in a table section
// given each row's cells (with their column-span/row-span and natural
// content height). Returns one height per row.
func ResolveRowHeights(numColumns int, rows [][]CellSpec) []float64 {
	tracker := newRowspanTracker(numColumns)
	heights := make([]float64, len(rows))

	for r, cells := range rows {
		rowHeight := 0.0
		col := 0
		for _, cell := range cells {
			for col < numColumns && tracker.remaining[col] > 0 {
				col++
			}
			span := cell.ColumnSpan
			if span < 1 {
				span = 1
			}
			rowSpan := cell.RowSpan
			if rowSpan < 1 {
				rowSpan = 1
			}
			perRowShare := cell.ContentHeight / float64(rowSpan)
			if perRowShare > rowHeight {
				rowHeight = perRowShare
			}
			for j := 0; j < span && col+j < numColumns; j++ {
				if rowSpan > 1 {
					// The end-of-row pass below decrements this once for
					// the starting row, leaving rowSpan-1 later rows held.
					tracker.remaining[col+j] = rowSpan
					tracker.perRow[col+j] = perRowShare
				}
			}
			col += span
		}
		// Rows with no cell of their own in a spanned column must still
		// honor that column's owed per-row share (the deficit).
		for c := 0; c < numColumns; c++ {
			if tracker.remaining[c] > 0 {
				if tracker.perRow[c] > rowHeight {
					rowHeight = tracker.perRow[c]
				}
				tracker.remaining[c]--
			}
		}
		heights[r] = rowHeight
	}
	return heights
}

// AssignColumns computes, for each row, the starting column index of
// each of its cells, skipping columns still occupied by an earlier
// row's rowspan (spec §4.E). It steps the same rowspanTracker
// ResolveRowHeights uses so a renderer placing cells by these indices
// agrees with the heights ResolveRowHeights computed for the same rows.
func AssignColumns(numColumns int, rows [][]CellSpec) [][]int {
	tracker := newRowspanTracker(numColumns)
	assigned := make([][]int, len(rows))
	for r, cells := range rows {
		cols := make([]int, len(cells))
		col := 0
		for ci, cell := range cells {
			for col < numColumns && tracker.remaining[col] > 0 {
				col++
			}
			cols[ci] = col
			span := cell.ColumnSpan
			if span < 1 {
				span = 1
			}
			rowSpan := cell.RowSpan
			if rowSpan < 1 {
				rowSpan = 1
			}
			if rowSpan > 1 {
				for j := 0; j < span && col+j < numColumns; j++ {
					tracker.remaining[col+j] = rowSpan
				}
			}
			col += span
		}
		assigned[r] = cols
		for c := 0; c < numColumns; c++ {
			if tracker.remaining[c] > 0 {
				tracker.remaining[c]--
			}
		}
	}
	return assigned
}

// BorderSide is one edge's resolved border (spec §4.E border-collapse).
type BorderSide struct {
	WidthPt  float64
	Style    string // "none", "solid", "dashed", ... ordered by visual weight below
	ColorHex string
	Priority int // higher wins when collapsing (e.g. table-cell > table-row > table > default)
}

var styleWeight = map[string]int{
	"none": 0, "hidden": 100, "dotted": 1, "dashed": 2, "solid": 3,
	"double": 4, "groove": 5, "ridge": 5, "inset": 6, "outset": 6,
}

// WinningBorder implements the border-collapse winning-border rule
// (spec §4.E): "hidden" always wins; otherwise the widest border wins;
// ties go to the stronger style (per a fixed style-weight order); final
// ties go to the higher declaration priority (cell over row over
// column over table, matching CSS2.1 §17.6.2.1, which the teacher's
// border-collapse implementation does not have since HTML table
// border-collapse in the teacher's UA stylesheet is flat "border:
// 1px solid" with no adjacent-edge conflict resolution at all).
func WinningBorder(a, b BorderSide) BorderSide {
	if a.Style == "hidden" {
		return a
	}
	if b.Style == "hidden" {
		return b
	}
	if a.WidthPt != b.WidthPt {
		if a.WidthPt > b.WidthPt {
			return a
		}
		return b
	}
	wa, wb := styleWeight[a.Style], styleWeight[b.Style]
	if wa != wb {
		if wa > wb {
			return a
		}
		return b
	}
	if a.Priority >= b.Priority {
		return a
	}
	return b
}

// RepeatAcrossBreak reports whether a table-header/table-footer should
// be re-emitted on a continuation page (spec §4.E supplemented
// feature): true unless table-omit-header-at-break (or
// table-omit-footer-at-break) is set.
func RepeatAcrossBreak(omit bool) bool {
	return !omit
}
