package pagination

import (
	"github.com/xsllayout/xsl-layout/internal/area"
	"github.com/xsllayout/xsl-layout/internal/fo"
)

// tableToArea renders a measured fo:table into a TableArea subtree
// (spec §4.E), stacking header then body then footer rows top to
// bottom and placing each cell at its assigned column's x-offset and
// span-summed width.
func tableToArea(f *Formatter, item *flowItem, x, y, width float64) area.Area {
	t := item.table
	ta := area.NewTableArea(f.genID("table"), area.Rect{X: x, Y: y, Width: width, Height: item.height}, t.columnWidths)
	cursorY := y
	ta.Header = renderTableSection(f, t.header, t.columnWidths, x, &cursorY)
	ta.Body = renderTableSection(f, t.body, t.columnWidths, x, &cursorY)
	ta.Footer = renderTableSection(f, t.footer, t.columnWidths, x, &cursorY)
	return ta
}

func renderTableSection(f *Formatter, sec tableSection, widths []float64, x float64, y *float64) []*area.TableRowArea {
	var rows []*area.TableRowArea
	rowWidth := sumWidths(widths, 0, len(widths))
	for _, row := range sec.rows {
		rowY := *y
		ra := area.NewTableRowArea(f.genID("table-row"), area.Rect{X: x, Y: rowY, Width: rowWidth, Height: row.height})
		for _, cell := range row.cells {
			cellX := x + sumWidths(widths, 0, cell.col)
			cellWidth := sumWidths(widths, cell.col, cell.colSpan)
			ca := area.NewTableCellArea(f.genID("table-cell"), area.Rect{X: cellX, Y: rowY, Width: cellWidth, Height: row.height}, cell.colSpan, cell.rowSpan)
			ca.Children = renderCellChildren(f, cell.children, cellX, rowY, cellWidth)
			ra.Cells = append(ra.Cells, ca)
		}
		rows = append(rows, ra)
		*y += row.height
	}
	return rows
}

func renderCellChildren(f *Formatter, children []*flowItem, x, y, width float64) []area.Area {
	var out []area.Area
	cy := y
	var prevAfter fo.SpaceQuadruple
	for _, c := range children {
		cy += collapseSpace(prevAfter, c.spaceBefore)
		out = append(out, blockToArea(f, c, x, cy, width))
		cy += c.height
		prevAfter = c.spaceAfter
	}
	return out
}
