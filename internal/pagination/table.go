package pagination

import (
	"strconv"
	"strings"

	"github.com/xsllayout/xsl-layout/internal/fo"
	"github.com/xsllayout/xsl-layout/internal/table"
)

// tableLayout is the measured form of one fo:table (spec §4.E),
// carrying resolved column widths and the per-section row layouts the
// page formatter places as a TableArea.
type tableLayout struct {
	columnWidths      []float64
	header            tableSection
	body              tableSection
	footer            tableSection
	omitHeaderAtBreak bool
	omitFooterAtBreak bool
}

type tableSection struct {
	rows []tableRowLayout
}

type tableRowLayout struct {
	height float64
	cells  []tableCellLayout
}

type tableCellLayout struct {
	col, colSpan, rowSpan int
	height                float64
	children              []*flowItem
}

// fillTableItem measures an fo:table against contentWidth, resolving
// column widths and row heights via internal/table and recursively
// measuring each cell's content at its resolved column width (spec
// §4.E). Cross-page row splitting and header/footer repetition are not
// implemented: an oversized table is deferred whole to the next page
// like any other keep-together block (documented in DESIGN.md).
func (f *Formatter) fillTableItem(n *fo.Node, st *fo.ResolvedStyle, item *flowItem, depth int, contentWidth float64) {
	item.capability = fo.CapTable

	cols := f.tableColumnSpecs(n)
	numColumns := len(cols)
	if numColumns == 0 {
		numColumns = countTableColumns(n)
		cols = make([]table.ColumnSpec, numColumns)
		for i := range cols {
			cols[i] = table.ColumnSpec{Kind: table.ColumnAuto}
		}
	}

	fontSize := st.Length(fo.PropFontSize, 12)
	autoWidths := f.estimateAutoColumnWidths(n, numColumns, fontSize)
	widths := table.ResolveColumnWidths(cols, contentWidth, autoWidths)

	layout := &tableLayout{
		columnWidths:      widths,
		omitHeaderAtBreak: st.Keyword(fo.PropTableOmitHeaderAtBreak, "false") == "true",
	}
	layout.header = f.measureTableSection(n.FirstChildNamed(fo.TableHeader), widths, numColumns, depth)
	layout.body = f.measureTableSection(n.FirstChildNamed(fo.TableBody), widths, numColumns, depth)
	layout.footer = f.measureTableSection(n.FirstChildNamed(fo.TableFooter), widths, numColumns, depth)

	item.table = layout
	for _, sec := range []tableSection{layout.header, layout.body, layout.footer} {
		for _, r := range sec.rows {
			item.height += r.height
		}
	}
}

func (f *Formatter) measureTableSection(sectionNode *fo.Node, widths []float64, numColumns, depth int) tableSection {
	if sectionNode == nil {
		return tableSection{}
	}
	rowNodes := sectionNode.ChildrenNamed(fo.TableRow)
	specs := make([][]table.CellSpec, len(rowNodes))
	children := make([][][]*flowItem, len(rowNodes))

	for r, rowNode := range rowNodes {
		cellNodes := rowNode.ChildrenNamed(fo.TableCell)
		specs[r] = make([]table.CellSpec, len(cellNodes))
		children[r] = make([][]*flowItem, len(cellNodes))
		for ci, cellNode := range cellNodes {
			specs[r][ci] = table.CellSpec{
				ColumnSpan: intAttr(cellNode, "number-columns-spanned", 1),
				RowSpan:    intAttr(cellNode, "number-rows-spanned", 1),
			}
		}
	}

	assignedCols := table.AssignColumns(numColumns, specs)

	for r, rowNode := range rowNodes {
		cellNodes := rowNode.ChildrenNamed(fo.TableCell)
		for ci, cellNode := range cellNodes {
			col := assignedCols[r][ci]
			span := maxInt(specs[r][ci].ColumnSpan, 1)
			cellWidth := sumWidths(widths, col, span)

			cellChildren := f.buildFlowItems(cellNode, depth+1, cellWidth)
			var h float64
			var prevAfter fo.SpaceQuadruple
			for _, c := range cellChildren {
				h += collapseSpace(prevAfter, c.spaceBefore) + c.height
				prevAfter = c.spaceAfter
			}
			specs[r][ci].ContentHeight = h
			children[r][ci] = cellChildren
		}
	}

	heights := table.ResolveRowHeights(numColumns, specs)

	sec := tableSection{rows: make([]tableRowLayout, len(rowNodes))}
	for r := range rowNodes {
		row := tableRowLayout{height: heights[r]}
		for ci, spec := range specs[r] {
			row.cells = append(row.cells, tableCellLayout{
				col:      assignedCols[r][ci],
				colSpan:  maxInt(spec.ColumnSpan, 1),
				rowSpan:  maxInt(spec.RowSpan, 1),
				height:   heights[r],
				children: children[r][ci],
			})
		}
		sec.rows[r] = row
	}
	return sec
}

// tableColumnSpecs reads every fo:table-column child (spec §4.E),
// expanding number-columns-repeated into that many identical specs.
func (f *Formatter) tableColumnSpecs(n *fo.Node) []table.ColumnSpec {
	var specs []table.ColumnSpec
	for _, col := range n.ChildrenNamed(fo.TableColumn) {
		repeat := intAttr(col, "number-columns-repeated", 1)
		if repeat < 1 {
			repeat = 1
		}
		fontSize := 12.0
		if col.Style != nil {
			fontSize = col.Style.Length(fo.PropFontSize, 12)
		}
		raw := col.Attr("column-width")
		spec := table.ParseColumnWidth(raw, func(s string) (float64, bool) {
			return resolveSimpleLength(s, fontSize)
		})
		for i := 0; i < repeat; i++ {
			specs = append(specs, spec)
		}
	}
	return specs
}

// countTableColumns falls back to the widest row (by column-span sum)
// when a table declares no fo:table-column children at all.
func countTableColumns(n *fo.Node) int {
	max := 0
	for _, secName := range []fo.Name{fo.TableHeader, fo.TableBody, fo.TableFooter} {
		sec := n.FirstChildNamed(secName)
		if sec == nil {
			continue
		}
		for _, row := range sec.ChildrenNamed(fo.TableRow) {
			count := 0
			for _, cell := range row.ChildrenNamed(fo.TableCell) {
				count += maxInt(intAttr(cell, "number-columns-spanned", 1), 1)
			}
			if count > max {
				max = count
			}
		}
	}
	if max == 0 {
		max = 1
	}
	return max
}

// estimateAutoColumnWidths dry-runs a single-line width measurement of
// every unspanned cell assigned to each column, giving
// table.ResolveColumnWidths a content-driven estimate for "auto"
// columns (spec §4.E "auto resolution uses a measurement pass").
// Spanned cells are not attributed to any one column, a simplification
// documented in DESIGN.md.
func (f *Formatter) estimateAutoColumnWidths(n *fo.Node, numColumns int, fontSize float64) []float64 {
	widths := make([]float64, numColumns)
	for _, secName := range []fo.Name{fo.TableHeader, fo.TableBody, fo.TableFooter} {
		sec := n.FirstChildNamed(secName)
		if sec == nil {
			continue
		}
		for _, row := range sec.ChildrenNamed(fo.TableRow) {
			col := 0
			for _, cell := range row.ChildrenNamed(fo.TableCell) {
				span := maxInt(intAttr(cell, "number-columns-spanned", 1), 1)
				if span == 1 && col < numColumns {
					w := f.metrics.MeasureWidth(collectAllText(cell), "Helvetica", fontSize, false, false)
					if w > widths[col] {
						widths[col] = w
					}
				}
				col += span
			}
		}
	}
	return widths
}

func collectAllText(n *fo.Node) string {
	var b strings.Builder
	fo.Walk(n, func(c *fo.Node) {
		if c.IsText() {
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(c.Text)
		}
	})
	return b.String()
}

func intAttr(n *fo.Node, attr string, def int) int {
	raw := strings.TrimSpace(n.Attr(attr))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

// resolveSimpleLength parses a bare XSL-FO length (pt/mm/cm/in/px/em),
// mirroring internal/style's unit table without depending on that
// package's unexported resolver: table.ParseColumnWidth takes a
// resolveLength callback precisely so internal/table never has to
// import internal/style, and internal/style's own parser is
// package-private, so this is a small, deliberately narrow duplicate
// kept local to table-column parsing.
func resolveSimpleLength(raw string, fontSize float64) (float64, bool) {
	raw = strings.TrimSpace(raw)
	units := []struct {
		suffix string
		factor float64
	}{
		{"pt", 1}, {"mm", 72.0 / 25.4}, {"cm", 72.0 / 2.54}, {"in", 72}, {"px", 0.75}, {"em", fontSize},
	}
	for _, u := range units {
		if strings.HasSuffix(raw, u.suffix) {
			n, err := strconv.ParseFloat(strings.TrimSuffix(raw, u.suffix), 64)
			if err == nil {
				return n * u.factor, true
			}
		}
	}
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return n, true
	}
	return 0, false
}

func sumWidths(widths []float64, start, span int) float64 {
	var total float64
	for i := start; i < start+span && i < len(widths); i++ {
		total += widths[i]
	}
	return total
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
