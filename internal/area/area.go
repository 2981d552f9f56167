// Package area defines the area tree (spec §3.3, §6.3): the output
// data model produced by the page formatter. Unlike the teacher's Box
// tree (internal/layout/box.go), which is an intermediate structure
// consumed directly by its own PDF renderer, an AreaTree is the
// pipeline's actual deliverable — the spec is explicit that PDF
// serialization is a separate, out-of-scope concern.
package area

// Rect is an axis-aligned rectangle in points, origin top-left, X
// increasing right and Y increasing down (spec §3.3).
type Rect struct {
	X, Y, Width, Height float64
}

// Area is the common shape every area-tree node satisfies: a geometry
// rectangle plus a stable identity for cross-references (links,
// retrieved markers, debug output).
type Area interface {
	ID() string
	Bounds() Rect
	Kind() string
}

type base struct {
	IDValue string `json:"id"`
	Rect    Rect   `json:"bounds"`
}

func (b base) ID() string   { return b.IDValue }
func (b base) Bounds() Rect { return b.Rect }

// AreaTree is the complete output of one formatting run: one
// PageViewport per emitted page, in page order (spec §3.3).
type AreaTree struct {
	Pages []*PageViewport `json:"pages"`
}

// PageViewport is one page: its physical geometry plus the region
// areas carved out of it by the active simple-page-master (spec §4.D).
type PageViewport struct {
	base
	PageNumber   int          `json:"pageNumber"`
	Regions      []*RegionArea `json:"regions"`
}

func (p *PageViewport) Kind() string { return "page-viewport" }

// RegionArea is one region (body/before/after/start/end) of a page,
// containing the block areas flowed into it.
type RegionArea struct {
	base
	Name     string  `json:"name"` // "body", "before", "after", "start", "end"
	Children []Area  `json:"children"`
}

func (r *RegionArea) Kind() string { return "region" }

// BlockArea is a block-level formatting result: a block/block-container/
// list-item/table/float/footnote area, carrying its own padding/border/
// background and a list of child areas (nested blocks, lines, tables).
type BlockArea struct {
	base
	SourceElement string         `json:"sourceElement"`
	MarginTop     float64        `json:"marginTop,omitempty"`
	MarginBottom  float64        `json:"marginBottom,omitempty"`
	PaddingTop    float64        `json:"paddingTop,omitempty"`
	PaddingRight  float64        `json:"paddingRight,omitempty"`
	PaddingBottom float64        `json:"paddingBottom,omitempty"`
	PaddingLeft   float64        `json:"paddingLeft,omitempty"`
	BorderTop     float64        `json:"borderTop,omitempty"`
	BackgroundHex string         `json:"backgroundHex,omitempty"`
	Children      []Area         `json:"children"`
}

func (b *BlockArea) Kind() string { return "block" }

// LineArea is one line box produced by the paragraph formatter,
// carrying the chosen adjustment ratio (spec §4.C) for diagnostics.
type LineArea struct {
	base
	Ratio    float64 `json:"ratio"`
	Children []Area  `json:"children"` // InlineArea children
}

func (l *LineArea) Kind() string { return "line" }

// InlineArea is a run of text (or an inline-level replaced element) laid
// out on a single line.
type InlineArea struct {
	base
	Text        string  `json:"text,omitempty"`
	FontFamily  string  `json:"fontFamily,omitempty"`
	FontSize    float64 `json:"fontSize,omitempty"`
	Hyphenated  bool    `json:"hyphenated,omitempty"`
	WordSpacing float64 `json:"wordSpacing,omitempty"` // justification increment trailing this run (spec §4.C.5)
}

func (i *InlineArea) Kind() string { return "inline" }

// ImageArea is a placed external-graphic or instream-foreign-object.
type ImageArea struct {
	base
	Source string `json:"source"`
}

func (i *ImageArea) Kind() string { return "image" }

// FloatArea is block content displaced to the start/end/before edge of
// its reference area by an fo:float (spec §4.D.4).
type FloatArea struct {
	base
	Side     string `json:"side"`
	Children []Area `json:"children"`
}

func (f *FloatArea) Kind() string { return "float" }

// LinkArea wraps a subtree that originated from fo:basic-link, carrying
// the link destination for downstream PDF annotation generation (out of
// this pipeline's scope, but the destination must survive to the
// boundary).
type LinkArea struct {
	base
	Destination string `json:"destination"`
	Children    []Area `json:"children"`
}

func (l *LinkArea) Kind() string { return "link" }

// AbsolutePositionedArea is an fo:block-container with
// absolute-position="absolute"|"fixed", placed at an explicit offset
// rather than flowed (spec §4.D.4).
type AbsolutePositionedArea struct {
	base
	Fixed    bool   `json:"fixed"`
	Children []Area `json:"children"`
}

func (a *AbsolutePositionedArea) Kind() string { return "absolute" }

// TableArea, TableRowArea and TableCellArea are produced by component E
// (spec §4.E). A TableArea is placed directly among its parent's
// children (a region or a BlockArea), not wrapped in a BlockArea.
type TableArea struct {
	base
	ColumnWidths []float64        `json:"columnWidths"`
	Header       []*TableRowArea  `json:"header,omitempty"`
	Footer       []*TableRowArea  `json:"footer,omitempty"`
	Body         []*TableRowArea  `json:"body"`
}

func (t *TableArea) Kind() string { return "table" }

type TableRowArea struct {
	base
	Cells []*TableCellArea `json:"cells"`
}

func (r *TableRowArea) Kind() string { return "table-row" }

type TableCellArea struct {
	base
	ColumnSpan int    `json:"columnSpan"`
	RowSpan    int    `json:"rowSpan"`
	Children   []Area `json:"children"`
}

func (c *TableCellArea) Kind() string { return "table-cell" }

// New constructors set the embedded base fields.
func NewPageViewport(id string, bounds Rect, pageNumber int) *PageViewport {
	return &PageViewport{base: base{IDValue: id, Rect: bounds}, PageNumber: pageNumber}
}

func NewRegionArea(id, name string, bounds Rect) *RegionArea {
	return &RegionArea{base: base{IDValue: id, Rect: bounds}, Name: name}
}

func NewBlockArea(id, sourceElement string, bounds Rect) *BlockArea {
	return &BlockArea{base: base{IDValue: id, Rect: bounds}, SourceElement: sourceElement}
}

func NewLineArea(id string, bounds Rect, ratio float64) *LineArea {
	return &LineArea{base: base{IDValue: id, Rect: bounds}, Ratio: ratio}
}

func NewInlineArea(id string, bounds Rect, text string) *InlineArea {
	return &InlineArea{base: base{IDValue: id, Rect: bounds}, Text: text}
}

func NewTableArea(id string, bounds Rect, columnWidths []float64) *TableArea {
	return &TableArea{base: base{IDValue: id, Rect: bounds}, ColumnWidths: columnWidths}
}

func NewTableRowArea(id string, bounds Rect) *TableRowArea {
	return &TableRowArea{base: base{IDValue: id, Rect: bounds}}
}

func NewImageArea(id, source string, bounds Rect) *ImageArea {
	return &ImageArea{base: base{IDValue: id, Rect: bounds}, Source: source}
}

func NewTableCellArea(id string, bounds Rect, colSpan, rowSpan int) *TableCellArea {
	return &TableCellArea{base: base{IDValue: id, Rect: bounds}, ColumnSpan: colSpan, RowSpan: rowSpan}
}
