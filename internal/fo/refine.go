package fo

import (
	"github.com/xsllayout/xsl-layout/internal/diag"
)

// Capability tags the layout-manager shell a node is dispatched to by
// the page/paragraph formatters (spec §4.B "layout-manager capability
// tagging"). Assigned once during refinement, read-only thereafter.
type Capability int

const (
	CapBlock Capability = iota
	CapInline
	CapTable
	CapImage
	CapFloat
	CapFootnote
	CapMarker
	CapListItem
	CapOpaque // structural nodes (flow, page-sequence, ...) with no area of their own
)

var capabilityByName = map[Name]Capability{
	Block:                 CapBlock,
	BlockContainer:        CapBlock,
	ListItem:              CapListItem,
	ListItemBody:          CapBlock,
	ListItemLabel:         CapBlock,
	Inline:                CapInline,
	InlineContainer:       CapInline,
	Character:             CapInline,
	BasicLink:             CapInline,
	Leader:                CapInline,
	PageNumber:            CapInline,
	PageNumberCitation:    CapInline,
	ExternalGraphic:       CapImage,
	InstreamForeignObject: CapImage,
	Table:                 CapTable,
	TableHeader:           CapTable,
	TableFooter:           CapTable,
	TableBody:             CapTable,
	TableRow:              CapTable,
	TableCell:             CapTable,
	TableColumn:           CapTable,
	Float:                 CapFloat,
	Footnote:              CapFootnote,
	FootnoteBody:          CapBlock,
	Marker:                CapMarker,
	RetrieveMarker:        CapMarker,
}

// CapabilityOf returns the layout-manager shell for a node's element
// name, defaulting to CapOpaque for purely structural elements (root,
// layout-master-set, simple-page-master, region-*, page-sequence, flow,
// static-content, list-block, bookmark-tree, bookmark, bookmark-title).
func CapabilityOf(n *Node) Capability {
	if n.IsText() {
		return CapInline
	}
	if c, ok := capabilityByName[n.Name]; ok {
		return c
	}
	return CapOpaque
}

// Refine walks the tree performing component-B structural validation
// (spec §4.B): table-row must be inside a table-body/header/footer,
// table-cell inside a table-row, retrieve-marker is only meaningful
// inside static-content, list-item-body/label only inside list-item.
// Violations are recoverable: a diagnostic is recorded and the node is
// kept in place for the layout managers to skip or degrade gracefully.
func Refine(root *Node, sink *diag.Sink) {
	Walk(root, func(n *Node) {
		validateStructure(n, sink)
	})
}

func validateStructure(n *Node, sink *diag.Sink) {
	switch n.Name {
	case TableRow:
		if p := n.Parent; p == nil || (p.Name != TableBody && p.Name != TableHeader && p.Name != TableFooter) {
			sink.Warn("table-row outside table-body/header/footer", map[string]string{"element": string(n.Name)})
		}
	case TableCell:
		if p := n.Parent; p == nil || p.Name != TableRow {
			sink.Warn("table-cell outside table-row", map[string]string{"element": string(n.Name)})
		}
	case ListItemBody, ListItemLabel:
		if p := n.Parent; p == nil || p.Name != ListItem {
			sink.Warn("list-item-body/label outside list-item", map[string]string{"element": string(n.Name)})
		}
	case RetrieveMarker:
		if n.AncestorNamed(StaticContent) == nil {
			sink.Warn("retrieve-marker used outside static-content", map[string]string{"element": string(n.Name)})
		}
	case Marker:
		if n.Parent == nil || CapabilityOf(n.Parent) != CapBlock {
			sink.Warn("marker used outside a block-level formatting object", map[string]string{"element": string(n.Name)})
		}
	}
}
