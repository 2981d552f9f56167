// Package fo defines the formatting-object tree: the input data model
// for the layout core (spec §3.1). Nodes are produced by an adapter
// (internal/foxml) from XSL-FO XML; the core never parses XML itself.
package fo

// Name enumerates the qualified FO element names the core understands
// (spec §6.1). Unknown elements are skipped with a diagnostic by the
// adapter that builds the tree.
type Name string

const (
	Root                  Name = "root"
	LayoutMasterSet       Name = "layout-master-set"
	SimplePageMaster      Name = "simple-page-master"
	RegionBody            Name = "region-body"
	RegionBefore          Name = "region-before"
	RegionAfter           Name = "region-after"
	RegionStart           Name = "region-start"
	RegionEnd             Name = "region-end"
	PageSequence          Name = "page-sequence"
	Flow                  Name = "flow"
	StaticContent         Name = "static-content"
	Block                 Name = "block"
	BlockContainer        Name = "block-container"
	Inline                Name = "inline"
	InlineContainer       Name = "inline-container"
	Character             Name = "character"
	ExternalGraphic       Name = "external-graphic"
	InstreamForeignObject Name = "instream-foreign-object"
	BasicLink             Name = "basic-link"
	Leader                Name = "leader"
	PageNumber            Name = "page-number"
	PageNumberCitation    Name = "page-number-citation"
	Marker                Name = "marker"
	RetrieveMarker        Name = "retrieve-marker"
	Table                 Name = "table"
	TableColumn           Name = "table-column"
	TableHeader           Name = "table-header"
	TableFooter           Name = "table-footer"
	TableBody             Name = "table-body"
	TableRow              Name = "table-row"
	TableCell             Name = "table-cell"
	ListBlock             Name = "list-block"
	ListItem              Name = "list-item"
	ListItemLabel         Name = "list-item-label"
	ListItemBody          Name = "list-item-body"
	Float                 Name = "float"
	Footnote              Name = "footnote"
	FootnoteBody          Name = "footnote-body"
	BookmarkTree          Name = "bookmark-tree"
	Bookmark              Name = "bookmark"
	BookmarkTitle         Name = "bookmark-title"

	// TextNode is a synthetic name used for character-data children; it
	// has no attributes and carries its content in Node.Text.
	TextNode Name = "#text"
)

// Node is one element (or text run) of the formatting-object tree.
// Unlike a general XML DOM, Node carries only what the layout core
// needs: a name, attributes, text, children, and (after the property
// resolver runs) a ResolvedStyle.
type Node struct {
	Name     Name
	Attrs    map[string]string
	Text     string
	Children []*Node
	Parent   *Node

	Style *ResolvedStyle
}

// NewElement creates an element node with no attributes or children yet.
func NewElement(name Name) *Node {
	return &Node{Name: name, Attrs: map[string]string{}}
}

// NewText creates a text node.
func NewText(text string) *Node {
	return &Node{Name: TextNode, Text: text}
}

// Attr returns the named attribute, or "" if absent.
func (n *Node) Attr(key string) string {
	if n == nil || n.Attrs == nil {
		return ""
	}
	return n.Attrs[key]
}

// AppendChild appends child to n's children and wires its Parent pointer.
func (n *Node) AppendChild(child *Node) {
	child.Parent = n
	n.Children = append(n.Children, child)
}

// IsText reports whether n is a text node.
func (n *Node) IsText() bool { return n.Name == TextNode }

// Walk visits n and every descendant in document (pre-)order.
func Walk(n *Node, visit func(*Node)) {
	if n == nil {
		return
	}
	visit(n)
	for _, c := range n.Children {
		Walk(c, visit)
	}
}

// ChildrenNamed returns n's direct element children with the given name.
func (n *Node) ChildrenNamed(name Name) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// FirstChildNamed returns the first direct child with the given name, or nil.
func (n *Node) FirstChildNamed(name Name) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// AncestorNamed walks up from n (exclusive) looking for the nearest
// ancestor with the given name.
func (n *Node) AncestorNamed(name Name) *Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Name == name {
			return p
		}
	}
	return nil
}
