// Package foxml adapts XSL-FO XML documents into internal/fo.Node
// trees. XML parsing itself is explicitly out of the layout core's
// scope (spec §1 Non-goals); this package is the outer boundary that
// owns that concern, mirroring the way the teacher keeps its own XML
// concern (internal/parser/html, backed by golang.org/x/net/html) in a
// dedicated adapter package that the layout engine never imports
// directly. This adapter uses github.com/beevik/etree instead, since
// XSL-FO is plain well-formed XML (no HTML5 tree-construction quirks to
// handle) and etree's simpler DOM is a closer fit.
package foxml

import (
	"io"
	"strings"

	"github.com/beevik/etree"

	"github.com/xsllayout/xsl-layout/internal/diag"
	"github.com/xsllayout/xsl-layout/internal/fo"
)

// elementNames maps an XML local name to the fo.Name it denotes.
// Elements outside this set are skipped with a diagnostic (spec §6.1
// "Unknown elements are skipped with a diagnostic").
var elementNames = map[string]fo.Name{
	"root":                     fo.Root,
	"layout-master-set":        fo.LayoutMasterSet,
	"simple-page-master":       fo.SimplePageMaster,
	"region-body":              fo.RegionBody,
	"region-before":            fo.RegionBefore,
	"region-after":             fo.RegionAfter,
	"region-start":             fo.RegionStart,
	"region-end":                fo.RegionEnd,
	"page-sequence":            fo.PageSequence,
	"flow":                     fo.Flow,
	"static-content":           fo.StaticContent,
	"block":                    fo.Block,
	"block-container":          fo.BlockContainer,
	"inline":                   fo.Inline,
	"inline-container":         fo.InlineContainer,
	"character":                fo.Character,
	"external-graphic":         fo.ExternalGraphic,
	"instream-foreign-object":  fo.InstreamForeignObject,
	"basic-link":               fo.BasicLink,
	"leader":                   fo.Leader,
	"page-number":              fo.PageNumber,
	"page-number-citation":     fo.PageNumberCitation,
	"marker":                   fo.Marker,
	"retrieve-marker":          fo.RetrieveMarker,
	"table":                    fo.Table,
	"table-column":             fo.TableColumn,
	"table-header":             fo.TableHeader,
	"table-footer":             fo.TableFooter,
	"table-body":               fo.TableBody,
	"table-row":                fo.TableRow,
	"table-cell":               fo.TableCell,
	"list-block":               fo.ListBlock,
	"list-item":                fo.ListItem,
	"list-item-label":          fo.ListItemLabel,
	"list-item-body":           fo.ListItemBody,
	"float":                    fo.Float,
	"footnote":                 fo.Footnote,
	"footnote-body":            fo.FootnoteBody,
	"bookmark-tree":            fo.BookmarkTree,
	"bookmark":                 fo.Bookmark,
	"bookmark-title":           fo.BookmarkTitle,
}

// Parse reads an XSL-FO document from r and returns its root fo:root
// node. A malformed document (not well-formed XML, or missing the
// fo:root element) is a fatal InvalidDocument Failure (spec §7); an
// unrecognized descendant element is a recoverable diagnostic and is
// simply omitted from the tree.
func Parse(r io.Reader, sink *diag.Sink) (*fo.Node, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, diag.Fatal(diag.InvalidDocument, "malformed XML: %v", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, diag.Fatal(diag.InvalidDocument, "document has no root element")
	}
	if localName(root.Tag) != "root" {
		return nil, diag.Fatal(diag.InvalidDocument, "root element is %q, expected fo:root", root.Tag)
	}
	return convertElement(root, sink), nil
}

// ParseString is a convenience wrapper around Parse for tests and the
// CLI's inline-document path.
func ParseString(content string, sink *diag.Sink) (*fo.Node, error) {
	return Parse(strings.NewReader(content), sink)
}

func localName(tag string) string {
	if i := strings.IndexByte(tag, ':'); i >= 0 {
		return tag[i+1:]
	}
	return tag
}

func convertElement(el *etree.Element, sink *diag.Sink) *fo.Node {
	name, ok := elementNames[localName(el.Tag)]
	if !ok {
		// Only reachable for the root element, whose tag Parse already
		// validated as "root" before calling here.
		name = fo.Root
	}
	n := fo.NewElement(name)
	for _, attr := range el.Attr {
		n.Attrs[localName(attr.Key)] = attr.Value
	}
	convertChildren(el, n, sink)
	return n
}

func convertChildren(el *etree.Element, parent *fo.Node, sink *diag.Sink) {
	// fo:instream-foreign-object wraps content from a foreign namespace
	// (typically SVG) that isn't part of the FO vocabulary at all; rather
	// than walk it as unrecognized FO elements (which would drop every
	// byte of it as "unknown element skipped"), its children are kept
	// verbatim as serialized markup for internal/svgconv to parse.
	if parent.Name == fo.InstreamForeignObject {
		if markup := serializeForeignContent(el, sink); markup != "" {
			parent.AppendChild(fo.NewText(markup))
		}
		return
	}
	for _, child := range el.Child {
		switch c := child.(type) {
		case *etree.Element:
			name, ok := elementNames[localName(c.Tag)]
			if !ok {
				sink.Warn("unknown element skipped", map[string]string{"element": c.Tag})
				continue
			}
			childNode := fo.NewElement(name)
			for _, attr := range c.Attr {
				childNode.Attrs[localName(attr.Key)] = attr.Value
			}
			parent.AppendChild(childNode)
			convertChildren(c, childNode, sink)
		case *etree.CharData:
			text := c.Data
			if strings.TrimSpace(text) == "" {
				continue
			}
			parent.AppendChild(fo.NewText(text))
		}
	}
}

// serializeForeignContent re-serializes el's element children (the
// foreign-namespace markup nested under fo:instream-foreign-object,
// e.g. an <svg> root) back to XML text, since etree has already parsed
// it into a DOM that internal/svgconv's own parser can't consume
// directly.
func serializeForeignContent(el *etree.Element, sink *diag.Sink) string {
	var b strings.Builder
	for _, child := range el.Child {
		ce, ok := child.(*etree.Element)
		if !ok {
			continue
		}
		doc := etree.NewDocument()
		doc.SetRoot(ce.Copy())
		s, err := doc.WriteToString()
		if err != nil {
			sink.Warn("could not serialize instream-foreign-object content", map[string]string{"error": err.Error()})
			continue
		}
		b.WriteString(s)
	}
	return b.String()
}
