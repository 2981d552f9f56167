package pagination

import (
	"github.com/xsllayout/xsl-layout/internal/area"
	"github.com/xsllayout/xsl-layout/internal/fo"
)

// pageCursor places flowItems into successive pages of one
// page-sequence's master, honoring keeps/breaks, reserving space for
// footnotes, and placing floats in document order like any other flow
// item (spec §4.D.2-5). One pageCursor is reused across every page of a
// sequence so footnote/marker state carries forward correctly.
type pageCursor struct {
	f          *Formatter
	master     PageMaster
	seq        *fo.Node
	pendingFootnotes []*flowItem
}

func newPageCursor(f *Formatter, master PageMaster, seq *fo.Node) *pageCursor {
	return &pageCursor{f: f, master: master, seq: seq}
}

func (c *pageCursor) hasPendingFootnotes() bool { return len(c.pendingFootnotes) > 0 }

func (c *pageCursor) emptyPage(pageNumber int) *area.PageViewport {
	pv := area.NewPageViewport(c.f.genID("page"), area.Rect{Width: c.master.Width, Height: c.master.Height}, pageNumber)
	bx, by, bw, bh := c.master.BodyRect()
	pv.Regions = append(pv.Regions, area.NewRegionArea(c.f.genID("region"), "body", area.Rect{X: bx, Y: by, Width: bw, Height: bh}))
	return pv
}

// layoutOnePage consumes items from the front of the flow, placing as
// many whole flowItems as fit the region-body content rectangle (minus
// any footnote area reserved for citations encountered on this page),
// honoring keep-with-next, keep-together, and break-before/after="page".
// keep-with-previous is not consulted, and the other break values
// (column, even-page, odd-page) do not force a break. It returns the
// finished page and the items still left to place on subsequent pages.
func (c *pageCursor) layoutOnePage(items []*flowItem, pageNumber int) (*area.PageViewport, []*flowItem) {
	pv := area.NewPageViewport(c.f.genID("page"), area.Rect{Width: c.master.Width, Height: c.master.Height}, pageNumber)
	bx, by, bw, bh := c.master.BodyRect()

	var footnoteHeight float64
	var footnoteAreas []area.Area
	var placed []area.Area
	y := by
	prevAfterSpace := fo.SpaceQuadruple{}
	placedAny := false

	i := 0
	for i < len(items) {
		item := items[i]

		if item.capability == fo.CapFootnote {
			fa, h := c.layoutFootnote(item)
			footnoteAreas = append(footnoteAreas, fa)
			footnoteHeight += h
			i++
			continue
		}

		if item.breakBefore == "page" && placedAny {
			break
		}

		gap := collapseSpace(prevAfterSpace, item.spaceBefore)
		available := (by + bh - footnoteHeight) - y - gap

		needed := item.height
		if item.keepWithNext.Stronger(fo.KeepAuto) && i+1 < len(items) {
			needed += items[i+1].height
		}

		if needed > available && placedAny {
			// Not enough room: if keep-together forbids splitting (or the
			// block simply has no finer-grained line breakdown), defer the
			// whole item to the next page.
			if item.keepTogether.Stronger(fo.KeepAuto) || len(item.lines) == 0 {
				break
			}
			fit, rest := splitAtHeight(item, available)
			if fit == nil {
				break
			}
			placed = append(placed, blockToArea(c.f, fit, bx, y+gap, bw))
			y += gap + fit.height
			items[i] = rest
			prevAfterSpace = item.spaceAfter
			placedAny = true
			continue
		}

		placed = append(placed, blockToArea(c.f, item, bx, y+gap, bw))
		y += gap + item.height
		prevAfterSpace = item.spaceAfter
		placedAny = true
		c.recordMarkers(item, pageNumber)
		i++

		if item.breakAfter == "page" {
			break
		}
	}

	region := area.NewRegionArea(c.f.genID("region"), "body", area.Rect{X: bx, Y: by, Width: bw, Height: bh - footnoteHeight})
	region.Children = placed
	pv.Regions = append(pv.Regions, region)
	if len(footnoteAreas) > 0 {
		fnRegion := area.NewRegionArea(c.f.genID("region"), "footnote", area.Rect{X: bx, Y: by + bh - footnoteHeight, Width: bw, Height: footnoteHeight})
		fnRegion.Children = footnoteAreas
		pv.Regions = append(pv.Regions, fnRegion)
	}
	pv.Regions = append(pv.Regions, c.staticContentRegions(pageNumber)...)

	if !placedAny && i < len(items) {
		// A single item taller than the whole body: place it anyway,
		// overflowing, rather than loop forever (spec §7 degrade-gracefully).
		item := items[i]
		placed = append(placed, blockToArea(c.f, item, bx, y, bw))
		region.Children = placed
		i++
	}

	return pv, items[i:]
}

func (c *pageCursor) layoutFootnote(item *flowItem) (area.Area, float64) {
	a := blockToArea(c.f, item, 0, 0, 300)
	return a, item.height
}

// collapseSpace resolves adjoining space-after/space-before quadruples
// per spec §4.D.2: the winner is the higher-precedence value; among
// equal precedence, the larger optimum wins (a simplification of the
// full XSL 1.1 space-resolution rule set: min/max and conditionality
// are not considered).
func collapseSpace(after, before fo.SpaceQuadruple) float64 {
	if after.Precedence != before.Precedence {
		if after.Precedence > before.Precedence {
			return after.Opt
		}
		return before.Opt
	}
	if after.Opt > before.Opt {
		return after.Opt
	}
	return before.Opt
}

// splitAtHeight divides an oversized block at the nearest line boundary
// that fits within maxHeight, returning a flowItem for the part that
// fits and one for the remainder (spec §4.D.3 forced split when
// keep-together doesn't forbid it).
func splitAtHeight(item *flowItem, maxHeight float64) (*flowItem, *flowItem) {
	if len(item.lines) == 0 {
		return nil, item
	}
	var used float64
	var n int
	for n = 0; n < len(item.lines); n++ {
		if used+item.lines[n].height > maxHeight {
			break
		}
		used += item.lines[n].height
	}
	if n == 0 {
		return nil, item
	}
	fit := &flowItem{
		node: item.node, height: used, lines: item.lines[:n], capability: item.capability,
		lineWidth: item.lineWidth, fontFamily: item.fontFamily, fontSize: item.fontSize,
		textAlign: item.textAlign, textAlignLast: item.textAlignLast,
	}
	if n >= len(item.lines) {
		return fit, nil
	}
	rest := &flowItem{
		node: item.node, lines: item.lines[n:], capability: item.capability,
		keepWithNext: item.keepWithNext, breakAfter: item.breakAfter,
		lineWidth: item.lineWidth, fontFamily: item.fontFamily, fontSize: item.fontSize,
		textAlign: item.textAlign, textAlignLast: item.textAlignLast,
	}
	for _, ln := range rest.lines {
		rest.height += ln.height
	}
	return fit, rest
}

func blockToArea(f *Formatter, item *flowItem, x, y, width float64) area.Area {
	if item.capability == fo.CapImage {
		w := item.imageWidth
		if w <= 0 || w > width {
			w = width
		}
		return area.NewImageArea(f.genID("image"), item.imageSource, area.Rect{X: x, Y: y, Width: w, Height: item.height})
	}
	if item.table != nil {
		return tableToArea(f, item, x, y, width)
	}

	b := area.NewBlockArea(f.genID("block"), string(item.node.Name), area.Rect{X: x, Y: y, Width: width, Height: item.height})
	cy := y
	for i, ml := range item.lines {
		isLast := i == len(item.lines)-1
		la := renderLine(f, ml, x, cy, item, isLast)
		b.Children = append(b.Children, la)
		cy += ml.height
	}
	var prevAfter fo.SpaceQuadruple
	for _, sub := range item.children {
		gap := collapseSpace(prevAfter, sub.spaceBefore)
		cy += gap
		b.Children = append(b.Children, blockToArea(f, sub, x, cy, width))
		cy += sub.height
		prevAfter = sub.spaceAfter
	}
	return b
}

// staticContentRegions adds an empty region-before/after rectangle to
// each page when the master gives that region an extent and the
// page-sequence has a static-content flow with the matching flow-name
// (spec §4.D.1). The static content itself is not laid out into the
// region, so page-number and retrieve-marker content is not evaluated.
func (c *pageCursor) staticContentRegions(pageNumber int) []*area.RegionArea {
	var out []*area.RegionArea
	bx, by, bw, _ := c.master.BodyRect()
	if c.master.Before.Extent > 0 {
		if sc := c.findStaticContent("xsl-region-before"); sc != nil {
			r := area.NewRegionArea(c.f.genID("region"), "before", area.Rect{X: bx, Y: c.master.MarginTop, Width: bw, Height: c.master.Before.Extent})
			out = append(out, r)
		}
	}
	if c.master.After.Extent > 0 {
		if sc := c.findStaticContent("xsl-region-after"); sc != nil {
			r := area.NewRegionArea(c.f.genID("region"), "after", area.Rect{X: bx, Y: by + (c.master.Height - c.master.MarginTop - c.master.MarginBottom - c.master.Before.Extent - c.master.After.Extent), Width: bw, Height: c.master.After.Extent})
			out = append(out, r)
		}
	}
	return out
}

func (c *pageCursor) findStaticContent(flowName string) *fo.Node {
	for _, sc := range c.seq.ChildrenNamed(fo.StaticContent) {
		if sc.Attr("flow-name") == flowName {
			return sc
		}
	}
	return nil
}

func (c *pageCursor) recordMarkers(item *flowItem, pageNumber int) {
	if item.node.Name == fo.Marker {
		c.f.markers.record(pageNumber, item.node.Attr("marker-class-name"), item.node)
	}
	for _, child := range item.node.Children {
		if child.Name == fo.Marker {
			c.f.markers.record(pageNumber, child.Attr("marker-class-name"), child)
		}
	}
}
