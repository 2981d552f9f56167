// Package pagination implements component D (the page formatter, spec
// §4.D): page-master instantiation, per-region content-rectangle
// tracking, keep/break-aware block placement with float and footnote
// reservation, and the marker registry backing retrieve-marker. This
// replaces the teacher's internal/pagination wholesale — its Paginate
// buckets pre-positioned boxes by absolute Y coordinate and has no
// concept of keep-together, forced breaks, floats, footnotes or markers
// at all. Here Formatter (formatter.go) is the entry point and
// pageCursor (cursor.go) places content page by page.
package pagination

import (
	"strconv"
	"strings"

	"github.com/xsllayout/xsl-layout/internal/diag"
	"github.com/xsllayout/xsl-layout/internal/fo"
)

// RegionMaster is one instantiated region of a simple-page-master:
// body, before, after, start, or end (spec §4.D.1).
type RegionMaster struct {
	Name   string // "body", "before", "after", "start", "end"
	Extent float64
}

// PageMaster is a resolved simple-page-master: physical page size plus
// the margins and region extents that carve it into region rectangles.
type PageMaster struct {
	MasterName string
	Width      float64
	Height     float64
	MarginTop, MarginRight, MarginBottom, MarginLeft float64
	Before, After, Start, End RegionMaster
}

// BodyRect returns the content rectangle available to region-body,
// inset by the page margins and by the before/after/start/end region
// extents (spec §4.D.1 "region geometry").
func (m PageMaster) BodyRect() (x, y, w, h float64) {
	x = m.MarginLeft + m.Start.Extent
	y = m.MarginTop + m.Before.Extent
	w = m.Width - m.MarginLeft - m.MarginRight - m.Start.Extent - m.End.Extent
	h = m.Height - m.MarginTop - m.MarginBottom - m.Before.Extent - m.After.Extent
	return
}

// ParsePageMasters reads every fo:simple-page-master under
// layout-master-set into a lookup by master-name (spec §4.D.1). Page
// sequence masters (alternating/repeating master references) are not
// supported: a page-sequence naming one is a recoverable diagnostic,
// and Formatter falls back to the first usable simple-page-master in
// document order.
func ParsePageMasters(root *fo.Node, sink *diag.Sink) map[string]PageMaster {
	out := map[string]PageMaster{}
	lms := root.FirstChildNamed(fo.LayoutMasterSet)
	if lms == nil {
		sink.Warn("missing layout-master-set", nil)
		return out
	}
	for _, spm := range lms.ChildrenNamed(fo.SimplePageMaster) {
		pm := PageMaster{
			MasterName:   spm.Attr("master-name"),
			Width:        lengthAttr(spm, "page-width", 595.28),
			Height:       lengthAttr(spm, "page-height", 841.89),
			MarginTop:    lengthAttr(spm, "margin-top", 72),
			MarginRight:  lengthAttr(spm, "margin-right", 72),
			MarginBottom: lengthAttr(spm, "margin-bottom", 72),
			MarginLeft:   lengthAttr(spm, "margin-left", 72),
		}
		if rb := spm.FirstChildNamed(fo.RegionBefore); rb != nil {
			pm.Before = RegionMaster{Name: "before", Extent: lengthAttr(rb, "extent", 0)}
		}
		if ra := spm.FirstChildNamed(fo.RegionAfter); ra != nil {
			pm.After = RegionMaster{Name: "after", Extent: lengthAttr(ra, "extent", 0)}
		}
		if rs := spm.FirstChildNamed(fo.RegionStart); rs != nil {
			pm.Start = RegionMaster{Name: "start", Extent: lengthAttr(rs, "extent", 0)}
		}
		if re := spm.FirstChildNamed(fo.RegionEnd); re != nil {
			pm.End = RegionMaster{Name: "end", Extent: lengthAttr(re, "extent", 0)}
		}
		if pm.MasterName == "" {
			sink.Warn("simple-page-master missing master-name", nil)
			continue
		}
		out[pm.MasterName] = pm
	}
	return out
}

func lengthAttr(n *fo.Node, attr string, def float64) float64 {
	raw := strings.TrimSpace(n.Attr(attr))
	if raw == "" {
		return def
	}
	raw = strings.TrimSuffix(raw, "pt")
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		return v
	}
	return def
}
