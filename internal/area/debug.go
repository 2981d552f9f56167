package area

import (
	"encoding/json"
	"math"
)

// DetailLevel controls how much of an area's state the debug serializer
// emits (spec §6.3): geometry-only for diffing bounding boxes across
// runs, +spacing to also see margin/padding/border, full for everything
// including text content and font metadata.
type DetailLevel int

const (
	DetailGeometry DetailLevel = iota
	DetailSpacing
	DetailFull
)

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

func rectJSON(r Rect) map[string]any {
	return map[string]any{
		"x": round2(r.X), "y": round2(r.Y), "w": round2(r.Width), "h": round2(r.Height),
	}
}

// ToDebugJSON renders an AreaTree to the spec §6.3 debug JSON format: a
// stable, depth-filtered tree suitable for golden-file regression
// testing (see this package's goldie-based debug_test.go).
func ToDebugJSON(tree *AreaTree, level DetailLevel) ([]byte, error) {
	pages := make([]map[string]any, 0, len(tree.Pages))
	for _, p := range tree.Pages {
		pages = append(pages, pageToMap(p, level))
	}
	return json.MarshalIndent(map[string]any{"pages": pages}, "", "  ")
}

func pageToMap(p *PageViewport, level DetailLevel) map[string]any {
	regions := make([]map[string]any, 0, len(p.Regions))
	for _, r := range p.Regions {
		regions = append(regions, regionToMap(r, level))
	}
	m := map[string]any{
		"kind":       "page-viewport",
		"id":         p.ID(),
		"pageNumber": p.PageNumber,
		"bounds":     rectJSON(p.Bounds()),
		"regions":    regions,
	}
	return m
}

func regionToMap(r *RegionArea, level DetailLevel) map[string]any {
	children := make([]map[string]any, 0, len(r.Children))
	for _, c := range r.Children {
		children = append(children, areaToMap(c, level))
	}
	return map[string]any{
		"kind":     "region",
		"id":       r.ID(),
		"name":     r.Name,
		"bounds":   rectJSON(r.Bounds()),
		"children": children,
	}
}

// areaToMap dispatches on the concrete area type, since the area tree
// is a closed set of node kinds (spec §3.3) rather than an open
// polymorphic hierarchy.
func areaToMap(a Area, level DetailLevel) map[string]any {
	switch v := a.(type) {
	case *BlockArea:
		m := map[string]any{"kind": "block", "id": v.ID(), "bounds": rectJSON(v.Bounds()), "sourceElement": v.SourceElement}
		if level >= DetailSpacing {
			m["marginTop"] = round2(v.MarginTop)
			m["marginBottom"] = round2(v.MarginBottom)
			m["paddingTop"] = round2(v.PaddingTop)
			m["paddingRight"] = round2(v.PaddingRight)
			m["paddingBottom"] = round2(v.PaddingBottom)
			m["paddingLeft"] = round2(v.PaddingLeft)
			m["borderTop"] = round2(v.BorderTop)
		}
		if level >= DetailFull && v.BackgroundHex != "" {
			m["backgroundHex"] = v.BackgroundHex
		}
		m["children"] = mapChildren(v.Children, level)
		return m
	case *LineArea:
		m := map[string]any{"kind": "line", "id": v.ID(), "bounds": rectJSON(v.Bounds())}
		if level >= DetailSpacing {
			m["ratio"] = round2(v.Ratio)
		}
		m["children"] = mapChildren(v.Children, level)
		return m
	case *InlineArea:
		m := map[string]any{"kind": "inline", "id": v.ID(), "bounds": rectJSON(v.Bounds())}
		if level >= DetailFull {
			m["text"] = v.Text
			m["fontFamily"] = v.FontFamily
			m["fontSize"] = round2(v.FontSize)
			m["hyphenated"] = v.Hyphenated
			m["wordSpacing"] = round2(v.WordSpacing)
		}
		return m
	case *ImageArea:
		m := map[string]any{"kind": "image", "id": v.ID(), "bounds": rectJSON(v.Bounds())}
		if level >= DetailFull {
			m["source"] = v.Source
		}
		return m
	case *FloatArea:
		return map[string]any{"kind": "float", "id": v.ID(), "side": v.Side, "bounds": rectJSON(v.Bounds()), "children": mapChildren(v.Children, level)}
	case *LinkArea:
		m := map[string]any{"kind": "link", "id": v.ID(), "bounds": rectJSON(v.Bounds()), "children": mapChildren(v.Children, level)}
		if level >= DetailFull {
			m["destination"] = v.Destination
		}
		return m
	case *AbsolutePositionedArea:
		return map[string]any{"kind": "absolute", "id": v.ID(), "fixed": v.Fixed, "bounds": rectJSON(v.Bounds()), "children": mapChildren(v.Children, level)}
	case *TableArea:
		m := map[string]any{"kind": "table", "id": v.ID(), "bounds": rectJSON(v.Bounds())}
		if level >= DetailSpacing {
			cols := make([]float64, len(v.ColumnWidths))
			for i, w := range v.ColumnWidths {
				cols[i] = round2(w)
			}
			m["columnWidths"] = cols
		}
		m["body"] = rowsToMap(v.Body, level)
		if len(v.Header) > 0 {
			m["header"] = rowsToMap(v.Header, level)
		}
		if len(v.Footer) > 0 {
			m["footer"] = rowsToMap(v.Footer, level)
		}
		return m
	default:
		return map[string]any{"kind": a.Kind(), "id": a.ID(), "bounds": rectJSON(a.Bounds())}
	}
}

func mapChildren(children []Area, level DetailLevel) []map[string]any {
	out := make([]map[string]any, 0, len(children))
	for _, c := range children {
		out = append(out, areaToMap(c, level))
	}
	return out
}

func rowsToMap(rows []*TableRowArea, level DetailLevel) []map[string]any {
	out := make([]map[string]any, 0, len(rows))
	for _, r := range rows {
		cells := make([]map[string]any, 0, len(r.Cells))
		for _, c := range r.Cells {
			cells = append(cells, map[string]any{
				"kind": "table-cell", "id": c.ID(), "bounds": rectJSON(c.Bounds()),
				"columnSpan": c.ColumnSpan, "rowSpan": c.RowSpan,
				"children": mapChildren(c.Children, level),
			})
		}
		out = append(out, map[string]any{"kind": "table-row", "id": r.ID(), "bounds": rectJSON(r.Bounds()), "cells": cells})
	}
	return out
}
