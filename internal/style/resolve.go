// Package style implements the property resolver (spec component A) and
// related refinement helpers: a parent-first pre-order cascade over an
// fo.Node tree that turns raw XML attribute strings into a ResolvedStyle
// per node, using initial values and inheritance per spec §3.2 and unit
// resolution per spec §4.A. Modeled on the teacher's internal/style
// StyleEngine.ComputeStyles cascade walk, generalized from CSS selector
// specificity to XSL-FO's flat inherited-attribute model.
package style

import (
	"strconv"
	"strings"

	"github.com/xsllayout/xsl-layout/internal/diag"
	"github.com/xsllayout/xsl-layout/internal/fo"
)

// enumProperties lists properties whose value must be one of a fixed
// keyword set; an out-of-set value is a diagnostic, not a fatal error.
var enumProperties = map[fo.PropertyKey][]string{
	fo.PropFontWeight:     {"normal", "bold", "bolder", "lighter"},
	fo.PropFontStyle:      {"normal", "italic", "oblique"},
	fo.PropTextAlign:      {"start", "end", "center", "justify", "left", "right"},
	fo.PropTextAlignLast:  {"relative", "start", "end", "center", "justify"},
	fo.PropWhiteSpace:     {"normal", "pre", "nowrap", "pre-wrap", "pre-line"},
	fo.PropDirection:      {"ltr", "rtl"},
	fo.PropWritingMode:    {"lr-tb", "rl-tb", "tb-rl"},
	fo.PropBorderTopStyle: {"none", "solid", "dashed", "dotted", "double", "groove", "ridge", "inset", "outset", "hidden"},
	fo.PropBorderCollapse: {"collapse", "separate"},
	fo.PropFloat:          {"start", "end", "before", "none"},
	fo.PropClear:          {"start", "end", "both", "none"},
	fo.PropRetrievePosition: {
		"first-starting-within-page", "first-including-carryover",
		"last-starting-within-page", "last-ending-within-page",
	},
	fo.PropRetrieveBoundary: {"page", "page-sequence", "document"},
}

// lengthProperties are parsed through resolveLength (unit + percentage
// resolution); every other known property is either a keyword/enum, a
// color, an integer, or a compound (space, keep) parsed separately below.
var lengthProperties = map[fo.PropertyKey]bool{
	fo.PropFontSize:          true,
	fo.PropMarginTop:         true,
	fo.PropMarginRight:       true,
	fo.PropMarginBottom:      true,
	fo.PropMarginLeft:        true,
	fo.PropPaddingTop:        true,
	fo.PropPaddingRight:      true,
	fo.PropPaddingBottom:     true,
	fo.PropPaddingLeft:       true,
	fo.PropBorderTopWidth:    true,
	fo.PropBorderRightWidth:  true,
	fo.PropBorderBottomWidth: true,
	fo.PropBorderLeftWidth:   true,
	fo.PropContentWidth:      true,
	fo.PropContentHeight:     true,
	fo.PropColumnWidth:       true,
	fo.PropBorderSpacing:     true,
}

var colorProperties = map[fo.PropertyKey]bool{
	fo.PropColor:          true,
	fo.PropBorderTopColor: true,
	fo.PropBackgroundColor: true,
}

// marginShorthand, paddingShorthand and borderWidthShorthand list the
// per-side longhand property keys a shorthand expands into, in (top, right, bottom, left)
// order, grounded on the teacher's parseBoxShorthand usage in block.go.
var marginShorthand = [4]fo.PropertyKey{fo.PropMarginTop, fo.PropMarginRight, fo.PropMarginBottom, fo.PropMarginLeft}
var paddingShorthand = [4]fo.PropertyKey{fo.PropPaddingTop, fo.PropPaddingRight, fo.PropPaddingBottom, fo.PropPaddingLeft}
var borderWidthShorthand = [4]fo.PropertyKey{fo.PropBorderTopWidth, fo.PropBorderRightWidth, fo.PropBorderBottomWidth, fo.PropBorderLeftWidth}

// Resolve runs the property resolver over the whole tree rooted at root,
// attaching a *fo.ResolvedStyle to every node (spec §4.A). sink receives
// a diagnostic for every unknown property, unparseable value, or invalid
// enum; the resolver never aborts the walk on such errors.
func Resolve(root *fo.Node, sink *diag.Sink) {
	resolveNode(root, nil, sink)
}

func resolveNode(n *fo.Node, parent *fo.ResolvedStyle, sink *diag.Sink) {
	if n == nil {
		return
	}
	out := fo.NewResolvedStyle()
	initial := initialValues()
	for key, v := range initial {
		if inheritedProperties[key] && parent != nil {
			if pv, ok := parent.Get(key); ok {
				out.Values[key] = pv
				continue
			}
		}
		out.Values[key] = v
	}

	if !n.IsText() {
		fontSize := out.Length(fo.PropFontSize, 12)
		applyShorthand(n, "margin", marginShorthand, out, fontSize, sink)
		applyShorthand(n, "padding", paddingShorthand, out, fontSize, sink)
		applyShorthand(n, "border-width", borderWidthShorthand, out, fontSize, sink)

		for attrName, raw := range n.Attrs {
			key := fo.PropertyKey(attrName)
			switch {
			case attrName == "space-before" || attrName == "space-after":
				applySpace(key, raw, out, fontSize, sink)
			case strings.HasPrefix(attrName, "space-before.") || strings.HasPrefix(attrName, "space-after."):
				applySpaceComponent(attrName, raw, out, fontSize, sink)
			case key == fo.PropKeepWithPrevious || key == fo.PropKeepWithNext || key == fo.PropKeepTogether:
				applyKeep(key, raw, out, sink)
			case key == fo.PropBreakBefore || key == fo.PropBreakAfter:
				applyBreak(key, raw, out, sink)
			case lengthProperties[key]:
				applyLength(key, raw, out, fontSize, sink)
			case colorProperties[key]:
				applyColor(key, raw, out, sink)
			case key == fo.PropNumberColumnsSpanned || key == fo.PropNumberRowsSpanned:
				applyInt(key, raw, out, sink)
			case isKnownKeywordProperty(key):
				applyEnum(key, raw, out, sink)
			case attrName == "id" || attrName == "ref-id" || attrName == "flow-name" || attrName == "master-name" ||
				attrName == "page-width" || attrName == "page-height" || attrName == "column-count" ||
				attrName == "master-reference" || attrName == "marker-class-name" || attrName == "src" ||
				attrName == "width" || attrName == "height" || attrName == "force-page-count" ||
				attrName == "initial-page-number" || attrName == "span":
				// Structural / non-style attributes consumed directly by the
				// tree-builder or page formatter, not part of the style cascade.
			default:
				sink.Warn("unknown property", map[string]string{"property": attrName, "element": string(n.Name)})
			}
		}
	}

	n.Style = out
	for _, c := range n.Children {
		resolveNode(c, out, sink)
	}
}

func isKnownKeywordProperty(key fo.PropertyKey) bool {
	_, ok := enumProperties[key]
	return ok
}

func applyShorthand(n *fo.Node, attrName string, targets [4]fo.PropertyKey, out *fo.ResolvedStyle, fontSize float64, sink *diag.Sink) {
	raw, ok := n.Attrs[attrName]
	if !ok {
		return
	}
	top, right, bottom, left := expandBoxShorthand(raw)
	sides := [4]string{top, right, bottom, left}
	for i, s := range sides {
		if s == "" {
			sink.Warn("unparseable value", map[string]string{"property": attrName, "value": raw})
			continue
		}
		applyLength(targets[i], s, out, fontSize, sink)
	}
}

func applyLength(key fo.PropertyKey, raw string, out *fo.ResolvedStyle, fontSize float64, sink *diag.Sink) {
	v, ok := resolveLength(raw, fontSize)
	if !ok {
		sink.Warn("unparseable value", map[string]string{"property": string(key), "value": raw})
		if init, ok := initialValues()[key]; ok {
			out.Values[key] = init
		}
		return
	}
	out.Values[key] = v
}

func applyColor(key fo.PropertyKey, raw string, out *fo.ResolvedStyle, sink *diag.Sink) {
	c, ok := parseColor(raw)
	if !ok {
		sink.Warn("unparseable value", map[string]string{"property": string(key), "value": raw})
		return
	}
	out.Values[key] = fo.Value{Kind: fo.KindColor, Color: c}
}

func applyInt(key fo.PropertyKey, raw string, out *fo.ResolvedStyle, sink *diag.Sink) {
	i, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		sink.Warn("unparseable value", map[string]string{"property": string(key), "value": raw})
		return
	}
	out.Values[key] = fo.Value{Kind: fo.KindInteger, Int: i}
}

func applyEnum(key fo.PropertyKey, raw string, out *fo.ResolvedStyle, sink *diag.Sink) {
	raw = strings.TrimSpace(raw)
	valid := enumProperties[key]
	for _, v := range valid {
		if v == raw {
			out.Values[key] = fo.Value{Kind: fo.KindKeyword, Keyword: raw}
			return
		}
	}
	sink.Warn("invalid enum", map[string]string{"property": string(key), "value": raw})
}

// applyKeep parses a keep-with-previous/-next/-together value: "auto",
// "always", or an integer priority (spec §4.D.1).
func applyKeep(key fo.PropertyKey, raw string, out *fo.ResolvedStyle, sink *diag.Sink) {
	raw = strings.TrimSpace(raw)
	switch raw {
	case "auto":
		out.Values[key] = fo.Value{Kind: fo.KindKeep, Keep: fo.KeepAuto}
	case "always":
		out.Values[key] = fo.Value{Kind: fo.KindKeep, Keep: fo.KeepAlways}
	default:
		w, err := strconv.Atoi(raw)
		if err != nil || w < 0 {
			sink.Warn("unparseable value", map[string]string{"property": string(key), "value": raw})
			return
		}
		out.Values[key] = fo.Value{Kind: fo.KindKeep, Keep: fo.KeepStrength{Weight: w}}
	}
}

// applyBreak parses a break-before/-after value: "auto", "column",
// "page", "even-page", or "odd-page" (spec §4.D.1); stored as a keyword
// since it also drives a forced region/page boundary, not just a
// strength comparison.
func applyBreak(key fo.PropertyKey, raw string, out *fo.ResolvedStyle, sink *diag.Sink) {
	raw = strings.TrimSpace(raw)
	switch raw {
	case "auto", "column", "page", "even-page", "odd-page":
		out.Values[key] = fo.Value{Kind: fo.KindKeyword, Keyword: raw}
	default:
		sink.Warn("invalid enum", map[string]string{"property": string(key), "value": raw})
	}
}

// applySpace parses the shorthand form of space-before/space-after: a
// single length (min=opt=max), or a space-specifier of the form
// "min opt max precedence conditionality" (spec §4.D.2).
func applySpace(key fo.PropertyKey, raw string, out *fo.ResolvedStyle, fontSize float64, sink *diag.Sink) {
	fields := strings.Fields(strings.TrimSpace(raw))
	if len(fields) == 0 {
		sink.Warn("unparseable value", map[string]string{"property": string(key), "value": raw})
		return
	}
	if len(fields) == 1 {
		v, ok := resolveLength(fields[0], fontSize)
		if !ok {
			sink.Warn("unparseable value", map[string]string{"property": string(key), "value": raw})
			return
		}
		out.Values[key] = fo.Value{Kind: fo.KindSpace, Space: fo.SpaceQuadruple{Min: v.Length, Opt: v.Length, Max: v.Length}}
		return
	}
	sq := fo.SpaceQuadruple{}
	get := func(i int) (float64, bool) {
		if i >= len(fields) {
			return 0, false
		}
		v, ok := resolveLength(fields[i], fontSize)
		return v.Length, ok
	}
	var okMin, okOpt, okMax bool
	sq.Min, okMin = get(0)
	sq.Opt, okOpt = get(1)
	sq.Max, okMax = get(2)
	if !okMin || !okOpt || !okMax {
		sink.Warn("unparseable value", map[string]string{"property": string(key), "value": raw})
		return
	}
	if len(fields) > 3 {
		if p, err := strconv.Atoi(fields[3]); err == nil {
			sq.Precedence = p
		}
	}
	if len(fields) > 4 {
		sq.Discard = fields[4] == "discard"
	}
	out.Values[key] = fo.Value{Kind: fo.KindSpace, Space: sq}
}

// applySpaceComponent handles the long-form sub-properties
// "space-before.minimum", "space-before.optimum", "space-before.maximum",
// "space-before.precedence" and "space-before.conditionality", each
// overlaying one field of an already (or not yet) established quadruple.
func applySpaceComponent(attrName, raw string, out *fo.ResolvedStyle, fontSize float64, sink *diag.Sink) {
	parts := strings.SplitN(attrName, ".", 2)
	base := fo.PropertyKey(parts[0])
	component := parts[1]
	cur, _ := out.Get(base)
	if cur.Kind != fo.KindSpace {
		cur = fo.Value{Kind: fo.KindSpace}
	}
	switch component {
	case "minimum", "optimum", "maximum":
		v, ok := resolveLength(raw, fontSize)
		if !ok {
			sink.Warn("unparseable value", map[string]string{"property": attrName, "value": raw})
			return
		}
		switch component {
		case "minimum":
			cur.Space.Min = v.Length
		case "optimum":
			cur.Space.Opt = v.Length
		case "maximum":
			cur.Space.Max = v.Length
		}
	case "precedence":
		p, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			sink.Warn("unparseable value", map[string]string{"property": attrName, "value": raw})
			return
		}
		cur.Space.Precedence = p
	case "conditionality":
		cur.Space.Discard = strings.TrimSpace(raw) == "discard"
	default:
		sink.Warn("unknown property", map[string]string{"property": attrName})
		return
	}
	out.Values[base] = cur
}
