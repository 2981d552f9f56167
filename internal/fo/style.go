package fo

// PropertyKey enumerates the fixed set of properties the resolver
// computes (spec §3.2). Using an enumerated key rather than a bare
// string keeps the property store a dense, index-friendly map and
// makes "unknown property" detection trivial during cascade.
type PropertyKey string

const (
	PropFontFamily     PropertyKey = "font-family"
	PropFontSize       PropertyKey = "font-size"
	PropFontWeight     PropertyKey = "font-weight"
	PropFontStyle      PropertyKey = "font-style"
	PropLineHeight     PropertyKey = "line-height"
	PropColor          PropertyKey = "color"
	PropTextAlign      PropertyKey = "text-align"
	PropTextAlignLast  PropertyKey = "text-align-last"
	PropTextDecoration PropertyKey = "text-decoration"
	PropWhiteSpace     PropertyKey = "white-space"
	PropDirection      PropertyKey = "direction"
	PropWritingMode    PropertyKey = "writing-mode"

	PropMarginTop    PropertyKey = "margin-top"
	PropMarginRight  PropertyKey = "margin-right"
	PropMarginBottom PropertyKey = "margin-bottom"
	PropMarginLeft   PropertyKey = "margin-left"

	PropPaddingTop    PropertyKey = "padding-top"
	PropPaddingRight  PropertyKey = "padding-right"
	PropPaddingBottom PropertyKey = "padding-bottom"
	PropPaddingLeft   PropertyKey = "padding-left"

	PropBorderTopWidth    PropertyKey = "border-top-width"
	PropBorderRightWidth  PropertyKey = "border-right-width"
	PropBorderBottomWidth PropertyKey = "border-bottom-width"
	PropBorderLeftWidth   PropertyKey = "border-left-width"
	PropBorderTopStyle    PropertyKey = "border-top-style"
	PropBorderTopColor    PropertyKey = "border-top-color"

	PropBackgroundColor PropertyKey = "background-color"

	PropContentWidth  PropertyKey = "content-width"
	PropContentHeight PropertyKey = "content-height"

	PropSpaceBefore PropertyKey = "space-before"
	PropSpaceAfter  PropertyKey = "space-after"

	PropKeepWithPrevious PropertyKey = "keep-with-previous"
	PropKeepWithNext     PropertyKey = "keep-with-next"
	PropKeepTogether     PropertyKey = "keep-together"
	PropBreakBefore      PropertyKey = "break-before"
	PropBreakAfter       PropertyKey = "break-after"

	PropColumnWidth             PropertyKey = "column-width"
	PropBorderCollapse          PropertyKey = "border-collapse"
	PropBorderSpacing           PropertyKey = "border-spacing"
	PropTableOmitHeaderAtBreak  PropertyKey = "table-omit-header-at-break"
	PropNumberColumnsSpanned    PropertyKey = "number-columns-spanned"
	PropNumberRowsSpanned       PropertyKey = "number-rows-spanned"

	PropFloat PropertyKey = "float"
	PropClear PropertyKey = "clear"

	PropMasterReference  PropertyKey = "master-reference"
	PropMarkerClassName  PropertyKey = "marker-class-name"
	PropRetrievePosition PropertyKey = "retrieve-position"
	PropRetrieveBoundary PropertyKey = "retrieve-boundary"
)

// ValueKind tags the variant held by a Value.
type ValueKind int

const (
	KindLength ValueKind = iota
	KindPercentage
	KindColor
	KindKeyword
	KindKeywordList
	KindInteger
	KindNumber
	KindSpace
	KindKeep
)

// Value is a typed, already-unit-resolved (except for percentages,
// which stay symbolic per spec §4.A) property value.
type Value struct {
	Kind     ValueKind
	Length   float64 // points, when Kind == KindLength
	Percent  float64 // 0..100, when Kind == KindPercentage
	Color    Color
	Keyword  string
	Keywords []string
	Int      int
	Number   float64
	Space    SpaceQuadruple // when Kind == KindSpace
	Keep     KeepStrength   // when Kind == KindKeep
}

// Color is an RGB color with alpha in [0,255].
type Color struct {
	R, G, B, A uint8
}

// SpaceQuadruple models the {min, opt, max, precedence, conditionality}
// space-before/space-after value (spec §4.D.2).
type SpaceQuadruple struct {
	Min, Opt, Max  float64
	Precedence     int
	Discard        bool // conditionality == discard
}

// KeepStrength is the tri-state strength of a keep or break constraint
// (spec §4.D.1): auto, always, or a positive integer priority.
type KeepStrength struct {
	Always bool
	Auto   bool
	Weight int // valid when !Always && !Auto
}

var KeepAuto = KeepStrength{Auto: true}
var KeepAlways = KeepStrength{Always: true}

// Stronger reports whether a has a higher forbidding/forcing weight than b.
// Always > any positive integer > auto.
func (a KeepStrength) Stronger(b KeepStrength) bool {
	rank := func(k KeepStrength) int {
		switch {
		case k.Always:
			return 1 << 30
		case k.Auto:
			return -1
		default:
			return k.Weight
		}
	}
	return rank(a) > rank(b)
}

// ResolvedStyle is the mapping from property key to computed value for
// one FO node (spec §3.2). It is built once by the property resolver
// and is immutable thereafter (spec §3.5).
type ResolvedStyle struct {
	Values map[PropertyKey]Value
}

// NewResolvedStyle returns an empty resolved style.
func NewResolvedStyle() *ResolvedStyle {
	return &ResolvedStyle{Values: make(map[PropertyKey]Value)}
}

// Get returns the value for key and whether it was present.
func (s *ResolvedStyle) Get(key PropertyKey) (Value, bool) {
	if s == nil {
		return Value{}, false
	}
	v, ok := s.Values[key]
	return v, ok
}

// Length returns the resolved length in points for key, or def if absent
// or not a length.
func (s *ResolvedStyle) Length(key PropertyKey, def float64) float64 {
	v, ok := s.Get(key)
	if !ok || v.Kind != KindLength {
		return def
	}
	return v.Length
}

// Keyword returns the keyword value for key, or def if absent.
func (s *ResolvedStyle) Keyword(key PropertyKey, def string) string {
	v, ok := s.Get(key)
	if !ok || v.Kind != KindKeyword {
		return def
	}
	return v.Keyword
}

// Clone returns a shallow copy of the style (used when inheriting into
// a child before overlaying specified values).
func (s *ResolvedStyle) Clone() *ResolvedStyle {
	out := NewResolvedStyle()
	for k, v := range s.Values {
		out.Values[k] = v
	}
	return out
}
