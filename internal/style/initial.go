package style

import "github.com/xsllayout/xsl-layout/internal/fo"

// inheritedProperties lists the properties that, per spec §3.2, default
// to the parent's computed value rather than their initial value.
var inheritedProperties = map[fo.PropertyKey]bool{
	fo.PropFontFamily:     true,
	fo.PropFontSize:       true,
	fo.PropFontWeight:     true,
	fo.PropFontStyle:      true,
	fo.PropLineHeight:     true,
	fo.PropColor:          true,
	fo.PropTextAlign:      true,
	fo.PropTextAlignLast:  true,
	fo.PropWhiteSpace:     true,
	fo.PropDirection:      true,
	fo.PropWritingMode:    true,
	fo.PropBorderCollapse: true,
	fo.PropBorderSpacing:  true,
}

// initialValues holds the initial value for every known property (spec
// §3.2 "Non-inherited properties take their initial value unless
// specified", and inherited ones fall back to this at the root).
func initialValues() map[fo.PropertyKey]fo.Value {
	return map[fo.PropertyKey]fo.Value{
		fo.PropFontFamily:     {Kind: fo.KindKeyword, Keyword: "Helvetica"},
		fo.PropFontSize:       {Kind: fo.KindLength, Length: 12},
		fo.PropFontWeight:     {Kind: fo.KindKeyword, Keyword: "normal"},
		fo.PropFontStyle:      {Kind: fo.KindKeyword, Keyword: "normal"},
		fo.PropLineHeight:     {Kind: fo.KindKeyword, Keyword: "normal"},
		fo.PropColor:          {Kind: fo.KindColor, Color: fo.Color{A: 255}},
		fo.PropTextAlign:      {Kind: fo.KindKeyword, Keyword: "start"},
		fo.PropTextAlignLast:  {Kind: fo.KindKeyword, Keyword: "relative"},
		fo.PropTextDecoration: {Kind: fo.KindKeyword, Keyword: "none"},
		fo.PropWhiteSpace:     {Kind: fo.KindKeyword, Keyword: "normal"},
		fo.PropDirection:      {Kind: fo.KindKeyword, Keyword: "ltr"},
		fo.PropWritingMode:    {Kind: fo.KindKeyword, Keyword: "lr-tb"},

		fo.PropMarginTop:    {Kind: fo.KindLength, Length: 0},
		fo.PropMarginRight:  {Kind: fo.KindLength, Length: 0},
		fo.PropMarginBottom: {Kind: fo.KindLength, Length: 0},
		fo.PropMarginLeft:   {Kind: fo.KindLength, Length: 0},

		fo.PropPaddingTop:    {Kind: fo.KindLength, Length: 0},
		fo.PropPaddingRight:  {Kind: fo.KindLength, Length: 0},
		fo.PropPaddingBottom: {Kind: fo.KindLength, Length: 0},
		fo.PropPaddingLeft:   {Kind: fo.KindLength, Length: 0},

		fo.PropBorderTopWidth:    {Kind: fo.KindLength, Length: 0},
		fo.PropBorderRightWidth:  {Kind: fo.KindLength, Length: 0},
		fo.PropBorderBottomWidth: {Kind: fo.KindLength, Length: 0},
		fo.PropBorderLeftWidth:   {Kind: fo.KindLength, Length: 0},
		fo.PropBorderTopStyle:    {Kind: fo.KindKeyword, Keyword: "none"},
		fo.PropBorderTopColor:    {Kind: fo.KindColor, Color: fo.Color{A: 255}},

		fo.PropBackgroundColor: {Kind: fo.KindKeyword, Keyword: "transparent"},

		fo.PropKeepWithPrevious: {Kind: fo.KindKeyword, Keyword: "auto"},
		fo.PropKeepWithNext:     {Kind: fo.KindKeyword, Keyword: "auto"},
		fo.PropKeepTogether:     {Kind: fo.KindKeyword, Keyword: "auto"},
		fo.PropBreakBefore:      {Kind: fo.KindKeyword, Keyword: "auto"},
		fo.PropBreakAfter:       {Kind: fo.KindKeyword, Keyword: "auto"},

		fo.PropBorderCollapse:         {Kind: fo.KindKeyword, Keyword: "separate"},
		fo.PropBorderSpacing:          {Kind: fo.KindLength, Length: 0},
		fo.PropTableOmitHeaderAtBreak: {Kind: fo.KindKeyword, Keyword: "false"},

		fo.PropFloat: {Kind: fo.KindKeyword, Keyword: "none"},
		fo.PropClear: {Kind: fo.KindKeyword, Keyword: "none"},
	}
}
