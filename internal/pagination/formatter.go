package pagination

import (
	"fmt"
	"strings"

	"github.com/xsllayout/xsl-layout/internal/area"
	"github.com/xsllayout/xsl-layout/internal/diag"
	"github.com/xsllayout/xsl-layout/internal/fo"
	"github.com/xsllayout/xsl-layout/internal/fontmetrics"
	"github.com/xsllayout/xsl-layout/internal/imagedecode"
	"github.com/xsllayout/xsl-layout/internal/res"
	"github.com/xsllayout/xsl-layout/internal/style"
	"github.com/xsllayout/xsl-layout/internal/svgconv"
	"github.com/xsllayout/xsl-layout/internal/text/bidi"
	"github.com/xsllayout/xsl-layout/internal/text/hyphen"
	"github.com/xsllayout/xsl-layout/internal/text/linebreak"
)

// LineBreakingMode selects the paragraph formatter's line-breaking
// strategy (spec §6.4 "lineBreaking"): first-fit (the teacher's only
// strategy, internal/layout/engine.go's layoutParagraphInline) or the
// Knuth-Plass optimum-fit search.
type LineBreakingMode int

const (
	LineBreakingGreedy LineBreakingMode = iota
	LineBreakingOptimal
)

// HyphenationOptions configures the Liang hyphenator wired into the
// paragraph formatter (spec §6.4 "enableHyphenation"/"hyphenationLanguage"/
// "hyphenationMinLeft"/"hyphenationMinRight").
type HyphenationOptions struct {
	Enabled  bool
	Language string
	MinLeft  int
	MinRight int
}

// DefaultHyphenationOptions returns hyphenation disabled, with TeX's
// conventional minimum margins for when it is turned on.
func DefaultHyphenationOptions() HyphenationOptions {
	return HyphenationOptions{Enabled: false, Language: "en", MinLeft: 2, MinRight: 3}
}

// FormatterOptions bundles the page formatter's configurable knobs
// beyond resource Limits (spec §6.4).
type FormatterOptions struct {
	LineBreaking LineBreakingMode
	Hyphenation  HyphenationOptions
}

// DefaultFormatterOptions returns greedy line-breaking with hyphenation
// disabled, matching the teacher's unconfigurable first-fit behavior.
func DefaultFormatterOptions() FormatterOptions {
	return FormatterOptions{LineBreaking: LineBreakingGreedy, Hyphenation: DefaultHyphenationOptions()}
}

// Limits bounds the page formatter's work per spec §5 (resource
// guards): exceeding MaxPages or MaxIterations raises a LimitExceeded
// Failure. Exceeding MaxNestingDepth is not fatal: buildFlowItems
// records a diagnostic and drops the subtree.
type Limits struct {
	MaxPages       int
	MaxNestingDepth int
	MaxIterations  int
}

func DefaultLimits() Limits {
	return Limits{MaxPages: 10000, MaxNestingDepth: 256, MaxIterations: 200000}
}

// Formatter runs component D over a fully resolved+refined fo.Node tree
// (style already attached by style.Resolve, structure already checked
// by fo.Refine) and produces an AreaTree.
type Formatter struct {
	masters     map[string]PageMaster
	metrics     fontmetrics.Metrics
	images      imagedecode.Decoder
	svg         svgconv.Converter
	loader      *res.Loader
	sink        *diag.Sink
	limits      Limits
	markers     *markerRegistry
	nextID      int
	warnedFloat bool

	lineBreaking LineBreakingMode
	hyphenator   hyphen.Engine
	bidi         bidi.Resolver
}

func New(masters map[string]PageMaster, metrics fontmetrics.Metrics, sink *diag.Sink, limits Limits, opts FormatterOptions) *Formatter {
	f := &Formatter{
		masters:      masters,
		metrics:      metrics,
		images:       imagedecode.New(),
		svg:          svgconv.New(),
		loader:       res.NewLoader(""),
		sink:         sink,
		limits:       limits,
		markers:      newMarkerRegistry(),
		lineBreaking: opts.LineBreaking,
		bidi:         bidi.New(),
	}
	if opts.Hyphenation.Enabled {
		f.hyphenator = hyphen.New(hyphen.DefaultEnglishPatterns, opts.Hyphenation.MinLeft, opts.Hyphenation.MinRight, sink)
	}
	return f
}

func (f *Formatter) genID(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s-%d", prefix, f.nextID)
}

// Format lays out every fo:page-sequence under root in document order
// (spec §4.D "Concurrency & resource model: single-threaded,
// synchronous, one page-sequence after another").
func (f *Formatter) Format(root *fo.Node) (*area.AreaTree, error) {
	tree := &area.AreaTree{}
	pageNumber := 0
	for _, seq := range root.ChildrenNamed(fo.PageSequence) {
		pages, err := f.formatSequence(seq, &pageNumber)
		if err != nil {
			return nil, err
		}
		tree.Pages = append(tree.Pages, pages...)
		if len(tree.Pages) > f.limits.MaxPages {
			return nil, diag.Fatal(diag.LimitExceeded, "document exceeds maxPages (%d)", f.limits.MaxPages)
		}
	}
	return tree, nil
}

func (f *Formatter) formatSequence(seq *fo.Node, pageNumber *int) ([]*area.PageViewport, error) {
	masterRef := seq.Attr("master-reference")
	master, ok := f.masters[masterRef]
	if !ok && seq.Parent != nil {
		// Fall back in document order, not map order, so the choice is
		// the same on every run.
		if lms := seq.Parent.FirstChildNamed(fo.LayoutMasterSet); lms != nil {
			for _, spm := range lms.ChildrenNamed(fo.SimplePageMaster) {
				if m, found := f.masters[spm.Attr("master-name")]; found {
					master, ok = m, true
					break
				}
			}
		}
		if ok {
			f.sink.Warn("page-sequence references unknown/unsupported master, using first available", map[string]string{"master-reference": masterRef})
		}
	}
	if !ok {
		return nil, diag.Fatal(diag.InvalidDocument, "no usable simple-page-master for page-sequence")
	}

	flow := seq.FirstChildNamed(fo.Flow)
	if flow == nil {
		return nil, diag.Fatal(diag.InvalidDocument, "page-sequence has no fo:flow")
	}
	_, _, bodyWidth, _ := master.BodyRect()
	items := f.buildFlowItems(flow, 0, bodyWidth)

	var pages []*area.PageViewport
	cursor := newPageCursor(f, master, seq)
	iterations := 0
	for len(items) > 0 || cursor.hasPendingFootnotes() {
		iterations++
		if iterations > f.limits.MaxIterations {
			return nil, diag.Fatal(diag.LimitExceeded, "page formatter exceeded maxIterations")
		}
		*pageNumber++
		page, leftover := cursor.layoutOnePage(items, *pageNumber)
		pages = append(pages, page)
		items = leftover
		if len(pages) > f.limits.MaxPages {
			return nil, diag.Fatal(diag.LimitExceeded, "document exceeds maxPages (%d)", f.limits.MaxPages)
		}
	}
	if len(pages) == 0 {
		*pageNumber++
		pages = append(pages, cursor.emptyPage(*pageNumber))
	}
	applyForcePageCount(seq, &pages, cursor)
	return pages, nil
}

// applyForcePageCount pads the sequence's page list to satisfy
// force-page-count (spec §4.D.6): auto (no-op), even, odd, end-on-even,
// end-on-odd.
func applyForcePageCount(seq *fo.Node, pages *[]*area.PageViewport, cursor *pageCursor) {
	mode := seq.Attr("force-page-count")
	if mode == "" {
		mode = "auto"
	}
	n := len(*pages)
	need := false
	switch mode {
	case "even":
		need = n%2 != 0
	case "odd":
		need = n%2 == 0
	case "end-on-even":
		need = n%2 != 0
	case "end-on-odd":
		need = n%2 == 0
	}
	if need {
		blank := cursor.emptyPage(n + 1)
		*pages = append(*pages, blank)
	}
}

// flowItem is one top-level block-level child of a flow or
// static-content, pre-measured against the region-body width (spec
// §4.D block placement operates on whole top-level blocks at a time;
// overflow within one oversized block falls back to a forced split at
// its line boundaries, see splitAtHeight).
type flowItem struct {
	node         *fo.Node
	height       float64
	keepWithPrev fo.KeepStrength
	keepWithNext fo.KeepStrength
	keepTogether fo.KeepStrength
	breakBefore  string
	breakAfter   string
	spaceBefore  fo.SpaceQuadruple
	spaceAfter   fo.SpaceQuadruple
	capability   fo.Capability
	lines        []measuredLine // for splitAtHeight and area construction on a text block
	children     []*flowItem    // nested block-level content, for a container block
	table        *tableLayout   // set instead of lines/children when node is fo:table

	lineWidth     float64 // the content-rectangle width lines were broken against
	fontFamily    string
	fontSize      float64
	textAlign     string
	textAlignLast string

	imageSource string
	imageWidth  float64
	imageHeight float64
}

// measuredLine is one line produced by the paragraph formatter's
// breaker, carrying the actual item content so blockToArea can emit
// real LineArea/InlineArea geometry (spec §4.C.5) instead of just a
// height used for pagination.
type measuredLine struct {
	line   linebreak.Line
	height float64
}

func (f *Formatter) buildFlowItems(flow *fo.Node, depth int, contentWidth float64) []*flowItem {
	if depth > f.limits.MaxNestingDepth {
		f.sink.Warn("max nesting depth exceeded, truncating subtree", map[string]string{"element": string(flow.Name)})
		return nil
	}
	var out []*flowItem
	for _, child := range flow.Children {
		if child.IsText() {
			continue
		}
		out = append(out, f.measureBlock(child, depth, contentWidth))
	}
	return out
}

func (f *Formatter) measureBlock(n *fo.Node, depth int, contentWidth float64) *flowItem {
	item := &flowItem{
		node:       n,
		capability: fo.CapabilityOf(n),
	}
	st := n.Style
	item.keepWithPrev = keepOf(st, fo.PropKeepWithPrevious)
	item.keepWithNext = keepOf(st, fo.PropKeepWithNext)
	item.keepTogether = keepOf(st, fo.PropKeepTogether)
	item.breakBefore = st.Keyword(fo.PropBreakBefore, "auto")
	item.breakAfter = st.Keyword(fo.PropBreakAfter, "auto")
	item.spaceBefore = spaceOf(st, fo.PropSpaceBefore)
	item.spaceAfter = spaceOf(st, fo.PropSpaceAfter)

	if item.capability == fo.CapImage {
		f.measureImage(n, st, item)
		return item
	}
	if item.capability == fo.CapFloat && !f.warnedFloat {
		f.warnedFloat = true
		f.sink.Warn("fo:float is placed in document order without side-area reduction; following content does not wrap around it", nil)
	}

	paddingLeft := st.Length(fo.PropPaddingLeft, 0) + st.Length(fo.PropBorderLeftWidth, 0)
	paddingRight := st.Length(fo.PropPaddingRight, 0) + st.Length(fo.PropBorderRightWidth, 0)
	innerWidth := contentWidth - paddingLeft - paddingRight
	if innerWidth < 0 {
		innerWidth = 0
	}

	if n.Name == fo.Table {
		f.fillTableItem(n, st, item, depth, innerWidth)
		item.height += st.Length(fo.PropPaddingTop, 0) + st.Length(fo.PropPaddingBottom, 0) +
			st.Length(fo.PropBorderTopWidth, 0)
		return item
	}

	fontSize := st.Length(fo.PropFontSize, 12)
	lineHeight := fontSize * 1.2
	fontFamily := st.Keyword(fo.PropFontFamily, "Helvetica")
	item.fontFamily = fontFamily
	item.fontSize = fontSize
	item.lineWidth = innerWidth
	item.textAlign = st.Keyword(fo.PropTextAlign, "start")
	item.textAlignLast = st.Keyword(fo.PropTextAlignLast, "")

	text := strings.TrimSpace(style.CollapseWhiteSpace(collectText(n), st.Keyword(fo.PropWhiteSpace, "normal"), true, true))
	if text != "" {
		text = f.resolveBidiText(text, st)
		words := linebreak.Build(text, metricsAdapter{f.metrics}, linebreak.Options{
			FontFamily: fontFamily,
			FontSize:   fontSize,
			Hyphenate:  f.hyphenator != nil,
			Hyphenator: f.hyphenator,
		})
		lineWidthFn := func(int) float64 { return innerWidth }
		var lines []linebreak.Line
		if f.lineBreaking == LineBreakingOptimal {
			lines = linebreak.KnuthPlass(words, lineWidthFn, linebreak.DefaultKnuthPlassOptions())
		} else {
			lines = linebreak.Greedy(words, lineWidthFn)
		}
		for _, ln := range lines {
			item.lines = append(item.lines, measuredLine{line: ln, height: lineHeight})
			item.height += lineHeight
		}
	}
	for _, child := range n.Children {
		if child.IsText() {
			continue
		}
		sub := f.measureBlock(child, depth+1, innerWidth)
		item.children = append(item.children, sub)
		item.height += sub.height + sub.spaceBefore.Opt + sub.spaceAfter.Opt
	}
	if item.height == 0 {
		item.height = lineHeight
	}
	item.height += st.Length(fo.PropPaddingTop, 0) + st.Length(fo.PropPaddingBottom, 0) +
		st.Length(fo.PropBorderTopWidth, 0)
	return item
}

// resolveBidiText consults the BidiResolver collaborator to reorder
// mixed-direction text into visual order before it is handed to the
// line breaker (spec §4.C inline run construction), falling back to
// the original text when the resolver reports a single run (the
// common, pure-LTR or pure-RTL case).
func (f *Formatter) resolveBidiText(text string, st *fo.ResolvedStyle) string {
	if f.bidi == nil {
		return text
	}
	runs := f.bidi.Resolve(text, bidi.DirectionOf(st))
	if len(runs) <= 1 {
		return text
	}
	var b strings.Builder
	for _, r := range runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// measureImage resolves an fo:external-graphic's src (or an
// fo:instream-foreign-object's inline content) to its intrinsic
// dimensions via internal/res + internal/imagedecode, falling back to
// the declared content-width/content-height (or a fixed placeholder
// box) if the resource can't be fetched or decoded — a missing image
// degrades gracefully rather than aborting the whole document (spec §7).
func (f *Formatter) measureImage(n *fo.Node, st *fo.ResolvedStyle, item *flowItem) {
	_, hasWidth := st.Get(fo.PropContentWidth)
	_, hasHeight := st.Get(fo.PropContentHeight)
	item.imageWidth = st.Length(fo.PropContentWidth, 100)
	item.imageHeight = st.Length(fo.PropContentHeight, 100)

	if n.Name == fo.InstreamForeignObject {
		f.measureForeignObject(n, hasWidth, hasHeight, item)
		return
	}

	item.imageSource = n.Attr("src")
	if item.imageSource == "" {
		item.height = item.imageHeight
		return
	}
	rsrc, err := f.loader.Load(item.imageSource)
	if err != nil {
		f.sink.Warn("could not load image resource, using declared/default size", map[string]string{"src": item.imageSource, "error": err.Error()})
		item.height = item.imageHeight
		return
	}
	dim, err := f.images.Decode(rsrc.Data)
	if err != nil {
		f.sink.Warn("could not decode image resource, using declared/default size", map[string]string{"src": item.imageSource, "error": err.Error()})
		item.height = item.imageHeight
		return
	}
	if !hasWidth {
		item.imageWidth = float64(dim.Width)
	}
	if !hasHeight {
		item.imageHeight = float64(dim.Height)
	}
	item.height = item.imageHeight
}

// measureForeignObject sizes an fo:instream-foreign-object from its
// embedded SVG markup (serialized back to text by internal/foxml),
// falling back to the declared/default size on any parse failure the
// same way measureImage degrades for an external-graphic (spec §7).
func (f *Formatter) measureForeignObject(n *fo.Node, hasWidth, hasHeight bool, item *flowItem) {
	markup := collectText(n)
	if strings.TrimSpace(markup) == "" {
		item.height = item.imageHeight
		return
	}
	box, err := f.svg.BoundingBox(markup)
	if err != nil {
		f.sink.Warn("could not parse instream-foreign-object content, using declared/default size", map[string]string{"error": err.Error()})
		item.height = item.imageHeight
		return
	}
	if !hasWidth {
		item.imageWidth = box.Width
	}
	if !hasHeight {
		item.imageHeight = box.Height
	}
	item.height = item.imageHeight
}

func collectText(n *fo.Node) string {
	var b strings.Builder
	for _, c := range n.Children {
		if c.IsText() {
			b.WriteString(c.Text)
		}
	}
	return b.String()
}

func keepOf(st *fo.ResolvedStyle, key fo.PropertyKey) fo.KeepStrength {
	v, ok := st.Get(key)
	if !ok || v.Kind != fo.KindKeep {
		return fo.KeepAuto
	}
	return v.Keep
}

func spaceOf(st *fo.ResolvedStyle, key fo.PropertyKey) fo.SpaceQuadruple {
	v, ok := st.Get(key)
	if !ok || v.Kind != fo.KindSpace {
		return fo.SpaceQuadruple{}
	}
	return v.Space
}

// metricsAdapter bridges fontmetrics.Metrics to linebreak.WordMetrics
// (same method shape; kept as separate types so each package depends
// only on what it needs).
type metricsAdapter struct{ m fontmetrics.Metrics }

func (a metricsAdapter) MeasureWidth(text, fontFamily string, fontSize float64, bold, italic bool) float64 {
	return a.m.MeasureWidth(text, fontFamily, fontSize, bold, italic)
}
