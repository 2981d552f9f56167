package style

import (
	"testing"

	"github.com/xsllayout/xsl-layout/internal/diag"
	"github.com/xsllayout/xsl-layout/internal/fo"
)

func block(attrs map[string]string, children ...*fo.Node) *fo.Node {
	n := fo.NewElement(fo.Block)
	for k, v := range attrs {
		n.Attrs[k] = v
	}
	for _, c := range children {
		n.AppendChild(c)
	}
	return n
}

func TestResolveInheritsFontPropertiesFromParent(t *testing.T) {
	child := block(nil)
	root := block(map[string]string{"font-size": "18pt", "color": "#ff0000"}, child)

	Resolve(root, diag.NewSink(nil))

	if got := child.Style.Length(fo.PropFontSize, 0); got != 18 {
		t.Fatalf("child font-size = %v, want 18 (inherited)", got)
	}
	v, ok := child.Style.Get(fo.PropColor)
	if !ok || v.Kind != fo.KindColor || v.Color.R != 0xff {
		t.Fatalf("child color = %+v, want inherited red", v)
	}
}

func TestResolveDoesNotInheritNonInheritedProperties(t *testing.T) {
	child := block(nil)
	root := block(map[string]string{"space-before": "10pt"}, child)

	Resolve(root, diag.NewSink(nil))

	if _, ok := child.Style.Get(fo.PropSpaceBefore); ok {
		t.Fatalf("space-before must not inherit, but child has it set")
	}
}

func TestResolveMarginShorthandExpandsToFourLonghands(t *testing.T) {
	root := block(map[string]string{"margin": "10pt 20pt 30pt 40pt"})

	Resolve(root, diag.NewSink(nil))

	cases := map[fo.PropertyKey]float64{
		fo.PropMarginTop:    10,
		fo.PropMarginRight:  20,
		fo.PropMarginBottom: 30,
		fo.PropMarginLeft:   40,
	}
	for key, want := range cases {
		if got := root.Style.Length(key, -1); got != want {
			t.Errorf("%s = %v, want %v", key, got, want)
		}
	}
}

func TestResolveSpaceBeforeShorthandSingleLength(t *testing.T) {
	root := block(map[string]string{"space-before": "12pt"})

	Resolve(root, diag.NewSink(nil))

	v, ok := root.Style.Get(fo.PropSpaceBefore)
	if !ok || v.Kind != fo.KindSpace {
		t.Fatalf("space-before not resolved as a space quadruple: %+v", v)
	}
	if v.Space.Min != 12 || v.Space.Opt != 12 || v.Space.Max != 12 {
		t.Fatalf("space-before = %+v, want min=opt=max=12", v.Space)
	}
}

func TestResolveSpaceBeforeQuadrupleForm(t *testing.T) {
	root := block(map[string]string{"space-before": "6pt 12pt 24pt 1 discard"})

	Resolve(root, diag.NewSink(nil))

	v, _ := root.Style.Get(fo.PropSpaceBefore)
	want := fo.SpaceQuadruple{Min: 6, Opt: 12, Max: 24, Precedence: 1, Discard: true}
	if v.Space != want {
		t.Fatalf("space-before = %+v, want %+v", v.Space, want)
	}
}

func TestResolveKeepWithNextWeight(t *testing.T) {
	root := block(map[string]string{"keep-with-next": "5"})

	Resolve(root, diag.NewSink(nil))

	v, ok := root.Style.Get(fo.PropKeepWithNext)
	if !ok || v.Kind != fo.KindKeep || v.Keep.Weight != 5 {
		t.Fatalf("keep-with-next = %+v, want weight 5", v)
	}
}

func TestResolveKeepWithNextAlways(t *testing.T) {
	root := block(map[string]string{"keep-with-next": "always"})

	Resolve(root, diag.NewSink(nil))

	v, _ := root.Style.Get(fo.PropKeepWithNext)
	if v.Keep != fo.KeepAlways {
		t.Fatalf("keep-with-next = %+v, want KeepAlways", v.Keep)
	}
}

func TestResolveContentWidthAndHeightAreLengths(t *testing.T) {
	root := block(map[string]string{"content-width": "144pt", "content-height": "72pt"})

	Resolve(root, diag.NewSink(nil))

	if got := root.Style.Length(fo.PropContentWidth, -1); got != 144 {
		t.Fatalf("content-width = %v, want 144", got)
	}
	if got := root.Style.Length(fo.PropContentHeight, -1); got != 72 {
		t.Fatalf("content-height = %v, want 72", got)
	}
}

func TestResolveInvalidEnumRecordsDiagnostic(t *testing.T) {
	root := block(map[string]string{"text-align": "diagonal"})
	sink := diag.NewSink(nil)

	Resolve(root, sink)

	if v, ok := root.Style.Get(fo.PropTextAlign); !ok || v.Keyword != "start" {
		t.Fatalf("text-align = %+v, want the initial value \"start\" in place of the invalid enum", v)
	}
	found := false
	for _, e := range sink.Entries() {
		if e.Message == "invalid enum" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an 'invalid enum' diagnostic, got %+v", sink.Entries())
	}
}

func TestResolveUnknownPropertyRecordsDiagnostic(t *testing.T) {
	root := block(map[string]string{"not-a-real-property": "x"})
	sink := diag.NewSink(nil)

	Resolve(root, sink)

	found := false
	for _, e := range sink.Entries() {
		if e.Message == "unknown property" && e.Fields["property"] == "not-a-real-property" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an 'unknown property' diagnostic, got %+v", sink.Entries())
	}
}

func TestResolveStructuralAttributesAreNotTreatedAsUnknown(t *testing.T) {
	root := block(map[string]string{"src": "logo.png", "width": "100pt"})
	sink := diag.NewSink(nil)

	Resolve(root, sink)

	for _, e := range sink.Entries() {
		if e.Message == "unknown property" {
			t.Fatalf("structural attribute %q misreported as unknown property", e.Fields["property"])
		}
	}
}
