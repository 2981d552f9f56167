package area

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestConstructorsSetBaseFields checks each New* constructor wires
// IDValue/Rect into the embedded base the way ID()/Bounds() read them
// back, using cmp.Diff so a mismatch prints the offending field instead
// of just "not equal".
func TestConstructorsSetBaseFields(t *testing.T) {
	bounds := Rect{X: 10, Y: 20, Width: 100, Height: 50}

	cases := []struct {
		name string
		area Area
	}{
		{"page-viewport", NewPageViewport("p1", bounds, 1)},
		{"region", NewRegionArea("r1", "body", bounds)},
		{"block", NewBlockArea("b1", "block", bounds)},
		{"line", NewLineArea("l1", bounds, 0.5)},
		{"inline", NewInlineArea("i1", bounds, "hello")},
		{"image", NewImageArea("img1", "cover.png", bounds)},
		{"table", NewTableArea("t1", bounds, []float64{50, 50})},
		{"table-row", NewTableRowArea("tr1", bounds)},
		{"table-cell", NewTableCellArea("tc1", bounds, 1, 1)},
	}

	for _, c := range cases {
		if diff := cmp.Diff(bounds, c.area.Bounds()); diff != "" {
			t.Errorf("%s: Bounds() mismatch (-want +got):\n%s", c.name, diff)
		}
	}
}

func TestKindReportsDistinctAreaTypes(t *testing.T) {
	bounds := Rect{}
	cases := map[string]Area{
		"page-viewport": NewPageViewport("p1", bounds, 1),
		"region":        NewRegionArea("r1", "body", bounds),
		"block":         NewBlockArea("b1", "block", bounds),
		"line":          NewLineArea("l1", bounds, 0),
		"inline":        NewInlineArea("i1", bounds, ""),
		"image":         NewImageArea("img1", "", bounds),
		"table":         NewTableArea("t1", bounds, nil),
		"table-row":     NewTableRowArea("tr1", bounds),
		"table-cell":    NewTableCellArea("tc1", bounds, 0, 0),
	}
	for want, a := range cases {
		if got := a.Kind(); got != want {
			t.Errorf("Kind() = %q, want %q", got, want)
		}
	}
}
