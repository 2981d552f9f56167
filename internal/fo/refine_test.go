package fo

import (
	"testing"

	"github.com/xsllayout/xsl-layout/internal/diag"
	"go.uber.org/zap"
)

func newSink() *diag.Sink {
	return diag.NewSink(zap.NewNop())
}

func hasWarning(sink *diag.Sink, message string) bool {
	for _, e := range sink.Entries() {
		if e.Message == message {
			return true
		}
	}
	return false
}

func TestCapabilityOfKnownElements(t *testing.T) {
	cases := []struct {
		name Name
		want Capability
	}{
		{Block, CapBlock},
		{Inline, CapInline},
		{Table, CapTable},
		{ExternalGraphic, CapImage},
		{InstreamForeignObject, CapImage},
		{Float, CapFloat},
		{Footnote, CapFootnote},
		{ListItem, CapListItem},
		{Flow, CapOpaque},
		{Root, CapOpaque},
	}
	for _, c := range cases {
		got := CapabilityOf(NewElement(c.name))
		if got != c.want {
			t.Errorf("CapabilityOf(%s) = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestCapabilityOfTextNodeIsInline(t *testing.T) {
	if got := CapabilityOf(NewText("hello")); got != CapInline {
		t.Fatalf("CapabilityOf(text node) = %v, want CapInline", got)
	}
}

func TestRefineTableRowOutsideTableBodyWarns(t *testing.T) {
	table := NewElement(Table)
	row := NewElement(TableRow)
	table.AppendChild(row)

	sink := newSink()
	Refine(table, sink)

	if !hasWarning(sink, "table-row outside table-body/header/footer") {
		t.Fatalf("expected a table-row structural warning, got %+v", sink.Entries())
	}
}

func TestRefineTableRowInsideTableBodyIsFine(t *testing.T) {
	table := NewElement(Table)
	body := NewElement(TableBody)
	row := NewElement(TableRow)
	body.AppendChild(row)
	table.AppendChild(body)

	sink := newSink()
	Refine(table, sink)

	if hasWarning(sink, "table-row outside table-body/header/footer") {
		t.Fatalf("unexpected structural warning for a properly nested table-row: %+v", sink.Entries())
	}
}

func TestRefineTableCellOutsideTableRowWarns(t *testing.T) {
	body := NewElement(TableBody)
	cell := NewElement(TableCell)
	body.AppendChild(cell)

	sink := newSink()
	Refine(body, sink)

	if !hasWarning(sink, "table-cell outside table-row") {
		t.Fatalf("expected a table-cell structural warning, got %+v", sink.Entries())
	}
}

func TestRefineListItemBodyOutsideListItemWarns(t *testing.T) {
	listBlock := NewElement(ListBlock)
	body := NewElement(ListItemBody)
	listBlock.AppendChild(body)

	sink := newSink()
	Refine(listBlock, sink)

	if !hasWarning(sink, "list-item-body/label outside list-item") {
		t.Fatalf("expected a list-item-body structural warning, got %+v", sink.Entries())
	}
}

func TestRefineRetrieveMarkerOutsideStaticContentWarns(t *testing.T) {
	flow := NewElement(Flow)
	rm := NewElement(RetrieveMarker)
	flow.AppendChild(rm)

	sink := newSink()
	Refine(flow, sink)

	if !hasWarning(sink, "retrieve-marker used outside static-content") {
		t.Fatalf("expected a retrieve-marker structural warning, got %+v", sink.Entries())
	}
}

func TestRefineRetrieveMarkerInsideStaticContentIsFine(t *testing.T) {
	sc := NewElement(StaticContent)
	rm := NewElement(RetrieveMarker)
	sc.AppendChild(rm)

	sink := newSink()
	Refine(sc, sink)

	if hasWarning(sink, "retrieve-marker used outside static-content") {
		t.Fatalf("unexpected structural warning for a properly nested retrieve-marker: %+v", sink.Entries())
	}
}

func TestRefineMarkerOutsideBlockWarns(t *testing.T) {
	inline := NewElement(Inline)
	marker := NewElement(Marker)
	inline.AppendChild(marker)

	sink := newSink()
	Refine(inline, sink)

	if !hasWarning(sink, "marker used outside a block-level formatting object") {
		t.Fatalf("expected a marker structural warning, got %+v", sink.Entries())
	}
}

func TestRefineDoesNotRemoveNodesOnViolation(t *testing.T) {
	table := NewElement(Table)
	row := NewElement(TableRow)
	table.AppendChild(row)

	sink := newSink()
	Refine(table, sink)

	if len(table.Children) != 1 {
		t.Fatalf("Refine must keep structurally invalid nodes in place, got %d children", len(table.Children))
	}
}
