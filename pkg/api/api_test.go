package api

import (
	"strings"
	"testing"

	"github.com/xsllayout/xsl-layout/internal/area"
	"github.com/xsllayout/xsl-layout/internal/pagination"
)

const minimalDocument = `<?xml version="1.0"?>
<fo:root xmlns:fo="http://www.w3.org/1999/XSL/Format">
  <fo:layout-master-set>
    <fo:simple-page-master master-name="letter" page-width="612pt" page-height="792pt"
        margin-top="72pt" margin-bottom="72pt" margin-left="72pt" margin-right="72pt">
      <fo:region-body/>
    </fo:simple-page-master>
  </fo:layout-master-set>
  <fo:page-sequence master-reference="letter">
    <fo:flow flow-name="xsl-region-body">
      <fo:block font-size="14pt">Hello, world.</fo:block>
      <fo:block>A second paragraph with a little more text in it.</fo:block>
    </fo:flow>
  </fo:page-sequence>
</fo:root>`

func TestConvertProducesOnePageWithBothBlocks(t *testing.T) {
	result, err := New().ConvertString(minimalDocument)
	if err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}
	if len(result.Tree.Pages) != 1 {
		t.Fatalf("got %d pages, want 1 for a short document", len(result.Tree.Pages))
	}
	page := result.Tree.Pages[0]
	if len(page.Regions) != 1 || page.Regions[0].Name != "body" {
		t.Fatalf("page regions = %+v, want a single body region", page.Regions)
	}
	if got := len(page.Regions[0].Children); got != 2 {
		t.Fatalf("got %d block areas in region-body, want 2", got)
	}
}

func TestConvertMissingLayoutMasterSetIsFatal(t *testing.T) {
	const bad = `<?xml version="1.0"?>
<fo:root xmlns:fo="http://www.w3.org/1999/XSL/Format">
  <fo:page-sequence master-reference="letter">
    <fo:flow flow-name="xsl-region-body">
      <fo:block>orphaned</fo:block>
    </fo:flow>
  </fo:page-sequence>
</fo:root>`

	_, err := New().ConvertString(bad)
	if err == nil {
		t.Fatalf("Convert succeeded on a page-sequence with no usable page master, want a fatal error")
	}
}

func TestConvertMalformedXMLIsFatal(t *testing.T) {
	_, err := New().ConvertString("<fo:root><unclosed>")
	if err == nil {
		t.Fatalf("Convert succeeded on malformed XML, want a fatal InvalidDocument error")
	}
}

// tinyTransparentPNGBase64 is the well-known smallest valid 1x1
// transparent PNG, used to exercise the real decode path end to end
// without depending on an external file.
const tinyTransparentPNGBase64 = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAQAAAC1HAwCAAAAC0lEQVR42mP8z8BQDwAEhQGAhKmMIQAAAABJRU5ErkJggg=="

func TestConvertExternalGraphicDecodesDataURLImage(t *testing.T) {
	doc := `<?xml version="1.0"?>
<fo:root xmlns:fo="http://www.w3.org/1999/XSL/Format">
  <fo:layout-master-set>
    <fo:simple-page-master master-name="letter" page-width="612pt" page-height="792pt">
      <fo:region-body/>
    </fo:simple-page-master>
  </fo:layout-master-set>
  <fo:page-sequence master-reference="letter">
    <fo:flow flow-name="xsl-region-body">
      <fo:external-graphic src="data:image/png;base64,` + tinyTransparentPNGBase64 + `"/>
    </fo:flow>
  </fo:page-sequence>
</fo:root>`

	result, err := New().ConvertString(doc)
	if err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}
	children := result.Tree.Pages[0].Regions[0].Children
	if len(children) != 1 {
		t.Fatalf("got %d areas in region-body, want 1 image area", len(children))
	}
	img, ok := children[0].(*area.ImageArea)
	if !ok {
		t.Fatalf("area = %T, want *area.ImageArea", children[0])
	}
	if img.Bounds().Width != 1 || img.Bounds().Height != 1 {
		t.Fatalf("image bounds = %+v, want the PNG's intrinsic 1x1 size", img.Bounds())
	}
	for _, d := range result.Diagnostics {
		if d.Message == "could not decode image resource, using declared/default size" {
			t.Fatalf("a well-formed PNG must decode successfully, got diagnostic: %+v", d)
		}
	}
}

func TestConvertInstreamForeignObjectSizesFromSVGViewBox(t *testing.T) {
	doc := `<?xml version="1.0"?>
<fo:root xmlns:fo="http://www.w3.org/1999/XSL/Format">
  <fo:layout-master-set>
    <fo:simple-page-master master-name="letter" page-width="612pt" page-height="792pt">
      <fo:region-body/>
    </fo:simple-page-master>
  </fo:layout-master-set>
  <fo:page-sequence master-reference="letter">
    <fo:flow flow-name="xsl-region-body">
      <fo:instream-foreign-object>
        <svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 40 30"/>
      </fo:instream-foreign-object>
    </fo:flow>
  </fo:page-sequence>
</fo:root>`

	result, err := New().ConvertString(doc)
	if err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}
	children := result.Tree.Pages[0].Regions[0].Children
	if len(children) != 1 {
		t.Fatalf("got %d areas in region-body, want 1 image area", len(children))
	}
	img, ok := children[0].(*area.ImageArea)
	if !ok {
		t.Fatalf("area = %T, want *area.ImageArea", children[0])
	}
	if img.Bounds().Width != 40 || img.Bounds().Height != 30 {
		t.Fatalf("image bounds = %+v, want the SVG's viewBox size 40x30", img.Bounds())
	}
	for _, d := range result.Diagnostics {
		if d.Message == "could not parse instream-foreign-object content, using declared/default size" {
			t.Fatalf("a well-formed SVG must size successfully, got diagnostic: %+v", d)
		}
	}
}

func TestConvertFloatEmitsOneTimeDiagnostic(t *testing.T) {
	doc := `<?xml version="1.0"?>
<fo:root xmlns:fo="http://www.w3.org/1999/XSL/Format">
  <fo:layout-master-set>
    <fo:simple-page-master master-name="letter" page-width="612pt" page-height="792pt">
      <fo:region-body/>
    </fo:simple-page-master>
  </fo:layout-master-set>
  <fo:page-sequence master-reference="letter">
    <fo:flow flow-name="xsl-region-body">
      <fo:float float="start"><fo:block>aside</fo:block></fo:float>
      <fo:float float="start"><fo:block>another aside</fo:block></fo:float>
      <fo:block>main content</fo:block>
    </fo:flow>
  </fo:page-sequence>
</fo:root>`

	result, err := New().ConvertString(doc)
	if err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}
	count := 0
	for _, d := range result.Diagnostics {
		if d.Message == "fo:float is placed in document order without side-area reduction; following content does not wrap around it" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("got %d float diagnostics, want exactly 1 (warned once per document)", count)
	}
}

func TestConvertUnknownElementRecordsDiagnosticButContinues(t *testing.T) {
	const doc = `<?xml version="1.0"?>
<fo:root xmlns:fo="http://www.w3.org/1999/XSL/Format">
  <fo:layout-master-set>
    <fo:simple-page-master master-name="letter" page-width="612pt" page-height="792pt">
      <fo:region-body/>
    </fo:simple-page-master>
  </fo:layout-master-set>
  <fo:page-sequence master-reference="letter">
    <fo:flow flow-name="xsl-region-body">
      <fo:not-a-real-element/>
      <fo:block>still here</fo:block>
    </fo:flow>
  </fo:page-sequence>
</fo:root>`

	result, err := New().ConvertString(doc)
	if err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}
	found := false
	for _, d := range result.Diagnostics {
		if d.Message == "unknown element skipped" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an 'unknown element skipped' diagnostic, got %+v", result.Diagnostics)
	}
}

const tableDocument = `<?xml version="1.0"?>
<fo:root xmlns:fo="http://www.w3.org/1999/XSL/Format">
  <fo:layout-master-set>
    <fo:simple-page-master master-name="letter" page-width="612pt" page-height="792pt"
        margin-top="72pt" margin-bottom="72pt" margin-left="72pt" margin-right="72pt">
      <fo:region-body/>
    </fo:simple-page-master>
  </fo:layout-master-set>
  <fo:page-sequence master-reference="letter">
    <fo:flow flow-name="xsl-region-body">
      <fo:table>
        <fo:table-column column-width="100pt"/>
        <fo:table-column column-width="100pt"/>
        <fo:table-header>
          <fo:table-row>
            <fo:table-cell><fo:block>Name</fo:block></fo:table-cell>
            <fo:table-cell><fo:block>Score</fo:block></fo:table-cell>
          </fo:table-row>
        </fo:table-header>
        <fo:table-body>
          <fo:table-row>
            <fo:table-cell><fo:block>Alice</fo:block></fo:table-cell>
            <fo:table-cell><fo:block>10</fo:block></fo:table-cell>
          </fo:table-row>
          <fo:table-row>
            <fo:table-cell><fo:block>Bob</fo:block></fo:table-cell>
            <fo:table-cell><fo:block>20</fo:block></fo:table-cell>
          </fo:table-row>
        </fo:table-body>
      </fo:table>
    </fo:flow>
  </fo:page-sequence>
</fo:root>`

func TestConvertTableProducesTableAreaWithHeaderAndBodyRows(t *testing.T) {
	result, err := New().ConvertString(tableDocument)
	if err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}
	children := result.Tree.Pages[0].Regions[0].Children
	if len(children) != 1 {
		t.Fatalf("got %d region children, want 1 (the table)", len(children))
	}
	table, ok := children[0].(*area.TableArea)
	if !ok {
		t.Fatalf("region child is %T, want *area.TableArea", children[0])
	}
	if len(table.ColumnWidths) != 2 {
		t.Fatalf("got %d column widths, want 2 (one per fo:table-column)", len(table.ColumnWidths))
	}
	if len(table.Header) != 1 {
		t.Fatalf("got %d header rows, want 1", len(table.Header))
	}
	if len(table.Header[0].Cells) != 2 {
		t.Fatalf("got %d header cells, want 2", len(table.Header[0].Cells))
	}
	if len(table.Body) != 2 {
		t.Fatalf("got %d body rows, want 2", len(table.Body))
	}
	for i, row := range table.Body {
		if len(row.Cells) != 2 {
			t.Fatalf("body row %d has %d cells, want 2", i, len(row.Cells))
		}
		for _, cell := range row.Cells {
			if len(cell.Children) == 0 {
				t.Fatalf("body row %d cell has no laid-out content, want its fo:block rendered", i)
			}
		}
	}
}

func TestConvertTableColumnSpanAssignsRemainingColumn(t *testing.T) {
	const doc = `<?xml version="1.0"?>
<fo:root xmlns:fo="http://www.w3.org/1999/XSL/Format">
  <fo:layout-master-set>
    <fo:simple-page-master master-name="letter" page-width="612pt" page-height="792pt"
        margin-top="72pt" margin-bottom="72pt" margin-left="72pt" margin-right="72pt">
      <fo:region-body/>
    </fo:simple-page-master>
  </fo:layout-master-set>
  <fo:page-sequence master-reference="letter">
    <fo:flow flow-name="xsl-region-body">
      <fo:table>
        <fo:table-body>
          <fo:table-row>
            <fo:table-cell number-columns-spanned="2"><fo:block>spanning</fo:block></fo:table-cell>
          </fo:table-row>
          <fo:table-row>
            <fo:table-cell><fo:block>a</fo:block></fo:table-cell>
            <fo:table-cell><fo:block>b</fo:block></fo:table-cell>
          </fo:table-row>
        </fo:table-body>
      </fo:table>
    </fo:flow>
  </fo:page-sequence>
</fo:root>`

	result, err := New().ConvertString(doc)
	if err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}
	table, ok := result.Tree.Pages[0].Regions[0].Children[0].(*area.TableArea)
	if !ok {
		t.Fatalf("region child is %T, want *area.TableArea", result.Tree.Pages[0].Regions[0].Children[0])
	}
	if len(table.Body) != 2 {
		t.Fatalf("got %d body rows, want 2", len(table.Body))
	}
	if got := table.Body[0].Cells[0].ColumnSpan; got != 2 {
		t.Fatalf("spanning cell's ColumnSpan = %d, want 2", got)
	}
	if got := len(table.Body[1].Cells); got != 2 {
		t.Fatalf("second row has %d cells, want 2 (no column left held by the first row's span)", got)
	}
}

func TestConvertLineBreakingOptimalStillProducesLineAreas(t *testing.T) {
	const doc = `<?xml version="1.0"?>
<fo:root xmlns:fo="http://www.w3.org/1999/XSL/Format">
  <fo:layout-master-set>
    <fo:simple-page-master master-name="letter" page-width="200pt" page-height="792pt"
        margin-top="36pt" margin-bottom="36pt" margin-left="36pt" margin-right="36pt">
      <fo:region-body/>
    </fo:simple-page-master>
  </fo:layout-master-set>
  <fo:page-sequence master-reference="letter">
    <fo:flow flow-name="xsl-region-body">
      <fo:block>This paragraph has enough words in it to wrap across more than a single line once it is laid out in a narrow column.</fo:block>
    </fo:flow>
  </fo:page-sequence>
</fo:root>`

	result, err := WithOptions(WithLineBreaking(pagination.LineBreakingOptimal)).ConvertString(doc)
	if err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}
	block, ok := result.Tree.Pages[0].Regions[0].Children[0].(*area.BlockArea)
	if !ok {
		t.Fatalf("region child is %T, want *area.BlockArea", result.Tree.Pages[0].Regions[0].Children[0])
	}
	if len(block.Children) < 2 {
		t.Fatalf("got %d lines, want more than 1 for a long paragraph in a narrow column", len(block.Children))
	}
	for _, c := range block.Children {
		line, ok := c.(*area.LineArea)
		if !ok {
			t.Fatalf("block child is %T, want *area.LineArea", c)
		}
		if len(line.Children) == 0 {
			t.Fatalf("line has no InlineArea children")
		}
	}
}

func TestConvertHyphenationEnabledCanHyphenateALongWord(t *testing.T) {
	const doc = `<?xml version="1.0"?>
<fo:root xmlns:fo="http://www.w3.org/1999/XSL/Format">
  <fo:layout-master-set>
    <fo:simple-page-master master-name="letter" page-width="110pt" page-height="792pt"
        margin-top="36pt" margin-bottom="36pt" margin-left="36pt" margin-right="36pt">
      <fo:region-body/>
    </fo:simple-page-master>
  </fo:layout-master-set>
  <fo:page-sequence master-reference="letter">
    <fo:flow flow-name="xsl-region-body">
      <fo:block>internationalization</fo:block>
    </fo:flow>
  </fo:page-sequence>
</fo:root>`

	hyph := pagination.DefaultHyphenationOptions()
	hyph.Enabled = true
	result, err := WithOptions(WithHyphenation(hyph)).ConvertString(doc)
	if err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}
	block, ok := result.Tree.Pages[0].Regions[0].Children[0].(*area.BlockArea)
	if !ok {
		t.Fatalf("region child is %T, want *area.BlockArea", result.Tree.Pages[0].Regions[0].Children[0])
	}
	if len(block.Children) == 0 {
		t.Fatalf("got no lines for a single long word")
	}
	// A single long word in a narrow column only fits at all if it's
	// allowed to break mid-word; this just confirms the hyphenator is
	// actually being consulted rather than every word being treated as
	// unbreakable (which would overflow the line instead).
	var sawMultipleRuns bool
	for _, c := range block.Children {
		line := c.(*area.LineArea)
		if len(line.Children) > 1 {
			sawMultipleRuns = true
		}
	}
	if len(block.Children) < 2 && !sawMultipleRuns {
		t.Fatalf("word was not split across lines or runs even with hyphenation enabled and a column narrower than the word")
	}
}

func TestConvertSingleLineBlockProducesLineAndInlineAreas(t *testing.T) {
	const doc = `<?xml version="1.0"?>
<fo:root xmlns:fo="http://www.w3.org/1999/XSL/Format">
  <fo:layout-master-set>
    <fo:simple-page-master master-name="letter" page-width="612pt" page-height="792pt"
        margin-top="72pt" margin-bottom="72pt" margin-left="72pt" margin-right="72pt">
      <fo:region-body/>
    </fo:simple-page-master>
  </fo:layout-master-set>
  <fo:page-sequence master-reference="letter">
    <fo:flow flow-name="xsl-region-body">
      <fo:block>Hello world</fo:block>
    </fo:flow>
  </fo:page-sequence>
</fo:root>`

	result, err := New().ConvertString(doc)
	if err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}
	block, ok := result.Tree.Pages[0].Regions[0].Children[0].(*area.BlockArea)
	if !ok {
		t.Fatalf("region child is %T, want *area.BlockArea", result.Tree.Pages[0].Regions[0].Children[0])
	}
	if len(block.Children) != 1 {
		t.Fatalf("got %d lines, want 1 for a short block in a wide page", len(block.Children))
	}
	line, ok := block.Children[0].(*area.LineArea)
	if !ok {
		t.Fatalf("block child is %T, want *area.LineArea", block.Children[0])
	}
	if len(line.Children) != 2 {
		t.Fatalf("got %d inline runs, want 2 (one per word, flushed at the interword glue)", len(line.Children))
	}
	var words []string
	for _, c := range line.Children {
		inline, ok := c.(*area.InlineArea)
		if !ok {
			t.Fatalf("line child is %T, want *area.InlineArea", c)
		}
		if inline.Bounds().Width <= 0 {
			t.Fatalf("inline area %q has non-positive width", inline.Text)
		}
		words = append(words, inline.Text)
	}
	if got := strings.Join(words, " "); got != "Hello world" {
		t.Fatalf("reconstructed text = %q, want %q", got, "Hello world")
	}
}
