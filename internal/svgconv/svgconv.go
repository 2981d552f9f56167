// Package svgconv implements the SvgConverter external collaborator
// named in spec §6: given inline SVG content from
// fo:instream-foreign-object, report its intrinsic viewBox/bounding
// box so the page formatter can size and place it, without rasterizing
// or converting it to PDF vector operators (explicitly out of scope).
// Grounded on the teacher's internal/render/pdf image handling (which
// has no SVG support at all — the teacher only rasters image/* formats)
// extended with github.com/srwiley/oksvg (SVG parsing); only the
// parsed viewBox is read, and path geometry is not walked.
package svgconv

import (
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/xsllayout/xsl-layout/internal/diag"
)

// BoundingBox is the intrinsic size of a parsed SVG document, in its own
// user-unit coordinate system.
type BoundingBox struct {
	Width, Height float64
}

// Converter is the SvgConverter collaborator.
type Converter interface {
	BoundingBox(svgMarkup string) (BoundingBox, error)
}

type oksvgConverter struct{}

// New returns a Converter backed by oksvg's SVG parser, consulted only
// for the parsed document's ViewBox/Width/Height — never for rasterized
// output.
func New() Converter {
	return oksvgConverter{}
}

func (oksvgConverter) BoundingBox(svgMarkup string) (BoundingBox, error) {
	icon, err := oksvg.ReadIconStream(strings.NewReader(svgMarkup))
	if err != nil {
		return BoundingBox{}, diag.Fatal(diag.UnsupportedFeat, "unparseable SVG content: %v", err)
	}
	vb := icon.ViewBox
	if vb.W <= 0 || vb.H <= 0 {
		return BoundingBox{}, diag.Fatal(diag.InvalidDocument, "SVG document has no usable viewBox")
	}
	return BoundingBox{Width: vb.W, Height: vb.H}, nil
}
