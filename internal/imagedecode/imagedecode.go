// Package imagedecode implements the ImageDecoder external collaborator
// named in spec §6: given raw image bytes, report the image's intrinsic
// size (for fo:external-graphic's default content-width/content-height)
// without decoding into a renderable bitmap, since PDF image embedding
// is out of scope. Grounded on the teacher's internal/render/pdf
// decoders.go (which blank-imports image/jpeg, image/png, image/gif for
// format registration) and internal/res/loader.go (which sniffs MIME
// type from bytes before any decode), extended with
// github.com/h2non/filetype for byte-level sniffing and
// golang.org/x/image's extra decoders (webp, tiff, bmp) since the
// teacher only ever handled the three stdlib formats.
package imagedecode

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/xsllayout/xsl-layout/internal/diag"
)

// Dimensions is the intrinsic, unscaled size of a decoded image, in
// pixels, plus its detected MIME type.
type Dimensions struct {
	Width, Height int
	MIMEType      string
}

// Decoder is the ImageDecoder collaborator.
type Decoder interface {
	Decode(data []byte) (Dimensions, error)
}

type byteSniffDecoder struct{}

// New returns a Decoder that sniffs format from the byte stream and
// decodes only the image header (image.DecodeConfig), never the full
// pixel grid — this pipeline never rasterizes, it only needs size.
func New() Decoder {
	return byteSniffDecoder{}
}

func (byteSniffDecoder) Decode(data []byte) (Dimensions, error) {
	if len(data) == 0 {
		return Dimensions{}, diag.Fatal(diag.InvalidDocument, "empty image data")
	}
	kind, err := filetype.Match(data)
	mime := "application/octet-stream"
	if err == nil && kind != filetype.Unknown {
		mime = kind.MIME.Value
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Dimensions{}, diag.Fatal(diag.UnsupportedFeat, "unrecognized image format: %v", err)
	}
	return Dimensions{Width: cfg.Width, Height: cfg.Height, MIMEType: mime}, nil
}

// Sniff reports just the MIME type, used when a placeholder area is
// sufficient (diagnostic-and-continue path rather than the fatal
// Decode above), per spec §4.A/§7 "recoverable diagnostic" handling for
// an unreadable graphic.
func Sniff(data []byte) (string, bool) {
	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown {
		return "", false
	}
	return kind.MIME.Value, true
}
