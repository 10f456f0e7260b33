package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"

	"github.com/jung-kurt/gofpdf"
)

// PDFAssembler wraps one raster image into a single-page A4 portrait PDF,
// 30pt side and 40pt top margins, image scaled to the page width keeping its
// aspect ratio.
type PDFAssembler struct{}

func NewPDFAssembler() *PDFAssembler {
	return &PDFAssembler{}
}

func (a *PDFAssembler) Assemble(ctx context.Context, img image.Image) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("render: assembly aborted: %w", err)
	}

	var encoded bytes.Buffer
	if err := png.Encode(&encoded, img); err != nil {
		return nil, fmt.Errorf("render: failed to encode image: %w", err)
	}

	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.AddPage()

	pageWidth, _ := pdf.GetPageSize()
	imgWidth := pageWidth - 60
	bounds := img.Bounds()
	imgHeight := float64(bounds.Dy()) * imgWidth / float64(bounds.Dx())

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("remito", opts, &encoded)
	pdf.ImageOptions("remito", 30, 40, imgWidth, imgHeight, false, opts, 0, "")

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, fmt.Errorf("render: failed to assemble pdf: %w", err)
	}
	return out.Bytes(), nil
}
