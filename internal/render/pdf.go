package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"codeberg.org/go-pdf/fpdf"

	"flyerapi/internal/flyer"
)

// PDFPackager places a captured bitmap onto a single fixed A4 portrait page.
// The image is always scaled to the full 210×297mm page regardless of its
// pixel dimensions, which keeps the output printable on standard paper; the
// rasterizer's fixed capture dimensions are what guarantee the aspect ratio
// matches exactly.
type PDFPackager struct {
	title   string
	creator string
}

var _ Packager = (*PDFPackager)(nil)

// NewPDFPackager creates a packager stamping the given document metadata.
func NewPDFPackager(title, creator string) *PDFPackager {
	return &PDFPackager{title: title, creator: creator}
}

// Package serializes img into a one-page A4 PDF. On any failure no bytes are
// returned; fpdf accumulates its first error internally, so a single check
// after placement covers the whole build.
func (p *PDFPackager) Package(img image.Image) ([]byte, error) {
	if img == nil {
		return nil, fmt.Errorf("nil bitmap")
	}

	var imgBuf bytes.Buffer
	if err := png.Encode(&imgBuf, img); err != nil {
		return nil, fmt.Errorf("encode bitmap: %w", err)
	}

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetTitle(p.title, true)
	doc.SetCreator(p.creator, true)
	doc.AddPage()

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	doc.RegisterImageOptionsReader("flyer", opts, &imgBuf)
	doc.ImageOptions("flyer", 0, 0, flyer.PageWidthMM, flyer.PageHeightMM, false, opts, 0, "")

	if doc.Err() {
		return nil, fmt.Errorf("build page: %w", doc.Error())
	}

	var out bytes.Buffer
	if err := doc.Output(&out); err != nil {
		return nil, fmt.Errorf("serialize: %w", err)
	}
	return out.Bytes(), nil
}
