// Deck writer backed by gofpdf. Slides become fixed-geometry 16:9
// landscape pages; pictures are placed at explicit positions and sizes
// according to the slide's image layout.
package deck

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/gaurav-prasanna/deckpipe/core"
)

// 16:9 page geometry in millimeters.
const (
	pageWidth  = 338.7
	pageHeight = 190.5
)

// PDFWriter renders a Presentation as a PDF slide deck.
type PDFWriter struct {
	// TemplatePath optionally points at a background image drawn behind
	// the title slide.
	TemplatePath string
}

// NewPDFWriter creates a PDFWriter. templatePath may be empty.
func NewPDFWriter(templatePath string) *PDFWriter {
	return &PDFWriter{TemplatePath: templatePath}
}

// Extension returns the deck file extension.
func (w *PDFWriter) Extension() string {
	return ".pdf"
}

// Write renders the deck to bytes. Rendering happens entirely in memory:
// a failure returns ErrAssemblyFailed and no partial output.
func (w *PDFWriter) Write(pres core.Presentation) ([]byte, error) {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "L",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: pageWidth, Ht: pageHeight},
	})
	pdf.SetAutoPageBreak(false, 0)

	// Core fonts are cp1252; scraped text and the bullet glyph are UTF-8.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, slide := range pres.Slides {
		w.renderSlide(pdf, tr, slide)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrAssemblyFailed, err)
	}
	return buf.Bytes(), nil
}

func (w *PDFWriter) renderSlide(pdf *gofpdf.Fpdf, tr func(string) string, slide core.SlideDescription) {
	pdf.AddPage()

	switch slide.Kind {
	case core.SlideTitle:
		w.renderTitleSlide(pdf, tr, slide)
	case core.SlideConclusion:
		w.renderCenteredSlide(pdf, tr, slide)
	default:
		w.renderContentSlide(pdf, tr, slide)
	}
}

// renderTitleSlide draws the optional template background, then the deck
// title and subtitle centered on the page.
func (w *PDFWriter) renderTitleSlide(pdf *gofpdf.Fpdf, tr func(string) string, slide core.SlideDescription) {
	if w.TemplatePath != "" {
		if _, err := os.Stat(w.TemplatePath); err == nil {
			pdf.ImageOptions(w.TemplatePath, 0, 0, pageWidth, pageHeight, false,
				imageOptionsFor(w.TemplatePath), 0, "")
		}
	}

	pdf.SetTextColor(30, 64, 175)
	pdf.SetFont("Helvetica", "B", 40)
	pdf.SetXY(20, 70)
	pdf.MultiCell(pageWidth-40, 16, tr(slide.Title), "", "C", false)

	pdf.SetTextColor(107, 114, 128)
	pdf.SetFont("Helvetica", "I", 18)
	pdf.SetX(20)
	for _, line := range slide.BodyLines {
		pdf.MultiCell(pageWidth-40, 10, tr(line), "", "C", false)
		pdf.SetX(20)
	}
	pdf.SetTextColor(0, 0, 0)
}

// renderCenteredSlide is the conclusion layout: big heading, centered body.
func (w *PDFWriter) renderCenteredSlide(pdf *gofpdf.Fpdf, tr func(string) string, slide core.SlideDescription) {
	pdf.SetTextColor(13, 148, 136)
	pdf.SetFont("Helvetica", "B", 32)
	pdf.SetXY(20, 65)
	pdf.MultiCell(pageWidth-40, 14, tr(slide.Title), "", "C", false)

	pdf.SetTextColor(31, 41, 55)
	pdf.SetFont("Helvetica", "", 16)
	pdf.SetX(20)
	for _, line := range slide.BodyLines {
		pdf.MultiCell(pageWidth-40, 9, tr(line), "", "C", false)
		pdf.SetX(20)
	}
	pdf.SetTextColor(0, 0, 0)
}

// renderContentSlide is the standard layout: heading, bulleted or plain
// body lines, and (on overview slides) pictures per the image layout.
func (w *PDFWriter) renderContentSlide(pdf *gofpdf.Fpdf, tr func(string) string, slide core.SlideDescription) {
	pdf.SetTextColor(124, 58, 237)
	pdf.SetFont("Helvetica", "B", 26)
	pdf.SetXY(18, 14)
	pdf.MultiCell(pageWidth-36, 12, tr(slide.Title), "", "L", false)

	pdf.SetTextColor(31, 41, 55)
	pdf.SetFont("Helvetica", "", 15)
	pdf.SetXY(18, 38)
	for _, line := range slide.BodyLines {
		text := line
		if bulleted(slide.Kind) {
			text = "• " + line
		}
		pdf.MultiCell(pageWidth-36, 9, tr(text), "", "L", false)
		pdf.SetX(18)
	}
	pdf.SetTextColor(0, 0, 0)

	if slide.Kind == core.SlideOverview && len(slide.Images) > 0 {
		w.placeImages(pdf, slide.Images)
	}
}

func bulleted(kind core.SlideKind) bool {
	switch kind {
	case core.SlideSpecifications, core.SlideIntegration, core.SlideInfrastructure:
		return true
	}
	return false
}

// placeImages positions pictures by the layout derived from the count:
// one centered large, two side by side at equal size, three or more in a
// 2x2 grid. Files evicted since extraction are skipped.
func (w *PDFWriter) placeImages(pdf *gofpdf.Fpdf, images []core.LocalImageRef) {
	switch core.LayoutFor(len(images)) {
	case core.LayoutSingle:
		w.placeImage(pdf, images[0], (pageWidth-150)/2, 75, 150, 100)
	case core.LayoutSideBySide:
		w.placeImage(pdf, images[0], 25, 80, 135, 90)
		w.placeImage(pdf, images[1], pageWidth-25-135, 80, 135, 90)
	case core.LayoutGrid:
		for i, img := range images {
			if i >= maxSlideImages {
				break
			}
			col := i % 2
			row := i / 2
			x := 40 + float64(col)*140
			y := 75 + float64(row)*55
			w.placeImage(pdf, img, x, y, 120, 50)
		}
	}
}

func (w *PDFWriter) placeImage(pdf *gofpdf.Fpdf, img core.LocalImageRef, x, y, width, height float64) {
	if _, err := os.Stat(img.LocalPath); err != nil {
		slog.Warn("skipping missing slide image", "path", img.LocalPath)
		return
	}
	pdf.ImageOptions(img.LocalPath, x, y, width, height, false,
		imageOptionsFor(img.LocalPath), 0, "")
}

func imageOptionsFor(path string) gofpdf.ImageOptions {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "jpg", "jpeg":
		ext = "JPG"
	case "png":
		ext = "PNG"
	case "gif":
		ext = "GIF"
	default:
		ext = ""
	}
	return gofpdf.ImageOptions{ImageType: ext, ReadDpi: false}
}
