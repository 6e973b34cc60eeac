package deck

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"gotest.tools/assert"

	"github.com/gaurav-prasanna/deckpipe/core"
)

func TestPDFWriterExtension(t *testing.T) {
	assert.Equal(t, NewPDFWriter("").Extension(), ".pdf")
}

func TestPDFWriterRendersDeck(t *testing.T) {
	pres := Assemble([]core.ProductRecord{sampleRecord("Holoscreen")}, "Title", "Subtitle")

	data, err := NewPDFWriter("").Write(pres)
	assert.NilError(t, err)
	assert.Assert(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestPDFWriterEmbedsImages(t *testing.T) {
	dir := t.TempDir()
	imgPath := filepath.Join(dir, "shot.png")
	var buf bytes.Buffer
	assert.NilError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))))
	assert.NilError(t, os.WriteFile(imgPath, buf.Bytes(), 0644))

	rec := sampleRecord("Holoscreen")
	rec.Images = []core.LocalImageRef{{LocalPath: imgPath}}

	data, err := NewPDFWriter("").Write(Assemble([]core.ProductRecord{rec}, "T", "S"))
	assert.NilError(t, err)
	assert.Assert(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestPDFWriterSkipsMissingImages(t *testing.T) {
	rec := sampleRecord("Holoscreen")
	rec.Images = []core.LocalImageRef{
		{LocalPath: filepath.Join(t.TempDir(), "evicted.jpg")},
	}

	data, err := NewPDFWriter("").Write(Assemble([]core.ProductRecord{rec}, "T", "S"))
	assert.NilError(t, err)
	assert.Assert(t, len(data) > 0)
}

func TestImageOptionsFor(t *testing.T) {
	assert.Equal(t, imageOptionsFor("a.jpg").ImageType, "JPG")
	assert.Equal(t, imageOptionsFor("a.JPEG").ImageType, "JPG")
	assert.Equal(t, imageOptionsFor("a.png").ImageType, "PNG")
	assert.Equal(t, imageOptionsFor("a.webp").ImageType, "")
}
