package locate

import (
	"errors"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"gotest.tools/assert"

	"github.com/gaurav-prasanna/deckpipe/core"
)

func parse(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	assert.NilError(t, err)
	return doc
}

// filler pads a region past the text-length thresholds.
var filler = strings.Repeat("product detail text ", 20)

func TestNameForms(t *testing.T) {
	forms := NameForms("Interactive Bar!")
	assert.DeepEqual(t, forms, []string{
		"interactive bar",
		"interactive-bar",
		"interactive_bar",
		"interactivebar",
	})
}

func TestNameFormsSingleWord(t *testing.T) {
	// All separator joins collapse to the same string.
	assert.DeepEqual(t, NameForms("Holoscreen"), []string{"holoscreen"})
}

func TestSlugForm(t *testing.T) {
	assert.Equal(t, SlugForm("Interactive Bar"), "interactive_bar")
	assert.Equal(t, SlugForm("  Digital   Flip-Book  "), "digital_flip_book")
}

func TestLocateByID(t *testing.T) {
	doc := parse(t, `<html><body>
		<div><span id="interactive-bar-section">Interactive Bar</span>`+filler+`</div>
	</body></html>`)

	region, err := New().Locate(doc, "Interactive Bar")
	assert.NilError(t, err)
	assert.Assert(t, strings.Contains(region.Text(), "Interactive Bar"))
}

func TestLocateByClass(t *testing.T) {
	doc := parse(t, `<html><body>
		<div><p class="interactivebar">x</p>`+filler+`</div>
	</body></html>`)

	region, err := New().Locate(doc, "Interactive Bar")
	assert.NilError(t, err)
	assert.Equal(t, goquery.NodeName(region), "div")
}

func TestLocateByHeading(t *testing.T) {
	doc := parse(t, `<html><body>
		<article><h2>Digital Flipbook</h2><p>`+filler+`</p></article>
	</body></html>`)

	region, err := New().Locate(doc, "Digital Flipbook")
	assert.NilError(t, err)
	assert.Equal(t, goquery.NodeName(region), "article")
}

func TestLocateRejectsThinContainers(t *testing.T) {
	doc := parse(t, `<html><body>
		<div><span id="holoscreen">Holoscreen</span> short</div>
	</body></html>`)

	_, err := New().Locate(doc, "Holoscreen")
	assert.Assert(t, errors.Is(err, core.ErrRegionNotFound))
}

func TestLocateTextScanFallback(t *testing.T) {
	// No id, class, data attribute, or exact heading; the name only
	// appears inside a paragraph. The scan needs a larger container.
	doc := parse(t, `<html><body>
		<div><p>Our Holoscreen display is the centerpiece.</p>`+filler+filler+`</div>
	</body></html>`)

	region, err := New().Locate(doc, "Holoscreen")
	assert.NilError(t, err)
	assert.Assert(t, strings.Contains(region.Text(), "centerpiece"))
}

func TestLocateNotFound(t *testing.T) {
	doc := parse(t, `<html><body><div>`+filler+`</div></body></html>`)

	_, err := New().Locate(doc, "Interactive Bar")
	assert.Assert(t, errors.Is(err, core.ErrRegionNotFound))
}

func TestStrategyOrder(t *testing.T) {
	// Both an id match and a heading match exist; the id strategy wins.
	doc := parse(t, `<html><body>
		<div id="wall"><span id="interactive-bar">x</span>`+filler+`id-region</div>
		<article><h2>Interactive Bar</h2><p>`+filler+`heading-region</p></article>
	</body></html>`)

	region, err := New().Locate(doc, "Interactive Bar")
	assert.NilError(t, err)
	assert.Assert(t, strings.Contains(region.Text(), "id-region"))
}
