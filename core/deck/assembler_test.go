package deck

import (
	"testing"

	"gotest.tools/assert"

	"github.com/gaurav-prasanna/deckpipe/core"
)

func sampleRecord(name string) core.ProductRecord {
	return core.ProductRecord{
		Name:                       name,
		Overview:                   "First overview line\nSecond overview line",
		Specifications:             []string{"Display: 4K UHD", "Weight: 42 kg"},
		ContentIntegration:         []string{"CMS playlists", "REST API"},
		InfrastructureRequirements: []string{"Dedicated circuit", "Wired network"},
	}
}

func TestAssembleSlideOrder(t *testing.T) {
	products := []core.ProductRecord{sampleRecord("Holoscreen"), sampleRecord("Interactive Bar")}

	pres := Assemble(products, "Deck Title", "Subtitle")

	assert.Equal(t, len(pres.Slides), 2+2*4)
	assert.Equal(t, pres.Slides[0].Kind, core.SlideTitle)
	assert.Equal(t, pres.Slides[0].Title, "Deck Title")

	kinds := []core.SlideKind{
		core.SlideOverview, core.SlideSpecifications,
		core.SlideIntegration, core.SlideInfrastructure,
	}
	for i, kind := range kinds {
		assert.Equal(t, pres.Slides[1+i].Kind, kind)
		assert.Equal(t, pres.Slides[5+i].Kind, kind)
	}

	assert.Equal(t, pres.Slides[1].Title, "Holoscreen: Product Overview")
	assert.Equal(t, pres.Slides[5].Title, "Interactive Bar: Product Overview")
	assert.Equal(t, pres.Slides[9].Kind, core.SlideConclusion)
}

func TestAssembleBulletBodies(t *testing.T) {
	pres := Assemble([]core.ProductRecord{sampleRecord("Holoscreen")}, "T", "S")

	specs := pres.Slides[2]
	assert.Equal(t, specs.Title, "Holoscreen: Key Specifications")
	assert.DeepEqual(t, specs.BodyLines, []string{"Display: 4K UHD", "Weight: 42 kg"})
}

func TestAssembleEmptyListsGetPlaceholders(t *testing.T) {
	pres := Assemble([]core.ProductRecord{{Name: "Bare", Overview: "x"}}, "T", "S")

	assert.DeepEqual(t, pres.Slides[2].BodyLines, []string{noSpecifications})
	assert.DeepEqual(t, pres.Slides[3].BodyLines, []string{noIntegration})
	assert.DeepEqual(t, pres.Slides[4].BodyLines, []string{noInfrastructure})
}

func TestOverviewSlideCapsImages(t *testing.T) {
	rec := sampleRecord("Holoscreen")
	for i := 0; i < 6; i++ {
		rec.Images = append(rec.Images, core.LocalImageRef{LocalPath: "img.jpg"})
	}

	slide := overviewSlide(rec)
	assert.Equal(t, len(slide.Images), 4)
	assert.DeepEqual(t, slide.BodyLines, []string{"First overview line", "Second overview line"})
}

func TestLayoutBoundaries(t *testing.T) {
	assert.Equal(t, core.LayoutFor(0), core.LayoutNone)
	assert.Equal(t, core.LayoutFor(1), core.LayoutSingle)
	assert.Equal(t, core.LayoutFor(2), core.LayoutSideBySide)
	assert.Equal(t, core.LayoutFor(3), core.LayoutGrid)
	assert.Equal(t, core.LayoutFor(4), core.LayoutGrid)
}
