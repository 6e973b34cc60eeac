// Package deck turns summarized product records into an ordered slide
// sequence and renders it to a deck file.
package deck

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/deckpipe/core"
)

// maxSlideImages caps pictures per overview slide; a grid holds four
// cells and anything beyond is dropped silently.
const maxSlideImages = 4

// Per-field body text when a record somehow carries an empty list.
const (
	noSpecifications = "Specifications not available"
	noIntegration    = "Content integration information not available"
	noInfrastructure = "Infrastructure requirements not available"
)

// Assemble builds the full slide sequence for a deck: one title slide, a
// fixed four-slide block per product in input order, one conclusion slide.
// Assembly is pure: records in, slide descriptions out.
func Assemble(products []core.ProductRecord, title, subtitle string) core.Presentation {
	slides := make([]core.SlideDescription, 0, len(products)*4+2)

	slides = append(slides, core.SlideDescription{
		Title:     title,
		BodyLines: []string{subtitle},
		Kind:      core.SlideTitle,
	})

	for _, p := range products {
		slides = append(slides, overviewSlide(p))
		slides = append(slides, bulletSlide(
			fmt.Sprintf("%s: Key Specifications", p.Name),
			p.Specifications, noSpecifications, core.SlideSpecifications))
		slides = append(slides, bulletSlide(
			fmt.Sprintf("%s: Content Integration", p.Name),
			p.ContentIntegration, noIntegration, core.SlideIntegration))
		slides = append(slides, bulletSlide(
			fmt.Sprintf("%s: Infrastructure Requirements", p.Name),
			p.InfrastructureRequirements, noInfrastructure, core.SlideInfrastructure))
	}

	slides = append(slides, core.SlideDescription{
		Title: "Thank You",
		BodyLines: []string{
			"Thank you for your interest in our products.",
			"Questions and follow-ups are welcome.",
		},
		Kind: core.SlideConclusion,
	})

	return core.Presentation{Title: title, Subtitle: subtitle, Slides: slides}
}

// overviewSlide carries the product overview text plus up to four images.
func overviewSlide(p core.ProductRecord) core.SlideDescription {
	images := p.Images
	if len(images) > maxSlideImages {
		images = images[:maxSlideImages]
	}

	var body []string
	for _, line := range strings.Split(p.Overview, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			body = append(body, line)
		}
	}

	return core.SlideDescription{
		Title:     fmt.Sprintf("%s: Product Overview", p.Name),
		BodyLines: body,
		Images:    images,
		Kind:      core.SlideOverview,
	}
}

// bulletSlide renders a list field as literal bulleted lines in document
// order; an empty list renders the field's "not available" string.
func bulletSlide(title string, items []string, empty string, kind core.SlideKind) core.SlideDescription {
	body := items
	if len(body) == 0 {
		body = []string{empty}
	}
	return core.SlideDescription{Title: title, BodyLines: body, Kind: kind}
}
