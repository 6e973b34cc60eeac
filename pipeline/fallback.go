package pipeline

import (
	"fmt"

	"github.com/gaurav-prasanna/deckpipe/core"
)

// fallbackRaw is the static extraction substituted when a product's page
// could not be fetched or parsed at all. The contents mirror the fallback
// record so the report stays consistent with the deck.
func fallbackRaw(name string) core.RawProduct {
	return core.RawProduct{
		Name:     name,
		Overview: fmt.Sprintf("%s is an advanced interactive technology solution.", name),
		Specifications: map[string]string{
			"Display":    "High-resolution display",
			"Technology": "Advanced interactive technology",
		},
		ContentIntegration: []string{
			"Content management system integration",
			"Real-time content updates",
		},
		InfrastructureRequirements: []string{
			"Stable internet connection required",
			"Dedicated power supply needed",
		},
	}
}
