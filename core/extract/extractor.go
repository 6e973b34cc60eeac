// Package extract pulls typed product fields out of a content region.
// Extraction is best-effort by contract: a pass that finds nothing returns
// an empty or default value, never an error. Only page-level parse
// failures propagate.
package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// FallbackOverview is returned when no overview-like text can be found.
const FallbackOverview = "Product overview not available"

// overviewSelectors are tried in order for overview-like content.
var overviewSelectors = []string{
	".overview", ".description", ".intro", ".summary", ".product-description",
}

// integrationKeywords mark a text node as content-integration material.
var integrationKeywords = []string{
	"integration", "cms", "content", "management", "api", "connectivity",
}

// infrastructureKeywords mark a text node as an infrastructure requirement.
var infrastructureKeywords = []string{
	"requirement", "installation", "setup", "power", "network", "system",
}

// Extractor runs the field extraction passes over a content region.
type Extractor struct {
	// MaxListItems caps the integration and infrastructure lists.
	MaxListItems int
	// MaxImages caps the collected image URLs.
	MaxImages int
}

// New creates an Extractor with the default caps.
func New() *Extractor {
	return &Extractor{MaxListItems: 10, MaxImages: 10}
}

// Overview returns the first overview-like text in the region: a semantic
// selector match longer than 50 characters, else the first substantial
// paragraph, else the fixed fallback string.
func (e *Extractor) Overview(region *goquery.Selection) string {
	for _, sel := range overviewSelectors {
		text := strings.TrimSpace(region.Find(sel).First().Text())
		if len(text) > 50 {
			return text
		}
	}

	var overview string
	region.Find("p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
		text := strings.TrimSpace(p.Text())
		if len(text) > 50 {
			overview = text
			return false
		}
		return true
	})
	if overview != "" {
		return overview
	}
	return FallbackOverview
}

// Specifications collects key/value pairs from list items containing a
// colon and from two-cell table rows. Later keys overwrite earlier ones;
// consumers must not rely on map ordering.
func (e *Extractor) Specifications(region *goquery.Selection) map[string]string {
	specs := make(map[string]string)

	region.Find("ul li, ol li").Each(func(_ int, item *goquery.Selection) {
		addSpecLine(specs, item.Text())
	})

	region.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td, th")
		if cells.Length() < 2 {
			return
		}
		key := strings.TrimSpace(cells.Eq(0).Text())
		value := strings.TrimSpace(cells.Eq(1).Text())
		if key != "" && value != "" {
			specs[key] = value
		}
	})

	return specs
}

// addSpecLine splits text on the first colon into a key/value pair and
// records it if both halves are non-empty.
func addSpecLine(specs map[string]string, text string) {
	key, value, found := strings.Cut(strings.TrimSpace(text), ":")
	if !found {
		return
	}
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)
	if key != "" && value != "" {
		specs[key] = value
	}
}

// ContentIntegration returns text nodes that read like integration
// features: 20-300 characters and at least one integration keyword.
func (e *Extractor) ContentIntegration(region *goquery.Selection) []string {
	return e.keywordFilter(region, integrationKeywords, 20, 300, e.MaxListItems)
}

// InfrastructureRequirements returns text nodes that read like deployment
// requirements: 20-300 characters and at least one requirement keyword.
func (e *Extractor) InfrastructureRequirements(region *goquery.Selection) []string {
	return e.keywordFilter(region, infrastructureKeywords, 20, 300, e.MaxListItems)
}

// keywordFilter scans paragraph, list and div text in document order and
// keeps entries within the length bounds that contain any keyword.
func (e *Extractor) keywordFilter(region *goquery.Selection, keywords []string, minLen, maxLen, cap int) []string {
	var items []string
	region.Find("p, li, div").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := strings.TrimSpace(s.Text())
		if len(text) <= minLen || len(text) >= maxLen {
			return true
		}
		if !containsAny(strings.ToLower(text), keywords) {
			return true
		}
		items = append(items, text)
		return len(items) < cap
	})
	return items
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
