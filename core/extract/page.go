package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gaurav-prasanna/deckpipe/core"
)

// Region extracts every product field from a located content region.
func (e *Extractor) Region(region *goquery.Selection, product, pageURL string) core.RawProduct {
	regionHTML, _ := goquery.OuterHtml(region)
	return core.RawProduct{
		Name:                       product,
		Overview:                   e.Overview(region),
		Specifications:             e.Specifications(region),
		ContentIntegration:         e.ContentIntegration(region),
		InfrastructureRequirements: e.InfrastructureRequirements(region),
		ImageURLs:                  e.ImageURLs(region, pageURL),
		RegionHTML:                 regionHTML,
	}
}

// Whole-page extraction applies when no product region could be located.
// Elements are first filtered by product-name keywords; on a page shared
// by several products this cannot prevent cross-contamination, which is a
// documented precision limitation of the approach.

// wholePageIntegrationKeywords is the tightened keyword set used outside
// a located region, where false positives are more likely.
var wholePageIntegrationKeywords = []string{"integration", "cms", "content", "api"}

var wholePageInfraKeywords = []string{"requirement", "power", "network", "installation"}

// WholePage scans the entire document for content that mentions the
// product and runs reduced extraction passes over the matches.
func (e *Extractor) WholePage(doc *goquery.Document, product, pageURL string) core.RawProduct {
	keywords := productKeywords(product)

	var relevant []*goquery.Selection
	doc.Find("p, ul, ol, h1, h2, h3, h4").Each(func(_ int, s *goquery.Selection) {
		text := strings.ToLower(s.Text())
		if containsAny(text, keywords) {
			relevant = append(relevant, s)
		}
	})

	return core.RawProduct{
		Name:                       product,
		Overview:                   overviewFromElements(relevant),
		Specifications:             specificationsFromElements(relevant),
		ContentIntegration:         listFromElements(relevant, wholePageIntegrationKeywords),
		InfrastructureRequirements: listFromElements(relevant, wholePageInfraKeywords),
		ImageURLs:                  e.ImageURLs(doc.Selection, pageURL),
	}
}

// productKeywords derives the match terms for whole-page filtering: the
// full name, its individual words, and the joined variants.
func productKeywords(product string) []string {
	lower := strings.ToLower(product)
	keywords := []string{lower}
	keywords = append(keywords, strings.Fields(lower)...)
	keywords = append(keywords,
		strings.ReplaceAll(lower, " ", ""),
		strings.ReplaceAll(lower, " ", "-"),
	)
	return keywords
}

// overviewFromElements returns the first filtered element of plausible
// overview length. The upper bound excludes navigation dumps.
func overviewFromElements(elements []*goquery.Selection) string {
	for _, el := range elements {
		text := strings.TrimSpace(el.Text())
		if len(text) > 50 && len(text) < 500 {
			return text
		}
	}
	return FallbackOverview
}

// specificationsFromElements splits colon lines out of the filtered
// elements. Keys longer than 50 characters are prose, not spec keys.
func specificationsFromElements(elements []*goquery.Selection) map[string]string {
	specs := make(map[string]string)
	for _, el := range elements {
		for _, line := range strings.Split(el.Text(), "\n") {
			key, value, found := strings.Cut(line, ":")
			if !found {
				continue
			}
			key = strings.TrimSpace(key)
			value = strings.TrimSpace(value)
			if key != "" && value != "" && len(key) < 50 {
				specs[key] = value
			}
		}
	}
	return specs
}

// listFromElements keeps filtered-element text matching the keyword set,
// with tighter bounds (20-200 chars, cap 5) than in-region extraction.
func listFromElements(elements []*goquery.Selection, keywords []string) []string {
	var items []string
	for _, el := range elements {
		text := strings.TrimSpace(el.Text())
		if len(text) <= 20 || len(text) >= 200 {
			continue
		}
		if !containsAny(strings.ToLower(text), keywords) {
			continue
		}
		items = append(items, text)
		if len(items) >= 5 {
			break
		}
	}
	return items
}
