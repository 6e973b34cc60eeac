// Package locate finds the DOM region belonging to one product within a
// marketing page. The search is an ordered cascade of (strategy, predicate)
// pairs with early exit on the first confident match; when nothing matches,
// callers fall back to whole-page extraction.
package locate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/gaurav-prasanna/deckpipe/core"
)

// containerSelector lists the element types accepted as a content region.
const containerSelector = "div, section, article"

// Strategy is one way of finding candidate elements for a product name
// form. Strategies are tried in order; the first candidate whose enclosing
// container passes the text-length check wins.
type Strategy struct {
	Name string
	Find func(doc *goquery.Document, form, product string) *goquery.Selection
}

// DefaultStrategies is the ordered cascade used by New. Attribute matches
// come before heading matches because marketing sites name their product
// sections in ids and classes far more reliably than in headings.
var DefaultStrategies = []Strategy{
	{Name: "id-substring", Find: attrContains("id")},
	{Name: "class-substring", Find: attrContains("class")},
	{Name: "data-product", Find: attrContains("data-product")},
	{Name: "heading-text", Find: headingEquals},
}

// Locator isolates product content regions in a parsed page.
type Locator struct {
	Strategies []Strategy
	// MinSectionText is the minimum container text length for a
	// strategy-located region.
	MinSectionText int
	// MinFallbackText is the minimum container text length for a region
	// found by the full-text scan.
	MinFallbackText int
}

// New creates a Locator with the default cascade and thresholds.
func New() *Locator {
	return &Locator{
		Strategies:      DefaultStrategies,
		MinSectionText:  100,
		MinFallbackText: 200,
	}
}

// Locate returns the smallest ancestor container that plausibly holds only
// the named product's content, or ErrRegionNotFound when no strategy
// produces a confident match.
func (l *Locator) Locate(doc *goquery.Document, product string) (*goquery.Selection, error) {
	for _, form := range NameForms(product) {
		for _, strat := range l.Strategies {
			candidates := strat.Find(doc, form, product)
			if candidates == nil {
				continue
			}
			if region := l.containerOf(candidates, l.MinSectionText); region != nil {
				return region, nil
			}
		}
	}

	// Last resort before giving up: scan raw text nodes for the exact
	// product name and take the nearest qualifying ancestor.
	if region := l.textScan(doc, product); region != nil {
		return region, nil
	}

	return nil, fmt.Errorf("%w: %q", core.ErrRegionNotFound, product)
}

// containerOf walks each candidate up to the nearest container element and
// returns the first whose text content is long enough to be a real region.
func (l *Locator) containerOf(candidates *goquery.Selection, minText int) *goquery.Selection {
	var region *goquery.Selection
	candidates.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		parent := s.ParentsFiltered(containerSelector).First()
		if parent.Length() == 0 {
			return true
		}
		if len(strings.TrimSpace(parent.Text())) > minText {
			region = parent
			return false
		}
		return true
	})
	return region
}

// textScan looks for the product name inside any text node, case
// insensitively, and accepts the closest container with enough text.
func (l *Locator) textScan(doc *goquery.Document, product string) *goquery.Selection {
	needle := strings.ToLower(product)
	var region *goquery.Selection

	doc.Find("body *").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if !ownTextContains(s, needle) {
			return true
		}
		container := s.Closest(containerSelector)
		if container.Length() == 0 {
			return true
		}
		if len(strings.TrimSpace(container.Text())) > l.MinFallbackText {
			region = container
			return false
		}
		return true
	})
	return region
}

// ownTextContains reports whether the element's direct text nodes (not
// descendants) contain the lowercase needle.
func ownTextContains(s *goquery.Selection, needle string) bool {
	for _, node := range s.Nodes {
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.TextNode {
				continue
			}
			if strings.Contains(strings.ToLower(c.Data), needle) {
				return true
			}
		}
	}
	return false
}

func attrContains(attr string) func(doc *goquery.Document, form, product string) *goquery.Selection {
	return func(doc *goquery.Document, form, _ string) *goquery.Selection {
		return doc.Find(fmt.Sprintf("[%s*=%q]", attr, form))
	}
}

func headingEquals(doc *goquery.Document, _, product string) *goquery.Selection {
	var matches []*html.Node
	doc.Find("h1, h2, h3").Each(func(_ int, s *goquery.Selection) {
		if strings.TrimSpace(s.Text()) == product {
			matches = append(matches, s.Nodes...)
		}
	})
	if len(matches) == 0 {
		return nil
	}
	sel := doc.FindNodes(matches...)
	return sel
}

var (
	nonWordRe   = regexp.MustCompile(`[^\w\s-]`)
	separatorRe = regexp.MustCompile(`[-\s]+`)
)

// NameForms normalizes a product name into the candidate string forms
// tried against the page, in priority order: lowercase, hyphen-joined,
// underscore-joined, and space-stripped.
func NameForms(product string) []string {
	clean := nonWordRe.ReplaceAllString(product, "")
	clean = strings.TrimSpace(clean)
	lower := strings.ToLower(clean)

	forms := []string{
		lower,
		separatorRe.ReplaceAllString(lower, "-"),
		separatorRe.ReplaceAllString(lower, "_"),
		separatorRe.ReplaceAllString(lower, ""),
	}

	// Collapse duplicates for single-word names, keeping order.
	seen := make(map[string]bool, len(forms))
	out := forms[:0]
	for _, f := range forms {
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}

// SlugForm returns the canonical file-safe form of a product name, used
// as a cache-key prefix and in discovery slug matching.
func SlugForm(product string) string {
	clean := nonWordRe.ReplaceAllString(product, "")
	return strings.ToLower(separatorRe.ReplaceAllString(strings.TrimSpace(clean), "_"))
}
