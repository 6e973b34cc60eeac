// Package discover finds product-specific pages linked from a marketing
// page. When a product's region cannot be located on the base page, its
// content often lives behind a link whose URL slug carries the product
// name; those links are worth trying before settling for a whole-page
// extraction.
package discover

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gaurav-prasanna/deckpipe/core/locate"
)

// maxCandidates bounds how many discovered pages a caller will fetch.
const maxCandidates = 3

// ProductPages returns same-domain links from the document whose URL
// slug matches a form of the product name, normalized and deduplicated,
// best matches first, capped at three.
func ProductPages(doc *goquery.Document, baseURL, product string) []string {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil
	}
	forms := locate.NameForms(product)

	seen := make(map[string]bool)
	var candidates []string

	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		resolved := resolveLink(href, base)
		if resolved == "" {
			return
		}
		normalized := NormalizeURL(resolved)
		if seen[normalized] || normalized == NormalizeURL(baseURL) {
			return
		}
		if !IsSameDomain(normalized, base.Host) || IsStaticAsset(normalized) {
			return
		}
		if !slugMatches(normalized, forms) {
			return
		}
		seen[normalized] = true
		candidates = append(candidates, normalized)
	})

	if len(candidates) > maxCandidates {
		candidates = candidates[:maxCandidates]
	}
	return candidates
}

// slugMatches reports whether the URL path contains any product name form.
func slugMatches(rawURL string, forms []string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	path := strings.ToLower(parsed.Path)
	for _, form := range forms {
		if strings.Contains(path, form) {
			return true
		}
	}
	return false
}

// resolveLink resolves a possibly relative href against a base, skipping
// non-navigable schemes.
func resolveLink(href string, base *url.URL) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") ||
		strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "tel:") {
		return ""
	}
	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(parsed)
	resolved.Fragment = ""
	return resolved.String()
}
