package extract

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// srcAttrs are checked in order on each img element; the first non-empty
// attribute wins. Lazy-loading sites park the real URL in data attributes.
var srcAttrs = []string{"src", "data-src", "data-lazy-src"}

// chromeSubstrings mark an image URL as page chrome rather than product
// content. Any URL containing one of these is rejected.
var chromeSubstrings = []string{
	"logo", "icon", "favicon", "banner", "header", "footer",
	"social", "arrow", "button", "bg", "background", "nav",
}

// ImageURLs collects product image URLs from the region, resolved against
// the page base URL, chrome-filtered, capped at MaxImages.
func (e *Extractor) ImageURLs(region *goquery.Selection, pageURL string) []string {
	base, err := url.Parse(pageURL)
	if err != nil {
		base = nil
	}

	var images []string
	region.Find("img").EachWithBreak(func(_ int, img *goquery.Selection) bool {
		src := firstAttr(img, srcAttrs)
		if src == "" || !IsProductImage(src) {
			return true
		}
		resolved := resolveImageURL(src, base)
		if resolved == "" {
			return true
		}
		images = append(images, resolved)
		return len(images) < e.MaxImages
	})
	return images
}

func firstAttr(s *goquery.Selection, attrs []string) string {
	for _, attr := range attrs {
		if v, ok := s.Attr(attr); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// IsProductImage reports whether the URL looks like product content
// rather than logos, icons, or other page chrome.
func IsProductImage(src string) bool {
	if src == "" {
		return false
	}
	lower := strings.ToLower(src)
	for _, word := range chromeSubstrings {
		if strings.Contains(lower, word) {
			return false
		}
	}
	return true
}

// resolveImageURL turns a possibly relative src into an absolute URL.
func resolveImageURL(src string, base *url.URL) string {
	parsed, err := url.Parse(src)
	if err != nil {
		return ""
	}
	if parsed.IsAbs() {
		return parsed.String()
	}
	if base == nil {
		return ""
	}
	return base.ResolveReference(parsed).String()
}
