package extract

import (
	"strings"
	"testing"

	"gotest.tools/assert"
)

const pageURL = "https://example.com/activations"

func TestImageURLsAttrPrecedence(t *testing.T) {
	r := region(t, `
		<img src="/media/bar.jpg" data-src="/media/ignored.jpg">
		<img data-src="/media/lazy.jpg">
		<img data-lazy-src="/media/lazier.jpg">
		<img alt="no source at all">`)

	urls := New().ImageURLs(r, pageURL)
	assert.DeepEqual(t, urls, []string{
		"https://example.com/media/bar.jpg",
		"https://example.com/media/lazy.jpg",
		"https://example.com/media/lazier.jpg",
	})
}

func TestImageURLsChromeFilter(t *testing.T) {
	r := region(t, `
		<img src="/media/product-shot.jpg">
		<img src="/media/site-logo.png">
		<img src="/media/nav-arrow.svg">
		<img src="/media/hero-bg.jpg">
		<img src="/icons/favicon.ico">`)

	urls := New().ImageURLs(r, pageURL)
	assert.DeepEqual(t, urls, []string{"https://example.com/media/product-shot.jpg"})
}

func TestImageURLsCap(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 15; i++ {
		sb.WriteString(`<img src="/media/shot.jpg">`)
	}
	urls := New().ImageURLs(region(t, sb.String()), pageURL)
	assert.Equal(t, len(urls), 10)
}

func TestImageURLsAbsolutePassThrough(t *testing.T) {
	r := region(t, `<img src="https://cdn.example.net/shot.jpg">`)
	urls := New().ImageURLs(r, pageURL)
	assert.DeepEqual(t, urls, []string{"https://cdn.example.net/shot.jpg"})
}

func TestIsProductImage(t *testing.T) {
	assert.Assert(t, IsProductImage("/media/display-closeup.jpg"))
	assert.Assert(t, !IsProductImage("/media/FOOTER-strip.jpg"))
	assert.Assert(t, !IsProductImage("/assets/social-share.png"))
	assert.Assert(t, !IsProductImage(""))
}
