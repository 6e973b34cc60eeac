// Package pipeline drives the extraction-to-deck flow: page load, region
// location, field extraction, image acquisition, summarization, assembly.
// Products are processed one at a time in request order; one product's
// failure degrades that product to a fallback record instead of
// truncating the batch.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gaurav-prasanna/deckpipe/core"
	"github.com/gaurav-prasanna/deckpipe/core/deck"
	"github.com/gaurav-prasanna/deckpipe/core/extract"
	"github.com/gaurav-prasanna/deckpipe/core/imagecache"
	"github.com/gaurav-prasanna/deckpipe/core/locate"
	"github.com/gaurav-prasanna/deckpipe/core/summarize"
	"github.com/gaurav-prasanna/deckpipe/discover"
)

// Pipeline wires the extraction stages together for one run. All
// collaborators are injected; the pipeline owns none of their lifecycles
// except driving the PageSession per call.
type Pipeline struct {
	Session    core.PageSession
	Locator    *locate.Locator
	Extractor  *extract.Extractor
	Cache      *imagecache.Cache
	Summarizer *summarize.Summarizer
	Writer     core.DeckWriter

	// BaseURL is the marketing page holding the product content.
	BaseURL string
	// Discovery, when enabled, tries product-specific pages found by link
	// slug before settling for whole-page extraction.
	Discovery bool
}

// Result is the outcome of one generation run.
type Result struct {
	Presentation core.Presentation
	Products     []core.ProductRecord
	// Raws holds the pre-summarization extractions, for reporting.
	Raws []core.RawProduct
	// Deck is the rendered deck file contents.
	Deck []byte
}

// Generate runs the full pipeline for the requested product names.
// The returned batch always has exactly len(names) products, in input
// order; only assembly failures are terminal.
func (p *Pipeline) Generate(ctx context.Context, names []string, prompt string) (*Result, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("no product names requested")
	}

	records := make([]core.ProductRecord, 0, len(names))
	raws := make([]core.RawProduct, 0, len(names))

	for _, name := range names {
		raw, err := p.extractProduct(ctx, name)
		if err != nil {
			slog.Error("product extraction failed, using fallback record", "product", name, "error", err)
			raw = fallbackRaw(name)
			records = append(records, summarize.FallbackRecord(name, p.Summarizer.TargetCount))
			raws = append(raws, raw)
			continue
		}

		images := p.Cache.Acquire(ctx, raw.ImageURLs, locate.SlugForm(name))
		records = append(records, p.Summarizer.Enhance(ctx, raw, prompt, images))
		raws = append(raws, raw)
	}

	title := summarize.DeckTitle(names)
	subtitle := summarize.DeckSubtitle(len(names))
	pres := deck.Assemble(records, title, subtitle)

	data, err := p.Writer.Write(pres)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrAssemblyFailed, err)
	}

	return &Result{Presentation: pres, Products: records, Raws: raws, Deck: data}, nil
}

// extractProduct locates and extracts one product. Page-level failures
// (fetch, parse) propagate; a region miss falls back to discovery and
// then to whole-page extraction.
func (p *Pipeline) extractProduct(ctx context.Context, name string) (core.RawProduct, error) {
	slog.Info("extracting product", "product", name, "url", p.BaseURL)

	doc, err := p.loadDocument(ctx, p.BaseURL)
	if err != nil {
		return core.RawProduct{}, err
	}

	region, err := p.Locator.Locate(doc, name)
	if err == nil {
		return p.Extractor.Region(region, name, p.BaseURL), nil
	}
	if !errors.Is(err, core.ErrRegionNotFound) {
		return core.RawProduct{}, err
	}

	if p.Discovery {
		if raw, ok := p.extractFromDiscoveredPage(ctx, doc, name); ok {
			return raw, nil
		}
	}

	// Whole-page extraction cannot scope content to one product when the
	// page hosts several; that imprecision is accepted, not patched over.
	slog.Warn("product region not located, extracting from whole page", "product", name)
	return p.Extractor.WholePage(doc, name, p.BaseURL), nil
}

// extractFromDiscoveredPage tries product-slug-matching pages linked from
// the base page.
func (p *Pipeline) extractFromDiscoveredPage(ctx context.Context, baseDoc *goquery.Document, name string) (core.RawProduct, bool) {
	for _, pageURL := range discover.ProductPages(baseDoc, p.BaseURL, name) {
		doc, err := p.loadDocument(ctx, pageURL)
		if err != nil {
			slog.Warn("discovered page load failed", "url", pageURL, "error", err)
			continue
		}
		region, err := p.Locator.Locate(doc, name)
		if err != nil {
			continue
		}
		slog.Info("product located on discovered page", "product", name, "url", pageURL)
		return p.Extractor.Region(region, name, pageURL), true
	}
	return core.RawProduct{}, false
}

func (p *Pipeline) loadDocument(ctx context.Context, url string) (*goquery.Document, error) {
	html, err := p.Session.Load(ctx, url)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML from %s: %w", url, err)
	}
	return doc, nil
}
