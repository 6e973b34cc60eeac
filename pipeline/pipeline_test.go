package pipeline

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gotest.tools/assert"

	"github.com/gaurav-prasanna/deckpipe/core"
	"github.com/gaurav-prasanna/deckpipe/core/deck"
	"github.com/gaurav-prasanna/deckpipe/core/extract"
	"github.com/gaurav-prasanna/deckpipe/core/fetch"
	"github.com/gaurav-prasanna/deckpipe/core/imagecache"
	"github.com/gaurav-prasanna/deckpipe/core/locate"
	"github.com/gaurav-prasanna/deckpipe/core/summarize"
)

const marketingPage = `<html><body>
<div id="holoscreen-section">
	<h2>Holoscreen</h2>
	<p>The Holoscreen projects floating holographic content visible from every angle of the venue floor.</p>
	<ul>
		<li>Display: Holographic fan array</li>
		<li>Viewing distance: 3 to 15 meters</li>
	</ul>
	<p>CMS integration keeps holographic playlists updated remotely.</p>
	<p>Installation requires a dedicated power circuit and wired network.</p>
	<img src="/media/holo.png">
</div>
<div id="interactive-bar-section">
	<h2>Interactive Bar</h2>
	<p>The Interactive Bar turns any counter surface into a responsive multi-touch display for guests.</p>
	<ul>
		<li>Surface: Tempered glass, 3m span</li>
	</ul>
</div>
</body></html>`

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	assert.NilError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 12, 12))))
	return buf.Bytes()
}

func newTestPipeline(t *testing.T, baseURL string) *Pipeline {
	t.Helper()
	cache, err := imagecache.New(t.TempDir())
	assert.NilError(t, err)

	session := fetch.NewStatic()
	t.Cleanup(func() { session.Close() })

	return &Pipeline{
		Session:    session,
		Locator:    locate.New(),
		Extractor:  extract.New(),
		Cache:      cache,
		Summarizer: summarize.New(summarize.NewOpenAI("", "gpt-4o-mini", ""), 2, 100),
		Writer:     deck.NewPDFWriter(""),
		BaseURL:    baseURL,
	}
}

func marketingServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/activations", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(marketingPage))
	})
	mux.HandleFunc("/media/holo.png", func(w http.ResponseWriter, r *http.Request) {
		w.Write(pngBytes(t))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestGenerateTwoProducts(t *testing.T) {
	srv := marketingServer(t)
	p := newTestPipeline(t, srv.URL+"/activations")

	names := []string{"Holoscreen", "Interactive Bar"}
	result, err := p.Generate(context.Background(), names, "venue deck")
	assert.NilError(t, err)

	assert.Equal(t, len(result.Products), 2)
	assert.Equal(t, result.Products[0].Name, "Holoscreen")
	assert.Equal(t, result.Products[1].Name, "Interactive Bar")

	// Region extraction fed the records: the list items survive as-is.
	assert.DeepEqual(t, result.Products[0].Specifications, []string{
		"Display: Holographic fan array",
		"Viewing distance: 3 to 15 meters",
	})

	// The image was fetched, normalized, and attached.
	assert.Equal(t, len(result.Products[0].Images), 1)
	assert.Equal(t, result.Products[0].Layout(), core.LayoutSingle)

	// Deck structure: title + 4 per product + conclusion.
	assert.Equal(t, len(result.Presentation.Slides), 10)
	assert.Equal(t, result.Presentation.Title, "Holoscreen & Interactive Bar Presentation")
	assert.Assert(t, bytes.HasPrefix(result.Deck, []byte("%PDF")))

	assert.Equal(t, len(result.Raws), 2)
	assert.Assert(t, result.Raws[0].RegionHTML != "")
}

func TestGenerateUnknownProductFallsBackToWholePage(t *testing.T) {
	srv := marketingServer(t)
	p := newTestPipeline(t, srv.URL+"/activations")

	result, err := p.Generate(context.Background(), []string{"Digital Flipbook"}, "deck")
	assert.NilError(t, err)

	// No region and no whole-page mentions: the record degrades to the
	// static fallback lines but the batch contract holds.
	assert.Equal(t, len(result.Products), 1)
	assert.Equal(t, result.Products[0].Name, "Digital Flipbook")
	assert.Equal(t, len(result.Products[0].Specifications), 2)
	assert.Equal(t, result.Raws[0].Overview, extract.FallbackOverview)
}

func TestGenerateFetchFailureProducesFallbackRecords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()
	p := newTestPipeline(t, srv.URL+"/activations")

	names := []string{"Holoscreen", "Interactive Bar"}
	result, err := p.Generate(context.Background(), names, "deck")
	assert.NilError(t, err)

	// One record per requested name, in order, even with zero extractions.
	assert.Equal(t, len(result.Products), 2)
	assert.Equal(t, result.Products[0].Name, "Holoscreen")
	assert.DeepEqual(t, result.Products[1].Specifications, []string{
		"High-resolution 4K display with multi-touch interface",
		"AI-powered analytics with real-time data processing",
	})

	// The report raws mirror the fallback too.
	assert.Equal(t, result.Raws[0].Specifications["Display"], "High-resolution display")
	assert.Assert(t, bytes.HasPrefix(result.Deck, []byte("%PDF")))
}

func TestGenerateNoNames(t *testing.T) {
	p := newTestPipeline(t, "http://127.0.0.1:1/")
	_, err := p.Generate(context.Background(), nil, "deck")
	assert.Assert(t, err != nil)
}

func TestGenerateDiscoveryFollowsProductLink(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/activations", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>
			<p>Our experiential lineup.</p>
			<a href="/products/digital-flipbook">Digital Flipbook</a>
		</body></html>`))
	})
	mux.HandleFunc("/products/digital-flipbook", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><div id="digital-flipbook-detail">
			<h2>Digital Flipbook</h2>
			<p>The Digital Flipbook lets guests turn oversized pages with a wave of the hand, blending print and screen.</p>
			<ul><li>Page size: A1 equivalent</li></ul>
		</div></body></html>`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	p := newTestPipeline(t, srv.URL+"/activations")
	p.Discovery = true

	result, err := p.Generate(context.Background(), []string{"Digital Flipbook"}, "deck")
	assert.NilError(t, err)

	assert.DeepEqual(t, result.Products[0].Specifications, []string{
		"Page size: A1 equivalent",
		"High-resolution 4K display with multi-touch interface",
	})
	assert.Assert(t, strings.Contains(result.Raws[0].Overview, "oversized pages"))
}

func TestGenerateAssemblyFailureIsTerminal(t *testing.T) {
	srv := marketingServer(t)
	p := newTestPipeline(t, srv.URL+"/activations")
	p.Writer = failingWriter{}

	_, err := p.Generate(context.Background(), []string{"Holoscreen"}, "deck")
	assert.Assert(t, errors.Is(err, core.ErrAssemblyFailed))
}

type failingWriter struct{}

func (failingWriter) Write(core.Presentation) ([]byte, error) {
	return nil, errors.New("render blew up")
}

func (failingWriter) Extension() string { return ".pdf" }
