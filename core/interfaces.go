// Package core defines the pipeline types and interfaces for deckpipe.
// Each stage of the pipeline is a clean, testable interface.
package core

import (
	"context"
	"time"
)

// ImageLayout is the slide arrangement derived from an image count.
type ImageLayout string

const (
	LayoutNone       ImageLayout = "none"
	LayoutSingle     ImageLayout = "single"
	LayoutSideBySide ImageLayout = "side_by_side"
	LayoutGrid       ImageLayout = "grid"
)

// LayoutFor maps an image count to its layout. It is the single source
// of truth: 0 means none, 1 single, 2 side by side, 3 or more grid.
func LayoutFor(count int) ImageLayout {
	switch {
	case count <= 0:
		return LayoutNone
	case count == 1:
		return LayoutSingle
	case count == 2:
		return LayoutSideBySide
	default:
		return LayoutGrid
	}
}

// LocalImageRef points at a downloaded, presentation-safe image file.
// The file is owned by the image cache and may be evicted once the
// retention window elapses.
type LocalImageRef struct {
	SourceURL string    `json:"source_url"`
	LocalPath string    `json:"local_path"`
	CreatedAt time.Time `json:"created_at"`
}

// RawProduct is the untreated output of a single product extraction:
// whatever the page yielded, before summarization.
type RawProduct struct {
	Name                       string            `json:"name"`
	Overview                   string            `json:"overview"`
	Specifications             map[string]string `json:"specifications"`
	ContentIntegration         []string          `json:"content_integration"`
	InfrastructureRequirements []string          `json:"infrastructure_requirements"`
	ImageURLs                  []string          `json:"image_urls"`
	// RegionHTML is the located content region, kept for the extraction report.
	RegionHTML string `json:"-"`
}

// ProductRecord is one summarized product, ready for slide assembly.
// The four text fields each hold exactly the configured target count
// of lines once past the summarizer.
type ProductRecord struct {
	Name                       string          `json:"name"`
	Overview                   string          `json:"overview"`
	Specifications             []string        `json:"specifications"`
	ContentIntegration         []string        `json:"content_integration"`
	InfrastructureRequirements []string        `json:"infrastructure_requirements"`
	Images                     []LocalImageRef `json:"images"`
}

// Layout returns the image arrangement for this record. It is computed,
// never stored, so it cannot drift from the image count.
func (p ProductRecord) Layout() ImageLayout {
	return LayoutFor(len(p.Images))
}

// SlideKind identifies the role of a slide within the deck.
type SlideKind string

const (
	SlideTitle          SlideKind = "title"
	SlideOverview       SlideKind = "overview"
	SlideSpecifications SlideKind = "specifications"
	SlideIntegration    SlideKind = "integration"
	SlideInfrastructure SlideKind = "infrastructure"
	SlideConclusion     SlideKind = "conclusion"
)

// SlideDescription is one fully specified output slide.
type SlideDescription struct {
	Title     string          `json:"title"`
	BodyLines []string        `json:"body_lines"`
	Images    []LocalImageRef `json:"images,omitempty"`
	Kind      SlideKind       `json:"kind"`
}

// Presentation is the ordered slide sequence for one deck.
type Presentation struct {
	Title    string             `json:"title"`
	Subtitle string             `json:"subtitle"`
	Slides   []SlideDescription `json:"slides"`
}

// PageSession renders web pages and owns the underlying resources.
// One session per extraction run; Close must run on every exit path.
type PageSession interface {
	// Load fetches the page at url and returns its HTML snapshot.
	Load(ctx context.Context, url string) (string, error)
	Close() error
}

// TextCompleter wraps a remote text completion service.
type TextCompleter interface {
	// Complete submits a prompt and returns the raw completion.
	// Implementations return ErrCompleterUnavailable, never panic, when
	// the backing service is not configured.
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
	// Available reports whether the service can be called at all.
	Available() bool
}

// DeckWriter turns an assembled Presentation into a deck file.
type DeckWriter interface {
	// Write renders the presentation and returns the file contents.
	// A failed render returns no partial output.
	Write(pres Presentation) ([]byte, error)
	// Extension returns the deck file extension (e.g. ".pdf").
	Extension() string
}
