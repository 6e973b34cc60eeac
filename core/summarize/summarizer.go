package summarize

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/gaurav-prasanna/deckpipe/core"
)

// Static per-field fallback lines, used to pad short completions and to
// stand in entirely when neither the service nor the raw field yields
// enough material.
var (
	fallbackSpecifications = []string{
		"High-resolution 4K display with multi-touch interface",
		"AI-powered analytics with real-time data processing",
	}
	fallbackIntegration = []string{
		"Seamless CMS integration with real-time content updates",
		"Multi-platform compatibility with cloud management",
	}
	fallbackInfrastructure = []string{
		"Stable internet connection (minimum 50 Mbps)",
		"Dedicated power supply with backup systems",
	}
)

// fallbackOverviewLines returns the static overview lines for a product.
func fallbackOverviewLines(product string) []string {
	return []string{
		fmt.Sprintf("%s offers advanced interactive technology solutions.", product),
		"Designed for enhanced user engagement and seamless integration.",
	}
}

// Summarizer reduces each textual field of a raw product to exactly
// TargetCount presentation-ready lines.
type Summarizer struct {
	completer core.TextCompleter
	// TargetCount is the fixed number of lines per summarized field.
	TargetCount int
	// MaxTokens bounds each completion request.
	MaxTokens int
}

// New creates a Summarizer over the given completion service.
func New(completer core.TextCompleter, targetCount, maxTokens int) *Summarizer {
	if targetCount < 1 {
		targetCount = 2
	}
	if maxTokens <= 0 {
		maxTokens = 200
	}
	return &Summarizer{completer: completer, TargetCount: targetCount, MaxTokens: maxTokens}
}

// Enhance turns one raw extraction into a summarized ProductRecord.
// Images pass through untouched; every text field comes out with exactly
// TargetCount lines.
func (s *Summarizer) Enhance(ctx context.Context, raw core.RawProduct, request string, images []core.LocalImageRef) core.ProductRecord {
	n := s.TargetCount

	overview := s.summarizeField(ctx,
		overviewPrompt(raw.Name, raw.Overview, request, n),
		splitSentences(raw.Overview),
		fallbackOverviewLines(raw.Name))

	specs := s.summarizeField(ctx,
		specificationsPrompt(raw.Name, specsAsText(raw.Specifications), request, n),
		specLines(raw.Specifications),
		fallbackSpecifications)

	integration := s.summarizeField(ctx,
		integrationPrompt(raw.Name, strings.Join(raw.ContentIntegration, "\n"), request, n),
		raw.ContentIntegration,
		fallbackIntegration)

	infra := s.summarizeField(ctx,
		infrastructurePrompt(raw.Name, strings.Join(raw.InfrastructureRequirements, "\n"), request, n),
		raw.InfrastructureRequirements,
		fallbackInfrastructure)

	return core.ProductRecord{
		Name:                       raw.Name,
		Overview:                   strings.Join(overview, "\n"),
		Specifications:             specs,
		ContentIntegration:         integration,
		InfrastructureRequirements: infra,
		Images:                     images,
	}
}

// summarizeField produces exactly TargetCount lines for one field. The
// completion path and both fallback paths all funnel through the same
// padding rule, so the count holds no matter what the service returns.
func (s *Summarizer) summarizeField(ctx context.Context, prompt string, rawLines, fallback []string) []string {
	var lines []string
	if s.completer != nil && s.completer.Available() {
		response, err := s.completer.Complete(ctx, prompt, s.MaxTokens)
		if err != nil {
			slog.Warn("completion failed, using deterministic fallback", "error", err)
		} else {
			lines = usableLines(response)
		}
	}
	if len(lines) == 0 {
		lines = cleanLines(rawLines)
	}
	return padToCount(lines, fallback, s.TargetCount)
}

// usableLines splits a completion into trimmed, non-blank lines.
func usableLines(response string) []string {
	var lines []string
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func cleanLines(raw []string) []string {
	var lines []string
	for _, line := range raw {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// padToCount enforces the exactly-N contract: surplus lines are dropped,
// shortfall is padded from the static fallback list (cycling if the list
// is shorter than the target).
func padToCount(lines, fallback []string, count int) []string {
	if len(lines) >= count {
		return lines[:count]
	}
	out := make([]string, 0, count)
	out = append(out, lines...)
	for i := 0; len(out) < count; i++ {
		out = append(out, fallback[i%len(fallback)])
	}
	return out
}

// specLines renders a specification map as deterministic key: value lines.
func specLines(specs map[string]string) []string {
	keys := make([]string, 0, len(specs))
	for k := range specs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s: %s", k, specs[k]))
	}
	return lines
}

// splitSentences breaks free text into sentence-ish lines for the
// deterministic overview fallback.
func splitSentences(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	parts := strings.Split(text, ". ")
	lines := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !strings.HasSuffix(p, ".") {
			p += "."
		}
		lines = append(lines, p)
	}
	return lines
}

// FallbackRecord is the static record substituted when live extraction
// fails for a product. The batch contract holds regardless: its fields
// carry exactly targetCount lines each.
func FallbackRecord(name string, targetCount int) core.ProductRecord {
	if targetCount < 1 {
		targetCount = 2
	}
	return core.ProductRecord{
		Name:                       name,
		Overview:                   strings.Join(padToCount(nil, fallbackOverviewLines(name), targetCount), "\n"),
		Specifications:             padToCount(nil, fallbackSpecifications, targetCount),
		ContentIntegration:         padToCount(nil, fallbackIntegration, targetCount),
		InfrastructureRequirements: padToCount(nil, fallbackInfrastructure, targetCount),
	}
}

// DeckTitle derives the deck-level title from the product names.
func DeckTitle(names []string) string {
	switch len(names) {
	case 0:
		return "Product Presentation"
	case 1:
		return fmt.Sprintf("%s Presentation", names[0])
	case 2:
		return fmt.Sprintf("%s & %s Presentation", names[0], names[1])
	default:
		return fmt.Sprintf("Multi-Product Presentation: %s, %s & More", names[0], names[1])
	}
}

// DeckSubtitle derives the deck-level subtitle.
func DeckSubtitle(count int) string {
	if count == 1 {
		return "Auto-generated product deck (1 product)"
	}
	return fmt.Sprintf("Auto-generated product deck (%d products)", count)
}
