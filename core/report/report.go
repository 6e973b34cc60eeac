// Package report renders extraction-debug artifacts: a Markdown dump of
// what was extracted per product, and a JSON dump of the assembled deck.
// Both are optional sidecars next to the deck file.
package report

import (
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/gaurav-prasanna/deckpipe/core"
)

// Markdown renders a per-product extraction report. Each product section
// carries the raw fields plus the located region converted to Markdown,
// so extraction quality can be judged without re-running the pipeline.
func Markdown(raws []core.RawProduct) []byte {
	var b strings.Builder

	b.WriteString("# Extraction report\n\n")
	for _, raw := range raws {
		fmt.Fprintf(&b, "## %s\n\n", raw.Name)
		fmt.Fprintf(&b, "**Overview**: %s\n\n", raw.Overview)

		if len(raw.Specifications) > 0 {
			b.WriteString("**Specifications**:\n\n")
			for k, v := range raw.Specifications {
				fmt.Fprintf(&b, "- %s: %s\n", k, v)
			}
			b.WriteString("\n")
		}

		writeList(&b, "Content integration", raw.ContentIntegration)
		writeList(&b, "Infrastructure requirements", raw.InfrastructureRequirements)
		writeList(&b, "Image URLs", raw.ImageURLs)

		if raw.RegionHTML != "" {
			if md, err := htmltomarkdown.ConvertString(raw.RegionHTML); err == nil {
				b.WriteString("**Located region**:\n\n")
				b.WriteString(strings.TrimSpace(md))
				b.WriteString("\n\n")
			}
		}
	}
	return []byte(b.String())
}

func writeList(b *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "**%s**:\n\n", heading)
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
	b.WriteString("\n")
}
