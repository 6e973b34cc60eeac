package summarize

import (
	"fmt"
	"sort"
	"strings"
)

// promptRawWordLimit bounds the raw field content embedded in a prompt so
// that a pathological extraction cannot blow the model's context.
const promptRawWordLimit = 300

func overviewPrompt(product, raw, request string, count int) string {
	return fmt.Sprintf(`Enhance the following product overview for %s to make it professional and presentation-ready.
Keep it to exactly %d concise lines while preserving all important information.
Presentation request: %s

Original overview: %s

Enhanced overview (exactly %d lines):`,
		product, count, request, truncateWords(raw, promptRawWordLimit), count)
}

func specificationsPrompt(product, raw, request string, count int) string {
	return fmt.Sprintf(`From the following specifications for %s, create exactly %d key technical specifications.
Make them clear, concise, and professional for a business presentation.
Presentation request: %s

Original specifications: %s

Top %d specifications (as %d separate lines):`,
		product, count, request, truncateWords(raw, promptRawWordLimit), count, count)
}

func integrationPrompt(product, raw, request string, count int) string {
	return fmt.Sprintf(`From the following content integration information for %s, create exactly %d key integration features.
Make them actionable and business-focused.
Presentation request: %s

Original content integration: %s

Top %d integration features (as %d separate lines):`,
		product, count, request, truncateWords(raw, promptRawWordLimit), count, count)
}

func infrastructurePrompt(product, raw, request string, count int) string {
	return fmt.Sprintf(`From the following infrastructure requirements for %s, create exactly %d critical requirements.
Make them specific and actionable for implementation.
Presentation request: %s

Original infrastructure requirements: %s

Top %d infrastructure requirements (as %d separate lines):`,
		product, count, request, truncateWords(raw, promptRawWordLimit), count, count)
}

// truncateWords bounds text to at most limit whitespace-separated words.
func truncateWords(text string, limit int) string {
	words := strings.Fields(text)
	if len(words) <= limit {
		return strings.TrimSpace(text)
	}
	return strings.Join(words[:limit], " ")
}

// specsAsText flattens a specification map into deterministic "key: value"
// lines. Keys are sorted because map order carries no meaning downstream.
func specsAsText(specs map[string]string) string {
	keys := make([]string, 0, len(specs))
	for k := range specs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s: %s\n", k, specs[k])
	}
	return strings.TrimSpace(b.String())
}
