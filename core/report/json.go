package report

import (
	"encoding/json"
	"fmt"

	"github.com/gaurav-prasanna/deckpipe/core"
)

// deckJSON is the complete JSON sidecar for one generation run.
type deckJSON struct {
	Presentation core.Presentation    `json:"presentation"`
	Products     []core.ProductRecord `json:"products"`
	Layouts      map[string]string    `json:"layouts"`
}

// JSON renders the assembled deck and its source records as indented
// JSON, including each product's derived image layout.
func JSON(pres core.Presentation, products []core.ProductRecord) ([]byte, error) {
	layouts := make(map[string]string, len(products))
	for _, p := range products {
		layouts[p.Name] = string(p.Layout())
	}

	data, err := json.MarshalIndent(deckJSON{
		Presentation: pres,
		Products:     products,
		Layouts:      layouts,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding deck JSON: %w", err)
	}
	return data, nil
}
