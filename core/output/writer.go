// Package output handles file naming and writing for deckpipe artifacts.
// Deck filenames derive from a sanitized version of the user's prompt
// plus a collision-avoiding hash suffix.
package output

import (
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

const maxPromptSlug = 30

// Writer writes generated artifacts to disk.
type Writer struct {
	OutputDir string
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	return &Writer{OutputDir: outputDir}, nil
}

// WriteDeck writes the deck file and returns its path.
func (w *Writer) WriteDeck(prompt string, data []byte, ext string) (string, error) {
	path := filepath.Join(w.OutputDir, DeckFileName(prompt)+ext)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing deck %s: %w", path, err)
	}
	return path, nil
}

// WriteSidecar writes a companion artifact (report, JSON dump) next to
// the deck, sharing its base name.
func (w *Writer) WriteSidecar(prompt, suffix string, data []byte, ext string) (string, error) {
	name := DeckFileName(prompt) + "_" + suffix + ext
	path := filepath.Join(w.OutputDir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing sidecar %s: %w", path, err)
	}
	return path, nil
}

// DeckFileName builds the deck base name from the user prompt:
// presentation_<slug>_<hash>. The hash keeps near-identical prompts from
// colliding after slug truncation.
func DeckFileName(prompt string) string {
	return fmt.Sprintf("presentation_%s_%04d", Sanitize(prompt), promptHash(prompt))
}

var (
	invalidChars = regexp.MustCompile(`[^\w\s-]`)
	separators   = regexp.MustCompile(`[-\s]+`)
)

// Sanitize converts free text into a safe, bounded filename component.
func Sanitize(text string) string {
	text = invalidChars.ReplaceAllString(text, "")
	text = separators.ReplaceAllString(strings.TrimSpace(text), "_")
	text = strings.ToLower(text)
	if text == "" {
		return "presentation"
	}
	if len(text) > maxPromptSlug {
		text = text[:maxPromptSlug]
	}
	return strings.Trim(text, "_")
}

func promptHash(prompt string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(prompt))
	return h.Sum32() % 10000
}
