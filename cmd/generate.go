// Package cmd — generate command.
// This is the main command that orchestrates the pipeline:
// load page → locate products → extract → cache images → summarize →
// assemble deck → write.
//
// It handles flag validation, session selection, and the sidecar report modes.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/deckpipe/core"
	"github.com/gaurav-prasanna/deckpipe/core/config"
	"github.com/gaurav-prasanna/deckpipe/core/deck"
	"github.com/gaurav-prasanna/deckpipe/core/extract"
	"github.com/gaurav-prasanna/deckpipe/core/fetch"
	"github.com/gaurav-prasanna/deckpipe/core/imagecache"
	"github.com/gaurav-prasanna/deckpipe/core/locate"
	"github.com/gaurav-prasanna/deckpipe/core/output"
	"github.com/gaurav-prasanna/deckpipe/core/report"
	"github.com/gaurav-prasanna/deckpipe/core/summarize"
	"github.com/gaurav-prasanna/deckpipe/pipeline"
)

// Flag variables.
var (
	flagProducts   string
	flagURL        string
	flagChrome     bool
	flagDiscover   bool
	flagReport     bool
	flagJSON       bool
	flagKeepImages bool
	flagTemplate   string
	flagOutputDir  string
	flagConfig     string
)

var generateCmd = &cobra.Command{
	Use:   "generate <request>",
	Short: "Generate a slide deck for the requested products",
	Long: `Generate extracts product data from the configured marketing page,
condenses each field with a text completion service, and writes a slide deck.

Product names come from --products, or are parsed from the request text
after a "products:" marker.

Examples:
  deckpipe generate "Create a presentation. products: Interactive Bar, Digital Flipbook"
  deckpipe generate "Holoscreen deck" --products "Holoscreen" --chrome
  deckpipe generate "Demo deck" --products "Interactive Bar" --report --json`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVar(&flagProducts, "products", "", "Comma-separated product names (overrides names parsed from the request)")
	generateCmd.Flags().StringVar(&flagURL, "url", "", "Marketing page URL (overrides configured base_url)")

	// Session and extraction modes.
	generateCmd.Flags().BoolVar(&flagChrome, "chrome", false, "Load the page with headless Chrome instead of plain HTTP")
	generateCmd.Flags().BoolVar(&flagDiscover, "discover", false, "Follow product-specific links when the main page has no matching region")

	// Sidecar outputs.
	generateCmd.Flags().BoolVar(&flagReport, "report", false, "Write a Markdown extraction report next to the deck")
	generateCmd.Flags().BoolVar(&flagJSON, "json", false, "Write the structured deck description as JSON next to the deck")

	generateCmd.Flags().BoolVar(&flagKeepImages, "keep_images", false, "Keep cached images after the deck is written")
	generateCmd.Flags().StringVar(&flagTemplate, "template", "", "Background image for the title slide")
	generateCmd.Flags().StringVar(&flagOutputDir, "output_dir", "", "Output directory (default: from config)")
	generateCmd.Flags().StringVar(&flagConfig, "config", "", "Config file path (default: $DECKPIPE_CONFIG or ./deckpipe.yaml)")
}

// productsPattern matches an inline product list in the request text,
// e.g. "... products: Interactive Bar, Digital Flipbook."
var productsPattern = regexp.MustCompile(`(?i)products?:\s*([^.]+)`)

func runGenerate(cmd *cobra.Command, args []string) error {
	request := args[0]

	cfgPath := flagConfig
	if cfgPath == "" {
		cfgPath = config.Path()
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	setupLogging(cfg.LogLevel)

	baseURL := cfg.BaseURL
	if flagURL != "" {
		baseURL = flagURL
	}
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("invalid URL: %s (must include scheme, e.g. https://example.com)", baseURL)
	}

	names := productNames(request)
	if len(names) == 0 {
		return fmt.Errorf("no product names given: use --products or a \"products:\" list in the request")
	}

	outputDir := cfg.OutputDir
	if flagOutputDir != "" {
		outputDir = flagOutputDir
	}
	writer, err := output.New(outputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	// Page session: headless Chrome for script-rendered pages, plain
	// HTTP otherwise.
	var session core.PageSession
	if flagChrome {
		chrome, err := fetch.NewChrome(cfg.Timeout(), cfg.UserAgent)
		if err != nil {
			return fmt.Errorf("starting chrome session: %w", err)
		}
		session = chrome
	} else {
		session = fetch.NewStatic(fetch.WithTimeout(cfg.Timeout()), fetch.WithUserAgent(cfg.UserAgent))
	}
	defer session.Close()

	cache, err := imagecache.New(cfg.CacheDir,
		imagecache.WithTimeout(cfg.Timeout()),
		imagecache.WithUserAgent(cfg.UserAgent),
		imagecache.WithMaxBytes(cfg.MaxImageBytes),
	)
	if err != nil {
		return fmt.Errorf("initializing image cache: %w", err)
	}

	sweeper, err := imagecache.NewSweeper(cache, cfg.Retention(), cfg.SweepInterval())
	if err != nil {
		return fmt.Errorf("initializing cache sweeper: %w", err)
	}
	sweeper.Start()
	defer sweeper.Stop()

	template := cfg.TemplatePath
	if flagTemplate != "" {
		template = flagTemplate
	}

	completer := summarize.NewOpenAI(cfg.Env.OpenAIAPIKey, cfg.LLMModel, cfg.LLMBaseURL)
	if !completer.Available() {
		slog.Warn("no completion credentials configured, using extracted text directly")
	}

	extractor := extract.New()
	extractor.MaxImages = cfg.MaxImages

	p := &pipeline.Pipeline{
		Session:    session,
		Locator:    locate.New(),
		Extractor:  extractor,
		Cache:      cache,
		Summarizer: summarize.New(completer, cfg.TargetCount, cfg.LLMMaxTokens),
		Writer:     deck.NewPDFWriter(template),
		BaseURL:    baseURL,
		Discovery:  flagDiscover,
	}

	result, err := p.Generate(context.Background(), names, request)
	if err != nil {
		return err
	}

	path, err := writer.WriteDeck(request, result.Deck, p.Writer.Extension())
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Written: %s\n", path)

	if flagReport {
		reportPath, err := writer.WriteSidecar(request, "report", report.Markdown(result.Raws), ".md")
		if err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		fmt.Fprintf(os.Stdout, "✓ Report: %s\n", reportPath)
	}
	if flagJSON {
		data, err := report.JSON(result.Presentation, result.Products)
		if err != nil {
			return fmt.Errorf("encoding deck description: %w", err)
		}
		jsonPath, err := writer.WriteSidecar(request, "deck", data, ".json")
		if err != nil {
			return fmt.Errorf("writing deck description: %w", err)
		}
		fmt.Fprintf(os.Stdout, "✓ JSON: %s\n", jsonPath)
	}

	// The deck embeds image bytes at write time, so the cached files are
	// disposable once the file is on disk.
	if !flagKeepImages {
		for _, product := range result.Products {
			cache.Remove(product.Images)
		}
	}

	return nil
}

// productNames resolves the product list: --products wins, otherwise the
// request text is scanned for a "products:" marker.
func productNames(request string) []string {
	raw := flagProducts
	if raw == "" {
		if m := productsPattern.FindStringSubmatch(request); m != nil {
			raw = m[1]
		}
	}
	if raw == "" {
		return nil
	}

	var names []string
	for _, part := range strings.Split(raw, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// setupLogging installs a text slog handler at the configured level.
func setupLogging(level string) {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}
