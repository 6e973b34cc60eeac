// Package imagecache downloads remote images and converts them into
// presentation-safe raster files in a local cache directory.
//
// Every cached file is fully opaque, at most 1920x1080, and encoded as
// PNG or JPEG; formats the deck format handles poorly (WebP, GIF, BMP,
// TIFF) are always re-encoded losslessly. Files are ephemeral: a periodic
// sweep deletes anything older than the retention window.
package imagecache

import (
	"bytes"
	"context"
	"fmt"
	"hash/fnv"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	xdraw "golang.org/x/image/draw"

	// Decoders for the source formats seen in the wild.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/gaurav-prasanna/deckpipe/core"
)

const (
	maxWidth  = 1920
	maxHeight = 1080

	jpegQuality = 85

	defaultMaxBytes = 10 * 1024 * 1024
	defaultTimeout  = 30 * time.Second
)

// losslessFormats are source formats always re-encoded as PNG.
var losslessFormats = map[string]bool{
	"webp": true, "gif": true, "bmp": true, "tiff": true,
}

// Cache owns a flat directory of normalized image files.
type Cache struct {
	dir       string
	maxBytes  int64
	client    *http.Client
	userAgent string
}

// Option configures a Cache.
type Option func(*Cache)

// WithMaxBytes caps the declared download size per image.
func WithMaxBytes(n int64) Option {
	return func(c *Cache) { c.maxBytes = n }
}

// WithTimeout sets the per-image download timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Cache) { c.client.Timeout = d }
}

// WithUserAgent overrides the download User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Cache) { c.userAgent = ua }
}

// New creates a Cache rooted at dir, creating the directory if needed.
func New(dir string, opts ...Option) (*Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}
	c := &Cache{
		dir:       dir,
		maxBytes:  defaultMaxBytes,
		client:    &http.Client{Timeout: defaultTimeout},
		userAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Dir returns the cache directory path.
func (c *Cache) Dir() string {
	return c.dir
}

// Acquire downloads and normalizes every URL independently. Failures are
// logged and skipped; the returned refs are the successes, in input
// order. Partial success is total success of the batch.
func (c *Cache) Acquire(ctx context.Context, urls []string, prefix string) []core.LocalImageRef {
	var refs []core.LocalImageRef
	for i, u := range urls {
		ref, err := c.acquireOne(ctx, u, prefix, i+1)
		if err != nil {
			slog.Warn("skipping image", "url", u, "error", err)
			continue
		}
		refs = append(refs, ref)
	}
	slog.Info("image acquisition done", "prefix", prefix, "requested", len(urls), "cached", len(refs))
	return refs
}

// acquireOne runs the full fetch-decode-normalize-persist path for one URL.
func (c *Cache) acquireOne(ctx context.Context, url, prefix string, index int) (core.LocalImageRef, error) {
	data, err := c.fetch(ctx, url)
	if err != nil {
		return core.LocalImageRef{}, err
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return core.LocalImageRef{}, fmt.Errorf("%w: %v", core.ErrDecodeFailed, err)
	}

	flat := flatten(img)
	flat = downscale(flat)

	ext := ".jpg"
	if losslessFormats[format] {
		ext = ".png"
	}

	now := time.Now()
	name := fmt.Sprintf("%s_%d_%d_%04d%s", prefix, index, now.Unix(), urlHash(url), ext)
	path := filepath.Join(c.dir, name)

	var buf bytes.Buffer
	if ext == ".png" {
		err = png.Encode(&buf, flat)
	} else {
		err = jpeg.Encode(&buf, flat, &jpeg.Options{Quality: jpegQuality})
	}
	if err != nil {
		return core.LocalImageRef{}, fmt.Errorf("encoding %s: %w", name, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return core.LocalImageRef{}, fmt.Errorf("writing %s: %w", path, err)
	}

	return core.LocalImageRef{SourceURL: url, LocalPath: path, CreatedAt: now}, nil
}

// fetch downloads an image, rejecting oversized payloads up front.
func (c *Cache) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrFetchFailed, err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", core.ErrFetchFailed, resp.StatusCode)
	}
	if resp.ContentLength > c.maxBytes {
		return nil, fmt.Errorf("%w: declared %d bytes, limit %d", core.ErrOversizedAsset, resp.ContentLength, c.maxBytes)
	}

	// The declared length can lie; enforce the limit on the body too.
	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrFetchFailed, err)
	}
	if int64(len(data)) > c.maxBytes {
		return nil, fmt.Errorf("%w: body exceeds %d bytes", core.ErrOversizedAsset, c.maxBytes)
	}
	return data, nil
}

// flatten composites the image onto an opaque white background, removing
// any alpha or palette channel. Output is always a fully opaque RGBA.
func flatten(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	flat := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(flat, flat.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(flat, flat.Bounds(), img, bounds.Min, draw.Over)
	return flat
}

// downscale shrinks the image to fit within 1920x1080 preserving aspect
// ratio. Images already inside the bounds are returned as-is; nothing is
// ever upscaled.
func downscale(img *image.RGBA) *image.RGBA {
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	if w <= maxWidth && h <= maxHeight {
		return img
	}

	scaleW := float64(maxWidth) / float64(w)
	scaleH := float64(maxHeight) / float64(h)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}

	newW := int(float64(w) * scale)
	newH := int(float64(h) * scale)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return dst
}

// Remove deletes cached files after deck assembly. Deletes are
// best-effort: the eviction sweep may have gotten there first.
func (c *Cache) Remove(refs []core.LocalImageRef) {
	for _, ref := range refs {
		if err := os.Remove(ref.LocalPath); err != nil && !os.IsNotExist(err) {
			slog.Warn("failed to remove cached image", "path", ref.LocalPath, "error", err)
		}
	}
}

// urlHash derives the collision-avoiding filename component from a URL.
func urlHash(url string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(url))
	return h.Sum32() % 10000
}
