package imagecache

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
)

// Sweeper periodically evicts cache files older than the retention
// window. One sweep rule covers every file regardless of which request
// created it; there are no per-file cleanup timers.
type Sweeper struct {
	cache     *Cache
	retention time.Duration
	cron      *cron.Cron
}

// NewSweeper creates a Sweeper over the given cache.
func NewSweeper(cache *Cache, retention, interval time.Duration) (*Sweeper, error) {
	s := &Sweeper{
		cache:     cache,
		retention: retention,
		cron:      cron.New(),
	}
	spec := fmt.Sprintf("@every %s", interval)
	if _, err := s.cron.AddFunc(spec, func() {
		if _, err := s.SweepOnce(); err != nil {
			slog.Warn("cache sweep failed", "error", err)
		}
	}); err != nil {
		return nil, fmt.Errorf("scheduling sweep: %w", err)
	}
	return s, nil
}

// Start begins the periodic sweep in the background.
func (s *Sweeper) Start() {
	s.cron.Start()
}

// Stop halts the periodic sweep. A sweep already in flight completes.
func (s *Sweeper) Stop() {
	s.cron.Stop()
}

// SweepOnce deletes every cache file whose modification time is older
// than the retention window. Deletes swallow not-found: assembly cleanup
// may have removed the file between the directory scan and the delete.
func (s *Sweeper) SweepOnce() (int, error) {
	entries, err := os.ReadDir(s.cache.Dir())
	if err != nil {
		return 0, fmt.Errorf("scanning cache directory: %w", err)
	}

	cutoff := time.Now().Add(-s.retention)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		path := filepath.Join(s.cache.Dir(), entry.Name())
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			slog.Warn("failed to evict cached image", "path", path, "error", err)
			continue
		}
		removed++
	}

	if removed > 0 {
		slog.Info("cache sweep completed", "removed", removed)
	}
	return removed, nil
}
