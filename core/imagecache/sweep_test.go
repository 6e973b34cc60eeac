package imagecache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"gotest.tools/assert"
)

func TestSweepOnceEvictsOnlyExpired(t *testing.T) {
	c := newTestCache(t)

	stale := filepath.Join(c.Dir(), "p_1_100_0001.jpg")
	fresh := filepath.Join(c.Dir(), "p_2_200_0002.jpg")
	assert.NilError(t, os.WriteFile(stale, []byte("x"), 0644))
	assert.NilError(t, os.WriteFile(fresh, []byte("x"), 0644))

	old := time.Now().Add(-3 * time.Hour)
	assert.NilError(t, os.Chtimes(stale, old, old))

	s, err := NewSweeper(c, 2*time.Hour, time.Minute)
	assert.NilError(t, err)

	removed, err := s.SweepOnce()
	assert.NilError(t, err)
	assert.Equal(t, removed, 1)

	_, err = os.Stat(stale)
	assert.Assert(t, os.IsNotExist(err))
	_, err = os.Stat(fresh)
	assert.NilError(t, err)
}

func TestSweepOnceEmptyDir(t *testing.T) {
	c := newTestCache(t)
	s, err := NewSweeper(c, time.Hour, time.Minute)
	assert.NilError(t, err)

	removed, err := s.SweepOnce()
	assert.NilError(t, err)
	assert.Equal(t, removed, 0)
}

func TestSweeperStartStop(t *testing.T) {
	c := newTestCache(t)
	s, err := NewSweeper(c, time.Hour, time.Minute)
	assert.NilError(t, err)

	s.Start()
	s.Stop()
}
