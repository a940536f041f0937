package catalog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherEventOnWrite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	w, err := NewWatcher([]string{dir}, zerolog.Nop())
	require.NoError(t, err)
	defer w.Close() //nolint:errcheck

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yml"), []byte("content: []"), 0o644))

	select {
	case event := <-w.Events():
		assert.False(t, event.At.IsZero())
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for event")
	}
}

func TestWatcherDebouncesBursts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	w, err := NewWatcher([]string{dir}, zerolog.Nop())
	require.NoError(t, err)
	defer w.Close() //nolint:errcheck

	path := filepath.Join(dir, "a.yml")
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte("content: []"), 0o644))
		time.Sleep(10 * time.Millisecond)
	}

	count := 0
	timeout := time.After(watchDebounce + 500*time.Millisecond)
	for {
		select {
		case <-w.Events():
			count++
		case <-timeout:
			assert.Equal(t, 1, count, "burst should collapse to one event")
			return
		}
	}
}

func TestWatcherIgnoresNonCatalogFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	w, err := NewWatcher([]string{dir}, zerolog.Nop())
	require.NoError(t, err)
	defer w.Close() //nolint:errcheck

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yml.tmp"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden.yml"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	select {
	case e := <-w.Events():
		t.Fatalf("unexpected event for %s", e.Path)
	case <-time.After(watchDebounce + 200*time.Millisecond):
	}
}

func TestWatcherPicksUpNewSubdirectories(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	w, err := NewWatcher([]string{dir}, zerolog.Nop())
	require.NoError(t, err)
	defer w.Close() //nolint:errcheck

	sub := filepath.Join(dir, "extra")
	require.NoError(t, os.Mkdir(sub, 0o755))
	time.Sleep(100 * time.Millisecond) // let the create event register the subdir

	require.NoError(t, os.WriteFile(filepath.Join(sub, "b.yaml"), []byte("content: []"), 0o644))

	select {
	case <-w.Events():
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for event from new subdirectory")
	}
}

func TestWatcherClose(t *testing.T) {
	t.Parallel()

	w, err := NewWatcher([]string{t.TempDir()}, zerolog.Nop())
	require.NoError(t, err)

	require.NoError(t, w.Close())

	_, ok := <-w.Events()
	assert.False(t, ok, "channel should be closed after Close")
}

func TestWatcherMissingRootSkipped(t *testing.T) {
	t.Parallel()

	w, err := NewWatcher([]string{filepath.Join(t.TempDir(), "nope")}, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, w.Close())
}
