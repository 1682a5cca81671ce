package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchReportsChangedFile(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "feed.xml")
	other := filepath.Join(dir, "other.xml")
	require.NoError(t, os.WriteFile(watched, []byte("<feed/>"), 0644))

	changed := make(chan string, 8)
	w := New([]string{watched}, func(path string) { changed <- path }, WithDebounce(200*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Watch(ctx) }()

	// give the notifier time to register the directory
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(other, []byte("<feed/>"), 0644))
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(watched, []byte("<feed></feed>"), 0644))
	}

	select {
	case path := <-changed:
		abs, err := filepath.Abs(watched)
		require.NoError(t, err)
		assert.Equal(t, abs, path)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)

	// rapid writes collapse into one callback and the other file is ignored
	assert.Empty(t, changed)
}

func TestWatchMissingDirectory(t *testing.T) {
	w := New([]string{filepath.Join(t.TempDir(), "absent", "feed.xml")}, func(string) {})
	assert.Error(t, w.Watch(context.Background()))
}
