package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatcherFiresOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cmso.owl")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))

	changed := make(chan string, 1)
	w := New(path, 20*time.Millisecond, nil, func(p string) error {
		select {
		case changed <- p:
		default:
		}
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("v2"), 0o644))

	select {
	case p := <-changed:
		abs, _ := filepath.Abs(path)
		require.Equal(t, abs, p)
	case <-time.After(3 * time.Second):
		t.Fatal("watcher never fired after a write")
	}

	cancel()
	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(3 * time.Second):
		t.Fatal("watcher did not stop on cancellation")
	}
}

func TestWatcherIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cmso.owl")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))

	changed := make(chan struct{}, 1)
	w := New(path, 20*time.Millisecond, nil, func(string) error {
		select {
		case changed <- struct{}{}:
		default:
		}
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.owl"), []byte("x"), 0o644))

	select {
	case <-changed:
		t.Fatal("watcher fired for a sibling file")
	case <-time.After(300 * time.Millisecond):
	}
}
