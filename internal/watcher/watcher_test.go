package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatchInvokesCallbackAfterChange(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fired := make(chan struct{}, 8)
	done := startWatch(ctx, dir, Options{Debounce: 50 * time.Millisecond}, fired)

	mustWriteFile(t, dir, "changed.txt", "body\n")
	waitForCallback(t, fired)

	cancel()
	require.NoError(t, waitForExit(t, done))
}

func TestWatchCoalescesBursts(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fired := make(chan struct{}, 8)
	done := startWatch(ctx, dir, Options{Debounce: 250 * time.Millisecond}, fired)

	mustWriteFile(t, dir, "a.txt", "a\n")
	mustWriteFile(t, dir, "b.txt", "b\n")
	mustWriteFile(t, dir, "c.txt", "c\n")

	waitForCallback(t, fired)
	select {
	case <-fired:
		t.Fatal("burst produced a second callback")
	case <-time.After(400 * time.Millisecond):
	}

	cancel()
	require.NoError(t, waitForExit(t, done))
}

func TestWatchPicksUpNewDirectories(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fired := make(chan struct{}, 8)
	done := startWatch(ctx, dir, Options{Debounce: 50 * time.Millisecond}, fired)

	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))
	waitForCallback(t, fired)

	// The new directory is watched by now, so a file inside it must
	// trigger another callback.
	mustWriteFile(t, dir, "nested/inner.txt", "inner\n")
	waitForCallback(t, fired)

	cancel()
	require.NoError(t, waitForExit(t, done))
}

func TestWatchStopsOnCancel(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())

	fired := make(chan struct{}, 8)
	done := startWatch(ctx, dir, Options{}, fired)

	cancel()
	require.NoError(t, waitForExit(t, done))
	require.Empty(t, fired)
}

func TestWatchRejectsNilCallback(t *testing.T) {
	err := Watch(context.Background(), t.TempDir(), Options{}, nil)
	require.Error(t, err)
}

func TestWatchMissingDirectory(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")
	err := Watch(context.Background(), missing, Options{}, func(context.Context) {})
	require.Error(t, err)
}

func startWatch(ctx context.Context, dir string, opts Options, fired chan struct{}) chan error {
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, dir, opts, func(context.Context) {
			fired <- struct{}{}
		})
	}()
	// Give the watcher a moment to register before the test mutates the
	// tree; events raised before registration would be lost.
	time.Sleep(100 * time.Millisecond)
	return done
}

func waitForCallback(t *testing.T, fired chan struct{}) {
	t.Helper()
	select {
	case <-fired:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for watch callback")
	}
}

func waitForExit(t *testing.T, done chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for watch to stop")
		return nil
	}
}

func mustWriteFile(t *testing.T, dir, name, contents string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
}
