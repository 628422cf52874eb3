// Package watcher drives the regenerate-on-change loop behind the watch
// command. It observes a directory tree through fsnotify and invokes a
// callback once a burst of changes has settled.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/buivietphi/ft-patch-package/internal/logging"
)

// DefaultDebounce is the settle window applied when Options.Debounce is
// unset. Editors and package managers touch many files in quick
// succession; one callback per burst is enough.
const DefaultDebounce = 300 * time.Millisecond

// Options tunes a watch loop.
type Options struct {
	Debounce time.Duration
	Logger   logging.Logger
}

// Watch blocks watching the tree rooted at dir and calls onChange after
// each settled burst of filesystem changes. Directories created while
// watching are picked up; dot-directories are ignored. Watch returns nil
// once ctx is cancelled.
func Watch(ctx context.Context, dir string, opts Options, onChange func(context.Context)) error {
	if onChange == nil {
		return errors.New("watch callback is nil")
	}
	logger := opts.Logger
	if logger == nil {
		logger = &logging.NoOpLogger{}
	}
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	root, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", dir, err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer fw.Close()
	if err := watchTree(fw, root); err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}
	logger.Info(ctx, "watching for changes",
		logging.Field("dir", root),
		logging.Field("debounce", debounce.String()))

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "watch stopped")
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			// Chmod fires for metadata-only touches and would cause
			// spurious regenerations.
			if event.Has(fsnotify.Chmod) {
				continue
			}
			if event.Has(fsnotify.Create) {
				if info, statErr := os.Stat(event.Name); statErr == nil && info.IsDir() {
					if addErr := watchTree(fw, event.Name); addErr != nil {
						logger.Warn(ctx, "cannot watch new directory",
							logging.Field("dir", event.Name))
					}
				}
			}
			logger.Debug(ctx, "change detected",
				logging.Field("op", event.Op.String()),
				logging.Field("path", event.Name))
			if pending {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
			}
			timer.Reset(debounce)
			pending = true
		case <-timer.C:
			if !pending {
				continue
			}
			pending = false
			onChange(ctx)
		case watchErr, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watching %s: %w", root, watchErr)
		}
	}
}

// watchTree registers root and every non-hidden directory below it. The
// root itself is watched even when its own name starts with a dot so an
// explicitly chosen hidden directory still works.
func watchTree(fw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return fw.Add(path)
	})
}
