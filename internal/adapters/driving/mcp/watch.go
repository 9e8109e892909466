package mcp

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/static-mcpify/internal/logger"
)

// DefaultDebounce is how long the watcher waits for changes to settle
// before reloading.
const DefaultDebounce = 500 * time.Millisecond

// Watch reloads the tool set whenever the content directory changes.
// It returns once the watcher is running; watching stops when ctx is done.
func (s *Server) Watch(ctx context.Context) error {
	if s.ports.ContentDir == "" {
		return fmt.Errorf("watch: content directory is not set")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := addTree(watcher, s.ports.ContentDir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", s.ports.ContentDir, err)
	}

	logger.Info("Watching %s for changes", s.ports.ContentDir)
	go s.watchLoop(ctx, watcher)
	return nil
}

func (s *Server) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	defer watcher.Close()

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !relevantEvent(event) {
				continue
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := addTree(watcher, event.Name); err != nil {
						logger.Warn("Failed to watch %s: %v", event.Name, err)
					}
				}
			}
			logger.Debug("Change detected: %s", event)
			if timer == nil {
				timer = time.NewTimer(s.debounce)
			} else {
				timer.Reset(s.debounce)
			}
			fire = timer.C

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("Watcher error: %v", err)

		case <-fire:
			fire = nil
			if err := s.Reload(ctx); err != nil {
				logger.Warn("Reload failed, keeping current tools: %v", err)
			}
		}
	}
}

// relevantEvent reports whether an event can change the tool set.
// Hidden files, such as in-progress downloads, and chmod-only events are ignored.
func relevantEvent(event fsnotify.Event) bool {
	if strings.HasPrefix(filepath.Base(event.Name), ".") {
		return false
	}
	return event.Has(fsnotify.Create) || event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}

// addTree watches dir and every directory below it.
func addTree(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}
