package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/callmepikachu/AniHub-Demo/internal/logger"
	"github.com/fsnotify/fsnotify"
)

type implWatcher struct {
	inputDir      string
	handler       InputHandler
	logger        logger.Logger
	watcher       *fsnotify.Watcher
	maxConcurrent int
	settle        time.Duration
	extensions    map[string]struct{}
	semaphore     chan struct{}
	wg            sync.WaitGroup

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// Start handles files already waiting in the input directory, then
// processes new ones as they appear until ctx is cancelled.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "File watcher started (max concurrent: %d). Monitoring: %s", w.maxConcurrent, w.inputDir)

	if err := w.scanExisting(ctx); err != nil {
		w.logger.Warn(ctx, "Failed to scan %s: %v", w.inputDir, err)
	}

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Waiting for ongoing processing to complete...")
			w.wg.Wait()
			w.logger.Info(ctx, "File watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			if !event.Has(fsnotify.Create) {
				continue
			}
			if !w.isInputFile(event.Name) {
				w.logger.Debug(ctx, "Ignoring file: %s", event.Name)
				continue
			}

			w.logger.Info(ctx, "New input detected: %s", event.Name)
			if err := w.dispatch(ctx, event.Name, w.settle); err != nil {
				return err
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

func (w *implWatcher) scanExisting(ctx context.Context) error {
	entries, err := os.ReadDir(w.inputDir)
	if err != nil {
		return err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if path := filepath.Join(w.inputDir, e.Name()); w.isInputFile(path) {
			files = append(files, path)
		}
	}
	sort.Strings(files)

	if len(files) > 0 {
		w.logger.Info(ctx, "Found %d waiting input files", len(files))
	}
	for _, path := range files {
		if err := w.dispatch(ctx, path, 0); err != nil {
			return err
		}
	}
	return nil
}

// dispatch runs the handler for path once a semaphore slot is free. A path
// that is already being processed is skipped.
func (w *implWatcher) dispatch(ctx context.Context, path string, settle time.Duration) error {
	w.mu.Lock()
	if _, busy := w.inFlight[path]; busy {
		w.mu.Unlock()
		return nil
	}
	w.inFlight[path] = struct{}{}
	w.mu.Unlock()

	select {
	case w.semaphore <- struct{}{}:
	case <-ctx.Done():
		w.release(path)
		return ctx.Err()
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer func() { <-w.semaphore }()
		defer w.release(path)

		if settle > 0 {
			select {
			case <-time.After(settle):
			case <-ctx.Done():
				return
			}
		}

		if err := w.handler(ctx, path); err != nil {
			w.logger.Error(ctx, "Failed to process %s: %v", path, err)
		}
	}()

	return nil
}

func (w *implWatcher) release(path string) {
	w.mu.Lock()
	delete(w.inFlight, path)
	w.mu.Unlock()
}

func (w *implWatcher) isInputFile(path string) bool {
	_, ok := w.extensions[strings.ToLower(filepath.Ext(path))]
	return ok
}
