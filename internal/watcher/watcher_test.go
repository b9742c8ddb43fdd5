package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/callmepikachu/AniHub-Demo/internal/logger"
)

type nopLogger struct{}

func (nopLogger) Debug(ctx context.Context, msg string, args ...interface{}) {}
func (nopLogger) Info(ctx context.Context, msg string, args ...interface{})  {}
func (nopLogger) Warn(ctx context.Context, msg string, args ...interface{})  {}
func (nopLogger) Error(ctx context.Context, msg string, args ...interface{}) {}
func (l nopLogger) With(key string, value interface{}) logger.Logger         { return l }

type collector struct {
	mu    sync.Mutex
	paths []string
	seen  chan string
}

func newCollector() *collector {
	return &collector{seen: make(chan string, 16)}
}

func (c *collector) handle(ctx context.Context, path string) error {
	c.mu.Lock()
	c.paths = append(c.paths, path)
	c.mu.Unlock()
	c.seen <- path
	return nil
}

func (c *collector) wait(t *testing.T, want string) {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case got := <-c.seen:
			if got == want {
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %s", want)
		}
	}
}

func startWatcher(t *testing.T, dir string, handler InputHandler) context.CancelFunc {
	t.Helper()

	w, err := New(dir, handler, nopLogger{}, Options{MaxConcurrent: 2, Settle: 10 * time.Millisecond})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Start(ctx)
	}()

	t.Cleanup(func() {
		cancel()
		<-done
		w.Stop()
	})
	return cancel
}

func TestWatcherPicksUpNewTextFiles(t *testing.T) {
	dir := t.TempDir()
	c := newCollector()
	startWatcher(t, dir, c.handle)

	// Give the watcher loop a moment to start.
	time.Sleep(50 * time.Millisecond)

	ignored := filepath.Join(dir, "clip.mp4")
	if err := os.WriteFile(ignored, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	input := filepath.Join(dir, "story.txt")
	if err := os.WriteFile(input, []byte("林则徐站在虎门海滩上。"), 0644); err != nil {
		t.Fatal(err)
	}

	c.wait(t, input)

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range c.paths {
		if p == ignored {
			t.Fatalf("non-text file was handled: %s", p)
		}
	}
}

func TestWatcherProcessesExistingFiles(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "waiting.md")
	if err := os.WriteFile(existing, []byte("# 标题"), 0644); err != nil {
		t.Fatal(err)
	}

	c := newCollector()
	startWatcher(t, dir, c.handle)

	c.wait(t, existing)
}

func TestNewMissingDir(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "missing"), func(context.Context, string) error { return nil }, nopLogger{}, Options{}); err == nil {
		t.Fatal("expected an error for a missing directory")
	}
}
