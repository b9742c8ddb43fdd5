package watcher

import (
	"fmt"
	"strings"
	"time"

	"github.com/callmepikachu/AniHub-Demo/internal/logger"
	"github.com/fsnotify/fsnotify"
)

// DefaultExtensions are the input types picked up by the watcher.
var DefaultExtensions = []string{".txt", ".md"}

type Options struct {
	MaxConcurrent int
	Extensions    []string
	// Settle is how long to wait after a create event before reading the
	// file, so writers can finish.
	Settle time.Duration
}

// New creates a Watcher on inputDir with concurrency control.
func New(inputDir string, handler InputHandler, log logger.Logger, opts Options) (Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(inputDir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 2
	}
	if len(opts.Extensions) == 0 {
		opts.Extensions = DefaultExtensions
	}
	if opts.Settle < 0 {
		opts.Settle = 0
	}

	exts := make(map[string]struct{}, len(opts.Extensions))
	for _, e := range opts.Extensions {
		exts[strings.ToLower(e)] = struct{}{}
	}

	return &implWatcher{
		inputDir:      inputDir,
		handler:       handler,
		logger:        log,
		watcher:       watcher,
		maxConcurrent: opts.MaxConcurrent,
		settle:        opts.Settle,
		extensions:    exts,
		semaphore:     make(chan struct{}, opts.MaxConcurrent),
		inFlight:      make(map[string]struct{}),
	}, nil
}
