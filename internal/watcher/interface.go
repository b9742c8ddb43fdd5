package watcher

import "context"

// Watcher feeds text files dropped into an input folder to an
// InputHandler, at most Options.MaxConcurrent at a time.
type Watcher interface {
	// Start first handles files already waiting in the folder, then new
	// ones as they appear. It blocks until ctx is cancelled and in-flight
	// handlers return.
	Start(ctx context.Context) error
	Stop() error
}

// InputHandler runs the pipeline for one input file. A returned error is
// logged and the file is left in place.
type InputHandler func(ctx context.Context, inputPath string) error
