package interleaver

import (
	"github.com/callmepikachu/AniHub-Demo/internal/logger"
)

type implInterleaver struct {
	title  string
	logger logger.Logger
}

// New creates an Interleaver whose documents carry title.
func New(title string, log logger.Logger) Interleaver {
	return &implInterleaver{
		title:  title,
		logger: log,
	}
}
