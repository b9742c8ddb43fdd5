package models

type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// GenerationResult is the outcome of rendering a single scene. Error,
// Generator and VideoID are diagnostics only.
type GenerationResult struct {
	Status    Status `json:"status"`
	VideoPath string `json:"video_path,omitempty"`
	Error     string `json:"error,omitempty"`
	Generator string `json:"generator,omitempty"`
	VideoID   string `json:"video_id,omitempty"`
}

// HasMedia reports whether the result points at a usable media file.
func (r GenerationResult) HasMedia() bool {
	return r.Status == StatusSuccess && r.VideoPath != ""
}

// Failed builds a failed result carrying err's message.
func Failed(err error) GenerationResult {
	return GenerationResult{
		Status: StatusFailed,
		Error:  err.Error(),
	}
}

// Results maps scene id to its generation outcome.
type Results map[string]GenerationResult
