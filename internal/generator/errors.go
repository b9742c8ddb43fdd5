package generator

import "errors"

var (
	ErrGenerationFailed  = errors.New("video generation failed")
	ErrGenerationTimeout = errors.New("video generation timed out")
	ErrMissingVideoID    = errors.New("kling response has no video_id")
	ErrMissingVideoURL   = errors.New("kling status has no video_url")
	ErrUnsafeSceneID     = errors.New("scene id cannot be used as a file name")
)
