package extractor

import "errors"

var (
	ErrNotConfigured     = errors.New("remote extractor not configured")
	ErrEmptyResponse     = errors.New("empty response from scene extractor")
	ErrMalformedResponse = errors.New("malformed scene extractor response")
)
