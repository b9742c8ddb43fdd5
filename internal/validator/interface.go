package validator

import (
	"context"

	"github.com/callmepikachu/AniHub-Demo/internal/models"
)

// Validator turns untrusted scene records into well-formed scenes.
type Validator interface {
	// Validate keeps the records that parse, in input order. Rejected
	// records are logged and left out; it never fails.
	Validate(ctx context.Context, raw []any) []models.Scene
}
