package port

import (
	"context"
	"encoding/json"
)

// ExtractInput carries the uploaded document handed to the extractor.
type ExtractInput struct {
	FileBytes   []byte
	ContentType string
}

// DocumentExtractor abstracts the external OCR collaborator. The
// returned field map is untyped on purpose; extract.Normalize is the
// only consumer. The extractor may report failure through an "error"
// key instead of transport-level errors.
type DocumentExtractor interface {
	Extract(ctx context.Context, input ExtractInput) (json.RawMessage, error)
}

// DocumentRenderer abstracts the external rendering collaborator. It
// accepts the canonical invoice field map (same vocabulary as the
// extractor output) and returns the rendered document bytes.
type DocumentRenderer interface {
	Render(ctx context.Context, fields map[string]any) ([]byte, error)
}
