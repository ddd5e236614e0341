package render

import (
	"context"
)

// Renderer converts a List into a byte representation (terminal text, HTML,
// spreadsheets).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, list List) ([]byte, error)
}
