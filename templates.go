package recipebook

import (
	"io/fs"

	"github.com/goliatone/go-recipebook/pkg/renderers/html"
)

// EmbeddedTemplates exposes the built-in HTML list templates so callers can
// reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return html.TemplatesFS()
}
