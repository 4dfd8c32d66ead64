package askgen

import (
	"io/fs"

	"github.com/goliatone/go-askgen/internal/render"
)

// EmbeddedTemplates exposes the built-in templates so callers can copy them
// into a directory passed with --templates and adjust them.
func EmbeddedTemplates() fs.FS {
	return render.Templates()
}
