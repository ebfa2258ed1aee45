package content

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
)

// Entry is one content file after validation: a path-derived id, the
// normalized front matter, and the untouched Markdown body. Entries are
// immutable once loaded.
type Entry struct {
	ID   string
	Meta Metadata

	body []byte
}

// Body returns the raw Markdown body, without the front-matter block.
func (e *Entry) Body() []byte {
	return e.body
}

// Render converts the body with the caller's Markdown converter.
func (e *Entry) Render(md goldmark.Markdown) (template.HTML, error) {
	var buf bytes.Buffer
	if err := md.Convert(e.body, &buf); err != nil {
		return "", fmt.Errorf("failed to render body of %q: %w", e.ID, err)
	}
	return template.HTML(buf.String()), nil
}
