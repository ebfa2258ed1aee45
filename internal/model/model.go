package model

import (
	"html/template"

	"github.com/andarms/andarms.com/internal/content"
)

// Page is one rendered content entry plus everything its template needs.
type Page struct {
	Entry     *content.Entry
	Content   template.HTML
	Permalink string

	// Project is the blog post's resolved project reference, nil when the
	// post names none or the reference dangles.
	Project *Page
}

// SiteData is the site-wide context handed to every template: the free-form
// params from config.yaml and the rendered pages of each collection, sorted
// by date descending.
type SiteData struct {
	Params   map[string]interface{}
	Blog     []*Page
	Projects []*Page
}
