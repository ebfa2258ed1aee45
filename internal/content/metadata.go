package content

import "time"

// Metadata is a normalized front-matter record. Typed accessors return the
// zero value for keys the entry's shape does not carry.
type Metadata map[string]interface{}

func (m Metadata) String(key string) string {
	s, _ := m[key].(string)
	return s
}

func (m Metadata) Bool(key string) bool {
	b, _ := m[key].(bool)
	return b
}

func (m Metadata) Strings(key string) []string {
	l, _ := m[key].([]string)
	return l
}

func (m Metadata) Time(key string) time.Time {
	t, _ := m[key].(time.Time)
	return t
}

func (m Metadata) Title() string       { return m.String("title") }
func (m Metadata) Description() string { return m.String("description") }
func (m Metadata) Date() time.Time     { return m.Time("date") }
func (m Metadata) Tags() []string      { return m.Strings("tags") }
func (m Metadata) Draft() bool         { return m.Bool("draft") }

// Project is the blog post's soft reference to a project entry id.
func (m Metadata) Project() string { return m.String("project") }

func (m Metadata) URL() string       { return m.String("url") }
func (m Metadata) Repo() string      { return m.String("repo") }
func (m Metadata) Thumbnail() string { return m.String("thumbnail") }
