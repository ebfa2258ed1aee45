package content

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"
)

// Collection holds the validated entries of one collection, in the order
// they were loaded from disk.
type Collection struct {
	name    string
	shape   Shape
	entries []*Entry
	byID    map[string]*Entry
}

// Registry maps collection names to their handles. Collections are
// registered explicitly once per build; there is no process-wide state.
type Registry struct {
	collections map[string]*Collection
}

func NewRegistry() *Registry {
	return &Registry{collections: make(map[string]*Collection)}
}

// Register associates a name with a shape and returns the collection
// handle. Registering a name twice replaces the previous collection.
func (r *Registry) Register(name string, shape Shape) *Collection {
	c := &Collection{
		name:  name,
		shape: shape,
		byID:  make(map[string]*Entry),
	}
	r.collections[name] = c
	return c
}

func (r *Registry) Lookup(name string) (*Collection, bool) {
	c, ok := r.collections[name]
	return c, ok
}

func (c *Collection) Name() string { return c.name }
func (c *Collection) Len() int     { return len(c.entries) }

// Add validates a raw front-matter record against the collection's shape
// and appends the entry. A validation failure is annotated with the
// collection and entry id and returned as-is, aborting the caller's load.
func (c *Collection) Add(id string, raw map[string]interface{}, body []byte) (*Entry, error) {
	meta, err := Validate(raw, c.shape)
	if err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			ve.Collection = c.name
			ve.Entry = id
		}
		return nil, err
	}

	e := &Entry{ID: id, Meta: meta, body: body}
	c.entries = append(c.entries, e)
	c.byID[id] = e
	return e, nil
}

// Load walks dir and adds every Markdown file found, fail-fast: the first
// unreadable or invalid entry aborts the load with its error. The id of an
// entry is its path relative to dir, slash-separated, without the .md
// extension. Entries are kept in walk order.
func (c *Collection) Load(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return fmt.Errorf("content directory %q for collection %q not found", dir, c.name)
	}

	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("error walking %q: %w", path, err)
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".md") {
			return nil
		}

		fileBytes, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %q: %w", path, err)
		}

		raw := map[string]interface{}{}
		body, err := frontmatter.Parse(bytes.NewReader(fileBytes), &raw)
		if err != nil {
			return fmt.Errorf("failed to parse front matter of %q: %w", path, err)
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return fmt.Errorf("failed to resolve %q against %q: %w", path, dir, err)
		}
		id := filepath.ToSlash(strings.TrimSuffix(rel, filepath.Ext(rel)))

		if _, err := c.Add(id, raw, body); err != nil {
			return err
		}
		return nil
	})
}

// GetAll returns every entry in load order. The returned slice is a copy;
// the entries themselves are shared and must not be mutated.
func (c *Collection) GetAll() []*Entry {
	out := make([]*Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Filter returns the entries matching pred, preserving load order.
func (c *Collection) Filter(pred func(*Entry) bool) []*Entry {
	var out []*Entry
	for _, e := range c.entries {
		if pred(e) {
			out = append(out, e)
		}
	}
	return out
}

// Published returns the non-draft entries. Production output is built from
// this view only.
func (c *Collection) Published() []*Entry {
	return c.Filter(func(e *Entry) bool { return !e.Meta.Draft() })
}

// Get looks up an entry by id. A missing id is not an error; soft
// references from other collections legitimately dangle.
func (c *Collection) Get(id string) (*Entry, bool) {
	e, ok := c.byID[id]
	return e, ok
}
