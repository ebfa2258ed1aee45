// Package content defines the site's content collections: the shape of each
// collection's front matter, validation of raw entries against that shape,
// and the query surface the build uses to render pages.
package content

import (
	"fmt"
	"net/url"
	"time"
)

// Kind is the declared type of a front-matter field.
type Kind int

const (
	String Kind = iota
	Date
	StringList
	Bool
	// URL is a string that must parse as an absolute URL when present.
	URL
)

// Field declares one front-matter key of a collection shape.
type Field struct {
	Name     string
	Kind     Kind
	Required bool
}

// Shape is the declared front matter of one collection. Keys not listed in
// a shape are passed through untouched; the shape is permissive about
// extras.
type Shape struct {
	Fields []Field
}

// BlogShape is the front matter of a blog post. The project key is a soft
// reference to a project entry's id and is deliberately not checked here;
// resolving it is the renderer's job and a dangling reference is not an
// error.
var BlogShape = Shape{Fields: []Field{
	{Name: "title", Kind: String, Required: true},
	{Name: "description", Kind: String},
	{Name: "date", Kind: Date, Required: true},
	{Name: "tags", Kind: StringList},
	{Name: "project", Kind: String},
	{Name: "draft", Kind: Bool},
}}

// ProjectShape is the front matter of a portfolio project.
var ProjectShape = Shape{Fields: []Field{
	{Name: "title", Kind: String, Required: true},
	{Name: "description", Kind: String},
	{Name: "date", Kind: Date, Required: true},
	{Name: "url", Kind: URL},
	{Name: "repo", Kind: URL},
	{Name: "thumbnail", Kind: String},
	{Name: "tags", Kind: StringList},
	{Name: "draft", Kind: Bool},
}}

// dateFormats are the accepted textual date layouts, most specific first.
var dateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Validate checks a raw front-matter record against a shape and returns the
// normalized record: required fields present, dates parsed, defaults
// applied (tags gets a fresh empty slice, draft gets false). Validating an
// already-normalized record returns an identical one.
func Validate(raw map[string]interface{}, shape Shape) (Metadata, error) {
	meta := make(Metadata, len(raw)+2)
	for k, v := range raw {
		meta[k] = v
	}

	for _, f := range shape.Fields {
		v, ok := raw[f.Name]
		if !ok || v == nil {
			if f.Required {
				return nil, &ValidationError{Field: f.Name, Reason: MissingRequiredField}
			}
			switch f.Kind {
			case StringList:
				meta[f.Name] = []string{}
			case Bool:
				meta[f.Name] = false
			}
			continue
		}

		norm, err := coerce(v, f)
		if err != nil {
			return nil, err
		}
		meta[f.Name] = norm
	}

	return meta, nil
}

func coerce(v interface{}, f Field) (interface{}, error) {
	switch f.Kind {
	case String:
		s, ok := v.(string)
		if !ok {
			return nil, mismatch(f.Name, "string", v)
		}
		return s, nil

	case Bool:
		b, ok := v.(bool)
		if !ok {
			return nil, mismatch(f.Name, "bool", v)
		}
		return b, nil

	case Date:
		switch d := v.(type) {
		case time.Time:
			return d, nil
		case string:
			for _, layout := range dateFormats {
				if t, err := time.Parse(layout, d); err == nil {
					return t, nil
				}
			}
			return nil, &ValidationError{
				Field:  f.Name,
				Reason: TypeMismatch,
				Detail: fmt.Sprintf("unrecognized date %q, use YYYY-MM-DD or RFC3339", d),
			}
		default:
			return nil, mismatch(f.Name, "date", v)
		}

	case StringList:
		switch l := v.(type) {
		case []string:
			return l, nil
		case []interface{}:
			out := make([]string, len(l))
			for i, item := range l {
				s, ok := item.(string)
				if !ok {
					return nil, mismatch(f.Name, "list of strings", item)
				}
				out[i] = s
			}
			return out, nil
		default:
			return nil, mismatch(f.Name, "list of strings", v)
		}

	case URL:
		s, ok := v.(string)
		if !ok {
			return nil, mismatch(f.Name, "string", v)
		}
		u, err := url.Parse(s)
		if err != nil || !u.IsAbs() || u.Host == "" {
			return nil, &ValidationError{
				Field:  f.Name,
				Reason: MalformedURL,
				Detail: fmt.Sprintf("%q is not an absolute URL", s),
			}
		}
		return s, nil
	}

	return nil, mismatch(f.Name, "known kind", v)
}

func mismatch(field, want string, got interface{}) *ValidationError {
	return &ValidationError{
		Field:  field,
		Reason: TypeMismatch,
		Detail: fmt.Sprintf("want %s, got %T", want, got),
	}
}
