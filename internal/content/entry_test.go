package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

func TestEntryRender(t *testing.T) {
	c := NewRegistry().Register("blog", BlogShape)
	e, err := c.Add("hello", map[string]interface{}{
		"title": "Hello",
		"date":  "2026-01-15",
	}, []byte("# Heading\n\nSome **bold** text.\n"))
	require.NoError(t, err)

	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	html, err := e.Render(md)
	require.NoError(t, err)

	assert.Contains(t, string(html), "<h1")
	assert.Contains(t, string(html), "<strong>bold</strong>")
}

func TestEntryBodyIsSeparateFromMetadata(t *testing.T) {
	c := NewRegistry().Register("blog", BlogShape)
	e, err := c.Add("hello", map[string]interface{}{
		"title": "Hello",
		"date":  "2026-01-15",
	}, []byte("body only\n"))
	require.NoError(t, err)

	assert.Equal(t, "body only\n", string(e.Body()))
	_, hasBody := e.Meta["body"]
	assert.False(t, hasBody)
}
