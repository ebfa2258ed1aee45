package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andarms/andarms.com/internal/config"
)

func write(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
}

func siteFixture(t *testing.T) config.Config {
	t.Helper()
	root := t.TempDir()

	cfg := config.Config{
		SiteTitle:  "Test Site",
		OutputDir:  filepath.Join(root, "public"),
		ContentDir: filepath.Join(root, "content"),
		LayoutsDir: filepath.Join(root, "layouts"),
		StaticDir:  filepath.Join(root, "static"),
	}

	write(t, filepath.Join(cfg.LayoutsDir, "base.html"), "<html>{{block \"main\" .}}{{end}}</html>\n")
	write(t, filepath.Join(cfg.LayoutsDir, "partials", "nav.html"), "{{define \"nav\"}}<nav></nav>{{end}}\n")
	write(t, filepath.Join(cfg.LayoutsDir, "single.html"),
		"{{template \"nav\"}}<h1>{{.Page.Entry.Meta.Title}}</h1>{{.Page.Content}}"+
			"{{with .Page.Project}}<a href=\"{{.Permalink}}\">project</a>{{end}}\n")
	write(t, filepath.Join(cfg.LayoutsDir, "home.html"),
		"<ul>{{range .Site.Blog}}<li>{{.Entry.Meta.Title}}</li>{{end}}</ul>\n")
	write(t, filepath.Join(cfg.LayoutsDir, "list-blog.html"),
		"{{range .Site.Blog}}{{.Entry.Meta.Title}} {{range .Entry.Meta.Tags}}[{{tagTitle .}}]{{end}};{{end}}\n")
	write(t, filepath.Join(cfg.LayoutsDir, "list-projects.html"),
		"{{range .Site.Projects}}{{.Entry.Meta.Title}};{{end}}\n")

	write(t, filepath.Join(cfg.StaticDir, "css", "site.css"), "body{}\n")

	blog := filepath.Join(cfg.ContentDir, "blog")
	write(t, filepath.Join(blog, "hello.md"),
		"---\ntitle: Hello\ndate: 2026-01-15\ntags: [static-sites]\nproject: generator\n---\nSome **bold** text.\n")
	write(t, filepath.Join(blog, "older.md"),
		"---\ntitle: Older\ndate: 2025-06-01\n---\nolder body\n")
	write(t, filepath.Join(blog, "secret.md"),
		"---\ntitle: Secret\ndate: 2026-02-01\ndraft: true\n---\nunfinished\n")

	projects := filepath.Join(cfg.ContentDir, "projects")
	write(t, filepath.Join(projects, "generator.md"),
		"---\ntitle: Generator\ndate: 2026-01-01\nrepo: https://github.com/andarms/andarms.com\n---\nthe generator\n")

	return cfg
}

func TestRunBuildGeneratesSite(t *testing.T) {
	cfg := siteFixture(t)
	require.NoError(t, runBuild(cfg, map[string]interface{}{"author": "test"}))

	read := func(parts ...string) string {
		b, err := os.ReadFile(filepath.Join(append([]string{cfg.OutputDir}, parts...)...))
		require.NoError(t, err)
		return string(b)
	}

	hello := read("blog", "hello", "index.html")
	assert.Contains(t, hello, "<h1>Hello</h1>")
	assert.Contains(t, hello, "<strong>bold</strong>")
	assert.Contains(t, hello, `href="/projects/generator/"`)

	assert.Contains(t, read("projects", "generator", "index.html"), "<h1>Generator</h1>")

	// drafts never reach production output
	_, err := os.Stat(filepath.Join(cfg.OutputDir, "blog", "secret"))
	assert.True(t, os.IsNotExist(err))

	// listings are date descending and use the tag titler
	assert.Contains(t, read("blog", "index.html"), "Hello [Static Sites];Older ;")
	assert.Contains(t, read("projects", "index.html"), "Generator;")
	assert.Contains(t, read("index.html"), "<li>Hello</li><li>Older</li>")

	assert.FileExists(t, filepath.Join(cfg.OutputDir, "css", "site.css"))
}

func TestRunBuildDraftsFlag(t *testing.T) {
	cfg := siteFixture(t)

	includeDrafts = true
	defer func() { includeDrafts = false }()

	require.NoError(t, runBuild(cfg, nil))
	assert.FileExists(t, filepath.Join(cfg.OutputDir, "blog", "secret", "index.html"))
}

func TestRunBuildAbortsOnInvalidEntry(t *testing.T) {
	cfg := siteFixture(t)
	write(t, filepath.Join(cfg.ContentDir, "projects", "broken.md"),
		"---\ntitle: Broken\ndate: 2026-01-02\nrepo: not-a-url\n---\nbody\n")

	err := runBuild(cfg, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "repo")
	assert.Contains(t, err.Error(), "malformed URL")
}

func TestRunBuildDanglingProjectReference(t *testing.T) {
	cfg := siteFixture(t)
	write(t, filepath.Join(cfg.ContentDir, "blog", "dangling.md"),
		"---\ntitle: Dangling\ndate: 2026-03-01\nproject: no-such-project\n---\nbody\n")

	require.NoError(t, runBuild(cfg, nil))

	b, err := os.ReadFile(filepath.Join(cfg.OutputDir, "blog", "dangling", "index.html"))
	require.NoError(t, err)
	assert.NotContains(t, string(b), "href=")
}
