package cmd

import (
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/andarms/andarms.com/internal/config"
	"github.com/andarms/andarms.com/internal/content"
	"github.com/andarms/andarms.com/internal/model"
)

const (
	blogSubdir     = "blog"
	projectsSubdir = "projects"

	baseLayout   = "base.html"
	singleLayout = "single.html"
	homeLayout   = "home.html"
)

var includeDrafts bool

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Builds the static site from the content collections",
	Long: `The build command validates every entry in the blog and project
collections, renders the Markdown bodies, applies the layouts, copies static
assets, and writes the site to the configured output directory. A single
invalid entry aborts the build.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBuild(appConfig, siteParams)
	},
}

func runBuild(cfg config.Config, params map[string]interface{}) error {
	fmt.Printf("Building site '%s' into '%s'\n", cfg.SiteTitle, cfg.OutputDir)

	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithHardWraps(),
		),
	)

	registry := content.NewRegistry()
	blog := registry.Register("blog", content.BlogShape)
	projects := registry.Register("project", content.ProjectShape)

	if err := blog.Load(filepath.Join(cfg.ContentDir, blogSubdir)); err != nil {
		return fmt.Errorf("blog collection: %w", err)
	}
	if err := projects.Load(filepath.Join(cfg.ContentDir, projectsSubdir)); err != nil {
		return fmt.Errorf("project collection: %w", err)
	}
	fmt.Printf("Loaded %d blog posts, %d projects.\n", blog.Len(), projects.Len())

	if err := os.RemoveAll(cfg.OutputDir); err != nil {
		return fmt.Errorf("failed to clean output directory %q: %w", cfg.OutputDir, err)
	}
	if err := os.MkdirAll(cfg.OutputDir, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create output directory %q: %w", cfg.OutputDir, err)
	}

	if _, err := os.Stat(cfg.StaticDir); !os.IsNotExist(err) {
		if err := copyDirContents(cfg.StaticDir, cfg.OutputDir); err != nil {
			return fmt.Errorf("failed to copy static assets: %w", err)
		}
	} else {
		fmt.Printf("Static directory %q not found, skipping copy.\n", cfg.StaticDir)
	}

	templates, err := loadLayouts(cfg.LayoutsDir)
	if err != nil {
		return err
	}

	visible := func(c *content.Collection) []*content.Entry {
		if includeDrafts {
			return c.GetAll()
		}
		return c.Published()
	}

	projectPages, err := renderPages(md, visible(projects), "/projects/")
	if err != nil {
		return err
	}
	blogPages, err := renderPages(md, visible(blog), "/blog/")
	if err != nil {
		return err
	}

	// Resolve the posts' project references against the pages actually
	// being published. A dangling reference leaves Project nil; the post
	// still renders.
	projectByID := make(map[string]*model.Page, len(projectPages))
	for _, p := range projectPages {
		projectByID[p.Entry.ID] = p
	}
	for _, p := range blogPages {
		if ref := p.Entry.Meta.Project(); ref != "" {
			p.Project = projectByID[ref]
		}
	}

	sortByDate(blogPages)
	sortByDate(projectPages)

	site := &model.SiteData{
		Params:   params,
		Blog:     blogPages,
		Projects: projectPages,
	}

	for _, p := range blogPages {
		if err := writePage(templates, cfg.OutputDir, site, p, pickLayout(templates, p, "single-post.html")); err != nil {
			return err
		}
	}
	for _, p := range projectPages {
		if err := writePage(templates, cfg.OutputDir, site, p, pickLayout(templates, p, "single-project.html")); err != nil {
			return err
		}
	}

	if err := writeListing(templates, cfg.OutputDir, site, homeLayout, ""); err != nil {
		return err
	}
	for _, listing := range []struct{ layout, dir string }{
		{"list-blog.html", blogSubdir},
		{"list-projects.html", projectsSubdir},
	} {
		if templates.Lookup(listing.layout) == nil {
			fmt.Printf("Layout %q not found, skipping %s listing.\n", listing.layout, listing.dir)
			continue
		}
		if err := writeListing(templates, cfg.OutputDir, site, listing.layout, listing.dir); err != nil {
			return err
		}
	}

	fmt.Println("Build completed successfully.")
	return nil
}

// loadLayouts parses base.html and the partials first so every later layout
// can reference them, then the remaining layout files.
func loadLayouts(dir string) (*template.Template, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, fmt.Errorf("layouts directory %q not found", dir)
	}

	var basePath string
	var partials, others []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".html") {
			return nil
		}
		switch {
		case d.Name() == baseLayout && filepath.Dir(path) == dir:
			basePath = path
		case strings.HasPrefix(filepath.Dir(path), filepath.Join(dir, "partials")):
			partials = append(partials, path)
		default:
			others = append(others, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find layout files in %q: %w", dir, err)
	}
	if basePath == "" {
		return nil, fmt.Errorf("%s not found in layouts directory %q", baseLayout, dir)
	}

	titleCaser := cases.Title(language.English)
	funcs := template.FuncMap{
		// tagTitle turns "static-sites" into "Static Sites" for listings.
		"tagTitle": func(tag string) string {
			return titleCaser.String(strings.ReplaceAll(tag, "-", " "))
		},
	}

	templates, err := template.New(baseLayout).Funcs(funcs).ParseFiles(append([]string{basePath}, partials...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s and partials: %w", baseLayout, err)
	}
	if len(others) > 0 {
		if templates, err = templates.ParseFiles(others...); err != nil {
			return nil, fmt.Errorf("failed to parse layout files: %w", err)
		}
	}
	return templates, nil
}

func renderPages(md goldmark.Markdown, entries []*content.Entry, prefix string) ([]*model.Page, error) {
	pages := make([]*model.Page, 0, len(entries))
	for _, e := range entries {
		html, err := e.Render(md)
		if err != nil {
			return nil, err
		}
		pages = append(pages, &model.Page{
			Entry:     e,
			Content:   html,
			Permalink: prefix + e.ID + "/",
		})
	}
	return pages, nil
}

// sortByDate orders pages newest first. The sort is stable so entries with
// equal dates keep their load order.
func sortByDate(pages []*model.Page) {
	sort.SliceStable(pages, func(i, j int) bool {
		return pages[i].Entry.Meta.Date().After(pages[j].Entry.Meta.Date())
	})
}

// pickLayout resolves the layout for a single page: an explicit layout key
// in the front matter wins, then the per-collection layout, then
// single.html, then base.html.
func pickLayout(templates *template.Template, p *model.Page, collectionLayout string) string {
	if l := p.Entry.Meta.String("layout"); l != "" && templates.Lookup(l) != nil {
		return l
	}
	if templates.Lookup(collectionLayout) != nil {
		return collectionLayout
	}
	if templates.Lookup(singleLayout) != nil {
		return singleLayout
	}
	return baseLayout
}

func writePage(templates *template.Template, outputDir string, site *model.SiteData, p *model.Page, layout string) error {
	outputPath := filepath.Join(outputDir, filepath.FromSlash(p.Permalink), "index.html")
	if err := os.MkdirAll(filepath.Dir(outputPath), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create directory for %q: %w", p.Entry.ID, err)
	}

	outFile, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create %q: %w", outputPath, err)
	}
	defer outFile.Close()

	data := struct {
		Site *model.SiteData
		Page *model.Page
	}{site, p}

	if err := templates.ExecuteTemplate(outFile, layout, data); err != nil {
		return fmt.Errorf("failed to execute layout %q for %q: %w", layout, p.Entry.ID, err)
	}
	return nil
}

func writeListing(templates *template.Template, outputDir string, site *model.SiteData, layout, subdir string) error {
	if templates.Lookup(layout) == nil {
		return fmt.Errorf("layout %q not found in layouts directory", layout)
	}

	outputPath := filepath.Join(outputDir, subdir, "index.html")
	if err := os.MkdirAll(filepath.Dir(outputPath), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create directory for listing %q: %w", layout, err)
	}

	outFile, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create %q: %w", outputPath, err)
	}
	defer outFile.Close()

	data := struct {
		Site *model.SiteData
	}{site}

	if err := templates.ExecuteTemplate(outFile, layout, data); err != nil {
		return fmt.Errorf("failed to execute layout %q: %w", layout, err)
	}
	return nil
}

func copyDirContents(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		relPath, err := filepath.Rel(src, path)
		if err != nil {
			return fmt.Errorf("failed to get relative path for %s: %w", path, err)
		}
		dstPath := filepath.Join(dst, relPath)

		if d.IsDir() {
			if err := os.MkdirAll(dstPath, os.ModePerm); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", dstPath, err)
			}
			return nil
		}
		return copyFile(path, dstPath)
	})
}

func copyFile(srcFile, dstFile string) error {
	srcF, err := os.Open(srcFile)
	if err != nil {
		return fmt.Errorf("failed to open source file %s: %w", srcFile, err)
	}
	defer srcF.Close()

	if err := os.MkdirAll(filepath.Dir(dstFile), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create destination directory for %s: %w", dstFile, err)
	}

	dstF, err := os.Create(dstFile)
	if err != nil {
		return fmt.Errorf("failed to create destination file %s: %w", dstFile, err)
	}
	defer dstF.Close()

	if _, err := io.Copy(dstF, srcF); err != nil {
		return fmt.Errorf("failed to copy %s to %s: %w", srcFile, dstFile, err)
	}
	return nil
}

func init() {
	buildCmd.Flags().BoolVar(&includeDrafts, "drafts", false, "include draft entries in the output")
	rootCmd.AddCommand(buildCmd)
}
