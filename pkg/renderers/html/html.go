// Package html renders collections as an HTML list using pongo2 templates.
// Item text is shown verbatim: the template autoescapes it and the finished
// list is passed through a bluemonday policy that only admits list markup.
package html

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-recipebook/pkg/render"
)

//go:embed templates/*.tpl
var embedded embed.FS

const (
	listTemplate = "list.tpl"
	pageTemplate = "page.tpl"
)

// TemplatesFS exposes the built-in templates so callers can copy or extend
// them.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		return embedded
	}
	return sub
}

// Option configures the HTML renderer.
type Option func(*Renderer)

// WithTemplatesFS replaces the template set. It must provide list.tpl and,
// for document output, page.tpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(r *Renderer) {
		if files != nil {
			r.templates = files
		}
	}
}

// WithDocument wraps the list in a full HTML page titled title.
func WithDocument(title string) Option {
	return func(r *Renderer) {
		r.document = true
		r.title = title
	}
}

// Renderer implements render.Renderer.
type Renderer struct {
	templates fs.FS
	document  bool
	title     string

	once    sync.Once
	set     *pongo2.TemplateSet
	list    *pongo2.Template
	page    *pongo2.Template
	loadErr error
	policy  *bluemonday.Policy
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the renderer. Templates are parsed on first use.
func New(options ...Option) *Renderer {
	r := &Renderer{
		templates: TemplatesFS(),
		policy:    listPolicy(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

func (r *Renderer) Name() string {
	return "html"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces `<ul id="recipe-list">` (or ingredient-list) with one li
// per item in order.
func (r *Renderer) Render(ctx context.Context, list render.List) ([]byte, error) {
	return r.RenderQuery(ctx, list, "")
}

// RenderQuery is Render with the search term echoed into the document form.
func (r *Renderer) RenderQuery(ctx context.Context, list render.List, query string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := r.load(); err != nil {
		return nil, err
	}

	entries := render.Project(list)
	rows := make([]map[string]any, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, map[string]any{
			"name":   entry.Name,
			"detail": entry.Detail,
		})
	}

	var buf bytes.Buffer
	err := r.list.ExecuteWriter(pongo2.Context{
		"list_id":     ListID(list),
		"collection":  list.Collection.Name,
		"show_detail": list.Collection.ShowInstructions,
		"entries":     rows,
	}, &buf)
	if err != nil {
		return nil, fmt.Errorf("html: execute %s: %w", listTemplate, err)
	}
	fragment := r.policy.SanitizeBytes(buf.Bytes())
	if !r.document {
		return fragment, nil
	}

	var page bytes.Buffer
	err = r.page.ExecuteWriter(pongo2.Context{
		"title": r.title,
		"query": query,
		"list":  string(fragment),
	}, &page)
	if err != nil {
		return nil, fmt.Errorf("html: execute %s: %w", pageTemplate, err)
	}
	return page.Bytes(), nil
}

// ListID returns the element id of the list container, e.g. "recipe-list".
func ListID(list render.List) string {
	singular := list.Collection.Singular
	if singular == "" {
		singular = strings.TrimSuffix(list.Collection.Name, "s")
	}
	return singular + "-list"
}

func (r *Renderer) load() error {
	r.once.Do(func() {
		if r.templates == nil {
			r.loadErr = errors.New("html: templates are not configured")
			return
		}
		r.set = pongo2.NewSet("recipebook", pongo2.NewFSLoader(r.templates))
		r.list, r.loadErr = r.set.FromFile(listTemplate)
		if r.loadErr != nil {
			r.loadErr = fmt.Errorf("html: load %s: %w", listTemplate, r.loadErr)
			return
		}
		if r.document {
			r.page, r.loadErr = r.set.FromFile(pageTemplate)
			if r.loadErr != nil {
				r.loadErr = fmt.Errorf("html: load %s: %w", pageTemplate, r.loadErr)
			}
		}
	})
	return r.loadErr
}

// listPolicy admits the elements the list templates emit. Anything else a
// custom template or a bad value smuggles in is dropped.
func listPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowElements("ul", "li", "p")
	policy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("ul", "li", "p")
	return policy
}
