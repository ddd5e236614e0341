// Package text renders collections as one line per item for terminals.
package text

import (
	"context"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/goliatone/go-recipebook/pkg/render"
)

// Option configures the text renderer.
type Option func(*Renderer)

// WithStyles toggles lipgloss styling. Plain output is the default so pipes
// and tests see stable bytes.
func WithStyles(enabled bool) Option {
	return func(r *Renderer) {
		r.styled = enabled
	}
}

// WithBullet sets the prefix written before each entry.
func WithBullet(bullet string) Option {
	return func(r *Renderer) {
		r.bullet = bullet
	}
}

// Renderer implements render.Renderer.
type Renderer struct {
	styled      bool
	bullet      string
	nameStyle   lipgloss.Style
	detailStyle lipgloss.Style
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a text renderer.
func New(options ...Option) *Renderer {
	r := &Renderer{
		nameStyle:   lipgloss.NewStyle().Bold(true),
		detailStyle: lipgloss.NewStyle().Faint(true),
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
	return "text"
}

func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

// Render writes "name: instructions" for recipes and "name" for ingredients.
func (r *Renderer) Render(ctx context.Context, list render.List) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var b strings.Builder
	for _, entry := range render.Project(list) {
		b.WriteString(r.bullet)
		b.WriteString(r.style(r.nameStyle, entry.Name))
		if list.Collection.ShowInstructions {
			b.WriteString(": ")
			b.WriteString(r.style(r.detailStyle, entry.Detail))
		}
		b.WriteByte('\n')
	}
	return []byte(b.String()), nil
}

func (r *Renderer) style(s lipgloss.Style, value string) string {
	if !r.styled || value == "" {
		return value
	}
	return s.Render(value)
}
