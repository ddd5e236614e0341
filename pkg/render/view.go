package render

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"

	"github.com/goliatone/go-recipebook/pkg/model"
)

// Container receives a full rendering. Clear empties it before every redraw.
type Container interface {
	Clear() error
	io.Writer
}

// ListView redraws its container from scratch on every Show.
type ListView struct {
	mu         sync.Mutex
	collection model.Collection
	renderer   Renderer
	container  Container
	entries    []Entry
}

// NewListView binds a renderer and a container to a collection.
func NewListView(col model.Collection, renderer Renderer, container Container) (*ListView, error) {
	if renderer == nil {
		return nil, errors.New("render: renderer is required")
	}
	if container == nil {
		return nil, errors.New("render: container is required")
	}
	return &ListView{collection: col, renderer: renderer, container: container}, nil
}

// Show clears the container and writes the rendering of items. An empty
// slice leaves the container empty.
func (v *ListView) Show(ctx context.Context, items []model.Item) error {
	list := List{Collection: v.collection, Items: items}

	var out []byte
	if len(items) > 0 {
		var err error
		out, err = v.renderer.Render(ctx, list)
		if err != nil {
			return err
		}
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if err := v.container.Clear(); err != nil {
		return err
	}
	v.entries = Project(list)
	if len(out) == 0 {
		return nil
	}
	_, err := v.container.Write(out)
	return err
}

// Entries returns the projection of the last Show.
func (v *ListView) Entries() []Entry {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]Entry{}, v.entries...)
}

// Buffer is an in-memory Container.
type Buffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *Buffer) Clear() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf.Reset()
	return nil
}

func (b *Buffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

// String returns the current contents.
func (b *Buffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// Stream is a Container over an io.Writer. Clear writes an optional escape
// sequence, e.g. a terminal clear-screen, and is a no-op otherwise.
type Stream struct {
	W         io.Writer
	ClearCode string
}

func (s Stream) Clear() error {
	if s.ClearCode == "" || s.W == nil {
		return nil
	}
	_, err := io.WriteString(s.W, s.ClearCode)
	return err
}

func (s Stream) Write(p []byte) (int, error) {
	if s.W == nil {
		return len(p), nil
	}
	return s.W.Write(p)
}
