package prompt

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// MemoryForm holds input values by element id.
type MemoryForm struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryForm seeds a form with values.
func NewMemoryForm(values map[string]string) *MemoryForm {
	f := &MemoryForm{values: make(map[string]string, len(values))}
	for id, v := range values {
		f.values[id] = v
	}
	return f
}

// Value returns the raw value of id, "" when unset.
func (f *MemoryForm) Value(id string) string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.values[id]
}

// Set stores the value of id.
func (f *MemoryForm) Set(id, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.values == nil {
		f.values = make(map[string]string)
	}
	f.values[id] = value
}

// Clear empties the named inputs.
func (f *MemoryForm) Clear(ids ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range ids {
		delete(f.values, id)
	}
}

// Field describes one input the PromptForm asks for.
type Field struct {
	ID        string
	Label     string
	Secret    bool
	Multiline bool
}

// PromptForm fills a MemoryForm by asking the driver for each field.
type PromptForm struct {
	*MemoryForm
	driver PromptDriver
}

// NewPromptForm binds a form to driver.
func NewPromptForm(driver PromptDriver) *PromptForm {
	return &PromptForm{MemoryForm: NewMemoryForm(nil), driver: driver}
}

// Fill prompts for every field in order. Previously entered values are
// offered as defaults, except for secrets.
func (f *PromptForm) Fill(ctx context.Context, fields ...Field) error {
	if f.driver == nil {
		return fmt.Errorf("prompt: driver is required")
	}
	for _, field := range fields {
		label := field.Label
		if strings.TrimSpace(label) == "" {
			label = field.ID
		}

		var (
			value string
			err   error
		)
		switch {
		case field.Secret:
			value, err = f.driver.Password(ctx, InputConfig{Message: label})
		case field.Multiline:
			value, err = f.driver.TextArea(ctx, TextAreaConfig{Message: label, Default: f.Value(field.ID)})
		default:
			value, err = f.driver.Input(ctx, InputConfig{Message: label, Default: f.Value(field.ID)})
		}
		if err != nil {
			return fmt.Errorf("prompt: %s: %w", field.ID, err)
		}
		f.Set(field.ID, value)
	}
	return nil
}
