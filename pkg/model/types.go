package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ID is the opaque identifier assigned by the server. The API may encode it as
// a JSON number or string; both decode to the same textual form.
type ID string

// String returns the identifier as used in request paths.
func (id ID) String() string {
	return string(id)
}

// IsZero reports whether the identifier is empty.
func (id ID) IsZero() bool {
	return id == ""
}

// UnmarshalJSON accepts numbers and strings.
func (id *ID) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*id = ""
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return fmt.Errorf("model: decode id: %w", err)
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return fmt.Errorf("model: decode id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// Item is a recipe or an ingredient. Instructions is only populated for
// recipes.
type Item struct {
	ID           ID     `json:"id"`
	Name         string `json:"name"`
	Instructions string `json:"instructions,omitempty"`
}

// Fields holds trimmed user input keyed by JSON field name.
type Fields map[string]string

// Get returns the trimmed value for key.
func (f Fields) Get(key string) string {
	if f == nil {
		return ""
	}
	return strings.TrimSpace(f[key])
}

// Trimmed returns a copy with every value trimmed.
func (f Fields) Trimmed() Fields {
	out := make(Fields, len(f))
	for key, value := range f {
		out[key] = strings.TrimSpace(value)
	}
	return out
}

// Pick returns the subset of fields named by keys, trimmed. Missing keys are
// returned as empty strings so callers can validate presence.
func (f Fields) Pick(keys ...string) Fields {
	out := make(Fields, len(keys))
	for _, key := range keys {
		out[key] = f.Get(key)
	}
	return out
}

// Missing returns the keys whose trimmed value is empty, in the given order.
func (f Fields) Missing(keys ...string) []string {
	var out []string
	for _, key := range keys {
		if f.Get(key) == "" {
			out = append(out, key)
		}
	}
	return out
}

// RegisterRequest is the body of POST /register.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
