// Package testsupport provides an in-memory stand-in for the recipe
// management backend so client, controller and page tests can exercise real
// HTTP round-trips.
package testsupport

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/goliatone/go-recipebook/pkg/model"
)

// Request is one request observed by the Backend.
type Request struct {
	Method        string
	Path          string
	Authorization string
	RequestID     string
	Body          string
}

// Backend serves /recipes, /ingredients, /register and /logout from memory.
type Backend struct {
	// Token, when non-empty, is the only bearer token accepted.
	Token string

	mu          sync.Mutex
	server      *httptest.Server
	collections map[string][]model.Item
	users       map[string]struct{}
	nextID      int
	failures    map[string]int
	requests    []Request
}

// NewBackend starts a Backend and closes it when the test ends.
func NewBackend(t *testing.T) *Backend {
	t.Helper()

	b := &Backend{
		collections: map[string][]model.Item{
			model.Recipes.Name:     {},
			model.Ingredients.Name: {},
		},
		users:    make(map[string]struct{}),
		nextID:   1,
		failures: make(map[string]int),
	}
	b.server = httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(b.server.Close)
	return b
}

// URL is the origin of the backend.
func (b *Backend) URL() string {
	return b.server.URL
}

// Client returns an http.Client wired to the backend.
func (b *Backend) Client() *http.Client {
	return b.server.Client()
}

// Close stops the server so later requests fail at the transport level.
func (b *Backend) Close() {
	b.server.Close()
}

// Seed appends items to a collection. Items without an ID get one assigned.
func (b *Backend) Seed(col model.Collection, items ...model.Item) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, item := range items {
		if item.ID.IsZero() {
			item.ID = b.allocateID()
		}
		b.collections[col.Name] = append(b.collections[col.Name], item)
	}
}

// Items returns the server side state of a collection.
func (b *Backend) Items(col model.Collection) []model.Item {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]model.Item{}, b.collections[col.Name]...)
}

// AddUser registers a username so /register answers 409 for it.
func (b *Backend) AddUser(username string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.users[username] = struct{}{}
}

// Fail makes every request matching method and path answer status.
func (b *Backend) Fail(method, path string, status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[method+" "+path] = status
}

// Requests returns every observed request in arrival order.
func (b *Backend) Requests() []Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Request{}, b.requests...)
}

// Count reports how many requests matched method and path.
func (b *Backend) Count(method, path string) int {
	n := 0
	for _, req := range b.Requests() {
		if req.Method == method && req.Path == path {
			n++
		}
	}
	return n
}

// Reset forgets observed requests.
func (b *Backend) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.requests = nil
}

func (b *Backend) allocateID() model.ID {
	id := model.ID(strconv.Itoa(b.nextID))
	b.nextID++
	return id
}

func (b *Backend) serve(w http.ResponseWriter, r *http.Request) {
	data, _ := io.ReadAll(r.Body)

	b.mu.Lock()
	defer b.mu.Unlock()

	b.requests = append(b.requests, Request{
		Method:        r.Method,
		Path:          r.URL.Path,
		Authorization: r.Header.Get("Authorization"),
		RequestID:     r.Header.Get("X-Request-Id"),
		Body:          string(data),
	})

	if status, ok := b.failures[r.Method+" "+r.URL.Path]; ok {
		http.Error(w, http.StatusText(status), status)
		return
	}

	if r.URL.Path == "/register" {
		b.register(w, r, data)
		return
	}

	if b.Token != "" && r.Header.Get("Authorization") != "Bearer "+b.Token {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	if r.URL.Path == "/logout" {
		if r.Method != http.MethodPost {
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		w.WriteHeader(http.StatusOK)
		return
	}

	segments := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	items, ok := b.collections[segments[0]]
	if !ok {
		http.NotFound(w, r)
		return
	}

	switch {
	case len(segments) == 1 && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, items)
	case len(segments) == 1 && r.Method == http.MethodPost:
		var item model.Item
		if err := json.Unmarshal(data, &item); err != nil || strings.TrimSpace(item.Name) == "" {
			http.Error(w, "invalid body", http.StatusBadRequest)
			return
		}
		item.ID = b.allocateID()
		b.collections[segments[0]] = append(items, item)
		writeJSON(w, http.StatusCreated, item)
	case len(segments) == 2 && r.Method == http.MethodPut:
		idx := indexOf(items, model.ID(segments[1]))
		if idx < 0 {
			http.NotFound(w, r)
			return
		}
		var patch map[string]string
		if err := json.Unmarshal(data, &patch); err != nil {
			http.Error(w, "invalid body", http.StatusBadRequest)
			return
		}
		if v, ok := patch[model.FieldInstructions]; ok {
			items[idx].Instructions = v
		}
		if v, ok := patch[model.FieldName]; ok {
			items[idx].Name = v
		}
		writeJSON(w, http.StatusOK, items[idx])
	case len(segments) == 2 && r.Method == http.MethodDelete:
		idx := indexOf(items, model.ID(segments[1]))
		if idx < 0 {
			http.NotFound(w, r)
			return
		}
		next := append([]model.Item{}, items[:idx]...)
		b.collections[segments[0]] = append(next, items[idx+1:]...)
		w.WriteHeader(http.StatusOK)
	default:
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}
}

func (b *Backend) register(w http.ResponseWriter, r *http.Request, data []byte) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	var req model.RegisterRequest
	if err := json.Unmarshal(data, &req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if _, exists := b.users[req.Username]; exists {
		http.Error(w, "user already exists", http.StatusConflict)
		return
	}
	b.users[req.Username] = struct{}{}
	w.WriteHeader(http.StatusCreated)
}

func indexOf(items []model.Item, id model.ID) int {
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
