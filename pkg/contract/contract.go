// Package contract captures the HTTP API consumed by the client as an OpenAPI
// document and validates outgoing requests against it before they reach the
// network.
package contract

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
)

//go:embed recipebook.openapi.yaml
var embeddedDocument []byte

// validationHost is the placeholder origin requests are rebased onto. The
// document declares no servers, so routing only looks at the path.
const validationHost = "http://contract.local"

// ErrInvalidRequest wraps every validation failure.
var ErrInvalidRequest = errors.New("contract: request does not match the API contract")

// Operation is one method/path pair declared by the document.
type Operation struct {
	ID     string
	Method string
	Path   string
}

// Contract is a parsed and validated API document with a router ready to
// match requests.
type Contract struct {
	doc    *openapi3.T
	router routers.Router
}

var (
	defaultOnce     sync.Once
	defaultContract *Contract
	defaultErr      error
)

// Default returns the embedded contract of the recipe management API.
func Default() (*Contract, error) {
	defaultOnce.Do(func() {
		defaultContract, defaultErr = Load(context.Background(), embeddedDocument)
	})
	return defaultContract, defaultErr
}

// EmbeddedDocument returns a copy of the embedded OpenAPI document.
func EmbeddedDocument() []byte {
	return append([]byte(nil), embeddedDocument...)
}

// Load parses raw (YAML or JSON), validates it, and builds a router.
func Load(ctx context.Context, raw []byte) (*Contract, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, errors.New("contract: document payload is empty")
	}

	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("contract: load document: %w", err)
	}
	if doc.Paths == nil || doc.Paths.Len() == 0 {
		return nil, errors.New("contract: document does not contain any paths")
	}
	// Routing is path based; the configured base URL decides the origin.
	doc.Servers = nil

	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("contract: validate document: %w", err)
	}

	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("contract: build router: %w", err)
	}
	return &Contract{doc: doc, router: router}, nil
}

// Operations lists the declared operations sorted by path then method.
func (c *Contract) Operations() []Operation {
	if c == nil || c.doc == nil || c.doc.Paths == nil {
		return nil
	}
	var out []Operation
	for path, item := range c.doc.Paths.Map() {
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			if op == nil {
				continue
			}
			out = append(out, Operation{ID: op.OperationID, Method: method, Path: path})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Path != out[j].Path {
			return out[i].Path < out[j].Path
		}
		return out[i].Method < out[j].Method
	})
	return out
}

// ValidateRequest checks that method and path match a declared operation and
// that body satisfies its request schema. Authentication is not checked.
func (c *Contract) ValidateRequest(ctx context.Context, method, path string, body []byte) error {
	if c == nil || c.router == nil {
		return errors.New("contract: not loaded")
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	req, err := http.NewRequestWithContext(ctx, method, validationHost+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("contract: build request: %w", err)
	}
	if len(body) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}

	route, params, err := c.router.FindRoute(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrInvalidRequest, method, path, err)
	}

	input := &openapi3filter.RequestValidationInput{
		Request:    req,
		PathParams: params,
		Route:      route,
		Options: &openapi3filter.Options{
			AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
		},
	}
	if err := openapi3filter.ValidateRequest(ctx, input); err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrInvalidRequest, method, path, err)
	}
	return nil
}
