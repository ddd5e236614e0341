package loader

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-recipebook/pkg/contract"
)

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api.yaml")
	if err := os.WriteFile(path, []byte("openapi: 3.0.3"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	l := New(contract.NewLoaderOptions())
	data, err := l.Load(context.Background(), contract.SourceFromFile(path))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(data) != "openapi: 3.0.3" {
		t.Fatalf("unexpected payload %q", data)
	}
}

func TestLoad_FromFS(t *testing.T) {
	files := fstest.MapFS{"specs/api.yaml": {Data: []byte("x")}}

	l := New(contract.NewLoaderOptions(contract.WithFileSystem(files)))
	data, err := l.Load(context.Background(), contract.SourceFromFS("specs/api.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(data) != "x" {
		t.Fatalf("unexpected payload %q", data)
	}

	if _, err := New(contract.NewLoaderOptions()).Load(context.Background(), contract.SourceFromFS("specs/api.yaml")); err == nil {
		t.Fatalf("expected error without filesystem")
	}
}

func TestLoad_FromURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("remote"))
	}))
	defer srv.Close()

	src, err := contract.SourceFromURL(srv.URL + "/api.yaml")
	if err != nil {
		t.Fatalf("source: %v", err)
	}

	if _, err := New(contract.NewLoaderOptions()).Load(context.Background(), src); err == nil {
		t.Fatalf("expected http to be disabled without a client")
	}

	l := New(contract.NewLoaderOptions(contract.WithHTTPClient(srv.Client())))
	data, err := l.Load(context.Background(), src)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(data) != "remote" {
		t.Fatalf("unexpected payload %q", data)
	}

	missing, _ := contract.SourceFromURL(srv.URL + "/missing")
	if _, err := l.Load(context.Background(), missing); err == nil {
		t.Fatalf("expected status error")
	}
}

func TestLoad_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := New(contract.NewLoaderOptions())
	if _, err := l.Load(ctx, contract.SourceFromFile("whatever.yaml")); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestLoad_RejectsNonDocuments(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "api.txt")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	l := New(contract.NewLoaderOptions(contract.WithFileSystem(fstest.MapFS{"api.txt": {Data: []byte("x")}})))

	if _, err := l.Load(context.Background(), contract.SourceFromFile(path)); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected format error for file, got %v", err)
	}
	if _, err := l.Load(context.Background(), contract.SourceFromFS("/api.txt")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected format error for fs, got %v", err)
	}
	if _, err := l.Load(context.Background(), contract.SourceFromFile(filepath.Join(dir, "dir.yaml"))); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoad_EnforcesSizeLimit(t *testing.T) {
	previous := maxDocumentBytes
	maxDocumentBytes = 4
	t.Cleanup(func() { maxDocumentBytes = previous })

	files := fstest.MapFS{"api.yaml": {Data: []byte("openapi: 3.0.3")}}
	l := New(contract.NewLoaderOptions(contract.WithFileSystem(files)))
	if _, err := l.Load(context.Background(), contract.SourceFromFS("api.yaml")); !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected size error, got %v", err)
	}
}

func TestLoad_FromURLSendsAccept(t *testing.T) {
	var accept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accept = r.Header.Get("Accept")
		_, _ = w.Write([]byte("openapi: 3.0.3"))
	}))
	defer srv.Close()

	l := New(contract.NewLoaderOptions(contract.WithHTTPClient(srv.Client())))
	src, _ := contract.SourceFromURL(srv.URL + "/contract")
	if _, err := l.Load(context.Background(), src); err != nil {
		t.Fatalf("load: %v", err)
	}
	if accept != acceptHeader {
		t.Fatalf("unexpected Accept header %q", accept)
	}

	bad, _ := contract.SourceFromURL(srv.URL + "/contract.html")
	if _, err := l.Load(context.Background(), bad); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected format error, got %v", err)
	}
}
