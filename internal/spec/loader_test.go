package spec

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/mcpswag/mcpswag/internal/config"
)

const minimalSpec = `{
	"openapi": "3.0.0",
	"info": {"title": "Test API", "version": "1.0.0"},
	"paths": {
		"/users": {
			"get": {
				"summary": "Get all users",
				"responses": {"200": {"description": "ok"}}
			}
		}
	}
}`

const minimalSpecYAML = `openapi: 3.0.0
info:
  title: Test API
  version: 1.0.0
paths:
  /users:
    get:
      summary: Get all users
      responses:
        "200":
          description: ok
`

func newTestLoader(t *testing.T) *Loader {
	t.Helper()
	config.SetDefaults()
	logger, _ := zap.NewDevelopment()
	return NewLoader(logger)
}

func TestLoadFromURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(minimalSpec))
	}))
	defer server.Close()

	loader := newTestLoader(t)
	doc, err := loader.Load(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expected no error but got: %v", err)
	}

	if doc.Dialect() != DialectOpenAPI3 {
		t.Errorf("Expected openapi3 dialect, got %s", doc.Dialect())
	}
	if title := getString(doc.Info(), "title"); title != "Test API" {
		t.Errorf("Expected title 'Test API', got %q", title)
	}
	if len(doc.RawPaths()) != 1 {
		t.Errorf("Expected 1 path, got %d", len(doc.RawPaths()))
	}
}

func TestLoadFromURLYAMLContentType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		w.Write([]byte(minimalSpecYAML))
	}))
	defer server.Close()

	loader := newTestLoader(t)
	doc, err := loader.Load(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expected no error but got: %v", err)
	}
	if title := getString(doc.Info(), "title"); title != "Test API" {
		t.Errorf("Expected title 'Test API', got %q", title)
	}
}

func TestLoadFromURLErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not here", http.StatusNotFound)
	}))
	defer server.Close()

	loader := newTestLoader(t)
	_, err := loader.Load(context.Background(), server.URL)

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Expected ParseError, got %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "spec.json")
	if err := os.WriteFile(jsonPath, []byte(minimalSpec), 0o644); err != nil {
		t.Fatal(err)
	}
	yamlPath := filepath.Join(dir, "spec.yaml")
	if err := os.WriteFile(yamlPath, []byte(minimalSpecYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	loader := newTestLoader(t)

	for _, path := range []string{jsonPath, yamlPath} {
		doc, err := loader.Load(context.Background(), path)
		if err != nil {
			t.Fatalf("Load(%s): expected no error but got: %v", path, err)
		}
		if title := getString(doc.Info(), "title"); title != "Test API" {
			t.Errorf("Load(%s): expected title 'Test API', got %q", path, title)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	loader := newTestLoader(t)
	_, err := loader.Load(context.Background(), filepath.Join(t.TempDir(), "nope.json"))

	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("Expected NotFoundError, got %v", err)
	}
}

func TestLoadUnreadablePathIsParseError(t *testing.T) {
	// A path component that is a regular file fails stat with ENOTDIR,
	// which is an access failure rather than a missing spec.
	dir := t.TempDir()
	file := filepath.Join(dir, "spec.json")
	if err := os.WriteFile(file, []byte(minimalSpec), 0o644); err != nil {
		t.Fatal(err)
	}

	loader := newTestLoader(t)
	_, err := loader.Load(context.Background(), filepath.Join(file, "child.json"))

	var notFound *NotFoundError
	if errors.As(err, &notFound) {
		t.Fatalf("Expected a read failure, got NotFoundError: %v", err)
	}
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Expected ParseError, got %v", err)
	}
}

func TestLoadMalformedJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, []byte(`{"openapi": `), 0o644); err != nil {
		t.Fatal(err)
	}

	loader := newTestLoader(t)
	_, err := loader.Load(context.Background(), path)

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Expected ParseError, got %v", err)
	}
}

func TestDialectDetection(t *testing.T) {
	tests := []struct {
		name string
		root map[string]interface{}
		want Dialect
	}{
		{"openapi3", map[string]interface{}{"openapi": "3.0.0"}, DialectOpenAPI3},
		{"swagger2", map[string]interface{}{"swagger": "2.0"}, DialectSwagger2},
		{"unknown", map[string]interface{}{"info": map[string]interface{}{}}, DialectUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewDocument(tt.root, "test").Dialect(); got != tt.want {
				t.Errorf("Dialect() = %s, want %s", got, tt.want)
			}
		})
	}
}
