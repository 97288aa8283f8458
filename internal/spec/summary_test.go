package spec

import (
	"reflect"
	"testing"
)

func TestSummarizeCountsMatchNormalizer(t *testing.T) {
	doc := docFromJSON(t, `{
		"openapi": "3.0.0",
		"info": {"title": "Pets", "version": "2.1.0", "description": "pet store"},
		"components": {"schemas": {"Pet": {}, "Order": {}}},
		"paths": {
			"/pets": {
				"get": {"responses": {}},
				"post": {"responses": {}}
			},
			"/orders": {"get": {"responses": {}}}
		}
	}`)

	summary := doc.Summarize()

	if summary.OperationCount != len(doc.Operations()) {
		t.Errorf("Summary operation count %d != normalized operation count %d",
			summary.OperationCount, len(doc.Operations()))
	}
	if summary.PathCount != 2 {
		t.Errorf("Expected 2 paths, got %d", summary.PathCount)
	}
	if summary.SchemaCount != 2 {
		t.Errorf("Expected 2 schemas, got %d", summary.SchemaCount)
	}
	if summary.Title != "Pets" || summary.Version != "2.1.0" {
		t.Errorf("Unexpected info: %q %q", summary.Title, summary.Version)
	}
	if summary.OpenAPIVersion != "3.0.0" {
		t.Errorf("Expected dialect tag '3.0.0', got %q", summary.OpenAPIVersion)
	}
}

func TestSummarizeDefaults(t *testing.T) {
	doc := docFromJSON(t, `{"openapi": "3.0.0", "paths": {}}`)

	summary := doc.Summarize()
	if summary.Title != "Untitled API" {
		t.Errorf("Expected default title, got %q", summary.Title)
	}
	if summary.Version != "1.0.0" {
		t.Errorf("Expected default version, got %q", summary.Version)
	}
}

func TestSummarizeServersOpenAPI3(t *testing.T) {
	doc := docFromJSON(t, `{
		"openapi": "3.0.0",
		"servers": [{"url": "https://api.example.com/v1"}, {"url": "https://staging.example.com"}],
		"paths": {}
	}`)

	want := []string{"https://api.example.com/v1", "https://staging.example.com"}
	if got := doc.Summarize().Servers; !reflect.DeepEqual(got, want) {
		t.Errorf("Servers = %v, want %v", got, want)
	}
}

func TestSummarizeServersSwagger2(t *testing.T) {
	doc := docFromJSON(t, `{
		"swagger": "2.0",
		"host": "petstore.swagger.io",
		"basePath": "/v2",
		"schemes": ["http", "https"],
		"paths": {}
	}`)

	want := []string{"http://petstore.swagger.io/v2"}
	if got := doc.Summarize().Servers; !reflect.DeepEqual(got, want) {
		t.Errorf("Servers = %v, want %v", got, want)
	}
}

func TestSummarizeServersSwagger2DefaultScheme(t *testing.T) {
	doc := docFromJSON(t, `{
		"swagger": "2.0",
		"host": "petstore.swagger.io",
		"paths": {}
	}`)

	want := []string{"https://petstore.swagger.io/"}
	if got := doc.Summarize().Servers; !reflect.DeepEqual(got, want) {
		t.Errorf("Servers = %v, want %v", got, want)
	}
}

func TestSummarizeTagGrouping(t *testing.T) {
	doc := docFromJSON(t, `{
		"openapi": "3.0.0",
		"paths": {
			"/pets": {
				"get": {"tags": ["pets"], "responses": {}},
				"post": {"tags": ["pets"], "responses": {}}
			},
			"/orders": {"get": {"tags": ["store", "pets"], "responses": {}}}
		}
	}`)

	byTag := doc.Summarize().PathsByTag

	pets := byTag["pets"]
	if len(pets) != 2 {
		t.Fatalf("Expected 2 path entries under 'pets', got %d", len(pets))
	}
	// /pets appears once with both methods, not duplicated per method.
	var petsEntry *TagPath
	for i := range pets {
		if pets[i].Path == "/pets" {
			petsEntry = &pets[i]
		}
	}
	if petsEntry == nil {
		t.Fatal("Expected /pets entry under 'pets'")
	}
	if !reflect.DeepEqual(petsEntry.Methods, []string{"get", "post"}) {
		t.Errorf("Expected methods [get post] on one entry, got %v", petsEntry.Methods)
	}

	if len(byTag["store"]) != 1 || byTag["store"][0].Path != "/orders" {
		t.Errorf("Expected /orders under 'store', got %v", byTag["store"])
	}
}

func TestSummarizeUnknownDialectVersionEmpty(t *testing.T) {
	doc := docFromJSON(t, `{"info": {"title": "X"}, "paths": {}}`)
	if v := doc.Summarize().OpenAPIVersion; v != "" {
		t.Errorf("Expected empty version string, got %q", v)
	}
}
