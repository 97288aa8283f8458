package spec

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

func TestValidateAcceptsWellFormedDocument(t *testing.T) {
	doc := docFromJSON(t, `{
		"openapi": "3.0.0",
		"info": {"title": "Test", "version": "1.0.0"},
		"paths": {}
	}`)

	logger, _ := zap.NewDevelopment()
	if err := NewOpenAPIValidator(logger).Validate(context.Background(), doc); err != nil {
		t.Errorf("Expected well-formed document to validate, got %v", err)
	}
}

func TestValidateRejectsMalformedDocument(t *testing.T) {
	// info is required by the meta-schema.
	doc := docFromJSON(t, `{"openapi": "3.0.0", "paths": {}}`)

	logger, _ := zap.NewDevelopment()
	err := NewOpenAPIValidator(logger).Validate(context.Background(), doc)

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("Expected ValidationError, got %v", err)
	}
}

func TestValidateSkipsSwagger2(t *testing.T) {
	doc := docFromJSON(t, `{"swagger": "2.0", "paths": {}}`)

	logger, _ := zap.NewDevelopment()
	if err := NewOpenAPIValidator(logger).Validate(context.Background(), doc); err != nil {
		t.Errorf("Expected 2.0 document to pass through, got %v", err)
	}
}

func TestValidateDowngrades31(t *testing.T) {
	doc := docFromJSON(t, `{
		"openapi": "3.1.0",
		"info": {"title": "Test", "version": "1.0.0"},
		"paths": {},
		"components": {"schemas": {
			"Thing": {
				"type": "object",
				"properties": {
					"name": {"anyOf": [{"type": "string"}, {"type": "null"}]}
				}
			}
		}}
	}`)

	logger, _ := zap.NewDevelopment()
	if err := NewOpenAPIValidator(logger).Validate(context.Background(), doc); err != nil {
		t.Errorf("Expected 3.1 document to validate after preprocessing, got %v", err)
	}

	// The document itself stays untouched.
	if doc.Version() != "3.1.0" {
		t.Errorf("Expected document version unchanged, got %q", doc.Version())
	}
	props := asMap(asMap(asMap(asMap(asMap(doc.Root()["components"])["schemas"])["Thing"])["properties"])["name"])
	if _, ok := props["anyOf"]; !ok {
		t.Error("Expected original schema to keep its anyOf")
	}
}
