package spec

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"go.uber.org/zap"
)

// Validator is the optional structural validation pass. It runs between
// loading and generation and is swappable; the normalizer never invokes it.
type Validator interface {
	Validate(ctx context.Context, doc *Document) error
}

// OpenAPIValidator validates 3.x documents against the OpenAPI meta-schema
// using kin-openapi. Swagger 2.0 documents pass through unvalidated.
type OpenAPIValidator struct {
	logger *zap.Logger
}

// NewOpenAPIValidator creates a new structural validator.
func NewOpenAPIValidator(logger *zap.Logger) *OpenAPIValidator {
	return &OpenAPIValidator{logger: logger}
}

// Validate rejects a malformed 3.x document with a ValidationError.
func (v *OpenAPIValidator) Validate(ctx context.Context, doc *Document) error {
	if doc.Dialect() != DialectOpenAPI3 {
		v.logger.Debug("Skipping structural validation",
			zap.String("dialect", doc.Dialect().String()))
		return nil
	}

	// Work on a decoded copy so preprocessing never touches the Document.
	raw, err := json.Marshal(doc.Root())
	if err != nil {
		return &ValidationError{Source: doc.Source(), Err: err}
	}
	var root map[string]interface{}
	if err := json.Unmarshal(raw, &root); err != nil {
		return &ValidationError{Source: doc.Source(), Err: err}
	}

	body, err := json.Marshal(v.preprocess(root))
	if err != nil {
		return &ValidationError{Source: doc.Source(), Err: err}
	}

	loader := openapi3.NewLoader()
	parsed, err := loader.LoadFromData(body)
	if err != nil {
		return &ValidationError{Source: doc.Source(), Err: err}
	}
	if err := parsed.Validate(ctx); err != nil {
		return &ValidationError{Source: doc.Source(), Err: err}
	}

	v.logger.Debug("Specification passed structural validation",
		zap.String("source", doc.Source()))
	return nil
}

// preprocess adapts 3.1-isms so kin-openapi's 3.0 validator accepts the
// document. The caller passes a private copy of the tree.
func (v *OpenAPIValidator) preprocess(out map[string]interface{}) map[string]interface{} {
	if version, ok := out["openapi"].(string); ok && strings.HasPrefix(version, "3.1") {
		v.logger.Debug("Downgrading OpenAPI 3.1 version tag for validation")
		out["openapi"] = "3.0.0"
	}

	for _, schema := range asMap(asMap(out["components"])["schemas"]) {
		if m, ok := schema.(map[string]interface{}); ok {
			fixNullableAnyOf(m)
		}
	}
	for _, pathItem := range asMap(out["paths"]) {
		for _, op := range asMap(pathItem) {
			for _, param := range asSlice(asMap(op)["parameters"]) {
				if schema, ok := asMap(param)["schema"].(map[string]interface{}); ok {
					fixNullableAnyOf(schema)
				}
			}
		}
	}

	return out
}

// fixNullableAnyOf rewrites the 3.1 pattern anyOf: [{type: T}, {type: null}]
// into the 3.0 form type: T, nullable: true, recursing through properties.
func fixNullableAnyOf(schema map[string]interface{}) {
	if anyOf := asSlice(schema["anyOf"]); len(anyOf) == 2 {
		var mainType map[string]interface{}
		hasNull := false
		for _, alt := range anyOf {
			m := asMap(alt)
			switch m["type"] {
			case "null":
				hasNull = true
			default:
				if _, ok := m["type"].(string); ok {
					mainType = m
				}
			}
		}
		if hasNull && mainType != nil {
			for k, v := range mainType {
				schema[k] = v
			}
			schema["nullable"] = true
			delete(schema, "anyOf")
		}
	}

	for _, prop := range asMap(schema["properties"]) {
		if m, ok := prop.(map[string]interface{}); ok {
			fixNullableAnyOf(m)
		}
	}
	if items, ok := schema["items"].(map[string]interface{}); ok {
		fixNullableAnyOf(items)
	}
}
