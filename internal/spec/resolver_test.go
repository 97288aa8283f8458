package spec

import (
	"encoding/json"
	"testing"
)

func docFromJSON(t *testing.T, raw string) *Document {
	t.Helper()
	var root map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &root); err != nil {
		t.Fatalf("bad test document: %v", err)
	}
	return NewDocument(root, "test")
}

func TestResolveSchemaComponents(t *testing.T) {
	doc := docFromJSON(t, `{
		"openapi": "3.0.0",
		"components": {"schemas": {"Pet": {"type": "object"}}}
	}`)

	resolved := doc.resolveSchema(map[string]interface{}{"$ref": "#/components/schemas/Pet"})
	if resolved["type"] != "object" {
		t.Errorf("Expected resolved schema type 'object', got %v", resolved["type"])
	}
}

func TestResolveSchemaDefinitions(t *testing.T) {
	doc := docFromJSON(t, `{
		"swagger": "2.0",
		"definitions": {"Pet": {"type": "object"}}
	}`)

	resolved := doc.resolveSchema(map[string]interface{}{"$ref": "#/definitions/Pet"})
	if resolved["type"] != "object" {
		t.Errorf("Expected resolved schema type 'object', got %v", resolved["type"])
	}
}

func TestResolveSchemaUnsupportedPointerPassesThrough(t *testing.T) {
	doc := docFromJSON(t, `{"openapi": "3.0.0"}`)

	fragment := map[string]interface{}{"$ref": "external.yaml#/Pet"}
	resolved := doc.resolveSchema(fragment)
	if resolved["$ref"] != "external.yaml#/Pet" {
		t.Errorf("Expected unsupported pointer to pass through, got %v", resolved)
	}
}

func TestResolveSchemaMissingTargetPassesThrough(t *testing.T) {
	doc := docFromJSON(t, `{
		"openapi": "3.0.0",
		"components": {"schemas": {}}
	}`)

	fragment := map[string]interface{}{"$ref": "#/components/schemas/Missing"}
	resolved := doc.resolveSchema(fragment)
	if resolved["$ref"] != "#/components/schemas/Missing" {
		t.Errorf("Expected missing target to pass through, got %v", resolved)
	}
}

func TestResolveSchemaSingleHop(t *testing.T) {
	// The target contains its own $ref, which must not be followed.
	doc := docFromJSON(t, `{
		"openapi": "3.0.0",
		"components": {"schemas": {
			"A": {"$ref": "#/components/schemas/B"},
			"B": {"type": "integer"}
		}}
	}`)

	resolved := doc.resolveSchema(map[string]interface{}{"$ref": "#/components/schemas/A"})
	if resolved["$ref"] != "#/components/schemas/B" {
		t.Errorf("Expected single-hop resolution to stop at the nested ref, got %v", resolved)
	}
}

func TestResolveParameter(t *testing.T) {
	doc := docFromJSON(t, `{
		"openapi": "3.0.0",
		"components": {"parameters": {
			"limitParam": {"name": "limit", "in": "query", "schema": {"type": "integer"}}
		}}
	}`)

	resolved := doc.resolveParameter(map[string]interface{}{"$ref": "#/components/parameters/limitParam"})
	if resolved["name"] != "limit" {
		t.Errorf("Expected resolved parameter name 'limit', got %v", resolved["name"])
	}
}

func TestResolveParameterSwagger2(t *testing.T) {
	doc := docFromJSON(t, `{
		"swagger": "2.0",
		"parameters": {
			"pageParam": {"name": "page", "in": "query", "type": "integer"}
		}
	}`)

	resolved := doc.resolveParameter(map[string]interface{}{"$ref": "#/parameters/pageParam"})
	if resolved["name"] != "page" {
		t.Errorf("Expected resolved parameter name 'page', got %v", resolved["name"])
	}
}

func TestFlattenCombinatorsOneOf(t *testing.T) {
	doc := docFromJSON(t, `{
		"openapi": "3.0.0",
		"components": {"schemas": {"IntVal": {"type": "integer"}}}
	}`)

	schema := map[string]interface{}{
		"oneOf": []interface{}{
			map[string]interface{}{"$ref": "#/components/schemas/IntVal"},
			map[string]interface{}{"type": "string"},
		},
	}
	flattened := doc.flattenCombinators(schema)

	if flattened["type"] != "integer" {
		t.Errorf("Expected first alternative 'integer', got %v", flattened["type"])
	}
	if _, ok := flattened["oneOf"]; ok {
		t.Error("Expected oneOf key to be removed after flattening")
	}
}

func TestFlattenCombinatorsAnyOf(t *testing.T) {
	doc := docFromJSON(t, `{"openapi": "3.0.0"}`)

	schema := map[string]interface{}{
		"anyOf": []interface{}{
			map[string]interface{}{"type": "boolean"},
			map[string]interface{}{"type": "string"},
		},
	}
	flattened := doc.flattenCombinators(schema)

	if flattened["type"] != "boolean" {
		t.Errorf("Expected first alternative 'boolean', got %v", flattened["type"])
	}
	if _, ok := flattened["anyOf"]; ok {
		t.Error("Expected anyOf key to be removed after flattening")
	}
}

func TestFlattenCombinatorsNoCombinator(t *testing.T) {
	doc := docFromJSON(t, `{"openapi": "3.0.0"}`)

	schema := map[string]interface{}{"type": "string"}
	if got := doc.flattenCombinators(schema); got["type"] != "string" {
		t.Errorf("Expected schema unchanged, got %v", got)
	}
}
