package spec

import "strings"

// Parameter is the canonical, dialect-independent form of a non-body
// operation parameter. Type, Default and Enum are read from the parameter's
// schema object when present (3.x idiom), falling back to the legacy top-level
// fields (2.0 idiom). $ref and oneOf/anyOf are resolved before those fields
// are read.
type Parameter struct {
	Name        string        `json:"name"`
	In          string        `json:"in"`
	Required    bool          `json:"required"`
	Type        string        `json:"type"`
	Description string        `json:"description"`
	Default     interface{}   `json:"default"`
	Enum        []interface{} `json:"enum"`
}

// RequestBody is the canonical request body of an operation, sourced from a
// 3.x requestBody or a 2.0 body-style parameter.
type RequestBody struct {
	Required    bool                   `json:"required"`
	Description string                 `json:"description"`
	Schema      map[string]interface{} `json:"schema"`
}

// Response keeps a declared response's description and, when present, its
// JSON-content schema. Nested $ref inside response schemas is not expanded.
type Response struct {
	Description string                 `json:"description"`
	Schema      map[string]interface{} `json:"schema"`
}

// Operation is the canonical representation of one declared (path, method)
// pair.
type Operation struct {
	Path        string              `json:"path"`
	Method      string              `json:"method"`
	OperationID string              `json:"operation_id"`
	Summary     string              `json:"summary"`
	Description string              `json:"description"`
	Tags        []string            `json:"tags"`
	Deprecated  bool                `json:"deprecated"`
	Parameters  []Parameter         `json:"parameters"`
	RequestBody *RequestBody        `json:"request_body"`
	Responses   map[string]Response `json:"responses"`
	Security    []interface{}       `json:"security"`
}

// Operations walks the path/method tree and returns one canonical operation
// per declared (path, method) pair, paths in lexical order, methods in
// canonical order. Path entries whose value is not a mapping are skipped.
// Normalization is a pure function of the document and never errors:
// malformed fragments are defaulted rather than rejected.
func (d *Document) Operations() []Operation {
	paths := d.RawPaths()
	var ops []Operation

	for _, path := range d.PathKeys() {
		pathItem, ok := paths[path].(map[string]interface{})
		if !ok {
			continue
		}

		pathParams := asSlice(pathItem["parameters"])
		for _, method := range httpMethods {
			raw, ok := pathItem[method].(map[string]interface{})
			if !ok {
				continue
			}
			ops = append(ops, d.normalizeOperation(path, method, raw, pathParams))
		}
	}
	return ops
}

func (d *Document) normalizeOperation(path, method string, op map[string]interface{}, pathParams []interface{}) Operation {
	// Path-item parameters come first, then operation parameters, preserving
	// declaration order within each group.
	merged := make([]interface{}, 0, len(pathParams))
	merged = append(merged, pathParams...)
	merged = append(merged, asSlice(op["parameters"])...)

	var params []Parameter
	for _, raw := range merged {
		param := asMap(raw)
		// Body-style parameters (2.0 idiom) are diverted to the request body.
		if getString(param, "in") == "body" {
			continue
		}
		params = append(params, d.normalizeParameter(param))
	}

	return Operation{
		Path:        path,
		Method:      method,
		OperationID: d.operationID(path, method, op),
		Summary:     getString(op, "summary"),
		Description: getString(op, "description"),
		Tags:        normalizeTags(op),
		Deprecated:  getBool(op, "deprecated"),
		Parameters:  params,
		RequestBody: d.normalizeRequestBody(op, merged),
		Responses:   d.normalizeResponses(op),
		Security:    asSlice(op["security"]),
	}
}

func (d *Document) normalizeParameter(param map[string]interface{}) Parameter {
	param = d.resolveParameter(param)

	schema := asMap(param["schema"])
	if len(schema) > 0 {
		schema = d.resolveSchema(schema)
		schema = d.flattenCombinators(schema)
	}

	// Type, default and enum come from the resolved schema when one is
	// present, otherwise from the legacy top-level fields.
	typ := getString(param, "type")
	def := param["default"]
	enum := asSlice(param["enum"])
	if len(schema) > 0 {
		if t := getString(schema, "type"); t != "" {
			typ = t
		}
		if v, ok := schema["default"]; ok {
			def = v
		}
		if e := asSlice(schema["enum"]); e != nil {
			enum = e
		}
	}
	if typ == "" {
		typ = "string"
	}

	return Parameter{
		Name:        getString(param, "name"),
		In:          getString(param, "in"),
		Required:    getBool(param, "required"),
		Type:        typ,
		Description: getString(param, "description"),
		Default:     def,
		Enum:        enum,
	}
}

// normalizeRequestBody prefers a 3.x requestBody with application/json
// content; otherwise the first body-style parameter supplies the body.
func (d *Document) normalizeRequestBody(op map[string]interface{}, merged []interface{}) *RequestBody {
	if rb, ok := op["requestBody"].(map[string]interface{}); ok {
		if jsonContent, ok := asMap(rb["content"])["application/json"]; ok {
			schema := d.resolveSchema(asMap(asMap(jsonContent)["schema"]))
			return &RequestBody{
				Required:    getBool(rb, "required"),
				Description: getString(rb, "description"),
				Schema:      schema,
			}
		}
	}

	for _, raw := range merged {
		param := asMap(raw)
		if getString(param, "in") != "body" {
			continue
		}
		return &RequestBody{
			Required:    getBool(param, "required"),
			Description: getString(param, "description"),
			Schema:      d.resolveSchema(asMap(param["schema"])),
		}
	}
	return nil
}

func (d *Document) normalizeResponses(op map[string]interface{}) map[string]Response {
	responses := make(map[string]Response)
	for status, raw := range asMap(op["responses"]) {
		response := asMap(raw)
		var schema map[string]interface{}
		switch d.dialect {
		case DialectSwagger2:
			if s, ok := response["schema"].(map[string]interface{}); ok {
				schema = s
			}
		default:
			if s, ok := asMap(asMap(response["content"])["application/json"])["schema"].(map[string]interface{}); ok {
				schema = s
			}
		}
		responses[status] = Response{
			Description: getString(response, "description"),
			Schema:      schema,
		}
	}
	return responses
}

// operationID returns the declared operationId or synthesizes one from the
// method and path: GET /users/{id} becomes GET_users_id. Synthesized ids are
// not checked for collisions across operations.
func (d *Document) operationID(path, method string, op map[string]interface{}) string {
	if id := getString(op, "operationId"); id != "" {
		return id
	}

	p := strings.Trim(path, "/")
	p = strings.ReplaceAll(p, "/", "_")
	p = strings.ReplaceAll(p, "-", "_")
	p = strings.ReplaceAll(p, "{", "")
	p = strings.ReplaceAll(p, "}", "")
	return strings.ToUpper(method) + "_" + p
}

func normalizeTags(op map[string]interface{}) []string {
	raw := asSlice(op["tags"])
	if len(raw) == 0 {
		return []string{"default"}
	}
	tags := make([]string, 0, len(raw))
	for _, t := range raw {
		if s, ok := t.(string); ok {
			tags = append(tags, s)
		}
	}
	if len(tags) == 0 {
		return []string{"default"}
	}
	return tags
}
