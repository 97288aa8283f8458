package spec

import "sort"

// Dialect identifies which of the two supported spec versions a Document
// follows. It is decided once at load time; accessors branch on it instead of
// re-detecting the document shape at every call site.
type Dialect int

const (
	DialectUnknown Dialect = iota
	DialectSwagger2
	DialectOpenAPI3
)

func (d Dialect) String() string {
	switch d {
	case DialectSwagger2:
		return "swagger2"
	case DialectOpenAPI3:
		return "openapi3"
	default:
		return "unknown"
	}
}

// httpMethods is the fixed set of methods the normalizer walks, in canonical
// order. Walking a fixed order keeps the output deterministic.
var httpMethods = []string{"get", "post", "put", "delete", "patch", "options", "head"}

// Document is the raw parsed spec tree plus its dialect tag. It is immutable
// once loaded; every derived structure is recomputed from it on each call.
type Document struct {
	root    map[string]interface{}
	dialect Dialect
	source  string
}

// NewDocument wraps an already decoded spec tree. The dialect is detected from
// the presence of the "openapi" (3.x) or "swagger" (2.0) key.
func NewDocument(root map[string]interface{}, source string) *Document {
	d := DialectUnknown
	if _, ok := root["openapi"]; ok {
		d = DialectOpenAPI3
	} else if _, ok := root["swagger"]; ok {
		d = DialectSwagger2
	}
	return &Document{root: root, dialect: d, source: source}
}

// Root returns the underlying document tree.
func (d *Document) Root() map[string]interface{} {
	return d.root
}

// Dialect returns the dialect tag decided at load time.
func (d *Document) Dialect() Dialect {
	return d.dialect
}

// Source returns the path or URL the document was loaded from.
func (d *Document) Source() string {
	return d.source
}

// Version returns the declared spec version string, empty when neither the
// "openapi" nor the "swagger" key is present.
func (d *Document) Version() string {
	if v := getString(d.root, "openapi"); v != "" {
		return v
	}
	return getString(d.root, "swagger")
}

// Info returns the info object, empty map when absent.
func (d *Document) Info() map[string]interface{} {
	return asMap(d.root["info"])
}

// RawPaths returns the paths object, empty map when absent.
func (d *Document) RawPaths() map[string]interface{} {
	return asMap(d.root["paths"])
}

// PathKeys returns the declared path templates in lexical order.
func (d *Document) PathKeys() []string {
	paths := d.RawPaths()
	keys := make([]string, 0, len(paths))
	for k := range paths {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Schemas returns the schema table: components.schemas for 3.x documents,
// definitions for 2.0 documents.
func (d *Document) Schemas() map[string]interface{} {
	if d.dialect == DialectSwagger2 {
		return asMap(d.root["definitions"])
	}
	if schemas := asMap(asMap(d.root["components"])["schemas"]); len(schemas) > 0 {
		return schemas
	}
	return asMap(d.root["definitions"])
}

// SchemaNames returns the schema names in lexical order.
func (d *Document) SchemaNames() []string {
	schemas := d.Schemas()
	names := make([]string, 0, len(schemas))
	for k := range schemas {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Servers returns the server URL list. For 3.x documents it reads
// servers[].url; for 2.0 documents it synthesizes scheme://host/basePath from
// the first declared scheme, defaulting to https.
func (d *Document) Servers() []string {
	if servers, ok := d.root["servers"].([]interface{}); ok && len(servers) > 0 {
		urls := make([]string, 0, len(servers))
		for _, s := range servers {
			urls = append(urls, getString(asMap(s), "url"))
		}
		return urls
	}

	host := getString(d.root, "host")
	if host == "" {
		return nil
	}
	basePath := getString(d.root, "basePath")
	if basePath == "" {
		basePath = "/"
	}
	scheme := "https"
	if schemes, ok := d.root["schemes"].([]interface{}); ok && len(schemes) > 0 {
		if s, ok := schemes[0].(string); ok && s != "" {
			scheme = s
		}
	}
	return []string{scheme + "://" + host + basePath}
}

// SecuritySchemes returns the declared security schemes: components
// .securitySchemes for 3.x, securityDefinitions for 2.0.
func (d *Document) SecuritySchemes() map[string]interface{} {
	switch d.dialect {
	case DialectSwagger2:
		return asMap(d.root["securityDefinitions"])
	default:
		return asMap(asMap(d.root["components"])["securitySchemes"])
	}
}

// asMap converts a decoded value to a map, returning an empty map for any
// other shape so callers can chain lookups without nil checks.
func asMap(v interface{}) map[string]interface{} {
	if m, ok := v.(map[string]interface{}); ok {
		return m
	}
	return map[string]interface{}{}
}

func asSlice(v interface{}) []interface{} {
	if s, ok := v.([]interface{}); ok {
		return s
	}
	return nil
}

func getString(m map[string]interface{}, key string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}

func getBool(m map[string]interface{}, key string) bool {
	if b, ok := m[key].(bool); ok {
		return b
	}
	return false
}
