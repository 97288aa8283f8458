package generator

import (
	"regexp"
	"unicode"

	"github.com/mcpswag/mcpswag/internal/config"
	"github.com/mcpswag/mcpswag/internal/spec"
)

// Context is the data handed to the template renderer. Its field names and
// shapes are the contract between the interpreter core and the rendering and
// packaging layer; changing them is a breaking change for that collaborator.
type Context struct {
	ServerName     string                            `json:"server_name"`
	Title          string                            `json:"title"`
	Version        string                            `json:"version"`
	Description    string                            `json:"description"`
	BaseURL        string                            `json:"base_url"`
	Transport      string                            `json:"transport"`
	Operations     []spec.Operation                  `json:"operations"`
	Schemas        map[string]map[string]interface{} `json:"schemas"`
	SchemaNames    []string                          `json:"schema_names"`
	PathCount      int                               `json:"path_count"`
	OperationCount int                               `json:"operation_count"`
	APIKeyEnv      string                            `json:"api_key_env"`
	APIKeyHeader   string                            `json:"api_key_header"`
	APIKeyPrefix   string                            `json:"api_key_prefix"`
	ExtraHeaders   map[string]string                 `json:"extra_headers"`
}

// AssembleContext merges the generation options with the normalized document
// views into the renderer context.
func AssembleContext(summary spec.Summary, operations []spec.Operation, schemas map[string]interface{}, schemaNames []string, opts Options) *Context {
	schemaTable := make(map[string]map[string]interface{}, len(schemas))
	for name, s := range schemas {
		if m, ok := s.(map[string]interface{}); ok {
			schemaTable[name] = m
		}
	}

	baseURL := opts.BaseURL
	if baseURL == "" && len(summary.Servers) > 0 {
		baseURL = summary.Servers[0]
	}

	return &Context{
		ServerName:     SanitizeName(opts.ServerName),
		Title:          summary.Title,
		Version:        summary.Version,
		Description:    summary.Description,
		BaseURL:        baseURL,
		Transport:      opts.Transport,
		Operations:     operations,
		Schemas:        schemaTable,
		SchemaNames:    schemaNames,
		PathCount:      summary.PathCount,
		OperationCount: len(operations),
		APIKeyEnv:      opts.APIKeyEnv,
		APIKeyHeader:   opts.APIKeyHeader,
		APIKeyPrefix:   opts.APIKeyPrefix,
		ExtraHeaders:   opts.ExtraHeaders,
	}
}

var (
	nameSeparators = regexp.MustCompile(`[\s\-]+`)
	nameInvalid    = regexp.MustCompile(`[^a-zA-Z0-9_]`)
)

// SanitizeName turns an arbitrary string into a valid identifier-style
// package name: separators become underscores, invalid characters are
// dropped, a leading digit is prefixed with an underscore, and the empty
// result falls back to the default server name.
func SanitizeName(name string) string {
	name = nameSeparators.ReplaceAllString(name, "_")
	name = nameInvalid.ReplaceAllString(name, "")
	if name != "" && unicode.IsDigit(rune(name[0])) {
		name = "_" + name
	}
	if name == "" {
		return config.DefaultServerName
	}
	return name
}
