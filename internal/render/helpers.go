package render

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mcpswag/mcpswag/internal/generator"
	"github.com/mcpswag/mcpswag/internal/spec"
)

// Template helper functions. All of them are pure string or slice transforms
// with no shared state, so they are callable and testable independently of
// any template.

var pythonTypes = map[string]string{
	"string":    "str",
	"integer":   "int",
	"number":    "float",
	"boolean":   "bool",
	"array":     "list",
	"object":    "dict",
	"file":      "bytes",
	"date":      "datetime.date",
	"date-time": "datetime.datetime",
}

// ToPythonType maps a JSON schema type to the Python type annotation used in
// generated tool signatures.
func ToPythonType(jsonType string) string {
	if t, ok := pythonTypes[jsonType]; ok {
		return t
	}
	return "Any"
}

var jsonTypes = map[string]string{
	"str":   "string",
	"int":   "integer",
	"float": "number",
	"bool":  "boolean",
	"list":  "array",
	"dict":  "object",
}

// ToJSONType is the inverse mapping, defaulting to string.
func ToJSONType(pythonType string) string {
	if t, ok := jsonTypes[pythonType]; ok {
		return t
	}
	return "string"
}

// EscapeDocstring makes text safe inside a triple-quoted Python docstring.
func EscapeDocstring(text string) string {
	text = strings.ReplaceAll(text, `\`, `\\`)
	text = strings.ReplaceAll(text, `"""`, `\"\"\"`)
	return strings.TrimSpace(text)
}

var (
	tomlWhitespace = regexp.MustCompile(`[\n\r\t]+`)
	tomlSpaces     = regexp.MustCompile(` +`)
)

// tomlMaxLength bounds single-line TOML string values.
const tomlMaxLength = 200

// SanitizeTOMLString collapses text onto one line, escapes quotes and
// backslashes, and truncates so it is safe as a TOML single-line value.
// Truncation counts runes, not bytes, so multi-byte text is never cut mid-rune.
func SanitizeTOMLString(text string) string {
	text = tomlWhitespace.ReplaceAllString(text, " ")
	text = tomlSpaces.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)
	text = strings.ReplaceAll(text, `\`, `\\`)
	text = strings.ReplaceAll(text, `"`, `\"`)
	if runes := []rune(text); len(runes) > tomlMaxLength {
		text = string(runes[:tomlMaxLength])
	}
	return text
}

// SortParams returns parameters with required ones first, preserving the
// original order within each group. Python signatures need parameters without
// defaults ahead of parameters with defaults.
func SortParams(params []spec.Parameter) []spec.Parameter {
	sorted := make([]spec.Parameter, 0, len(params))
	for _, p := range params {
		if p.Required {
			sorted = append(sorted, p)
		}
	}
	for _, p := range params {
		if !p.Required {
			sorted = append(sorted, p)
		}
	}
	return sorted
}

// ParamsSignature builds the Python def signature for an operation's tool:
// required parameters, then optional ones with None defaults, with the
// request body slotted into the matching group.
func ParamsSignature(op spec.Operation) string {
	var required, optional []string
	for _, p := range SortParams(op.Parameters) {
		name := generator.SanitizeName(p.Name)
		typ := ToPythonType(p.Type)
		if p.Required {
			required = append(required, fmt.Sprintf("%s: %s", name, typ))
		} else {
			optional = append(optional, fmt.Sprintf("%s: Optional[%s] = None", name, typ))
		}
	}

	if op.RequestBody != nil {
		if op.RequestBody.Required {
			required = append(required, "body: Union[str, Dict[str, Any]]")
		} else {
			optional = append(optional, "body: Optional[Union[str, Dict[str, Any]]] = None")
		}
	}

	return strings.Join(append(required, optional...), ", ")
}

// ToolDescription picks the docstring for a generated tool: summary, then
// description, then "METHOD path".
func ToolDescription(op spec.Operation) string {
	if op.Summary != "" {
		return op.Summary
	}
	if op.Description != "" {
		return op.Description
	}
	return fmt.Sprintf("%s %s", strings.ToUpper(op.Method), op.Path)
}
