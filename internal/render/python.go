package render

import (
	"context"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"go.uber.org/zap"

	"github.com/mcpswag/mcpswag/internal/generator"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Error reports a rendering failure. It is a distinct kind from the
// interpreter's error taxonomy so callers can tell the two apart.
type Error struct {
	Template string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("failed to render template %s: %v", e.Template, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Python renders a runnable Python FastMCP server project from an assembled
// context.
type Python struct {
	logger    *zap.Logger
	templates *template.Template
	force     bool
	verbose   bool
}

// NewPython creates the Python renderer. Force allows overwriting a non-empty
// output directory.
func NewPython(logger *zap.Logger, force, verbose bool) (*Python, error) {
	funcs := template.FuncMap{
		"sanitize_name":        generator.SanitizeName,
		"to_python_type":       ToPythonType,
		"to_json_type":         ToJSONType,
		"escape_docstring":     EscapeDocstring,
		"sanitize_toml_string": SanitizeTOMLString,
		"params_signature":     ParamsSignature,
		"tool_description":     ToolDescription,
		"upper":                strings.ToUpper,
	}

	templates, err := template.New("render").Funcs(funcs).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, &Error{Template: "templates", Err: err}
	}

	return &Python{logger: logger, templates: templates, force: force, verbose: verbose}, nil
}

// Render writes the generated project: the server package with main.py,
// pyproject.toml, requirements.txt, README.md and SPEC_INFO.md.
func (p *Python) Render(ctx context.Context, c *generator.Context, outputDir string) error {
	if err := p.prepareOutputDir(outputDir); err != nil {
		return err
	}

	packageDir := filepath.Join(outputDir, c.ServerName)
	if err := os.MkdirAll(packageDir, 0o755); err != nil {
		return &Error{Template: "output", Err: err}
	}

	if err := p.writeFile(filepath.Join(packageDir, "__init__.py"), ""); err != nil {
		return err
	}

	files := []struct {
		template string
		path     string
	}{
		{"main.py.tmpl", filepath.Join(packageDir, "main.py")},
		{"pyproject.toml.tmpl", filepath.Join(outputDir, "pyproject.toml")},
		{"README.md.tmpl", filepath.Join(outputDir, "README.md")},
		{"SPEC_INFO.md.tmpl", filepath.Join(outputDir, "SPEC_INFO.md")},
	}
	for _, f := range files {
		content, err := p.renderTemplate(f.template, c)
		if err != nil {
			return err
		}
		if err := p.writeFile(f.path, content); err != nil {
			return err
		}
	}

	requirements := "# MCP Server Dependencies\nmcp>=1.0.0\nhttpx>=0.27.0\n"
	return p.writeFile(filepath.Join(outputDir, "requirements.txt"), requirements)
}

// prepareOutputDir refuses to clobber a non-empty directory unless force is
// set, in which case the directory is removed first.
func (p *Python) prepareOutputDir(outputDir string) error {
	entries, err := os.ReadDir(outputDir)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return &Error{Template: "output", Err: err}
	case len(entries) > 0 && !p.force:
		return &Error{Template: "output", Err: fmt.Errorf("output directory %s is not empty, use --force to overwrite", outputDir)}
	case p.force:
		if err := os.RemoveAll(outputDir); err != nil {
			return &Error{Template: "output", Err: err}
		}
	}
	return os.MkdirAll(outputDir, 0o755)
}

func (p *Python) renderTemplate(name string, c *generator.Context) (string, error) {
	var sb strings.Builder
	if err := p.templates.ExecuteTemplate(&sb, name, c); err != nil {
		return "", &Error{Template: name, Err: err}
	}
	return sb.String(), nil
}

func (p *Python) writeFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return &Error{Template: filepath.Base(path), Err: err}
	}
	if p.verbose {
		fmt.Printf("  Generated %s\n", path)
	}
	p.logger.Debug("Wrote file", zap.String("path", path))
	return nil
}

var _ generator.Renderer = (*Python)(nil)
