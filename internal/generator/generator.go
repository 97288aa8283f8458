package generator

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mcpswag/mcpswag/internal/spec"
)

// Renderer consumes an assembled context and writes the generated server
// project. Rendering is the external collaborator of the interpreter core;
// its failures are reported with a distinct error kind.
type Renderer interface {
	Render(ctx context.Context, c *Context, outputDir string) error
}

// Generator drives one generation run: normalize, filter, assemble, render.
type Generator struct {
	logger *zap.Logger
	opts   Options
}

// New creates a generator with the given options.
func New(logger *zap.Logger, opts Options) *Generator {
	return &Generator{logger: logger, opts: opts}
}

// Build derives the renderer context from the document. It is a pure
// function of the document and the options: no caching, no document
// mutation, so repeated calls yield structurally identical contexts.
func (g *Generator) Build(doc *spec.Document) (*Context, error) {
	operations := doc.Operations()
	summary := doc.Summarize()

	g.logger.Debug("Normalized operations",
		zap.Int("operations", len(operations)),
		zap.Int("paths", summary.PathCount),
		zap.String("dialect", doc.Dialect().String()))

	filtered, err := FilterOperations(operations, g.opts)
	if err != nil {
		return nil, err
	}
	if len(filtered) != len(operations) {
		g.logger.Info("Filtered operations",
			zap.Int("before", len(operations)),
			zap.Int("after", len(filtered)))
	}

	return AssembleContext(summary, filtered, doc.Schemas(), doc.SchemaNames(), g.opts), nil
}

// Generate builds the context and hands it to the renderer.
func (g *Generator) Generate(ctx context.Context, doc *spec.Document, renderer Renderer, outputDir string) error {
	c, err := g.Build(doc)
	if err != nil {
		return err
	}

	if err := renderer.Render(ctx, c, outputDir); err != nil {
		return fmt.Errorf("failed to render server project: %w", err)
	}

	g.logger.Info("Generated MCP server project",
		zap.String("output_dir", outputDir),
		zap.String("server_name", c.ServerName),
		zap.Int("operations", c.OperationCount))
	return nil
}
