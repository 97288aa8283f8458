package pkg

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcpswag/mcpswag/internal/config"
	"github.com/mcpswag/mcpswag/internal/generator"
	"github.com/mcpswag/mcpswag/internal/render"
	"github.com/mcpswag/mcpswag/internal/spec"
)

// operationWarnThreshold is the unfiltered operation count above which create
// warns that the generated server may hit LLM context limits.
const operationWarnThreshold = 100

var (
	createOutput     string
	createName       string
	createTransport  string
	createBaseURL    string
	createValidate   bool
	createForce      bool
	createVerbose    bool
	createAPIKeyEnv  string
	createKeyHeader  string
	createKeyPrefix  string
	createHeaders    []string
	createTags       []string
	createPathFilter []string
	createMaxOps     int
)

func init() {
	createCmd := &cobra.Command{
		Use:   "create <spec>",
		Short: "Create an MCP server from a Swagger/OpenAPI specification",
		Long: `Creates a runnable MCP server project from a Swagger/OpenAPI specification.

Examples:
  mcpswag create https://petstore.swagger.io/v2/swagger.json -o ./my_server
  mcpswag create ./api_spec.yaml -o ./server --name my_api
  mcpswag create ./spec.json -o ./server --transport sse --base-url https://api.example.com
  mcpswag create ./spec.json -o ./server --tag pets --tag store
  mcpswag create ./spec.json -o ./server --path-filter /users --path-filter /products`,
		Args: cobra.ExactArgs(1),
		RunE: runCreate,
	}

	createCmd.Flags().StringVarP(&createOutput, "output", "o", "", "output directory for the generated server (default from config)")
	createCmd.Flags().StringVarP(&createName, "name", "n", "mcp_server", "name for the generated MCP server")
	createCmd.Flags().StringVarP(&createTransport, "transport", "t", "stdio", "transport type for the MCP server (stdio or sse)")
	createCmd.Flags().StringVarP(&createBaseURL, "base-url", "b", "", "base URL for API requests (defaults to the spec's first server URL)")
	createCmd.Flags().BoolVar(&createValidate, "validate", true, "validate the specification before generating")
	createCmd.Flags().BoolVarP(&createForce, "force", "f", false, "overwrite the output directory if it exists")
	createCmd.Flags().BoolVarP(&createVerbose, "verbose", "v", false, "enable verbose output")
	createCmd.Flags().StringVar(&createAPIKeyEnv, "api-key-env", "", "environment variable the generated server reads its API key from")
	createCmd.Flags().StringVar(&createKeyHeader, "api-key-header", "Authorization", "HTTP header name for the API key")
	createCmd.Flags().StringVar(&createKeyPrefix, "api-key-prefix", "Bearer", "prefix for the API key in the header")
	createCmd.Flags().StringArrayVarP(&createHeaders, "header", "H", nil, "custom HTTP header as 'Name: Value' (repeatable)")
	createCmd.Flags().StringArrayVarP(&createTags, "tag", "T", nil, "filter operations by tag (repeatable)")
	createCmd.Flags().StringArrayVar(&createPathFilter, "path-filter", nil, "filter operations by path prefix (repeatable)")
	createCmd.Flags().IntVar(&createMaxOps, "max-operations", 0, "maximum number of operations to include (0 = unlimited)")

	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	if createTransport != "stdio" && createTransport != "sse" {
		return fmt.Errorf("invalid transport %q: must be 'stdio' or 'sse'", createTransport)
	}

	extraHeaders, err := parseHeaders(createHeaders)
	if err != nil {
		return err
	}

	outputDir := createOutput
	if outputDir == "" {
		outputDir = config.GetString("output.dir")
	}

	opts := generator.Options{
		ServerName:    createName,
		Transport:     createTransport,
		BaseURL:       createBaseURL,
		Validate:      createValidate,
		Verbose:       createVerbose,
		APIKeyEnv:     createAPIKeyEnv,
		APIKeyHeader:  createKeyHeader,
		APIKeyPrefix:  createKeyPrefix,
		ExtraHeaders:  extraHeaders,
		Tags:          createTags,
		PathFilters:   createPathFilter,
		MaxOperations: createMaxOps,
		Force:         createForce,
	}

	ctx := context.Background()

	doc, err := loadSpec(ctx, args[0], createValidate)
	if err != nil {
		return err
	}

	summary := doc.Summarize()
	if summary.OperationCount > operationWarnThreshold && len(createTags) == 0 && len(createPathFilter) == 0 {
		fmt.Printf("Warning: this specification contains %d operations. Generating MCP servers "+
			"with many operations can be slow and may hit LLM context limits. "+
			"Consider filtering operations with --tag or --path-filter.\n", summary.OperationCount)
	}

	renderer, err := render.NewPython(logger, createForce, createVerbose)
	if err != nil {
		return err
	}

	gen := generator.New(logger, opts)
	if err := gen.Generate(ctx, doc, renderer, outputDir); err != nil {
		return err
	}

	fmt.Println("MCP server generated successfully!")
	fmt.Printf("  Output:    %s\n", outputDir)
	fmt.Printf("  Name:      %s\n", generator.SanitizeName(createName))
	fmt.Printf("  Transport: %s\n", createTransport)
	return nil
}

// loadSpec loads the document and runs the optional structural validation
// pass.
func loadSpec(ctx context.Context, source string, validate bool) (*spec.Document, error) {
	doc, err := spec.NewLoader(logger).Load(ctx, source)
	if err != nil {
		return nil, err
	}

	if validate {
		if err := spec.NewOpenAPIValidator(logger).Validate(ctx, doc); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// parseHeaders parses repeatable "Name: Value" flags into a header map.
func parseHeaders(headers []string) (map[string]string, error) {
	if len(headers) == 0 {
		return nil, nil
	}
	parsed := make(map[string]string, len(headers))
	for _, h := range headers {
		name, value, ok := strings.Cut(h, ":")
		if !ok {
			return nil, fmt.Errorf("invalid header format %q: expected 'Name: Value'", h)
		}
		parsed[strings.TrimSpace(name)] = strings.TrimSpace(value)
	}
	return parsed, nil
}
