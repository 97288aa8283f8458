package pkg

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mcpswag/mcpswag/internal/generator"
	"github.com/mcpswag/mcpswag/internal/mcp"
)

var (
	serveHTTPAddr   string
	serveTags       []string
	servePathFilter []string
	serveMaxOps     int
)

func init() {
	serveCmd := &cobra.Command{
		Use:   "serve <spec>",
		Short: "Serve a specification's operations as live MCP tools",
		Long: `Loads a specification and serves its operations directly as MCP tools over
stdio, proxying tool calls to the configured service URL. An optional HTTP
sidecar exposes health and summary endpoints.

Examples:
  mcpswag serve ./api_spec.yaml --service-url https://api.example.com
  mcpswag serve ./spec.json --tag pets --http-addr :8080`,
		Args: cobra.ExactArgs(1),
		RunE: runServe,
	}

	serveCmd.Flags().StringVar(&serveHTTPAddr, "http-addr", "", "address for the health/summary sidecar (disabled when empty)")
	serveCmd.Flags().StringArrayVarP(&serveTags, "tag", "T", nil, "filter operations by tag (repeatable)")
	serveCmd.Flags().StringArrayVar(&servePathFilter, "path-filter", nil, "filter operations by path prefix (repeatable)")
	serveCmd.Flags().IntVar(&serveMaxOps, "max-operations", 0, "maximum number of operations to serve (0 = unlimited)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	doc, err := loadSpec(ctx, args[0], false)
	if err != nil {
		return err
	}

	operations, err := generator.FilterOperations(doc.Operations(), generator.Options{
		Tags:          serveTags,
		PathFilters:   servePathFilter,
		MaxOperations: serveMaxOps,
	})
	if err != nil {
		return err
	}
	if len(operations) == 0 {
		return fmt.Errorf("no operations to serve after filtering")
	}

	srv := mcp.NewServer(logger, doc.Summarize(), operations)

	if serveHTTPAddr != "" {
		go func() {
			if err := srv.ServeHTTP(serveHTTPAddr); err != nil {
				logger.Error("Sidecar HTTP server failed", zap.Error(err))
			}
		}()
	}

	return srv.ServeStdio()
}
