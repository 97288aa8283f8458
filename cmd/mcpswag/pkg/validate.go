package pkg

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var validateVerbose bool

func init() {
	validateCmd := &cobra.Command{
		Use:   "validate <spec>",
		Short: "Validate a Swagger/OpenAPI specification",
		Long: `Loads the specification and runs the structural validation pass.

Examples:
  mcpswag validate https://petstore.swagger.io/v2/swagger.json
  mcpswag validate ./api_spec.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}

	validateCmd.Flags().BoolVarP(&validateVerbose, "verbose", "v", false, "show detailed validation results")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	doc, err := loadSpec(context.Background(), args[0], true)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	summary := doc.Summarize()

	fmt.Println("Specification is valid!")
	fmt.Printf("  Title:           %s\n", summary.Title)
	fmt.Printf("  Version:         %s\n", summary.Version)
	fmt.Printf("  OpenAPI Version: %s\n", summary.OpenAPIVersion)
	fmt.Printf("  Paths:           %d\n", summary.PathCount)
	fmt.Printf("  Operations:      %d\n", summary.OperationCount)
	fmt.Printf("  Schemas:         %d\n", summary.SchemaCount)

	if validateVerbose {
		if len(summary.Paths) > 0 {
			fmt.Println("\nPaths:")
			for _, path := range summary.Paths {
				fmt.Printf("  - %s\n", path)
			}
		}
		if len(summary.SchemaNames) > 0 {
			fmt.Println("\nSchemas:")
			for _, name := range summary.SchemaNames {
				fmt.Printf("  - %s\n", name)
			}
		}
	}

	return nil
}
