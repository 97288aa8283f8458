package pkg

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	infoCmd := &cobra.Command{
		Use:   "info <spec>",
		Short: "Show information about a Swagger/OpenAPI specification",
		Long: `Parses the specification and displays its title, version, servers,
endpoints grouped by tag, and schemas.

Example:
  mcpswag info https://petstore.swagger.io/v2/swagger.json`,
		Args: cobra.ExactArgs(1),
		RunE: runInfo,
	}

	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	doc, err := loadSpec(context.Background(), args[0], false)
	if err != nil {
		return err
	}

	summary := doc.Summarize()

	fmt.Printf("%s\n", summary.Title)
	fmt.Printf("Version: %s\n", summary.Version)
	if summary.Description != "" {
		fmt.Printf("\n%s\n", summary.Description)
	}

	if len(summary.Servers) > 0 {
		fmt.Println("\nServers:")
		for _, server := range summary.Servers {
			fmt.Printf("  - %s\n", server)
		}
	}

	if len(summary.PathsByTag) > 0 {
		fmt.Println("\nAPI Endpoints by Tag:")
		tags := make([]string, 0, len(summary.PathsByTag))
		for tag := range summary.PathsByTag {
			tags = append(tags, tag)
		}
		sort.Strings(tags)
		for _, tag := range tags {
			fmt.Printf("\n  %s:\n", tag)
			for _, entry := range summary.PathsByTag[tag] {
				for _, method := range entry.Methods {
					fmt.Printf("    %-6s %s\n", strings.ToUpper(method), entry.Path)
				}
			}
		}
	}

	if len(summary.SchemaNames) > 0 {
		fmt.Println("\nSchemas:")
		for _, name := range summary.SchemaNames {
			fmt.Printf("  - %s\n", name)
		}
	}

	return nil
}
