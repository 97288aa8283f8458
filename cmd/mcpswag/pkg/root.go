package pkg

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mcpswag/mcpswag/internal/config"
)

var (
	cfgFile string
	debug   bool
	logger  *zap.Logger
	rootCmd = &cobra.Command{
		Use:   "mcpswag",
		Short: "Generate MCP servers from Swagger/OpenAPI specifications",
		Long: `A tool that loads Swagger/OpenAPI specifications (2.0 and 3.x, JSON or YAML,
local file or URL), normalizes them into a canonical operation model and
generates a fully functional Model Context Protocol (MCP) server exposing
the API's operations as callable tools.`,
	}
)

// Execute executes the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig, initLogger)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.mcpswag.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	// Service configuration for serve mode
	rootCmd.PersistentFlags().String("service-url", "", "base URL of the target API service")
	rootCmd.PersistentFlags().String("service-auth", "", "authorization header value for the target API")

	viper.BindPFlag("service.url", rootCmd.PersistentFlags().Lookup("service-url"))
	viper.BindPFlag("service.authorization", rootCmd.PersistentFlags().Lookup("service-auth"))
}

func initConfig() {
	config.Init(cfgFile)

	// Override config with command line flags
	if debug {
		config.SetBool("debug", true)
	}
}

func initLogger() {
	var err error
	if config.GetBool("debug") {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}

	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
}
