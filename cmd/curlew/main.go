package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/blackcoderx/curlew/pkg/format"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	cfgFile  string
	registry = format.NewRegistry()
	rootCmd  = &cobra.Command{
		Use:     "curlew",
		Short:   "curlew - import, export and convert REST client data",
		Version: version,
		Long: `curlew is the import/export engine of a REST client, usable on its own.
It detects and normalizes environment files (environment JSON, Postman
environment exports, dotenv), converts between those formats, and
round-trips HTTP requests to and from cURL commands.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env if present (optional, warn if malformed)
			if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
				fmt.Fprintf(os.Stderr, "Warning: failed to load .env file: %v\n", err)
			}
		},
	}
)

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .curlew/config.json)")

	rootCmd.AddCommand(formatsCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".curlew")
		viper.SetConfigType("json")
		viper.SetConfigName("config")
	}

	viper.SetDefault("export.format", "json")
	viper.AutomaticEnv()
	_ = viper.ReadInConfig()
}

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List the registered import/export formats",
	Run: func(cmd *cobra.Command, args []string) {
		for _, info := range registry.Formats() {
			capabilities := ""
			if info.SupportsImport {
				capabilities += "import"
			}
			if info.SupportsExport {
				if capabilities != "" {
					capabilities += ", "
				}
				capabilities += "export"
			}
			fmt.Printf("%-10s %-22s %-30s %s\n",
				info.Name,
				info.DisplayName,
				joinList(info.FileExtensions),
				capabilities)
		}
	},
}

func joinList(items []string) string {
	out := ""
	for i, item := range items {
		if i > 0 {
			out += ", "
		}
		out += item
	}
	return out
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
