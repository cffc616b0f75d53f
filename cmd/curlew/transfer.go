package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/blackcoderx/curlew/pkg/env"
	"github.com/blackcoderx/curlew/pkg/storage"
)

var (
	importOutput string
	exportOutput string
	exportFormat string
)

func init() {
	importCmd.Flags().StringVarP(&importOutput, "output", "o", "", "Write normalized environments to a YAML file")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "Target format name (see 'curlew formats')")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (defaults to stdout)")
}

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Detect, parse and validate an environment file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		envs, validation, err := storage.ImportFile(registry, args[0])
		if err != nil {
			return err
		}

		printValidation(validation)
		for _, e := range envs {
			fmt.Printf("%s (%s): %d variables\n", e.Name, e.DisplayName, len(e.Variables))
		}

		if importOutput != "" {
			if err := storage.SaveEnvironments(envs, importOutput); err != nil {
				return err
			}
			fmt.Println(SuccessStyle.Render("Saved to " + importOutput))
		}

		if !validation.Valid {
			return fmt.Errorf("import failed validation")
		}
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export FILE",
	Short: "Convert an environment file to another format",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target := exportFormat
		if target == "" {
			target = viper.GetString("export.format")
		}
		strategy, ok := registry.Get(target)
		if !ok {
			return fmt.Errorf("unknown format %q", target)
		}

		envs, validation, err := storage.ImportFile(registry, args[0])
		if err != nil {
			return err
		}
		printValidation(validation)
		if !validation.Valid {
			return fmt.Errorf("refusing to export invalid environments")
		}

		if exportOutput != "" {
			if err := storage.ExportFile(strategy, envs, exportOutput); err != nil {
				return err
			}
			fmt.Println(SuccessStyle.Render("Saved to " + exportOutput))
			return nil
		}

		content, err := strategy.Export(envs)
		if err != nil {
			return err
		}
		fmt.Println(content)
		return nil
	},
}

// printValidation writes a styled validation report to stderr so stdout
// stays clean for piped output.
func printValidation(v env.Validation) {
	for _, problem := range v.Errors {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("error: "+problem))
	}
	for _, warning := range v.Warnings {
		fmt.Fprintln(os.Stderr, WarningStyle.Render("warning: "+warning))
	}
}
