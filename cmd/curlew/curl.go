package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/blackcoderx/curlew/pkg/curl"
	"github.com/blackcoderx/curlew/pkg/storage"
)

var (
	genRequestFile string
	genEnvFile     string
	genCopy        bool
)

func init() {
	curlGenCmd.Flags().StringVarP(&genRequestFile, "request", "r", "", "Saved request file (YAML)")
	curlGenCmd.Flags().StringVarP(&genEnvFile, "env", "e", "", "Environment YAML file for {{VAR}} substitution")
	curlGenCmd.Flags().BoolVar(&genCopy, "copy", false, "Copy the generated command to the clipboard")
	_ = curlGenCmd.MarkFlagRequired("request")

	curlCmd.AddCommand(curlParseCmd)
	curlCmd.AddCommand(curlGenCmd)
	rootCmd.AddCommand(curlCmd)
}

var curlCmd = &cobra.Command{
	Use:   "curl",
	Short: "Convert between cURL commands and normalized requests",
}

var curlParseCmd = &cobra.Command{
	Use:   "parse [COMMAND...]",
	Short: "Parse cURL commands into normalized requests",
	Long: `Parse one or more cURL commands into normalized request YAML.
Commands are taken from the arguments, or one per line from stdin when
no arguments are given. A malformed command is reported with its
position and does not stop the rest of the batch.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		commands := args
		if len(commands) == 0 {
			scanner := bufio.NewScanner(os.Stdin)
			for scanner.Scan() {
				if line := scanner.Text(); line != "" {
					commands = append(commands, line)
				}
			}
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
		}
		if len(commands) == 0 {
			return fmt.Errorf("no commands to parse")
		}

		failures := 0
		for _, result := range curl.ParseAll(commands) {
			if result.Err != nil {
				failures++
				fmt.Fprintln(os.Stderr, ErrorStyle.Render(result.Err.Error()))
				continue
			}

			saved := storage.SavedRequest{
				Name:    curl.RequestName(result.Request),
				Request: *result.Request,
			}
			data, err := yaml.Marshal(saved)
			if err != nil {
				return fmt.Errorf("failed to marshal request: %w", err)
			}
			if len(commands) > 1 {
				fmt.Printf("--- # command %d\n", result.Index)
			}
			fmt.Print(string(data))
		}

		if failures == len(commands) {
			return fmt.Errorf("no command parsed successfully")
		}
		return nil
	},
}

var curlGenCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate a cURL command from a saved request",
	RunE: func(cmd *cobra.Command, args []string) error {
		saved, err := storage.LoadRequest(genRequestFile)
		if err != nil {
			return err
		}

		req := &saved.Request
		if genEnvFile != "" {
			envs, err := storage.LoadEnvironments(genEnvFile)
			if err != nil {
				return err
			}
			if len(envs) == 0 {
				return fmt.Errorf("no environments in %s", genEnvFile)
			}
			req = storage.ApplyEnvironment(req, envs[0])
		}

		command := curl.Generate(*req)
		fmt.Println(command)

		if genCopy {
			if err := clipboard.WriteAll(command); err != nil {
				fmt.Fprintln(os.Stderr, WarningStyle.Render("warning: could not copy to clipboard: "+err.Error()))
			} else {
				fmt.Fprintln(os.Stderr, DetailStyle.Render("copied to clipboard"))
			}
		}
		return nil
	},
}
