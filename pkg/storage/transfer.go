package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/blackcoderx/curlew/pkg/env"
	"github.com/blackcoderx/curlew/pkg/format"
)

// ImportFile reads a file, classifies its content through the registry
// and parses it with the winning strategy. Records coming out of the
// dotenv strategy carry a generated placeholder name, so they are
// renamed after the source file's stem. The validation result is
// returned as data alongside the records.
func ImportFile(reg *format.Registry, filePath string) ([]env.Environment, env.Validation, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, env.Validation{}, fmt.Errorf("failed to read file: %w", err)
	}

	strategy, _, err := reg.Detect(string(data))
	if err != nil {
		return nil, env.Validation{}, err
	}

	envs, err := strategy.Parse(string(data))
	if err != nil {
		return nil, env.Validation{}, fmt.Errorf("parsing as %s: %w", strategy.Info().DisplayName, err)
	}

	if strategy.Info().Name == "dotenv" {
		if stem := fileStem(filePath); stem != "" {
			for i := range envs {
				envs[i].Name = stem
				envs[i].DisplayName = stem
			}
		}
	}

	return envs, strategy.Validate(envs), nil
}

// ExportFile serializes environments through the given strategy and
// writes the result next to the given path, appending the format's
// primary extension when the path has none.
func ExportFile(strategy format.Strategy, envs []env.Environment, filePath string) error {
	info := strategy.Info()
	if !info.SupportsExport {
		return fmt.Errorf("format %s does not support export", info.Name)
	}

	content, err := strategy.Export(envs)
	if err != nil {
		return fmt.Errorf("failed to export as %s: %w", info.DisplayName, err)
	}

	if filepath.Ext(filePath) == "" && len(info.FileExtensions) > 0 {
		filePath += info.FileExtensions[0]
	}

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	return os.WriteFile(filePath, []byte(content), 0644)
}

// fileStem returns the file name without directory or extension, e.g.
// "staging" for "config/staging.env". Bare dotfiles like ".env" have an
// empty stem.
func fileStem(filePath string) string {
	base := filepath.Base(filePath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
