package format

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/joho/godotenv"

	"github.com/blackcoderx/curlew/pkg/env"
)

// dotenvLinePattern matches a KEY=VALUE assignment, optionally prefixed
// with "export".
var dotenvLinePattern = regexp.MustCompile(`^\s*(?:export\s+)?[A-Za-z_][A-Za-z0-9_.]*\s*=`)

// DotenvStrategy imports dotenv (.env) text: one KEY=VALUE assignment per
// non-blank non-comment line, values optionally quoted. A file yields a
// single environment; callers importing from disk typically rename it
// after the source file's stem.
type DotenvStrategy struct {
	info FormatInfo
}

// NewDotenvStrategy creates the dotenv format strategy.
func NewDotenvStrategy() *DotenvStrategy {
	return &DotenvStrategy{
		info: FormatInfo{
			Name:           "dotenv",
			DisplayName:    "Dotenv (.env)",
			FileExtensions: []string{".env"},
			MimeTypes:      []string{"text/plain"},
			SupportsImport: true,
			SupportsExport: true,
		},
	}
}

// Info returns the static format descriptor.
func (s *DotenvStrategy) Info() FormatInfo {
	return s.info
}

// Detect reports whether at least half of the meaningful lines are
// KEY=VALUE assignments.
func (s *DotenvStrategy) Detect(content string) bool {
	return s.Confidence(content) >= 0.5
}

// Confidence is the fraction of non-blank non-comment lines shaped like
// KEY=VALUE assignments.
func (s *DotenvStrategy) Confidence(content string) float64 {
	total := 0
	matching := 0

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		total++
		if dotenvLinePattern.MatchString(trimmed) {
			matching++
		}
	}

	if total == 0 {
		return 0
	}
	return float64(matching) / float64(total)
}

// Parse converts dotenv text into a single environment. The record gets
// a generated name; pkg/storage overrides it with the file stem when the
// content came from a file.
func (s *DotenvStrategy) Parse(content string) ([]env.Environment, error) {
	variables, err := godotenv.Unmarshal(content)
	if err != nil {
		return nil, fmt.Errorf("invalid dotenv content: %w", err)
	}
	if variables == nil {
		variables = make(map[string]string)
	}

	return []env.Environment{{
		Name:        "imported_env",
		DisplayName: "Imported .env",
		Variables:   variables,
	}}, nil
}

// Validate applies the shared default validator.
func (s *DotenvStrategy) Validate(envs []env.Environment) env.Validation {
	return env.ValidateAll(envs)
}

// Export serializes a single environment as dotenv text. The format has
// no way to represent more than one environment per file.
func (s *DotenvStrategy) Export(envs []env.Environment) (string, error) {
	if len(envs) == 0 {
		return "", fmt.Errorf("no environments to export")
	}
	if len(envs) > 1 {
		return "", fmt.Errorf("dotenv files hold a single environment, got %d", len(envs))
	}

	content, err := godotenv.Marshal(envs[0].Variables)
	if err != nil {
		return "", fmt.Errorf("failed to marshal variables: %w", err)
	}
	return content, nil
}
