// Package format implements the multi-format environment import engine:
// a set of pluggable format strategies (native JSON, Postman environment
// JSON, dotenv) and a registry that arbitrates between them using
// per-strategy confidence scores.
package format

import (
	"github.com/blackcoderx/curlew/pkg/env"
)

// FormatInfo describes a registered format for UI enumeration
// (e.g. populating an "import as..." file-type picker). Constructed once
// per strategy and never mutated.
type FormatInfo struct {
	Name           string   `json:"name"`           // Machine id, e.g. "postman"
	DisplayName    string   `json:"displayName"`    // UI label
	FileExtensions []string `json:"fileExtensions"` // Including leading dot
	MimeTypes      []string `json:"mimeTypes"`
	SupportsImport bool     `json:"supportsImport"`
	SupportsExport bool     `json:"supportsExport"`
}

// Strategy is one pluggable implementation of the import/detection
// interface, bound to exactly one file format. Strategies are stateless
// after construction and safe for concurrent use.
type Strategy interface {
	// Info returns the static format descriptor.
	Info() FormatInfo
	// Detect cheaply reports whether content could be this format.
	Detect(content string) bool
	// Confidence scores how certain the strategy is that content is an
	// instance of its format, from 0 (not this format) to 1 (unambiguous).
	Confidence(content string) float64
	// Parse converts raw content into normalized environments.
	Parse(content string) ([]env.Environment, error)
	// Validate checks parsed environments for structural problems.
	Validate(envs []env.Environment) env.Validation
	// Export serializes normalized environments back to this format.
	Export(envs []env.Environment) (string, error)
}
