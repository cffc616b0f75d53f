package format

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/blackcoderx/curlew/pkg/env"
)

//go:embed schemas/postman_environment.json
var postmanSchemaJSON string

// slugPattern matches runs of characters that are not allowed in an
// internal environment name.
var slugPattern = regexp.MustCompile(`[^a-z0-9_]+`)

// PostmanStrategy imports Postman environment exports: a JSON object with
// a name, a values array and one of the _postman_* export markers.
type PostmanStrategy struct {
	info   FormatInfo
	schema *gojsonschema.Schema
}

// NewPostmanStrategy creates the Postman environment format strategy.
// The embedded JSON schema is compiled once here.
func NewPostmanStrategy() *PostmanStrategy {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(postmanSchemaJSON))
	if err != nil {
		panic(fmt.Sprintf("format: invalid embedded Postman schema: %v", err))
	}

	return &PostmanStrategy{
		info: FormatInfo{
			Name:           "postman",
			DisplayName:    "Postman Environment",
			FileExtensions: []string{".json", ".postman_environment.json"},
			MimeTypes:      []string{"application/json"},
			SupportsImport: true,
			SupportsExport: true,
		},
		schema: schema,
	}
}

// Info returns the static format descriptor.
func (s *PostmanStrategy) Info() FormatInfo {
	return s.info
}

// Detect reports whether the content is a Postman environment export:
// a JSON object with a string name, a values array, and either the
// environment variable scope marker or the Postman exporter marker.
func (s *PostmanStrategy) Detect(content string) bool {
	var m map[string]any
	if err := json.Unmarshal([]byte(content), &m); err != nil {
		return false
	}

	if _, ok := m["name"].(string); !ok {
		return false
	}
	if _, ok := m["values"].([]any); !ok {
		return false
	}

	scope, _ := m["_postman_variable_scope"].(string)
	exportedUsing, _ := m["_postman_exported_using"].(string)
	return scope == "environment" || exportedUsing == "Postman"
}

// Confidence grades the detection signals from strongest to weakest:
// the explicit environment scope marker, the exporter marker, a bare
// values array, and finally the base partial-match score.
func (s *PostmanStrategy) Confidence(content string) float64 {
	if !s.Detect(content) {
		return 0
	}

	var m map[string]any
	if err := json.Unmarshal([]byte(content), &m); err != nil {
		return 0
	}

	if scope, _ := m["_postman_variable_scope"].(string); scope == "environment" {
		return 1.0
	}
	if exportedUsing, _ := m["_postman_exported_using"].(string); exportedUsing == "Postman" {
		return 0.9
	}
	if _, ok := m["values"].([]any); ok {
		return 0.8
	}
	return 0.5
}

// Parse accepts a Postman environment object or an array of them. Each
// object is first checked against the embedded Postman environment
// schema; violations abort the parse with a message listing them.
// Variables are included unless explicitly disabled. Names are slugified
// for internal use while the original name is kept as the display name,
// and isDefault is always an explicit 0 because Postman has no file-level
// default-environment concept.
func (s *PostmanStrategy) Parse(content string) ([]env.Environment, error) {
	var data any
	if err := json.Unmarshal([]byte(content), &data); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	var entries []any
	switch v := data.(type) {
	case []any:
		entries = v
	default:
		entries = []any{v}
	}

	envs := make([]env.Environment, 0, len(entries))
	for i, entry := range entries {
		if err := s.checkSchema(entry); err != nil {
			return nil, fmt.Errorf("environment %d: %w", i+1, err)
		}
		envs = append(envs, normalizePostmanEntry(entry))
	}
	return envs, nil
}

// checkSchema validates one decoded environment against the embedded
// Postman environment schema.
func (s *PostmanStrategy) checkSchema(entry any) error {
	result, err := s.schema.Validate(gojsonschema.NewGoLoader(entry))
	if err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	if result.Valid() {
		return nil
	}

	var problems []string
	for _, desc := range result.Errors() {
		problems = append(problems, desc.String())
	}
	return fmt.Errorf("not a valid Postman environment: %s", strings.Join(problems, "; "))
}

// Validate applies the shared default validator.
func (s *PostmanStrategy) Validate(envs []env.Environment) env.Validation {
	return env.ValidateAll(envs)
}

// Export serializes environments back into Postman environment JSON.
// Variable keys are emitted in sorted order so output is deterministic.
func (s *PostmanStrategy) Export(envs []env.Environment) (string, error) {
	type postmanVariable struct {
		Key     string `json:"key"`
		Value   string `json:"value"`
		Enabled bool   `json:"enabled"`
		Type    string `json:"type"`
	}
	type postmanEnvironment struct {
		Name          string            `json:"name"`
		Values        []postmanVariable `json:"values"`
		Scope         string            `json:"_postman_variable_scope"`
		ExportedUsing string            `json:"_postman_exported_using"`
	}

	exports := make([]postmanEnvironment, 0, len(envs))
	for _, e := range envs {
		name := e.DisplayName
		if name == "" {
			name = e.Name
		}

		keys := make([]string, 0, len(e.Variables))
		for key := range e.Variables {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		values := make([]postmanVariable, 0, len(keys))
		for _, key := range keys {
			values = append(values, postmanVariable{
				Key:     key,
				Value:   e.Variables[key],
				Enabled: true,
				Type:    "default",
			})
		}

		exports = append(exports, postmanEnvironment{
			Name:          name,
			Values:        values,
			Scope:         "environment",
			ExportedUsing: "curlew",
		})
	}

	var payload any = exports
	if len(exports) == 1 {
		payload = exports[0]
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal environments: %w", err)
	}
	return string(data), nil
}

// normalizePostmanEntry converts one schema-checked Postman environment
// into a normalized record.
func normalizePostmanEntry(entry any) env.Environment {
	m, _ := entry.(map[string]any)

	displayName, _ := m["name"].(string)
	if displayName == "" {
		displayName = "Imported Postman Environment"
	}

	variables := make(map[string]string)
	if values, ok := m["values"].([]any); ok {
		for _, raw := range values {
			variable, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			// Included unless the enabled flag is literally false.
			if enabled, ok := variable["enabled"].(bool); ok && !enabled {
				continue
			}
			key, ok := variable["key"].(string)
			if !ok {
				continue
			}
			switch value := variable["value"].(type) {
			case string:
				variables[key] = value
			case nil:
				variables[key] = ""
			default:
				variables[key] = fmt.Sprintf("%v", value)
			}
		}
	}

	isDefault := 0
	return env.Environment{
		Name:        sanitizePostmanName(displayName),
		DisplayName: displayName,
		Variables:   variables,
		IsDefault:   &isDefault,
	}
}

// sanitizePostmanName slugifies a Postman environment name into an
// internal identifier: lowercase, underscores for anything outside
// [a-z0-9_], runs collapsed, leading and trailing underscores stripped.
func sanitizePostmanName(name string) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(name), "_")
	slug = strings.Trim(slug, "_")
	if slug == "" {
		return "imported_postman_environment"
	}
	return slug
}
