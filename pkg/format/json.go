package format

import (
	"encoding/json"
	"fmt"

	"github.com/blackcoderx/curlew/pkg/env"
)

// JSONStrategy imports and exports the native environment JSON format:
// a single environment object or an array of them, each carrying a name
// or displayName plus a variables object.
type JSONStrategy struct {
	info FormatInfo
}

// NewJSONStrategy creates the native JSON format strategy.
func NewJSONStrategy() *JSONStrategy {
	return &JSONStrategy{
		info: FormatInfo{
			Name:           "json",
			DisplayName:    "Environment JSON",
			FileExtensions: []string{".json"},
			MimeTypes:      []string{"application/json"},
			SupportsImport: true,
			SupportsExport: true,
		},
	}
}

// Info returns the static format descriptor.
func (s *JSONStrategy) Info() FormatInfo {
	return s.info
}

// Detect reports whether the content is JSON that carries at least one
// environment-shaped entry.
func (s *JSONStrategy) Detect(content string) bool {
	var data any
	if err := json.Unmarshal([]byte(content), &data); err != nil {
		return false
	}

	switch v := data.(type) {
	case []any:
		if len(v) == 0 {
			return false
		}
		return looksLikeEnvironment(v[0])
	case map[string]any:
		return looksLikeEnvironment(v)
	default:
		return false
	}
}

// Confidence returns 1.0 when every entry is environment-shaped, 0.5 for
// an array that only partially conforms, and 0 when Detect fails.
func (s *JSONStrategy) Confidence(content string) float64 {
	if !s.Detect(content) {
		return 0
	}

	var data any
	if err := json.Unmarshal([]byte(content), &data); err != nil {
		return 0
	}

	if arr, ok := data.([]any); ok {
		for _, entry := range arr {
			if !looksLikeEnvironment(entry) {
				return 0.5
			}
		}
	}
	return 1.0
}

// Parse accepts a bare environment object or an array of them and
// normalizes each entry. Missing names fall back between name and
// displayName and finally to "Unnamed"; a missing or mistyped variables
// property becomes an empty map.
func (s *JSONStrategy) Parse(content string) ([]env.Environment, error) {
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
	for _, entry := range entries {
		envs = append(envs, normalizeJSONEntry(entry))
	}
	return envs, nil
}

// Validate applies the shared default validator.
func (s *JSONStrategy) Validate(envs []env.Environment) env.Validation {
	return env.ValidateAll(envs)
}

// Export serializes environments as indented JSON. A single environment
// is emitted as a bare object, multiple as an array, matching the two
// shapes Parse accepts.
func (s *JSONStrategy) Export(envs []env.Environment) (string, error) {
	var payload any = envs
	if len(envs) == 1 {
		payload = envs[0]
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal environments: %w", err)
	}
	return string(data), nil
}

// looksLikeEnvironment reports whether a decoded JSON value has the shape
// of an environment: a string name or displayName plus a variables
// property that is a non-null object.
func looksLikeEnvironment(entry any) bool {
	m, ok := entry.(map[string]any)
	if !ok {
		return false
	}

	_, hasName := m["name"].(string)
	_, hasDisplayName := m["displayName"].(string)
	if !hasName && !hasDisplayName {
		return false
	}

	_, hasVariables := m["variables"].(map[string]any)
	return hasVariables
}

// normalizeJSONEntry converts one decoded entry into a normalized
// environment, coercing loosely typed fields and dropping anything with
// an unexpected type.
func normalizeJSONEntry(entry any) env.Environment {
	m, _ := entry.(map[string]any)

	name, _ := m["name"].(string)
	displayName, _ := m["displayName"].(string)
	if name == "" {
		name = displayName
	}
	if name == "" {
		name = "Unnamed"
	}
	if displayName == "" {
		displayName = name
	}

	variables := make(map[string]string)
	if vars, ok := m["variables"].(map[string]any); ok {
		for key, value := range vars {
			if str, ok := value.(string); ok {
				variables[key] = str
			} else {
				variables[key] = fmt.Sprintf("%v", value)
			}
		}
	}

	e := env.Environment{
		Name:        name,
		DisplayName: displayName,
		Variables:   variables,
	}

	// isDefault is a 0/1 flag in persisted data but booleans appear in
	// hand-written files; absent stays nil rather than defaulting to 0.
	switch v := m["isDefault"].(type) {
	case float64:
		flag := int(v)
		e.IsDefault = &flag
	case bool:
		flag := 0
		if v {
			flag = 1
		}
		e.IsDefault = &flag
	}

	if id, ok := m["id"].(float64); ok {
		idVal := int64(id)
		e.ID = &idVal
	}
	if lastUsed, ok := m["lastUsed"].(string); ok {
		e.LastUsed = lastUsed
	}
	if createdAt, ok := m["createdAt"].(string); ok {
		e.CreatedAt = createdAt
	}

	return e
}
