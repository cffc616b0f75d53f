// Package env defines the normalized environment model shared by every
// import format, plus the default structural validator applied after parsing.
package env

// Environment represents a named bundle of key/value variables usable as
// substitution context for HTTP requests.
type Environment struct {
	ID          *int64            `json:"id,omitempty" yaml:"id,omitempty"`                   // Persisted identifier, nil for fresh imports
	Name        string            `json:"name" yaml:"name"`                                   // Internal identifier
	DisplayName string            `json:"displayName" yaml:"displayName"`                     // Human-readable label
	Variables   map[string]string `json:"variables" yaml:"variables"`                         // Key/value pairs, never nil
	IsDefault   *int              `json:"isDefault,omitempty" yaml:"isDefault,omitempty"`     // 0/1 flag, nil means unspecified
	LastUsed    string            `json:"lastUsed,omitempty" yaml:"lastUsed,omitempty"`       // ISO-8601 timestamp, passthrough only
	CreatedAt   string            `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`     // ISO-8601 timestamp, passthrough only
}

// Validation reports structural problems found in a set of environments.
// Errors block an import; warnings do not.
type Validation struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}
