package env

import (
	"fmt"
	"strings"
)

// ValidateAll checks a parsed environment list for structural problems.
// It never mutates its input; it only reports. Valid is true iff no
// blocking errors were found. Blank variable keys are reported as
// warnings so callers can still complete the import.
func ValidateAll(envs []Environment) Validation {
	result := Validation{
		Errors:   []string{},
		Warnings: []string{},
	}

	for i, e := range envs {
		if strings.TrimSpace(e.Name) == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("environment %d: name is empty", i+1))
		}
		if strings.TrimSpace(e.DisplayName) == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("environment %d: display name is empty", i+1))
		}
		if e.Variables == nil {
			result.Errors = append(result.Errors, fmt.Sprintf("environment %d: variables are missing", i+1))
			continue
		}
		for key := range e.Variables {
			if strings.TrimSpace(key) == "" {
				result.Warnings = append(result.Warnings, fmt.Sprintf("environment %d: variable with empty key", i+1))
			}
		}
	}

	result.Valid = len(result.Errors) == 0
	return result
}
