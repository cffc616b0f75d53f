// Package storage persists normalized environments and requests as YAML
// files and drives file-level import/export through the format registry.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/blackcoderx/curlew/pkg/env"
)

// SaveEnvironments saves normalized environments to a YAML file
func SaveEnvironments(envs []env.Environment, filePath string) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if !strings.HasSuffix(filePath, ".yaml") && !strings.HasSuffix(filePath, ".yml") {
		filePath = filePath + ".yaml"
	}

	data, err := yaml.Marshal(envs)
	if err != nil {
		return fmt.Errorf("failed to marshal environments: %w", err)
	}

	return os.WriteFile(filePath, data, 0644)
}

// LoadEnvironments loads normalized environments from a YAML file
func LoadEnvironments(filePath string) ([]env.Environment, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read environment file: %w", err)
	}

	var envs []env.Environment
	if err := yaml.Unmarshal(data, &envs); err != nil {
		return nil, fmt.Errorf("failed to parse environment YAML: %w", err)
	}

	for i := range envs {
		if envs[i].Variables == nil {
			envs[i].Variables = make(map[string]string)
		}
	}

	return envs, nil
}

// ListEnvironments lists all environment files in the environments directory
func ListEnvironments(baseDir string) ([]string, error) {
	envDir := filepath.Join(baseDir, "environments")

	if _, err := os.Stat(envDir); os.IsNotExist(err) {
		return []string{}, nil
	}

	var envs []string
	entries, err := os.ReadDir(envDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read environments directory: %w", err)
	}

	for _, entry := range entries {
		if !entry.IsDir() && (strings.HasSuffix(entry.Name(), ".yaml") || strings.HasSuffix(entry.Name(), ".yml")) {
			name := strings.TrimSuffix(strings.TrimSuffix(entry.Name(), ".yaml"), ".yml")
			envs = append(envs, name)
		}
	}

	return envs, nil
}

// SaveRequest saves a request to a YAML file
func SaveRequest(req SavedRequest, filePath string) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if !strings.HasSuffix(filePath, ".yaml") && !strings.HasSuffix(filePath, ".yml") {
		filePath = filePath + ".yaml"
	}

	data, err := yaml.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// LoadRequest loads a request from a YAML file
func LoadRequest(filePath string) (*SavedRequest, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var req SavedRequest
	if err := yaml.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if req.Request.Headers == nil {
		req.Request.Headers = make(map[string]string)
	}
	if req.Request.Auth.Type == "" {
		req.Request.Auth.Type = "none"
	}

	return &req, nil
}

// GetEnvironmentsDir returns the environments directory path
func GetEnvironmentsDir(baseDir string) string {
	return filepath.Join(baseDir, "environments")
}

// GetRequestsDir returns the requests directory path
func GetRequestsDir(baseDir string) string {
	return filepath.Join(baseDir, "requests")
}
