package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/blackcoderx/curlew/pkg/curl"
	"github.com/blackcoderx/curlew/pkg/env"
	"github.com/blackcoderx/curlew/pkg/format"
)

func TestEnvironmentsRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "environments", "all.yaml")

	flag := 1
	envs := []env.Environment{
		{Name: "dev", DisplayName: "Development", Variables: map[string]string{"base_url": "http://localhost"}, IsDefault: &flag},
		{Name: "prod", DisplayName: "Production", Variables: map[string]string{"base_url": "https://api.example.com"}},
	}

	if err := SaveEnvironments(envs, path); err != nil {
		t.Fatalf("SaveEnvironments returned error: %v", err)
	}

	loaded, err := LoadEnvironments(path)
	if err != nil {
		t.Fatalf("LoadEnvironments returned error: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("got %d environments, want 2", len(loaded))
	}
	if loaded[0].Name != "dev" || loaded[0].Variables["base_url"] != "http://localhost" {
		t.Errorf("env 0 = %+v", loaded[0])
	}
	if loaded[0].IsDefault == nil || *loaded[0].IsDefault != 1 {
		t.Errorf("isDefault not preserved: %v", loaded[0].IsDefault)
	}
}

func TestSaveEnvironments_AppendsExtension(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "envs")

	if err := SaveEnvironments([]env.Environment{{Name: "a", DisplayName: "A", Variables: map[string]string{}}}, path); err != nil {
		t.Fatalf("SaveEnvironments returned error: %v", err)
	}
	if _, err := os.Stat(path + ".yaml"); err != nil {
		t.Errorf("expected %s.yaml to exist: %v", path, err)
	}
}

func TestRequestRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "requests", "create-user.yaml")

	saved := SavedRequest{
		Name: "POST users",
		Request: curl.Request{
			Method:  "POST",
			URL:     "https://api.example.com/users",
			Headers: map[string]string{"Content-Type": "application/json"},
			Body:    `{"name": "John"}`,
			QueryParams: []curl.QueryParam{
				{Key: "notify", Value: "true", Enabled: true},
			},
			Auth: curl.Auth{Type: curl.AuthBearer, Token: "tok"},
		},
	}

	if err := SaveRequest(saved, path); err != nil {
		t.Fatalf("SaveRequest returned error: %v", err)
	}

	loaded, err := LoadRequest(path)
	if err != nil {
		t.Fatalf("LoadRequest returned error: %v", err)
	}
	if loaded.Name != saved.Name {
		t.Errorf("name = %q, want %q", loaded.Name, saved.Name)
	}
	if loaded.Request.Method != "POST" || loaded.Request.URL != saved.Request.URL {
		t.Errorf("request = %+v", loaded.Request)
	}
	if loaded.Request.Auth.Type != curl.AuthBearer || loaded.Request.Auth.Token != "tok" {
		t.Errorf("auth = %+v", loaded.Request.Auth)
	}
	if len(loaded.Request.QueryParams) != 1 || !loaded.Request.QueryParams[0].Enabled {
		t.Errorf("queryParams = %#v", loaded.Request.QueryParams)
	}
}

func TestListEnvironments(t *testing.T) {
	tmpDir := t.TempDir()
	envDir := filepath.Join(tmpDir, "environments")
	if err := os.MkdirAll(envDir, 0755); err != nil {
		t.Fatalf("failed to create env dir: %v", err)
	}

	for _, name := range []string{"dev.yaml", "prod.yml", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(envDir, name), []byte("[]"), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}

	names, err := ListEnvironments(tmpDir)
	if err != nil {
		t.Fatalf("ListEnvironments returned error: %v", err)
	}
	if len(names) != 2 {
		t.Errorf("got %v, want dev and prod only", names)
	}

	empty, err := ListEnvironments(filepath.Join(tmpDir, "missing"))
	if err != nil || len(empty) != 0 {
		t.Errorf("missing directory should list nothing, got %v, %v", empty, err)
	}
}

func TestImportFile(t *testing.T) {
	reg := format.NewRegistry()
	tmpDir := t.TempDir()

	t.Run("dotenv file named after stem", func(t *testing.T) {
		path := filepath.Join(tmpDir, "staging.env")
		if err := os.WriteFile(path, []byte("API_URL=https://staging.example.com\nTOKEN=abc\n"), 0644); err != nil {
			t.Fatalf("failed to write fixture: %v", err)
		}

		envs, validation, err := ImportFile(reg, path)
		if err != nil {
			t.Fatalf("ImportFile returned error: %v", err)
		}
		if !validation.Valid {
			t.Errorf("validation = %+v", validation)
		}
		if len(envs) != 1 || envs[0].Name != "staging" || envs[0].DisplayName != "staging" {
			t.Errorf("envs = %+v, want name derived from file stem", envs)
		}
		if envs[0].Variables["API_URL"] != "https://staging.example.com" {
			t.Errorf("variables = %#v", envs[0].Variables)
		}
	})

	t.Run("postman file keeps parsed names", func(t *testing.T) {
		path := filepath.Join(tmpDir, "export.json")
		content := `{"name": "Dev", "values": [{"key": "a", "value": "1"}], "_postman_variable_scope": "environment"}`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write fixture: %v", err)
		}

		envs, _, err := ImportFile(reg, path)
		if err != nil {
			t.Fatalf("ImportFile returned error: %v", err)
		}
		if envs[0].Name != "dev" || envs[0].DisplayName != "Dev" {
			t.Errorf("envs = %+v, names must come from the parser, not the file", envs)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, _, err := ImportFile(reg, filepath.Join(tmpDir, "nope.json")); err == nil {
			t.Fatal("expected error for missing file")
		}
	})
}

func TestExportFile(t *testing.T) {
	reg := format.NewRegistry()
	tmpDir := t.TempDir()

	strategy, _ := reg.Get("dotenv")
	envs := []env.Environment{{Name: "dev", DisplayName: "Dev", Variables: map[string]string{"A": "1"}}}

	path := filepath.Join(tmpDir, "out")
	if err := ExportFile(strategy, envs, path); err != nil {
		t.Fatalf("ExportFile returned error: %v", err)
	}

	data, err := os.ReadFile(path + ".env")
	if err != nil {
		t.Fatalf("expected extension to be appended: %v", err)
	}

	parsed, err := strategy.Parse(string(data))
	if err != nil {
		t.Fatalf("exported file did not reimport: %v", err)
	}
	if parsed[0].Variables["A"] != "1" {
		t.Errorf("variables = %#v", parsed[0].Variables)
	}
}

func TestSubstituteVariables(t *testing.T) {
	vars := map[string]string{"HOST": "api.example.com", "TOKEN": "abc"}

	tests := []struct {
		name string
		text string
		want string
	}{
		{"simple substitution", "https://{{HOST}}/users", "https://api.example.com/users"},
		{"multiple placeholders", "{{HOST}}:{{TOKEN}}", "api.example.com:abc"},
		{"unknown variable kept verbatim", "https://{{MISSING}}/x", "https://{{MISSING}}/x"},
		{"whitespace inside braces", "{{ HOST }}", "api.example.com"},
		{"no placeholders", "plain text", "plain text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SubstituteVariables(tt.text, vars); got != tt.want {
				t.Errorf("SubstituteVariables(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestSubstituteVariables_SystemEnv(t *testing.T) {
	t.Setenv("CURLEW_TEST_VAR", "from-system")

	if got := SubstituteVariables("{{env:CURLEW_TEST_VAR}}", nil); got != "from-system" {
		t.Errorf("got %q, want system environment value", got)
	}
	if got := SubstituteVariables("{{env:CURLEW_TEST_UNSET_VAR}}", nil); got != "{{env:CURLEW_TEST_UNSET_VAR}}" {
		t.Errorf("unset system variable should be kept verbatim, got %q", got)
	}
}

func TestApplyEnvironment(t *testing.T) {
	e := env.Environment{
		Name:      "dev",
		Variables: map[string]string{"HOST": "api.example.com", "TOKEN": "abc"},
	}
	req := &curl.Request{
		Method:  "POST",
		URL:     "https://{{HOST}}/users",
		Headers: map[string]string{"X-Token": "{{TOKEN}}"},
		Body:    `{"host": "{{HOST}}"}`,
		QueryParams: []curl.QueryParam{
			{Key: "token", Value: "{{TOKEN}}", Enabled: true},
		},
		Auth: curl.Auth{Type: curl.AuthNone},
	}

	applied := ApplyEnvironment(req, e)

	if applied.URL != "https://api.example.com/users" {
		t.Errorf("url = %q", applied.URL)
	}
	if applied.Headers["X-Token"] != "abc" {
		t.Errorf("header = %q", applied.Headers["X-Token"])
	}
	if applied.Body != `{"host": "api.example.com"}` {
		t.Errorf("body = %q", applied.Body)
	}
	if applied.QueryParams[0].Value != "abc" {
		t.Errorf("query value = %q", applied.QueryParams[0].Value)
	}

	// Input request is never mutated.
	if req.URL != "https://{{HOST}}/users" || req.Headers["X-Token"] != "{{TOKEN}}" {
		t.Error("ApplyEnvironment mutated its input")
	}
}
