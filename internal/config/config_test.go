package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInitialize(t *testing.T) {
	if err := Initialize(); err != nil {
		t.Fatalf("Initialize() returned error: %v", err)
	}
	if v == nil {
		t.Fatal("viper instance is nil after Initialize()")
	}
}

func TestDefaults(t *testing.T) {
	if err := Initialize(); err != nil {
		t.Fatalf("Initialize() returned error: %v", err)
	}

	tests := []struct {
		key      string
		expected interface{}
		getter   func(string) interface{}
	}{
		{"json", false, func(k string) interface{} { return GetBool(k) }},
		{"quiet", false, func(k string) interface{} { return GetBool(k) }},
		{"verbose", false, func(k string) interface{} { return GetBool(k) }},
		{"constitution-dir", "constitution", func(k string) interface{} { return GetString(k) }},
		{"project-dir", "dna", func(k string) interface{} { return GetString(k) }},
		{"frontier-top", 10, func(k string) interface{} { return GetInt(k) }},
		{"editor", "", func(k string) interface{} { return GetString(k) }},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := tt.getter(tt.key); got != tt.expected {
				t.Errorf("GetXXX(%q) = %v, want %v", tt.key, got, tt.expected)
			}
		})
	}
}

func TestEnvironmentBinding(t *testing.T) {
	tests := []struct {
		envVar   string
		key      string
		value    string
		expected interface{}
		getter   func(string) interface{}
	}{
		{"DNA_JSON", "json", "true", true, func(k string) interface{} { return GetBool(k) }},
		{"DNA_QUIET", "quiet", "true", true, func(k string) interface{} { return GetBool(k) }},
		{"DNA_PROJECT_DIR", "project-dir", "decisions", "decisions", func(k string) interface{} { return GetString(k) }},
		{"DNA_FRONTIER_TOP", "frontier-top", "8", 8, func(k string) interface{} { return GetInt(k) }},
	}

	for _, tt := range tests {
		t.Run(tt.envVar, func(t *testing.T) {
			old := os.Getenv(tt.envVar)
			_ = os.Setenv(tt.envVar, tt.value)
			defer os.Setenv(tt.envVar, old)

			if err := Initialize(); err != nil {
				t.Fatalf("Initialize() returned error: %v", err)
			}

			if got := tt.getter(tt.key); got != tt.expected {
				t.Errorf("GetXXX(%q) with %s=%s = %v, want %v", tt.key, tt.envVar, tt.value, got, tt.expected)
			}
		})
	}
}

func TestConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	dnaDir := filepath.Join(tmpDir, ".dna")
	if err := os.MkdirAll(dnaDir, 0750); err != nil {
		t.Fatalf("failed to create .dna directory: %v", err)
	}

	configContent := `
json: true
project-dir: records
frontier-top: 3
`
	if err := os.WriteFile(filepath.Join(dnaDir, "config.yaml"), []byte(configContent), 0600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	t.Chdir(tmpDir)

	if err := Initialize(); err != nil {
		t.Fatalf("Initialize() returned error: %v", err)
	}

	if got := GetBool("json"); got != true {
		t.Errorf("GetBool(json) = %v, want true", got)
	}
	if got := GetString("project-dir"); got != "records" {
		t.Errorf("GetString(project-dir) = %q, want \"records\"", got)
	}
	if got := GetInt("frontier-top"); got != 3 {
		t.Errorf("GetInt(frontier-top) = %v, want 3", got)
	}
}

func TestConfigPrecedence(t *testing.T) {
	tmpDir := t.TempDir()
	dnaDir := filepath.Join(tmpDir, ".dna")
	if err := os.MkdirAll(dnaDir, 0750); err != nil {
		t.Fatalf("failed to create .dna directory: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dnaDir, "config.yaml"), []byte("json: false"), 0600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	t.Chdir(tmpDir)

	if err := Initialize(); err != nil {
		t.Fatalf("Initialize() returned error: %v", err)
	}
	if got := GetBool("json"); got != false {
		t.Errorf("GetBool(json) from config file = %v, want false", got)
	}

	// Environment variable overrides config file.
	_ = os.Setenv("DNA_JSON", "true")
	defer func() { _ = os.Unsetenv("DNA_JSON") }()

	if err := Initialize(); err != nil {
		t.Fatalf("Initialize() returned error: %v", err)
	}
	if got := GetBool("json"); got != true {
		t.Errorf("GetBool(json) with env var = %v, want true", got)
	}
}

func TestSetAndGet(t *testing.T) {
	if err := Initialize(); err != nil {
		t.Fatalf("Initialize() returned error: %v", err)
	}

	Set("test-key", "test-value")
	if got := GetString("test-key"); got != "test-value" {
		t.Errorf("GetString(test-key) = %q, want \"test-value\"", got)
	}
}

func TestNilSafety(t *testing.T) {
	saved := v
	v = nil
	defer func() { v = saved }()

	if got := GetString("json"); got != "" {
		t.Errorf("GetString with nil viper = %q, want empty", got)
	}
	if got := GetBool("json"); got != false {
		t.Errorf("GetBool with nil viper = %v, want false", got)
	}
	if got := GetInt("frontier-top"); got != 0 {
		t.Errorf("GetInt with nil viper = %v, want 0", got)
	}
	Set("json", true) // must not panic
	if got := AllSettings(); got != nil {
		t.Errorf("AllSettings with nil viper = %v, want nil", got)
	}
}
