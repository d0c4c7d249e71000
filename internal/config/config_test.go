package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"primer/internal/lesson"
)

// TestLoadDefaults verifies a missing config yields defaults rooted at root.
func TestLoadDefaults(t *testing.T) {
	root := t.TempDir()
	cfg, err := Load("", root)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LessonsDir != filepath.Join(root, "lessons") {
		t.Fatalf("unexpected lessons dir %q", cfg.LessonsDir)
	}
	if cfg.Store != "file" || cfg.PassThreshold != 70 || cfg.UI != "auto" || !cfg.HistoryEnabled() {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

// TestLoadFile verifies values are read and paths resolve against the project root.
func TestLoadFile(t *testing.T) {
	root := t.TempDir()
	path := ConfigPath(root)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	payload := `lessons_dir: content
store: SQLite
history: false
pass_threshold: 80
log_format: json
`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path, "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LessonsDir != filepath.Join(root, "content") {
		t.Fatalf("unexpected lessons dir %q", cfg.LessonsDir)
	}
	if cfg.Store != "sqlite" || cfg.PassThreshold != 80 || cfg.HistoryEnabled() || cfg.LogFormat != "json" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

// TestLoadRejectsInvalidValues verifies every problem is listed.
func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	payload := `store: redis
pass_threshold: 140
ui: fancy
log_level: loud
`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, err := Load(path, "")
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(validationErr.Issues) != 4 {
		t.Fatalf("expected 4 issues, got %+v", validationErr.Issues)
	}
}

// TestParseRejectsUnknownFields verifies strict decoding.
func TestParseRejectsUnknownFields(t *testing.T) {
	if _, err := Parse([]byte("theme: dark\n")); err == nil {
		t.Fatalf("expected unknown field error")
	}
	if _, err := Parse([]byte("")); err != nil {
		t.Fatalf("expected empty config to parse, got %v", err)
	}
}

// TestFindConfigPath verifies upward discovery and the not-found case.
func TestFindConfigPath(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	found, err := FindConfigPath(nested)
	if err != nil || found != "" {
		t.Fatalf("expected no config, got %q (%v)", found, err)
	}
	if _, err := Scaffold(root); err != nil {
		t.Fatalf("scaffold: %v", err)
	}
	found, err = FindConfigPath(nested)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	want, _ := filepath.EvalSymlinks(ConfigPath(root))
	got, _ := filepath.EvalSymlinks(found)
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

// TestScaffoldWritesLoadableFiles verifies init output is valid and never overwritten.
func TestScaffoldWritesLoadableFiles(t *testing.T) {
	root := t.TempDir()
	written, err := Scaffold(root)
	if err != nil {
		t.Fatalf("scaffold: %v", err)
	}
	if len(written) != 2 {
		t.Fatalf("expected 2 files, got %v", written)
	}
	cfg, err := Load(ConfigPath(root), "")
	if err != nil {
		t.Fatalf("load scaffolded config: %v", err)
	}
	catalog, err := lesson.LoadCatalog(cfg.LessonsDir)
	if err != nil {
		t.Fatalf("load scaffolded lessons: %v", err)
	}
	if catalog.Len() != 1 {
		t.Fatalf("expected one sample module, got %d", catalog.Len())
	}
	if _, err := Scaffold(root); err == nil {
		t.Fatalf("expected second scaffold to fail")
	}
}
