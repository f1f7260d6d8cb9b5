package depm

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, contents string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, ModuleFileName), []byte(contents), 0o644); err != nil {
		t.Fatalf("writing manifest: %v", err)
	}
}

func TestLoadModuleValid(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `name = "demo"
chai-version = "0.1.0"
caching = true
`)

	mod, err := LoadModule(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mod.Name != "demo" {
		t.Fatalf("expected name demo, got %s", mod.Name)
	}
	if !mod.ShouldCache {
		t.Fatalf("expected caching to be true")
	}
	if mod.AbsPath != dir {
		t.Fatalf("expected abspath %s, got %s", dir, mod.AbsPath)
	}
}

func TestLoadModuleMissingName(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `chai-version = "0.1.0"`)

	if _, err := LoadModule(dir); err == nil {
		t.Fatalf("expected error for missing name")
	}
}

func TestLoadModuleInvalidName(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `name = "123bad"`)

	if _, err := LoadModule(dir); err == nil {
		t.Fatalf("expected error for invalid identifier name")
	}
}

func TestLoadModuleMissingFile(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadModule(dir); err == nil {
		t.Fatalf("expected error for missing manifest file")
	}
}

func TestGenerateIDStable(t *testing.T) {
	a := GenerateID("/some/path")
	b := GenerateID("/some/path")
	if a != b {
		t.Fatalf("expected stable id for the same path")
	}

	c := GenerateID("/some/other/path")
	if a == c {
		t.Fatalf("expected distinct ids for distinct paths")
	}
}

func TestIsValidIdentifier(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"demo", true},
		{"_demo", true},
		{"demo2", true},
		{"2demo", false},
		{"", false},
		{"de-mo", false},
	}

	for _, c := range cases {
		if got := IsValidIdentifier(c.in); got != c.want {
			t.Errorf("IsValidIdentifier(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestPackageFiles(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `name = "demo"`)

	for _, name := range []string{"a.chai", "b.chai", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(""), 0o644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatalf("mkdir sub: %v", err)
	}

	files, err := PackageFiles(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 source files, got %d: %v", len(files), files)
	}
}
