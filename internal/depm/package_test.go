package depm

import (
	"os"
	"path/filepath"
	"testing"

	"chai/internal/source"
)

func TestLoadPackage(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `name = "demo"`)
	for _, name := range []string{"a.chai", "b.chai"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("fun main() {}"), 0o644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}

	mod, err := LoadModule(dir)
	if err != nil {
		t.Fatalf("LoadModule: %v", err)
	}

	mgr := source.NewManager()
	pkg, err := LoadPackage(mod, mgr)
	if err != nil {
		t.Fatalf("LoadPackage: %v", err)
	}

	if len(pkg.Files) != 2 {
		t.Fatalf("expected 2 loaded files, got %d", len(pkg.Files))
	}
	if pkg.Module != mod {
		t.Fatalf("expected package to reference the loaded module")
	}
}
