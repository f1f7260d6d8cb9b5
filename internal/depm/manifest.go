// Package depm loads a compilation unit's module manifest and discovers the
// source files it owns, generalizing the teacher's `depm.LoadModule`/
// `ChaiModule` into the package/file structure this front-end's driver walks
// before handing files to the lexer/parser.
package depm

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"
)

// ModuleFileName is the manifest file a module root must contain.
const ModuleFileName = "chai-mod.toml"

// SourceExt is the file extension a source file must carry to be picked up
// by PackageFiles.
const SourceExt = ".chai"

// tomlManifest mirrors the manifest's on-disk TOML shape.
type tomlManifest struct {
	Name     string `toml:"name"`
	Version  string `toml:"chai-version"`
	Caching  bool   `toml:"caching"`
}

// Module is a loaded module manifest together with the absolute path of the
// directory it roots.
type Module struct {
	ID      uint64
	Name    string
	AbsPath string

	ShouldCache bool
}

// LoadModule reads and validates the manifest at abspath/chai-mod.toml.
func LoadModule(abspath string) (*Module, error) {
	f, err := os.Open(filepath.Join(abspath, ModuleFileName))
	if err != nil {
		return nil, fmt.Errorf("depm: unable to open module file in %q: %w", abspath, err)
	}
	defer f.Close()

	buf, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("depm: error reading module file in %q: %w", abspath, err)
	}

	var tm tomlManifest
	if err := toml.Unmarshal(buf, &tm); err != nil {
		return nil, fmt.Errorf("depm: error parsing module file in %q: %w", abspath, err)
	}

	if tm.Name == "" {
		return nil, fmt.Errorf("depm: module file in %q is missing a name", abspath)
	}
	if !IsValidIdentifier(tm.Name) {
		return nil, fmt.Errorf("depm: module name %q must be a valid identifier", tm.Name)
	}

	return &Module{
		ID:          GenerateID(abspath),
		Name:        tm.Name,
		AbsPath:     abspath,
		ShouldCache: tm.Caching,
	}, nil
}

// PackageFiles walks dir (non-recursively, matching the teacher's one-
// package-per-directory layout) and returns the absolute paths of every
// source file it contains.
func PackageFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("depm: unable to read package directory %q: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), SourceExt) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}

	return files, nil
}
