package depm

import (
	"chai/internal/ast"
	"chai/internal/source"
)

// Package is a module's root package loaded into memory: its source files
// registered with a source.Manager, ready to be handed to the lexer/parser.
type Package struct {
	Module *Module

	Files []*PackageFile
}

// PackageFile pairs a loaded source file with the declaration space the
// parser will populate for it.
type PackageFile struct {
	Src   *source.File
	Space ast.DeclSpaceID
}

// LoadPackage loads every source file PackageFiles finds under mod's root
// directory into mgr, without parsing them — parsing is the driver's job,
// once it has a DeclSpace arena to parse into.
func LoadPackage(mod *Module, mgr *source.Manager) (*Package, error) {
	paths, err := PackageFiles(mod.AbsPath)
	if err != nil {
		return nil, err
	}

	pkg := &Package{Module: mod}
	for _, path := range paths {
		f, err := mgr.Load(path)
		if err != nil {
			return nil, err
		}
		pkg.Files = append(pkg.Files, &PackageFile{Src: f})
	}

	return pkg, nil
}
