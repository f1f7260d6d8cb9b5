package ast

import "chai/internal/source"

// Unit is the parser's output for one source file, per spec.md §6: a list
// of top-level declarations plus a sticky HasError flag. There is no
// on-disk format for a Unit — it only ever exists in memory.
type Unit struct {
	File    source.FileID
	Arena   *Arena
	Decls   []Decl
	HasErr  bool
}

// NewUnit creates an empty unit with a fresh arena rooted at the given
// file.
func NewUnit(file source.FileID) *Unit {
	return &Unit{File: file, Arena: NewArena()}
}
