package ast

import (
	"testing"

	"chai/internal/source"
)

func TestNewBaseOverSpansBothRanges(t *testing.T) {
	a := source.Range{File: 0, Start: 0, End: 3}
	b := source.Range{File: 0, Start: 10, End: 14}

	base := NewBaseOver(a, b)
	if base.Range().Start != 0 || base.Range().End != 14 {
		t.Fatalf("expected the base's range to span [0, 14), got [%d, %d)", base.Range().Start, base.Range().End)
	}
}

func TestArenaAddDeclAssignsIDAndSpace(t *testing.T) {
	a := NewArena()
	d := &PatternBindingDecl{}

	id := a.AddDecl(a.RootSpace(), d)
	if d.ID() != id {
		t.Fatalf("expected AddDecl to set the decl's own ID")
	}
	if d.Space() != a.RootSpace() {
		t.Fatalf("expected AddDecl to record the decl's owning space")
	}
	if a.Decl(id) != d {
		t.Fatalf("expected Arena.Decl to resolve back to the same decl")
	}

	space := a.Space(a.RootSpace())
	if len(space.Decls) != 1 || space.Decls[0] != id {
		t.Fatalf("expected the root space to list the new decl, got %v", space.Decls)
	}
}

func TestArenaNewSpaceTracksParentAndOwner(t *testing.T) {
	a := NewArena()
	owner := &FuncDecl{}
	ownerID := a.AddDecl(a.RootSpace(), owner)

	child := a.NewSpace(a.RootSpace(), ownerID)
	space := a.Space(child)

	if space.Parent != a.RootSpace() {
		t.Fatalf("expected the child space's parent to be the root space")
	}
	if space.OwnerDecl != ownerID {
		t.Fatalf("expected the child space's owner to be the declaration that introduced it")
	}
}

func TestSetSpaceOwnerPatchesBackPointer(t *testing.T) {
	a := NewArena()
	space := a.NewSpace(a.RootSpace(), NoOwnerDecl)

	d := &ProductTypeDecl{}
	id := a.AddDecl(a.RootSpace(), d)
	a.SetSpaceOwner(space, id)

	if a.Space(space).OwnerDecl != id {
		t.Fatalf("expected SetSpaceOwner to retroactively attach the space to its owner")
	}
}
