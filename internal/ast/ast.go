// Package ast defines the AST node families of spec.md §3: Declaration,
// Statement, Expression, Pattern, and TypeSignature, each as a sum type
// (a Go interface implemented by one struct per variant, in the teacher's
// ASTBase-plus-interface idiom).
package ast

import (
	"chai/internal/source"
	"chai/internal/types"
)

// DeclID is the stable, arena-wide identity of one declaration. Variable
// decls bound inside a pattern reference their owning pattern-binding decl
// by DeclID rather than by pointer, per spec.md §9.
type DeclID int

// DeclSpaceID is the arena index of one declaration space: a scope that may
// contain declarations. Declaration spaces form a tree rooted at the source
// unit, per the Glossary.
type DeclSpaceID int

// NoDeclSpace is the sentinel parent of the root declaration space.
const NoDeclSpace DeclSpaceID = -1

// DeclSpace is one node of the declaration-space tree. OwnerDecl, when
// valid, is the declaration whose body introduced this space (a function
// body, a product/view/extn body) — the invariant spec.md §8 tests is that
// that body's ParentSpace resolves back to OwnerDecl.
type DeclSpace struct {
	ID        DeclSpaceID
	Parent    DeclSpaceID
	OwnerDecl DeclID // -1 if this space has no single owning declaration (e.g. file root)
	Decls     []DeclID
}

// NoOwnerDecl is the sentinel for a DeclSpace with no single owning decl.
const NoOwnerDecl DeclID = -1

// Arena owns every declaration space and declaration produced while parsing
// one source unit. Nodes reference one another by DeclID/DeclSpaceID,
// never by raw pointer, per spec.md §3's ownership rule.
type Arena struct {
	spaces []*DeclSpace
	decls  []Decl
}

// NewArena creates an arena with a single root declaration space.
func NewArena() *Arena {
	a := &Arena{}
	a.spaces = append(a.spaces, &DeclSpace{ID: 0, Parent: NoDeclSpace, OwnerDecl: NoOwnerDecl})
	return a
}

// RootSpace returns the arena's root declaration space.
func (a *Arena) RootSpace() DeclSpaceID { return 0 }

// NewSpace creates a new declaration space as a child of parent, optionally
// owned by a declaration (pass NoOwnerDecl for an unowned space such as a
// match-case body).
func (a *Arena) NewSpace(parent DeclSpaceID, owner DeclID) DeclSpaceID {
	id := DeclSpaceID(len(a.spaces))
	a.spaces = append(a.spaces, &DeclSpace{ID: id, Parent: parent, OwnerDecl: owner})
	return id
}

// Space resolves a DeclSpaceID to its DeclSpace.
func (a *Arena) Space(id DeclSpaceID) *DeclSpace { return a.spaces[id] }

// SetSpaceOwner retroactively attaches a space to the declaration it turned
// out to belong to. Some declarations (e.g. a type's generic clause) must
// be parsed inside their own body's declaration space before the parser
// knows which concrete declaration that space belongs to; this patches the
// back-pointer once the declaration has been constructed.
func (a *Arena) SetSpaceOwner(space DeclSpaceID, owner DeclID) {
	a.spaces[space].OwnerDecl = owner
}

// AddDecl registers a declaration within a space, assigning it a DeclID.
func (a *Arena) AddDecl(space DeclSpaceID, d Decl) DeclID {
	id := DeclID(len(a.decls))
	a.decls = append(a.decls, d)
	a.spaces[space].Decls = append(a.spaces[space].Decls, id)
	d.setID(id)
	d.setSpace(space)
	return id
}

// Decl resolves a DeclID to its declaration.
func (a *Arena) Decl(id DeclID) Decl { return a.decls[id] }

// -----------------------------------------------------------------------------

// Node is the root interface implemented by every AST node.
type Node interface {
	Range() source.Range
	Type() types.Type
	SetType(types.Type)
}

// Base is embedded by every concrete node; it carries the node's source
// range and (after type-checking) its type slot, per spec.md §3's "Every
// AST node carries a source range and (after type-check) a type slot."
type Base struct {
	rng source.Range
	typ types.Type
}

// NewBase creates a node base over the given range with an unresolved
// ("nil") type slot.
func NewBase(rng source.Range) Base { return Base{rng: rng} }

// NewBaseOver creates a node base spanning two ranges.
func NewBaseOver(a, b source.Range) Base { return Base{rng: source.Over(a, b)} }

// SpanRange returns the range spanning two nodes, in the order given.
func SpanRange(a, b Node) source.Range { return source.Over(a.Range(), b.Range()) }

func (b *Base) Range() source.Range   { return b.rng }
func (b *Base) Type() types.Type      { return b.typ }
func (b *Base) SetType(t types.Type)  { b.typ = t }

// -----------------------------------------------------------------------------

// Decl is the sum type for declarations (spec.md §3's "Declaration"
// family).
type Decl interface {
	Node
	ID() DeclID
	Space() DeclSpaceID // the declaration space this decl was declared in

	setID(DeclID)
	setSpace(DeclSpaceID)
}

// DeclBase is embedded by every concrete declaration.
type DeclBase struct {
	Base
	id    DeclID
	space DeclSpaceID
}

func (d *DeclBase) ID() DeclID           { return d.id }
func (d *DeclBase) Space() DeclSpaceID   { return d.space }
func (d *DeclBase) setID(id DeclID)      { d.id = id }
func (d *DeclBase) setSpace(s DeclSpaceID) { d.space = s }
