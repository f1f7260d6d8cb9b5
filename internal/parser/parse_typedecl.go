package parser

import (
	"chai/internal/ast"
	"chai/internal/source"
	"chai/internal/token"
)

// parseTypeDecl parses the shared head `(type|view) NAME genericClause?
// inheritanceList?` and then dispatches per spec.md §4.D: `{`→product-type
// or view body; `= sign`→alias; `where …`→abstract-type requirement set.
// isView selects between `type` and `view` at the call site in parse_decl.go.
//
// The generic clause's parameters must be visible to everything that
// follows (the alias target, the abstract requirement set, or the body),
// but which concrete declaration owns that scope isn't known until after
// the clause is parsed. So the declaration space is created unowned up
// front and patched via ast.Arena.SetSpaceOwner once the concrete decl
// exists.
func (s *State) parseTypeDecl(mods ast.Modifiers, isView bool) ast.Decl {
	start := s.errorRange()
	s.take() // 'type' or 'view'

	nameTok := s.takeKind(token.Name)
	name := nameTok.Value

	if isView && s.gotKind(token.LAngle) {
		s.failAt(nameTok.Range, "a view may not declare its own generic clause; use an abstract associated type instead")
	}

	outerParent := s.parent
	space := s.arena.NewSpace(outerParent, ast.NoOwnerDecl)

	var result ast.Decl
	s.withSpace(space, func() {
		var generic *ast.GenericClause
		if s.gotKind(token.LAngle) {
			generic = s.parseGenericClause()
		}

		switch {
		case s.gotKind(token.Assign):
			if isView {
				s.failAt(start, "a view cannot be declared as a type alias")
			}
			s.take()
			target := s.parseTypeSig()

			d := &ast.AliasTypeDecl{DeclBase: ast.DeclBase{Base: ast.NewBase(start)}, Name: name, Generic: generic, Target: target}
			id := s.arena.AddDecl(outerParent, d)
			s.arena.SetSpaceOwner(space, id)
			d.Base = ast.NewBaseOver(start, s.priorRange(start))
			s.semiOrRecover()
			result = d

		case s.gotKind(token.KwWhere):
			if generic != nil {
				s.failAt(start, "an abstract type requirement set cannot also declare a generic clause")
			}
			s.take()
			var constraints []ast.TypeSig
			for {
				constraints = append(constraints, s.parseTypeSig())
				if s.gotKind(token.Comma) {
					s.take()
					continue
				}
				break
			}

			d := &ast.AbstractTypeDecl{DeclBase: ast.DeclBase{Base: ast.NewBase(start)}, Name: name, Constraints: constraints}
			id := s.arena.AddDecl(outerParent, d)
			s.arena.SetSpaceOwner(space, id)
			d.Base = ast.NewBaseOver(start, s.priorRange(start))
			s.semiOrRecover()
			result = d

		default:
			var inherits []ast.TypeSig
			if s.gotKind(token.Colon) {
				inherits = s.parseInheritanceList()
			}
			result = s.parseTypeBody(mods, start, name, isView, generic, inherits, outerParent, space)
		}
	})

	return result
}

func (s *State) parseInheritanceList() []ast.TypeSig {
	s.take() // ':'
	var sigs []ast.TypeSig
	for {
		sigs = append(sigs, s.parseTypeSig())
		if s.gotKind(token.Comma) {
			s.take()
			continue
		}
		break
	}
	return sigs
}

// parseTypeBody parses `'{' member* '}'` for a product type or a view,
// reusing the declaration space already opened by the caller for the
// generic clause. Per spec.md §4.D: view bodies forbid nested non-abstract
// types, product bodies forbid abstract types.
func (s *State) parseTypeBody(mods ast.Modifiers, start source.Range, name string, isView bool, generic *ast.GenericClause, inherits []ast.TypeSig, outerParent ast.DeclSpaceID, space ast.DeclSpaceID) ast.Decl {
	if isView {
		d := &ast.ViewTypeDecl{DeclBase: ast.DeclBase{Base: ast.NewBase(start)}, Modifiers: mods, Name: name, Inherits: inherits, OwnedSpace: space}
		id := s.arena.AddDecl(outerParent, d)
		s.arena.SetSpaceOwner(space, id)

		prevFlag, prevTop := s.flags.parsingViewBody, s.flags.parsingTopLevel
		s.flags.parsingViewBody = true
		s.flags.parsingTopLevel = false
		d.Members = s.parseMemberList(func(m ast.Decl) {
			switch m.(type) {
			case *ast.AbstractTypeDecl, *ast.FuncDecl:
			default:
				s.failAt(m.Range(), "a view body may only contain abstract type requirements and function requirements")
			}
		})
		s.flags.parsingViewBody = prevFlag
		s.flags.parsingTopLevel = prevTop

		d.Base = ast.NewBaseOver(start, s.priorRange(start))
		return d
	}

	d := &ast.ProductTypeDecl{DeclBase: ast.DeclBase{Base: ast.NewBase(start)}, Modifiers: mods, Name: name, Generic: generic, Inherits: inherits, OwnedSpace: space}
	id := s.arena.AddDecl(outerParent, d)
	s.arena.SetSpaceOwner(space, id)

	prevFlag, prevTop := s.flags.parsingProdBody, s.flags.parsingTopLevel
	s.flags.parsingProdBody = true
	s.flags.parsingTopLevel = false
	d.Members = s.parseMemberList(func(m ast.Decl) {
		if _, ok := m.(*ast.AbstractTypeDecl); ok {
			s.failAt(m.Range(), "abstract type requirements are only legal inside a view body")
		}
	})
	s.flags.parsingProdBody = prevFlag
	s.flags.parsingTopLevel = prevTop

	d.Base = ast.NewBaseOver(start, s.priorRange(start))
	return d
}

// parseMemberList parses `'{' decl* '}'`, calling check on each parsed
// member for body-specific legality rules.
func (s *State) parseMemberList(check func(ast.Decl)) []ast.Decl {
	s.takeKind(token.LBrace)

	var members []ast.Decl
	for !s.gotOneOf(token.RBrace, token.EOF) {
		if s.gotKind(token.Semi) {
			s.take()
			continue
		}

		m := s.parseDecl()
		if m != nil {
			check(m)
			members = append(members, m)
		}
	}

	s.expectListEnd(token.RBrace)
	return members
}

// parseExtnDecl parses `extn genericClause? sign '{' member* '}'`. Per
// spec.md §4.D, extensions (like views) must appear at top level; the
// caller has already warned if that is not the case.
func (s *State) parseExtnDecl(mods ast.Modifiers) ast.Decl {
	start := s.errorRange()
	s.take() // 'extn'

	d := &ast.ExtnDecl{DeclBase: ast.DeclBase{Base: ast.NewBase(start)}}
	id := s.arena.AddDecl(s.parent, d)
	space := s.newOwnedSpace(id)
	d.OwnedSpace = space

	s.withSpace(space, func() {
		d.Generic = s.parseGenericClause()
		d.Target = s.parseTypeSig()

		prevFlag, prevTop := s.flags.parsingExtnBody, s.flags.parsingTopLevel
		s.flags.parsingExtnBody = true
		s.flags.parsingTopLevel = false
		d.Members = s.parseMemberList(func(m ast.Decl) {
			if _, ok := m.(*ast.AbstractTypeDecl); ok {
				s.failAt(m.Range(), "abstract type requirements are only legal inside a view body")
			}
		})
		s.flags.parsingExtnBody = prevFlag
		s.flags.parsingTopLevel = prevTop
	})

	d.Base = ast.NewBaseOver(start, s.priorRange(start))
	return d
}
