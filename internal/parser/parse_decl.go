package parser

import (
	"chai/internal/ast"
	"chai/internal/token"
)

// parseDecl dispatches on the next keyword to parse one declaration, per
// spec.md §4.D: `val`/`var`→binding, `fun`/`new`/`del`→function/ctor/dtor,
// `type`/`view`→type, `extn`→extension.
func (s *State) parseDecl() ast.Decl {
	mods := s.parseModifiers()

	switch s.tok.Kind {
	case token.KwVal, token.KwVar:
		return s.parsePatternBindingDecl(mods)
	case token.KwFun:
		return s.parseFuncDecl(mods)
	case token.KwNew:
		return s.parseCtorDecl(mods)
	case token.KwDel:
		return s.parseDtorDecl(mods)
	case token.KwType:
		if !s.flags.parsingTopLevel && !s.flags.parsingProdBody && !s.flags.parsingExtnBody {
			s.warn(s.errorRange(), "type declaration is not legal in this context")
		}
		return s.parseTypeDecl(mods, false)
	case token.KwView:
		if !s.flags.parsingTopLevel {
			s.warn(s.errorRange(), "view declarations must appear at top level")
		}
		return s.parseTypeDecl(mods, true)
	case token.KwExtn:
		if !s.flags.parsingTopLevel {
			s.warn(s.errorRange(), "extensions must appear at top level")
		}
		return s.parseExtnDecl(mods)
	default:
		s.fail("expected a declaration, got %s", s.describeTok(s.tok))
		return nil
	}
}

// -----------------------------------------------------------------------------
// Modifiers

// modifierSlot identifies one of the mutually exclusive modifier groups a
// keyword belongs to, for exclusivity checking.
type modifierSlot int

const (
	slotPubMod modifierSlot = iota
	slotFixity
	slotOther
)

// parseModifiers consumes zero or more modifier keywords, enforcing the
// exclusivity and context rules of spec.md §4.D.
func (s *State) parseModifiers() ast.Modifiers {
	var mods ast.Modifiers
	var sawPubMod, sawFixity bool

	for {
		switch s.tok.Kind {
		case token.KwPub:
			s.checkSlotOnce(slotPubMod, &sawPubMod, "`pub`/`mod`")
			mods.Pub = true
			s.take()
		case token.KwMod:
			s.checkSlotOnce(slotPubMod, &sawPubMod, "`pub`/`mod`")
			mods.Mod = true
			s.take()
		case token.KwMut:
			if mods.Mut {
				s.fail("duplicate `mut` modifier")
			}
			mods.Mut = true
			s.take()
		case token.KwInfix:
			s.checkSlotOnce(slotFixity, &sawFixity, "`infix`/`prefix`/`postfix`")
			mods.Infix = true
			s.take()
		case token.KwPrefix:
			s.checkSlotOnce(slotFixity, &sawFixity, "`infix`/`prefix`/`postfix`")
			mods.Prefix = true
			s.take()
		case token.KwPostfix:
			s.checkSlotOnce(slotFixity, &sawFixity, "`infix`/`prefix`/`postfix`")
			mods.Postfix = true
			s.take()
		case token.KwVolatile:
			if mods.Volatile {
				s.fail("duplicate `volatile` modifier")
			}
			mods.Volatile = true
			s.take()
		case token.KwStatic:
			if !s.flags.parsingProdBody && !s.flags.parsingViewBody {
				s.fail("`static` is only legal inside a type body")
			}
			mods.Static = true
			s.take()
		case token.KwMoveonly:
			if mods.Moveonly {
				s.fail("duplicate `moveonly` modifier")
			}
			mods.Moveonly = true
			s.take()
		default:
			return mods
		}
	}
}

func (s *State) checkSlotOnce(slot modifierSlot, seen *bool, groupDesc string) {
	if *seen {
		s.fail("%s are mutually exclusive", groupDesc)
	}
	*seen = true
}

// -----------------------------------------------------------------------------
// Pattern-binding declarations: `(val | var) pattern [':' sign] ['=' expr] ';'`

func (s *State) parsePatternBindingDecl(mods ast.Modifiers) ast.Decl {
	isVar := s.tok.Kind == token.KwVar
	start := s.errorRange()
	s.take()

	d := &ast.PatternBindingDecl{DeclBase: ast.DeclBase{Base: ast.NewBase(start)}, IsVar: isVar}
	id := s.arena.AddDecl(s.parent, d)

	d.Patt = s.parsePattern(id)

	if s.gotKind(token.Colon) {
		s.take()
		d.Sig = s.parseTypeSig()
	}

	if s.gotKind(token.Assign) {
		s.take()
		d.Init = s.parseExpr()
	} else if !isVar {
		s.fail("`val` declaration requires an initializer")
	}

	s.semiOrRecover()
	return d
}

// semiOrRecover consumes a trailing `;` if present. A missing terminator is
// tolerated (EOF/`}` act as an implicit terminator) rather than raised,
// matching the teacher's permissive statement-separator handling.
func (s *State) semiOrRecover() {
	if s.gotKind(token.Semi) {
		s.take()
	}
}
