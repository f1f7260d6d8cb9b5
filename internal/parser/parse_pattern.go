package parser

import (
	"chai/internal/ast"
	"chai/internal/token"
)

// parsePattern parses a pattern per spec.md §3/§4.D: named, binding,
// tuple, or wildcard. owner is the DeclID of the enclosing pattern-binding
// declaration (or function parameter pseudo-binding) that every
// VariableDecl introduced here must point back to, per spec.md §8.
func (s *State) parsePattern(owner ast.DeclID) ast.Pattern {
	switch s.tok.Kind {
	case token.Under:
		rng := s.errorRange()
		s.take()
		return &ast.WildcardPattern{PatternBase: ast.PatternBase{Base: ast.NewBase(rng)}}

	case token.LParen:
		return s.parseTuplePattern(owner)

	case token.KwVal, token.KwVar:
		start := s.errorRange()
		isVar := s.tok.Kind == token.KwVar
		s.take()

		sub := s.parsePattern(owner)

		var sig ast.TypeSig
		if s.gotKind(token.Colon) {
			s.take()
			sig = s.parseTypeSig()
		}

		return &ast.BindingPattern{
			PatternBase: ast.PatternBase{Base: ast.NewBaseOver(start, sub.Range())},
			IsVar:       isVar,
			Sub:         sub,
			Sig:         sig,
		}

	case token.Name:
		tok := s.take()

		v := &ast.VariableDecl{
			DeclBase:       ast.DeclBase{Base: ast.NewBase(tok.Range)},
			Name:           tok.Value,
			PatternBinding: owner,
		}
		vid := s.arena.AddDecl(s.parent, v)

		return &ast.NamedPattern{
			PatternBase: ast.PatternBase{Base: ast.NewBase(tok.Range)},
			Name:        tok.Value,
			Var:         vid,
		}

	default:
		s.fail("expected a pattern, got %s", s.describeTok(s.tok))
		return nil
	}
}

// parseTuplePattern parses `'(' pattern (',' pattern)* ')'`, per the
// list[L, item, R] recovery helper of spec.md §4.D.
func (s *State) parseTuplePattern(owner ast.DeclID) ast.Pattern {
	start := s.errorRange()
	elems := parseList(s, token.LParen, token.RParen, func() ast.Pattern {
		return s.parsePattern(owner)
	})
	end := s.errorRange()

	return &ast.TuplePattern{
		PatternBase: ast.PatternBase{Base: ast.NewBaseOver(start, end)},
		Elems:       elems,
	}
}
