package parser

import (
	"chai/internal/ast"
	"chai/internal/token"
)

// parseTypeSig parses `sign ::= ('mut'|'volatile')* async-sign ('->' sign)?`,
// per spec.md §4.D. `volatile` is only legal on a function signature; `mut`
// wraps the final result as an inout signature.
func (s *State) parseTypeSig() ast.TypeSig {
	start := s.errorRange()

	var mut, volatile bool
	for {
		switch s.tok.Kind {
		case token.KwMut:
			mut = true
			s.take()
		case token.KwVolatile:
			volatile = true
			s.take()
		default:
			goto modifiersDone
		}
	}
modifiersDone:

	lhs := s.parseAsyncSign()

	var result ast.TypeSig
	if s.gotKind(token.Arrow) {
		s.take()
		output := s.parseTypeSig()
		result = &ast.FunctionSig{
			TypeSigBase: ast.TypeSigBase{Base: ast.NewBaseOver(start, output.Range())},
			Params:      extractParams(lhs),
			Output:      output,
			Volatile:    volatile,
		}
	} else {
		if volatile {
			s.failAt(lhs.Range(), "`volatile` is only legal on a function signature")
		}
		result = lhs
	}

	if mut {
		result = &ast.InoutSig{
			TypeSigBase: ast.TypeSigBase{Base: ast.NewBaseOver(start, result.Range())},
			Elem:        result,
		}
	}

	return result
}

// extractParams turns the signature parsed before `->` into a function's
// parameter list: a TupleSig's elements, or the single signature itself.
func extractParams(lhs ast.TypeSig) []ast.TypeSig {
	if tup, ok := lhs.(*ast.TupleSig); ok {
		return tup.Elems
	}
	return []ast.TypeSig{lhs}
}

// parseAsyncSign parses `async-sign ::= 'async'? maxterm`.
func (s *State) parseAsyncSign() ast.TypeSig {
	if s.gotKind(token.KwAsync) {
		start := s.errorRange()
		s.take()
		elem := s.parseMaxterm()
		return &ast.AsyncSig{
			TypeSigBase: ast.TypeSigBase{Base: ast.NewBaseOver(start, elem.Range())},
			Elem:        elem,
		}
	}
	return s.parseMaxterm()
}

// parseMaxterm parses a `|`-disjunction (union) of minterms.
func (s *State) parseMaxterm() ast.TypeSig {
	start := s.errorRange()
	first := s.parseMinterm()

	alts := []ast.TypeSig{first}
	for s.isOperSpelled("|") {
		s.take()
		alts = append(alts, s.parseMinterm())
	}

	if len(alts) == 1 {
		return first
	}
	return &ast.UnionSig{
		TypeSigBase: ast.TypeSigBase{Base: ast.NewBaseOver(start, alts[len(alts)-1].Range())},
		Alts:        alts,
	}
}

// parseMinterm parses a `&`-conjunction (view composition) of primaries.
func (s *State) parseMinterm() ast.TypeSig {
	start := s.errorRange()
	first := s.parsePrimarySig()

	views := []ast.TypeSig{first}
	for s.isOperSpelled("&") {
		s.take()
		views = append(views, s.parsePrimarySig())
	}

	if len(views) == 1 {
		return first
	}
	return &ast.ViewCompositionSig{
		TypeSigBase: ast.TypeSigBase{Base: ast.NewBaseOver(start, views[len(views)-1].Range())},
		Views:       views,
	}
}

// isOperSpelled reports whether the lookahead is an Oper token with exactly
// the given spelling, without consuming it.
func (s *State) isOperSpelled(text string) bool {
	return s.tok.Kind == token.Oper && s.tok.Value == text
}

// parsePrimarySig parses `primary ::= compound-ident | tuple`.
func (s *State) parsePrimarySig() ast.TypeSig {
	switch s.tok.Kind {
	case token.LParen:
		return s.parseTupleSig()
	case token.Name:
		return s.parseCompoundIdentSig()
	default:
		s.fail("expected a type signature, got %s", s.describeTok(s.tok))
		rng := s.errorRange()
		return &ast.ErrorSig{TypeSigBase: ast.TypeSigBase{Base: ast.NewBase(rng)}}
	}
}

func (s *State) parseTupleSig() ast.TypeSig {
	start := s.errorRange()
	elems := parseList(s, token.LParen, token.RParen, func() ast.TypeSig {
		return s.parseTypeSig()
	})
	end := s.errorRange()
	return &ast.TupleSig{TypeSigBase: ast.TypeSigBase{Base: ast.NewBaseOver(start, end)}, Elems: elems}
}

// parseCompoundIdentSig parses a possibly `::`-qualified type name with an
// optional generic argument list on the final component.
func (s *State) parseCompoundIdentSig() ast.TypeSig {
	start := s.errorRange()
	first := s.takeKind(token.Name)

	var path []string
	path = append(path, first.Value)

	for s.gotKind(token.TwoColons) {
		s.take()
		seg := s.takeKind(token.Name)
		path = append(path, seg.Value)
	}

	var args []ast.TypeSig
	end := s.priorRange(start)
	if s.gotKind(token.LAngle) {
		args = parseList(s, token.LAngle, token.RAngle, func() ast.TypeSig {
			return s.parseTypeSig()
		})
		end = s.priorRange(start)
	}

	if len(path) == 1 {
		if len(args) == 0 {
			return &ast.BareIdentSig{TypeSigBase: ast.TypeSigBase{Base: ast.NewBaseOver(start, end)}, Name: path[0]}
		}
		return &ast.SpecializedIdentSig{TypeSigBase: ast.TypeSigBase{Base: ast.NewBaseOver(start, end)}, Name: path[0], Args: args}
	}

	return &ast.CompoundIdentSig{TypeSigBase: ast.TypeSigBase{Base: ast.NewBaseOver(start, end)}, Path: path, Args: args}
}

// -----------------------------------------------------------------------------
// Generic clauses

// parseGenericClause parses `'<' NAME (',' NAME)* ('where' requirement (',' requirement)*)? '>'`.
// The caller must already have entered the declaration's own space (via
// withSpace) so the generic parameters it declares land in the right scope.
func (s *State) parseGenericClause() *ast.GenericClause {
	if !s.gotKind(token.LAngle) {
		return nil
	}

	gc := &ast.GenericClause{}

	s.take() // consume '<'
	for {
		nameTok := s.takeKind(token.Name)
		p := &ast.GenericParamDecl{DeclBase: ast.DeclBase{Base: ast.NewBase(nameTok.Range)}, Name: nameTok.Value}
		s.arena.AddDecl(s.parent, p)
		gc.Params = append(gc.Params, p)

		if s.gotKind(token.Comma) {
			s.take()
			continue
		}
		break
	}

	if s.gotKind(token.KwWhere) {
		s.take()
		for {
			gc.Requirements = append(gc.Requirements, s.parseTypeRequirement())
			if s.gotKind(token.Comma) {
				s.take()
				continue
			}
			break
		}
	}

	s.expectListEnd(token.RAngle)
	return gc
}

// parseTypeRequirement parses `compound-ident-sign ('==' | ':') sign`.
func (s *State) parseTypeRequirement() ast.TypeRequirement {
	subject := s.parseCompoundIdentSig()

	if s.gotKind(token.Colon) {
		s.take()
		return ast.TypeRequirement{Subject: subject, IsEquality: false, Trait: s.parseTypeSig()}
	}

	if s.isOperSpelled("==") {
		s.take()
		return ast.TypeRequirement{Subject: subject, IsEquality: true, Trait: s.parseTypeSig()}
	}

	s.fail("expected `:` or `==` in type requirement")
	return ast.TypeRequirement{Subject: subject}
}
