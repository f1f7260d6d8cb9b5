package parser

import (
	"chai/internal/ast"
	"chai/internal/diag"
	"chai/internal/source"
	"chai/internal/token"
)

// parseFuncName accepts either a plain identifier or an operator spelling
// as a function's name, so that operator-function declarations
// (`infix fun +(...)`) parse the same way a regular `fun` does, per
// spec.md §4.D's "Operator functions" rule.
func (s *State) parseFuncName() (string, source.Range) {
	if s.gotKind(token.Oper) {
		t := s.takeOperator(true)
		return t.Value, t.Range
	}
	t := s.takeKind(token.Name)
	return t.Value, t.Range
}

// parseFuncDecl parses `fun name genericClause? '(' params ')' ('->' sign)? blockStmt`,
// per spec.md §4.D. Arity is checked against the fixity modifiers:
// prefix/postfix take 0 params, infix takes 1 (the function's own receiver
// is separate, modeled as an implicit `this`, per the type's product body).
func (s *State) parseFuncDecl(mods ast.Modifiers) ast.Decl {
	start := s.errorRange()
	s.take() // 'fun'

	name, _ := s.parseFuncName()

	d := &ast.FuncDecl{DeclBase: ast.DeclBase{Base: ast.NewBase(start)}, Modifiers: mods, Name: name}
	id := s.arena.AddDecl(s.parent, d)

	bodySpace := s.newOwnedSpace(id)
	d.BodySpace = bodySpace

	s.withSpace(bodySpace, func() {
		d.Generic = s.parseGenericClause()
		d.Params = s.parseFuncParams()

		if s.gotKind(token.Arrow) {
			s.take()
			d.Output = s.parseTypeSig()
		}

		s.checkOperatorArity(mods, len(d.Params), start)

		if mods.Infix || mods.Prefix || mods.Postfix {
			if mods.Static {
				s.failAt(start, "operator functions must be non-static members")
			}
		}

		if s.gotKind(token.LBrace) {
			prevFlag, prevTop := s.flags.parsingFunBody, s.flags.parsingTopLevel
			s.flags.parsingFunBody = true
			s.flags.parsingTopLevel = false
			d.Body = s.parseBlockStmt()
			s.flags.parsingFunBody = prevFlag
			s.flags.parsingTopLevel = prevTop
		} else {
			s.semiOrRecover()
		}
	})

	d.Base = ast.NewBaseOver(start, s.priorRange(start))
	return d
}

func (s *State) checkOperatorArity(mods ast.Modifiers, nparams int, at source.Range) {
	switch {
	case mods.Prefix && nparams != 0:
		s.failAt(at, "a prefix operator function takes no parameters")
	case mods.Postfix && nparams != 0:
		s.failAt(at, "a postfix operator function takes no parameters")
	case mods.Infix && nparams != 1:
		s.failAt(at, "an infix operator function takes exactly one parameter")
	}
}

// parseFuncParams parses the `'(' (label | '_')? NAME ':' sign ')'`
// parameter list, per spec.md §4.D's "Function parameter form". A
// malformed list (e.g. a missing parameter between `(` and `->`) is its
// own recovery boundary, per spec.md §8's parse-error-recovery scenario:
// the enclosing declaration survives with an empty parameter list rather
// than losing the whole `fun` to the top-level recovery sweep.
func (s *State) parseFuncParams() []ast.FuncArg {
	var params []ast.FuncArg

	if le := diag.Try(func() {
		params = parseList(s, token.LParen, token.RParen, func() ast.FuncArg {
			return s.parseFuncArg()
		})
	}); le != nil {
		s.sink.Report(diag.Diagnostic{Level: diag.LevelError, Message: "expected parameter list", Anchor: le.Anchor})
		*s.hasError = true
		s.recoverToParamListEnd()
		return nil
	}

	return params
}

// recoverToParamListEnd skips tokens until the parameter list's closing
// `)`, or a token that can only follow it (`->`, `{`), or a statement/decl
// boundary, consuming the `)` if that is what stopped the scan. This lets
// parseFuncDecl continue into the return sign and body even though the
// parameter list itself could not be parsed.
func (s *State) recoverToParamListEnd() {
	for !s.gotOneOf(token.RParen, token.Arrow, token.LBrace, token.Semi, token.RBrace, token.EOF) {
		s.take()
	}
	if s.gotKind(token.RParen) {
		s.take()
	}
}

func (s *State) parseFuncArg() ast.FuncArg {
	var arg ast.FuncArg

	// A single bareword serves as both external label and internal name.
	// If a second NAME follows, the first was the external label; `_`
	// spelled as the label means the parameter is anonymous.
	first := s.takeIdentOrUnder()

	if s.gotKind(token.Name) {
		second := s.takeKind(token.Name)
		arg.Anonymous = first.Kind == token.Under
		if !arg.Anonymous {
			arg.ExternalLabel = first.Value
		}
		arg.InternalName = second.Value

		if !arg.Anonymous && first.Value == second.Value {
			s.warn(second.Range, "parameter label `%s` is identical to its internal name", second.Value)
		}
	} else {
		arg.ExternalLabel = first.Value
		arg.InternalName = first.Value
	}

	s.takeKind(token.Colon)
	arg.Sig = s.parseTypeSig()
	return arg
}

func (s *State) takeIdentOrUnder() *token.Token {
	if s.gotKind(token.Under) {
		return s.take()
	}
	return s.takeKind(token.Name)
}

// parseCtorDecl parses `new '(' params ')' blockStmt`.
func (s *State) parseCtorDecl(mods ast.Modifiers) ast.Decl {
	start := s.errorRange()
	s.take() // 'new'

	d := &ast.CtorDecl{DeclBase: ast.DeclBase{Base: ast.NewBase(start)}}
	id := s.arena.AddDecl(s.parent, d)

	bodySpace := s.newOwnedSpace(id)
	d.BodySpace = bodySpace

	s.withSpace(bodySpace, func() {
		d.Params = s.parseFuncParams()
		d.Body = s.parseBlockStmt()
	})

	d.Base = ast.NewBaseOver(start, s.priorRange(start))
	return d
}

// parseDtorDecl parses `del '(' ')' blockStmt`. (`del` as a *statement* —
// deleting a value mid-function — is a separate, unimplemented stub; see
// parse_stmt.go.)
func (s *State) parseDtorDecl(mods ast.Modifiers) ast.Decl {
	start := s.errorRange()
	s.take() // 'del'

	d := &ast.DtorDecl{DeclBase: ast.DeclBase{Base: ast.NewBase(start)}}
	id := s.arena.AddDecl(s.parent, d)

	bodySpace := s.newOwnedSpace(id)
	d.BodySpace = bodySpace

	s.withSpace(bodySpace, func() {
		s.takeKind(token.LParen)
		s.expectListEnd(token.RParen)
		d.Body = s.parseBlockStmt()
	})

	d.Base = ast.NewBaseOver(start, s.priorRange(start))
	return d
}
