package parser

import (
	"chai/internal/ast"
	"chai/internal/diag"
	"chai/internal/source"
	"chai/internal/token"
)

// parseExpr parses one expression by climbing through prefix, compound, and
// binary-suffix layers and flattening the resulting infix tree, per
// spec.md §4.D.
func (s *State) parseExpr() ast.Expr {
	lhs := s.parsePrefixExpr()
	tree := leaf(lhs)

	for {
		suffix, group, ok := s.tryBinarySuffix()
		if !ok {
			break
		}

		var rhs *infixTree
		if suffix.kind == binCast {
			rhs = nil // cast carries its "right operand" inside suffix itself
		} else {
			rhs = leaf(s.parsePrefixAndCompound())
		}

		tree = tree.append(suffix, group, rhs)
	}

	return tree.flatten()
}

// parsePrefixAndCompound runs the prefix+compound layers for one binary
// suffix's right-hand operand.
func (s *State) parsePrefixAndCompound() ast.Expr {
	return s.parsePrefixExpr()
}

// -----------------------------------------------------------------------------
// Step 1: prefix-expr

// prefixOperable is the set of characters a user-declared prefix operator
// function may spell, mirroring operCharset minus `=` (never a prefix since
// assignment is infix-only).
const prefixOperable = "+-*/%!<>&|^~?"

// parsePrefixExpr parses `optional-prefix-operator immediately-adjacent
// operand`, per spec.md §4.D step 1. `&x` becomes AddrOf; any other prefix
// operator lowers to a call through an unresolved member, matching the
// infix/postfix lowering in step 4.
func (s *State) parsePrefixExpr() ast.Expr {
	if s.gotKind(token.Oper) && s.tok.Value != "=" {
		opTok := s.take()

		// Warn on a gap between the operator and its operand: prefix must be
		// immediately adjacent, per spec.md §4.D.
		if s.tok.Range.Start != opTok.Range.End {
			s.warn(opTok.Range, "prefix operator `%s` should be adjacent to its operand", opTok.Value)
		}

		operand := s.parseCompoundExpr(s.parsePrimaryExpr())

		if opTok.Value == "&" {
			return &ast.AddrOfExpr{
				ExprBase: ast.ExprBase{Base: ast.NewBaseOver(opTok.Range, operand.Range())},
				Operand:  operand,
			}
		}

		member := &ast.MemberExpr{
			ExprBase: ast.ExprBase{Base: ast.NewBase(opTok.Range)},
			Root:     operand,
			Field:    opTok.Value,
		}
		return &ast.CallExpr{
			ExprBase: ast.ExprBase{Base: ast.NewBaseOver(opTok.Range, operand.Range())},
			Callee:   member,
			Args:     nil,
			Notation: ast.CallPrefix,
		}
	}

	return s.parseCompoundExpr(s.parsePrimaryExpr())
}

// -----------------------------------------------------------------------------
// Step 2: compound-expr

// parseCompoundExpr repeatedly consumes call-args, subscripts, member
// access, or a trailing postfix operator, per spec.md §4.D step 2.
func (s *State) parseCompoundExpr(base ast.Expr) ast.Expr {
	for {
		switch {
		case s.gotKind(token.LParen) && s.sameLineAsPrevToken():
			base = s.parseCallArgs(base)
		case s.gotKind(token.LBrack):
			base = s.parseSubscript(base)
		case s.gotKind(token.Dot):
			base = s.parseMemberSuffix(base)
		case s.gotKind(token.Oper) && s.tok.Range.Start == base.Range().End && s.isPostfixCandidate():
			base = s.parsePostfixSuffix(base)
		default:
			return base
		}
	}
}

// sameLineAsPrevToken reports whether the lookahead token begins on the
// same source line as the end of the previously consumed token, per
// spec.md §4.D's "call-args on the same line as the callee" rule.
func (s *State) sameLineAsPrevToken() bool {
	// The lexer's lazily-produced lookahead carries no separate "previous
	// token" record; reconstruct adjacency from byte ranges instead — no
	// newline lies between the end of whatever just closed (tracked by the
	// caller's base.Range().End) and the start of the lookahead iff their
	// text contains no '\n'. We approximate the teacher's rule by checking
	// the file text directly.
	return !s.hasNewlineBefore(s.tok.Range.Start)
}

// hasNewlineBefore reports whether a newline appears between the end of the
// previously consumed token and byteIndex. Because the lexer discards
// whitespace, this is recovered by scanning the file text once.
func (s *State) hasNewlineBefore(byteIndex int) bool {
	text := s.file.Text()
	// Walk back from byteIndex to the last non-space boundary; if a '\n' is
	// crossed, the lookahead starts on a new line.
	for i := byteIndex - 1; i >= 0; i-- {
		switch text[i] {
		case '\n':
			return true
		case ' ', '\t', '\r', '\v', '\f':
			continue
		default:
			return false
		}
	}
	return false
}

// isPostfixCandidate reports whether the lookahead Oper token is followed
// immediately by whitespace or EOF — the "must be attached to LHS" rule of
// spec.md §4.D step 2 that distinguishes a postfix operator from the start
// of a binary suffix.
func (s *State) isPostfixCandidate() bool {
	end := s.tok.Range.End
	text := s.file.Text()
	if end >= len(text) {
		return true
	}
	switch text[end] {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}

func (s *State) parseCallArgs(callee ast.Expr) ast.Expr {
	start := callee.Range()
	args := parseList(s, token.LParen, token.RParen, func() ast.Expr {
		return s.parseExpr()
	})
	end := s.priorRange(start)
	return &ast.CallExpr{
		ExprBase: ast.ExprBase{Base: ast.NewBaseOver(start, end)},
		Callee:   callee,
		Args:     args,
		Notation: ast.CallPlain,
	}
}

func (s *State) parseSubscript(root ast.Expr) ast.Expr {
	start := root.Range()
	args := parseList(s, token.LBrack, token.RBrack, func() ast.Expr {
		return s.parseExpr()
	})
	end := s.priorRange(start)

	member := &ast.MemberExpr{
		ExprBase: ast.ExprBase{Base: ast.NewBase(root.Range())},
		Root:     root,
		Field:    "[]",
	}
	return &ast.CallExpr{
		ExprBase: ast.ExprBase{Base: ast.NewBaseOver(start, end)},
		Callee:   member,
		Args:     args,
		Notation: ast.CallPlain,
	}
}

// parseMemberSuffix parses `.` followed by a label, an operator spelling
// (for operator-function member access), or a decimal tuple index.
func (s *State) parseMemberSuffix(root ast.Expr) ast.Expr {
	start := root.Range()
	s.take() // '.'

	if s.gotKind(token.IntLit) {
		idxTok := s.take()
		idx := 0
		for _, c := range idxTok.Value {
			idx = idx*10 + int(c-'0')
		}
		return &ast.TupleMemberExpr{
			ExprBase: ast.ExprBase{Base: ast.NewBaseOver(start, idxTok.Range)},
			Tuple:    root,
			Index:    idx,
		}
	}

	var fieldTok *token.Token
	if s.gotKind(token.Name) {
		fieldTok = s.take()
	} else if s.gotKind(token.Oper) {
		fieldTok = s.take()
	} else {
		s.fail("expected a member name, operator, or tuple index after `.`, got %s", s.describeTok(s.tok))
		fieldTok = &token.Token{Range: s.errorRange()}
	}

	return &ast.MemberExpr{
		ExprBase: ast.ExprBase{Base: ast.NewBaseOver(start, fieldTok.Range)},
		Root:     root,
		Field:    fieldTok.Value,
	}
}

func (s *State) parsePostfixSuffix(operand ast.Expr) ast.Expr {
	opTok := s.take()
	member := &ast.MemberExpr{
		ExprBase: ast.ExprBase{Base: ast.NewBase(opTok.Range)},
		Root:     operand,
		Field:    opTok.Value,
	}
	return &ast.CallExpr{
		ExprBase: ast.ExprBase{Base: ast.NewBaseOver(operand.Range(), opTok.Range)},
		Callee:   member,
		Args:     nil,
		Notation: ast.CallPostfix,
	}
}

// -----------------------------------------------------------------------------
// Primary expressions

func (s *State) parsePrimaryExpr() ast.Expr {
	switch s.tok.Kind {
	case token.IntLit:
		t := s.take()
		return &ast.IntLitExpr{ExprBase: ast.ExprBase{Base: ast.NewBase(t.Range)}, Text: t.Value}
	case token.FloatLit:
		t := s.take()
		return &ast.FloatLitExpr{ExprBase: ast.ExprBase{Base: ast.NewBase(t.Range)}, Text: t.Value}
	case token.BoolLit:
		t := s.take()
		return &ast.BoolLitExpr{ExprBase: ast.ExprBase{Base: ast.NewBase(t.Range)}, Value: t.Value == "true"}
	case token.StringLit:
		t := s.take()
		return &ast.StringLitExpr{ExprBase: ast.ExprBase{Base: ast.NewBase(t.Range)}, Value: decodeStringLit(t.Value)}
	case token.Under:
		t := s.take()
		return &ast.WildcardExpr{ExprBase: ast.ExprBase{Base: ast.NewBase(t.Range)}}
	case token.KwAsync:
		return s.parseAsyncExpr()
	case token.KwAwait:
		return s.parseAwaitExpr()
	case token.KwMatch:
		return s.parseMatchExpr()
	case token.LParen:
		return s.parseParenOrTupleExpr()
	case token.Name:
		return s.parseDeclRef()
	default:
		s.fail("expected an expression, got %s", s.describeTok(s.tok))
		return &ast.ErrorExpr{ExprBase: ast.ExprBase{Base: ast.NewBase(s.errorRange())}}
	}
}

// decodeStringLit decodes the C-style escape sequences the lexer accepted
// but did not itself interpret, stripping the surrounding quotes.
func decodeStringLit(raw string) string {
	if len(raw) < 2 {
		return raw
	}
	body := raw[1 : len(raw)-1]

	var out []byte
	for i := 0; i < len(body); i++ {
		if body[i] != '\\' || i+1 >= len(body) {
			out = append(out, body[i])
			continue
		}
		i++
		switch body[i] {
		case 'n':
			out = append(out, '\n')
		case 't':
			out = append(out, '\t')
		case 'r':
			out = append(out, '\r')
		case 'a':
			out = append(out, '\a')
		case 'b':
			out = append(out, '\b')
		case 'f':
			out = append(out, '\f')
		case 'v':
			out = append(out, '\v')
		case '0':
			out = append(out, 0)
		case '\'':
			out = append(out, '\'')
		case '"':
			out = append(out, '"')
		case '\\':
			out = append(out, '\\')
		default:
			out = append(out, body[i])
		}
	}
	return string(out)
}

func (s *State) parseAsyncExpr() ast.Expr {
	start := s.errorRange()
	s.take()
	body := s.parseExpr()
	return &ast.AsyncExpr{ExprBase: ast.ExprBase{Base: ast.NewBaseOver(start, body.Range())}, Body: body}
}

func (s *State) parseAwaitExpr() ast.Expr {
	start := s.errorRange()
	s.take()
	operand := s.parseExpr()
	return &ast.AwaitExpr{ExprBase: ast.ExprBase{Base: ast.NewBaseOver(start, operand.Range())}, Operand: operand}
}

// parseMatchExpr parses `match expr '{' case* '}'`, per spec.md §4.D. A
// top-level match inside a brace-block is parsed as a MatchStmt instead (see
// parse_stmt.go); this entry point is used only in expression position.
func (s *State) parseMatchExpr() ast.Expr {
	start := s.errorRange()
	s.take()
	scrutinee := s.parseExpr()
	cases := s.parseMatchCases()
	end := s.priorRange(start)
	return &ast.MatchExpr{
		ExprBase:  ast.ExprBase{Base: ast.NewBaseOver(start, end)},
		Scrutinee: scrutinee,
		Cases:     cases,
	}
}

func (s *State) parseMatchCases() []*ast.MatchCaseStmt {
	s.takeKind(token.LBrace)

	var cases []*ast.MatchCaseStmt
	for s.gotKind(token.KwCase) {
		cases = append(cases, s.parseMatchCase())
	}

	if !s.gotKind(token.RBrace) {
		s.fail("expected `case` or `}` in match body, got %s", s.describeTok(s.tok))
	} else {
		s.take()
	}
	return cases
}

func (s *State) parseMatchCase() *ast.MatchCaseStmt {
	start := s.errorRange()
	s.take() // 'case'

	c := &ast.MatchCaseStmt{StmtBase: ast.StmtBase{Base: ast.NewBase(start)}}
	space := s.newOwnedSpace(ast.NoOwnerDecl)
	c.Space = space

	s.withSpace(space, func() {
		c.Patt = s.parsePattern(ast.NoOwnerDecl)

		if s.gotKind(token.KwWhere) {
			s.take()
			c.Guard = s.parseExpr()
		}

		c.Body = s.parseBlockStmt()
	})

	return c
}

// parseParenOrTupleExpr parses `'(' expr (',' expr)* ')'`: a single
// parenthesized expression, or (with any comma) a tuple.
func (s *State) parseParenOrTupleExpr() ast.Expr {
	start := s.errorRange()
	elems := parseList(s, token.LParen, token.RParen, func() ast.Expr {
		return s.parseExpr()
	})
	end := s.priorRange(start)

	if len(elems) == 1 {
		return elems[0]
	}
	return &ast.TupleExpr{ExprBase: ast.ExprBase{Base: ast.NewBaseOver(start, end)}, Elems: elems}
}

// -----------------------------------------------------------------------------
// Declaration references (spec.md §4.D)

// parseDeclRef speculatively parses a `::`-separated chain of
// type-identifiers, buffering diagnostics raised along the way. A bare
// identifier (no `::` follows) returns at once without buffering. If the
// chain parses, the buffered diagnostics are committed; if it fails, they
// are discarded and the failure itself is reported.
func (s *State) parseDeclRef() ast.Expr {
	start := s.errorRange()
	firstTok := s.takeKind(token.Name)

	if !s.gotKind(token.TwoColons) {
		return &ast.UnresolvedDeclRefExpr{
			ExprBase: ast.ExprBase{Base: ast.NewBase(firstTok.Range)},
			Name:     firstTok.Value,
		}
	}

	outerSink := s.sink
	buf := &diag.BufferingSink{}
	s.sink = buf

	segs := []*token.Token{firstTok}

	le := diag.Try(func() {
		for s.gotKind(token.TwoColons) {
			s.take()
			segs = append(segs, s.takeKind(token.Name))
		}
	})

	s.sink = outerSink

	if le != nil {
		buf.Discard()
		s.sink.Report(diag.Diagnostic{Level: diag.LevelError, Message: le.Message, Anchor: le.Anchor})
		*s.hasError = true
		return &ast.ErrorExpr{ExprBase: ast.ExprBase{Base: ast.NewBase(start)}}
	}

	buf.Commit(s.sink)

	last := segs[len(segs)-1]
	var namespace []string
	for _, seg := range segs[:len(segs)-1] {
		namespace = append(namespace, seg.Value)
	}

	return &ast.UnresolvedDeclRefExpr{
		ExprBase:  ast.ExprBase{Base: ast.NewBaseOver(start, last.Range)},
		Namespace: namespace,
		Name:      last.Value,
	}
}

// -----------------------------------------------------------------------------
// Step 3/4: binary suffixes and takeOperator

// tryBinarySuffix attempts to parse one binary suffix — a standard operator,
// an identifier used infix, or `cast` — without committing if none applies.
func (s *State) tryBinarySuffix() (binSuffix, opGroup, bool) {
	if s.gotKind(token.KwCast) {
		s.take()
		kind := castUnsafe
		if s.gotKind(token.Oper) && s.tok.Value == "?" {
			kind = castDyn
			s.take()
		} else if s.gotKind(token.Oper) && s.tok.Value == "!" {
			s.take()
		}
		target := s.parseTypeSig()
		return binSuffix{kind: binCast, castKind: kind, castTarget: target}, groupCasting, true
	}

	if s.gotKind(token.Assign) {
		s.take()
		return binSuffix{kind: binOperator, operText: "="}, groupAssign, true
	}

	if s.gotOneOf(token.Oper, token.LAngle, token.RAngle) {
		opTok := s.takeOperator(true)
		return binSuffix{kind: binOperator, operText: opTok.Value}, groupFor(opTok.Value), true
	}

	if s.gotKind(token.Name) && s.sameLineAsPrevToken() {
		sv := s.save()
		nameTok := s.take()
		// An infix identifier must be immediately followed by the start of
		// another operand, not by a token that would make it a declaration
		// on its own (e.g. end of statement).
		if s.gotOneOf(token.Semi, token.RParen, token.RBrace, token.RBrack, token.Comma, token.EOF) {
			s.restore(sv)
			return binSuffix{}, "", false
		}
		return binSuffix{kind: binIdentInfix, operText: nameTok.Value}, groupIdent, true
	}

	return binSuffix{}, "", false
}

// takeOperator implements spec.md §4.D's gluing contract: a leading
// lAngle/rAngle may start an operator and is concatenated with adjacent
// operator tokens iff they are textually contiguous (the upper bound of one
// equals the lower bound of the next). includingAssign additionally allows
// gluing onto a following `=` (e.g. `<=`, `>=`).
func (s *State) takeOperator(includingAssign bool) *token.Token {
	first := s.take()
	text := first.Value
	rng := first.Range

	for {
		if rng.End != s.tok.Range.Start {
			break
		}

		switch {
		case s.gotOneOf(token.LAngle, token.RAngle, token.Oper):
			text += s.tok.Value
			rng = source.Over(rng, s.tok.Range)
			s.take()
		case includingAssign && s.gotKind(token.Assign):
			text += s.tok.Value
			rng = source.Over(rng, s.tok.Range)
			s.take()
		default:
			return &token.Token{Kind: token.Oper, Value: text, Range: rng}
		}
	}

	return &token.Token{Kind: token.Oper, Value: text, Range: rng}
}
