package parser

import (
	"chai/internal/ast"
	"chai/internal/diag"
	"chai/internal/source"
	"chai/internal/token"
)

// ParseUnit parses an entire source file into an ast.Unit, per spec.md §6:
// "Parser output: a source unit containing declarations, plus hasError."
func ParseUnit(file *source.File, sink diag.Sink) *ast.Unit {
	unit := ast.NewUnit(file.ID())
	s := New(file, unit.Arena, sink)
	s.flags.parsingTopLevel = true

	for !s.gotKind(token.EOF) {
		if s.gotKind(token.Semi) {
			s.take()
			continue
		}

		s.parseTopLevelDecl(unit)
	}

	unit.HasErr = s.HasError()
	return unit
}

// parseTopLevelDecl parses one top-level declaration and appends it to
// unit, recovering locally on error per spec.md §4.D's "Top-level" rule.
func (s *State) parseTopLevelDecl(unit *ast.Unit) {
	var d ast.Decl

	if le := diag.Try(func() { d = s.parseDecl() }); le != nil {
		s.sink.Report(diag.Diagnostic{Level: diag.LevelError, Message: le.Message, Anchor: le.Anchor})
		*s.hasError = true
		s.recoverToDeclBoundary()
		return
	}

	if d != nil {
		unit.Decls = append(unit.Decls, d)
	}
}

// recoverToDeclBoundary skips tokens until a `;`, `}`, or a token that can
// begin another declaration, per spec.md §4.D's top-level recovery rule.
// It is called by parseTopLevelDecl after diag.Try has returned the
// recovered error: the panic unwinds first, then scanning resumes from
// wherever the lexer was left.
func (s *State) recoverToDeclBoundary() {
	for {
		switch s.tok.Kind {
		case token.Semi:
			s.take()
			return
		case token.RBrace, token.EOF:
			return
		case token.KwPub, token.KwMod, token.KwMut, token.KwInfix, token.KwPrefix,
			token.KwPostfix, token.KwVolatile, token.KwStatic, token.KwMoveonly,
			token.KwVal, token.KwVar, token.KwFun, token.KwNew, token.KwDel,
			token.KwType, token.KwView, token.KwExtn:
			return
		default:
			s.take()
		}
	}
}
