// Package parser implements the recursive-descent parser of spec.md §4.D:
// one token of lookahead, cheap save/restore backtracking, and local error
// recovery scoped to statement/declaration/list boundaries.
package parser

import (
	"fmt"

	"chai/internal/ast"
	"chai/internal/diag"
	"chai/internal/lexer"
	"chai/internal/source"
	"chai/internal/token"
)

// flags is the parser's context flag set, per spec.md §4.D.
type flags struct {
	parsingTopLevel bool
	parsingProdBody bool
	parsingViewBody bool
	parsingExtnBody bool
	parsingFunBody  bool
	parsingLoopBody bool
}

// State is the parser's mutable position in one file, cheaply cloned for
// backtracking via save/restore (spec.md §4.D).
type State struct {
	file *source.File
	lex  *lexer.Lexer
	tok  *token.Token // one-token lookahead

	arena  *ast.Arena
	parent ast.DeclSpaceID

	flags flags

	// hasError is sticky for the whole parse, per spec.md §7.
	hasError *bool

	sink diag.Sink

	// prevRange is the range of the most recently consumed token, tracked
	// by take() so priorRange can anchor a node's end bound to real
	// consumed text rather than to the lookahead that follows it.
	prevRange source.Range
}

// New creates a parser State positioned on the first token of file.
func New(file *source.File, arena *ast.Arena, sink diag.Sink) *State {
	hasErr := false
	s := &State{
		file:     file,
		lex:      lexer.New(file),
		arena:    arena,
		parent:   arena.RootSpace(),
		hasError: &hasErr,
		sink:     sink,
	}
	s.tok = s.lex.NextToken()
	return s
}

// HasError reports whether any diagnostic has been raised during this
// parse.
func (s *State) HasError() bool { return *s.hasError }

// -----------------------------------------------------------------------------
// Primitives (spec.md §4.D)

// peek returns the current lookahead token without consuming it.
func (s *State) peek() *token.Token { return s.tok }

// take consumes and returns the current lookahead token, advancing the
// lexer.
func (s *State) take() *token.Token {
	t := s.tok
	s.prevRange = t.Range
	s.tok = s.lex.NextToken()
	return t
}

// priorRange returns a zero-width range at the end of the most recently
// consumed token, anchored to the same file as start. Productions that
// build a node's end bound after a loop or nested parse has already
// advanced the parser past the node's last real token use this instead of
// errorRange, which would describe the *next*, unconsumed token instead.
func (s *State) priorRange(start source.Range) source.Range {
	return source.Range{File: start.File, Start: s.prevRange.End, End: s.prevRange.End}
}

// takeKind consumes the lookahead if it has the given kind, raising a
// LocalError otherwise.
func (s *State) takeKind(kind token.Kind) *token.Token {
	if s.tok.Kind != kind {
		s.fail("expected %s, got %s", kind, s.describeTok(s.tok))
	}
	return s.take()
}

// takeIf consumes the lookahead if pred accepts it, returning (tok, true);
// otherwise leaves the parser positioned and returns (nil, false).
func (s *State) takeIf(pred func(token.Kind) bool) (*token.Token, bool) {
	if pred(s.tok.Kind) {
		return s.take(), true
	}
	return nil, false
}

// gotKind reports whether the lookahead has the given kind.
func (s *State) gotKind(kind token.Kind) bool { return s.tok.Kind == kind }

func (s *State) gotOneOf(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if s.tok.Kind == k {
			return true
		}
	}
	return false
}

// skipWhile consumes tokens while pred accepts the lookahead.
func (s *State) skipWhile(pred func(token.Kind) bool) {
	for pred(s.tok.Kind) {
		s.take()
	}
}

// save captures the parser's current position for unbounded backtracking.
type saved struct {
	lexPos int
	tok    *token.Token
}

func (s *State) save() saved {
	return saved{lexPos: s.lex.Pos(), tok: s.tok}
}

func (s *State) restore(sv saved) {
	s.lex.SetPos(sv.lexPos)
	s.tok = sv.tok
}

// errorRange returns the lookahead token's range, or the file's trailing
// EOF range if there is no more input.
func (s *State) errorRange() source.Range {
	return s.tok.Range
}

// fail raises a LocalError at the current lookahead's range. It is always
// recovered by diag.Try at a production boundary — never propagated as a
// normal error return, per spec.md §7.
func (s *State) fail(format string, args ...any) {
	diag.Raise(s.errorRange(), format, args...)
}

func (s *State) failAt(rng source.Range, format string, args ...any) {
	diag.Raise(rng, format, args...)
}

func (s *State) warn(rng source.Range, format string, args ...any) {
	s.sink.Report(diag.Diagnostic{Level: diag.LevelWarning, Message: fmt.Sprintf(format, args...), Anchor: rng})
}

func (s *State) describeTok(t *token.Token) string {
	if t.Kind == token.Name || t.Kind == token.Oper {
		return "`" + t.Value + "`"
	}
	return t.Kind.String()
}

// -----------------------------------------------------------------------------
// Declaration-space helpers

// withSpace runs fn with s.parent temporarily set to space, then restores
// the previous parent. This is how the parser enters a function/type body
// scope and "save/restore[s] on exit" per spec.md §4.D.
func (s *State) withSpace(space ast.DeclSpaceID, fn func()) {
	prev := s.parent
	s.parent = space
	defer func() { s.parent = prev }()
	fn()
}

// newOwnedSpace creates a new declaration space owned by decl, as a child
// of the parser's current space.
func (s *State) newOwnedSpace(decl ast.DeclID) ast.DeclSpaceID {
	return s.arena.NewSpace(s.parent, decl)
}

