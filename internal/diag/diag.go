// Package diag implements the diagnostic envelope, the local-backtracking
// ParseError primitive, and the terminal renderer described in spec.md §6/§7.
package diag

import (
	"fmt"

	"chai/internal/source"
)

// Level is one of the three diagnostic levels spec.md §6 names.
type Level int

const (
	LevelNote Level = iota
	LevelWarning
	LevelError
)

// Diagnostic is the envelope consumed by an external reporter, per
// spec.md §6: `{ level, message, anchor }`.
type Diagnostic struct {
	Level   Level
	Message string
	Anchor  source.Range
}

// LocalError is raised via panic to drive one production's local recovery,
// per spec.md §7: "the internal ParseError used exclusively for local
// backtracking within one production". It never crosses a production
// boundary as a Go error return — only as a panic caught by Catch or Try.
type LocalError struct {
	Message string
	Anchor  source.Range
}

func (e *LocalError) Error() string { return e.Message }

// Raise constructs and panics with a *LocalError. Callers always recover it
// with Catch or Try at the boundary of the production that should absorb it.
func Raise(anchor source.Range, format string, args ...any) {
	panic(&LocalError{Message: fmt.Sprintf(format, args...), Anchor: anchor})
}

// Catch recovers a *LocalError panic, reports it through sink, and marks
// hasErr. Any other panic value is re-raised — only LocalError is a
// recognized local-backtracking signal, per spec.md §7's propagation rule.
// It must always be deferred.
func Catch(sink Sink, hasErr *bool) {
	if r := recover(); r != nil {
		if le, ok := r.(*LocalError); ok {
			sink.Report(Diagnostic{Level: LevelError, Message: le.Message, Anchor: le.Anchor})
			*hasErr = true
			return
		}

		panic(r)
	}
}

// Try runs fn and recovers a *LocalError it raises, returning it instead of
// reporting it immediately. This is the primitive productions that need to
// act *after* recovery — e.g. skipping to the next recovery boundary, or
// discarding a speculative buffer — build on, since a deferred Catch alone
// cannot run code after the panic unwinds past it.
func Try(fn func()) (recovered *LocalError) {
	defer func() {
		if r := recover(); r != nil {
			if le, ok := r.(*LocalError); ok {
				recovered = le
				return
			}
			panic(r)
		}
	}()

	fn()
	return nil
}

// NotImplemented raises a *LocalError for a grammar production this parser
// recognizes but does not yet handle: it parses the construct's keyword,
// then calls this instead of building a node.
func NotImplemented(anchor source.Range, what string) {
	Raise(anchor, "%s is not implemented by this parser", what)
}

// ICE reports an internal compiler error and aborts the process. These
// correspond to spec.md §7's "Internal invariant violations": malformed IR,
// an unrecognized instruction kind, etc. — conditions the spec forbids
// silently tolerating.
func ICE(format string, args ...any) {
	panic(&InternalError{Message: fmt.Sprintf(format, args...)})
}

// InternalError is the fatal, non-recoverable counterpart to LocalError. It
// is never caught by Catch — callers that need to turn a pipeline stage's
// ICE into a process exit should recover it once at the outermost driver
// boundary.
type InternalError struct {
	Message string
}

func (e *InternalError) Error() string { return "internal compiler error: " + e.Message }

// -----------------------------------------------------------------------------

// Sink receives diagnostics as they are produced. Parsers swap in a
// BufferingSink during speculative work (spec.md §4.D decl-ref resolution)
// and replay or discard it on commit/backtrack.
type Sink interface {
	Report(Diagnostic)
}

// BufferingSink accumulates diagnostics in source order instead of emitting
// them immediately, so speculative parses can discard or replay them.
type BufferingSink struct {
	buffered []Diagnostic
}

func (b *BufferingSink) Report(d Diagnostic) {
	b.buffered = append(b.buffered, d)
}

// Commit replays every buffered diagnostic to dst, in the order recorded.
func (b *BufferingSink) Commit(dst Sink) {
	for _, d := range b.buffered {
		dst.Report(d)
	}
}

// Discard drops every buffered diagnostic (the backtrack path).
func (b *BufferingSink) Discard() {
	b.buffered = nil
}

// HasAny reports whether any diagnostic, of any level, was buffered.
func (b *BufferingSink) HasAny() bool {
	return len(b.buffered) > 0
}
