package parser

import (
	"chai/internal/ast"
	"chai/internal/diag"
	"chai/internal/source"
)

// testSink is a plain, order-preserving diag.Sink for tests — no buffering
// or replay semantics, unlike diag.BufferingSink, since tests just want to
// inspect what was reported.
type testSink struct {
	diags []diag.Diagnostic
}

func (s *testSink) Report(d diag.Diagnostic) { s.diags = append(s.diags, d) }

func (s *testSink) messages() []string {
	msgs := make([]string, len(s.diags))
	for i, d := range s.diags {
		msgs[i] = d.Message
	}
	return msgs
}

// newTestState builds a parser State positioned at the start of a
// synthesized in-memory file, along with the sink it reports to.
func newTestState(text string) (*State, *testSink) {
	mgr := source.NewManager()
	file := mgr.LoadSynthesized("test.chai", text)
	sink := &testSink{}
	return New(file, ast.NewArena(), sink), sink
}
