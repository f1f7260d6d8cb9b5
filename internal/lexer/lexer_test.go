package lexer

import (
	"testing"

	"chai/internal/source"
	"chai/internal/token"
)

func lexAll(t *testing.T, text string) []*token.Token {
	t.Helper()
	mgr := source.NewManager()
	file := mgr.LoadSynthesized("test.chai", text)
	l := New(file)

	var toks []*token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

// TestLexStringLiteral is spec.md §8 scenario 1: `"Salut"` lexes to exactly
// one string token spanning the quoted range.
func TestLexStringLiteral(t *testing.T) {
	toks := lexAll(t, `"Salut"`)
	if len(toks) != 2 || toks[0].Kind != token.StringLit || toks[1].Kind != token.EOF {
		t.Fatalf("expected [string, EOF], got %v", describeKinds(toks))
	}

	got := toks[0]
	if got.Value != `"Salut"` {
		t.Fatalf("expected token text to be the full quoted literal, got %q", got.Value)
	}
	if got.Range.Start != 0 || got.Range.End != len(`"Salut"`) {
		t.Fatalf("expected range [0, %d), got [%d, %d)", len(`"Salut"`), got.Range.Start, got.Range.End)
	}
}

func describeKinds(toks []*token.Token) []token.Kind {
	kinds := make([]token.Kind, len(toks))
	for i, t := range toks {
		kinds[i] = t.Kind
	}
	return kinds
}

func TestLexKeywordsAndIdentifiers(t *testing.T) {
	toks := lexAll(t, "fun val x")
	want := []token.Kind{token.KwFun, token.KwVal, token.Name, token.EOF}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Fatalf("token %d: expected %s, got %s", i, k, toks[i].Kind)
		}
	}
	if toks[2].Value != "x" {
		t.Fatalf("expected identifier text %q, got %q", "x", toks[2].Value)
	}
}

func TestLexIntAndFloatLiterals(t *testing.T) {
	toks := lexAll(t, "42 3.14 0x1F")
	if toks[0].Kind != token.IntLit || toks[0].Value != "42" {
		t.Fatalf("expected int literal 42, got %s %q", toks[0].Kind, toks[0].Value)
	}
	if toks[1].Kind != token.FloatLit || toks[1].Value != "3.14" {
		t.Fatalf("expected float literal 3.14, got %s %q", toks[1].Kind, toks[1].Value)
	}
	if toks[2].Kind != token.IntLit || toks[2].Value != "0x1F" {
		t.Fatalf("expected hex int literal 0x1F, got %s %q", toks[2].Kind, toks[2].Value)
	}
}

func TestLexArrowIsOneTokenNotMinusThenGreater(t *testing.T) {
	toks := lexAll(t, "->")
	if len(toks) != 2 || toks[0].Kind != token.Arrow {
		t.Fatalf("expected a single Arrow token, got %v", describeKinds(toks))
	}
}

func TestLexCommentsAreSkipped(t *testing.T) {
	toks := lexAll(t, "1 // trailing comment\n2 /* block */ 3")
	want := []token.Kind{token.IntLit, token.IntLit, token.IntLit, token.EOF}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Fatalf("token %d: expected %s, got %s", i, k, toks[i].Kind)
		}
	}
}

// TestLexUnknownByteRecovers checks spec.md §4.B's "lexing never halts"
// rule: an unrecognized byte yields an Error token and scanning continues.
func TestLexUnknownByteRecovers(t *testing.T) {
	toks := lexAll(t, "1 # 2")
	if toks[0].Kind != token.IntLit {
		t.Fatalf("expected leading int literal, got %s", toks[0].Kind)
	}
	if toks[1].Kind != token.Error {
		t.Fatalf("expected an Error token for the unrecognized byte, got %s", toks[1].Kind)
	}
	if toks[2].Kind != token.IntLit {
		t.Fatalf("expected lexing to continue past the bad byte, got %s", toks[2].Kind)
	}
}

func TestLexUnterminatedStringIsErrorNotPanic(t *testing.T) {
	toks := lexAll(t, `"unterminated`)
	if toks[0].Kind != token.Error {
		t.Fatalf("expected an Error token for an unterminated string, got %s", toks[0].Kind)
	}
}

func TestLexGenericBracketsAreSeparateFromOperators(t *testing.T) {
	toks := lexAll(t, "<A>")
	want := []token.Kind{token.LAngle, token.Name, token.RAngle, token.EOF}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Fatalf("token %d: expected %s, got %s", i, k, toks[i].Kind)
		}
	}
}

func TestLexPosSetPosRoundTrips(t *testing.T) {
	mgr := source.NewManager()
	file := mgr.LoadSynthesized("test.chai", "1 2 3")
	l := New(file)

	l.NextToken() // consume "1"
	mark := l.Pos()
	second := l.NextToken()
	if second.Value != "2" {
		t.Fatalf("expected to read \"2\" next, got %q", second.Value)
	}

	l.SetPos(mark)
	replay := l.NextToken()
	if replay.Value != "2" {
		t.Fatalf("expected SetPos to rewind the lexer, got %q", replay.Value)
	}
}
