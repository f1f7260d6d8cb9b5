package source

import "testing"

func TestLoadSynthesizedRegistersUniqueFileID(t *testing.T) {
	mgr := NewManager()
	a := mgr.LoadSynthesized("a.chai", "one")
	b := mgr.LoadSynthesized("b.chai", "two")

	if a.ID() == b.ID() {
		t.Fatalf("expected distinct FileIDs for distinct synthesized files")
	}
	if mgr.File(a.ID()) != a || mgr.File(b.ID()) != b {
		t.Fatalf("expected Manager.File to resolve back to the registered *File")
	}
}

func TestPositionForAcrossLines(t *testing.T) {
	mgr := NewManager()
	f := mgr.LoadSynthesized("test.chai", "abc\ndef\nghi")

	pos := f.PositionFor(5) // 'e' in "def"
	if pos.Line != 1 || pos.Col != 1 {
		t.Fatalf("expected line 1 col 1, got line %d col %d", pos.Line, pos.Col)
	}

	pos = f.PositionFor(0)
	if pos.Line != 0 || pos.Col != 0 {
		t.Fatalf("expected line 0 col 0 at the start of the file, got line %d col %d", pos.Line, pos.Col)
	}
}

func TestLineText(t *testing.T) {
	mgr := NewManager()
	f := mgr.LoadSynthesized("test.chai", "abc\ndef\nghi")

	if got := f.LineText(5); got != "def" {
		t.Fatalf("expected line text %q, got %q", "def", got)
	}
	if got := f.LineText(9); got != "ghi" {
		t.Fatalf("expected final line text %q, got %q", "ghi", got)
	}
}

func TestRangeIsValid(t *testing.T) {
	if !(Range{Start: 2, End: 2}).IsValid() {
		t.Fatalf("expected a zero-width range to be valid")
	}
	if (Range{Start: 5, End: 2}).IsValid() {
		t.Fatalf("expected Start > End to be invalid")
	}
}

func TestOverSpansBothRanges(t *testing.T) {
	a := Range{File: 0, Start: 5, End: 8}
	b := Range{File: 0, Start: 2, End: 4}

	got := Over(a, b)
	if got.Start != 2 || got.End != 8 {
		t.Fatalf("expected Over to span [2, 8), got [%d, %d)", got.Start, got.End)
	}

	// Over must also handle b lying entirely after a.
	got = Over(a, Range{File: 0, Start: 10, End: 20})
	if got.Start != 5 || got.End != 20 {
		t.Fatalf("expected Over to span [5, 20), got [%d, %d)", got.Start, got.End)
	}
}
