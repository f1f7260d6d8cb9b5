// Package source owns immutable source buffers and maps byte offsets to
// line/column positions.
package source

import (
	"fmt"
	"io"
	"os"
	"sort"
	"unicode/utf8"
)

// FileID uniquely identifies a loaded source file within a Manager.
type FileID int

// File is an immutable source buffer together with the precomputed line
// table needed to turn byte offsets into (line, column) pairs.
type File struct {
	id   FileID
	path string // display path; for synthesized files this is the virtual URL
	text string

	// lineStarts[i] is the byte offset of the first byte of line i (0-indexed).
	lineStarts []int
}

// ID returns the file's identity within its owning Manager.
func (f *File) ID() FileID { return f.id }

// Path returns the file's display path or virtual URL.
func (f *File) Path() string { return f.path }

// Text returns the full source text.
func (f *File) Text() string { return f.text }

// Len returns the number of bytes in the file.
func (f *File) Len() int { return len(f.text) }

// Position is a (line, column) pair, both zero-indexed, as required by
// spec.md's diagnostic rendering.
type Position struct {
	Line, Col int
}

// PositionFor converts a byte index into the file into a zero-indexed
// (line, column) pair via binary search over the precomputed line starts.
func (f *File) PositionFor(byteIndex int) Position {
	if byteIndex < 0 {
		byteIndex = 0
	} else if byteIndex > len(f.text) {
		byteIndex = len(f.text)
	}

	// lineStarts is sorted; find the last line start <= byteIndex.
	line := sort.Search(len(f.lineStarts), func(i int) bool {
		return f.lineStarts[i] > byteIndex
	}) - 1
	if line < 0 {
		line = 0
	}

	return Position{Line: line, Col: byteIndex - f.lineStarts[line]}
}

// LineStartByte returns the byte offset of the first byte of the given
// zero-indexed line.
func (f *File) LineStartByte(line int) int {
	if line < 0 {
		line = 0
	} else if line >= len(f.lineStarts) {
		line = len(f.lineStarts) - 1
	}
	return f.lineStarts[line]
}

// LineText returns the text of the line containing byteIndex, without its
// trailing newline.
func (f *File) LineText(byteIndex int) string {
	pos := f.PositionFor(byteIndex)
	start := f.lineStarts[pos.Line]

	end := len(f.text)
	if pos.Line+1 < len(f.lineStarts) {
		end = f.lineStarts[pos.Line+1] - 1
		if end < start {
			end = start
		}
	}

	for end > start && (f.text[end-1] == '\n' || f.text[end-1] == '\r') {
		end--
	}

	return f.text[start:end]
}

// Range is a half-open [Start, End) byte range within a single file. The
// invariant that a Range never crosses a file boundary is enforced by
// construction: a Range always carries the FileID of the File it was cut
// from.
type Range struct {
	File  FileID
	Start int
	End   int
}

// IsValid reports whether the range satisfies Start <= End.
func (r Range) IsValid() bool { return r.Start <= r.End }

// Over returns the smallest range spanning both a and b. Both must belong
// to the same file.
func Over(a, b Range) Range {
	r := Range{File: a.File, Start: a.Start, End: b.End}
	if b.Start < a.Start {
		r.Start = b.Start
	}
	if a.End > b.End {
		r.End = a.End
	}
	return r
}

// -----------------------------------------------------------------------------

// Manager owns every source buffer loaded or synthesized during a single
// compilation. It is not safe to share a Manager across goroutines that are
// concurrently loading files.
type Manager struct {
	files []*File
}

// NewManager creates an empty source manager.
func NewManager() *Manager {
	return &Manager{}
}

// Load reads the file at path and registers it with the manager.
func (m *Manager) Load(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("source: cannot open %q: %w", path, err)
	}
	defer f.Close()

	buf, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("source: cannot read %q: %w", path, err)
	}

	if !utf8.Valid(buf) {
		return nil, fmt.Errorf("source: %q is not valid UTF-8", path)
	}

	return m.register(path, string(buf)), nil
}

// LoadSynthesized registers in-memory source text under a virtual URL (used
// for REPL input, injected prelude text, and tests). The url need not refer
// to anything on disk but must be unique within the manager.
func (m *Manager) LoadSynthesized(url, text string) *File {
	return m.register(url, text)
}

func (m *Manager) register(path, text string) *File {
	f := &File{
		id:         FileID(len(m.files)),
		path:       path,
		text:       text,
		lineStarts: computeLineStarts(text),
	}
	m.files = append(m.files, f)
	return f
}

// File returns the file registered under the given ID.
func (m *Manager) File(id FileID) *File {
	return m.files[id]
}

func computeLineStarts(text string) []int {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}
