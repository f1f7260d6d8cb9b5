package ir

import "chai/internal/source"

// noRange is a zero source.Range, good enough for tests that never render a
// diagnostic against it.
func noRange() source.Range { return source.Range{} }
