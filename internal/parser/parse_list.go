package parser

import "chai/internal/token"

// parseList implements spec.md §4.D's `list[L, item, R]` helper: a left
// delimiter, comma-separated items, and a right delimiter. A missing right
// delimiter is recovered by skipping to the next instance of R, `}`, or
// `;`, then trying once more to take R.
//
// Go does not allow generic methods, so this is a free function
// parameterized over the item type rather than a method on *State.
func parseList[T any](s *State, left, right token.Kind, parseItem func() T) []T {
	s.takeKind(left)

	var items []T
	if s.gotKind(right) {
		s.take()
		return items
	}

	for {
		items = append(items, parseItem())

		if s.gotKind(token.Comma) {
			s.take()
			if s.gotKind(right) {
				break // trailing comma
			}
			continue
		}
		break
	}

	s.expectListEnd(right)
	return items
}

// expectListEnd consumes the right delimiter, or recovers per spec.md §4.D
// if it is missing.
func (s *State) expectListEnd(right token.Kind) {
	if s.gotKind(right) {
		s.take()
		return
	}

	for !s.gotOneOf(right, token.RBrace, token.Semi, token.EOF) {
		s.take()
	}

	if s.gotKind(right) {
		s.take()
		return
	}

	s.fail("expected closing delimiter")
}
