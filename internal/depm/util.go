package depm

import "hash/fnv"

// GenerateID derives a stable module identity from its absolute root path.
func GenerateID(abspath string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(abspath))
	return h.Sum64()
}

// IsValidIdentifier reports whether idstr could name a module or package:
// a letter or underscore followed by letters, digits, or underscores.
func IsValidIdentifier(idstr string) bool {
	if idstr == "" {
		return false
	}

	first := idstr[0]
	if !(first == '_' || ('a' <= first && first <= 'z') || ('A' <= first && first <= 'Z')) {
		return false
	}

	for _, c := range idstr[1:] {
		if c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') {
			continue
		}
		return false
	}

	return true
}
