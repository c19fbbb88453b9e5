package profile

import "github.com/google/uuid"

// insertFront prepends so sequences stay most-recent-first.
func insertFront[T any](seq []T, entry T) []T {
	out := make([]T, 0, len(seq)+1)
	out = append(out, entry)
	return append(out, seq...)
}

// indexByID yields an explicit (index, ok) pair. Callers must branch on ok;
// there is no numeric not-found sentinel that could be mistaken for a position.
func indexByID[T any](seq []T, id uuid.UUID, idOf func(T) uuid.UUID) (int, bool) {
	for i, e := range seq {
		if idOf(e) == id {
			return i, true
		}
	}
	return 0, false
}

// removeByID returns the sequence without the matching entry. When no entry
// matches, the input is returned unchanged and ok is false.
func removeByID[T any](seq []T, id uuid.UUID, idOf func(T) uuid.UUID) ([]T, bool) {
	i, ok := indexByID(seq, id, idOf)
	if !ok {
		return seq, false
	}
	out := make([]T, 0, len(seq)-1)
	out = append(out, seq[:i]...)
	return append(out, seq[i+1:]...), true
}
