package canvas

import "github.com/purvjoshi04/SharedInk/internal/shape"

// Store is the ordered shape collection for one room on one client.
// Insertion order is draw/arrival order. The store is not safe for
// concurrent use; the sync client serializes all access on its event
// loop.
type Store struct {
	shapes []shape.Shape
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Len returns the number of shapes.
func (st *Store) Len() int {
	return len(st.shapes)
}

// At returns the shape at index i.
func (st *Store) At(i int) shape.Shape {
	return st.shapes[i]
}

// Append adds a locally drawn shape.
func (st *Store) Append(s shape.Shape) {
	st.shapes = append(st.shapes, s)
}

// Snapshot returns a copy of the shape sequence. Pencil point slices
// are shared; callers must not mutate them.
func (st *Store) Snapshot() []shape.Shape {
	out := make([]shape.Shape, len(st.shapes))
	copy(out, st.shapes)
	return out
}

// UpsertRemote merges a peer's canvas-state reply: each shape is added
// only if no structurally identical copy exists. Returns the number of
// shapes added.
func (st *Store) UpsertRemote(shapes []shape.Shape) int {
	seen := make(map[string]struct{}, len(st.shapes))
	for _, s := range st.shapes {
		seen[s.Key()] = struct{}{}
	}

	added := 0
	for _, s := range shapes {
		key := s.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		st.shapes = append(st.shapes, s)
		seen[key] = struct{}{}
		added++
	}
	return added
}

// ApplyRemoteAdd appends a broadcast shape unless it is already present.
// The presence check guards against receiving one's own echo.
func (st *Store) ApplyRemoteAdd(s shape.Shape) bool {
	key := s.Key()
	for _, existing := range st.shapes {
		if existing.Key() == key {
			return false
		}
	}
	st.shapes = append(st.shapes, s)
	return true
}

// ApplyRemoteDelete removes the first entry addressed by s. Returns
// false when nothing matched, which covers stale references from
// out-of-order delete/move races.
func (st *Store) ApplyRemoteDelete(s shape.Shape) bool {
	for i, existing := range st.shapes {
		if existing.Matches(s) {
			st.shapes = append(st.shapes[:i], st.shapes[i+1:]...)
			return true
		}
	}
	return false
}

// ApplyRemoteMove replaces the first entry addressed by oldShape with
// newShape, in place. A miss is a no-op.
func (st *Store) ApplyRemoteMove(oldShape, newShape shape.Shape) bool {
	for i, existing := range st.shapes {
		if existing.Matches(oldShape) {
			st.shapes[i] = newShape
			return true
		}
	}
	return false
}

// ReplaceAt overwrites the shape at index i, used for live drag
// feedback.
func (st *Store) ReplaceAt(i int, s shape.Shape) {
	st.shapes[i] = s
}

// IndexOf returns the index of the first entry addressed by s, or -1.
func (st *Store) IndexOf(s shape.Shape) int {
	for i, existing := range st.shapes {
		if existing.Matches(s) {
			return i
		}
	}
	return -1
}

// HitTest returns the top-most shape containing the world point, last
// drawn wins.
func (st *Store) HitTest(x, y, scale float64) (shape.Shape, bool) {
	for i := len(st.shapes) - 1; i >= 0; i-- {
		if st.shapes[i].ContainsPoint(x, y, scale) {
			return st.shapes[i], true
		}
	}
	return shape.Shape{}, false
}
