package fog

import (
	"crypto/sha256"
	"encoding/hex"
	"slices"

	"github.com/fogbanklabs/fogbank/pkg/grid"
)

// Store is the authoritative collection of painted cells.
// Each cell records the id of the user who painted it.
type Store struct {
	cells map[grid.Coord]string
}

// NewStore creates an empty cell store.
func NewStore() *Store {
	return &Store{cells: make(map[grid.Coord]string)}
}

// Paint inserts or overwrites the cell at c. Painting the same cell twice
// is idempotent apart from the creator, which follows the latest write.
func (s *Store) Paint(c grid.Coord, creatorID string) {
	s.cells[c] = creatorID
}

// Erase removes the cell at c. Erasing an absent cell is a no-op.
func (s *Store) Erase(c grid.Coord) {
	delete(s.cells, c)
}

// PaintRect paints every cell in the rectangle with the given creator.
func (s *Store) PaintRect(r grid.Rect, creatorID string) {
	r.ForEach(func(c grid.Coord) { s.cells[c] = creatorID })
}

// EraseRect removes cells in the rectangle that the requester is allowed to
// erase: cells painted by the requester, or any cell when privileged is set.
// Unauthorized cells are silently skipped. Returns the number of cells
// removed.
func (s *Store) EraseRect(r grid.Rect, requesterID string, privileged bool) int {
	removed := 0
	r.ForEach(func(c grid.Coord) {
		creator, ok := s.cells[c]
		if !ok {
			return
		}
		if !privileged && creator != requesterID {
			return
		}
		delete(s.cells, c)
		removed++
	})
	return removed
}

// Contains reports whether the cell at c is painted.
func (s *Store) Contains(c grid.Coord) bool {
	_, ok := s.cells[c]
	return ok
}

// Creator returns the id of the user who painted the cell at c.
func (s *Store) Creator(c grid.Coord) (string, bool) {
	creator, ok := s.cells[c]
	return creator, ok
}

// Len returns the number of painted cells.
func (s *Store) Len() int { return len(s.cells) }

// Cells returns a copy of the cell map. The copy is independent of the
// store and safe to hand to the segmenter.
func (s *Store) Cells() map[grid.Coord]string {
	out := make(map[grid.Coord]string, len(s.cells))
	for c, creator := range s.cells {
		out[c] = creator
	}
	return out
}

// Coords returns all painted coordinates in canonical scan order
// (row first, then column).
func (s *Store) Coords() []grid.Coord {
	out := make([]grid.Coord, 0, len(s.cells))
	for c := range s.cells {
		out = append(out, c)
	}
	slices.SortFunc(out, grid.Coord.Compare)
	return out
}

// Clone returns a deep copy of the store.
func (s *Store) Clone() *Store {
	return &Store{cells: s.Cells()}
}

// Hash returns a hex SHA-256 digest of the canonical serialization of the
// cell set (scan-ordered "col,row=creator" lines). Two stores with the same
// cells and creators hash identically regardless of mutation history, which
// makes the hash suitable for content-addressed caching.
func (s *Store) Hash() string {
	h := sha256.New()
	for _, c := range s.Coords() {
		h.Write([]byte(c.Key()))
		h.Write([]byte{'='})
		h.Write([]byte(s.cells[c]))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}
