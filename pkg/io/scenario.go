package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fogbanklabs/fogbank/pkg/errors"
	"github.com/fogbanklabs/fogbank/pkg/fog"
	"github.com/fogbanklabs/fogbank/pkg/grid"
)

// Cell is one painted cell in a scenario file.
type Cell struct {
	Col     int    `json:"col"`
	Row     int    `json:"row"`
	Creator string `json:"creator"`
}

// Scenario is a serializable snapshot of a fog table.
type Scenario struct {
	CellSize float64  `json:"cell_size"`
	Cells    []Cell   `json:"cells,omitempty"`
	Ops      []fog.Op `json:"ops,omitempty"`
}

// Validate checks the scenario's cell size, cell creators, and ops.
func (s *Scenario) Validate() error {
	if err := grid.ValidateCellSize(s.CellSize); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidScenario, err, "scenario")
	}
	for i, c := range s.Cells {
		if err := errors.ValidateUserID(c.Creator); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidScenario, err, "cell %d (%d,%d)", i, c.Col, c.Row)
		}
	}
	for i, op := range s.Ops {
		if err := op.Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidScenario, err, "op %d", i)
		}
	}
	return nil
}

// Store materializes the scenario into a cell store: the initial cells in
// file order (last writer wins on repeats), then the ops replayed in order.
func (s *Scenario) Store() (*fog.Store, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	store := fog.NewStore()
	for _, c := range s.Cells {
		store.Paint(grid.Coord{Col: c.Col, Row: c.Row}, c.Creator)
	}
	for i, op := range s.Ops {
		if err := store.Apply(op); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScenario, err, "op %d", i)
		}
	}
	return store, nil
}

// FromStore snapshots a cell store into a scenario. Cells are emitted in
// canonical scan order so exports of equal stores are byte-identical.
func FromStore(store *fog.Store, cellSize float64) *Scenario {
	s := &Scenario{CellSize: cellSize}
	for _, c := range store.Coords() {
		creator, _ := store.Creator(c)
		s.Cells = append(s.Cells, Cell{Col: c.Col, Row: c.Row, Creator: creator})
	}
	return s
}

// ReadJSON decodes a scenario from r and validates it.
//
// ReadJSON returns an error if the JSON is malformed, the cell size is not
// a positive finite number, a cell has a malformed creator id, or an op
// fails validation. The returned scenario is independent of r; ReadJSON
// does not close r.
func ReadJSON(r io.Reader) (*Scenario, error) {
	var s Scenario
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// ImportJSON reads a scenario file at path.
//
// ImportJSON validates the path, opens the file, decodes it using
// [ReadJSON], and closes the file. Errors wrap the underlying cause with
// the file path for context.
func ImportJSON(path string) (*Scenario, error) {
	if err := errors.ValidateScenarioPath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

// WriteJSON encodes a scenario as indented JSON and writes it to w.
// The output can be re-imported with [ReadJSON] for round-trip processing.
func WriteJSON(s *Scenario, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a scenario to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
// The path is validated before the file is created.
func ExportJSON(s *Scenario, path string) error {
	if err := errors.ValidateScenarioPath(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(s, f)
}
