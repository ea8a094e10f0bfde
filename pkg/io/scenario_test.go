package io

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/fogbanklabs/fogbank/pkg/errors"
	"github.com/fogbanklabs/fogbank/pkg/fog"
	"github.com/fogbanklabs/fogbank/pkg/grid"
)

func TestReadJSON(t *testing.T) {
	input := `{
		"cell_size": 50,
		"cells": [
			{"col": 0, "row": 0, "creator": "alice"},
			{"col": 1, "row": 0, "creator": "alice"}
		],
		"ops": [
			{"kind": "paint", "col": 5, "row": 5, "creator": "bob"}
		]
	}`

	s, err := ReadJSON(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}

	store, err := s.Store()
	if err != nil {
		t.Fatalf("Store: %v", err)
	}
	if store.Len() != 3 {
		t.Errorf("Len = %d, want 3", store.Len())
	}
	if creator, _ := store.Creator(grid.Coord{Col: 5, Row: 5}); creator != "bob" {
		t.Errorf("op cell creator = %q, want bob", creator)
	}
}

func TestReadJSONRejectsBadInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"malformed json", `{"cell_size": `},
		{"unknown field", `{"cell_size": 50, "grid_width": 100}`},
		{"zero cell size", `{"cell_size": 0}`},
		{"missing creator", `{"cell_size": 50, "cells": [{"col": 0, "row": 0}]}`},
		{"bad op", `{"cell_size": 50, "ops": [{"kind": "smudge", "col": 0, "row": 0}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadJSON(strings.NewReader(tt.input)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestScenarioValidateCodes(t *testing.T) {
	s := &Scenario{CellSize: 50, Cells: []Cell{{Col: 0, Row: 0, Creator: ""}}}
	if err := s.Validate(); errors.GetCode(err) != errors.ErrCodeInvalidScenario {
		t.Errorf("got %v, want invalid scenario code", err)
	}
}

func TestLastWriterWinsOnRepeatedCells(t *testing.T) {
	s := &Scenario{
		CellSize: 50,
		Cells: []Cell{
			{Col: 0, Row: 0, Creator: "alice"},
			{Col: 0, Row: 0, Creator: "bob"},
		},
	}
	store, err := s.Store()
	if err != nil {
		t.Fatalf("Store: %v", err)
	}
	if creator, _ := store.Creator(grid.Coord{Col: 0, Row: 0}); creator != "bob" {
		t.Errorf("creator = %q, want bob (last writer)", creator)
	}
}

func TestRoundTripThroughFile(t *testing.T) {
	store := fog.NewStore()
	store.PaintRect(grid.RectBetween(grid.Coord{Col: 0, Row: 0}, grid.Coord{Col: 2, Row: 2}), "alice")
	store.Paint(grid.Coord{Col: -4, Row: 7}, "bob")

	path := filepath.Join(t.TempDir(), "table.json")
	if err := ExportJSON(FromStore(store, 50), path); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}

	imported, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}
	restored, err := imported.Store()
	if err != nil {
		t.Fatalf("Store: %v", err)
	}

	if restored.Hash() != store.Hash() {
		t.Error("round trip should preserve the cell set exactly")
	}
	if imported.CellSize != 50 {
		t.Errorf("cell size = %v, want 50", imported.CellSize)
	}
}

func TestImportJSONMissingFile(t *testing.T) {
	if _, err := ImportJSON(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestImportJSONRejectsUnsafePath(t *testing.T) {
	for _, path := range []string{"", "../outside/table.json", "bad\x00name.json"} {
		_, err := ImportJSON(path)
		if err == nil {
			t.Errorf("ImportJSON(%q) should fail", path)
			continue
		}
		if code := errors.GetCode(err); code != errors.ErrCodeInvalidPath {
			t.Errorf("ImportJSON(%q) code = %s, want %s", path, code, errors.ErrCodeInvalidPath)
		}
	}
}

func TestExportJSONRejectsUnsafePath(t *testing.T) {
	s := &Scenario{CellSize: 50}
	err := ExportJSON(s, "../escape/table.json")
	if err == nil {
		t.Fatal("ExportJSON with a traversal path should fail")
	}
	if code := errors.GetCode(err); code != errors.ErrCodeInvalidPath {
		t.Errorf("code = %s, want %s", code, errors.ErrCodeInvalidPath)
	}
}
