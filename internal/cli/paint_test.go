package cli

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fogbanklabs/fogbank/pkg/fog"
	"github.com/fogbanklabs/fogbank/pkg/fog/rangeop"
	"github.com/fogbanklabs/fogbank/pkg/grid"
)

func press(t *testing.T, m paintModel, keys ...tea.KeyMsg) paintModel {
	t.Helper()
	var model tea.Model = m
	for _, key := range keys {
		model, _ = model.Update(key)
	}
	return model.(paintModel)
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestPaintModelPaintsAtCursor(t *testing.T) {
	m := newPaintModel(filepath.Join(t.TempDir(), "t.json"), fog.NewStore(), 50, "alice", false)

	m = press(t, m,
		tea.KeyMsg{Type: tea.KeyRight},
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeySpace},
	)

	creator, ok := m.store.Creator(grid.Coord{Col: 1, Row: 1})
	if !ok || creator != "alice" {
		t.Errorf("creator = %q/%v, want alice/true", creator, ok)
	}
	if !m.dirty {
		t.Error("painting should mark the model dirty")
	}
}

func TestPaintModelEraseRespectsOwnership(t *testing.T) {
	store := fog.NewStore()
	store.Paint(grid.Coord{Col: 0, Row: 0}, "bob")
	m := newPaintModel(filepath.Join(t.TempDir(), "t.json"), store, 50, "alice", false)

	// Switch to erase mode and hit bob's cell.
	m = press(t, m, runeKey('m'), tea.KeyMsg{Type: tea.KeySpace})

	if m.mode != rangeop.ModeErase {
		t.Fatalf("mode = %s, want erase", m.mode)
	}
	if !m.store.Contains(grid.Coord{Col: 0, Row: 0}) {
		t.Error("a player must not erase someone else's fog")
	}
}

func TestPaintModelRangeDrag(t *testing.T) {
	m := newPaintModel(filepath.Join(t.TempDir(), "t.json"), fog.NewStore(), 50, "alice", false)

	m = press(t, m, runeKey('b'))
	if m.gesture == nil {
		t.Fatal("b should begin a range gesture")
	}

	m = press(t, m,
		tea.KeyMsg{Type: tea.KeyRight},
		tea.KeyMsg{Type: tea.KeyRight},
		tea.KeyMsg{Type: tea.KeyDown},
	)
	want := grid.Rect{MinCol: 0, MinRow: 0, MaxCol: 2, MaxRow: 1}
	if rect, ok := m.gesture.Preview(); !ok || rect != want {
		t.Errorf("preview = %v/%v, want %v", rect, ok, want)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.gesture != nil {
		t.Error("release should end the gesture")
	}
	if m.store.Len() != 6 {
		t.Errorf("store has %d cells, want 6", m.store.Len())
	}
}

func TestPaintModelCancelDrag(t *testing.T) {
	m := newPaintModel(filepath.Join(t.TempDir(), "t.json"), fog.NewStore(), 50, "alice", false)

	m = press(t, m, runeKey('b'), tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyEsc})
	if m.gesture != nil {
		t.Error("esc should cancel the gesture")
	}
	if m.store.Len() != 0 {
		t.Error("cancelled drag must not paint anything")
	}
}
