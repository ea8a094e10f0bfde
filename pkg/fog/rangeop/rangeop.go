// Package rangeop turns a rectangular drag gesture into one batched cell
// mutation.
//
// The gesture is an explicit state machine: Idle, then Dragging after
// Begin, then Idle again after Release or Cancel. Intermediate pointer
// movement only updates the preview rectangle; the store is mutated
// exactly once, at release. Hosts draw the preview however they like and
// hand the final corner points here.
package rangeop

import (
	"github.com/fogbanklabs/fogbank/pkg/errors"
	"github.com/fogbanklabs/fogbank/pkg/fog"
	"github.com/fogbanklabs/fogbank/pkg/grid"
)

// Mode selects what a completed gesture does to the covered cells.
type Mode string

const (
	ModePaint Mode = "paint"
	ModeErase Mode = "erase"
)

// Phase is the lifecycle state of a gesture.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDragging
)

// Actor identifies who is performing the gesture. Privileged actors may
// erase cells painted by others.
type Actor struct {
	ID         string
	Privileged bool
}

// Gesture tracks one drag from anchor to release. A Gesture is reusable:
// after Release or Cancel it returns to idle and a new drag can begin.
// Not safe for concurrent use; a gesture belongs to one pointer.
type Gesture struct {
	mode     Mode
	actor    Actor
	cellSize float64

	phase   Phase
	anchor  grid.Coord
	current grid.Coord
}

// NewGesture creates an idle gesture for the given mode and actor.
func NewGesture(mode Mode, actor Actor, cellSize float64) (*Gesture, error) {
	if mode != ModePaint && mode != ModeErase {
		return nil, errors.New(errors.ErrCodeInvalidGesture, "unknown gesture mode %q", mode)
	}
	if err := errors.ValidateUserID(actor.ID); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidGesture, err, "gesture actor")
	}
	if err := grid.ValidateCellSize(cellSize); err != nil {
		return nil, err
	}
	return &Gesture{mode: mode, actor: actor, cellSize: cellSize}, nil
}

// Phase returns the current lifecycle state.
func (g *Gesture) CurrentPhase() Phase { return g.phase }

// Mode returns the gesture's mode.
func (g *Gesture) Mode() Mode { return g.mode }

// Begin anchors the drag at the pixel point (x, y). It is an error to
// begin while a drag is already in progress.
func (g *Gesture) Begin(x, y float64) error {
	if g.phase != PhaseIdle {
		return errors.New(errors.ErrCodeInvalidGesture, "drag already in progress")
	}
	cell, err := grid.CellAt(x, y, g.cellSize)
	if err != nil {
		return err
	}
	g.anchor = cell
	g.current = cell
	g.phase = PhaseDragging
	return nil
}

// Move updates the drag's trailing corner. Moves do not touch the store;
// they only change what Preview reports.
func (g *Gesture) Move(x, y float64) error {
	if g.phase != PhaseDragging {
		return errors.New(errors.ErrCodeInvalidGesture, "move without an active drag")
	}
	cell, err := grid.CellAt(x, y, g.cellSize)
	if err != nil {
		return err
	}
	g.current = cell
	return nil
}

// Preview returns the rectangle the gesture currently covers, normalized
// from the anchor and the latest pointer cell. The second return is false
// while the gesture is idle.
func (g *Gesture) Preview() (grid.Rect, bool) {
	if g.phase != PhaseDragging {
		return grid.Rect{}, false
	}
	return grid.RectBetween(g.anchor, g.current), true
}

// Release completes the drag at (x, y) and applies the one batched
// mutation to the store: PaintRect in paint mode, EraseRect (with the
// actor's authorization) in erase mode. It returns the affected rectangle
// and, for erase, the number of cells actually removed; unauthorized
// cells are skipped silently, never reported as an error. The gesture
// returns to idle regardless of outcome.
func (g *Gesture) Release(x, y float64, store *fog.Store) (grid.Rect, int, error) {
	if g.phase != PhaseDragging {
		return grid.Rect{}, 0, errors.New(errors.ErrCodeInvalidGesture, "release without an active drag")
	}
	cell, err := grid.CellAt(x, y, g.cellSize)
	if err != nil {
		// The drag stays active: the pointer never reached a valid
		// release point.
		return grid.Rect{}, 0, err
	}
	g.current = cell
	rect := grid.RectBetween(g.anchor, g.current)
	g.phase = PhaseIdle

	switch g.mode {
	case ModePaint:
		store.PaintRect(rect, g.actor.ID)
		return rect, rect.Area(), nil
	default:
		removed := store.EraseRect(rect, g.actor.ID, g.actor.Privileged)
		return rect, removed, nil
	}
}

// Cancel abandons an in-progress drag without touching the store.
// Canceling an idle gesture is a no-op.
func (g *Gesture) Cancel() {
	g.phase = PhaseIdle
}

// Op returns the fog.Op equivalent of releasing the gesture over the
// given rectangle. Hosts that forward mutations to a collaborator layer
// instead of a local store use this to serialize the batched mutation.
func (g *Gesture) Op(rect grid.Rect) fog.Op {
	op := fog.Op{
		Col:  rect.MinCol,
		Row:  rect.MinRow,
		Col2: rect.MaxCol,
		Row2: rect.MaxRow,
	}
	if g.mode == ModePaint {
		op.Kind = fog.OpPaintRect
		op.Creator = g.actor.ID
	} else {
		op.Kind = fog.OpEraseRect
		op.Requester = g.actor.ID
		op.Privileged = g.actor.Privileged
	}
	return op
}
