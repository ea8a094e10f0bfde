package fog

import (
	"github.com/fogbanklabs/fogbank/pkg/errors"
	"github.com/fogbanklabs/fogbank/pkg/grid"
)

// OpKind identifies one of the four atomic cell operations the collaborator
// layer delivers to the engine.
type OpKind string

const (
	OpPaint     OpKind = "paint"
	OpErase     OpKind = "erase"
	OpPaintRect OpKind = "paint_rect"
	OpEraseRect OpKind = "erase_rect"
)

// Op is a single atomic mutation of the cell store. Ops arrive from the
// collaborator layer in delivery order; applying them in that order yields
// last-writer-wins semantics without any conflict resolution in the engine.
//
// Col/Row name one corner of the affected area. For rect kinds, Col2/Row2
// name the opposite corner; the rectangle is normalized on apply, so corner
// order does not matter.
type Op struct {
	Kind OpKind `json:"kind" bson:"kind"`

	Col  int `json:"col" bson:"col"`
	Row  int `json:"row" bson:"row"`
	Col2 int `json:"col2,omitempty" bson:"col2,omitempty"`
	Row2 int `json:"row2,omitempty" bson:"row2,omitempty"`

	// Creator is the painting user for paint kinds.
	Creator string `json:"creator,omitempty" bson:"creator,omitempty"`

	// Requester and Privileged gate erase_rect; single-cell erase is
	// unconditional, matching the collaborator's delta semantics.
	Requester  string `json:"requester,omitempty" bson:"requester,omitempty"`
	Privileged bool   `json:"privileged,omitempty" bson:"privileged,omitempty"`
}

// Rect returns the normalized rectangle affected by a rect op.
func (op Op) Rect() grid.Rect {
	return grid.RectBetween(
		grid.Coord{Col: op.Col, Row: op.Row},
		grid.Coord{Col: op.Col2, Row: op.Row2},
	)
}

// Validate checks structural validity of the op: a known kind and, for paint
// kinds, a well-formed creator id.
func (op Op) Validate() error {
	switch op.Kind {
	case OpPaint, OpPaintRect:
		if err := errors.ValidateUserID(op.Creator); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidOp, err, "%s op", op.Kind)
		}
	case OpErase:
	case OpEraseRect:
		if err := errors.ValidateUserID(op.Requester); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidOp, err, "%s op", op.Kind)
		}
	default:
		return errors.New(errors.ErrCodeInvalidOp, "unknown op kind %q", op.Kind)
	}
	return nil
}

// Apply validates the op and applies it to the store. All mutations are
// total: the only error path is a structurally invalid op.
func (s *Store) Apply(op Op) error {
	if err := op.Validate(); err != nil {
		return err
	}
	switch op.Kind {
	case OpPaint:
		s.Paint(grid.Coord{Col: op.Col, Row: op.Row}, op.Creator)
	case OpErase:
		s.Erase(grid.Coord{Col: op.Col, Row: op.Row})
	case OpPaintRect:
		s.PaintRect(op.Rect(), op.Creator)
	case OpEraseRect:
		s.EraseRect(op.Rect(), op.Requester, op.Privileged)
	}
	return nil
}
