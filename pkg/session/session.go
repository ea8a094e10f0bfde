// Package session provides live table sessions for collaborative fog editing.
//
// A Session owns the authoritative cell store for one table, tracks its
// members and their roles, and applies operations in delivery order. Each
// applied op bumps a monotonic version so clients can detect staleness.
//
// Persistence goes through the Store interface, with implementations for
// different backends:
//   - memory: in-process storage for development and testing
//   - file: JSON files on disk for single-host deployments
//   - mongo: MongoDB-backed storage for production
//
// # Usage
//
// Create and persist a session:
//
//	sess, err := session.New("thursday game", 50)
//	if err != nil {
//	    return err
//	}
//	sess.Join("alice", session.RoleGamemaster)
//	store.Put(ctx, sess)
//
// Apply an operation on behalf of a member:
//
//	version, err := sess.Apply(ctx, "alice", fog.Op{
//	    Kind: fog.OpPaint, Col: 3, Row: 7,
//	})
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fogbanklabs/fogbank/pkg/errors"
	"github.com/fogbanklabs/fogbank/pkg/fog"
	"github.com/fogbanklabs/fogbank/pkg/grid"
	"github.com/fogbanklabs/fogbank/pkg/observability"
)

// Role determines what a member may do at the table.
type Role string

const (
	// RoleGamemaster members erase any cell and see all fog opaque by
	// default (the player-perspective view).
	RoleGamemaster Role = "gamemaster"

	// RolePlayer members paint freely but erase only their own fog.
	RolePlayer Role = "player"
)

// ValidRole reports whether r is a known role.
func ValidRole(r Role) bool {
	return r == RoleGamemaster || r == RolePlayer
}

// Session is a live fog table: members, the authoritative cell store, and a
// version counter. All methods are safe for concurrent use.
type Session struct {
	mu        sync.Mutex
	id        string
	name      string
	cellSize  float64
	members   map[string]Role
	cells     *fog.Store
	version   uint64
	createdAt time.Time
	updatedAt time.Time
}

// New creates an empty session with a fresh id.
func New(name string, cellSize float64) (*Session, error) {
	if err := grid.ValidateCellSize(cellSize); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &Session{
		id:        uuid.NewString(),
		name:      name,
		cellSize:  cellSize,
		members:   make(map[string]Role),
		cells:     fog.NewStore(),
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Name returns the table name.
func (s *Session) Name() string { return s.name }

// CellSize returns the pixel size of one grid cell.
func (s *Session) CellSize() float64 { return s.cellSize }

// Version returns the number of operations applied so far.
func (s *Session) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Join adds a member with the given role. Joining twice updates the role.
func (s *Session) Join(userID string, role Role) error {
	if err := errors.ValidateUserID(userID); err != nil {
		return err
	}
	if !ValidRole(role) {
		return errors.New(errors.ErrCodeInvalidViewer, "unknown role %q", role)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members[userID] = role
	s.updatedAt = time.Now().UTC()
	return nil
}

// Leave removes a member. The member's painted fog stays on the table.
func (s *Session) Leave(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.members, userID)
	s.updatedAt = time.Now().UTC()
}

// Role returns the member's role, if present.
func (s *Session) Role(userID string) (Role, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	role, ok := s.members[userID]
	return role, ok
}

// Members returns a copy of the membership map.
func (s *Session) Members() map[string]Role {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]Role, len(s.members))
	for id, role := range s.members {
		out[id] = role
	}
	return out
}

// Apply applies one operation on behalf of a member and returns the new
// session version. The op's identity fields are overwritten from the acting
// member, so a client cannot paint or erase as someone else. Rejected ops
// leave the store and version untouched.
func (s *Session) Apply(ctx context.Context, userID string, op fog.Op) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	role, ok := s.members[userID]
	if !ok {
		err := errors.New(errors.ErrCodeInvalidViewer, "user %q is not a member of session %s", userID, s.id)
		observability.Session().OnOpRejected(ctx, s.id, string(op.Kind), err)
		return s.version, err
	}

	switch op.Kind {
	case fog.OpPaint, fog.OpPaintRect:
		op.Creator = userID
	case fog.OpEraseRect:
		op.Requester = userID
		op.Privileged = role == RoleGamemaster
	}

	if err := s.cells.Apply(op); err != nil {
		observability.Session().OnOpRejected(ctx, s.id, string(op.Kind), err)
		return s.version, err
	}

	s.version++
	s.updatedAt = time.Now().UTC()
	observability.Session().OnOpApplied(ctx, s.id, string(op.Kind), s.version)
	return s.version, nil
}

// Snapshot returns an independent copy of the cell store, safe to hand to
// the pipeline while the session keeps mutating.
func (s *Session) Snapshot() *fog.Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cells.Clone()
}

// Document returns the serializable form of the session for persistence.
func (s *Session) Document() *Document {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := &Document{
		ID:        s.id,
		Name:      s.name,
		CellSize:  s.cellSize,
		Members:   make(map[string]Role, len(s.members)),
		Version:   s.version,
		CreatedAt: s.createdAt,
		UpdatedAt: s.updatedAt,
	}
	for id, role := range s.members {
		doc.Members[id] = role
	}
	for _, c := range s.cells.Coords() {
		creator, _ := s.cells.Creator(c)
		doc.Cells = append(doc.Cells, Cell{Col: c.Col, Row: c.Row, Creator: creator})
	}
	return doc
}

// Cell is one painted cell in a persisted session document.
type Cell struct {
	Col     int    `json:"col" bson:"col"`
	Row     int    `json:"row" bson:"row"`
	Creator string `json:"creator" bson:"creator"`
}

// Document is the persistent form of a session. Cells are stored in
// canonical scan order so documents diff cleanly.
type Document struct {
	ID        string          `json:"id" bson:"_id"`
	Name      string          `json:"name" bson:"name"`
	CellSize  float64         `json:"cell_size" bson:"cell_size"`
	Members   map[string]Role `json:"members" bson:"members"`
	Cells     []Cell          `json:"cells,omitempty" bson:"cells,omitempty"`
	Version   uint64          `json:"version" bson:"version"`
	CreatedAt time.Time       `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time       `json:"updated_at" bson:"updated_at"`
}

// FromDocument rebuilds a live session from its persisted form.
func FromDocument(doc *Document) (*Session, error) {
	if doc.ID == "" {
		return nil, errors.New(errors.ErrCodeInvalidScenario, "session document has no id")
	}
	if err := grid.ValidateCellSize(doc.CellSize); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScenario, err, "session %s", doc.ID)
	}

	cells := fog.NewStore()
	for i, c := range doc.Cells {
		if err := errors.ValidateUserID(c.Creator); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScenario, err, "session %s cell %d", doc.ID, i)
		}
		cells.Paint(grid.Coord{Col: c.Col, Row: c.Row}, c.Creator)
	}

	members := make(map[string]Role, len(doc.Members))
	for id, role := range doc.Members {
		if !ValidRole(role) {
			return nil, errors.New(errors.ErrCodeInvalidScenario, "session %s member %q has unknown role %q", doc.ID, id, role)
		}
		members[id] = role
	}

	return &Session{
		id:        doc.ID,
		name:      doc.Name,
		cellSize:  doc.CellSize,
		members:   members,
		cells:     cells,
		version:   doc.Version,
		createdAt: doc.CreatedAt,
		updatedAt: doc.UpdatedAt,
	}, nil
}

// Store is the interface for session persistence backends.
type Store interface {
	// Get retrieves a session by id.
	// Returns an ErrCodeSessionNotFound error if the session doesn't exist.
	Get(ctx context.Context, id string) (*Session, error)

	// Put stores a session, overwriting any previous state.
	Put(ctx context.Context, sess *Session) error

	// Delete removes a session. Deleting an absent session is a no-op.
	Delete(ctx context.Context, id string) error

	// Close releases any resources held by the store.
	Close() error
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeSessionNotFound, "session %s not found", id)
}
