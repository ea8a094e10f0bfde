package session

import (
	"context"
	"testing"

	"github.com/fogbanklabs/fogbank/pkg/errors"
	"github.com/fogbanklabs/fogbank/pkg/fog"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	defer store.Close()

	sess := newTestSession(t)
	if err := store.Put(ctx, sess); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := store.Get(ctx, sess.ID())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != sess {
		t.Error("memory store should return the live session instance")
	}

	if _, err := store.Get(ctx, "missing"); errors.GetCode(err) != errors.ErrCodeSessionNotFound {
		t.Errorf("missing session code = %v, want %v", errors.GetCode(err), errors.ErrCodeSessionNotFound)
	}

	if err := store.Delete(ctx, sess.ID()); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if store.Len() != 0 {
		t.Error("store should be empty after delete")
	}
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	defer store.Close()

	sess := newTestSession(t)
	sess.Apply(ctx, "alice", fog.Op{Kind: fog.OpPaint, Col: 1, Row: 2})

	if err := store.Put(ctx, sess); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := store.Get(ctx, sess.ID())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Version() != sess.Version() {
		t.Errorf("version = %d, want %d", got.Version(), sess.Version())
	}
	if got.Snapshot().Hash() != sess.Snapshot().Hash() {
		t.Error("cells should survive the file round trip")
	}

	if _, err := store.Get(ctx, "missing"); errors.GetCode(err) != errors.ErrCodeSessionNotFound {
		t.Errorf("missing session code = %v, want %v", errors.GetCode(err), errors.ErrCodeSessionNotFound)
	}

	if err := store.Delete(ctx, sess.ID()); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	// Deleting twice is fine.
	if err := store.Delete(ctx, sess.ID()); err != nil {
		t.Fatalf("second Delete: %v", err)
	}
}
