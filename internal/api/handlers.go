package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fogbanklabs/fogbank/pkg/errors"
	"github.com/fogbanklabs/fogbank/pkg/fog"
	"github.com/fogbanklabs/fogbank/pkg/pipeline"
	"github.com/fogbanklabs/fogbank/pkg/scene"
	"github.com/fogbanklabs/fogbank/pkg/session"
)

type createSessionRequest struct {
	Name     string  `json:"name"`
	CellSize float64 `json:"cell_size,omitempty"`
	UserID   string  `json:"user_id"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidOp, err, "decode request"))
		return
	}
	if req.CellSize == 0 {
		req.CellSize = pipeline.DefaultCellSize
	}

	sess, err := session.New(req.Name, req.CellSize)
	if err != nil {
		writeError(w, err)
		return
	}

	// The creating user runs the table.
	if err := sess.Join(req.UserID, session.RoleGamemaster); err != nil {
		writeError(w, err)
		return
	}

	if err := s.sessions.Put(r.Context(), sess); err != nil {
		writeError(w, err)
		return
	}

	s.logger.Info("created session", "id", sess.ID(), "name", sess.Name(), "gamemaster", req.UserID)
	writeJSON(w, http.StatusCreated, sess.Document())
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.Document())
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type joinSessionRequest struct {
	UserID string       `json:"user_id"`
	Role   session.Role `json:"role,omitempty"`
}

func (s *Server) handleJoinSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	var req joinSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidOp, err, "decode request"))
		return
	}
	if req.Role == "" {
		req.Role = session.RolePlayer
	}

	if err := sess.Join(req.UserID, req.Role); err != nil {
		writeError(w, err)
		return
	}
	if err := s.sessions.Put(r.Context(), sess); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.Document())
}

type applyOpsRequest struct {
	UserID string   `json:"user_id"`
	Ops    []fog.Op `json:"ops"`
}

type applyOpsResponse struct {
	Version uint64 `json:"version"`
	Applied int    `json:"applied"`
}

// handleApplyOps applies a batch of operations in delivery order. The batch
// stops at the first rejected op; everything before it stays applied, which
// matches the collaborator's at-least-once delta semantics.
func (s *Server) handleApplyOps(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	var req applyOpsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidOp, err, "decode request"))
		return
	}
	if len(req.Ops) == 0 {
		writeError(w, errors.New(errors.ErrCodeInvalidOp, "no ops in request"))
		return
	}

	var version uint64
	applied := 0
	for _, op := range req.Ops {
		v, err := sess.Apply(r.Context(), req.UserID, op)
		if err != nil {
			writeError(w, err)
			return
		}
		version = v
		applied++
	}

	if err := s.sessions.Put(r.Context(), sess); err != nil {
		writeError(w, err)
		return
	}

	s.logger.Info("applied ops", "session", sess.ID(), "user", req.UserID, "ops", applied, "version", version)
	writeJSON(w, http.StatusOK, applyOpsResponse{Version: version, Applied: applied})
}

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
}

// handleRenderFrame renders the session's fog for one viewer.
//
// Query parameters:
//
//	viewer  member id the frame is composed for (required)
//	solo    "true" to show even own fog opaque
//	format  svg (default), png, pdf, or json
//	style   soft (default) or plain
//	refresh "true" to bypass the scene cache
func (s *Server) handleRenderFrame(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	q := r.URL.Query()
	viewerID := q.Get("viewer")
	role, ok := sess.Role(viewerID)
	if !ok {
		writeError(w, errors.New(errors.ErrCodeInvalidViewer, "viewer %q is not a member of session %s", viewerID, sess.ID()))
		return
	}

	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}

	opts := pipeline.Options{
		CellSize: sess.CellSize(),
		Refresh:  q.Get("refresh") == "true",
		Viewer: scene.Viewer{
			ID:         viewerID,
			Privileged: role == session.RoleGamemaster,
			Solo:       q.Get("solo") == "true",
		},
		Formats: []string{format},
		Style:   q.Get("style"),
	}

	result, err := s.runner(sess.ID()).Execute(r.Context(), sess.Snapshot(), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("ETag", `"`+result.SceneHash+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}
