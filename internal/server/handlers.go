package server

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	jstnlab "github.com/reoring/jstnlab"
)

// maxRequestBody bounds request bodies independently of the data document
// limit, which applies to the document text only.
const maxRequestBody = 16 << 20

type pairRequest struct {
	TypeDeclaration *string `json:"jstn"`
	DataDocument    *string `json:"json"`
}

type editRequest struct {
	Text *string `json:"text"`
}

// sessionResponse is a snapshot tagged with the session it belongs to.
type sessionResponse struct {
	ID string `json:"id"`
	jstnlab.Snapshot
}

// writeJSON encodes v before writing the header so an encoding failure can
// still be answered with a 500.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("encode response")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"internal error"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(body, '\n')); err != nil {
		zerolog.Ctx(r.Context()).Debug().Err(err).Str("path", r.URL.Path).Msg("write response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// writeIssues shapes Issues for JSON responses.
func writeIssues(w http.ResponseWriter, r *http.Request, status int, iss jstnlab.Issues) {
	writeJSON(w, r, status, map[string]any{"issues": iss})
}

// decodeBody reads a JSON request body into v. An empty body leaves v
// untouched.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, http.StatusRequestEntityTooLarge, "request body too large")
		} else {
			writeError(w, r, http.StatusBadRequest, err.Error())
		}
		return false
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return true
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeIssues(w, r, http.StatusBadRequest, jstnlab.Issues{{
			Path:    "/",
			Code:    jstnlab.CodeParseError,
			Message: err.Error(),
		}})
		return false
	}
	return true
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.sessions.len(),
	})
}

// handleCheck evaluates a pair without creating a session. Missing
// documents are treated as empty text.
func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	var req pairRequest
	if !decodeBody(w, r, &req) {
		return
	}
	empty := ""
	if req.TypeDeclaration == nil {
		req.TypeDeclaration = &empty
	}
	if req.DataDocument == nil {
		req.DataDocument = &empty
	}
	writeJSON(w, r, http.StatusOK, s.newEngine(req.TypeDeclaration, req.DataDocument).Snapshot())
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req pairRequest
	if !decodeBody(w, r, &req) {
		return
	}
	sess, err := s.sessions.create(s.newEngine(req.TypeDeclaration, req.DataDocument))
	if err != nil {
		writeError(w, r, http.StatusServiceUnavailable, err.Error())
		return
	}
	s.log.Debug().Str("session", sess.id).Msg("session created")

	var snap jstnlab.Snapshot
	sess.with(s.sessions.now(), func(e *jstnlab.Engine) { snap = e.Snapshot() })
	w.Header().Set("Location", "/api/sessions/"+sess.id)
	writeJSON(w, r, http.StatusCreated, sessionResponse{ID: sess.id, Snapshot: snap})
}

// session resolves the {sessionID} URL parameter, writing a 404 when it is
// unknown.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*session, bool) {
	sess, err := s.sessions.get(chi.URLParam(r, "sessionID"))
	if err != nil {
		writeError(w, r, http.StatusNotFound, err.Error())
		return nil, false
	}
	return sess, true
}

func (s *Server) role(w http.ResponseWriter, r *http.Request) (jstnlab.Role, bool) {
	role, err := jstnlab.ParseRole(chi.URLParam(r, "role"))
	if err != nil {
		writeError(w, r, http.StatusNotFound, err.Error())
		return 0, false
	}
	return role, true
}

// respond runs fn against the session's engine and writes the resulting
// snapshot.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, sess *session, fn func(e *jstnlab.Engine)) {
	var snap jstnlab.Snapshot
	sess.with(s.sessions.now(), func(e *jstnlab.Engine) {
		fn(e)
		snap = e.Snapshot()
	})
	writeJSON(w, r, http.StatusOK, sessionResponse{ID: sess.id, Snapshot: snap})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	s.respond(w, r, sess, func(*jstnlab.Engine) {})
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	if err := s.sessions.remove(id); err != nil {
		writeError(w, r, http.StatusNotFound, err.Error())
		return
	}
	s.log.Debug().Str("session", id).Msg("session deleted")
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	s.respond(w, r, sess, func(e *jstnlab.Engine) { e.Reset() })
}

func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	role, ok := s.role(w, r)
	if !ok {
		return
	}
	var req editRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Text == nil {
		writeIssues(w, r, http.StatusBadRequest, jstnlab.Issues{{
			Path:    "/text",
			Code:    jstnlab.CodeRequired,
			Message: "text is required",
		}})
		return
	}
	s.respond(w, r, sess, func(e *jstnlab.Engine) { e.Edit(role, *req.Text) })
}

// handleCommit is the blur signal: it normalizes the document.
func (s *Server) handleCommit(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	role, ok := s.role(w, r)
	if !ok {
		return
	}
	s.respond(w, r, sess, func(e *jstnlab.Engine) { e.Normalize(role) })
}
