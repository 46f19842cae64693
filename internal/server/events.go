package server

import (
	"fmt"
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	jstnlab "github.com/reoring/jstnlab"
)

const (
	eventBuffer    = 8
	heartbeatEvery = 15 * time.Second
)

// subscriber receives snapshots without ever blocking the engine. When the
// buffer is full the oldest pending snapshot is discarded; each snapshot is
// complete, so only the latest matters.
type subscriber struct {
	ch chan jstnlab.Snapshot
}

func (s *subscriber) publish(snap jstnlab.Snapshot) {
	for {
		select {
		case s.ch <- snap:
			return
		default:
		}
		select {
		case <-s.ch:
		default:
		}
	}
}

// handleEvents streams the session's snapshots as Server-Sent Events,
// starting with the current one.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, r, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	sub := &subscriber{ch: make(chan jstnlab.Snapshot, eventBuffer)}
	var cancel func()
	sess.with(s.sessions.now(), func(e *jstnlab.Engine) {
		sess.streams++
		sub.publish(e.Snapshot())
		cancel = e.Subscribe(sub.publish)
	})
	defer sess.with(s.sessions.now(), func(*jstnlab.Engine) {
		sess.streams--
		cancel()
	})

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	heartbeat := time.NewTicker(heartbeatEvery)
	defer heartbeat.Stop()
	for {
		select {
		case <-r.Context().Done():
			return
		case <-sess.done:
			fmt.Fprint(w, "event: closed\ndata: {}\n\n")
			flusher.Flush()
			return
		case <-heartbeat.C:
			fmt.Fprint(w, ": keep-alive\n\n")
			flusher.Flush()
		case snap := <-sub.ch:
			if err := writeEvent(w, sess.id, snap); err != nil {
				s.log.Warn().Err(err).Str("session", sess.id).Msg("event stream write failed")
				return
			}
			flusher.Flush()
		}
	}
}

func writeEvent(w http.ResponseWriter, id string, snap jstnlab.Snapshot) error {
	data, err := json.Marshal(sessionResponse{ID: id, Snapshot: snap})
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	_, err = fmt.Fprintf(w, "id: %d\nevent: snapshot\ndata: %s\n\n", snap.Revision, data)
	return err
}
