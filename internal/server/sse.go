package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// SSEWriter streams Server-Sent Events for the /match/stream endpoint.
type SSEWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewSSEWriter sets the event-stream headers and verifies the underlying
// writer can flush between events.
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, errors.New("response writer does not support streaming")
	}

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("Access-Control-Allow-Origin", "*")

	return &SSEWriter{w: w, flusher: flusher}, nil
}

// WriteEvent emits a named event whose data line is the JSON encoding of v.
func (s *SSEWriter) WriteEvent(event string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", event, payload); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// WriteError emits an error event. Write failures are ignored since the
// client is already gone or about to be.
func (s *SSEWriter) WriteError(message string) {
	_ = s.WriteEvent("error", map[string]string{"error": message})
}

// WriteComplete emits the terminal event for a run.
func (s *SSEWriter) WriteComplete(runID, status string) {
	_ = s.WriteEvent("complete", map[string]string{
		"run_id": runID,
		"status": status,
	})
}
