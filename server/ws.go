package server

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/websocket"

	"github.com/GriffinCanCode/iconoglott"
	"github.com/GriffinCanCode/iconoglott/diag"
	"github.com/GriffinCanCode/iconoglott/eventlog"
)

// Message is an incoming client frame.
type Message struct {
	Type    string `json:"type"`
	Payload string `json:"payload,omitempty"`
}

// Response is an outgoing server frame. Errors is always present so
// clients can bind to it unconditionally.
type Response struct {
	Type    string    `json:"type"`
	Output  string    `json:"output,omitempty"`
	Message string    `json:"message,omitempty"`
	Errors  diag.List `json:"errors"`
}

// coalescer implements per-connection last-writer-wins backpressure:
// at most one render runs at a time, and a source arriving while one
// is in flight replaces whatever was waiting. Superseded sources are
// never rendered.
type coalescer struct {
	mu        sync.Mutex
	rendering bool
	pending   *string
}

// Submit offers a source. The return value reports whether the caller
// now owns the render loop; false means the source was parked (or
// replaced an earlier parked one) for the running loop to pick up.
func (c *coalescer) Submit(source string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.rendering {
		c.pending = &source
		return false
	}
	c.rendering = true
	return true
}

// Next hands the loop its next source after a finished render, or
// releases the rendering flag when nothing is waiting.
func (c *coalescer) Next() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending != nil {
		source := *c.pending
		c.pending = nil
		return source, true
	}
	c.rendering = false
	return "", false
}

type conn struct {
	id      string
	ws      *websocket.Conn
	writeMu sync.Mutex
	coal    coalescer
}

func (c *conn) send(resp Response) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return websocket.JSON.Send(c.ws, resp)
}

// HandleConn runs the read loop for one websocket connection.
func (s *Server) HandleConn(ws *websocket.Conn) {
	c := &conn{id: uuid.NewString(), ws: ws}
	s.log.Info("connection opened", "conn", c.id)
	s.recordEvent(eventlog.Event{ConnID: c.id, Kind: "connect", Timestamp: time.Now().UTC()})

	defer func() {
		s.log.Info("connection closed", "conn", c.id)
		s.recordEvent(eventlog.Event{ConnID: c.id, Kind: "disconnect", Timestamp: time.Now().UTC()})
	}()

	for {
		var frame string
		if err := websocket.Message.Receive(ws, &frame); err != nil {
			if err != io.EOF {
				s.log.Warn("receive failed", "conn", c.id, "error", err)
			}
			return
		}
		s.handleFrame(c, frame)
	}
}

// handleFrame dispatches one frame. Frames that are not JSON objects
// are treated as bare source text for backward compatibility.
func (s *Server) handleFrame(c *conn, frame string) {
	var msg Message
	if err := json.Unmarshal([]byte(frame), &msg); err != nil {
		s.submitSource(c, frame)
		return
	}

	switch msg.Type {
	case "source":
		s.submitSource(c, msg.Payload)
	case "ping":
		if err := c.send(Response{Type: "pong"}); err != nil {
			s.log.Warn("send failed", "conn", c.id, "error", err)
		}
	default:
		info := diag.New(diag.TransportInvalidMessage, fmt.Sprintf("unknown message type %q", msg.Type), 0, 0)
		if err := c.send(Response{Type: "error", Message: info.Message, Errors: diag.List{info}}); err != nil {
			s.log.Warn("send failed", "conn", c.id, "error", err)
		}
	}
}

func (s *Server) submitSource(c *conn, source string) {
	if !c.coal.Submit(source) {
		return
	}
	go s.renderLoop(c, source)
}

// renderLoop renders sources for one connection until the coalescer
// runs dry. It is the only goroutine rendering for this connection.
func (s *Server) renderLoop(c *conn, source string) {
	for {
		resp := s.renderOnce(c, source)
		if err := c.send(resp); err != nil {
			s.log.Warn("send failed", "conn", c.id, "error", err)
		}

		next, ok := c.coal.Next()
		if !ok {
			return
		}
		source = next
	}
}

func (s *Server) renderOnce(c *conn, source string) Response {
	start := time.Now()
	var svg string
	var errs diag.List
	if cached, ok := s.cache.Get(source); ok {
		svg, errs = cached.svg, cached.errs
	} else {
		svg, errs = iconoglott.Compile(source)
		s.cache.Put(source, svg, errs)
	}
	duration := float64(time.Since(start).Microseconds()) / 1000

	s.log.Debug("rendered", "conn", c.id, "duration_ms", duration, "errors", len(errs), "bytes", len(svg))

	codes := make([]int, 0, len(errs))
	for _, info := range errs {
		codes = append(codes, int(info.Code))
	}
	s.recordEvent(eventlog.Event{
		ConnID:      c.id,
		Kind:        "render",
		Timestamp:   start.UTC(),
		DurationMS:  duration,
		SourceBytes: len(source),
		OutputBytes: len(svg),
		ErrorCount:  len(errs),
		ErrorCodes:  codes,
	})
	if s.history != nil {
		rec := RenderRecord{
			ID:          uuid.NewString(),
			ConnID:      c.id,
			CreatedAt:   start,
			DurationMS:  duration,
			OutputBytes: len(svg),
			ErrorCount:  len(errs),
		}
		if err := s.history.Record(rec); err != nil {
			s.log.Warn("history insert failed", "error", err)
		}
	}

	return Response{Type: "render", Output: svg, Errors: errs.ToResponse()}
}
