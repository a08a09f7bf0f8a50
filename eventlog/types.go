// Package eventlog records and analyzes render activity: every
// compile performed for a connection becomes one event, and events
// group into per-connection sessions for summary statistics.
package eventlog

import (
	"sort"
	"time"
)

// Event is a single recorded action on a connection.
type Event struct {
	ConnID      string    `json:"conn_id"`
	Kind        string    `json:"kind"` // connect, render, disconnect
	Timestamp   time.Time `json:"timestamp"`
	DurationMS  float64   `json:"duration_ms,omitempty"`
	SourceBytes int       `json:"source_bytes,omitempty"`
	OutputBytes int       `json:"output_bytes,omitempty"`
	ErrorCount  int       `json:"error_count,omitempty"`
	ErrorCodes  []int     `json:"error_codes,omitempty"`
}

// Session is the ordered event history of one connection.
type Session struct {
	ConnID string
	Events []Event
}

// Log holds all sessions keyed by connection id.
type Log struct {
	Sessions map[string]*Session
}

// NewLog creates an empty log.
func NewLog() *Log {
	return &Log{Sessions: make(map[string]*Session)}
}

// AddEvent files an event under its connection, creating the session
// on first sight.
func (l *Log) AddEvent(event Event) {
	session, ok := l.Sessions[event.ConnID]
	if !ok {
		session = &Session{ConnID: event.ConnID}
		l.Sessions[event.ConnID] = session
	}
	session.Events = append(session.Events, event)
}

// SortSessions orders events within each session by timestamp.
func (l *Log) SortSessions() {
	for _, session := range l.Sessions {
		sort.Slice(session.Events, func(i, j int) bool {
			return session.Events[i].Timestamp.Before(session.Events[j].Timestamp)
		})
	}
}

// GetSessions returns sessions sorted by connection id for stable
// iteration.
func (l *Log) GetSessions() []*Session {
	sessions := make([]*Session, 0, len(l.Sessions))
	for _, session := range l.Sessions {
		sessions = append(sessions, session)
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].ConnID < sessions[j].ConnID
	})
	return sessions
}

// Summary aggregates render statistics across the whole log.
type Summary struct {
	Connections   int
	Renders       int
	Failed        int
	TotalErrors   int
	AvgDurationMS float64
	OutputBytes   int
}

// Summarize computes aggregate statistics. A render counts as failed
// when it recorded at least one error.
func (l *Log) Summarize() Summary {
	var s Summary
	s.Connections = len(l.Sessions)

	var totalDuration float64
	for _, session := range l.Sessions {
		for _, event := range session.Events {
			if event.Kind != "render" {
				continue
			}
			s.Renders++
			s.TotalErrors += event.ErrorCount
			s.OutputBytes += event.OutputBytes
			totalDuration += event.DurationMS
			if event.ErrorCount > 0 {
				s.Failed++
			}
		}
	}
	if s.Renders > 0 {
		s.AvgDurationMS = totalDuration / float64(s.Renders)
	}
	return s
}
