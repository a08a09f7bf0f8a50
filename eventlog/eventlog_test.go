package eventlog

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func sampleEvents() []Event {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return []Event{
		{ConnID: "c1", Kind: "connect", Timestamp: base},
		{ConnID: "c1", Kind: "render", Timestamp: base.Add(time.Second), DurationMS: 4, SourceBytes: 120, OutputBytes: 800},
		{ConnID: "c1", Kind: "render", Timestamp: base.Add(2 * time.Second), DurationMS: 6, SourceBytes: 90, OutputBytes: 500, ErrorCount: 2, ErrorCodes: []int{2004, 2001}},
		{ConnID: "c2", Kind: "connect", Timestamp: base},
		{ConnID: "c2", Kind: "render", Timestamp: base.Add(time.Second), DurationMS: 2, OutputBytes: 300},
	}
}

func TestLog_AddEventGroupsByConnection(t *testing.T) {
	log := NewLog()
	for _, e := range sampleEvents() {
		log.AddEvent(e)
	}

	if len(log.Sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(log.Sessions))
	}
	if len(log.Sessions["c1"].Events) != 3 {
		t.Errorf("expected 3 events for c1, got %d", len(log.Sessions["c1"].Events))
	}

	sessions := log.GetSessions()
	if sessions[0].ConnID != "c1" || sessions[1].ConnID != "c2" {
		t.Errorf("expected stable session order, got %s %s", sessions[0].ConnID, sessions[1].ConnID)
	}
}

func TestLog_Summarize(t *testing.T) {
	log := NewLog()
	for _, e := range sampleEvents() {
		log.AddEvent(e)
	}

	s := log.Summarize()
	if s.Connections != 2 || s.Renders != 3 {
		t.Errorf("expected 2 connections and 3 renders, got %+v", s)
	}
	if s.Failed != 1 || s.TotalErrors != 2 {
		t.Errorf("expected 1 failed render with 2 errors, got %+v", s)
	}
	if s.AvgDurationMS != 4 {
		t.Errorf("expected avg duration 4, got %v", s.AvgDurationMS)
	}
	if s.OutputBytes != 1600 {
		t.Errorf("expected 1600 output bytes, got %v", s.OutputBytes)
	}
}

func TestJSONL_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	for _, e := range sampleEvents() {
		if err := w.Write(e); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	log, err := ParseJSONLReader(&buf)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(log.Sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(log.Sessions))
	}

	render := log.Sessions["c1"].Events[2]
	if render.Kind != "render" || render.ErrorCount != 2 {
		t.Errorf("unexpected event %+v", render)
	}
	if len(render.ErrorCodes) != 2 || render.ErrorCodes[0] != 2004 {
		t.Errorf("expected error codes preserved, got %v", render.ErrorCodes)
	}
}

func TestJSONL_SkipsBlankLines(t *testing.T) {
	input := `{"conn_id":"c1","kind":"connect","timestamp":"2025-06-01T12:00:00Z"}

{"conn_id":"c1","kind":"render","timestamp":"2025-06-01T12:00:01Z"}
`
	log, err := ParseJSONLReader(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(log.Sessions["c1"].Events) != 2 {
		t.Errorf("expected 2 events, got %d", len(log.Sessions["c1"].Events))
	}
}

func TestJSONL_RejectsMalformedLine(t *testing.T) {
	input := `{"conn_id":"c1","kind":"connect","timestamp":"2025-06-01T12:00:00Z"}
not json
`
	_, err := ParseJSONLReader(strings.NewReader(input))
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("expected line 2 error, got %v", err)
	}
}

func TestJSONL_RejectsMissingConnID(t *testing.T) {
	input := `{"kind":"render","timestamp":"2025-06-01T12:00:00Z"}`
	_, err := ParseJSONLReader(strings.NewReader(input))
	if err == nil || !strings.Contains(err.Error(), "conn_id") {
		t.Errorf("expected conn_id error, got %v", err)
	}
}

func TestLog_SortSessions(t *testing.T) {
	log := NewLog()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	log.AddEvent(Event{ConnID: "c1", Kind: "render", Timestamp: base.Add(time.Minute)})
	log.AddEvent(Event{ConnID: "c1", Kind: "connect", Timestamp: base})

	log.SortSessions()
	if log.Sessions["c1"].Events[0].Kind != "connect" {
		t.Error("expected events sorted by timestamp")
	}
}

func TestWriteCSV(t *testing.T) {
	log := NewLog()
	for _, e := range sampleEvents() {
		log.AddEvent(e)
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, log); err != nil {
		t.Fatalf("export: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 6 {
		t.Fatalf("expected header plus 5 rows, got %d lines", len(lines))
	}
	if lines[0] != "conn_id,kind,timestamp,duration_ms,source_bytes,output_bytes,error_count" {
		t.Errorf("unexpected header %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "c1,connect,") {
		t.Errorf("unexpected first row %q", lines[1])
	}
}
