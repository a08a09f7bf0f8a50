package eventlog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
)

// Writer appends events to a JSONL stream, one JSON object per line.
// It is safe for concurrent use.
type Writer struct {
	mu  sync.Mutex
	w   io.Writer
	enc *json.Encoder
}

// NewWriter wraps an io.Writer as an event sink.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w, enc: json.NewEncoder(w)}
}

// OpenWriter opens (or creates) a JSONL file in append mode.
func OpenWriter(filename string) (*Writer, io.Closer, error) {
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening event log: %w", err)
	}
	return NewWriter(f), f, nil
}

// Write appends one event.
func (w *Writer) Write(event Event) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.enc.Encode(event); err != nil {
		return fmt.Errorf("encoding event: %w", err)
	}
	return nil
}

// ParseJSONL reads a full event log from a JSONL file.
func ParseJSONL(filename string) (*Log, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return ParseJSONLReader(f)
}

// ParseJSONLReader reads events line by line. Blank lines are skipped;
// a malformed line fails the whole parse with its line number.
func ParseJSONLReader(r io.Reader) (*Log, error) {
	log := NewLog()
	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if line == "" {
			continue
		}

		var event Event
		if err := json.Unmarshal([]byte(line), &event); err != nil {
			return nil, fmt.Errorf("line %d: invalid JSON: %w", lineNum, err)
		}
		if event.ConnID == "" {
			return nil, fmt.Errorf("line %d: missing conn_id", lineNum)
		}
		log.AddEvent(event)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading events: %w", err)
	}

	log.SortSessions()
	return log, nil
}
