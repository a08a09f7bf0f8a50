package eventlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"
)

var csvHeader = []string{"conn_id", "kind", "timestamp", "duration_ms", "source_bytes", "output_bytes", "error_count"}

// WriteCSV exports the log as CSV, one row per event, sessions in
// stable order.
func WriteCSV(w io.Writer, log *Log) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, session := range log.GetSessions() {
		for _, event := range session.Events {
			row := []string{
				event.ConnID,
				event.Kind,
				event.Timestamp.Format(time.RFC3339),
				strconv.FormatFloat(event.DurationMS, 'f', -1, 64),
				strconv.Itoa(event.SourceBytes),
				strconv.Itoa(event.OutputBytes),
				strconv.Itoa(event.ErrorCount),
			}
			if err := writer.Write(row); err != nil {
				return fmt.Errorf("writing event row: %w", err)
			}
		}
	}

	writer.Flush()
	return writer.Error()
}
