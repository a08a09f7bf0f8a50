package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/GriffinCanCode/iconoglott/eventlog"
)

func history(args []string) error {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	asCSV := fs.Bool("csv", false, "Export every event as CSV instead of a summary")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: iconoglott history <events.jsonl> [options]

Summarize a JSONL render event log written by the serve command.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("event log file required")
	}

	log, err := eventlog.ParseJSONL(fs.Arg(0))
	if err != nil {
		return err
	}

	if *asCSV {
		return eventlog.WriteCSV(os.Stdout, log)
	}

	s := log.Summarize()
	fmt.Printf("Connections:  %d\n", s.Connections)
	fmt.Printf("Renders:      %d (%d with errors)\n", s.Renders, s.Failed)
	fmt.Printf("Errors:       %d\n", s.TotalErrors)
	fmt.Printf("Avg duration: %.2f ms\n", s.AvgDurationMS)
	fmt.Printf("Output bytes: %d\n", s.OutputBytes)

	for _, session := range log.GetSessions() {
		renders := 0
		for _, event := range session.Events {
			if event.Kind == "render" {
				renders++
			}
		}
		fmt.Printf("  %s  %d events, %d renders\n", session.ConnID, len(session.Events), renders)
	}
	return nil
}
