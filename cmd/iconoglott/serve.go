package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/GriffinCanCode/iconoglott/server"
)

func serve(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", ":8080", "Listen address")
	staticDir := fs.String("static", "", "Directory of static files to serve at /")
	historyPath := fs.String("history", "", "SQLite render-history database path")
	eventPath := fs.String("events", "", "JSONL event log path")
	logPath := fs.String("log-json", "", "Also write JSON logs to this file")
	verbose := fs.Bool("verbose", false, "Enable debug logging")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: iconoglott serve [options]

Start the websocket render server. Clients connect to /ws and send
{"type":"source","payload":"..."} frames; each render answers with
{"type":"render","output":"...","errors":[...]}.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  iconoglott serve --addr :9000 --static ./web
  iconoglott serve --history renders.db --events renders.jsonl
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger, closer, err := server.NewLogger(*logPath, level)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	cfg := server.Config{
		Addr:         *addr,
		StaticDir:    *staticDir,
		HistoryPath:  *historyPath,
		EventLogPath: *eventPath,
	}
	srv, err := server.New(cfg, logger)
	if err != nil {
		return err
	}
	defer srv.Close()

	return srv.ListenAndServe()
}
