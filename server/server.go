// Package server exposes the compiler over a websocket endpoint with
// per-connection render coalescing, plus static file serving, health
// checks, and render history.
package server

import (
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/net/websocket"

	"github.com/GriffinCanCode/iconoglott/eventlog"
)

// Config holds the serve-time settings.
type Config struct {
	Addr         string
	StaticDir    string
	HistoryPath  string
	EventLogPath string
}

// DefaultConfig returns the settings used when no flags are given.
func DefaultConfig() Config {
	return Config{Addr: ":8080"}
}

// Bound on memoized render results per server.
const renderCacheSize = 128

// Server ties the compiler to its transport and persistence.
type Server struct {
	cfg     Config
	log     *slog.Logger
	history *History
	events  *eventlog.Writer
	cache   *renderCache
	closers []func() error
}

// New builds a server, opening the history database and event log
// when paths are configured.
func New(cfg Config, log *slog.Logger) (*Server, error) {
	s := &Server{cfg: cfg, log: log, cache: newRenderCache(renderCacheSize)}

	if cfg.HistoryPath != "" {
		history, err := OpenHistory(cfg.HistoryPath)
		if err != nil {
			return nil, err
		}
		s.history = history
		s.closers = append(s.closers, history.Close)
	}
	if cfg.EventLogPath != "" {
		writer, closer, err := eventlog.OpenWriter(cfg.EventLogPath)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.events = writer
		s.closers = append(s.closers, closer.Close)
	}
	return s, nil
}

// Close releases the history database and event log.
func (s *Server) Close() {
	for _, close := range s.closers {
		if err := close(); err != nil {
			s.log.Warn("close failed", "error", err)
		}
	}
	s.closers = nil
}

// Handler assembles the HTTP mux: websocket endpoint, health check,
// and static files when a directory is configured.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/ws", websocket.Handler(s.HandleConn))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintln(w, `{"status":"ok"}`)
	})
	if s.cfg.StaticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(s.cfg.StaticDir)))
	} else {
		mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/" {
				http.NotFound(w, r)
				return
			}
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			fmt.Fprintln(w, "<!doctype html><title>iconoglott</title><p>websocket endpoint at /ws</p>")
		})
	}
	return mux
}

// ListenAndServe blocks serving HTTP on the configured address.
func (s *Server) ListenAndServe() error {
	s.log.Info("listening", "addr", s.cfg.Addr)
	return http.ListenAndServe(s.cfg.Addr, s.Handler())
}

func (s *Server) recordEvent(event eventlog.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.Write(event); err != nil {
		s.log.Warn("event log write failed", "error", err)
	}
}
