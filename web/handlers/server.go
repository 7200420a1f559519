package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	ds "github.com/starfederation/datastar-go/datastar"

	"salesanalysis/events"
	"salesanalysis/web"
)

const SHUTDOWN_TIMEOUT = 5 * time.Second

type Server struct {
	renderer      Renderer
	eventHub      *events.EventHub
	logger        *slog.Logger
	sweepInterval time.Duration
	handler       *http.ServeMux
}

func NewServer(renderer Renderer, eventHub *events.EventHub, logger *slog.Logger, sweepInterval time.Duration) *Server {
	s := &Server{
		renderer:      renderer,
		eventHub:      eventHub,
		logger:        logger,
		sweepInterval: sweepInterval,
	}

	handler := http.NewServeMux()
	handler.HandleFunc("GET /{$}", s.IndexHandler)
	handler.HandleFunc("GET /updates", s.UpdatesHandler)
	handler.Handle("GET /static/", http.FileServer(http.FS(web.Static)))

	for path, uiHandler := range renderer.Handlers() {
		handler.HandleFunc(path, uiHandler)
	}

	s.handler = handler

	return s
}

func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	go s.sweep(ctx)

	errs := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), SHUTDOWN_TIMEOUT)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errs; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) sweep(ctx context.Context) {
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case tick := <-ticker.C:
			s.renderer.Sweep(tick, s.sweepInterval)
		}
	}
}

// IndexHandler mounts a new view and renders the page for it. Every page load gets its own counter.
func (s *Server) IndexHandler(w http.ResponseWriter, _ *http.Request) {
	view, err := s.renderer.Mount()
	if err != nil {
		s.logger.Error("couldn't mount view", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	data, err := s.renderer.Data(view)
	if err != nil {
		s.logger.Error("couldn't build page data", "view", view.ID(), "error", err)
		s.renderer.Unmount(view.ID())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	err = s.renderer.Templates().ExecuteTemplate(w, "index", data)
	if err != nil {
		s.logger.Error("couldn't execute template for index", "view", view.ID(), "error", err)
		s.renderer.Unmount(view.ID())
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// UpdatesHandler holds an SSE stream open for a mounted view and re-renders its charts every time its counter
// changes. Closing the stream detaches it, the view stays mounted until the sweep finds it idle.
func (s *Server) UpdatesHandler(w http.ResponseWriter, r *http.Request) {
	viewID, err := readViewID(r)
	if err != nil {
		s.logger.Warn("bad updates request", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	view, ok := s.renderer.View(viewID)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	view.Attach()
	defer view.Detach(time.Now())

	// A sweep may have raced the attach.
	if _, ok := s.renderer.View(viewID); !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	_, changes, cancel := s.eventHub.Subscribe(viewID)
	defer cancel()
	s.logger.Debug("attached update stream", "view", viewID, "streams", s.eventHub.Subscribers(viewID))

	sse := ds.NewSSE(w, r)

	// Catch up on anything clicked between the page loading and this stream opening.
	if err := s.renderer.OnChange(sse, view); err != nil {
		s.logger.Error("error rendering view", "view", viewID, "error", err)
		return
	}

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-changes:
			if !ok {
				return
			}
			if err := s.renderer.OnChange(sse, view); err != nil {
				s.logger.Error("error rendering view", "view", viewID, "error", err)
				return
			}
		}
	}
}
