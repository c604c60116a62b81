// Package api serves quiz sessions over HTTP/JSON for a browser frontend.
package api

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"github.com/lisquiz/lisquiz/internal/bank"
	"github.com/lisquiz/lisquiz/internal/logger"
	"github.com/lisquiz/lisquiz/internal/store"
)

// Frontend is recorded with every session started over HTTP.
const Frontend = "http"

// Options configures a Server.
type Options struct {
	// AllowedOrigins lists the CORS origins. Empty allows any origin.
	AllowedOrigins []string

	// Voice is the preferred voice name passed to audio sessions.
	Voice string

	// IdleTimeout drops sessions untouched for this long. Zero keeps them
	// until deleted.
	IdleTimeout time.Duration

	// MaxSessions caps live sessions; the least recently used one is
	// dropped to make room. Zero means no cap.
	MaxSessions int
}

// DefaultOptions returns the options used by `lisquiz serve`.
func DefaultOptions() Options {
	return Options{
		AllowedOrigins: []string{"*"},
		IdleTimeout:    2 * time.Hour,
		MaxSessions:    1000,
	}
}

// Server owns the live HTTP sessions.
type Server struct {
	banks []*bank.Bank
	repo  store.EventRepo
	opts  Options
	now   func() time.Time

	mu       sync.Mutex
	sessions map[string]*liveSession
}

// NewServer creates a Server for banks. repo may be nil.
func NewServer(banks []*bank.Bank, repo store.EventRepo, opts Options) *Server {
	return &Server{
		banks:    banks,
		repo:     repo,
		opts:     opts,
		now:      time.Now,
		sessions: make(map[string]*liveSession),
	}
}

// Routes returns the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, requestLogger, middleware.Recoverer)

	origins := s.opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{"Content-Length"},
		MaxAge:         300,
	}))

	r.Get("/healthz", s.health)
	r.Get("/banks", s.listBanks)
	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.createSession)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", s.getSession)
			r.Delete("/", s.deleteSession)
			r.Post("/answer", s.answer)
			r.Post("/next", s.next)
			r.Post("/back", s.back)
			r.Post("/play", s.play)
		})
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("api: listening", logrus.Fields{"addr": addr, "banks": len(s.banks)})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Info("api: shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// SessionCount returns the number of live sessions.
func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Server) lookup(id string) *liveSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	ls, ok := s.sessions[id]
	if !ok {
		return nil
	}
	ls.touched = s.now()
	return ls
}

func (s *Server) add(ls *liveSession) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if s.opts.IdleTimeout > 0 {
		for id, other := range s.sessions {
			if now.Sub(other.touched) > s.opts.IdleTimeout {
				delete(s.sessions, id)
			}
		}
	}
	if s.opts.MaxSessions > 0 && len(s.sessions) >= s.opts.MaxSessions {
		var oldest string
		for id, other := range s.sessions {
			if oldest == "" || other.touched.Before(s.sessions[oldest].touched) {
				oldest = id
			}
		}
		delete(s.sessions, oldest)
	}
	ls.touched = now
	s.sessions[ls.id] = ls
}

func (s *Server) remove(id string) *liveSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	ls, ok := s.sessions[id]
	if !ok {
		return nil
	}
	delete(s.sessions, id)
	return ls
}

func summarize(b *bank.Bank) BankSummary {
	return BankSummary{
		ID:        b.ID,
		Title:     b.Title,
		Variant:   string(b.Variant),
		Label:     b.Variant.Label(),
		Questions: len(b.Items),
	}
}
