package api

import (
	"encoding/json"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/lisquiz/lisquiz/internal/bank"
	"github.com/lisquiz/lisquiz/internal/logger"
	"github.com/lisquiz/lisquiz/internal/quiz"
	"github.com/lisquiz/lisquiz/internal/store"
)

// liveSession is one quiz played over HTTP. mu serializes access to the
// quiz session and its presenter.
type liveSession struct {
	id   string
	bank *bank.Bank

	mu        sync.Mutex
	quiz      *quiz.Session
	presenter *framePresenter

	// touched is guarded by Server.mu.
	touched time.Time
}

// frame returns a copy of the current frame. Callers hold ls.mu.
func (ls *liveSession) frame() Frame {
	f := ls.presenter.frame
	f.SessionID = ls.id
	f.State = ls.quiz.State().String()
	f.Score = ls.quiz.Score()
	f.Options = slices.Clone(f.Options)
	f.Targets = slices.Clone(f.Targets)
	f.Chips = slices.Clone(f.Chips)
	if f.Question != nil {
		q := *f.Question
		f.Question = &q
	}
	return f
}

type errorResponse struct {
	Error string `json:"error"`
	Frame *Frame `json:"frame,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorResponse{Error: msg})
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"status": "ok", "sessions": s.SessionCount()})
}

func (s *Server) listBanks(w http.ResponseWriter, _ *http.Request) {
	out := make([]BankSummary, 0, len(s.banks))
	for _, b := range s.banks {
		out = append(out, summarize(b))
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Bank string `json:"bank"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "bad json")
		return
	}
	if req.Bank == "" {
		respondError(w, http.StatusBadRequest, "bank is required")
		return
	}
	b := bank.Find(s.banks, req.Bank)
	if b == nil {
		respondError(w, http.StatusNotFound, "bank not found")
		return
	}

	tracker := store.NewTracker(s.repo, b.ID, b.Title, b.Variant, Frontend)
	p := &framePresenter{}
	p.frame.Bank = summarize(b)

	cfg := b.Config()
	if cfg.Voice == "" {
		cfg.Voice = s.opts.Voice
	}
	cfg.Listener = tracker

	qs, err := quiz.NewSession(cfg, b.Questions(), p)
	if err != nil {
		logger.Warn("api: bank cannot be played", logrus.Fields{"bank": b.ID, "error": err.Error()})
		f := p.frame
		respondJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Frame: &f})
		return
	}
	tracker.Start(qs.Total())
	qs.Start()

	ls := &liveSession{id: tracker.SessionID(), bank: b, quiz: qs, presenter: p}
	s.add(ls)
	logger.Info("api: session started", logrus.Fields{"session_id": ls.id, "bank": b.ID})

	ls.mu.Lock()
	f := ls.frame()
	ls.mu.Unlock()
	respondJSON(w, http.StatusCreated, f)
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	ls := s.lookup(chi.URLParam(r, "sessionID"))
	if ls == nil {
		respondError(w, http.StatusNotFound, "session not found")
		return
	}
	ls.mu.Lock()
	f := ls.frame()
	ls.mu.Unlock()

	// Effects were delivered with the action that caused them.
	f.Outcome = ""
	f.Celebration = nil
	f.Speech = nil
	respondJSON(w, http.StatusOK, f)
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	ls := s.remove(chi.URLParam(r, "sessionID"))
	if ls == nil {
		respondError(w, http.StatusNotFound, "session not found")
		return
	}
	ls.mu.Lock()
	ls.presenter.StopSpeech()
	ls.mu.Unlock()
	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) answer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Value string `json:"value"`
		Box   string `json:"box"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "bad json")
		return
	}
	box := quiz.SideUnknown
	if req.Box != "" {
		if box = quiz.ParseSide(req.Box); box == quiz.SideUnknown {
			respondError(w, http.StatusBadRequest, "box must be left, right or blank")
			return
		}
	}

	s.act(w, r, func(ls *liveSession) {
		var outcome quiz.Outcome
		if box == quiz.SideUnknown {
			outcome = ls.quiz.Submit(req.Value)
		} else {
			outcome = ls.quiz.Place(box, req.Value)
		}
		ls.presenter.frame.Outcome = outcome.String()
	})
}

func (s *Server) next(w http.ResponseWriter, r *http.Request) {
	s.act(w, r, func(ls *liveSession) { ls.quiz.Advance() })
}

func (s *Server) back(w http.ResponseWriter, r *http.Request) {
	s.act(w, r, func(ls *liveSession) { ls.quiz.Retreat() })
}

func (s *Server) play(w http.ResponseWriter, r *http.Request) {
	s.act(w, r, func(ls *liveSession) { ls.quiz.Play() })
}

// act runs fn on the session named in the URL and responds with the
// resulting frame.
func (s *Server) act(w http.ResponseWriter, r *http.Request, fn func(ls *liveSession)) {
	ls := s.lookup(chi.URLParam(r, "sessionID"))
	if ls == nil {
		respondError(w, http.StatusNotFound, "session not found")
		return
	}
	ls.mu.Lock()
	ls.presenter.clearEffects()
	fn(ls)
	f := ls.frame()
	ls.mu.Unlock()
	respondJSON(w, http.StatusOK, f)
}
