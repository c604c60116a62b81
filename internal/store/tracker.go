package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/lisquiz/lisquiz/internal/logger"
	"github.com/lisquiz/lisquiz/internal/quiz"
)

// writeTimeout bounds each history write made on behalf of a quiz.
const writeTimeout = 5 * time.Second

// Tracker records one quiz run as events. It implements quiz.Listener.
// Write failures are logged and never reach the quiz.
type Tracker struct {
	repo      EventRepo
	sessionID string
	bankID    string
	bankTitle string
	variant   quiz.Variant
	frontend  string
	started   time.Time
	now       func() time.Time
}

var _ quiz.Listener = (*Tracker)(nil)

// NewTracker returns a Tracker for a run of the given bank. A nil repo
// records nothing.
func NewTracker(repo EventRepo, bankID, bankTitle string, variant quiz.Variant, frontend string) *Tracker {
	return &Tracker{
		repo:      repo,
		sessionID: uuid.NewString(),
		bankID:    bankID,
		bankTitle: bankTitle,
		variant:   variant,
		frontend:  frontend,
		now:       time.Now,
	}
}

// SessionID returns the generated run ID.
func (t *Tracker) SessionID() string { return t.sessionID }

// Start records the start of the run.
func (t *Tracker) Start(total int) {
	t.started = t.now()
	t.write("start", func(ctx context.Context) error {
		return t.repo.AppendSessionEvent(ctx, SessionEventData{
			SessionID: t.sessionID,
			Action:    ActionStart,
			BankID:    t.bankID,
			BankTitle: t.bankTitle,
			Variant:   string(t.variant),
			Frontend:  t.frontend,
			Total:     total,
		})
	})
}

// OnAnswered implements quiz.Listener.
func (t *Tracker) OnAnswered(e quiz.AnswerEvent) {
	box := ""
	if e.Box != quiz.SideUnknown {
		box = e.Box.String()
	}
	t.write("answer", func(ctx context.Context) error {
		return t.repo.AppendAnswerEvent(ctx, AnswerEventData{
			SessionID: t.sessionID,
			BankID:    t.bankID,
			Position:  e.Position,
			Prompt:    e.Prompt,
			Value:     e.Value,
			Box:       box,
			Outcome:   e.Outcome.String(),
			Final:     e.Final,
			Counted:   e.Counted,
		})
	})
}

// OnCompleted implements quiz.Listener.
func (t *Tracker) OnCompleted(r quiz.Result) {
	var duration time.Duration
	if !t.started.IsZero() {
		duration = t.now().Sub(t.started)
	}
	t.write("end", func(ctx context.Context) error {
		return t.repo.AppendSessionEvent(ctx, SessionEventData{
			SessionID:  t.sessionID,
			Action:     ActionEnd,
			BankID:     t.bankID,
			BankTitle:  t.bankTitle,
			Variant:    string(t.variant),
			Frontend:   t.frontend,
			Score:      r.Score,
			Total:      r.Total,
			DurationMs: duration.Milliseconds(),
		})
	})
}

func (t *Tracker) write(kind string, fn func(ctx context.Context) error) {
	if t.repo == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := fn(ctx); err != nil {
		logger.Error("store: failed to record "+kind+" event", err, logrus.Fields{
			"session_id": t.sessionID,
			"bank":       t.bankID,
		})
	}
}
