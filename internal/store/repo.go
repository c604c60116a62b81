package store

import (
	"context"
	"time"
)

// Session event actions.
const (
	ActionStart = "start"
	ActionEnd   = "end"
)

// SessionEventData captures the start or end of one quiz run.
type SessionEventData struct {
	SessionID  string
	Action     string
	BankID     string
	BankTitle  string
	Variant    string
	Frontend   string
	Score      int
	Total      int
	DurationMs int64
}

// AnswerEventData captures one accepted submission.
type AnswerEventData struct {
	SessionID string
	BankID    string
	Position  int
	Prompt    string
	Value     string
	Box       string
	Outcome   string
	Final     bool
	Counted   bool
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEventRecord is a stored LLM request event.
type LLMRequestEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsageStats aggregates LLM usage for one purpose.
type LLMUsageStats struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMModelUsage aggregates token usage for one model.
type LLMModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// QueryOpts configures event queries.
type QueryOpts struct {
	Limit   int    // max results (0 = unlimited)
	Purpose string // exact match, empty for all
}

// BankStat summarizes the history of one bank.
type BankStat struct {
	BankID     string
	BankTitle  string
	Variant    string
	Completed  int
	BestScore  int
	BestTotal  int
	LastScore  int
	LastTotal  int
	LastPlayed time.Time
	// Answered and Correct count scored attempts across all runs.
	Answered int
	Correct  int
}

// Accuracy returns Correct/Answered, or 0 when nothing was answered.
func (b BankStat) Accuracy() float64 {
	if b.Answered == 0 {
		return 0
	}
	return float64(b.Correct) / float64(b.Answered)
}

// SessionSummary is one completed run.
type SessionSummary struct {
	SessionID  string
	BankID     string
	BankTitle  string
	Variant    string
	Frontend   string
	Score      int
	Total      int
	Duration   time.Duration
	FinishedAt time.Time
}

// EventRepo provides append and query access to quiz history.
type EventRepo interface {
	// AppendSessionEvent records a session start or end.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// AppendAnswerEvent records a submission.
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM request events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error)

	// GetLLMEvent returns one LLM request event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventRecord, error)

	// LLMUsageByPurpose aggregates LLM usage per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error)

	// LLMUsageByModel aggregates token usage per model.
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)

	// BankStats aggregates completed runs per bank, ordered by bank ID.
	BankStats(ctx context.Context) ([]BankStat, error)

	// RecentSessions returns the latest completed runs, newest first.
	RecentSessions(ctx context.Context, limit int) ([]SessionSummary, error)

	// Reset deletes all history.
	Reset(ctx context.Context) error
}
