package store

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"
)

// eventRepo implements EventRepo backed by SQLite and the global sequence counter.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
	now func() time.Time
}

func (r *eventRepo) timestamp() int64 {
	if r.now != nil {
		return r.now().UnixMilli()
	}
	return time.Now().UnixMilli()
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO session_events
		(sequence, timestamp, session_id, action, bank_id, bank_title, variant, frontend, score, total, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, r.timestamp(), data.SessionID, data.Action, data.BankID, data.BankTitle,
		data.Variant, data.Frontend, data.Score, data.Total, data.DurationMs,
	)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO answer_events
		(sequence, timestamp, session_id, bank_id, position, prompt, value, box, outcome, final, counted)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, r.timestamp(), data.SessionID, data.BankID, data.Position, data.Prompt,
		data.Value, data.Box, data.Outcome, data.Final, data.Counted,
	)
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) BankStats(ctx context.Context) ([]BankStat, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT bank_id, bank_title, variant, score, total, timestamp
		FROM session_events WHERE action = ? ORDER BY sequence`, ActionEnd)
	if err != nil {
		return nil, fmt.Errorf("query bank stats: %w", err)
	}
	defer rows.Close()

	byBank := map[string]*BankStat{}
	var order []string
	for rows.Next() {
		var (
			id, title, variant string
			score, total       int
			ts                 int64
		)
		if err := rows.Scan(&id, &title, &variant, &score, &total, &ts); err != nil {
			return nil, fmt.Errorf("scan bank stats: %w", err)
		}
		st, ok := byBank[id]
		if !ok {
			st = &BankStat{BankID: id}
			byBank[id] = st
			order = append(order, id)
		}
		st.BankTitle, st.Variant = title, variant
		st.Completed++
		st.LastScore, st.LastTotal = score, total
		st.LastPlayed = time.UnixMilli(ts)
		if st.BestTotal == 0 || better(score, total, st.BestScore, st.BestTotal) {
			st.BestScore, st.BestTotal = score, total
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bank stats: %w", err)
	}

	answers, err := r.db.QueryContext(ctx, `SELECT bank_id, COUNT(*), COALESCE(SUM(CASE WHEN outcome = 'correct' THEN 1 ELSE 0 END), 0)
		FROM answer_events WHERE counted = 1 GROUP BY bank_id`)
	if err != nil {
		return nil, fmt.Errorf("query answer stats: %w", err)
	}
	defer answers.Close()
	for answers.Next() {
		var (
			id              string
			answered, right int
		)
		if err := answers.Scan(&id, &answered, &right); err != nil {
			return nil, fmt.Errorf("scan answer stats: %w", err)
		}
		if st, ok := byBank[id]; ok {
			st.Answered, st.Correct = answered, right
		}
	}
	if err := answers.Err(); err != nil {
		return nil, fmt.Errorf("iterate answer stats: %w", err)
	}

	sort.Strings(order)
	stats := make([]BankStat, 0, len(order))
	for _, id := range order {
		stats = append(stats, *byBank[id])
	}
	return stats, nil
}

// better reports whether a/b beats c/d.
func better(a, b, c, d int) bool {
	if b == 0 {
		return false
	}
	if d == 0 {
		return true
	}
	return a*d > c*b
}

func (r *eventRepo) RecentSessions(ctx context.Context, limit int) ([]SessionSummary, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.db.QueryContext(ctx, `SELECT session_id, bank_id, bank_title, variant, frontend, score, total, duration_ms, timestamp
		FROM session_events WHERE action = ? ORDER BY sequence DESC LIMIT ?`, ActionEnd, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionSummary
	for rows.Next() {
		var (
			s              SessionSummary
			durationMs, ts int64
		)
		if err := rows.Scan(&s.SessionID, &s.BankID, &s.BankTitle, &s.Variant, &s.Frontend, &s.Score, &s.Total, &durationMs, &ts); err != nil {
			return nil, fmt.Errorf("scan recent sessions: %w", err)
		}
		s.Duration = time.Duration(durationMs) * time.Millisecond
		s.FinishedAt = time.UnixMilli(ts)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recent sessions: %w", err)
	}
	return out, nil
}

func (r *eventRepo) Reset(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reset: %w", err)
	}
	defer tx.Rollback()

	for _, table := range eventTables {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit reset: %w", err)
	}
	return nil
}
