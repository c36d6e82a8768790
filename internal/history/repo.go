package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const (
	sessionsTable = "quiz_sessions"
	answersTable  = "quiz_answers"
)

// SessionRecord is one finished quiz.
type SessionRecord struct {
	ID          string
	Source      string
	Questions   int
	Answered    int
	Score       int
	StartedAt   time.Time
	CompletedAt time.Time
}

// Accuracy returns Score/Answered, 0 when nothing was answered.
func (r SessionRecord) Accuracy() float64 {
	if r.Answered == 0 {
		return 0
	}
	return float64(r.Score) / float64(r.Answered)
}

// AnswerRecord is a single accepted selection.
type AnswerRecord struct {
	SessionID     string
	QuestionIndex int
	Question      string
	Answer        string
	Correct       bool
	AnsweredAt    time.Time
}

// Stats aggregates completed sessions. AnswersGiven and AnswersCorrect
// are the sessions' answered and score totals.
type Stats struct {
	Sessions       int
	QuestionsAsked int
	AnswersGiven   int
	AnswersCorrect int
	BestScore      int
	LastPlayed     time.Time
}

// Accuracy returns AnswersCorrect/AnswersGiven, 0 when empty.
func (s Stats) Accuracy() float64 {
	if s.AnswersGiven == 0 {
		return 0
	}
	return float64(s.AnswersCorrect) / float64(s.AnswersGiven)
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

// RecordAnswer appends an answer.
func (s *Store) RecordAnswer(ctx context.Context, rec AnswerRecord) error {
	query, args := builder().Insert(answersTable).
		Columns("session_id", "question_index", "question", "answer", "correct", "answered_at").
		Values(rec.SessionID, rec.QuestionIndex, rec.Question, rec.Answer, rec.Correct, rec.AnsweredAt.UnixMilli()).
		Query()
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert answer: %w", err)
	}
	return nil
}

// RecordSession stores a finished session. Recording the same session ID
// again overwrites the earlier row.
func (s *Store) RecordSession(ctx context.Context, rec SessionRecord) error {
	query, args := builder().Insert(sessionsTable).
		Columns("id", "source", "questions", "answered", "score", "started_at", "completed_at").
		Values(rec.ID, rec.Source, rec.Questions, rec.Answered, rec.Score,
			rec.StartedAt.UnixMilli(), rec.CompletedAt.UnixMilli()).
		OnConflict(entsql.ConflictColumns("id"), entsql.ResolveWithNewValues()).
		Query()
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// Recent returns up to limit sessions, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]SessionRecord, error) {
	sel := builder().Select("id", "source", "questions", "answered", "score", "started_at", "completed_at").
		From(entsql.Table(sessionsTable)).
		OrderBy(entsql.Desc("completed_at"))
	if limit > 0 {
		sel.Limit(limit)
	}
	query, args := sel.Query()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionRecord
	for rows.Next() {
		var (
			rec                    SessionRecord
			startedMs, completedMs int64
		)
		if err := rows.Scan(&rec.ID, &rec.Source, &rec.Questions, &rec.Answered, &rec.Score, &startedMs, &completedMs); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		rec.StartedAt = time.UnixMilli(startedMs)
		rec.CompletedAt = time.UnixMilli(completedMs)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Answers returns the answers recorded for a session in question order.
func (s *Store) Answers(ctx context.Context, sessionID string) ([]AnswerRecord, error) {
	query, args := builder().Select("session_id", "question_index", "question", "answer", "correct", "answered_at").
		From(entsql.Table(answersTable)).
		Where(entsql.EQ("session_id", sessionID)).
		OrderBy("question_index", "id").
		Query()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query answers: %w", err)
	}
	defer rows.Close()

	var out []AnswerRecord
	for rows.Next() {
		var (
			rec        AnswerRecord
			answeredMs int64
		)
		if err := rows.Scan(&rec.SessionID, &rec.QuestionIndex, &rec.Question, &rec.Answer, &rec.Correct, &answeredMs); err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		rec.AnsweredAt = time.UnixMilli(answeredMs)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Stats aggregates completed sessions. Answers from abandoned sessions are
// left out so accuracy and best score describe the same quizzes.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var (
		st                      Stats
		asked, best, lastPlayed sql.NullInt64
		answered, correct       sql.NullInt64
	)

	query, args := builder().Select(
		entsql.Count("*"),
		entsql.Sum("questions"),
		entsql.Sum("answered"),
		entsql.Sum("score"),
		entsql.Max("score"),
		entsql.Max("completed_at"),
	).From(entsql.Table(sessionsTable)).Query()
	err := s.db.QueryRowContext(ctx, query, args...).
		Scan(&st.Sessions, &asked, &answered, &correct, &best, &lastPlayed)
	if err != nil {
		return Stats{}, fmt.Errorf("session stats: %w", err)
	}

	st.QuestionsAsked = int(asked.Int64)
	st.BestScore = int(best.Int64)
	st.AnswersGiven = int(answered.Int64)
	st.AnswersCorrect = int(correct.Int64)
	if lastPlayed.Valid {
		st.LastPlayed = time.UnixMilli(lastPlayed.Int64)
	}
	return st, nil
}
