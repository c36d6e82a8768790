package history

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/triviaz/internal/quiz"
)

// writeTimeout bounds a single history write.
const writeTimeout = 2 * time.Second

// Recorder persists quiz events as they happen. Write failures are logged
// and never surface to the quiz.
type Recorder struct {
	store  *Store
	logger *zap.Logger
	now    func() time.Time
}

// NewRecorder creates a Recorder writing to store.
func NewRecorder(store *Store, logger *zap.Logger) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{store: store, logger: logger, now: time.Now}
}

// Options returns controller options that wire the recorder's hooks.
func (r *Recorder) Options() []quiz.Option {
	return []quiz.Option{
		quiz.WithAnswerHook(r.OnAnswer),
		quiz.WithCompleteHook(r.OnComplete),
	}
}

// OnAnswer records an accepted selection.
func (r *Recorder) OnAnswer(ev quiz.AnswerEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	err := r.store.RecordAnswer(ctx, AnswerRecord{
		SessionID:     ev.SessionID,
		QuestionIndex: ev.Index,
		Question:      ev.Question,
		Answer:        ev.Answer.Text,
		Correct:       ev.Correct,
		AnsweredAt:    ev.At,
	})
	if err != nil {
		r.logger.Warn("history: record answer failed",
			zap.String("session_id", ev.SessionID),
			zap.Int("index", ev.Index),
			zap.Error(err),
		)
	}
}

// OnComplete records a finished session.
func (r *Recorder) OnComplete(st quiz.State) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	err := r.store.RecordSession(ctx, SessionRecord{
		ID:          st.SessionID,
		Source:      st.Source,
		Questions:   st.Len(),
		Answered:    st.Answered,
		Score:       st.Score,
		StartedAt:   st.StartedAt,
		CompletedAt: r.now(),
	})
	if err != nil {
		r.logger.Warn("history: record session failed",
			zap.String("session_id", st.SessionID),
			zap.Error(err),
		)
		return
	}
	r.logger.Debug("history: session recorded", zap.String("session_id", st.SessionID))
}
