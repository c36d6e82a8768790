// Package quiz holds the quiz session controller: it fetches a question
// list once per session, walks through it, keeps score and publishes
// immutable snapshots to subscribers.
package quiz

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/triviaz/internal/trivia"
)

// Controller owns the quiz session state. All methods are safe for
// concurrent use; Load may run on its own goroutine while the UI issues
// Select and Advance.
type Controller struct {
	src          trivia.Source
	logger       *zap.Logger
	fetchTimeout time.Duration
	now          func() time.Time
	newID        func() string
	onAnswer     []func(AnswerEvent)
	onComplete   []func(State)

	mu     sync.Mutex
	st     State
	gen    uint64
	cancel context.CancelFunc
	subs   map[int]chan State
	nextID int
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithFetchTimeout bounds each Load. Zero disables the bound.
func WithFetchTimeout(d time.Duration) Option {
	return func(c *Controller) { c.fetchTimeout = d }
}

// WithAnswerHook registers fn to run after every accepted selection.
func WithAnswerHook(fn func(AnswerEvent)) Option {
	return func(c *Controller) { c.onAnswer = append(c.onAnswer, fn) }
}

// WithCompleteHook registers fn to run once when the session reaches its end.
func WithCompleteHook(fn func(State)) Option {
	return func(c *Controller) { c.onComplete = append(c.onComplete, fn) }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithIDGenerator overrides session ID generation.
func WithIDGenerator(fn func() string) Option {
	return func(c *Controller) { c.newID = fn }
}

// New creates a controller in the Unloaded phase.
func New(src trivia.Source, opts ...Option) *Controller {
	c := &Controller{
		src:    src,
		logger: zap.NewNop(),
		now:    time.Now,
		newID:  func() string { return uuid.NewString() },
		subs:   make(map[int]chan State),
		st:     State{Phase: PhaseUnloaded, Selected: -1},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current snapshot.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.st
}

// Source returns the configured trivia source.
func (c *Controller) Source() trivia.Source { return c.src }

// Load fetches a fresh question list and, on success, atomically replaces
// the list and resets the counters. On failure the list and counters are
// left untouched and the *trivia.LoadError is recorded and returned.
// A Load started while another is in flight cancels the earlier one; the
// earlier call returns ErrSuperseded.
func (c *Controller) Load(ctx context.Context) error {
	var (
		fetchCtx context.Context
		cancel   context.CancelFunc
	)
	if c.fetchTimeout > 0 {
		fetchCtx, cancel = context.WithTimeout(ctx, c.fetchTimeout)
	} else {
		fetchCtx, cancel = context.WithCancel(ctx)
	}

	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.gen++
	gen := c.gen
	c.cancel = cancel
	c.st.Phase = PhaseLoading
	c.publishLocked()
	c.mu.Unlock()

	source := c.src.Describe()
	c.logger.Debug("loading trivia", zap.String("source", source), zap.Uint64("generation", gen))

	items, err := c.src.Fetch(fetchCtx)
	if err == nil && len(items) == 0 {
		err = &trivia.LoadError{Kind: trivia.KindDecode, Source: source, Err: trivia.ErrNoQuestions}
	}

	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		cancel()
		c.logger.Debug("discarding superseded load", zap.Uint64("generation", gen))
		return ErrSuperseded
	}
	c.cancel = nil
	cancel()

	if err != nil {
		le := trivia.AsLoadError(err, source)
		c.st.LoadErr = le
		c.st.Phase = c.settledPhaseLocked()
		c.publishLocked()
		c.mu.Unlock()

		c.logger.Error("trivia load failed",
			zap.String("source", source),
			zap.Stringer("kind", le.Kind),
			zap.Error(err),
		)
		return le
	}

	c.st = State{
		Phase:     PhaseLoaded,
		Items:     items,
		SessionID: c.newID(),
		Source:    source,
		StartedAt: c.now(),
		Version:   c.st.Version,
	}
	c.setCurrentLocked()
	c.publishLocked()
	st := c.st
	c.mu.Unlock()

	c.logger.Info("quiz loaded",
		zap.String("session_id", st.SessionID),
		zap.String("source", source),
		zap.Int("questions", st.Len()),
	)
	return nil
}

// Advance moves to the next question, or marks the end when the current
// question is the last one. Once the end is reached further calls are no-ops.
func (c *Controller) Advance() error {
	c.mu.Lock()
	if !c.st.Loaded() {
		c.mu.Unlock()
		return ErrNotLoaded
	}
	if c.st.ReachedEnd {
		c.mu.Unlock()
		return nil
	}

	if c.st.Index+1 < c.st.Len() {
		c.st.Index++
		c.setCurrentLocked()
		c.publishLocked()
		c.mu.Unlock()
		return nil
	}

	c.st.ReachedEnd = true
	if c.cancel == nil {
		c.st.Phase = PhaseCompleted
	}
	c.publishLocked()
	st := c.st
	c.mu.Unlock()

	c.logger.Info("quiz completed",
		zap.String("session_id", st.SessionID),
		zap.Int("score", st.Score),
		zap.Int("questions", st.Len()),
	)
	for _, fn := range c.onComplete {
		fn(st)
	}
	return nil
}

// Select records answer as the choice for the current question. The
// answer must be one of the current choices. Only the first selection per
// question counts.
func (c *Controller) Select(answer trivia.Answer) error {
	c.mu.Lock()
	idx := -1
	for i, a := range c.st.Choices {
		if a == answer {
			idx = i
			break
		}
	}
	if idx < 0 && c.st.Loaded() && !c.st.ReachedEnd {
		c.mu.Unlock()
		return ErrUnknownAnswer
	}
	return c.selectLocked(idx)
}

// SelectAt records the choice at position i of the current question.
func (c *Controller) SelectAt(i int) error {
	c.mu.Lock()
	if c.st.Loaded() && !c.st.ReachedEnd && (i < 0 || i >= len(c.st.Choices)) {
		c.mu.Unlock()
		return ErrUnknownAnswer
	}
	return c.selectLocked(i)
}

// selectLocked is entered with c.mu held and releases it.
func (c *Controller) selectLocked(i int) error {
	switch {
	case !c.st.Loaded():
		c.mu.Unlock()
		return ErrNotLoaded
	case c.st.ReachedEnd:
		c.mu.Unlock()
		return ErrCompleted
	case c.st.AnswerSelected:
		c.mu.Unlock()
		return ErrAlreadyAnswered
	}

	answer := c.st.Choices[i]
	c.st.AnswerSelected = true
	c.st.Selected = i
	c.st.Answered++
	if answer.IsCorrect {
		c.st.Score++
	}
	c.publishLocked()

	ev := AnswerEvent{
		SessionID: c.st.SessionID,
		Index:     c.st.Index,
		Question:  c.st.Question,
		Answer:    answer,
		Correct:   answer.IsCorrect,
		Score:     c.st.Score,
		At:        c.now(),
	}
	c.mu.Unlock()

	for _, fn := range c.onAnswer {
		fn(ev)
	}
	return nil
}

// Subscribe returns a channel that always holds the latest snapshot.
// Undelivered snapshots are replaced by newer ones, so a slow reader only
// sees the most recent state. The returned func unsubscribes and closes
// the channel.
func (c *Controller) Subscribe() (<-chan State, func()) {
	ch := make(chan State, 1)

	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.subs[id] = ch
	ch <- c.st
	c.mu.Unlock()

	return ch, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if _, ok := c.subs[id]; ok {
			delete(c.subs, id)
			close(ch)
		}
	}
}

// Close cancels any in-flight load and closes all subscriptions.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.gen++
	for id, ch := range c.subs {
		delete(c.subs, id)
		close(ch)
	}
}

// setCurrentLocked derives the current question, choices and progress from
// the index.
func (c *Controller) setCurrentLocked() {
	n := c.st.Len()
	c.st.AnswerSelected = false
	c.st.Selected = -1
	if n == 0 {
		c.st.Progress = 0
		return
	}
	c.st.Progress = float64(c.st.Index+1) / float64(n)
	if item, ok := c.st.Current(); ok {
		c.st.Question = item.Question
		c.st.Choices = item.Answers
	}
}

// settledPhaseLocked returns the phase implied by the current list when no
// load is in flight.
func (c *Controller) settledPhaseLocked() Phase {
	switch {
	case !c.st.Loaded():
		if c.st.LoadErr != nil {
			return PhaseLoadFailed
		}
		return PhaseUnloaded
	case c.st.ReachedEnd:
		return PhaseCompleted
	default:
		return PhaseLoaded
	}
}

func (c *Controller) publishLocked() {
	c.st.Version++
	for _, ch := range c.subs {
		select {
		case ch <- c.st:
			continue
		default:
		}
		// Mailbox full: replace the stale snapshot.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- c.st:
		default:
		}
	}
}

// IsSuperseded reports whether err came from a Load that was replaced by a
// newer one.
func IsSuperseded(err error) bool { return errors.Is(err, ErrSuperseded) }
