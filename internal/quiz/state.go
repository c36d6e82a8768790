package quiz

import (
	"time"

	"github.com/abhisek/triviaz/internal/trivia"
)

// Phase represents where the controller is in the session lifecycle.
type Phase int

const (
	PhaseUnloaded   Phase = iota // No list fetched yet
	PhaseLoading                 // Fetch in flight
	PhaseLoaded                  // Serving questions
	PhaseCompleted               // Advanced past the last question
	PhaseLoadFailed              // Fetch failed and no list is loaded
)

func (p Phase) String() string {
	switch p {
	case PhaseUnloaded:
		return "unloaded"
	case PhaseLoading:
		return "loading"
	case PhaseLoaded:
		return "loaded"
	case PhaseCompleted:
		return "completed"
	case PhaseLoadFailed:
		return "load_failed"
	default:
		return "unknown"
	}
}

// State is an immutable snapshot of the quiz session. Slices are shared
// with the controller and must not be modified.
type State struct {
	// Phase is the current lifecycle phase.
	Phase Phase

	// Items is the fetched question list, read-only.
	Items []trivia.Item

	// Index is the 0-based position of the current question.
	Index int

	// Score is the number of correct selections in this session.
	Score int

	// Answered is the number of questions with an accepted selection.
	Answered int

	// Progress is (Index+1)/len(Items) in [0,1]; 0 before a load.
	Progress float64

	// AnswerSelected is true once a choice was accepted for the current question.
	AnswerSelected bool

	// Selected is the index of the accepted choice, -1 if none.
	Selected int

	// ReachedEnd is set by advancing past the last question.
	ReachedEnd bool

	// Question is the current question text.
	Question string

	// Choices are the current question's answer choices.
	Choices []trivia.Answer

	// LoadErr is the most recent load failure, nil after a successful load.
	LoadErr *trivia.LoadError

	// SessionID identifies the loaded list; a new one is assigned per load.
	SessionID string

	// Source describes where the list came from.
	Source string

	// StartedAt is when the list was loaded.
	StartedAt time.Time

	// Version increases with every published change.
	Version uint64
}

// Len returns the number of questions in the list.
func (s State) Len() int { return len(s.Items) }

// Loaded reports whether a question list is available.
func (s State) Loaded() bool { return len(s.Items) > 0 }

// ProgressScaled maps Progress onto [0, max].
func (s State) ProgressScaled(max float64) float64 {
	return s.Progress * max
}

// Current returns the current question.
func (s State) Current() (trivia.Item, bool) {
	if s.Index < 0 || s.Index >= len(s.Items) {
		return trivia.Item{}, false
	}
	return s.Items[s.Index], true
}

// Accuracy returns Score/Answered, 0 when nothing was answered.
func (s State) Accuracy() float64 {
	if s.Answered == 0 {
		return 0
	}
	return float64(s.Score) / float64(s.Answered)
}

// AnswerEvent describes an accepted selection.
type AnswerEvent struct {
	SessionID string
	Index     int
	Question  string
	Answer    trivia.Answer
	Correct   bool
	Score     int
	At        time.Time
}
