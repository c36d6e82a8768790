package quiz

import "errors"

var (
	// ErrNotLoaded is returned by commands issued before a list is loaded.
	ErrNotLoaded = errors.New("quiz: no questions loaded")

	// ErrCompleted is returned when selecting after the end was reached.
	ErrCompleted = errors.New("quiz: session completed")

	// ErrUnknownAnswer is returned for a choice that does not belong to the
	// current question.
	ErrUnknownAnswer = errors.New("quiz: answer is not a choice of the current question")

	// ErrAlreadyAnswered is returned for a second selection on the same question.
	ErrAlreadyAnswered = errors.New("quiz: current question already answered")

	// ErrSuperseded is returned by a Load whose result was discarded because
	// a newer Load started.
	ErrSuperseded = errors.New("quiz: load superseded")
)
