package trivia

import "context"

// Answer is one candidate response to a question.
type Answer struct {
	Text      string
	IsCorrect bool
}

// Item is a single trivia question with its ordered answer choices.
// Items are immutable once decoded.
type Item struct {
	Question string
	Answers  []Answer
}

// CorrectIndex returns the index of the correct answer, or -1 if none is marked.
func (it Item) CorrectIndex() int {
	for i, a := range it.Answers {
		if a.IsCorrect {
			return i
		}
	}
	return -1
}

// CorrectAnswer returns the correct answer choice.
func (it Item) CorrectAnswer() (Answer, bool) {
	i := it.CorrectIndex()
	if i < 0 {
		return Answer{}, false
	}
	return it.Answers[i], true
}

// Source produces a list of trivia items. Each call to Fetch is one
// independent attempt; implementations return *LoadError on failure.
type Source interface {
	Fetch(ctx context.Context) ([]Item, error)

	// Describe returns a short human-readable label (URL, file path, model).
	Describe() string
}
