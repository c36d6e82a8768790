package trivia

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"
)

// payload is the wire shape served by trivia endpoints. Field names are
// snake_case on the wire.
type payload struct {
	Results []wireItem `json:"results" yaml:"results"`
}

type wireItem struct {
	Question string       `json:"question" yaml:"question"`
	Answers  []wireAnswer `json:"answers" yaml:"answers"`
}

type wireAnswer struct {
	Text      string `json:"text" yaml:"text"`
	IsCorrect bool   `json:"is_correct" yaml:"is_correct"`
}

// Decode validates a raw JSON payload and converts it to items.
// Question and answer text is HTML-unescaped.
func Decode(raw []byte) ([]Item, error) {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if err := validatePayload(doc); err != nil {
		return nil, err
	}

	var p payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	return convert(p)
}

func convert(p payload) ([]Item, error) {
	if len(p.Results) == 0 {
		return nil, ErrNoQuestions
	}

	items := make([]Item, 0, len(p.Results))
	for i, w := range p.Results {
		q := cleanText(w.Question)
		if q == "" {
			return nil, fmt.Errorf("question %d: empty text", i+1)
		}

		answers := make([]Answer, 0, len(w.Answers))
		correct := 0
		for _, a := range w.Answers {
			if a.IsCorrect {
				correct++
			}
			answers = append(answers, Answer{Text: cleanText(a.Text), IsCorrect: a.IsCorrect})
		}
		if correct != 1 {
			return nil, fmt.Errorf("question %d: want exactly one correct answer, got %d", i+1, correct)
		}

		items = append(items, Item{Question: q, Answers: answers})
	}
	return items, nil
}

// Encode renders items back into the wire payload.
func Encode(items []Item) ([]byte, error) {
	p := payload{Results: make([]wireItem, 0, len(items))}
	for _, it := range items {
		w := wireItem{Question: it.Question, Answers: make([]wireAnswer, 0, len(it.Answers))}
		for _, a := range it.Answers {
			w.Answers = append(w.Answers, wireAnswer{Text: a.Text, IsCorrect: a.IsCorrect})
		}
		p.Results = append(p.Results, w)
	}
	return json.MarshalIndent(p, "", "  ")
}

func cleanText(s string) string {
	return strings.TrimSpace(html.UnescapeString(s))
}
