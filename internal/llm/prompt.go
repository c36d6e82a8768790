package llm

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a quiz master writing multiple-choice trivia questions.

Rules:
- Every question has exactly one correct answer and three plausible wrong answers.
- Mark the correct answer with "is_correct": true and every other answer with false.
- Vary the position of the correct answer between questions.
- Questions must be factual, unambiguous and answerable without external context.
- Keep question text under 200 characters and answers under 60 characters.
- Use plain text. Do not number the questions or prefix answers with letters.
- Do not repeat a question.`

// buildUserMessage asks for count questions on topic.
func buildUserMessage(topic string, count int, avoid []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Topic: %s\n", topic)
	fmt.Fprintf(&b, "Number of questions: %d\n", count)

	if len(avoid) > 0 {
		b.WriteString("\nDo not ask these again:\n")
		for i, q := range avoid {
			fmt.Fprintf(&b, "%d. %s\n", i+1, q)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
