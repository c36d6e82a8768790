package trivia

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePayload = `{
  "results": [
    {"question": "2+2?", "answers": [{"text": "4", "is_correct": true}, {"text": "5", "is_correct": false}]},
    {"question": "Capital of France?", "answers": [{"text": "Paris", "is_correct": true}, {"text": "Lyon", "is_correct": false}]}
  ]
}`

func TestDecode_Valid(t *testing.T) {
	items, err := Decode([]byte(samplePayload))
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "2+2?", items[0].Question)
	assert.Equal(t, []Answer{{Text: "4", IsCorrect: true}, {Text: "5", IsCorrect: false}}, items[0].Answers)
	assert.Equal(t, "Capital of France?", items[1].Question)
	assert.Equal(t, 0, items[1].CorrectIndex())
}

func TestDecode_UnescapesHTML(t *testing.T) {
	raw := `{"results":[{"question":"Who wrote &quot;Hamlet&quot;?","answers":[
		{"text":"Shakespeare","is_correct":true},{"text":"Marlowe &amp; co","is_correct":false}]}]}`

	items, err := Decode([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, `Who wrote "Hamlet"?`, items[0].Question)
	assert.Equal(t, "Marlowe & co", items[0].Answers[1].Text)
}

func TestDecode_AllowsExtraFields(t *testing.T) {
	raw := `{"response_code":0,"results":[{"category":"Math","question":"1+1?","answers":[
		{"text":"2","is_correct":true,"id":7}]}]}`

	items, err := Decode([]byte(raw))
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `<html>oops</html>`},
		{"missing results", `{"items":[]}`},
		{"results wrong type", `{"results":"nope"}`},
		{"missing answers", `{"results":[{"question":"q"}]}`},
		{"correctness wrong type", `{"results":[{"question":"q","answers":[{"text":"a","is_correct":"yes"}]}]}`},
		{"camel case flag", `{"results":[{"question":"q","answers":[{"text":"a","isCorrect":true}]}]}`},
		{"no correct answer", `{"results":[{"question":"q","answers":[{"text":"a","is_correct":false}]}]}`},
		{"two correct answers", `{"results":[{"question":"q","answers":[{"text":"a","is_correct":true},{"text":"b","is_correct":true}]}]}`},
		{"blank question", `{"results":[{"question":"  ","answers":[{"text":"a","is_correct":true}]}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := Decode([]byte(tt.raw))
			require.Error(t, err)
			assert.Nil(t, items)
		})
	}
}

func TestDecode_EmptyResults(t *testing.T) {
	_, err := Decode([]byte(`{"results":[]}`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoQuestions))
}

func TestEncode_RoundTripsThroughDecode(t *testing.T) {
	items, err := Decode([]byte(samplePayload))
	require.NoError(t, err)

	raw, err := Encode(items)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"is_correct": true`)

	again, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, items, again)
}

func TestDefinition_StrictForbidsExtraProperties(t *testing.T) {
	strict := Definition(true)
	assert.Equal(t, false, strict["additionalProperties"])

	lenient := Definition(false)
	_, ok := lenient["additionalProperties"]
	assert.False(t, ok)
}

func TestItem_CorrectAnswer(t *testing.T) {
	it := Item{Question: "q", Answers: []Answer{{Text: "a"}, {Text: "b", IsCorrect: true}}}
	a, ok := it.CorrectAnswer()
	require.True(t, ok)
	assert.Equal(t, "b", a.Text)

	_, ok = Item{Question: "q", Answers: []Answer{{Text: "a"}}}.CorrectAnswer()
	assert.False(t, ok)
}
