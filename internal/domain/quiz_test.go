package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswer_Equals(t *testing.T) {
	tests := []struct {
		name string
		a    Answer
		b    Answer
		want bool
	}{
		{"same index", AnswerIndex(2), AnswerIndex(2), true},
		{"different index", AnswerIndex(2), AnswerIndex(3), false},
		{"same bool", AnswerBool(true), AnswerBool(true), true},
		{"different bool", AnswerBool(true), AnswerBool(false), false},
		{"same text", AnswerText("서울"), AnswerText("서울"), true},
		{"trailing space is a different text", AnswerText("서울"), AnswerText("서울 "), false},
		{"case differs", AnswerText("Seoul"), AnswerText("seoul"), false},
		{"kind mismatch", AnswerIndex(1), AnswerText("1"), false},
		{"bool vs index", AnswerBool(false), AnswerIndex(0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Equals(tt.b))
		})
	}
}

func TestAnswer_JSONShapePreserved(t *testing.T) {
	tests := []struct {
		name string
		in   Answer
		wire string
	}{
		{"index", AnswerIndex(3), "3"},
		{"bool", AnswerBool(true), "true"},
		{"text", AnswerText("광합성"), `"광합성"`},
		{"numeric-looking text", AnswerText("42"), `"42"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.wire, string(data))

			var out Answer
			require.NoError(t, json.Unmarshal(data, &out))
			assert.Equal(t, tt.in.Kind(), out.Kind())
			assert.True(t, tt.in.Equals(out))
		})
	}
}

func TestAnswer_UnmarshalRejectsStructured(t *testing.T) {
	var a Answer
	assert.Error(t, json.Unmarshal([]byte(`{"value":1}`), &a))
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &a))
}

func TestAnswer_String(t *testing.T) {
	assert.Equal(t, "2", AnswerIndex(2).String())
	assert.Equal(t, "false", AnswerBool(false).String())
	assert.Equal(t, "태양", AnswerText("태양").String())
}

func TestQuizQuestion_RoundTrip(t *testing.T) {
	raw := `{"type":"multiple-choice","question":"대한민국의 수도는?","options":["부산","서울","대구","인천"],"correctAnswer":1,"explanation":"서울이 수도다."}`

	var q QuizQuestion
	require.NoError(t, json.Unmarshal([]byte(raw), &q))
	assert.Equal(t, MultipleChoice, q.Type)
	assert.Equal(t, AnswerKindIndex, q.CorrectAnswer.Kind())
	assert.Equal(t, 1, q.CorrectAnswer.Index())
	assert.Len(t, q.Options, 4)

	data, err := json.Marshal(q)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(data))
}
