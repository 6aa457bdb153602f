package attempt

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizforge/internal/domain"
)

type captureSink struct {
	entries chan []domain.WrongAnswerEntry
	err     error
}

func newCaptureSink() *captureSink {
	return &captureSink{entries: make(chan []domain.WrongAnswerEntry, 1)}
}

func (s *captureSink) SaveWrongAnswers(ctx context.Context, entries []domain.WrongAnswerEntry) error {
	s.entries <- entries
	return s.err
}

func threeQuestions() []domain.QuizQuestion {
	return []domain.QuizQuestion{
		{
			Type:          domain.MultipleChoice,
			Question:      "대한민국의 수도는?",
			Options:       []string{"부산", "서울", "대전", "광주"},
			CorrectAnswer: domain.AnswerIndex(1),
			Explanation:   "대한민국의 수도는 서울이다.",
		},
		{
			Type:          domain.TrueFalse,
			Question:      "물은 100도에서 끓는다.",
			CorrectAnswer: domain.AnswerBool(true),
		},
		{
			Type:          domain.FillInBlank,
			Question:      "지구에서 가장 가까운 별은 ___이다.",
			CorrectAnswer: domain.AnswerText("태양"),
		},
	}
}

func TestAttempt_StartsAtFirstQuestion(t *testing.T) {
	a := New("user-1", "quiz-1", "일반 상식", threeQuestions(), nil)

	assert.Equal(t, StateInProgress, a.State())
	assert.Equal(t, 0, a.CurrentIndex())
	assert.Equal(t, 3, a.Total())
	assert.False(t, a.Answered(0))
}

func TestAttempt_AnswerReportsCorrectness(t *testing.T) {
	a := New("user-1", "quiz-1", "일반 상식", threeQuestions(), nil)

	correct, err := a.Answer(0, domain.AnswerIndex(1))
	require.NoError(t, err)
	assert.True(t, correct)

	correct, err = a.Answer(1, domain.AnswerBool(false))
	require.NoError(t, err)
	assert.False(t, correct)
}

func TestAttempt_AnswerOverwrites(t *testing.T) {
	a := New("user-1", "quiz-1", "일반 상식", threeQuestions(), nil)

	_, err := a.Answer(0, domain.AnswerIndex(3))
	require.NoError(t, err)

	correct, err := a.Answer(0, domain.AnswerIndex(1))
	require.NoError(t, err)
	assert.True(t, correct)
}

func TestAttempt_AnswerRejectsOutOfRange(t *testing.T) {
	a := New("user-1", "quiz-1", "일반 상식", threeQuestions(), nil)

	_, err := a.Answer(3, domain.AnswerIndex(0))
	assert.True(t, domain.IsCode(err, domain.CodeInvalidInput))

	_, err = a.Answer(-1, domain.AnswerIndex(0))
	assert.True(t, domain.IsCode(err, domain.CodeInvalidInput))
}

func TestAttempt_TextAnswersCompareExactly(t *testing.T) {
	a := New("user-1", "quiz-1", "일반 상식", threeQuestions(), nil)

	correct, err := a.Answer(2, domain.AnswerText("태양 "))
	require.NoError(t, err)
	assert.False(t, correct, "trailing whitespace must not match")

	correct, err = a.Answer(2, domain.AnswerText("태양"))
	require.NoError(t, err)
	assert.True(t, correct)
}

func TestAttempt_NextBlockedUntilAnswered(t *testing.T) {
	a := New("user-1", "quiz-1", "일반 상식", threeQuestions(), nil)

	assert.False(t, a.Next())
	assert.Equal(t, 0, a.CurrentIndex())

	_, err := a.Answer(0, domain.AnswerIndex(1))
	require.NoError(t, err)

	assert.True(t, a.Next())
	assert.Equal(t, 1, a.CurrentIndex())
}

func TestAttempt_PrevNoOpAtFirstQuestion(t *testing.T) {
	a := New("user-1", "quiz-1", "일반 상식", threeQuestions(), nil)

	assert.False(t, a.Prev())
	assert.Equal(t, 0, a.CurrentIndex())

	_, err := a.Answer(0, domain.AnswerIndex(1))
	require.NoError(t, err)
	require.True(t, a.Next())

	assert.True(t, a.Prev())
	assert.Equal(t, 0, a.CurrentIndex())
}

func TestAttempt_ScoreRoundsTwoOfThreeToSixtySeven(t *testing.T) {
	a := New("user-1", "quiz-1", "일반 상식", threeQuestions(), nil)

	answerAll(t, a, domain.AnswerIndex(1), domain.AnswerBool(true), domain.AnswerText("오답"))

	assert.Equal(t, StateCompleted, a.State())
	assert.Equal(t, 67, a.Score())
}

func TestAttempt_PerfectScore(t *testing.T) {
	a := New("user-1", "quiz-1", "일반 상식", threeQuestions(), nil)

	answerAll(t, a, domain.AnswerIndex(1), domain.AnswerBool(true), domain.AnswerText("태양"))

	assert.Equal(t, 100, a.Score())
}

func TestAttempt_AnswerAfterCompletionFails(t *testing.T) {
	a := New("user-1", "quiz-1", "일반 상식", threeQuestions(), nil)
	answerAll(t, a, domain.AnswerIndex(1), domain.AnswerBool(true), domain.AnswerText("태양"))

	_, err := a.Answer(0, domain.AnswerIndex(0))
	assert.True(t, domain.IsCode(err, domain.CodeInvalidInput))
	assert.False(t, a.Next())
}

func TestAttempt_FlushesWrongAnswersOnCompletion(t *testing.T) {
	sink := newCaptureSink()
	a := New("user-1", "quiz-1", "일반 상식", threeQuestions(), sink)

	answerAll(t, a, domain.AnswerIndex(0), domain.AnswerBool(true), domain.AnswerText("달"))

	select {
	case entries := <-sink.entries:
		require.Len(t, entries, 2)
		assert.Equal(t, "user-1", entries[0].UserID)
		assert.Equal(t, "quiz-1", entries[0].QuizID)
		assert.Equal(t, "일반 상식", entries[0].QuizTitle)
		assert.Equal(t, 0, entries[0].QuestionIndex)
		assert.Equal(t, "0", entries[0].UserAnswer)
		assert.Equal(t, "1", entries[0].CorrectAnswer)
		assert.Equal(t, 2, entries[1].QuestionIndex)
		assert.Equal(t, "달", entries[1].UserAnswer)
		assert.Equal(t, "태양", entries[1].CorrectAnswer)
	case <-time.After(2 * time.Second):
		t.Fatal("wrong answers were never flushed")
	}
}

func TestAttempt_NoFlushWhenAllCorrect(t *testing.T) {
	sink := newCaptureSink()
	a := New("user-1", "quiz-1", "일반 상식", threeQuestions(), sink)

	answerAll(t, a, domain.AnswerIndex(1), domain.AnswerBool(true), domain.AnswerText("태양"))

	select {
	case <-sink.entries:
		t.Fatal("sink must not be called for a perfect attempt")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestAttempt_FlushHappensOnce(t *testing.T) {
	sink := newCaptureSink()
	a := New("user-1", "quiz-1", "일반 상식", threeQuestions(), sink)

	answerAll(t, a, domain.AnswerIndex(0), domain.AnswerBool(true), domain.AnswerText("태양"))
	<-sink.entries

	a.Reset()
	answerAll(t, a, domain.AnswerIndex(0), domain.AnswerBool(true), domain.AnswerText("태양"))

	select {
	case <-sink.entries:
		t.Fatal("a second completion must not flush again")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestAttempt_SinkFailureDoesNotSurface(t *testing.T) {
	sink := newCaptureSink()
	sink.err = errors.New("db unavailable")
	a := New("user-1", "quiz-1", "일반 상식", threeQuestions(), sink)

	answerAll(t, a, domain.AnswerIndex(0), domain.AnswerBool(true), domain.AnswerText("태양"))
	<-sink.entries

	assert.Equal(t, StateCompleted, a.State())
	assert.Equal(t, 67, a.Score())
}

func TestAttempt_ResetClearsAnswers(t *testing.T) {
	a := New("user-1", "quiz-1", "일반 상식", threeQuestions(), nil)
	answerAll(t, a, domain.AnswerIndex(1), domain.AnswerBool(true), domain.AnswerText("태양"))

	a.Reset()

	assert.Equal(t, StateInProgress, a.State())
	assert.Equal(t, 0, a.CurrentIndex())
	assert.Equal(t, 0, a.Score())
	assert.False(t, a.Answered(0))
}

func answerAll(t *testing.T, a *Attempt, answers ...domain.Answer) {
	t.Helper()
	for i, ans := range answers {
		_, err := a.Answer(i, ans)
		require.NoError(t, err)
		require.True(t, a.Next())
	}
}
