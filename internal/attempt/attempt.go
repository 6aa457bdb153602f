// Package attempt implements the in-memory quiz-taking session: answer
// recording with eager correctness, one-way navigation gated on the current
// question being answered, and scoring on completion. Sessions are ephemeral;
// only the wrong answers of a completed session are persisted, through the
// WrongAnswerSink.
package attempt

import (
	"context"
	"math"

	"go.uber.org/zap"

	"quizforge/internal/domain"
	"quizforge/internal/logger"
)

// State tags the two phases of an attempt.
type State int

const (
	StateInProgress State = iota
	StateCompleted
)

// WrongAnswerSink receives the missed questions of a completed attempt.
// Implemented by the wrong-answer repository; a no-op sink is used for
// anonymous sessions.
type WrongAnswerSink interface {
	SaveWrongAnswers(ctx context.Context, entries []domain.WrongAnswerEntry) error
}

// recordedAnswer keeps the user's value alongside the correctness verdict so
// scoring never re-evaluates.
type recordedAnswer struct {
	value   domain.Answer
	correct bool
}

// Attempt is a single user's walk through one generated quiz. It is not safe
// for concurrent use; each session owns its own Attempt.
type Attempt struct {
	userID    string
	quizID    string
	quizTitle string
	questions []domain.QuizQuestion

	state   State
	current int
	answers map[int]recordedAnswer
	score   int

	sink    WrongAnswerSink
	flushed bool
}

// New starts an attempt at the first question with no answers recorded.
// sink may be nil for sessions whose wrong answers are not kept.
func New(userID, quizID, quizTitle string, questions []domain.QuizQuestion, sink WrongAnswerSink) *Attempt {
	return &Attempt{
		userID:    userID,
		quizID:    quizID,
		quizTitle: quizTitle,
		questions: questions,
		state:     StateInProgress,
		answers:   make(map[int]recordedAnswer),
		sink:      sink,
	}
}

func (a *Attempt) State() State      { return a.state }
func (a *Attempt) CurrentIndex() int { return a.current }
func (a *Attempt) Total() int        { return len(a.questions) }

// Score is only meaningful once the attempt is Completed.
func (a *Attempt) Score() int { return a.score }

// Answered reports whether the question at index has a recorded answer.
func (a *Attempt) Answered(index int) bool {
	_, ok := a.answers[index]
	return ok
}

// Answer records (or overwrites) the user's answer for the question at index
// and returns whether it matched the correct answer. Out-of-range indexes and
// answers after completion return an InvalidInput error.
func (a *Attempt) Answer(index int, value domain.Answer) (bool, error) {
	if a.state != StateInProgress {
		return false, domain.NewInvalidInputError("이미 완료된 퀴즈입니다")
	}
	if index < 0 || index >= len(a.questions) {
		return false, domain.NewInvalidInputError("존재하지 않는 문제입니다")
	}
	correct := a.questions[index].CorrectAnswer.Equals(value)
	a.answers[index] = recordedAnswer{value: value, correct: correct}
	return correct, nil
}

// Next advances to the following question. It is a no-op returning false
// while the current question is unanswered. Advancing past the last question
// completes the attempt, computes the score, and flushes wrong answers.
func (a *Attempt) Next() bool {
	if a.state != StateInProgress {
		return false
	}
	if !a.Answered(a.current) {
		return false
	}
	if a.current == len(a.questions)-1 {
		a.complete()
		return true
	}
	a.current++
	return true
}

// Prev steps back one question; a no-op returning false at the first.
func (a *Attempt) Prev() bool {
	if a.state != StateInProgress || a.current == 0 {
		return false
	}
	a.current--
	return true
}

// Reset discards all answers and returns to the first question. A reset
// attempt may be completed again, but wrong answers are only ever flushed
// once per Attempt.
func (a *Attempt) Reset() {
	a.state = StateInProgress
	a.current = 0
	a.answers = make(map[int]recordedAnswer)
	a.score = 0
}

func (a *Attempt) complete() {
	correct := 0
	for _, rec := range a.answers {
		if rec.correct {
			correct++
		}
	}
	total := len(a.questions)
	if total > 0 {
		a.score = int(math.Round(100 * float64(correct) / float64(total)))
	}
	a.state = StateCompleted
	a.flushWrongAnswers()
}

// flushWrongAnswers hands the missed questions to the sink exactly once.
// The flush is detached from the caller: a slow or failing sink must not
// delay or fail the completion itself.
func (a *Attempt) flushWrongAnswers() {
	if a.flushed || a.sink == nil {
		return
	}
	a.flushed = true

	entries := a.wrongEntries()
	if len(entries) == 0 {
		return
	}

	go func() {
		if err := a.sink.SaveWrongAnswers(context.Background(), entries); err != nil {
			logger.Get().Error("failed to save wrong answers",
				zap.String("quiz_id", a.quizID),
				zap.Int("count", len(entries)),
				zap.Error(err))
		}
	}()
}

func (a *Attempt) wrongEntries() []domain.WrongAnswerEntry {
	var entries []domain.WrongAnswerEntry
	for i, q := range a.questions {
		rec, ok := a.answers[i]
		if !ok || rec.correct {
			continue
		}
		entries = append(entries, domain.WrongAnswerEntry{
			UserID:        a.userID,
			QuizID:        a.quizID,
			QuizTitle:     a.quizTitle,
			QuestionIndex: i,
			QuestionText:  q.Question,
			UserAnswer:    rec.value.String(),
			CorrectAnswer: q.CorrectAnswer.String(),
			Explanation:   q.Explanation,
		})
	}
	return entries
}
