package domain

import (
	"context"
	"encoding/json"
	"fmt"
)

// QuestionType tags the four supported question kinds.
type QuestionType string

const (
	MultipleChoice     QuestionType = "multiple-choice"
	TrueFalse          QuestionType = "true-false"
	FillInBlank        QuestionType = "fill-in-the-blank"
	SentenceCompletion QuestionType = "sentence-completion"
)

// AnswerKind discriminates the Answer union.
type AnswerKind int

const (
	AnswerKindIndex AnswerKind = iota
	AnswerKindBool
	AnswerKindText
)

// Answer is a tagged union over the three wire shapes a correct answer can
// take: an option index (multiple-choice), a boolean (true/false), or a
// string (fill-in-the-blank, sentence-completion). The JSON codec preserves
// the original shape.
type Answer struct {
	kind  AnswerKind
	index int
	b     bool
	text  string
}

func AnswerIndex(i int) Answer   { return Answer{kind: AnswerKindIndex, index: i} }
func AnswerBool(b bool) Answer   { return Answer{kind: AnswerKindBool, b: b} }
func AnswerText(s string) Answer { return Answer{kind: AnswerKindText, text: s} }

func (a Answer) Kind() AnswerKind { return a.kind }
func (a Answer) Index() int       { return a.index }
func (a Answer) Bool() bool       { return a.b }
func (a Answer) Text() string     { return a.text }

// Equals compares two answers by kind and value. Text comparison is
// intentionally exact; no whitespace or case normalization is applied.
func (a Answer) Equals(other Answer) bool {
	if a.kind != other.kind {
		return false
	}
	switch a.kind {
	case AnswerKindIndex:
		return a.index == other.index
	case AnswerKindBool:
		return a.b == other.b
	case AnswerKindText:
		return a.text == other.text
	}
	return false
}

// String renders the answer for display and wrong-answer logging.
func (a Answer) String() string {
	switch a.kind {
	case AnswerKindIndex:
		return fmt.Sprintf("%d", a.index)
	case AnswerKindBool:
		return fmt.Sprintf("%t", a.b)
	default:
		return a.text
	}
}

func (a Answer) MarshalJSON() ([]byte, error) {
	switch a.kind {
	case AnswerKindIndex:
		return json.Marshal(a.index)
	case AnswerKindBool:
		return json.Marshal(a.b)
	default:
		return json.Marshal(a.text)
	}
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*a = AnswerBool(b)
		return nil
	}
	var i int
	if err := json.Unmarshal(data, &i); err == nil {
		*a = AnswerIndex(i)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = AnswerText(s)
		return nil
	}
	return fmt.Errorf("answer must be a number, boolean, or string: %s", string(data))
}

// QuizQuestion is one generated question. For multiple-choice questions
// CorrectAnswer is an index into Options.
type QuizQuestion struct {
	Type          QuestionType `json:"type"`
	Question      string       `json:"question"`
	Options       []string     `json:"options,omitempty"`
	CorrectAnswer Answer       `json:"correctAnswer"`
	Explanation   string       `json:"explanation,omitempty"`
}

// GeneratedQuiz is the structured output of one generation call.
// It is read-only after creation and persisted verbatim.
type GeneratedQuiz struct {
	Summary   string         `json:"summary"`
	KeyPoints []string       `json:"keyPoints"`
	Questions []QuizQuestion `json:"questions"`
}

// QuestionTypeToggles enables or disables question kinds for a generation
// request. Sentence-completion rides along with fill-in-the-blank.
type QuestionTypeToggles struct {
	MultipleChoice bool `json:"multipleChoice"`
	TrueOrFalse    bool `json:"trueOrFalse"`
	FillInBlank    bool `json:"fillInBlank"`
}

// QuizGenerationOptions configures a generation request. A nil options
// pointer means the generator default mix and count.
type QuizGenerationOptions struct {
	Types         QuestionTypeToggles `json:"types"`
	QuestionCount int                 `json:"questionCount"`
}

// QuizGenerationService builds a prompt from validated content, invokes the
// language model once, and parses the structured response. The prompt that
// was sent is returned for persistence alongside the quiz.
type QuizGenerationService interface {
	GenerateQuiz(ctx context.Context, content string, opts *QuizGenerationOptions) (*GeneratedQuiz, string, error)
}

// TitleTagService derives a short title and category tag from content.
// Implementations must never return an error: any upstream failure falls
// back to a deterministic title and the "일반" tag.
type TitleTagService interface {
	DeriveTitleAndTag(ctx context.Context, content string, fallbackTitle string) (title string, tag string)
}
