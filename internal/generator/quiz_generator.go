package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"quizforge/internal/domain"
	"quizforge/internal/logger"

	"go.uber.org/zap"
)

// QuizGenerator implements domain.QuizGenerationService: one outbound call
// per generation, no retries.
type QuizGenerator struct {
	client LLMClient
}

func NewQuizGenerator(client LLMClient) *QuizGenerator {
	return &QuizGenerator{client: client}
}

var _ domain.QuizGenerationService = (*QuizGenerator)(nil)

const quizPromptTemplate = `당신은 전문 퀴즈 출제자입니다. 아래 내용을 바탕으로 학습 퀴즈를 만들어 주세요.

=== 내용 시작 ===
%s
=== 내용 끝 ===

%s

응답은 반드시 아래 형식의 JSON 객체 하나만 출력하세요. JSON 외의 텍스트를 포함하지 마세요.
{
  "summary": "내용의 핵심을 담은 2~3문장 요약",
  "keyPoints": ["핵심 포인트 1", "핵심 포인트 2", "핵심 포인트 3"],
  "questions": [
    {
      "type": "multiple-choice",
      "question": "질문 내용",
      "options": ["보기1", "보기2", "보기3", "보기4"],
      "correctAnswer": 0,
      "explanation": "정답 해설"
    },
    {
      "type": "true-false",
      "question": "참 또는 거짓으로 답할 수 있는 진술",
      "correctAnswer": true,
      "explanation": "정답 해설"
    },
    {
      "type": "fill-in-the-blank",
      "question": "빈칸이 포함된 문장 (빈칸은 ____로 표시)",
      "correctAnswer": "빈칸에 들어갈 단어",
      "explanation": "정답 해설"
    }
  ]
}

규칙:
1. summary는 반드시 포함하고, keyPoints는 정확히 3개를 작성하세요.
2. multiple-choice의 correctAnswer는 options 배열의 인덱스(0부터 시작)입니다.
3. true-false의 correctAnswer는 true 또는 false입니다.
4. fill-in-the-blank와 sentence-completion의 correctAnswer는 문자열입니다.
5. 모든 문제는 한국어로 작성하세요.
6. 문제는 제공된 내용에서만 출제하세요.`

// GenerateQuiz builds the prompt, invokes the language model once, and
// parses the structured JSON response. The exact prompt sent is returned so
// callers can persist it alongside the quiz.
func (g *QuizGenerator) GenerateQuiz(ctx context.Context, content string, opts *domain.QuizGenerationOptions) (*domain.GeneratedQuiz, string, error) {
	prompt := fmt.Sprintf(quizPromptTemplate, content, mixInstruction(opts))

	raw, err := g.client.Invoke(ctx, prompt)
	if err != nil {
		return nil, prompt, classifyLLMError(err)
	}

	quiz, err := parseQuizResponse(raw)
	if err != nil {
		logger.Get().Error("failed to parse quiz generation response",
			zap.Error(err),
			zap.String("response_head", head(raw, 300)))
		return nil, prompt, err
	}

	logger.Get().Info("quiz generated",
		zap.Int("questions", len(quiz.Questions)),
		zap.Int("content_length", len(content)))
	return quiz, prompt, nil
}

// mixInstruction renders the question-mix section of the prompt. Without
// explicit options the default mix applies: 2-3 each of multiple-choice,
// true/false, and fill-in-the-blank.
func mixInstruction(opts *domain.QuizGenerationOptions) string {
	if opts == nil {
		return "다음 구성으로 문제를 만들어 주세요: 객관식(multiple-choice) 2~3문제, 참/거짓(true-false) 2~3문제, 빈칸 채우기(fill-in-the-blank) 2~3문제."
	}

	var kinds []string
	if opts.Types.MultipleChoice {
		kinds = append(kinds, "객관식(multiple-choice)")
	}
	if opts.Types.TrueOrFalse {
		kinds = append(kinds, "참/거짓(true-false)")
	}
	if opts.Types.FillInBlank {
		kinds = append(kinds, "빈칸 채우기(fill-in-the-blank) 또는 문장 완성(sentence-completion)")
	}
	if len(kinds) == 0 {
		kinds = append(kinds, "객관식(multiple-choice)", "참/거짓(true-false)", "빈칸 채우기(fill-in-the-blank)")
	}

	count := opts.QuestionCount
	if count <= 0 {
		count = 6
	}
	return fmt.Sprintf("다음 유형으로 총 %d문제를 만들어 주세요: %s.", count, strings.Join(kinds, ", "))
}

// parseQuizResponse cleans model output and unmarshals it. The model tends
// to wrap JSON in code fences or reasoning tags, so the first '{' to the
// last '}' is extracted before parsing.
func parseQuizResponse(raw string) (*domain.GeneratedQuiz, error) {
	jsonStr, ok := extractJSONObject(raw)
	if !ok {
		return nil, domain.NewMalformedResponseError(fmt.Errorf("no JSON object found in response"))
	}

	var quiz domain.GeneratedQuiz
	if err := json.Unmarshal([]byte(jsonStr), &quiz); err != nil {
		return nil, domain.NewMalformedResponseError(err)
	}

	if quiz.Summary == "" {
		return nil, domain.NewMalformedResponseError(fmt.Errorf("response is missing summary"))
	}
	if len(quiz.KeyPoints) == 0 {
		return nil, domain.NewMalformedResponseError(fmt.Errorf("response is missing keyPoints"))
	}
	if len(quiz.Questions) == 0 {
		return nil, domain.NewMalformedResponseError(fmt.Errorf("response is missing questions"))
	}
	return &quiz, nil
}

// extractJSONObject strips <think> blocks and code fences, then slices from
// the first '{' to the last '}'.
func extractJSONObject(raw string) (string, bool) {
	cleaned := strings.TrimSpace(raw)

	if thinkStart := strings.Index(cleaned, "<think>"); thinkStart != -1 {
		if thinkEnd := strings.Index(cleaned, "</think>"); thinkEnd != -1 && thinkEnd > thinkStart {
			cleaned = cleaned[:thinkStart] + cleaned[thinkEnd+len("</think>"):]
			cleaned = strings.TrimSpace(cleaned)
		}
	}

	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end == -1 || end <= start {
		return "", false
	}
	return cleaned[start : end+1], true
}

// classifyLLMError separates provider quota exhaustion from other upstream
// failures so the HTTP layer can answer 429 instead of 502.
func classifyLLMError(err error) error {
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "rate limit") {
		return domain.NewQuotaExceededError(err)
	}
	return domain.NewLLMServiceError(err)
}

func head(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
