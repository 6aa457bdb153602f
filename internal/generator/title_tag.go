package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"quizforge/internal/domain"
	"quizforge/internal/logger"

	"go.uber.org/zap"
)

// fallbackTag labels a quiz when the model produces no usable tag.
const fallbackTag = "일반"

// knownTags is the closed-ish category vocabulary the model is asked to
// pick from. An answer outside the set still passes through as-is.
var knownTags = []string{"상식", "기술", "건강", "교육", "생활", "경제", "과학", "역사", "문화"}

const titleTagPromptTemplate = `아래 내용을 읽고 퀴즈의 제목과 카테고리 태그를 만들어 주세요.

=== 내용 시작 ===
%s
=== 내용 끝 ===

응답은 반드시 아래 형식의 JSON 객체 하나만 출력하세요.
{"title": "15자 이내의 간결한 제목", "tag": "카테고리"}

tag는 다음 중 하나를 선택하세요: %s`

// TitleTagGenerator implements domain.TitleTagService: a secondary,
// independent language-model call with a deterministic fallback.
type TitleTagGenerator struct {
	client LLMClient
	now    func() time.Time
}

func NewTitleTagGenerator(client LLMClient) *TitleTagGenerator {
	return &TitleTagGenerator{client: client, now: time.Now}
}

var _ domain.TitleTagService = (*TitleTagGenerator)(nil)

// DeriveTitleAndTag asks the model for a short title and single category
// tag. On any failure it falls back to the supplied title (or a dated
// placeholder) and the "일반" tag. It never returns an error.
func (g *TitleTagGenerator) DeriveTitleAndTag(ctx context.Context, content string, fallbackTitle string) (string, string) {
	prompt := fmt.Sprintf(titleTagPromptTemplate, clip(content, 2000), strings.Join(knownTags, "/"))

	raw, err := g.client.Invoke(ctx, prompt)
	if err != nil {
		logger.Get().Warn("title/tag generation failed, using fallback", zap.Error(err))
		return g.fallback(fallbackTitle)
	}

	jsonStr, ok := extractJSONObject(raw)
	if !ok {
		logger.Get().Warn("title/tag response had no JSON object", zap.String("response_head", head(raw, 200)))
		return g.fallback(fallbackTitle)
	}

	var parsed struct {
		Title string `json:"title"`
		Tag   string `json:"tag"`
	}
	if err := json.Unmarshal([]byte(jsonStr), &parsed); err != nil {
		logger.Get().Warn("failed to parse title/tag response", zap.Error(err))
		return g.fallback(fallbackTitle)
	}

	title := strings.TrimSpace(parsed.Title)
	tag := strings.TrimSpace(parsed.Tag)
	if title == "" {
		title, _ = g.fallback(fallbackTitle)
	}
	if tag == "" {
		tag = fallbackTag
	}
	return title, tag
}

func (g *TitleTagGenerator) fallback(fallbackTitle string) (string, string) {
	if strings.TrimSpace(fallbackTitle) != "" {
		return strings.TrimSpace(fallbackTitle), fallbackTag
	}
	return fmt.Sprintf("퀴즈 - %s", g.now().Format("2006-01-02")), fallbackTag
}

func clip(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
