package generator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func fixedClock() time.Time {
	return time.Date(2026, 8, 27, 10, 0, 0, 0, time.UTC)
}

func TestDeriveTitleAndTag_ParsesResponse(t *testing.T) {
	client := new(MockLLMClient)
	client.On("Invoke", mock.Anything, mock.Anything).
		Return(`{"title": "조선 왕조의 역사", "tag": "역사"}`, nil)

	g := NewTitleTagGenerator(client)
	title, tag := g.DeriveTitleAndTag(context.Background(), "조선 왕조에 관한 긴 글", "")

	assert.Equal(t, "조선 왕조의 역사", title)
	assert.Equal(t, "역사", tag)
}

func TestDeriveTitleAndTag_FallsBackOnUpstreamFailure(t *testing.T) {
	client := new(MockLLMClient)
	client.On("Invoke", mock.Anything, mock.Anything).
		Return("", errors.New("network is unreachable"))

	g := NewTitleTagGenerator(client)
	g.now = fixedClock

	title, tag := g.DeriveTitleAndTag(context.Background(), "본문", "")
	assert.Equal(t, "퀴즈 - 2026-08-27", title)
	assert.Equal(t, "일반", tag)
}

func TestDeriveTitleAndTag_PrefersExtractedTitleAsFallback(t *testing.T) {
	client := new(MockLLMClient)
	client.On("Invoke", mock.Anything, mock.Anything).
		Return("", errors.New("boom"))

	g := NewTitleTagGenerator(client)
	title, tag := g.DeriveTitleAndTag(context.Background(), "본문", "추출된 페이지 제목")

	assert.Equal(t, "추출된 페이지 제목", title)
	assert.Equal(t, "일반", tag)
}

func TestDeriveTitleAndTag_FallsBackOnMalformedResponse(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"no json", "그냥 제목: 어떤 글"},
		{"broken json", `{"title": "x", `},
		{"empty fields", `{"title": "", "tag": ""}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(MockLLMClient)
			client.On("Invoke", mock.Anything, mock.Anything).Return(tt.response, nil)

			g := NewTitleTagGenerator(client)
			g.now = fixedClock

			title, tag := g.DeriveTitleAndTag(context.Background(), "본문", "")
			assert.Equal(t, "퀴즈 - 2026-08-27", title)
			assert.Equal(t, "일반", tag)
		})
	}
}

func TestDeriveTitleAndTag_ClipsLongContentInPrompt(t *testing.T) {
	client := new(MockLLMClient)
	var captured string
	client.On("Invoke", mock.Anything, mock.MatchedBy(func(p string) bool {
		captured = p
		return true
	})).Return(`{"title": "제목", "tag": "과학"}`, nil)

	long := make([]rune, 5000)
	for i := range long {
		long[i] = '가'
	}

	g := NewTitleTagGenerator(client)
	_, _ = g.DeriveTitleAndTag(context.Background(), string(long), "")

	assert.Less(t, len([]rune(captured)), 3000, "content must be clipped before prompting")
}
