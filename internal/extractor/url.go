package extractor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"quizforge/internal/domain"
	"quizforge/internal/logger"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"go.uber.org/zap"
)

const (
	// readabilityThreshold is the minimum candidate size the readability
	// pass must find before accepting a content region.
	readabilityThreshold = 500

	// fallbackThreshold is the minimum text length a fallback selector
	// candidate (or the readability result itself) must reach.
	fallbackThreshold = 200

	excerptLength = 300

	maxBodyBytes = 5 * 1024 * 1024
)

// denylistSelectors are structural elements stripped before extraction to
// reduce noise: scripts, navigation, ads, popups, and social widgets.
var denylistSelectors = []string{
	"script", "style", "nav", "header", "footer", "aside",
	".ad", ".ads", ".advertisement", ".popup", ".modal",
	".social-share", ".share-buttons", ".related-articles",
	".sidebar", ".comments", "iframe", "noscript",
}

// fallbackSelectors is probed in order when readability extraction comes up
// short. The order is deliberate; changing it changes extraction outcomes.
var fallbackSelectors = []string{
	"article", ".content", ".post-content", ".entry-content",
	".article-body", "#content", "main", "body",
}

// URLExtractor fetches a web page and extracts its main content.
type URLExtractor struct {
	client       *http.Client
	fetchTimeout time.Duration
}

// NewURLExtractor creates a URLExtractor with the given fetch timeout.
// A non-positive timeout falls back to 10 seconds.
func NewURLExtractor(fetchTimeout time.Duration) *URLExtractor {
	if fetchTimeout <= 0 {
		fetchTimeout = 10 * time.Second
	}
	return &URLExtractor{
		client: &http.Client{
			Timeout: fetchTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     30 * time.Second,
			},
		},
		fetchTimeout: fetchTimeout,
	}
}

var _ domain.URLExtractor = (*URLExtractor)(nil)

// ExtractFromURL fetches rawURL and produces clean plain-text content plus
// metadata. Failure modes map to distinct error codes: InvalidURL, Timeout,
// NetworkError, HTTPError, and InsufficientContent.
func (e *URLExtractor) ExtractFromURL(ctx context.Context, rawURL string) (*domain.SourceContent, error) {
	pageURL, err := url.Parse(rawURL)
	if err != nil || (pageURL.Scheme != "http" && pageURL.Scheme != "https") {
		return nil, domain.NewInvalidURLError(rawURL)
	}

	body, err := e.fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, domain.NewParseError("html", "페이지를 해석하지 못했습니다.", err)
	}
	for _, sel := range denylistSelectors {
		doc.Find(sel).Remove()
	}

	metaTitle, siteName, h1Title := pageMetadata(doc)

	cleanedHTML, err := doc.Html()
	if err != nil {
		return nil, domain.NewParseError("html", "페이지를 해석하지 못했습니다.", err)
	}

	text, title := e.readableText(cleanedHTML, pageURL)

	if utf8.RuneCountInString(text) < fallbackThreshold {
		text = probeFallbackSelectors(doc)
	}
	if utf8.RuneCountInString(text) < fallbackThreshold {
		logger.Get().Warn("URL content extraction came up short",
			zap.String("url", rawURL),
			zap.Int("length", utf8.RuneCountInString(text)))
		return nil, domain.NewInsufficientContentError(rawURL)
	}

	// Title preference: readability -> meta/OG -> first h1 -> placeholder.
	if title == "" {
		title = metaTitle
	}
	if title == "" {
		title = h1Title
	}
	if title == "" {
		title = "제목 없음"
	}

	return &domain.SourceContent{
		Text:     text,
		Title:    title,
		Excerpt:  makeExcerpt(text),
		SiteName: siteName,
		Length:   utf8.RuneCountInString(text),
	}, nil
}

func (e *URLExtractor) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, e.fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, domain.NewInvalidURLError(rawURL)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; quizforge/1.0)")
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := e.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, domain.NewTimeoutError(rawURL, err)
		}
		return nil, domain.NewNetworkError(rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, domain.NewHTTPError(resp.StatusCode, rawURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		if isTimeout(err) {
			return nil, domain.NewTimeoutError(rawURL, err)
		}
		return nil, domain.NewNetworkError(rawURL, err)
	}
	return body, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// readableText runs the readability pass over the cleaned HTML. An error or
// an under-threshold result returns empty text so the caller falls back.
func (e *URLExtractor) readableText(cleanedHTML string, pageURL *url.URL) (string, string) {
	parser := readability.NewParser()
	parser.CharThresholds = readabilityThreshold

	article, err := parser.Parse(strings.NewReader(cleanedHTML), pageURL)
	if err != nil {
		logger.Get().Debug("readability extraction failed, probing fallback selectors",
			zap.String("url", pageURL.String()), zap.Error(err))
		return "", ""
	}
	return collapseWhitespace(article.TextContent), strings.TrimSpace(article.Title)
}

// probeFallbackSelectors walks the generic content-container list in order
// and returns the first candidate whose text exceeds the threshold.
func probeFallbackSelectors(doc *goquery.Document) string {
	for _, sel := range fallbackSelectors {
		candidate := collapseWhitespace(doc.Find(sel).First().Text())
		if utf8.RuneCountInString(candidate) > fallbackThreshold {
			return candidate
		}
	}
	return ""
}

func pageMetadata(doc *goquery.Document) (metaTitle, siteName, h1Title string) {
	if v, ok := doc.Find(`meta[property="og:title"]`).First().Attr("content"); ok {
		metaTitle = strings.TrimSpace(v)
	}
	if metaTitle == "" {
		metaTitle = strings.TrimSpace(doc.Find("title").First().Text())
	}
	if v, ok := doc.Find(`meta[property="og:site_name"]`).First().Attr("content"); ok {
		siteName = strings.TrimSpace(v)
	}
	if siteName == "" {
		if v, ok := doc.Find(`meta[name="site_name"]`).First().Attr("content"); ok {
			siteName = strings.TrimSpace(v)
		}
	}
	h1Title = strings.TrimSpace(doc.Find("h1").First().Text())
	return metaTitle, siteName, h1Title
}

func makeExcerpt(text string) string {
	runes := []rune(text)
	if len(runes) <= excerptLength {
		return text
	}
	return fmt.Sprintf("%s...", string(runes[:excerptLength]))
}

func collapseWhitespace(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	return strings.Join(strings.Fields(s), " ")
}
