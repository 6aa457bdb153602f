package domain

import (
	"context"
	"unicode/utf8"
)

// SourceContent is the cleaned text produced by the content extractor.
// It is immutable once created; the validator only reads it.
type SourceContent struct {
	Text     string `json:"text"`
	Title    string `json:"title,omitempty"`
	Excerpt  string `json:"excerpt,omitempty"`
	SiteName string `json:"siteName,omitempty"`
	Length   int    `json:"length"`

	// Document-only metadata, populated by the file extractor.
	PageCount int    `json:"pageCount,omitempty"`
	Author    string `json:"author,omitempty"`
	Subject   string `json:"subject,omitempty"`
	Keywords  string `json:"keywords,omitempty"`
}

// NewPastedContent wraps raw pasted text as SourceContent. Length counts
// runes, matching the validator's bounds.
func NewPastedContent(text string) *SourceContent {
	return &SourceContent{Text: text, Length: utf8.RuneCountInString(text)}
}

// ValidationContext selects the length bounds applied by the validator.
type ValidationContext string

const (
	// ContextPaste is raw text pasted by the user: max 10000 characters.
	ContextPaste ValidationContext = "paste"
	// ContextDocument covers uploaded documents and URL extraction:
	// 300 to 15000 characters inclusive.
	ContextDocument ValidationContext = "document"
)

// URLExtractor produces SourceContent from a web page.
type URLExtractor interface {
	ExtractFromURL(ctx context.Context, rawURL string) (*SourceContent, error)
}

// FileExtractor produces SourceContent from an uploaded document.
type FileExtractor interface {
	ExtractFromFile(filename string, mimeType string, data []byte) (*SourceContent, error)
}
