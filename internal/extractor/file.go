package extractor

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"quizforge/internal/domain"
	"quizforge/internal/logger"

	pdf "github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

// DefaultMaxFileSize caps uploads when no limit is configured.
const DefaultMaxFileSize = 10 * 1024 * 1024

// FileExtractor dispatches uploaded documents to a format-specific text
// extractor. Supported: .txt, .pdf, .docx.
type FileExtractor struct {
	maxFileSize int64
}

func NewFileExtractor(maxFileSize int64) *FileExtractor {
	if maxFileSize <= 0 {
		maxFileSize = DefaultMaxFileSize
	}
	return &FileExtractor{maxFileSize: maxFileSize}
}

var _ domain.FileExtractor = (*FileExtractor)(nil)

// ExtractFromFile decodes an uploaded document into SourceContent.
// The size ceiling is checked before any parsing is attempted.
func (e *FileExtractor) ExtractFromFile(filename string, mimeType string, data []byte) (*domain.SourceContent, error) {
	if int64(len(data)) > e.maxFileSize {
		return nil, domain.NewFileTooLargeError(int64(len(data)), e.maxFileSize)
	}
	if len(data) == 0 {
		return nil, domain.NewParseError("file", "파일이 비어 있습니다.", nil)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	mt := strings.ToLower(strings.TrimSpace(mimeType))

	switch {
	case ext == ".txt" || mt == "text/plain":
		return extractPlainText(data)
	case ext == ".pdf" || mt == "application/pdf":
		return extractPDF(data)
	case ext == ".docx" || mt == "application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		return extractDOCX(data)
	case ext == ".doc":
		return nil, domain.NewUnsupportedFormatError(ext,
			".doc 형식은 지원하지 않습니다. .docx로 변환 후 업로드해주세요.")
	case ext == ".ppt" || ext == ".pptx":
		return nil, domain.NewUnsupportedFormatError(ext,
			"프레젠테이션 파일은 지원하지 않습니다. 내용을 .txt 또는 .pdf로 변환 후 업로드해주세요.")
	default:
		return nil, domain.NewUnsupportedFormatError(ext,
			"지원하지 않는 파일 형식입니다. .txt, .pdf, .docx 파일만 업로드할 수 있습니다.")
	}
}

func extractPlainText(data []byte) (*domain.SourceContent, error) {
	if !utf8.Valid(data) {
		return nil, domain.NewParseError("txt", "텍스트 파일은 UTF-8 인코딩이어야 합니다.", nil)
	}
	text := collapseWhitespace(string(data))
	return &domain.SourceContent{
		Text:    text,
		Excerpt: makeExcerpt(text),
		Length:  utf8.RuneCountInString(text),
	}, nil
}

// extractPDF reads the PDF text layer plus page count and document metadata.
// The underlying parser panics on malformed cross-reference tables, so the
// whole pass runs under a recover that surfaces a ParseError instead.
func extractPDF(data []byte) (content *domain.SourceContent, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Get().Warn("pdf extraction panicked", zap.Any("panic", r))
			content = nil
			err = domain.NewParseError("pdf",
				"PDF 파일을 읽지 못했습니다. 손상되었거나 암호화된 파일일 수 있습니다.",
				fmt.Errorf("pdf parser panic: %v", r))
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, domain.NewParseError("pdf",
			"PDF 파일을 읽지 못했습니다. 손상되었거나 암호화된 파일일 수 있습니다.", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return nil, domain.NewParseError("pdf",
			"PDF 텍스트 레이어를 추출하지 못했습니다. 스캔된 이미지 PDF일 수 있습니다.", err)
	}
	raw, err := io.ReadAll(plain)
	if err != nil {
		return nil, domain.NewParseError("pdf", "PDF 텍스트 레이어를 추출하지 못했습니다.", err)
	}

	text := collapseWhitespace(string(raw))
	content = &domain.SourceContent{
		Text:      text,
		Excerpt:   makeExcerpt(text),
		Length:    utf8.RuneCountInString(text),
		PageCount: reader.NumPage(),
	}

	info := reader.Trailer().Key("Info")
	if !info.IsNull() {
		content.Title = pdfInfoString(info, "Title")
		content.Author = pdfInfoString(info, "Author")
		content.Subject = pdfInfoString(info, "Subject")
		content.Keywords = pdfInfoString(info, "Keywords")
	}
	return content, nil
}

func pdfInfoString(info pdf.Value, key string) string {
	v := info.Key(key)
	if v.IsNull() {
		return ""
	}
	return strings.TrimSpace(v.Text())
}

// extractDOCX pulls raw paragraph text from word/document.xml, discarding
// all formatting. A docx file is a zip container; anything that does not
// open as one is treated as corrupt.
func extractDOCX(data []byte) (*domain.SourceContent, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, domain.NewParseError("docx",
			".docx 파일을 열지 못했습니다. 손상된 파일일 수 있습니다.", err)
	}

	var docXML *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			docXML = f
			break
		}
	}
	if docXML == nil {
		return nil, domain.NewParseError("docx",
			".docx 본문을 찾지 못했습니다. 올바른 Word 문서인지 확인해주세요.", nil)
	}

	rc, err := docXML.Open()
	if err != nil {
		return nil, domain.NewParseError("docx", ".docx 본문을 열지 못했습니다.", err)
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return nil, domain.NewParseError("docx", ".docx 본문을 읽지 못했습니다.", err)
	}

	text := collapseWhitespace(wordRunsText(raw))
	if text == "" {
		return nil, domain.NewParseError("docx", "문서에서 텍스트를 찾지 못했습니다.", nil)
	}

	return &domain.SourceContent{
		Text:    text,
		Excerpt: makeExcerpt(text),
		Length:  utf8.RuneCountInString(text),
	}, nil
}

// wordRunsText collects the character data of every <w:t> run, inserting a
// space at paragraph boundaries (<w:p>).
func wordRunsText(xmlBytes []byte) string {
	dec := xml.NewDecoder(bytes.NewReader(xmlBytes))
	var out strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch se.Name.Local {
		case "t":
			var v string
			if err := dec.DecodeElement(&v, &se); err == nil && v != "" {
				out.WriteString(v)
				out.WriteString(" ")
			}
		case "p":
			out.WriteString(" ")
		}
	}
	return out.String()
}
