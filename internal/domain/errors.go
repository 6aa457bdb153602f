package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorCode identifies a specific failure class in the domain.
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"

	// Content extraction errors
	CodeInvalidURL          ErrorCode = "INVALID_URL"
	CodeTimeout             ErrorCode = "FETCH_TIMEOUT"
	CodeNetworkError        ErrorCode = "NETWORK_ERROR"
	CodeHTTPError           ErrorCode = "HTTP_ERROR"
	CodeInsufficientContent ErrorCode = "INSUFFICIENT_CONTENT"
	CodeUnsupportedFormat   ErrorCode = "UNSUPPORTED_FORMAT"
	CodeParseError          ErrorCode = "PARSE_ERROR"
	CodeFileTooLarge        ErrorCode = "FILE_TOO_LARGE"

	// Content validation errors
	CodeContentTooShort ErrorCode = "CONTENT_TOO_SHORT"
	CodeContentTooLong  ErrorCode = "CONTENT_TOO_LONG"

	// Language-model errors
	CodeLLMService        ErrorCode = "LLM_SERVICE_ERROR"
	CodeMalformedResponse ErrorCode = "MALFORMED_RESPONSE"
	CodeQuotaExceeded     ErrorCode = "QUOTA_EXCEEDED"

	// Persistence errors
	CodePersistence   ErrorCode = "PERSISTENCE_ERROR"
	CodeAlreadyExists ErrorCode = "ALREADY_EXISTS"
)

// DomainError is the single error type crossing component boundaries.
// The error middleware maps its Code to an HTTP status.
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// MarshalJSON keeps the wire shape stable regardless of Cause/Context.
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError.
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{Code: code, Message: message, Cause: cause}
}

// WithContext attaches structured detail surfaced in the error response.
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = map[string]interface{}{}
	}
	e.Context[key] = value
	return e
}

// IsCode reports whether err is a DomainError carrying the given code.
func IsCode(err error, code ErrorCode) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

func NewUnauthorizedError(message string) *DomainError {
	return NewError(CodeUnauthorized, message, nil)
}

func NewInvalidURLError(url string) *DomainError {
	return NewError(CodeInvalidURL, "URL must use the http or https scheme", nil).
		WithContext("url", url)
}

func NewTimeoutError(url string, cause error) *DomainError {
	return NewError(CodeTimeout, "요청 시간이 초과되었습니다. 잠시 후 다시 시도해주세요.", cause).
		WithContext("url", url)
}

func NewNetworkError(url string, cause error) *DomainError {
	return NewError(CodeNetworkError, "해당 URL에 접근할 수 없습니다. 주소를 확인해주세요.", cause).
		WithContext("url", url)
}

func NewHTTPError(status int, url string) *DomainError {
	return NewError(CodeHTTPError, fmt.Sprintf("페이지를 불러오지 못했습니다 (HTTP %d)", status), nil).
		WithContext("status", status).
		WithContext("url", url)
}

func NewInsufficientContentError(url string) *DomainError {
	return NewError(CodeInsufficientContent, "해당 페이지에서 충분한 본문을 추출하지 못했습니다.", nil).
		WithContext("url", url)
}

func NewUnsupportedFormatError(ext string, hint string) *DomainError {
	return NewError(CodeUnsupportedFormat, hint, nil).WithContext("extension", ext)
}

func NewParseError(format string, hint string, cause error) *DomainError {
	return NewError(CodeParseError, hint, cause).WithContext("format", format)
}

func NewFileTooLargeError(size, limit int64) *DomainError {
	return NewError(CodeFileTooLarge,
		fmt.Sprintf("파일이 너무 큽니다 (%.1fMB). 최대 %dMB까지 업로드할 수 있습니다.",
			float64(size)/(1024*1024), limit/(1024*1024)), nil).
		WithContext("size", size).
		WithContext("limit", limit)
}

func NewContentTooShortError(length, minimum int) *DomainError {
	return NewError(CodeContentTooShort,
		fmt.Sprintf("내용이 너무 짧습니다 (%d자). 최소 %d자 이상 필요합니다.", length, minimum), nil).
		WithContext("length", length).
		WithContext("minimum", minimum)
}

func NewContentTooLongError(length, maximum int) *DomainError {
	return NewError(CodeContentTooLong,
		fmt.Sprintf("내용이 너무 깁니다 (%d자). 최대 %d자까지 입력할 수 있습니다.", length, maximum), nil).
		WithContext("length", length).
		WithContext("maximum", maximum)
}

func NewLLMServiceError(cause error) *DomainError {
	return NewError(CodeLLMService, "퀴즈 생성 서비스 호출에 실패했습니다.", cause)
}

func NewMalformedResponseError(cause error) *DomainError {
	return NewError(CodeMalformedResponse, "생성된 퀴즈 응답을 해석하지 못했습니다.", cause)
}

func NewQuotaExceededError(cause error) *DomainError {
	return NewError(CodeQuotaExceeded, "요청이 너무 많습니다. 잠시 후 다시 시도해주세요.", cause)
}

func NewPersistenceError(message string, cause error) *DomainError {
	return NewError(CodePersistence, message, cause)
}

func NewAlreadyExistsError(message string) *DomainError {
	return NewError(CodeAlreadyExists, message, nil)
}
