package validation

import (
	"quizforge/internal/domain"
	"unicode/utf8"
)

const (
	// PasteMaxLength bounds raw text pasted directly by the user.
	PasteMaxLength = 10000

	// DocumentMinLength and DocumentMaxLength bound text extracted from
	// uploaded documents and URLs. Both boundaries are inclusive.
	DocumentMinLength = 300
	DocumentMaxLength = 15000
)

// ContentValidator enforces length bounds on extracted text before it is
// sent for generation. Pure and deterministic.
type ContentValidator struct{}

func NewContentValidator() *ContentValidator {
	return &ContentValidator{}
}

// Validate checks content against the bounds for the given context.
// Lengths are counted in runes so multibyte text is not penalized.
func (v *ContentValidator) Validate(content *domain.SourceContent, vctx domain.ValidationContext) error {
	length := utf8.RuneCountInString(content.Text)

	switch vctx {
	case domain.ContextPaste:
		if length > PasteMaxLength {
			return domain.NewContentTooLongError(length, PasteMaxLength)
		}
	case domain.ContextDocument:
		if length > DocumentMaxLength {
			return domain.NewContentTooLongError(length, DocumentMaxLength)
		}
		if length < DocumentMinLength {
			return domain.NewContentTooShortError(length, DocumentMinLength)
		}
	default:
		return domain.NewInvalidInputError("unknown validation context")
	}
	return nil
}
