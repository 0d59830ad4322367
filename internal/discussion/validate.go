package discussion

import (
	"strings"
	"unicode/utf8"
)

// Comment body bounds, counted in runes after trimming.
const (
	MinBodyLen = 3
	MaxBodyLen = 2000
)

// ValidateBody trims the raw text and checks the length bounds. Applies to
// top-level comments and replies alike. No side effects.
func ValidateBody(raw string) (string, error) {
	body := strings.TrimSpace(raw)
	if body == "" {
		return "", ErrBodyEmpty
	}
	n := utf8.RuneCountInString(body)
	if n < MinBodyLen {
		return "", ErrBodyTooShort
	}
	if n > MaxBodyLen {
		return "", ErrBodyTooLong
	}
	return body, nil
}
