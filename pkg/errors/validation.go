package errors

import (
	"regexp"
	"strings"
	"time"
	"unicode"
)

// maxIdentifierLength bounds semester and week identifiers.
const maxIdentifierLength = 64

// identifierRegex matches semester and week identifiers such as "2024-1" or "week-07".
var identifierRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateIdentifier validates a semester or week identifier.
// Identifiers end up in file paths, cache keys and URLs, so the rules are
// conservative:
//   - No empty identifiers
//   - No control characters
//   - No path separators or traversal sequences
//   - Maximum length of 64 characters
func ValidateIdentifier(kind, id string) error {
	if id == "" {
		return New(ErrCodeInvalidWeek, "%s cannot be empty", kind)
	}
	if len(id) > maxIdentifierLength {
		return New(ErrCodeInvalidWeek, "%s too long (max %d characters)", kind, maxIdentifierLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidWeek, "%s contains invalid control characters", kind)
		}
	}
	if strings.Contains(id, "..") {
		return New(ErrCodeInvalidWeek, "%s cannot contain path traversal sequences (..)", kind)
	}
	if !identifierRegex.MatchString(id) {
		return New(ErrCodeInvalidWeek, "invalid %s: %q", kind, id)
	}
	return nil
}

// ValidateDate checks that s is an ISO calendar date (YYYY-MM-DD).
func ValidateDate(s string) error {
	if s == "" {
		return New(ErrCodeInvalidDate, "date cannot be empty")
	}
	if _, err := time.Parse(time.DateOnly, s); err != nil {
		return Wrap(ErrCodeInvalidDate, err, "invalid date %q", s)
	}
	return nil
}

// clockRegex matches 24-hour HH:MM wall-clock strings.
var clockRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// ValidateClock checks that s is a 24-hour "HH:MM" clock string.
func ValidateClock(s string) error {
	if !clockRegex.MatchString(s) {
		return New(ErrCodeInvalidClock, "invalid clock time %q (want HH:MM)", s)
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}
	return nil
}
