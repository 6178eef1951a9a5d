// Package validation holds the pure checks applied to candidate input before anything is stored.
//
// Date-of-birth recency is judged against the current calendar date in UTC.
package validation

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// DateLayout is the only accepted date-of-birth format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// MaxFileSize is the default resume size cap (10 MiB).
const MaxFileSize int64 = 10 * 1024 * 1024

const (
	minPhoneDigits = 7
	maxPhoneDigits = 15
)

var (
	ErrDobFormat  = errors.New("dob must be in YYYY-MM-DD format")
	ErrDobNotPast = errors.New("dob must be in the past")
)

// DefaultAllowedExtensions lists the resume formats accepted out of the box.
var DefaultAllowedExtensions = []string{".pdf", ".doc", ".docx"}

var emailPattern = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

// ValidateEmail reports whether s has a local@domain.tld shape. It is not a full RFC 5322 check.
func ValidateEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ValidatePhone counts the digits in s, ignoring every other character,
// and accepts between 7 and 15 of them.
func ValidatePhone(s string) bool {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n >= minPhoneDigits && n <= maxPhoneDigits
}

// ValidateDateOfBirth parses s strictly as YYYY-MM-DD and requires it to be before today (UTC).
func ValidateDateOfBirth(s string) (time.Time, error) {
	return ValidateDateOfBirthAt(s, time.Now())
}

// ValidateDateOfBirthAt is ValidateDateOfBirth with an explicit clock.
func ValidateDateOfBirthAt(s string, now time.Time) (time.Time, error) {
	dob, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrDobFormat
	}
	y, m, d := now.UTC().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	if !dob.Before(today) {
		return time.Time{}, ErrDobNotPast
	}
	return dob, nil
}

// Rules carries the configurable parts of file validation.
type Rules struct {
	AllowedExtensions []string
	MaxFileSize       int64
}

// DefaultRules accepts .pdf, .doc and .docx up to 10 MiB.
func DefaultRules() Rules {
	return Rules{AllowedExtensions: DefaultAllowedExtensions, MaxFileSize: MaxFileSize}
}

// FileExtension reports whether the lowercased filename ends with an allowed extension.
func (r Rules) FileExtension(filename string) bool {
	name := strings.ToLower(filename)
	for _, ext := range r.AllowedExtensions {
		if strings.HasSuffix(name, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

// FileSize reports whether size is within the cap (inclusive).
func (r Rules) FileSize(size int64) bool {
	return size >= 0 && size <= r.MaxFileSize
}

// ValidateFileExtension checks filename against DefaultAllowedExtensions.
func ValidateFileExtension(filename string) bool {
	return DefaultRules().FileExtension(filename)
}

// ValidateFileSize checks size against MaxFileSize.
func ValidateFileSize(size int64) bool {
	return DefaultRules().FileSize(size)
}

// ParseExtensions turns a comma-separated list such as "pdf, .DOC" into normalized ".pdf", ".doc" entries.
func ParseExtensions(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		ext := strings.ToLower(strings.TrimSpace(part))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	return out
}
