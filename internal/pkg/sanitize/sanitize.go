// Package sanitize holds the pure input-cleaning helpers that guard the
// filter-based query layer and the password flows.
package sanitize

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const maxSearchTermLength = 100

var (
	// Characters with structural meaning in the downstream filter syntax.
	filterBreakingChars = regexp.MustCompile(`[,.()*%\\]`)
	htmlTags            = regexp.MustCompile(`<[^>]*>`)

	upperChar   = regexp.MustCompile(`[A-Z]`)
	lowerChar   = regexp.MustCompile(`[a-z]`)
	digitChar   = regexp.MustCompile(`[0-9]`)
	specialChar = regexp.MustCompile("[!@#$%^&*()_+\\-=\\[\\]{};':\"\\\\|,.<>/?`~]")
)

// SearchTerm defangs a free-text search query before it reaches the query
// layer: filter-breaking characters are stripped, single quotes are doubled
// SQL-style, whitespace is trimmed and the result is capped at 100 characters.
// Already-sanitized input passes through unchanged.
func SearchTerm(input string) string {
	if input == "" {
		return ""
	}

	out := filterBreakingChars.ReplaceAllString(input, "")
	// Collapse already-doubled quotes first so sanitizing twice is a no-op.
	out = strings.ReplaceAll(out, "''", "'")
	out = strings.ReplaceAll(out, "'", "''")
	out = strings.TrimSpace(out)

	runes := []rune(out)
	if len(runes) > maxSearchTermLength {
		out = string(runes[:maxSearchTermLength])
	}

	return out
}

// FreeText strips tag-shaped substrings from generic text input and trims it.
func FreeText(input string) string {
	if input == "" {
		return ""
	}

	return strings.TrimSpace(htmlTags.ReplaceAllString(input, ""))
}

type PasswordStrength string

const (
	StrengthWeak   PasswordStrength = "weak"
	StrengthFair   PasswordStrength = "fair"
	StrengthStrong PasswordStrength = "strong"
)

type PasswordValidation struct {
	IsValid  bool             `json:"is_valid"`
	Errors   []string         `json:"errors"`
	Strength PasswordStrength `json:"strength"`
}

// ValidatePassword checks the five independent strength rules. The error
// messages are a stable contract; callers show them verbatim.
func ValidatePassword(password string) PasswordValidation {
	var errs []string

	if utf8.RuneCountInString(password) < 8 {
		errs = append(errs, "At least 8 characters")
	}
	if !upperChar.MatchString(password) {
		errs = append(errs, "At least 1 uppercase letter")
	}
	if !lowerChar.MatchString(password) {
		errs = append(errs, "At least 1 lowercase letter")
	}
	if !digitChar.MatchString(password) {
		errs = append(errs, "At least 1 number")
	}
	if !specialChar.MatchString(password) {
		errs = append(errs, "At least 1 special character (!@#$%^&*...)")
	}

	strength := StrengthWeak
	if len(errs) == 0 {
		strength = StrengthFair
		if utf8.RuneCountInString(password) >= 12 {
			strength = StrengthStrong
		}
	} else if len(errs) <= 2 {
		strength = StrengthFair
	}

	return PasswordValidation{
		IsValid:  len(errs) == 0,
		Errors:   errs,
		Strength: strength,
	}
}
