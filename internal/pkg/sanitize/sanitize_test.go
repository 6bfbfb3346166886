package sanitize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchTerm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty input", "", ""},
		{"plain term untouched", "John Smith", "John Smith"},
		{"strips filter syntax", "test),full_name.eq.admin", "testfull_nameeqadmin"},
		{"escapes single quotes", "O'Brien", "O''Brien"},
		{"strips percent and asterisk", "50%*off", "50off"},
		{"strips backslash", `a\b`, "ab"},
		{"trims whitespace", "  leo  ", "leo"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SearchTerm(tc.input))
		})
	}
}

func TestSearchTerm_TruncatesTo100(t *testing.T) {
	long := strings.Repeat("a1", 100)

	got := SearchTerm(long)

	assert.Len(t, got, 100)
}

func TestSearchTerm_Idempotent(t *testing.T) {
	inputs := []string{"test),full_name.eq.admin", "O'Brien", strings.Repeat("x", 200)}

	for _, input := range inputs {
		once := SearchTerm(input)
		assert.Equal(t, once, SearchTerm(once))
	}
}

func TestSearchTerm_AlreadyEscapedQuotesNotReDoubled(t *testing.T) {
	assert.Equal(t, "O''Brien", SearchTerm("O''Brien"))
	// Pairs collapse before escaping, odd quotes still double.
	assert.Equal(t, "it''''s", SearchTerm("it'''s"))
}

func TestSearchTerm_NoFilterCharsRemain(t *testing.T) {
	got := SearchTerm("test),full_name.eq.admin")

	assert.NotContains(t, got, ",")
	assert.NotContains(t, got, ".")
	assert.NotContains(t, got, "(")
	assert.NotContains(t, got, ")")
}

func TestFreeText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty input", "", ""},
		{"plain text untouched", "hello world", "hello world"},
		{"strips tags keeps inner text", "<b>bold</b>", "bold"},
		{"strips script tags", `<script>alert("x")</script>hi`, `alert("x")hi`},
		{"trims whitespace", "  <i>x</i>  ", "x"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FreeText(tc.input))
		})
	}
}

func TestValidatePassword_FairAtMinimumLength(t *testing.T) {
	got := ValidatePassword("Abcdef1!")

	assert.True(t, got.IsValid)
	assert.Empty(t, got.Errors)
	assert.Equal(t, StrengthFair, got.Strength)
}

func TestValidatePassword_StrongAtTwelveChars(t *testing.T) {
	got := ValidatePassword("Abcdefghij1!")

	assert.True(t, got.IsValid)
	assert.Equal(t, StrengthStrong, got.Strength)
}

func TestValidatePassword_WeakWithThreeFailures(t *testing.T) {
	got := ValidatePassword("abcdefghij")

	assert.False(t, got.IsValid)
	assert.Equal(t, StrengthWeak, got.Strength)
	assert.ElementsMatch(t, []string{
		"At least 1 uppercase letter",
		"At least 1 number",
		"At least 1 special character (!@#$%^&*...)",
	}, got.Errors)
}

func TestValidatePassword_TooShort(t *testing.T) {
	got := ValidatePassword("Ab1!")

	assert.False(t, got.IsValid)
	assert.Contains(t, got.Errors, "At least 8 characters")
}

func TestValidatePassword_CountsRunesNotBytes(t *testing.T) {
	// 7 characters but 10 bytes; still too short.
	got := ValidatePassword("Ab1!ééé")

	assert.False(t, got.IsValid)
	assert.Contains(t, got.Errors, "At least 8 characters")

	// 11 characters but 12 bytes; valid, yet not strong.
	got = ValidatePassword("Abcdefgh1!é")

	assert.True(t, got.IsValid)
	assert.Equal(t, StrengthFair, got.Strength)
}

func TestValidatePassword_FairWithTwoFailures(t *testing.T) {
	// Missing uppercase and special character only.
	got := ValidatePassword("abcdefgh1")

	assert.False(t, got.IsValid)
	assert.Len(t, got.Errors, 2)
	assert.Equal(t, StrengthFair, got.Strength)
}
