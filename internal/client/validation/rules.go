// Package validation holds the form rules applied to signup and login input
// before it reaches the auth service. A Rule returns "" when the value passes
// and a user-facing message otherwise.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf16"
)

type Rule func(value string) string

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// MinPasswordLength is the password length both forms require.
const MinPasswordLength = 6

func Required(field string) Rule {
	return func(value string) string {
		if strings.TrimSpace(value) == "" {
			return field + " is required"
		}
		return ""
	}
}

// Email checks the trimmed value against a loose address pattern.
func Email(value string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		return "Email is required"
	}
	if !emailRe.MatchString(v) {
		return "Please enter a valid email address"
	}
	return ""
}

// MinLength counts UTF-16 code units of the untrimmed value, so inner and
// outer spaces count towards the minimum and a character outside the Basic
// Multilingual Plane counts as two.
func MinLength(n int, field string) Rule {
	return func(value string) string {
		if strings.TrimSpace(value) == "" {
			return field + " is required"
		}
		if utf16Len(value) < n {
			return fmt.Sprintf("%s must be at least %d characters", field, n)
		}
		return ""
	}
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		if l := utf16.RuneLen(r); l > 0 {
			n += l
		} else {
			n++
		}
	}
	return n
}

// Compose returns the first failing rule's message.
func Compose(rules ...Rule) Rule {
	return func(value string) string {
		for _, r := range rules {
			if msg := r(value); msg != "" {
				return msg
			}
		}
		return ""
	}
}
