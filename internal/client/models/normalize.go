package models

import "strings"

// NormalizeEmail trims surrounding whitespace and lower-cases.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func NormalizeName(name string) string {
	return strings.TrimSpace(name)
}

// NormalizePassword only trims; case is significant.
func NormalizePassword(password string) string {
	return strings.TrimSpace(password)
}
