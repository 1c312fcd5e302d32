package validation

import (
	"regexp"
)

// Validation rule patterns
var (
	// Email validation pattern
	EmailPattern = `^[^\s@]+@[^\s@]+\.[^\s@]+$`

	// Student identifier pattern - 9 digits
	StudentIDPattern = `^\d{9}$`

	// Post/comment content max length
	ContentMaxLength = 2000
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Email     *regexp.Regexp
	StudentID *regexp.Regexp
}{
	Email:     regexp.MustCompile(EmailPattern),
	StudentID: regexp.MustCompile(StudentIDPattern),
}

// IsValidEmail reports whether the value looks like an email address.
func IsValidEmail(value string) bool {
	return CompiledPatterns.Email.MatchString(value)
}

// IsValidStudentID reports whether the value is a 9-digit student identifier.
func IsValidStudentID(value string) bool {
	return CompiledPatterns.StudentID.MatchString(value)
}
