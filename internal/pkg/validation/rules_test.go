package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	valid := []string{
		"student@example.edu.cn",
		"zhang.san@school.edu",
		"a@b.co",
	}
	for _, email := range valid {
		assert.True(t, IsValidEmail(email), email)
	}

	invalid := []string{
		"",
		"plainaddress",
		"missing@domain",
		"@no-local.part.com",
		"spaces in@address.com",
	}
	for _, email := range invalid {
		assert.False(t, IsValidEmail(email), email)
	}
}

func TestIsValidStudentID(t *testing.T) {
	assert.True(t, IsValidStudentID("123456789"))
	assert.True(t, IsValidStudentID("000000001"))

	invalid := []string{
		"",
		"12345678",    // too short
		"1234567890",  // too long
		"12345678a",   // non-digit
		" 123456789",  // leading space
		"123 456 789", // spaces
	}
	for _, id := range invalid {
		assert.False(t, IsValidStudentID(id), id)
	}
}
