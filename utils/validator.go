// utils/validator.go - Input validation and contact normalization
package utils

import (
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

var nonDigitRegex = regexp.MustCompile(`\D`)

// ValidateEmail checks if email is valid
func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// NormalizeContact canonicalizes an email or phone contact for lookup.
func NormalizeContact(contact, channel string) string {
	if channel == "email" {
		return strings.ToLower(strings.TrimSpace(contact))
	}
	if channel == "sms" {
		return FormatPhone(contact)
	}
	return contact
}

// FormatPhone normalizes Ghanaian phone numbers to +233 international form.
func FormatPhone(phone string) string {
	phone = nonDigitRegex.ReplaceAllString(phone, "")
	if strings.HasPrefix(phone, "2330") {
		phone = "233" + phone[4:]
	} else if strings.HasPrefix(phone, "0") && len(phone) == 10 {
		phone = "233" + phone[1:]
	}
	if !strings.HasPrefix(phone, "+") {
		return "+" + phone
	}
	return phone
}

// SanitizeInput removes potentially harmful characters
func SanitizeInput(input string) string {
	input = strings.TrimSpace(input)
	input = strings.ReplaceAll(input, "\x00", "")
	return input
}
