package fieldvalidator

import (
	"regexp"
	"strings"
)

var (
	phoneStripper = strings.NewReplacer(" ", "", "\t", "", "-", "", "(", "", ")", "")
	digitsOnly    = regexp.MustCompile(`^[0-9]+$`)
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@.]+(\.[^\s@.]+)+$`)
)

// ValidatePhoneNumber accepts Indian mobile numbers in the common written forms
// and normalizes them to "+91 XXXXX XXXXX".
func ValidatePhoneNumber(raw interface{}) Result {
	s, ok := asString(raw)
	if !ok {
		return Result{Valid: false, Error: "phone number must be a string"}
	}

	digits := strings.TrimPrefix(phoneStripper.Replace(strings.TrimSpace(s)), "+")
	if !digitsOnly.MatchString(digits) {
		return Result{Valid: false, Error: "phone number contains invalid characters"}
	}

	var local string
	switch {
	case len(digits) == 10:
		local = digits
	case len(digits) == 11 && strings.HasPrefix(digits, "0"):
		local = digits[1:]
	case len(digits) == 12 && strings.HasPrefix(digits, "91"):
		local = digits[2:]
	case len(digits) == 13 && strings.HasPrefix(digits, "091"):
		local = digits[3:]
	default:
		return Result{Valid: false, Error: "phone number must be a 10-digit Indian mobile number"}
	}

	if !strings.ContainsRune("6789", rune(local[0])) {
		return Result{Valid: false, Error: "mobile number must start with 6, 7, 8 or 9"}
	}

	return Result{Valid: true, Value: "+91 " + local[:5] + " " + local[5:]}
}

// ValidateEmail trims and lowercases the address and checks local@domain.tld shape.
func ValidateEmail(raw interface{}) Result {
	s, ok := asString(raw)
	if !ok {
		return Result{Valid: false, Error: "email must be a string"}
	}

	email := strings.ToLower(strings.TrimSpace(s))
	if !emailPattern.MatchString(email) {
		return Result{Valid: false, Error: "invalid email address"}
	}
	return Result{Valid: true, Value: email}
}
