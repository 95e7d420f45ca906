package orders

import (
	"fmt"
	"regexp"
	"strings"
)

// Shipping field rules: institutional email, Indian mobile number
// (10 digits, first digit 6-9), postal code of 1-6 digits.
var (
	emailRe = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9-]+(\.[A-Za-z0-9-]+)*\.(ac\.in|edu|edu\.[a-z]{2})$`)
	phoneRe = regexp.MustCompile(`^[6-9][0-9]{9}$`)
	zipRe   = regexp.MustCompile(`^[0-9]{1,6}$`)
)

// ValidationError names the first shipping field that failed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ValidateShipping checks the shipping snapshot before any transaction
// opens. All fields are required.
func ValidateShipping(s ShippingDetails) error {
	required := []struct{ field, value string }{
		{"full_name", s.FullName},
		{"email", s.Email},
		{"phone", s.Phone},
		{"address", s.Address},
		{"city", s.City},
		{"state", s.State},
		{"zip", s.Zip},
		{"country", s.Country},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return &ValidationError{Field: f.field, Reason: "required"}
		}
	}
	if !emailRe.MatchString(s.Email) {
		return &ValidationError{Field: "email", Reason: "must be an institutional address"}
	}
	if !phoneRe.MatchString(s.Phone) {
		return &ValidationError{Field: "phone", Reason: "must be 10 digits starting with 6-9"}
	}
	if !zipRe.MatchString(s.Zip) {
		return &ValidationError{Field: "zip", Reason: "must be 1-6 digits"}
	}
	return nil
}
