package validation

import (
	"regexp"
	"strings"
)

var (
	cnicPattern     = regexp.MustCompile(`^\d{5}-\d{7}-\d$`)
	whatsappPattern = regexp.MustCompile(`^\+923\d{9}$`)
)

const (
	CNICFormat     = "12345-1234567-1"
	WhatsAppFormat = "+92 3000000000"

	DisabilityYes = "Yes"
	DisabilityNo  = "No"
)

func ValidateCNIC(field, value string) error {
	if !cnicPattern.MatchString(value) {
		return &FormatError{Field: field, Expected: CNICFormat}
	}
	return nil
}

// ValidateWhatsApp ignores spaces, so "+92 300 1234567" is accepted.
func ValidateWhatsApp(field, value string) error {
	if !whatsappPattern.MatchString(strings.ReplaceAll(value, " ", "")) {
		return &FormatError{Field: field, Expected: WhatsAppFormat}
	}
	return nil
}

func ValidateDisability(flag, detail string) error {
	if flag == DisabilityYes && strings.TrimSpace(detail) == "" {
		return &MissingFieldError{Field: "disability_detail", Reason: "if disability is selected as Yes"}
	}
	return nil
}

func ValidatePasswordConfirmation(password, confirm string) error {
	if password != confirm {
		return &MismatchError{Field: "confirm_password", Other: "password"}
	}
	return nil
}

func ValidateRange(field string, value, min, max float64) error {
	if value < min || value > max {
		return &RangeError{Field: field, Min: min, Max: max}
	}
	return nil
}
