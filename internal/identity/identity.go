// Package identity canonicalizes loosely typed identity numbers and derives login handles.
//
// NormalizeCNIC and NormalizePhone accept any punctuation and only look at digits.
// Registration does not use them: it demands the exact CNIC format up
// front, while profile edits accept loose input and reformat it.
package identity

import (
	"strconv"
	"strings"

	"sports-portal/internal/validation"
)

const (
	cnicDigits  = 13
	phoneDigits = 11

	// MaxHandleAttempts bounds the collision loop when inserting a new handle.
	MaxHandleAttempts = 100

	fallbackHandle = "player"
)

func digitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeCNIC returns the number as DDDDD-DDDDDDD-D.
func NormalizeCNIC(raw string) (string, error) {
	d := digitsOnly(raw)
	if len(d) != cnicDigits {
		return "", &validation.LengthError{Field: "cnic", Want: cnicDigits, Got: len(d)}
	}
	return d[:5] + "-" + d[5:12] + "-" + d[12:], nil
}

// NormalizePhone returns the number as DDDD-DDDDDDD.
func NormalizePhone(raw string) (string, error) {
	d := digitsOnly(raw)
	if len(d) != phoneDigits {
		return "", &validation.LengthError{Field: "phone_number", Want: phoneDigits, Got: len(d)}
	}
	return d[:4] + "-" + d[4:], nil
}

// HandleBase derives the handle stem from the local part of an email address.
func HandleBase(email string) string {
	local := email
	if i := strings.LastIndex(email, "@"); i >= 0 {
		local = email[:i]
	}

	var b strings.Builder
	for _, r := range strings.ToLower(local) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
			b.WriteRune(r)
		}
	}

	base := strings.Trim(b.String(), ".-_")
	if base == "" {
		return fallbackHandle
	}
	if len(base) > 120 {
		base = base[:120]
	}
	return base
}

// HandleCandidate yields base, base1, base2, ... for attempt 0, 1, 2, ...
func HandleCandidate(base string, attempt int) string {
	if attempt <= 0 {
		return base
	}
	return base + strconv.Itoa(attempt)
}
