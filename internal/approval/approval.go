// Package approval holds the player account lifecycle and the login gate built on it.
package approval

import (
	"errors"
	"fmt"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusDeclined Status = "declined"
)

var ErrUnknownStatus = errors.New("unknown account status")

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusDeclined:
		return true
	}
	return false
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
	return st, nil
}

// Transition reports whether an administrator may move an account from one status to
// another and whether anything actually changes. Every pair of known statuses is
// reachable; moving to the current status is accepted as a no-op.
func Transition(from, to Status) (changed bool, err error) {
	if !from.Valid() {
		return false, fmt.Errorf("%w: %q", ErrUnknownStatus, from)
	}
	if !to.Valid() {
		return false, fmt.Errorf("%w: %q", ErrUnknownStatus, to)
	}
	return from != to, nil
}

// IsApproved mirrors the stored is_approved column.
func IsApproved(s Status) bool {
	return s == StatusApproved
}

// Notice is the personal notification a player receives when an administrator moves
// the account to status s.
func Notice(s Status) (title, message string) {
	switch s {
	case StatusApproved:
		return "Account approved", "Your player account has been approved. You can now log in."
	case StatusDeclined:
		return "Account declined", "Your player account has been declined. Please contact the admin."
	default:
		return "Account under review", "Your player account is pending approval again. Please wait for admin approval."
	}
}
