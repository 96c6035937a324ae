package service

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrTokenInvalid        = errors.New("token is invalid or expired")
	ErrNotApproved         = errors.New("access denied: your account is not approved or you are not a player")
	ErrUserNotFound        = errors.New("user not found")
	ErrPlayerNotFound      = errors.New("player profile not found")
	ErrCertificateNotFound = errors.New("certificate not found")
	ErrSportNotFound       = errors.New("sport not found")
	ErrNoPlayersSelected   = errors.New("no players selected")
)
