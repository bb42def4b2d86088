package auth

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrInvalidToken        = errors.New("invalid or missing token")
	ErrInvalidSignupSecret = errors.New("invalid signup secret")
)
