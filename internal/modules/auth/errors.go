package auth

import "github.com/Mikee100/Uni-Sporting-Equipment/internal/pkg/apperr"

var (
	ErrInvalidCredentials = apperr.New(apperr.KindUnauthorized, "INVALID_CREDENTIALS", "Invalid credentials.")
	ErrEmailAlreadyExists = apperr.Conflict("EMAIL_EXISTS", "This email is already registered.")
	ErrTooManyAttempts    = apperr.New(apperr.KindTooManyRequests, "TOO_MANY_ATTEMPTS", "Too many failed login attempts. Try again later.")
)
