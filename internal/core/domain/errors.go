package domain

import "errors"

var (
	// ErrInvalidInput marks a request missing or malforming a required field.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUserExists marks a signup whose username or email is already taken.
	ErrUserExists = errors.New("user with this email or username already exists")
	// ErrInvalidCredentials covers both unknown identifier and wrong password,
	// deliberately indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserNotFound is returned by the user store when no record matches.
	// It never reaches the wire: login collapses it into ErrInvalidCredentials.
	ErrUserNotFound = errors.New("user not found")
	// ErrTokenInvalid marks a bearer token that is malformed, mis-signed or expired.
	ErrTokenInvalid = errors.New("invalid or expired token")
	// ErrTooManyAttempts marks a login identifier that is temporarily locked out.
	ErrTooManyAttempts = errors.New("too many failed login attempts")
	// ErrEmployeeNotFound marks a lookup for an id with no matching record.
	ErrEmployeeNotFound = errors.New("employee not found")
)
