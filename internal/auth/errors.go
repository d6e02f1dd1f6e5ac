package auth

import "errors"

var (
	// ErrMissingFields indicates a required sign-up or sign-in field was empty.
	ErrMissingFields = errors.New("auth: missing required fields")
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// callers cannot distinguish the two.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	// ErrDuplicateAccount is returned when signing up with an email that is
	// already registered.
	ErrDuplicateAccount = errors.New("auth: account already exists")
	// ErrInvalidRole is returned when sign-up requests a role the server
	// does not recognize.
	ErrInvalidRole = errors.New("auth: invalid role")
	// ErrStorageUnavailable indicates the user store could not be reached in
	// time. Details are logged server-side, never sent to the client.
	ErrStorageUnavailable = errors.New("auth: storage unavailable")
)
