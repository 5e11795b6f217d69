package session

import "errors"

var (
	// ErrMissingFields is returned when a form is submitted with empty fields.
	ErrMissingFields = errors.New("please fill in every field")
	// ErrNotSignedIn is returned by operations that need a profile.
	ErrNotSignedIn = errors.New("nobody is signed in")
	// ErrEmptyName is returned when a profile edit clears the name.
	ErrEmptyName = errors.New("name must not be empty")
)

// AuthenticationError reports a rejected sign-in.
type AuthenticationError struct {
	Email string
}

func (e *AuthenticationError) Error() string {
	return "wrong email or password"
}

// DuplicateAccountError reports a registration for an email already in use.
type DuplicateAccountError struct {
	Email string
}

func (e *DuplicateAccountError) Error() string {
	return "this email is already in use"
}
