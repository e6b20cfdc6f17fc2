// Package service implements the business rules for accounts, profiles
// and session preferences. Handlers map these errors onto flash
// messages and redirects; none of them are fatal.
package service

import "errors"

var (
	// ErrInvalidCredentials covers both unknown email and wrong password,
	// deliberately indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrUnauthorized reports an operation that requires an authenticated
	// session.
	ErrUnauthorized = errors.New("authentication required")

	// Signup validation, in checking order.
	ErrFieldsRequired   = errors.New("all fields are required")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrPasswordTooShort = errors.New("password too short")
	ErrFieldsInvalid    = errors.New("fields must not be blank")
	ErrEmailTaken       = errors.New("email already registered")

	// Password change.
	ErrWrongOldPassword  = errors.New("old password is incorrect")
	ErrPasswordUnchanged = errors.New("new password must differ from the old one")

	// Profile mutation.
	ErrAvatarRequired   = errors.New("no avatar selected")
	ErrPasswordRequired = errors.New("password confirmation required")
)

// MinPasswordLength is the minimum accepted password length. Exactly
// this many characters is accepted.
const MinPasswordLength = 6
