// Package apperrors centralizes the domain error codes returned by the
// service layer. Error identity (the symbolic code) is kept separate from
// the human-readable message and from the HTTP status the handlers map it to.
package apperrors

import (
	"errors"
	"net/http"
)

// Kind classifies an expected failure.
type Kind int

const (
	KindValidation   Kind = iota // malformed field shape
	KindInvalidID                // id fails the format check before any store access
	KindNotFound                 //
	KindUnauthorized             // missing/invalid token or caller is not the owner
	KindForbidden                // reset-token failures
	KindConflict                 // duplicate username/email
	KindInternal                 //
)

// Error is a domain error with a symbolic code.
type Error struct {
	Kind Kind
	Code string
}

func (e *Error) Error() string { return messages[e.Code] }

// Domain error values, keyed the way the API reports them.
var (
	ErrNotValidUserID        = &Error{KindInvalidID, "NOT_VALID_USER_ID"}
	ErrNotValidAdvertID      = &Error{KindInvalidID, "NOT_VALID_ADVERT_ID"}
	ErrUserNotFound          = &Error{KindNotFound, "USER_NOT_FOUND"}
	ErrAdvertNotFound        = &Error{KindNotFound, "ADVERT_NOT_FOUND"}
	ErrInvalidCredentials    = &Error{KindValidation, "INVALID_CREDENTIALS"}
	ErrUsernameEmailUsed     = &Error{KindConflict, "USERNAME_EMAIL_USED"}
	ErrNoTokenProvided       = &Error{KindUnauthorized, "NO_TOKEN_PROVIDED"}
	ErrInvalidToken          = &Error{KindUnauthorized, "INVALID_TOKEN"}
	ErrNotAuthorized         = &Error{KindUnauthorized, "NOT_AUTHORIZED"}
	ErrInvalidOrExpiredToken = &Error{KindForbidden, "INVALID_OR_EXPIRED_TOKEN"}
	ErrPasswordNotUpdated    = &Error{KindInternal, "PASSWORD_NOT_UPDATED"}
	ErrPhotoFileMandatory    = &Error{KindValidation, "PHOTO_FILE_IS_MANDATORY"}
	ErrEmailMustNotBeEmpty   = &Error{KindValidation, "EMAIL_MUST_NOT_BE_EMPTY"}
	ErrTagAlreadyExists      = &Error{KindConflict, "TAG_ALREADY_EXISTS"}
)

// messages maps the symbolic codes to their display text.
var messages = map[string]string{
	"NOT_VALID_USER_ID":        "Not a valid user id",
	"NOT_VALID_ADVERT_ID":      "Not a valid advert id",
	"USER_NOT_FOUND":           "User not found",
	"ADVERT_NOT_FOUND":         "Advert not found",
	"INVALID_CREDENTIALS":      "Invalid credentials",
	"USERNAME_EMAIL_USED":      "Username or email currently used",
	"NO_TOKEN_PROVIDED":        "No token provided",
	"INVALID_TOKEN":            "Invalid or expired token",
	"NOT_AUTHORIZED":           "Not authorized to perform this action",
	"INVALID_OR_EXPIRED_TOKEN": "Invalid or expired reset token",
	"PASSWORD_NOT_UPDATED":     "Password could not be updated",
	"PHOTO_FILE_IS_MANDATORY":  "The photo file is mandatory",
	"EMAIL_MUST_NOT_BE_EMPTY":  "Email must not be empty",
	"TAG_ALREADY_EXISTS":       "Tag already exists",
}

// Success messages share the same dictionary style.
const (
	MsgEmailSent              = "Email was sent"
	MsgPasswordUpdated        = "Password was updated"
	MsgRemovedUserAndAdverts  = "Removed user and his/her adverts"
	MsgAdvertDeleted          = "Advert deleted"
	MsgWelcome                = "Welcome to Wallaclone API!"
)

// Status maps an error to the HTTP status the API uses for its kind.
// Unknown errors are internal.
func Status(err error) int {
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError
	}
	switch e.Kind {
	case KindValidation, KindInvalidID, KindConflict:
		return http.StatusUnprocessableEntity
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// IsDomain reports whether err is one of the expected domain errors.
func IsDomain(err error) bool {
	var e *Error
	return errors.As(err, &e)
}
