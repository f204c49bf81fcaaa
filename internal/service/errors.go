package service

import "errors"

// Error kinds. Every error returned by a service either wraps one of these
// or is an unexpected store failure.
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidState     = errors.New("invalid state")
	ErrForbidden        = errors.New("forbidden")
	ErrConflict         = errors.New("conflict")
	ErrUnsupportedState = errors.New("unsupported state")
)

// Error is a failure of a particular kind with the message shown to clients.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

var (
	ErrUserNotFound        = newError(ErrNotFound, "user not found")
	ErrItemNotFound        = newError(ErrNotFound, "item not found")
	ErrBookingNotFound     = newError(ErrNotFound, "booking not found")
	ErrRequestNotFound     = newError(ErrNotFound, "item request not found")
	ErrOwnerBooking        = newError(ErrNotFound, "owner cannot book their own item")
	ErrNotItemOwner        = newError(ErrNotFound, "approval available only to the item owner")
	ErrItemUnavailable     = newError(ErrInvalidState, "item not available for booking")
	ErrBookingNotWaiting   = newError(ErrInvalidState, "booking is not awaiting approval")
	ErrCommentNotAllowed   = newError(ErrInvalidState, "comments may only be left on items you have completed a booking for")
	ErrInvalidBookingRange = newError(ErrInvalidState, "booking end must be after start and start must be in the future")
	ErrNotOwner            = newError(ErrForbidden, "only the owner can modify an item")
	ErrEmailTaken          = newError(ErrConflict, "email already in use")
)

func unknownStateError(state string) *Error {
	return newError(ErrUnsupportedState, "Unknown state: "+state)
}
