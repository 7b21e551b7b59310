package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
)

// Caller-facing messages.
const (
	msgUsernameRequired    = "Username is required"
	msgExerciseRequired    = "Description and duration are required"
	msgDurationNotInteger  = "Duration must be an integer"
	msgInvalidDate         = "Invalid date"
	msgInvalidFrom         = "Invalid from date"
	msgInvalidTo           = "Invalid to date"
	msgLimitNotNonNegative = "Limit must be a non-negative integer"
	msgUserNotFound        = "User not found"
)

// Error is a service failure with a message safe to show to callers.
// errors.Is matches both its Kind and the underlying cause.
type Error struct {
	Op   string
	Kind error
	Msg  string
	Err  error
}

func (e *Error) Error() string { return e.Msg }

// Unwrap exposes the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error { return []error{e.Kind, e.Err} }

func validation(op, msg string, cause error) error {
	return &Error{Op: op, Kind: ErrValidation, Msg: msg, Err: cause}
}

func notFound(op string, cause error) error {
	return &Error{Op: op, Kind: ErrNotFound, Msg: msgUserNotFound, Err: cause}
}
