package services

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrBillNotFound = errors.New("bill not found")

	// ErrNoBills marks a month with no bill documents at all, as
	// opposed to bills that sum to zero.
	ErrNoBills = errors.New("no bills for month")
)

// ValidationError is a caller mistake: malformed id, month token,
// date or status value. Controllers map it to 400.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func validationErrorf(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}
