package domain

import "errors"

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("Internal Server Error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrConflict will throw if the current action already exists
	ErrConflict = errors.New("Your Item already exist")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("Given Param is not valid")
	ErrUnauthorized  = errors.New("Unauthorized")

	// market outcomes, all of them are expected and reported to the user
	ErrQuotaExceeded     = errors.New("quota exceeded")
	ErrInvalidItem       = errors.New("invalid item")
	ErrInsufficientFunds = errors.New("Not enough money!")
	ErrListingGone       = errors.New("Item no longer available")
)

// UserError carries the message shown to the invoking user next to the
// sentinel used for matching.
type UserError struct {
	Err     error
	Message string
}

func (e *UserError) Error() string {
	return e.Message
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError wraps err with a human readable message
func NewUserError(err error, message string) error {
	return &UserError{Err: err, Message: message}
}
