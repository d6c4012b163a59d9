package domain

import "errors"

// Domain error taxonomy. Every command surfaces exactly one of these;
// none is used for control flow inside the package.
var (
	ErrAccountNotFound         = errors.New("account not found")
	ErrDestinationNotFound     = errors.New("destination account not found")
	ErrAccountAlreadyExists    = errors.New("account already exists")
	ErrAccountClosed           = errors.New("account is closed")
	ErrInvalidAmount           = errors.New("amount must be greater than zero")
	ErrInsufficientFunds       = errors.New("insufficient available balance")
	ErrWithdrawalLimitExceeded = errors.New("daily withdrawal limit exceeded")
	ErrSameAccount             = errors.New("source and destination accounts cannot be the same")
)

func IsNotFound(err error) bool {
	return errors.Is(err, ErrAccountNotFound) || errors.Is(err, ErrDestinationNotFound)
}
