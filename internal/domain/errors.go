package domain

import "errors"

// Expected operation outcomes. Callers branch on these with errors.Is;
// anything else coming out of a service is a storage failure.
var (
	ErrNoCopiesAvailable       = errors.New("no copies of this book are available")
	ErrDuplicatePendingRequest = errors.New("a pending request for this book already exists")
	ErrInvalidState            = errors.New("loan status does not permit this transition")
	ErrAlreadyReturned         = errors.New("loan has already been returned")
	ErrForbidden               = errors.New("actor is not allowed to perform this operation")
	ErrNotFound                = errors.New("record not found")
)
