package service

import "errors"

// Domain errors surfaced to the HTTP layer, which maps each to a status code.
var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("record not found")
	ErrDuplicateISBN      = errors.New("a book with this ISBN already exists")
	ErrDuplicateEmail     = errors.New("a user with this email already exists")
	ErrBorrowLimit        = errors.New("you have reached the maximum borrow limit (3 books)")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid token")
)
