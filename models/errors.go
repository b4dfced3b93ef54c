package models

import "github.com/pkg/errors"

var (
	ErrNotFound       = errors.New("document not found")
	ErrImageRequired  = errors.New("Product image is required")
	ErrEmptyUpdate    = errors.New("no fields to update")
	ErrInvalidStatus  = errors.New("invalid order status")
	ErrDuplicateEmail = errors.New("email already registered")
)
