package domain

import "github.com/cockroachdb/errors"

var (
	ErrNegativePrice = errors.New("price must not be negative")
	ErrDuplicateID   = errors.New("duplicate line item id")
)
