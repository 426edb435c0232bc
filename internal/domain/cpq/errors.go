package cpq

import "errors"

var (
	ErrQuoteNotFound    = errors.New("quote not found")
	ErrPositionNotFound = errors.New("position not found")
)
